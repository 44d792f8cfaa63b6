package ports

import "context"

// Runner models the sandboxed media engine: a virtual filesystem plus a
// command-line style invocation reporting fractional progress.
type Runner interface {
	WriteInput(name string, data []byte) error
	Exec(ctx context.Context, args []string, onProgress func(float64)) error
	ReadOutput(name string) ([]byte, error)
	Remove(name string) error
}

// ObjectUploader stores a finished clip and returns its storage ref.
type ObjectUploader interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
