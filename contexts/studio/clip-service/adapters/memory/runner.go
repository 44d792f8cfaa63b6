package memory

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Runner is an in-process stand-in for the sandboxed media engine. It
// keeps a virtual filesystem in a map and synthesizes trim output whose
// size encodes the requested duration.
type Runner struct {
	mu    sync.Mutex
	files map[string][]byte

	execCount  int
	lastArgs   []string
	failNext   error
	active     atomic.Int32
	overlapped atomic.Bool
}

func NewRunner() *Runner {
	return &Runner{files: make(map[string][]byte)}
}

func (r *Runner) WriteInput(name string, data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.files[name] = append([]byte(nil), data...)
	return nil
}

func (r *Runner) Exec(_ context.Context, args []string, onProgress func(float64)) error {
	if r.active.Add(1) > 1 {
		r.overlapped.Store(true)
	}
	defer r.active.Add(-1)

	// Simulate engine work so overlapping callers would be observed.
	time.Sleep(2 * time.Millisecond)

	r.mu.Lock()
	r.execCount++
	r.lastArgs = append([]string(nil), args...)
	fail := r.failNext
	r.failNext = nil
	r.mu.Unlock()
	if fail != nil {
		return fail
	}

	input, start, end, output, err := parseArgs(args)
	if err != nil {
		return err
	}

	r.mu.Lock()
	_, exists := r.files[input]
	r.mu.Unlock()
	if !exists {
		return errors.New("input file missing: " + input)
	}

	if onProgress != nil {
		for _, p := range []float64{0.25, 0.5, 0.75, 1} {
			onProgress(p)
		}
	}

	durationMS := int((end - start) * 1000)
	if durationMS < 0 {
		durationMS = 0
	}
	r.mu.Lock()
	r.files[output] = make([]byte, durationMS)
	r.mu.Unlock()
	return nil
}

func (r *Runner) ReadOutput(name string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, exists := r.files[name]
	if !exists {
		return nil, errors.New("output file missing: " + name)
	}
	return append([]byte(nil), data...), nil
}

func (r *Runner) Remove(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.files, name)
	return nil
}

// FailNext makes the next Exec call return the given error.
func (r *Runner) FailNext(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failNext = err
}

func (r *Runner) ExecCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.execCount
}

func (r *Runner) LastArgs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.lastArgs...)
}

// FileCount reports how many virtual files remain, for leak checks.
func (r *Runner) FileCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.files)
}

func (r *Runner) Overlapped() bool {
	return r.overlapped.Load()
}

func parseArgs(args []string) (input string, start float64, end float64, output string, err error) {
	for i := 0; i < len(args)-1; i++ {
		switch args[i] {
		case "-i":
			input = args[i+1]
		case "-ss":
			start, err = strconv.ParseFloat(args[i+1], 64)
		case "-to":
			end, err = strconv.ParseFloat(args[i+1], 64)
		}
		if err != nil {
			return "", 0, 0, "", err
		}
	}
	if len(args) == 0 {
		return "", 0, 0, "", errors.New("empty argument list")
	}
	output = args[len(args)-1]
	if input == "" || output == "" || strings.HasPrefix(output, "-") {
		return "", 0, 0, "", errors.New("malformed argument list")
	}
	return input, start, end, output, nil
}
