package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Runner shells out to the ffmpeg binary. Job files live in a scratch
// directory and are addressed by bare name, so the command runs with
// that directory as its working dir.
type Runner struct {
	binary string
	dir    string
}

func NewRunner(binary string, dir string) (*Runner, error) {
	if strings.TrimSpace(binary) == "" {
		binary = "ffmpeg"
	}
	if strings.TrimSpace(dir) == "" {
		scratch, err := os.MkdirTemp("", "clip-jobs-")
		if err != nil {
			return nil, fmt.Errorf("create scratch dir: %w", err)
		}
		dir = scratch
	}
	return &Runner{binary: binary, dir: dir}, nil
}

func (r *Runner) WriteInput(name string, data []byte) error {
	return os.WriteFile(filepath.Join(r.dir, name), data, 0o600)
}

func (r *Runner) Exec(ctx context.Context, args []string, onProgress func(float64)) error {
	full := append([]string{"-y", "-hide_banner", "-loglevel", "error"}, args...)
	cmd := exec.CommandContext(ctx, r.binary, full...)
	cmd.Dir = r.dir

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			return err
		}
		return fmt.Errorf("%w: %s", err, detail)
	}
	if onProgress != nil {
		onProgress(1)
	}
	return nil
}

func (r *Runner) ReadOutput(name string) ([]byte, error) {
	return os.ReadFile(filepath.Join(r.dir, name))
}

func (r *Runner) Remove(name string) error {
	err := os.Remove(filepath.Join(r.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
