package launch

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"os/exec"
	"os/signal"
	"slices"
	"strings"

	"nodeshim/internal/ctxlog"
)

// ExitError carries the exit status of a spawned runtime.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("runtime exited with status %d", e.Code)
}

// ResolveBinary finds the runtime executable on PATH, or checks it directly
// when name contains a path separator.
func ResolveBinary(name string) (string, error) {
	return exec.LookPath(name)
}

// Environ overlays additions on base. base is not modified and the current
// process environment is never touched.
func Environ(base []string, additions map[string]string) []string {
	env := make([]string, 0, len(base)+len(additions))
	for _, e := range base {
		key, _, _ := strings.Cut(e, "=")
		if _, replaced := additions[key]; replaced {
			continue
		}
		env = append(env, e)
	}
	for _, key := range slices.Sorted(maps.Keys(additions)) {
		env = append(env, key+"="+additions[key])
	}
	return env
}

// Launch starts argv[0]'s runtime as a child, keeping argv[0] as given, and
// returns once it exits. A non-zero exit becomes an *ExitError.
func (l *SpawnLauncher) Launch(ctx context.Context, path string, argv, env []string) error {
	logger := ctxlog.FromContext(ctx)

	cmd := exec.CommandContext(ctx, path)
	cmd.Args = argv
	cmd.Env = env
	cmd.Stdin = l.Stdin
	cmd.Stdout = l.Stdout
	cmd.Stderr = l.Stderr

	logger.Debug("Spawning runtime.", "path", path, "argv", argv)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", path, err)
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, forwardedSignals...)
	defer signal.Stop(sigs)

	done := make(chan struct{})
	go func() {
		for {
			select {
			case sig := <-sigs:
				logger.Debug("Forwarding signal.", "signal", sig.String())
				_ = cmd.Process.Signal(sig)
			case <-done:
				return
			}
		}
	}()

	err := cmd.Wait()
	close(done)
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		if code < 0 {
			// Killed by a signal.
			code = 1
		}
		return &ExitError{Code: code}
	}
	return err
}
