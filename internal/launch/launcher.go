package launch

import (
	"context"
	"fmt"
	"io"
	"os"

	"nodeshim/internal/ctxlog"
)

// Launcher hands control to the target runtime.
type Launcher interface {
	Launch(ctx context.Context, path string, argv, env []string) error
	Name() string
}

// ExecLauncher replaces the current process image. On success Launch
// never returns.
type ExecLauncher struct{}

func (l *ExecLauncher) Name() string {
	return "exec"
}

func (l *ExecLauncher) Launch(ctx context.Context, path string, argv, env []string) error {
	ctxlog.FromContext(ctx).Debug("Replacing process image.", "path", path, "argv", argv)
	if err := replaceImage(path, argv, env); err != nil {
		return fmt.Errorf("exec %s: %w", path, err)
	}
	return nil
}

// SpawnLauncher runs the runtime as a child and waits for it, for
// platforms without exec. Signals the shim receives are passed on.
type SpawnLauncher struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func (l *SpawnLauncher) Name() string {
	return "spawn"
}

// DetectLauncher picks exec where the platform has it, unless spawning
// is forced.
func DetectLauncher(goos string, forceSpawn bool) Launcher {
	if forceSpawn || !canReplace || goos == "windows" {
		return &SpawnLauncher{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
	}
	return &ExecLauncher{}
}
