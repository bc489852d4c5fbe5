//go:build unix

package launch

import (
	"os"
	"syscall"
)

const canReplace = true

var forwardedSignals = []os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGHUP}

func replaceImage(path string, argv, env []string) error {
	return syscall.Exec(path, argv, env)
}
