//go:build !unix

package launch

import (
	"errors"
	"os"
)

const canReplace = false

var forwardedSignals = []os.Signal{os.Interrupt}

func replaceImage(string, []string, []string) error {
	return errors.New("process replacement is not supported on this platform")
}
