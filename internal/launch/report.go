package launch

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"nodeshim/internal/model"
)

// Report writes the debug dump for t: the argv as a quoted list, then one
// KEY=value line per environment addition.
//
//	deno ["node", "run", "-A", "main.js"]
//	DENO_TLS_CA_STORE=system
func Report(w io.Writer, binary string, t model.Translation) error {
	quoted := make([]string, len(t.Argv))
	for i, a := range t.Argv {
		quoted[i] = strconv.Quote(a)
	}
	if _, err := fmt.Fprintf(w, "%s [%s]\n", binary, strings.Join(quoted, ", ")); err != nil {
		return err
	}
	for _, key := range slices.Sorted(maps.Keys(t.Env)) {
		if _, err := fmt.Fprintf(w, "%s=%s\n", key, t.Env[key]); err != nil {
			return err
		}
	}
	return nil
}
