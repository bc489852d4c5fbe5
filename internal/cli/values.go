package cli

import (
	"errors"
	"strconv"
	"strings"

	"nodeshim/internal/model"
)

// builder accumulates flag effects before the Request is frozen.
type builder struct {
	req model.Request
}

func newBuilder() *builder {
	b := &builder{}
	b.req.Debug.HostPort = model.HostPort{
		Host: model.DefaultInspectHost,
		Port: model.DefaultInspectPort,
	}
	return b
}

// build returns a copy that shares no backing arrays with the builder.
func (b *builder) build() model.Request {
	r := b.req
	r.Conditions = cloneStrings(r.Conditions)
	r.WatchPaths = cloneStrings(r.WatchPaths)
	r.RemainingArgs = cloneStrings(r.RemainingArgs)
	r.EngineArgs = cloneStrings(r.EngineArgs)
	return r
}

func cloneStrings(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return append([]string(nil), s...)
}

// implicitValue is implemented by flags whose value may be left out
// (`--env-file`, `--inspect`). Such flags never consume the next token.
type implicitValue interface {
	SetImplicit() error
}

// evalValue backs -e/--eval and -p/--print.
type evalValue struct {
	b     *builder
	print bool
}

func (v *evalValue) String() string { return v.b.req.EvalString }
func (v *evalValue) Type() string   { return "script" }

func (v *evalValue) Set(s string) error {
	v.b.req.EvalString = s
	v.b.req.HasEvalString = true
	if v.print {
		v.b.req.PrintEvalResult = true
	}
	return nil
}

type envFileValue struct{ b *builder }

func (v *envFileValue) String() string { return v.b.req.EnvFile }
func (v *envFileValue) Type() string   { return "path" }

func (v *envFileValue) Set(s string) error {
	v.b.req.EnvFile = s
	v.b.req.HasEnvFile = true
	return nil
}

func (v *envFileValue) SetImplicit() error {
	v.b.req.HasEnvFile = true
	return nil
}

type watchPathValue struct{ b *builder }

func (v *watchPathValue) String() string { return strings.Join(v.b.req.WatchPaths, ",") }
func (v *watchPathValue) Type() string   { return "path" }

func (v *watchPathValue) Set(s string) error {
	v.b.req.WatchPaths = append(v.b.req.WatchPaths, s)
	v.b.req.WatchMode = true
	return nil
}

// inspectValue backs --inspect and --inspect-brk.
type inspectValue struct {
	b   *builder
	brk bool
}

func (v *inspectValue) String() string { return formatHostPort(v.b.req.Debug.HostPort) }
func (v *inspectValue) Type() string   { return "[host:]port" }

func (v *inspectValue) Set(s string) error {
	hp, err := parseHostPort(s, v.b.req.Debug.HostPort)
	if err != nil {
		return err
	}
	v.b.req.Debug.HostPort = hp
	return v.SetImplicit()
}

func (v *inspectValue) SetImplicit() error {
	v.b.req.Debug.InspectorEnabled = true
	if v.brk {
		v.b.req.Debug.BreakFirstLine = true
	}
	return nil
}

// hostPortValue backs --inspect-port and --debug-port, which move the
// inspector address without enabling it.
type hostPortValue struct{ b *builder }

func (v *hostPortValue) String() string { return formatHostPort(v.b.req.Debug.HostPort) }
func (v *hostPortValue) Type() string   { return "[host:]port" }

func (v *hostPortValue) Set(s string) error {
	hp, err := parseHostPort(s, v.b.req.Debug.HostPort)
	if err != nil {
		return err
	}
	v.b.req.Debug.HostPort = hp
	return nil
}

// discardValue accepts a Node flag that has no Deno counterpart worth
// emulating.
type discardValue struct{ kind string }

func (v discardValue) String() string   { return "" }
func (v discardValue) Type() string     { return v.kind }
func (v discardValue) Set(string) error { return nil }

var (
	errPortNotNumber = errors.New("port must be a number")
	errPortRange     = errors.New("port must be 0 or in range 1024 to 65535")
)

// parseHostPort reads "port", "host", "host:port", ":port" or "host:".
// Parts left out keep their value from cur. An unbracketed IPv6 address is
// taken as a host alone and bracketed; use "[addr]:port" to give a port.
func parseHostPort(s string, cur model.HostPort) (model.HostPort, error) {
	if s == "" {
		return cur, nil
	}
	if isDigits(s) {
		port, err := parsePort(s)
		if err != nil {
			return cur, err
		}
		cur.Port = port
		return cur, nil
	}

	if strings.Count(s, ":") > 1 && !strings.HasPrefix(s, "[") {
		cur.Host = "[" + s + "]"
		return cur, nil
	}

	idx := strings.LastIndex(s, ":")
	if idx == -1 || strings.HasSuffix(s, "]") {
		cur.Host = s
		return cur, nil
	}

	host, portStr := s[:idx], s[idx+1:]
	if portStr != "" {
		port, err := parsePort(portStr)
		if err != nil {
			return cur, err
		}
		cur.Port = port
	}
	if host != "" {
		cur.Host = host
	}
	return cur, nil
}

func parsePort(s string) (int, error) {
	if !isDigits(s) {
		return 0, errPortNotNumber
	}
	port, err := strconv.Atoi(s)
	if err != nil {
		return 0, errPortNotNumber
	}
	if port != 0 && (port < 1024 || port > 65535) {
		return 0, errPortRange
	}
	return port, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func formatHostPort(hp model.HostPort) string {
	return hp.Host + ":" + strconv.Itoa(hp.Port)
}
