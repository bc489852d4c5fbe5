package model

// Mode is the execution intent resolved from a Request.
type Mode string

const (
	ModeHelp       Mode = "help"
	ModeVersion    Mode = "version"
	ModeEngineHelp Mode = "engine-help"
	ModeTask       Mode = "task"
	ModeEval       Mode = "eval"
	ModeREPL       Mode = "repl"
	ModeTest       Mode = "test"
	ModeRun        Mode = "run"
)

// Translation is the target invocation produced for a Request.
type Translation struct {
	Mode Mode
	Argv []string          // argv for deno; Argv[0] is always "node"
	Env  map[string]string // variables to set right before launch
}

// Launches reports whether the translation starts the target runtime.
// Help is answered locally.
func (t Translation) Launches() bool {
	return t.Mode != ModeHelp
}
