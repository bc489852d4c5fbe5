package model

// Default inspector address, matching Node's own defaults.
const (
	DefaultInspectHost = "127.0.0.1"
	DefaultInspectPort = 9229
)

// HostPort is the address the inspector binds to.
type HostPort struct {
	Host string
	Port int
}

// DebugOptions groups the inspector-related flags.
type DebugOptions struct {
	InspectorEnabled bool // --inspect or --inspect-brk seen
	BreakFirstLine   bool // --inspect-brk seen
	HostPort         HostPort
}

// Request is everything the caller asked for on the Node command line.
// It may carry flags for several modes at once; picking one is the
// translator's job.
type Request struct {
	UseSystemCA  bool
	UseOpenSSLCA bool

	PrintHelp       bool
	PrintVersion    bool
	PrintEngineHelp bool // --v8-options

	RunTask string // package.json script name, empty if absent

	EvalString      string
	HasEvalString   bool
	PrintEvalResult bool // -p / --print

	EnvFile    string
	HasEnvFile bool // --env-file without a value keeps EnvFile empty

	ForceREPL  bool
	Conditions []string // order preserved, duplicates kept

	TestRunner bool
	WatchMode  bool
	WatchPaths []string // empty means watch everything

	Debug DebugOptions

	// RemainingArgs is the script path followed by the script's own
	// arguments, exactly as given.
	RemainingArgs []string
	// EngineArgs are raw V8 flags, forwarded as --v8-flags.
	EngineArgs []string
}

// WantsSystemCA reports whether either CA store flag was given.
func (r Request) WantsSystemCA() bool {
	return r.UseSystemCA || r.UseOpenSSLCA
}
