package translate

import (
	"strconv"
	"strings"

	"nodeshim/internal/model"
)

// argv0 is how deno is told to behave like node.
const argv0 = "node"

// compatFlags open up permissions and turn on the Node compatibility
// layers. Order matters for anyone diffing the output.
var compatFlags = []string{
	"-A",
	"--unstable-node-globals",
	"--unstable-bare-node-builtins",
	"--unstable-detect-cjs",
	"--node-modules-dir=manual",
	"--no-config",
}

func versionArgs(*model.Request) []string {
	return []string{argv0, "--version"}
}

func engineHelpArgs(*model.Request) []string {
	return []string{argv0, "run", "--v8-flags=--help"}
}

func taskArgs(r *model.Request) []string {
	args := []string{argv0, "task", r.RunTask}
	return append(args, r.RemainingArgs...)
}

func evalArgs(r *model.Request) []string {
	args := append([]string{argv0, "eval"}, compatFlags...)
	args = appendEnvFile(args, r)
	if r.PrintEvalResult {
		args = append(args, "--print")
	}
	args = appendEngineFlags(args, r)
	args = append(args, r.EvalString, "--")
	return append(args, r.RemainingArgs...)
}

func replArgs(r *model.Request) []string {
	args := []string{argv0, "repl", "-A"}
	args = appendEngineFlags(args, r)
	args = appendConditions(args, r)
	args = appendInspect(args, r)
	args = append(args, "--")
	return append(args, r.RemainingArgs...)
}

// testArgs and runArgs share their flags; neither puts a "--" before the
// remaining arguments.
func testArgs(r *model.Request) []string {
	return appendScriptFlags([]string{argv0, "test"}, r)
}

func runArgs(r *model.Request) []string {
	return appendScriptFlags([]string{argv0, "run"}, r)
}

func appendScriptFlags(args []string, r *model.Request) []string {
	args = append(args, compatFlags...)
	args = appendWatch(args, r)
	args = appendEnvFile(args, r)
	args = appendEngineFlags(args, r)
	args = appendConditions(args, r)
	args = appendInspect(args, r)
	return append(args, r.RemainingArgs...)
}

func appendWatch(args []string, r *model.Request) []string {
	if !r.WatchMode {
		return args
	}
	if len(r.WatchPaths) == 0 {
		return append(args, "--watch")
	}
	escaped := make([]string, len(r.WatchPaths))
	for i, p := range r.WatchPaths {
		escaped[i] = EscapeWatchPath(p)
	}
	return append(args, "--watch="+strings.Join(escaped, ","))
}

// EscapeWatchPath doubles every comma so deno can tell an in-path comma
// from the list separator.
func EscapeWatchPath(p string) string {
	return strings.ReplaceAll(p, ",", ",,")
}

func appendEnvFile(args []string, r *model.Request) []string {
	if !r.HasEnvFile {
		return args
	}
	if r.EnvFile == "" {
		return append(args, "--env-file")
	}
	return append(args, "--env-file="+r.EnvFile)
}

func appendEngineFlags(args []string, r *model.Request) []string {
	if len(r.EngineArgs) == 0 {
		return args
	}
	return append(args, "--v8-flags="+strings.Join(r.EngineArgs, ","))
}

func appendConditions(args []string, r *model.Request) []string {
	if len(r.Conditions) == 0 {
		return args
	}
	return append(args, "--conditions="+strings.Join(r.Conditions, ","))
}

func appendInspect(args []string, r *model.Request) []string {
	d := r.Debug
	if !d.InspectorEnabled {
		return args
	}
	flag := "--inspect"
	if d.BreakFirstLine {
		flag = "--inspect-brk"
	}
	return append(args, flag+"="+d.HostPort.Host+":"+strconv.Itoa(d.HostPort.Port))
}
