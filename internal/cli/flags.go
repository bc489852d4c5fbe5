package cli

import (
	"io"
	"strings"

	"github.com/spf13/pflag"
)

// ignoredSwitches are Node flags accepted for compatibility and dropped.
var ignoredSwitches = []string{
	"use-bundled-ca",
	"no-warnings",
	"no-deprecation",
	"trace-warnings",
	"trace-deprecation",
	"trace-uncaught",
	"pending-deprecation",
	"enable-source-maps",
	"preserve-symlinks",
	"preserve-symlinks-main",
}

// ignoredWithValue are dropped too, but still swallow their argument.
var ignoredWithValue = []string{
	"title",
	"unhandled-rejections",
}

// ignoredFamilies are prefixes of dropped flags, e.g. --experimental-vm-modules.
var ignoredFamilies = []string{
	"experimental-",
	"no-experimental-",
}

// engineFlags are V8 options that Node accepts directly on its command line.
var engineFlags = map[string]bool{
	"max-old-space-size":          true,
	"max-semi-space-size":         true,
	"stack-size":                  true,
	"stack-trace-limit":           true,
	"expose-gc":                   true,
	"allow-natives-syntax":        true,
	"jitless":                     true,
	"single-threaded":             true,
	"random-seed":                 true,
	"abort-on-uncaught-exception": true,
	"no-opt":                      true,
	"no-lazy":                     true,
}

var engineFamilies = []string{
	"harmony",
	"no-harmony",
	"trace-gc",
}

func normalizeName(name string) string {
	return strings.ReplaceAll(name, "_", "-")
}

func normalizeFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(normalizeName(name))
}

func isEngineFlag(name string) bool {
	name = normalizeName(name)
	if engineFlags[name] {
		return true
	}
	return hasAnyPrefix(name, engineFamilies)
}

func isIgnoredFamily(name string) bool {
	return hasAnyPrefix(normalizeName(name), ignoredFamilies)
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// nonEmptyFlags reject an empty value as if none had been given.
var nonEmptyFlags = map[string]bool{
	"run":          true,
	"conditions":   true,
	"watch-path":   true,
	"inspect-port": true,
	"debug-port":   true,
}

// shortAliases maps multi-letter short forms Node documents on its own.
var shortAliases = map[string]string{
	"-pe": "print",
}

// newFlagSet registers the Node flag vocabulary with every value bound to b.
// The set is only used as a registry and for usage text; the scan itself
// lives in Parser.
func newFlagSet(b *builder) *pflag.FlagSet {
	fs := pflag.NewFlagSet("node", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SetNormalizeFunc(normalizeFlagName)
	fs.SortFlags = false

	fs.BoolVarP(&b.req.PrintHelp, "help", "h", false, "Print this help message")
	fs.BoolVarP(&b.req.PrintVersion, "version", "v", false, "Print the Deno version")
	fs.BoolVar(&b.req.PrintEngineHelp, "v8-options", false, "Print V8 command line options")
	fs.StringVar(&b.req.RunTask, "run", "", "Run a `task` from package.json or deno.json")
	fs.VarP(&evalValue{b: b}, "eval", "e", "Evaluate `script`")
	fs.VarP(&evalValue{b: b, print: true}, "print", "p", "Evaluate `script` and print the result")
	fs.Var(&envFileValue{b: b}, "env-file", "Load environment variables from `path` (default .env)")
	fs.BoolVarP(&b.req.ForceREPL, "interactive", "i", false, "Always enter the REPL")
	fs.StringArrayVarP(&b.req.Conditions, "conditions", "C", nil, "Additional module resolution `condition`, repeatable")
	fs.BoolVar(&b.req.TestRunner, "test", false, "Run tests with the Deno test runner")
	fs.BoolVar(&b.req.WatchMode, "watch", false, "Restart on file changes")
	fs.Var(&watchPathValue{b: b}, "watch-path", "Watch `path` instead of the module graph, repeatable")
	fs.Var(&inspectValue{b: b}, "inspect", "Activate the inspector on [host:]port")
	fs.Var(&inspectValue{b: b, brk: true}, "inspect-brk", "Activate the inspector and break on the first line")
	fs.Var(&hostPortValue{b: b}, "inspect-port", "Set the inspector [host:]port")
	fs.Var(&hostPortValue{b: b}, "debug-port", "Alias for --inspect-port")
	fs.BoolVar(&b.req.UseSystemCA, "use-system-ca", false, "Trust the operating system certificate store")
	fs.BoolVar(&b.req.UseOpenSSLCA, "use-openssl-ca", false, "Trust the system certificate store (OpenSSL)")

	for _, name := range ignoredSwitches {
		fs.Var(discardValue{kind: "bool"}, name, "ignored")
		_ = fs.MarkHidden(name)
	}
	for _, name := range ignoredWithValue {
		fs.Var(discardValue{kind: "string"}, name, "ignored")
		_ = fs.MarkHidden(name)
	}

	return fs
}

// Usage renders the visible flags the way pflag prints defaults.
func Usage() string {
	return newFlagSet(newBuilder()).FlagUsages()
}
