// Package translate maps a parsed Node request onto a deno argument vector.
package translate

import (
	"nodeshim/internal/model"
)

// CAStoreEnv is set to "system" when a system CA store flag was given.
const CAStoreEnv = "DENO_TLS_CA_STORE"

// rule pairs a mode predicate with the builder for its argv. Rules are
// evaluated in order and the first match wins.
type rule struct {
	mode  model.Mode
	when  func(r *model.Request) bool
	build func(r *model.Request) []string
}

var rules = []rule{
	{model.ModeHelp, func(r *model.Request) bool { return r.PrintHelp }, nil},
	{model.ModeVersion, func(r *model.Request) bool { return r.PrintVersion }, versionArgs},
	{model.ModeEngineHelp, func(r *model.Request) bool { return r.PrintEngineHelp }, engineHelpArgs},
	{model.ModeTask, func(r *model.Request) bool { return r.RunTask != "" }, taskArgs},
	{model.ModeEval, func(r *model.Request) bool { return r.HasEvalString }, evalArgs},
	{model.ModeREPL, func(r *model.Request) bool { return len(r.RemainingArgs) == 0 || r.ForceREPL }, replArgs},
	{model.ModeTest, func(r *model.Request) bool { return r.TestRunner }, testArgs},
	{model.ModeRun, func(*model.Request) bool { return true }, runArgs},
}

// Precedence lists the modes in the order they are tried.
func Precedence() []model.Mode {
	modes := make([]model.Mode, len(rules))
	for i, rl := range rules {
		modes[i] = rl.mode
	}
	return modes
}

// Resolve picks the mode a request runs in.
func Resolve(r model.Request) model.Mode {
	return match(&r).mode
}

func match(r *model.Request) rule {
	for _, rl := range rules {
		if rl.when(r) {
			return rl
		}
	}
	// The last rule always matches.
	return rules[len(rules)-1]
}

// Translate never fails: anything worth rejecting was rejected by the parser.
func Translate(r model.Request) model.Translation {
	rl := match(&r)

	t := model.Translation{Mode: rl.mode}
	if rl.build != nil {
		t.Argv = rl.build(&r)
	}
	if r.WantsSystemCA() {
		t.Env = map[string]string{CAStoreEnv: "system"}
	}
	return t
}
