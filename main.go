package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/charmbracelet/lipgloss"

	"nodeshim/internal/cli"
	"nodeshim/internal/config"
	"nodeshim/internal/ctxlog"
	"nodeshim/internal/launch"
	"nodeshim/internal/model"
	"nodeshim/internal/translate"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, os.LookupEnv))
}

// run does everything main does except exit, so tests can drive it.
// Successful launches in exec mode never return here.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, lookupEnv func(string) (string, bool)) int {
	getenv := func(key string) string {
		v, _ := lookupEnv(key)
		return v
	}

	cfg, err := config.Load(config.DefaultPath(getenv), getenv)
	if err == nil {
		err = cfg.ApplyEnv(lookupEnv)
	}
	if err != nil {
		printError(stderr, "Error", err.Error())
		return 1
	}

	logger := config.NewLogger(cfg.Log, stderr)
	ctx = ctxlog.WithLogger(ctx, logger)

	req, err := cli.NewParser(logger).Parse(args)
	if err != nil {
		var parseErr *cli.ParseError
		if errors.As(err, &parseErr) {
			printError(stderr, parseErr.Label(), parseErr.Detail())
		} else {
			printError(stderr, "Error", err.Error())
		}
		return 1
	}

	t := translate.Translate(req)
	logger.Debug("Translated invocation.", "mode", t.Mode, "argv", t.Argv, "env", t.Env)

	if !t.Launches() {
		printHelp(stdout)
		return 0
	}

	if cfg.Debug {
		if err := launch.Report(stderr, cfg.Runtime.Binary, t); err != nil {
			return 1
		}
		return 0
	}

	path, err := launch.ResolveBinary(cfg.Runtime.Binary)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to execute %s: %v\n", cfg.Runtime.Binary, err)
		return 1
	}

	launcher := launch.DetectLauncher(runtime.GOOS, cfg.Runtime.Spawn)
	logger.Debug("Launching runtime.", "launcher", launcher.Name(), "path", path)

	env := launch.Environ(os.Environ(), t.Env)
	if err := launcher.Launch(ctx, path, t.Argv, env); err != nil {
		var exitErr *launch.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.Code
		}
		fmt.Fprintf(stderr, "Failed to execute %s: %v\n", cfg.Runtime.Binary, err)
		return 1
	}
	return 0
}

func printError(w io.Writer, label, detail string) {
	style := lipgloss.NewRenderer(w).NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	fmt.Fprintf(w, "%s %s\n", style.Render(label+":"), detail)
}

func printHelp(w io.Writer) {
	r := lipgloss.NewRenderer(w)
	title := r.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	dim := r.NewStyle().Foreground(lipgloss.Color("240"))

	fmt.Fprintf(w, "%s %s\n", title.Render("node-shim"), dim.Render(model.Version))
	fmt.Fprintln(w, "This is a shim that translates Node CLI arguments to Deno CLI arguments.")
	fmt.Fprintln(w, "Use exactly like you would use Node.js, but it will run with Deno.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage: node [options] [script.js | -e \"script\" | -] [--] [arguments]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprint(w, cli.Usage())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintf(w, "  %-20s %s\n", config.EnvDebug, "print the deno invocation instead of running it")
	fmt.Fprintf(w, "  %-20s %s\n", config.EnvBinary, "deno executable to run (default \"deno\")")
	fmt.Fprintf(w, "  %-20s %s\n", config.EnvSpawn, "run deno as a child process instead of replacing the shim")
	fmt.Fprintf(w, "  %-20s %s\n", config.EnvLogLevel, "shim log level: debug, info, warn, error")
	fmt.Fprintf(w, "  %-20s %s\n", config.EnvConfig, "path to the shim config file")
}
