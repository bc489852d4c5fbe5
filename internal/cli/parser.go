package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"

	"nodeshim/internal/model"
)

// ParseError holds every problem found in one scan.
type ParseError struct {
	Messages []string
}

// Label is "Error" for a single message and "Errors" otherwise.
func (e *ParseError) Label() string {
	if len(e.Messages) == 1 {
		return "Error"
	}
	return "Errors"
}

// Detail joins the messages with ", ".
func (e *ParseError) Detail() string {
	return strings.Join(e.Messages, ", ")
}

func (e *ParseError) Error() string {
	return e.Label() + ": " + e.Detail()
}

type arity int

const (
	arityNone arity = iota
	arityOptional
	arityRequired
)

func arityOf(f *pflag.Flag) arity {
	if _, ok := f.Value.(implicitValue); ok {
		return arityOptional
	}
	if f.Value.Type() == "bool" {
		return arityNone
	}
	return arityRequired
}

// Parser turns a Node command line into a model.Request.
type Parser struct {
	log *slog.Logger
}

// NewParser creates a Parser logging to logger, or to slog's default when nil.
func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{log: logger}
}

// Parse scans args (program name already stripped) left to right. Flag
// scanning ends at "--" or at the first token that is not a flag; that
// token and everything after it become RemainingArgs untouched.
// Problems do not stop the scan: all of them come back in a *ParseError.
func (p *Parser) Parse(args []string) (model.Request, error) {
	p.log.Debug("Node argument scan started.", "tokens", len(args))

	b := newBuilder()
	fs := newFlagSet(b)
	var errs []string

	i := 0
scan:
	for i < len(args) {
		tok := args[i]
		switch {
		case tok == "--":
			i++
			break scan
		case tok == "-" || !strings.HasPrefix(tok, "-"):
			break scan
		}
		i++

		var used int
		var err error
		if strings.HasPrefix(tok, "--") {
			used, err = p.parseLong(fs, b, tok, args[i:])
		} else {
			used, err = p.parseShort(fs, tok, args[i:])
		}
		i += used
		if err != nil {
			p.log.Debug("Rejected argument.", "token", tok, "error", err)
			errs = append(errs, err.Error())
		}
	}
	b.req.RemainingArgs = args[i:]

	if len(errs) > 0 {
		return model.Request{}, &ParseError{Messages: errs}
	}

	req := b.build()
	p.log.Debug("Node argument scan finished.",
		"remaining", len(req.RemainingArgs),
		"engine", len(req.EngineArgs))
	return req, nil
}

func (p *Parser) parseLong(fs *pflag.FlagSet, b *builder, tok string, rest []string) (int, error) {
	name, value, hasValue := strings.Cut(tok[2:], "=")
	if name == "" {
		return 0, fmt.Errorf("bad option: %s", tok)
	}
	if isEngineFlag(name) {
		b.req.EngineArgs = append(b.req.EngineArgs, tok)
		return 0, nil
	}

	f := fs.Lookup(name)
	if f == nil {
		if isIgnoredFamily(name) {
			return 0, nil
		}
		return 0, fmt.Errorf("bad option: %s", tok)
	}
	return apply(f, "--"+name, value, hasValue, rest)
}

func (p *Parser) parseShort(fs *pflag.FlagSet, tok string, rest []string) (int, error) {
	var f *pflag.Flag
	if long, ok := shortAliases[tok]; ok {
		f = fs.Lookup(long)
	} else if len(tok) == 2 {
		f = fs.ShorthandLookup(tok[1:])
	}
	if f == nil {
		return 0, fmt.Errorf("bad option: %s", tok)
	}
	return apply(f, tok, "", false, rest)
}

// apply feeds one flag occurrence to its Value and reports how many of the
// following tokens it consumed.
func apply(f *pflag.Flag, display, value string, hasValue bool, rest []string) (int, error) {
	switch arityOf(f) {
	case arityNone:
		if hasValue {
			return 0, fmt.Errorf("%s does not take a value", display)
		}
		return 0, set(f, display, "true")
	case arityOptional:
		if !hasValue {
			f.Changed = true
			return 0, f.Value.(implicitValue).SetImplicit()
		}
		return 0, set(f, display, value)
	default:
		used := 0
		if !hasValue {
			if len(rest) == 0 {
				return 0, fmt.Errorf("%s requires an argument", display)
			}
			value, used = rest[0], 1
		}
		if value == "" && nonEmptyFlags[f.Name] {
			return used, fmt.Errorf("%s requires an argument", display)
		}
		return used, set(f, display, value)
	}
}

func set(f *pflag.Flag, display, value string) error {
	if err := f.Value.Set(value); err != nil {
		return fmt.Errorf("invalid value %q for %s: %v", value, display, err)
	}
	f.Changed = true
	return nil
}
