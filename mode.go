package main

import (
	"errors"
	"flag"
	"fmt"
)

// errUsage indicates that tm was invoked incorrectly. main prints the usage
// text when it sees this.
var errUsage = errors.New("incorrect usage")

// mode identifies what tm was asked to do.
type mode int

const (
	modeNone mode = iota

	// List session names.
	modeList

	// One window per host.
	modeSSH

	// One pane per host, synchronized.
	modeSync

	// Kill a named session.
	modeKill

	// Create or attach a plain named session.
	modePlain

	// Create a session from a session file.
	modeConfig

	// Use the session file if one exists, a plain session otherwise.
	modeAuto
)

func (m mode) String() string {
	switch m {
	case modeList:
		return "ls"
	case modeSSH:
		return "s"
	case modeSync:
		return "ms"
	case modeKill:
		return "k"
	case modePlain:
		return "plain"
	case modeConfig:
		return "config"
	case modeAuto:
		return "auto"
	default:
		return "none"
	}
}

// invocation is the result of interpreting the command line.
type invocation struct {
	Mode  mode
	Name  string   // session name for k, plain, config, and auto
	Hosts []string // hosts for s and ms
	Token string   // replacement for the substitution token
}

// modeFlags collects the flag-style mode selectors. The traditional
// positional form (tm ls, tm s host..., and so on) is handled after flag
// parsing when none of these were given.
type modeFlags struct {
	List  bool
	SSH   bool
	Sync  bool
	Kill  string
	Plain string
	Cfg   string
	Token string
}

func (f *modeFlags) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&f.List, "l", false, "")
	fs.BoolVar(&f.SSH, "s", false, "")
	fs.BoolVar(&f.Sync, "m", false, "")
	fs.StringVar(&f.Kill, "k", "", "")
	fs.StringVar(&f.Plain, "n", "", "")
	fs.StringVar(&f.Cfg, "c", "", "")
	fs.StringVar(&f.Token, "r", "", "")
}

// Invocation resolves the parsed flags and remaining arguments into an
// invocation, falling back to the traditional positional syntax when no mode
// flag was used.
func (f *modeFlags) Invocation(args []string) (*invocation, error) {
	inv := invocation{Token: f.Token}

	selected := 0
	for _, on := range []bool{
		f.List, f.SSH, f.Sync,
		len(f.Kill) > 0, len(f.Plain) > 0, len(f.Cfg) > 0,
	} {
		if on {
			selected++
		}
	}
	if selected > 1 {
		return nil, fmt.Errorf("pick one of -l, -s, -m, -k, -n, -c: %w", errUsage)
	}

	switch {
	case f.List:
		inv.Mode = modeList
	case f.SSH:
		inv.Mode = modeSSH
		inv.Hosts = args
	case f.Sync:
		inv.Mode = modeSync
		inv.Hosts = args
	case len(f.Kill) > 0:
		inv.Mode = modeKill
		inv.Name = f.Kill
	case len(f.Plain) > 0:
		inv.Mode = modePlain
		inv.Name = f.Plain
	case len(f.Cfg) > 0:
		inv.Mode = modeConfig
		inv.Name = f.Cfg
	default:
		return traditional(args, inv.Token)
	}

	switch inv.Mode {
	case modeSSH, modeSync:
		if len(inv.Hosts) == 0 {
			return nil, fmt.Errorf("no hosts given: %w", errUsage)
		}
	default:
		if len(args) > 0 {
			return nil, fmt.Errorf("unexpected arguments %q: %w", args, errUsage)
		}
	}

	return &inv, nil
}

// traditional interprets the positional syntax: the first argument picks the
// mode, and a bare name means auto.
func traditional(args []string, token string) (*invocation, error) {
	if len(args) == 0 {
		return nil, errUsage
	}

	inv := invocation{Token: token}
	head, rest := args[0], args[1:]
	switch head {
	case "ls":
		inv.Mode = modeList
	case "s":
		inv.Mode = modeSSH
		inv.Hosts = rest
		if len(inv.Hosts) == 0 {
			return nil, fmt.Errorf("no hosts given: %w", errUsage)
		}
		return &inv, nil
	case "ms":
		inv.Mode = modeSync
		inv.Hosts = rest
		if len(inv.Hosts) == 0 {
			return nil, fmt.Errorf("no hosts given: %w", errUsage)
		}
		return &inv, nil
	case "k":
		inv.Mode = modeKill
		if len(rest) != 1 {
			return nil, fmt.Errorf("k needs exactly one session name: %w", errUsage)
		}
		inv.Name = rest[0]
		return &inv, nil
	default:
		inv.Mode = modeAuto
		inv.Name = head
	}

	if len(rest) > 0 {
		return nil, fmt.Errorf("unexpected arguments %q: %w", rest, errUsage)
	}
	return &inv, nil
}
