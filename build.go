package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/abhinav/tm/internal/log"
	"github.com/abhinav/tm/internal/sessionfile"
	"github.com/abhinav/tm/internal/tmux"
	"github.com/benbjohnson/clock"
)

const (
	_maxSplitRetries = 5
	_splitRetryDelay = 50 * time.Millisecond
	_syncWindowName  = "sync"
)

// builder creates tmux sessions. Sessions are always created detached; the
// caller attaches afterwards.
type builder struct {
	Tmux tmux.Driver
	Log  *log.Logger

	// Clock paces retries after failed splits.
	Clock clock.Clock

	// BaseIndex is the tmux base-index, used to target the first window
	// of a new session.
	BaseIndex int
}

func (b *builder) windowTarget(session string, idx int) string {
	return fmt.Sprintf("%v:%v", session, b.BaseIndex+idx)
}

// withLayoutRetry runs op, retiling the target window and retrying when tmux
// reports that there is no room for another pane. Gives up after a fixed
// number of attempts.
func (b *builder) withLayoutRetry(target string, op func() error) error {
	var err error
	for i := 0; i < _maxSplitRetries; i++ {
		err = op()
		if err == nil || !errors.Is(err, tmux.ErrPaneTooSmall) {
			return err
		}

		b.Log.Debugf("retiling %v to make room for another pane", target)
		if lerr := b.Tmux.SelectLayout(tmux.SelectLayoutRequest{
			Target: target,
			Layout: "tiled",
		}); lerr != nil {
			return lerr
		}
		b.Clock.Sleep(_splitRetryDelay)
	}
	return fmt.Errorf("no room for new pane after %d attempts: %w", _maxSplitRetries, err)
}

// multiWindow creates a session with one window per host, each running the
// connect command for its host.
func (b *builder) multiWindow(name string, hosts, connect []string) error {
	if _, err := b.Tmux.NewSession(tmux.NewSessionRequest{
		Name:       name,
		WindowName: hosts[0],
		Detached:   true,
		Command:    hostArgv(connect, hosts[0]),
	}); err != nil {
		return fmt.Errorf("create session %q: %w", name, err)
	}

	for _, host := range hosts[1:] {
		err := b.withLayoutRetry(name, func() error {
			return b.Tmux.NewWindow(tmux.NewWindowRequest{
				Session: name,
				Name:    host,
				Command: hostArgv(connect, host),
			})
		})
		if err != nil {
			return fmt.Errorf("create window for %q: %w", host, err)
		}
	}

	b.Log.Debugf("created session %v with %d windows", name, len(hosts))
	return nil
}

// synchronized creates a session with a single tiled window holding one pane
// per host, with pane input synchronized.
func (b *builder) synchronized(name string, hosts, connect []string) error {
	if _, err := b.Tmux.NewSession(tmux.NewSessionRequest{
		Name:       name,
		WindowName: _syncWindowName,
		Detached:   true,
		Command:    hostArgv(connect, hosts[0]),
	}); err != nil {
		return fmt.Errorf("create session %q: %w", name, err)
	}

	target := b.windowTarget(name, 0)
	for _, host := range hosts[1:] {
		err := b.withLayoutRetry(target, func() error {
			return b.Tmux.SplitWindow(tmux.SplitWindowRequest{
				Target:  target,
				Command: hostArgv(connect, host),
			})
		})
		if err != nil {
			return fmt.Errorf("create pane for %q: %w", host, err)
		}

		// Retile after every split so that later splits have room.
		if err := b.Tmux.SelectLayout(tmux.SelectLayoutRequest{
			Target: target,
			Layout: "tiled",
		}); err != nil {
			return fmt.Errorf("tile %v: %w", target, err)
		}
	}

	if err := b.Tmux.SetWindowOption(tmux.SetWindowOptionRequest{
		Target: target,
		Name:   "synchronize-panes",
		Value:  "on",
	}); err != nil {
		return fmt.Errorf("synchronize %v: %w", target, err)
	}

	b.Log.Debugf("created session %v with %d synchronized panes", name, len(hosts))
	return nil
}

// plain creates an empty session running the user's shell.
func (b *builder) plain(name string) error {
	if _, err := b.Tmux.NewSession(tmux.NewSessionRequest{
		Name:     name,
		Detached: true,
	}); err != nil {
		return fmt.Errorf("create session %q: %w", name, err)
	}
	return nil
}

// fromRecord creates a session from a parsed session file.
func (b *builder) fromRecord(name string, rec *sessionfile.Record) error {
	if rec.FreeForm {
		return b.fromCommands(name, rec.Directives)
	}

	if len(rec.Directives) == 0 {
		return b.plain(name)
	}

	first := rec.Directives[0]
	if _, err := b.Tmux.NewSession(tmux.NewSessionRequest{
		Name:       name,
		WindowName: first.Host,
		Detached:   true,
		Command:    first.Connect,
	}); err != nil {
		return fmt.Errorf("create session %q: %w", name, err)
	}

	for _, d := range rec.Directives[1:] {
		err := b.withLayoutRetry(name, func() error {
			return b.Tmux.NewWindow(tmux.NewWindowRequest{
				Session: name,
				Name:    d.Host,
				Command: d.Connect,
			})
		})
		if err != nil {
			return fmt.Errorf("create window for %q: %w", d.Host, err)
		}
	}

	return nil
}

// fromCommands replays the tmux commands from a free-form session file. The
// first command must be new-session; its session name is overridden so that
// the resulting session matches the name tm chose.
func (b *builder) fromCommands(name string, dirs []sessionfile.Directive) error {
	if len(dirs) == 0 {
		return errors.New("a free-form session file needs at least a new-session command")
	}

	head, err := parseCmdArgs(dirs[0].Command[1:])
	if err != nil {
		return fmt.Errorf("command %q: %w", dirs[0].Command, err)
	}
	switch dirs[0].Command[0] {
	case "new-session", "new":
	default:
		return fmt.Errorf("a free-form session file must start with new-session, not %q", dirs[0].Command[0])
	}

	if _, err := b.Tmux.NewSession(tmux.NewSessionRequest{
		Name:       name,
		WindowName: head.Name,
		Detached:   true,
		Command:    head.Rest,
	}); err != nil {
		return fmt.Errorf("create session %q: %w", name, err)
	}

	for _, d := range dirs[1:] {
		if err := b.runCommand(name, d.Command); err != nil {
			return fmt.Errorf("command %q: %w", d.Command, err)
		}
	}

	return nil
}

func (b *builder) runCommand(session string, cmd []string) error {
	args, err := parseCmdArgs(cmd[1:])
	if err != nil {
		return err
	}

	target := args.Target
	if len(target) == 0 {
		target = session
	}

	switch verb := cmd[0]; verb {
	case "new-window", "neww":
		sess := session
		if len(args.Target) > 0 {
			sess = args.Target
		}
		return b.withLayoutRetry(sess, func() error {
			return b.Tmux.NewWindow(tmux.NewWindowRequest{
				Session: sess,
				Name:    args.Name,
				Command: args.Rest,
			})
		})

	case "split-window", "splitw":
		return b.withLayoutRetry(target, func() error {
			return b.Tmux.SplitWindow(tmux.SplitWindowRequest{
				Target:     target,
				Horizontal: args.Horizontal,
				Command:    args.Rest,
			})
		})

	case "select-layout", "selectl":
		if len(args.Rest) != 1 {
			return errors.New("select-layout needs a layout name")
		}
		return b.Tmux.SelectLayout(tmux.SelectLayoutRequest{
			Target: target,
			Layout: args.Rest[0],
		})

	case "set-window-option", "setw":
		if len(args.Rest) < 2 {
			return errors.New("set-window-option needs a name and a value")
		}
		return b.Tmux.SetWindowOption(tmux.SetWindowOptionRequest{
			Target: target,
			Name:   args.Rest[0],
			Value:  strings.Join(args.Rest[1:], " "),
		})

	case "send-keys":
		if len(args.Rest) == 0 {
			return errors.New("send-keys needs keys to send")
		}
		return b.Tmux.SendKeys(tmux.SendKeysRequest{
			Target: target,
			Keys:   args.Rest,
		})

	default:
		return fmt.Errorf("unsupported command %q", verb)
	}
}

// cmdArgs holds the subset of tmux command flags that free-form session
// files may use.
type cmdArgs struct {
	Target     string // -t
	Name       string // -n
	Session    string // -s
	Horizontal bool   // -h
	Detached   bool   // -d
	Rest       []string
}

func parseCmdArgs(args []string) (*cmdArgs, error) {
	var c cmdArgs
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			c.Rest = args[i:]
			break
		}
		switch arg {
		case "-h":
			c.Horizontal = true
		case "-v":
			// Vertical split is the default.
		case "-d":
			c.Detached = true
		case "-t", "-n", "-s":
			if i+1 >= len(args) {
				return nil, fmt.Errorf("%v needs a value", arg)
			}
			i++
			switch arg {
			case "-t":
				c.Target = args[i]
			case "-n":
				c.Name = args[i]
			case "-s":
				c.Session = args[i]
			}
		default:
			return nil, fmt.Errorf("unsupported flag %q", arg)
		}
	}
	return &c, nil
}

// hostArgv builds the argv that connects to host.
func hostArgv(connect []string, host string) []string {
	argv := make([]string, 0, len(connect)+1)
	argv = append(argv, connect...)
	argv = append(argv, host)
	return argv
}
