package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/abhinav/tm/internal/log"
	"github.com/abhinav/tm/internal/paniclog"
	"github.com/abhinav/tm/internal/sessionfile"
	"github.com/abhinav/tm/internal/tmux"
	"github.com/abhinav/tm/internal/tmux/tmuxopt"
	"github.com/benbjohnson/clock"
)

const _name = "tm"

func main() {
	cmd := mainCmd{
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Getenv:   os.Getenv,
		Environ:  os.Environ,
		Getpid:   os.Getpid,
		Hostname: os.Hostname,
		Clock:    clock.New(),
	}
	os.Exit(cmd.Run(os.Args[1:]))
}

type mainCmd struct {
	Stdout io.Writer
	Stderr io.Writer

	Getenv   func(string) string    // == os.Getenv
	Environ  func() []string        // == os.Environ
	Getpid   func() int             // == os.Getpid
	Hostname func() (string, error) // == os.Hostname

	// Tmux overrides the driver used to talk to tmux. Defaults to a
	// ShellDriver.
	Tmux tmux.Driver

	Clock clock.Clock
}

const _usage = `usage: %[1]v [options] [mode [args ...]]

tm is a convenience wrapper around tmux. It creates or re-attaches to
sessions described by the command line or by session files.

Modes may be given as flags or as a leading positional argument:

	%[1]v ls            %[1]v -l
		list session names
	%[1]v s HOST ...    %[1]v -s HOST ...
		one window per host, connected over ssh
	%[1]v ms HOST ...   %[1]v -m HOST ...
		one synchronized pane per host in a tiled window
	%[1]v k NAME        %[1]v -k NAME
		kill the named session
	%[1]v NAME
		attach to the session file NAME if one exists,
		or to a plain session called NAME

The following flags are available:

	-n NAME
		create or attach a plain session called NAME,
		ignoring session files.
	-c NAME
		create a session from the session file NAME.
		The file must exist.
	-r VALUE
		replace the ++TM++ token in session files with VALUE.
	-e OPTS
		pass OPTS to tmux attach-session.
	-v
		log more output.

Session files live in $TM_CONFIG_DIR (default ~/.tm) with a .cfg or .cmd
extension. Behavior is further controlled by the TM_SSH_CMD, TM_SORT_HOSTS,
TM_HOSTNAME_PREFIX, TM_ATTACH_OPTS, TM_BASE_INDEX, TM_TMPDIR, and TM_DEBUG
environment variables, and by the matching @tm-* tmux options.
`

// Run runs tm and reports the process exit code.
func (cmd *mainCmd) Run(args []string) (exitCode int) {
	switch err := cmd.run(args); {
	case err == nil:
		return 0
	case errors.Is(err, flag.ErrHelp):
		fmt.Fprintf(cmd.Stdout, _usage, _name)
		return 0
	case errors.Is(err, errUsage):
		fmt.Fprintln(cmd.Stderr, err)
		fmt.Fprintf(cmd.Stderr, _usage, _name)
		return 2
	default:
		fmt.Fprintf(cmd.Stderr, "%v: %v\n", _name, err)
		return 1
	}
}

func (cmd *mainCmd) run(args []string) (err error) {
	defer paniclog.Recover(&err, cmd.Stderr)

	// Run prints the usage text itself, both for -h and for bad
	// invocations, so the FlagSet stays quiet.
	fs := flag.NewFlagSet(_name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		cfg   config
		modes modeFlags
	)
	cfg.RegisterFlags(fs)
	modes.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%v: %w", err, errUsage)
	}

	inv, err := modes.Invocation(fs.Args())
	if err != nil {
		return err
	}

	envCfg, err := configFromEnv(cmd.Getenv)
	if err != nil {
		return err
	}
	cfg.FillFrom(envCfg)

	logger := log.New(cmd.Stderr)
	if cfg.Verbose {
		logger = logger.WithLevel(log.Debug)
	}

	driver := cmd.Tmux
	if driver == nil {
		var sh tmux.ShellDriver
		sh.SetLogger(logger.WithName("tmux"))
		driver = &sh
	}

	// tmux options sit between the environment and the builtin defaults.
	// Reading them fails when tmux is not running; that is fine.
	var optCfg config
	optLoader := tmuxopt.Loader{Tmux: driver}
	optCfg.RegisterOptions(&optLoader)
	if err := optLoader.Load(tmux.ShowOptionsRequest{Global: true}); err != nil {
		logger.Debugf("unable to read tmux options: %v", err)
	} else {
		cfg.FillFrom(&optCfg)
	}
	cfg.FillFrom(defaultConfig(cmd.Getenv))

	a := app{
		Cfg:  &cfg,
		Log:  logger,
		Tmux: driver,
		Build: &builder{
			Tmux:      driver,
			Log:       logger,
			Clock:     cmd.Clock,
			BaseIndex: cfg.BaseIndex,
		},
		Stdout:   cmd.Stdout,
		Getenv:   cmd.Getenv,
		Environ:  cmd.Environ,
		Getpid:   cmd.Getpid,
		Hostname: cmd.Hostname,
	}
	return a.Run(inv)
}

// app runs a resolved invocation against a fully layered config.
type app struct {
	Cfg   *config
	Log   *log.Logger
	Tmux  tmux.Driver
	Build *builder

	Stdout   io.Writer
	Getenv   func(string) string
	Environ  func() []string
	Getpid   func() int
	Hostname func() (string, error)
}

func (a *app) Run(inv *invocation) error {
	switch inv.Mode {
	case modeList:
		return a.list()
	case modeKill:
		return a.kill(inv.Name)
	case modeSSH, modeSync:
		return a.hosts(inv)
	case modePlain:
		return a.plain(cleanName(inv.Name))
	case modeConfig:
		return a.fromFile(inv, true /* required */)
	case modeAuto:
		return a.fromFile(inv, false /* required */)
	default:
		return errUsage
	}
}

func (a *app) list() error {
	sessions, err := a.Tmux.ListSessions()
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}
	for _, s := range sessions {
		fmt.Fprintln(a.Stdout, s)
	}
	return nil
}

func (a *app) kill(name string) error {
	ok, err := a.Tmux.HasSession(tmux.HasSessionRequest{Session: name})
	if err != nil {
		return fmt.Errorf("look up session %q: %w", name, err)
	}
	if !ok {
		fmt.Fprintf(a.Stdout, "no session named %v\n", name)
		return nil
	}
	if err := a.Tmux.KillSession(tmux.KillSessionRequest{Session: name}); err != nil {
		return fmt.Errorf("kill session %q: %w", name, err)
	}
	return nil
}

// hosts handles the s and ms modes: derive a session name from the hosts,
// build the session if it does not already exist, and attach.
func (a *app) hosts(inv *invocation) error {
	connect, err := a.Cfg.ConnectArgv()
	if err != nil {
		return err
	}

	var prefix string
	if a.Cfg.HostnamePrefix {
		hn, err := a.Hostname()
		if err != nil {
			return fmt.Errorf("determine hostname: %w", err)
		}
		prefix = shortHostname(hn)
	}

	tag := "s"
	if inv.Mode == modeSync {
		tag = "ms"
	}
	name := sessionName(prefix, a.Cfg.SortHosts, tag, inv.Hosts)

	ok, err := a.Tmux.HasSession(tmux.HasSessionRequest{Session: name})
	if err != nil {
		return fmt.Errorf("look up session %q: %w", name, err)
	}
	if ok {
		a.Log.Debugf("session %v already exists", name)
		return a.attach(name, nil)
	}

	if inv.Mode == modeSync {
		err = a.Build.synchronized(name, inv.Hosts, connect)
	} else {
		err = a.Build.multiWindow(name, inv.Hosts, connect)
	}
	if err != nil {
		return err
	}
	return a.attach(name, nil)
}

// plain creates or re-attaches a session with no windows beyond the default
// shell.
func (a *app) plain(name string) error {
	ok, err := a.Tmux.HasSession(tmux.HasSessionRequest{Session: name})
	if err != nil {
		return fmt.Errorf("look up session %q: %w", name, err)
	}
	if !ok {
		if err := a.Build.plain(name); err != nil {
			return err
		}
	}
	return a.attach(name, nil)
}

// fromFile builds a session from a session file. When the file is optional
// and missing, falls back to a plain session with the given name.
func (a *app) fromFile(inv *invocation, required bool) error {
	path, ok := sessionfile.Find(a.Cfg.ConfigDir, inv.Name)
	if !ok {
		if required {
			return fmt.Errorf("no session file for %q in %v", inv.Name, a.Cfg.ConfigDir)
		}
		return a.plain(cleanName(inv.Name))
	}

	connect, err := a.Cfg.ConnectArgv()
	if err != nil {
		return err
	}

	loader := sessionfile.Loader{
		Connect: connect,
		Token:   inv.Token,
		TempDir: a.Cfg.TempDir,
		Getenv:  a.Getenv,
		Debug:   a.Cfg.Verbose,
		Log:     a.Log,
	}
	rec, err := loader.Load(path)
	if err != nil {
		return err
	}

	name := cleanName(rec.Name)
	if len(name) == 0 {
		name = cleanName(inv.Name)
	}

	// Sessions built from files are never re-attached. An existing
	// session with the same name gets out of the way by prefixing the
	// new one with our pid.
	ok, err = a.Tmux.HasSession(tmux.HasSessionRequest{Session: name})
	if err != nil {
		return fmt.Errorf("look up session %q: %w", name, err)
	}
	if ok {
		name = fmt.Sprintf("%d_%s", a.Getpid(), name)
		a.Log.Debugf("session exists, using %v instead", name)
	}

	if err := a.Build.fromRecord(name, rec); err != nil {
		return err
	}
	return a.attach(name, rec.AttachArgs)
}

// attach replaces the current process with tmux attach-session. extra
// overrides the configured attach options when non-nil.
func (a *app) attach(name string, extra []string) error {
	if extra == nil {
		var err error
		extra, err = a.Cfg.AttachArgv()
		if err != nil {
			return err
		}
	}

	a.Log.Debugf("attaching to session %v", name)
	return a.Tmux.AttachSession(tmux.AttachSessionRequest{
		Session: name,
		Extra:   extra,
		Env:     a.Environ(),
	})
}
