// Package sessionfile reads the declarative session-definition files that tm
// builds sessions from.
//
// A session file is line-oriented. The first line is the session title and
// the second is extra attach-time options, with "-" standing for "use
// defaults". The remaining lines are directives: hosts to connect to in
// simple files, or tmux commands in free-form files. Blank lines and lines
// starting with "#" are skipped.
//
// Three directives receive special treatment anywhere in the file:
//
//   - "LIST <cmd>" runs the shell command and splices its output into the
//     file, one directive per line of output.
//   - "SSHCMD <cmd>" switches the remote-connect command for the rest of the
//     file.
//   - A line consisting solely of ${VAR} is replaced with the value of that
//     environment variable, if it is set.
//
// The ++TM++ token is replaced everywhere with a caller-supplied value, and
// ${TM} inside a LIST command is replaced with the same value before the
// command runs. No other substitution takes place.
package sessionfile

import (
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"regexp"
	"strings"
	"syscall"

	"github.com/abhinav/tm/internal/log"
	"github.com/abhinav/tm/internal/tail"
	shellwords "github.com/mattn/go-shellwords"
	"go.uber.org/multierr"
)

// Recognized session file extensions.
const (
	// ExtSimple marks files whose directives are hosts.
	ExtSimple = ".cfg"

	// ExtFreeForm marks files whose directives are tmux commands.
	ExtFreeForm = ".cmd"
)

const (
	_token    = "++TM++"
	_listVar  = "${TM}"
	_defaults = "-"

	_listPrefix   = "LIST "
	_sshcmdPrefix = "SSHCMD "
)

var _envLine = regexp.MustCompile(`^\$\{([A-Za-z_][A-Za-z0-9_]*)\}$`)

// Directive is a single instruction from a session file.
type Directive struct {
	// Host to connect to. Set for simple files.
	Host string

	// Connect is the full argv used to reach Host, remote-connect command
	// included.
	Connect []string

	// Command is a tmux command argv. Set for free-form files.
	Command []string
}

// Record is the parsed in-memory representation of a session file.
type Record struct {
	// Name is the session title from the first line of the file.
	Name string

	// AttachArgs holds extra arguments for the attach call, or nil if the
	// file defers to the caller's defaults.
	AttachArgs []string

	// FreeForm reports whether directives are tmux commands rather than
	// hosts.
	FreeForm bool

	Directives []Directive
}

// Loader reads session files.
type Loader struct {
	// Connect is the default remote-connect argv. Defaults to {"ssh"}.
	Connect []string

	// Token replaces ++TM++ and ${TM} occurrences.
	Token string

	// TempDir receives LIST capture files. Defaults to os.TempDir().
	TempDir string

	// Getenv resolves ${VAR} lines. Defaults to os.Getenv.
	Getenv func(string) string

	// Debug mirrors LIST command output to the log while it runs.
	Debug bool

	Log *log.Logger
}

// Find locates the session file for the given name inside dir. Simple files
// take precedence over free-form ones.
func Find(dir, name string) (path string, ok bool) {
	for _, ext := range []string{ExtSimple, ExtFreeForm} {
		path := filepath.Join(dir, name+ext)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}

// Load reads and expands the session file at the given path.
func (l *Loader) Load(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if t := strings.TrimSpace(line); len(t) == 0 || strings.HasPrefix(t, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) < 2 {
		return nil, fmt.Errorf("%v: a session file needs a title line and an options line", path)
	}

	rec := Record{
		Name:     l.expandToken(lines[0]),
		FreeForm: filepath.Ext(path) == ExtFreeForm,
	}

	if opts := strings.TrimSpace(l.expandToken(lines[1])); opts != _defaults {
		args, err := shellwords.Parse(opts)
		if err != nil {
			return nil, fmt.Errorf("%v: parse attach options %q: %v", path, opts, err)
		}
		rec.AttachArgs = args
	}

	connect := l.Connect
	if len(connect) == 0 {
		connect = []string{"ssh"}
	}

	// LIST output is prepended to the queue so that surrounding lines
	// keep their relative order.
	queue := lines[2:]
	for len(queue) > 0 {
		line := strings.TrimSpace(l.expandToken(queue[0]))
		queue = queue[1:]

		if m := _envLine.FindStringSubmatch(line); m != nil {
			if v := l.getenv(m[1]); len(v) > 0 {
				line = v
			}
		}

		switch {
		case line == "LIST" || strings.HasPrefix(line, _listPrefix):
			expanded, err := l.runList(strings.TrimSpace(strings.TrimPrefix(line, "LIST")))
			if err != nil {
				return nil, fmt.Errorf("%v: expand %q: %w", path, line, err)
			}
			queue = append(expanded, queue...)

		case line == "SSHCMD" || strings.HasPrefix(line, _sshcmdPrefix):
			args, err := shellwords.Parse(strings.TrimSpace(strings.TrimPrefix(line, "SSHCMD")))
			if err != nil || len(args) == 0 {
				return nil, fmt.Errorf("%v: bad SSHCMD directive %q", path, line)
			}
			connect = args

		case rec.FreeForm:
			args, err := shellwords.Parse(line)
			if err != nil {
				return nil, fmt.Errorf("%v: parse command %q: %v", path, line, err)
			}
			rec.Directives = append(rec.Directives, Directive{Command: args})

		default:
			argv := make([]string, 0, len(connect)+1)
			argv = append(argv, connect...)
			argv = append(argv, line)
			rec.Directives = append(rec.Directives, Directive{
				Host:    line,
				Connect: argv,
			})
		}
	}

	return &rec, nil
}

// runList runs a LIST command, capturing its output in a temporary file, and
// reports the captured lines. The file is removed when runList returns and if
// the process is interrupted while the command runs.
func (l *Loader) runList(cmdline string) (_ []string, err error) {
	cmdline = strings.ReplaceAll(cmdline, _listVar, l.Token)

	args, err := shellwords.Parse(cmdline)
	if err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("empty LIST command")
	}

	dir := l.TempDir
	if len(dir) == 0 {
		dir = os.TempDir()
	}
	f, err := os.CreateTemp(dir, "tm-list-*")
	if err != nil {
		return nil, err
	}
	name := f.Name()
	defer multierr.AppendInvoke(&err, multierr.Invoke(func() error {
		return os.Remove(name)
	}))

	stop := removeOnInterrupt(name)
	defer stop()

	logger := l.logger().WithName("list")
	if l.Debug {
		if r, rerr := os.Open(name); rerr == nil {
			logw := &log.Writer{Log: logger, Level: log.Debug}
			tee := tail.Tee{W: logw, R: r}
			tee.Start()
			defer func() {
				err = multierr.Append(err, r.Close())
				err = multierr.Append(err, tee.Wait())
				err = multierr.Append(err, logw.Close())
			}()
		}
	}

	logger.Debugf("running: %v", cmdline)

	errw := &log.Writer{Log: logger, Level: log.Error}
	defer errw.Close()

	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdout = f
	cmd.Stderr = errw

	runErr := cmd.Run()
	err = multierr.Append(err, f.Close())
	if runErr != nil {
		return nil, multierr.Append(err, runErr)
	}

	out, rerr := os.ReadFile(name)
	if rerr != nil {
		return nil, multierr.Append(err, rerr)
	}

	var expanded []string
	for _, line := range strings.Split(string(out), "\n") {
		if line = strings.TrimSpace(line); len(line) > 0 {
			expanded = append(expanded, line)
		}
	}
	return expanded, err
}

// removeOnInterrupt deletes the named file and re-raises the signal if the
// process is interrupted. The returned function cancels the watch.
func removeOnInterrupt(name string) (stop func()) {
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		select {
		case sig := <-sigc:
			_ = os.Remove(name)
			signal.Stop(sigc)
			if s, ok := sig.(syscall.Signal); ok {
				_ = syscall.Kill(syscall.Getpid(), s)
			}
		case <-done:
		}
	}()

	return func() {
		signal.Stop(sigc)
		close(done)
	}
}

func (l *Loader) expandToken(line string) string {
	return strings.ReplaceAll(line, _token, l.Token)
}

func (l *Loader) getenv(name string) string {
	if l.Getenv == nil {
		return os.Getenv(name)
	}
	return l.Getenv(name)
}

func (l *Loader) logger() *log.Logger {
	if l.Log == nil {
		return log.Discard
	}
	return l.Log
}
