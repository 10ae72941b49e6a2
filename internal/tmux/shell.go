package tmux

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"syscall"

	"github.com/abhinav/tm/internal/log"
)

const _defaultTmux = "tmux"

// ErrPaneTooSmall indicates that tmux refused to create a pane or window
// because there was no room for it.
var ErrPaneTooSmall = errors.New("pane too small")

// minimal hook to change how exec.Cmd are run. Tests will provide a different
// implementation.
type runner struct {
	Run      func(*exec.Cmd) error
	Output   func(*exec.Cmd) ([]byte, error)
	Exec     func(argv0 string, argv, env []string) error
	LookPath func(string) (string, error)
}

var defaultRunner = runner{
	Run:      (*exec.Cmd).Run,
	Output:   (*exec.Cmd).Output,
	Exec:     syscall.Exec,
	LookPath: exec.LookPath,
}

// ShellDriver is a Driver implementation that shells out to tmux to run
// commands.
type ShellDriver struct {
	// Path to the tmux executable. Defaults to "tmux".
	Path string

	log  *log.Logger
	run  *runner
	once sync.Once
}

var _ Driver = (*ShellDriver)(nil)

func (s *ShellDriver) init() {
	s.once.Do(func() {
		if s.log == nil {
			s.log = log.Discard
		}

		if s.Path == "" {
			s.Path = _defaultTmux
		}

		if s.run == nil {
			s.run = &defaultRunner
		}
	})
}

// SetLogger specifies the logger for the ShellDriver. By default, the
// ShellDriver does not log anything.
func (s *ShellDriver) SetLogger(log *log.Logger) {
	s.log = log
}

func (s *ShellDriver) cmd(args ...string) *exec.Cmd {
	return exec.Command(s.Path, args...)
}

// errorWriter sets the provided io.Writers to the same log.Writer and returns
// a function to close them.
//
//	cmd := s.cmd("some", "cmd")
//	defer s.errorWriter(&cmd.Stderr)()
func (s *ShellDriver) errorWriter(ws ...*io.Writer) (close func()) {
	writer := &log.Writer{Log: s.log, Level: log.Error}
	for _, w := range ws {
		*w = writer
	}
	return func() { writer.Close() }
}

// NewSession runs the tmux new-session command.
func (s *ShellDriver) NewSession(req NewSessionRequest) ([]byte, error) {
	s.init()

	args := []string{"new-session"}
	if n := req.Name; len(n) > 0 {
		args = append(args, "-s", n)
	}
	if n := req.WindowName; len(n) > 0 {
		args = append(args, "-n", n)
	}
	if fmt := req.Format; len(fmt) > 0 {
		args = append(args, "-P", "-F", fmt)
	}
	if req.Detached {
		args = append(args, "-d")
	}
	args = append(args, req.Command...)

	cmd := s.cmd(args...)
	defer s.errorWriter(&cmd.Stderr)()

	s.log.Debugf("new session: %v", req)
	return s.run.Output(cmd)
}

// NewWindow runs the new-window command. Failure to fit the new window
// reports ErrPaneTooSmall.
func (s *ShellDriver) NewWindow(req NewWindowRequest) error {
	s.init()

	args := []string{"new-window"}
	if n := req.Session; len(n) > 0 {
		args = append(args, "-t", n+":")
	}
	if n := req.Name; len(n) > 0 {
		args = append(args, "-n", n)
	}
	args = append(args, req.Command...)

	s.log.Debugf("new window: %v", req)
	return s.runSized(s.cmd(args...))
}

// SplitWindow runs the split-window command. Failure to fit the new pane
// reports ErrPaneTooSmall.
func (s *ShellDriver) SplitWindow(req SplitWindowRequest) error {
	s.init()

	args := []string{"split-window"}
	if req.Horizontal {
		args = append(args, "-h")
	}
	if t := req.Target; len(t) > 0 {
		args = append(args, "-t", t)
	}
	args = append(args, req.Command...)

	s.log.Debugf("split window: %v", req)
	return s.runSized(s.cmd(args...))
}

// runSized runs a command whose failure may be caused by a window that has
// run out of room, translating that failure into ErrPaneTooSmall.
func (s *ShellDriver) runSized(cmd *exec.Cmd) error {
	var stderr bytes.Buffer
	logw := &log.Writer{Log: s.log, Level: log.Error}
	defer logw.Close()
	cmd.Stdout = logw
	cmd.Stderr = io.MultiWriter(logw, &stderr)

	err := s.run.Run(cmd)
	if err == nil {
		return nil
	}

	msg := strings.ToLower(stderr.String())
	if strings.Contains(msg, "pane too small") || strings.Contains(msg, "no space for") {
		return fmt.Errorf("%v: %w", err, ErrPaneTooSmall)
	}
	return err
}

// SelectLayout runs the select-layout command.
func (s *ShellDriver) SelectLayout(req SelectLayoutRequest) error {
	s.init()

	args := []string{"select-layout"}
	if t := req.Target; len(t) > 0 {
		args = append(args, "-t", t)
	}
	args = append(args, req.Layout)

	cmd := s.cmd(args...)
	defer s.errorWriter(&cmd.Stdout, &cmd.Stderr)()

	s.log.Debugf("select layout: %v", req)
	return s.run.Run(cmd)
}

// SetWindowOption runs the set-window-option command.
func (s *ShellDriver) SetWindowOption(req SetWindowOptionRequest) error {
	s.init()

	args := []string{"set-window-option"}
	if t := req.Target; len(t) > 0 {
		args = append(args, "-t", t)
	}
	args = append(args, req.Name, req.Value)

	cmd := s.cmd(args...)
	defer s.errorWriter(&cmd.Stdout, &cmd.Stderr)()

	s.log.Debugf("set window option: %v", req)
	return s.run.Run(cmd)
}

// SendKeys runs the send-keys command.
func (s *ShellDriver) SendKeys(req SendKeysRequest) error {
	s.init()

	args := []string{"send-keys"}
	if t := req.Target; len(t) > 0 {
		args = append(args, "-t", t)
	}
	args = append(args, req.Keys...)

	cmd := s.cmd(args...)
	defer s.errorWriter(&cmd.Stdout, &cmd.Stderr)()

	s.log.Debugf("send keys: %v", req)
	return s.run.Run(cmd)
}

// KillSession runs the kill-session command.
func (s *ShellDriver) KillSession(req KillSessionRequest) error {
	s.init()

	cmd := s.cmd("kill-session", "-t", "="+req.Session)
	defer s.errorWriter(&cmd.Stdout, &cmd.Stderr)()

	s.log.Debugf("kill session: %v", req)
	return s.run.Run(cmd)
}

// HasSession runs the has-session command. A session that does not exist is
// not an error.
func (s *ShellDriver) HasSession(req HasSessionRequest) (bool, error) {
	s.init()

	cmd := s.cmd("has-session", "-t", "="+req.Session)
	// has-session reports missing sessions on stderr. That's an expected
	// outcome, so keep it out of the error log.
	cmd.Stderr = &log.Writer{Log: s.log, Level: log.Debug}

	s.log.Debugf("has session: %v", req)
	err := s.run.Run(cmd)
	if err == nil {
		return true, nil
	}

	var exit *exec.ExitError
	if errors.As(err, &exit) {
		return false, nil
	}
	return false, err
}

// ListSessions reports the names of all active sessions. If no tmux server
// is running, the list is empty.
func (s *ShellDriver) ListSessions() ([]string, error) {
	s.init()

	cmd := s.cmd("list-sessions", "-F", "#{session_name}")
	cmd.Stderr = &log.Writer{Log: s.log, Level: log.Debug}

	s.log.Debugf("list sessions")
	out, err := s.run.Output(cmd)
	if err != nil {
		// tmux exits non-zero when there is no server to list.
		var exit *exec.ExitError
		if errors.As(err, &exit) {
			return nil, nil
		}
		return nil, err
	}

	var names []string
	for _, line := range strings.Split(string(out), "\n") {
		if line = strings.TrimSpace(line); len(line) > 0 {
			names = append(names, line)
		}
	}
	return names, nil
}

// ShowOptions runs the show-options command.
func (s *ShellDriver) ShowOptions(req ShowOptionsRequest) ([]byte, error) {
	s.init()

	args := []string{"show-options"}
	if req.Global {
		args = append(args, "-g")
	}
	cmd := s.cmd(args...)
	defer s.errorWriter(&cmd.Stderr)()

	s.log.Debugf("show options: %v", req)
	return s.run.Output(cmd)
}

// AttachSession replaces the current process with an interactive
// attach-session call. On success it does not return.
func (s *ShellDriver) AttachSession(req AttachSessionRequest) error {
	s.init()

	path, err := s.run.LookPath(s.Path)
	if err != nil {
		return fmt.Errorf("find tmux: %w", err)
	}

	argv := []string{s.Path, "attach-session", "-t", "=" + req.Session}
	argv = append(argv, req.Extra...)

	env := req.Env
	if env == nil {
		env = os.Environ()
	}

	s.log.Debugf("attach session: %v", req)
	return s.run.Exec(path, argv, env)
}
