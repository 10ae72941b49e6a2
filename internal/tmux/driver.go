package tmux

import (
	"log/slog"
	"strings"

	"github.com/abhinav/tm/internal/log"
)

//go:generate mockgen -destination tmuxtest/mock_driver.go -package tmuxtest github.com/abhinav/tm/internal/tmux Driver

// Driver is a low-level API to access tmux. This maps directly to tmux
// commands.
type Driver interface {
	// NewSession runs the tmux new-session command and returns its output.
	NewSession(NewSessionRequest) ([]byte, error)

	// NewWindow runs the tmux new-window command.
	NewWindow(NewWindowRequest) error

	// SplitWindow runs the tmux split-window command.
	SplitWindow(SplitWindowRequest) error

	// SelectLayout runs the tmux select-layout command.
	SelectLayout(SelectLayoutRequest) error

	// SetWindowOption runs the tmux set-window-option command.
	SetWindowOption(SetWindowOptionRequest) error

	// SendKeys runs the tmux send-keys command.
	SendKeys(SendKeysRequest) error

	// KillSession runs the tmux kill-session command.
	KillSession(KillSessionRequest) error

	// HasSession reports whether a session matching the request exists.
	HasSession(HasSessionRequest) (bool, error)

	// ListSessions reports the names of all active sessions.
	ListSessions() ([]string, error)

	// ShowOptions runs the tmux show-options command and returns its
	// output.
	ShowOptions(ShowOptionsRequest) ([]byte, error)

	// AttachSession hands the terminal over to an interactive tmux
	// attach-session call. On success it does not return.
	AttachSession(AttachSessionRequest) error
}

// NewSessionRequest specifies the parameters for a new-session command.
type NewSessionRequest struct {
	// Name of the session, if any.
	Name string

	// Name of the initial window, if any.
	WindowName string

	// Output format, if any. Without this, NewSession will not return any
	// output.
	Format string

	// Whether the new session should be detached from this client.
	Detached bool

	// Command to run in the initial window, if any.
	Command []string
}

func (r NewSessionRequest) LogValue() slog.Value {
	return slog.GroupValue(
		log.OmitEmpty(slog.String, "name", r.Name),
		log.OmitEmpty(slog.String, "window", r.WindowName),
		slog.Bool("detached", r.Detached),
		log.OmitEmpty(slog.String, "command", strings.Join(r.Command, " ")),
	)
}

// NewWindowRequest specifies the parameters for a new-window command.
type NewWindowRequest struct {
	// Session in which to create the window.
	Session string

	// Name of the new window, if any.
	Name string

	// Command to run in the new window, if any.
	Command []string
}

func (r NewWindowRequest) LogValue() slog.Value {
	return slog.GroupValue(
		log.OmitEmpty(slog.String, "session", r.Session),
		log.OmitEmpty(slog.String, "name", r.Name),
		log.OmitEmpty(slog.String, "command", strings.Join(r.Command, " ")),
	)
}

// SplitWindowRequest specifies the parameters for a split-window command.
type SplitWindowRequest struct {
	// Target window or pane to split. Defaults to current.
	Target string

	// Split horizontally instead of vertically.
	Horizontal bool

	// Command to run in the new pane, if any.
	Command []string
}

func (r SplitWindowRequest) LogValue() slog.Value {
	return slog.GroupValue(
		log.OmitEmpty(slog.String, "target", r.Target),
		slog.Bool("horizontal", r.Horizontal),
		log.OmitEmpty(slog.String, "command", strings.Join(r.Command, " ")),
	)
}

// SelectLayoutRequest specifies the parameters for a select-layout command.
type SelectLayoutRequest struct {
	// Target window. Defaults to current.
	Target string

	// Name of the layout, e.g. "tiled" or "even-horizontal".
	Layout string
}

func (r SelectLayoutRequest) LogValue() slog.Value {
	return slog.GroupValue(
		log.OmitEmpty(slog.String, "target", r.Target),
		log.OmitEmpty(slog.String, "layout", r.Layout),
	)
}

// SetWindowOptionRequest specifies the parameters for a set-window-option
// command.
type SetWindowOptionRequest struct {
	// Target window. Defaults to current.
	Target string

	// Name of the option to set.
	Name string

	// Value to set the option to.
	Value string
}

func (r SetWindowOptionRequest) LogValue() slog.Value {
	return slog.GroupValue(
		log.OmitEmpty(slog.String, "target", r.Target),
		log.OmitEmpty(slog.String, "name", r.Name),
		log.OmitEmpty(slog.String, "value", r.Value),
	)
}

// SendKeysRequest specifies the parameters for a send-keys command.
type SendKeysRequest struct {
	// Target pane. Defaults to current.
	Target string

	// Keys to send, in tmux key syntax.
	Keys []string
}

func (r SendKeysRequest) LogValue() slog.Value {
	return slog.GroupValue(
		log.OmitEmpty(slog.String, "target", r.Target),
		log.OmitEmpty(slog.String, "keys", strings.Join(r.Keys, " ")),
	)
}

// KillSessionRequest specifies the parameters for a kill-session command.
type KillSessionRequest struct {
	// Name of the session to kill.
	Session string
}

func (r KillSessionRequest) LogValue() slog.Value {
	return slog.GroupValue(
		log.OmitEmpty(slog.String, "session", r.Session),
	)
}

// HasSessionRequest specifies the parameters for a has-session command.
type HasSessionRequest struct {
	// Name of the session to look for. The name is matched exactly, not
	// as a prefix.
	Session string
}

func (r HasSessionRequest) LogValue() slog.Value {
	return slog.GroupValue(
		log.OmitEmpty(slog.String, "session", r.Session),
	)
}

// ShowOptionsRequest specifies the parameters for a show-options command.
type ShowOptionsRequest struct {
	Global bool // show global options
}

func (r ShowOptionsRequest) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("global", r.Global),
	)
}

// AttachSessionRequest specifies the parameters for an attach-session
// command.
type AttachSessionRequest struct {
	// Name of the session to attach to.
	Session string

	// Additional arguments to pass to attach-session.
	Extra []string

	// Environment for the attached process. Defaults to the current
	// process environment.
	Env []string
}

func (r AttachSessionRequest) LogValue() slog.Value {
	return slog.GroupValue(
		log.OmitEmpty(slog.String, "session", r.Session),
		log.OmitEmpty(slog.String, "extra", strings.Join(r.Extra, " ")),
	)
}
