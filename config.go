package main

import (
	"flag"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/abhinav/tm/internal/tmux/tmuxopt"
	shellwords "github.com/mattn/go-shellwords"
)

// Environment variables recognized by tm.
const (
	_tmpdirEnv         = "TM_TMPDIR"
	_sortHostsEnv      = "TM_SORT_HOSTS"
	_attachOptsEnv     = "TM_ATTACH_OPTS"
	_configDirEnv      = "TM_CONFIG_DIR"
	_hostnamePrefixEnv = "TM_HOSTNAME_PREFIX"
	_sshCmdEnv         = "TM_SSH_CMD"
	_debugEnv          = "TM_DEBUG"
	_baseIndexEnv      = "TM_BASE_INDEX"
)

const (
	_defaultSSHCommand = "ssh"
	_defaultConfigDir  = ".tm"
)

// config holds everything tm reads from its environment. It is filled once
// at startup and passed around explicitly.
type config struct {
	// Directory for LIST capture files. Empty means the system default.
	TempDir string

	// Sort hosts before deriving the session name.
	SortHosts bool

	// Extra options for the attach call, as a single string.
	AttachOptions string

	// Directory holding session-definition files.
	ConfigDir string

	// Prefix session names with the local hostname.
	HostnamePrefix bool

	// Remote-connect command, as a single string.
	SSHCommand string

	// Log at debug level.
	Verbose bool

	// tmux base-index used when targeting the first window of a session.
	BaseIndex int

	// Explicit settings win over later layers even when they turn the
	// toggle off.
	sortHostsSet      bool
	hostnamePrefixSet bool
}

func (c *config) RegisterFlags(fs *flag.FlagSet) {
	// No help here because we put it all in _usage.
	fs.StringVar(&c.AttachOptions, "e", "", "")
	fs.BoolVar(&c.Verbose, "v", false, "")
}

func (c *config) RegisterOptions(load *tmuxopt.Loader) {
	load.StringVar(&c.SSHCommand, "@tm-ssh-command")
	load.StringVar(&c.AttachOptions, "@tm-attach-options")
	load.BoolVar(&c.SortHosts, "@tm-sort-hosts")
	load.BoolVar(&c.HostnamePrefix, "@tm-hostname-prefix")
}

// FillFrom updates this config object, filling empty values with values from
// the provided struct but not overwriting those that are already set.
func (c *config) FillFrom(o *config) {
	if len(c.TempDir) == 0 {
		c.TempDir = o.TempDir
	}
	if len(c.AttachOptions) == 0 {
		c.AttachOptions = o.AttachOptions
	}
	if len(c.ConfigDir) == 0 {
		c.ConfigDir = o.ConfigDir
	}
	if len(c.SSHCommand) == 0 {
		c.SSHCommand = o.SSHCommand
	}
	if c.BaseIndex == 0 {
		c.BaseIndex = o.BaseIndex
	}
	if !c.sortHostsSet {
		c.SortHosts = c.SortHosts || o.SortHosts
		c.sortHostsSet = o.sortHostsSet
	}
	if !c.hostnamePrefixSet {
		c.HostnamePrefix = c.HostnamePrefix || o.HostnamePrefix
		c.hostnamePrefixSet = o.hostnamePrefixSet
	}
	c.Verbose = c.Verbose || o.Verbose
}

// configFromEnv builds a config from the TM_* environment variables. Unset
// variables leave their fields at zero values so that later FillFrom layers
// apply.
func configFromEnv(getenv func(string) string) (*config, error) {
	cfg := config{
		TempDir:        getenv(_tmpdirEnv),
		SortHosts:      envBool(getenv(_sortHostsEnv)),
		AttachOptions:  getenv(_attachOptsEnv),
		ConfigDir:      getenv(_configDirEnv),
		HostnamePrefix: envBool(getenv(_hostnamePrefixEnv)),
		SSHCommand:     getenv(_sshCmdEnv),
		Verbose:        envBool(getenv(_debugEnv)),

		sortHostsSet:      len(getenv(_sortHostsEnv)) > 0,
		hostnamePrefixSet: len(getenv(_hostnamePrefixEnv)) > 0,
	}

	if v := getenv(_baseIndexEnv); len(v) > 0 {
		i, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%v: invalid base index %q", _baseIndexEnv, v)
		}
		cfg.BaseIndex = i
	}

	return &cfg, nil
}

// defaultConfig is the final fallback layer for unset values.
func defaultConfig(getenv func(string) string) *config {
	return &config{
		SSHCommand: _defaultSSHCommand,
		ConfigDir:  filepath.Join(getenv("HOME"), _defaultConfigDir),
	}
}

// envBool interprets a TM_* toggle. Anything non-empty other than "0" and
// "false" turns the toggle on.
func envBool(v string) bool {
	switch v {
	case "", "0", "false":
		return false
	default:
		return true
	}
}

// ConnectArgv reports the remote-connect command as an argv.
func (c *config) ConnectArgv() ([]string, error) {
	args, err := shellwords.Parse(c.SSHCommand)
	if err != nil {
		return nil, fmt.Errorf("parse remote-connect command %q: %v", c.SSHCommand, err)
	}
	if len(args) == 0 {
		args = []string{_defaultSSHCommand}
	}
	return args, nil
}

// AttachArgv reports the extra attach options as an argv.
func (c *config) AttachArgv() ([]string, error) {
	if len(c.AttachOptions) == 0 {
		return nil, nil
	}
	args, err := shellwords.Parse(c.AttachOptions)
	if err != nil {
		return nil, fmt.Errorf("parse attach options %q: %v", c.AttachOptions, err)
	}
	return args, nil
}
