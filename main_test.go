package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/abhinav/tm/internal/envtest"
	"github.com/abhinav/tm/internal/tmux"
	"github.com/abhinav/tm/internal/tmux/tmuxtest"
	"github.com/benbjohnson/clock"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMain struct {
	mainCmd

	Tmux   *tmuxtest.MockDriver
	stdout bytes.Buffer
	stderr bytes.Buffer
}

func newFakeMain(t *testing.T, env *envtest.Env) *fakeMain {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := fakeMain{Tmux: tmuxtest.NewMockDriver(ctrl)}
	f.mainCmd = mainCmd{
		Stdout:   &f.stdout,
		Stderr:   &f.stderr,
		Getenv:   env.Getenv,
		Environ:  env.Environ,
		Getpid:   func() int { return 42 },
		Hostname: func() (string, error) { return "box.example.com", nil },
		Tmux:     f.Tmux,
		Clock:    clock.New(),
	}

	// Most tests run outside a tmux server.
	f.Tmux.EXPECT().
		ShowOptions(gomock.Any()).
		Return(nil, errors.New("no server running")).
		AnyTimes()

	return &f
}

func TestMainList(t *testing.T) {
	t.Parallel()

	f := newFakeMain(t, envtest.MustPairs())
	f.Tmux.EXPECT().
		ListSessions().
		Return([]string{"alpha", "beta"}, nil)

	assert.Zero(t, f.Run([]string{"ls"}))
	assert.Equal(t, "alpha\nbeta\n", f.stdout.String())
}

func TestMainKill(t *testing.T) {
	t.Parallel()

	t.Run("exists", func(t *testing.T) {
		t.Parallel()

		f := newFakeMain(t, envtest.MustPairs())
		f.Tmux.EXPECT().
			HasSession(tmux.HasSessionRequest{Session: "work"}).
			Return(true, nil)
		f.Tmux.EXPECT().
			KillSession(tmux.KillSessionRequest{Session: "work"}).
			Return(nil)

		assert.Zero(t, f.Run([]string{"k", "work"}))
	})

	t.Run("missing is not an error", func(t *testing.T) {
		t.Parallel()

		f := newFakeMain(t, envtest.MustPairs())
		f.Tmux.EXPECT().
			HasSession(tmux.HasSessionRequest{Session: "work"}).
			Return(false, nil)

		assert.Zero(t, f.Run([]string{"k", "work"}))
		assert.Equal(t, "no session named work\n", f.stdout.String())
	})
}

func TestMainSSH(t *testing.T) {
	t.Parallel()

	env := envtest.MustPairs(
		"TM_SORT_HOSTS", "1",
		"TM_HOSTNAME_PREFIX", "1",
	)
	f := newFakeMain(t, env)

	// The name sorts the hosts; the windows keep the given order.
	f.Tmux.EXPECT().
		HasSession(tmux.HasSessionRequest{Session: "box_s_host-a_host-b"}).
		Return(false, nil)
	f.Tmux.EXPECT().
		NewSession(tmux.NewSessionRequest{
			Name:       "box_s_host-a_host-b",
			WindowName: "host-b",
			Detached:   true,
			Command:    []string{"ssh", "host-b"},
		}).
		Return(nil, nil)
	f.Tmux.EXPECT().
		NewWindow(tmux.NewWindowRequest{
			Session: "box_s_host-a_host-b",
			Name:    "host-a",
			Command: []string{"ssh", "host-a"},
		}).
		Return(nil)
	f.Tmux.EXPECT().
		AttachSession(tmux.AttachSessionRequest{
			Session: "box_s_host-a_host-b",
			Env:     env.Environ(),
		}).
		Return(nil)

	assert.Zero(t, f.Run([]string{"s", "host-b", "host-a"}))
}

func TestMainSSHExisting(t *testing.T) {
	t.Parallel()

	env := envtest.MustPairs()
	f := newFakeMain(t, env)

	f.Tmux.EXPECT().
		HasSession(tmux.HasSessionRequest{Session: "s_host-a"}).
		Return(true, nil)
	f.Tmux.EXPECT().
		AttachSession(tmux.AttachSessionRequest{
			Session: "s_host-a",
			Env:     env.Environ(),
		}).
		Return(nil)

	assert.Zero(t, f.Run([]string{"s", "host-a"}))
}

func TestMainSyncCustomSSH(t *testing.T) {
	t.Parallel()

	env := envtest.MustPairs("TM_SSH_CMD", "mosh")
	f := newFakeMain(t, env)

	f.Tmux.EXPECT().
		HasSession(tmux.HasSessionRequest{Session: "ms_host-a_host-b"}).
		Return(false, nil)
	f.Tmux.EXPECT().
		NewSession(tmux.NewSessionRequest{
			Name:       "ms_host-a_host-b",
			WindowName: "sync",
			Detached:   true,
			Command:    []string{"mosh", "host-a"},
		}).
		Return(nil, nil)
	f.Tmux.EXPECT().
		SplitWindow(tmux.SplitWindowRequest{
			Target:  "ms_host-a_host-b:0",
			Command: []string{"mosh", "host-b"},
		}).
		Return(nil)
	f.Tmux.EXPECT().
		SelectLayout(gomock.Any()).
		Return(nil)
	f.Tmux.EXPECT().
		SetWindowOption(gomock.Any()).
		Return(nil)
	f.Tmux.EXPECT().
		AttachSession(gomock.Any()).
		Return(nil)

	assert.Zero(t, f.Run([]string{"ms", "host-a", "host-b"}))
}

func TestMainPlain(t *testing.T) {
	t.Parallel()

	env := envtest.MustPairs("TM_CONFIG_DIR", t.TempDir())
	f := newFakeMain(t, env)

	f.Tmux.EXPECT().
		HasSession(tmux.HasSessionRequest{Session: "scratch_pad"}).
		Return(false, nil)
	f.Tmux.EXPECT().
		NewSession(tmux.NewSessionRequest{Name: "scratch_pad", Detached: true}).
		Return(nil, nil)
	f.Tmux.EXPECT().
		AttachSession(gomock.Any()).
		Return(nil)

	// No session file for the name, so a plain session. The "." becomes
	// "_" in the session name.
	assert.Zero(t, f.Run([]string{"scratch.pad"}))
}

func TestMainConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "web.cfg"),
		[]byte("web\n-\nhost-a\nhost-b\n"),
		0o644,
	))

	env := envtest.MustPairs("TM_CONFIG_DIR", dir)

	t.Run("fresh", func(t *testing.T) {
		t.Parallel()

		f := newFakeMain(t, env)
		f.Tmux.EXPECT().
			HasSession(tmux.HasSessionRequest{Session: "web"}).
			Return(false, nil)
		f.Tmux.EXPECT().
			NewSession(tmux.NewSessionRequest{
				Name:       "web",
				WindowName: "host-a",
				Detached:   true,
				Command:    []string{"ssh", "host-a"},
			}).
			Return(nil, nil)
		f.Tmux.EXPECT().
			NewWindow(tmuxtest.NewWindowRequestMatcher{Name: "host-b"}).
			Return(nil)
		f.Tmux.EXPECT().
			AttachSession(tmux.AttachSessionRequest{
				Session: "web",
				Env:     env.Environ(),
			}).
			Return(nil)

		assert.Zero(t, f.Run([]string{"web"}))
	})

	t.Run("name collision gets a pid prefix", func(t *testing.T) {
		t.Parallel()

		f := newFakeMain(t, env)
		f.Tmux.EXPECT().
			HasSession(tmux.HasSessionRequest{Session: "web"}).
			Return(true, nil)
		f.Tmux.EXPECT().
			NewSession(tmux.NewSessionRequest{
				Name:       "42_web",
				WindowName: "host-a",
				Detached:   true,
				Command:    []string{"ssh", "host-a"},
			}).
			Return(nil, nil)
		f.Tmux.EXPECT().
			NewWindow(gomock.Any()).
			Return(nil)
		f.Tmux.EXPECT().
			AttachSession(tmux.AttachSessionRequest{
				Session: "42_web",
				Env:     env.Environ(),
			}).
			Return(nil)

		assert.Zero(t, f.Run([]string{"-c", "web"}))
	})
}

func TestMainConfigFileAttachArgs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "web.cfg"),
		[]byte("web\n-d\nhost-a\n"),
		0o644,
	))

	env := envtest.MustPairs("TM_CONFIG_DIR", dir)
	f := newFakeMain(t, env)

	f.Tmux.EXPECT().
		HasSession(gomock.Any()).
		Return(false, nil)
	f.Tmux.EXPECT().
		NewSession(gomock.Any()).
		Return(nil, nil)
	f.Tmux.EXPECT().
		AttachSession(tmux.AttachSessionRequest{
			Session: "web",
			Extra:   []string{"-d"},
			Env:     env.Environ(),
		}).
		Return(nil)

	assert.Zero(t, f.Run([]string{"-c", "web"}))
}

func TestMainConfigFileMissing(t *testing.T) {
	t.Parallel()

	env := envtest.MustPairs("TM_CONFIG_DIR", t.TempDir())
	f := newFakeMain(t, env)

	assert.Equal(t, 1, f.Run([]string{"-c", "nope"}))
	assert.Contains(t, f.stderr.String(), `no session file for "nope"`)
}

func TestMainUsageErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc string
		give []string
	}{
		{desc: "no arguments", give: nil},
		{desc: "s without hosts", give: []string{"s"}},
		{desc: "conflicting modes", give: []string{"-l", "-m", "host"}},
		{desc: "unknown flag", give: []string{"-x"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			f := newFakeMain(t, envtest.MustPairs())
			assert.Equal(t, 2, f.Run(tt.give))
			assert.Contains(t, f.stderr.String(), "usage: tm")
		})
	}
}

func TestMainHelp(t *testing.T) {
	t.Parallel()

	f := newFakeMain(t, envtest.MustPairs())
	assert.Zero(t, f.Run([]string{"-h"}))
	assert.Contains(t, f.stdout.String(), "usage: tm")
}

func TestMainBadEnv(t *testing.T) {
	t.Parallel()

	f := newFakeMain(t, envtest.MustPairs("TM_BASE_INDEX", "one"))
	assert.Equal(t, 1, f.Run([]string{"ls"}))
	assert.Contains(t, f.stderr.String(), "invalid base index")
}

func TestMainAttachOptions(t *testing.T) {
	t.Parallel()

	env := envtest.MustPairs()
	f := newFakeMain(t, env)

	f.Tmux.EXPECT().
		HasSession(gomock.Any()).
		Return(true, nil)
	f.Tmux.EXPECT().
		AttachSession(tmux.AttachSessionRequest{
			Session: "s_host-a",
			Extra:   []string{"-d"},
			Env:     env.Environ(),
		}).
		Return(nil)

	assert.Zero(t, f.Run([]string{"-e", "-d", "s", "host-a"}))
}
