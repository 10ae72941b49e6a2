package main

import (
	"path/filepath"
	"testing"

	"github.com/abhinav/tm/internal/envtest"
	"github.com/abhinav/tm/internal/tmux"
	"github.com/abhinav/tm/internal/tmux/tmuxopt"
	"github.com/abhinav/tm/internal/tmux/tmuxtest"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFromEnv(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc string
		env  []string
		want config
	}{
		{
			desc: "empty",
			want: config{},
		},
		{
			desc: "strings",
			env: []string{
				"TM_TMPDIR", "/var/tmp",
				"TM_ATTACH_OPTS", "-d",
				"TM_CONFIG_DIR", "/etc/tm",
				"TM_SSH_CMD", "mosh",
			},
			want: config{
				TempDir:       "/var/tmp",
				AttachOptions: "-d",
				ConfigDir:     "/etc/tm",
				SSHCommand:    "mosh",
			},
		},
		{
			desc: "toggles on",
			env: []string{
				"TM_SORT_HOSTS", "1",
				"TM_HOSTNAME_PREFIX", "yes",
				"TM_DEBUG", "true",
			},
			want: config{
				SortHosts:      true,
				HostnamePrefix: true,
				Verbose:        true,

				sortHostsSet:      true,
				hostnamePrefixSet: true,
			},
		},
		{
			desc: "toggles off",
			env: []string{
				"TM_SORT_HOSTS", "0",
				"TM_HOSTNAME_PREFIX", "false",
			},
			want: config{
				sortHostsSet:      true,
				hostnamePrefixSet: true,
			},
		},
		{
			desc: "base index",
			env:  []string{"TM_BASE_INDEX", "1"},
			want: config{BaseIndex: 1},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			env := envtest.MustPairs(tt.env...)
			got, err := configFromEnv(env.Getenv)
			require.NoError(t, err)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestConfigFromEnvBadBaseIndex(t *testing.T) {
	t.Parallel()

	env := envtest.MustPairs("TM_BASE_INDEX", "one")
	_, err := configFromEnv(env.Getenv)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid base index "one"`)
}

func TestEnvBool(t *testing.T) {
	t.Parallel()

	tests := []struct {
		give string
		want bool
	}{
		{"", false},
		{"0", false},
		{"false", false},
		{"1", true},
		{"true", true},
		{"yes", true},
		{"anything", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.give, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, envBool(tt.give))
		})
	}
}

func TestConfigFillFrom(t *testing.T) {
	t.Parallel()

	t.Run("set values win", func(t *testing.T) {
		t.Parallel()

		cfg := config{SSHCommand: "mosh", BaseIndex: 1}
		cfg.FillFrom(&config{SSHCommand: "ssh", BaseIndex: 2, ConfigDir: "/etc/tm"})

		assert.Equal(t, "mosh", cfg.SSHCommand)
		assert.Equal(t, 1, cfg.BaseIndex)
		assert.Equal(t, "/etc/tm", cfg.ConfigDir)
	})

	t.Run("bools merge with or", func(t *testing.T) {
		t.Parallel()

		cfg := config{SortHosts: true}
		cfg.FillFrom(&config{HostnamePrefix: true})

		assert.True(t, cfg.SortHosts)
		assert.True(t, cfg.HostnamePrefix)
	})

	t.Run("explicit off beats a later on", func(t *testing.T) {
		t.Parallel()

		env := envtest.MustPairs("TM_SORT_HOSTS", "0")
		cfg, err := configFromEnv(env.Getenv)
		require.NoError(t, err)

		// @tm-sort-hosts on must not undo TM_SORT_HOSTS=0.
		cfg.FillFrom(&config{SortHosts: true, HostnamePrefix: true})

		assert.False(t, cfg.SortHosts)
		assert.True(t, cfg.HostnamePrefix,
			"toggles the environment leaves alone still merge")
	})

	t.Run("layer order", func(t *testing.T) {
		t.Parallel()

		// flags > environment > tmux options > defaults
		var cfg config
		cfg.AttachOptions = "-d" // flag

		cfg.FillFrom(&config{SSHCommand: "mosh"})                 // env
		cfg.FillFrom(&config{SSHCommand: "et", AttachOptions: "-r"}) // tmux options
		cfg.FillFrom(defaultConfig(envtest.MustPairs("HOME", "/home/user").Getenv))

		assert.Equal(t, "-d", cfg.AttachOptions)
		assert.Equal(t, "mosh", cfg.SSHCommand)
		assert.Equal(t, filepath.Join("/home/user", ".tm"), cfg.ConfigDir)
	})
}

func TestConfigRegisterOptions(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	mockTmux := tmuxtest.NewMockDriver(ctrl)
	mockTmux.EXPECT().
		ShowOptions(tmux.ShowOptionsRequest{Global: true}).
		Return([]byte("@tm-ssh-command \"mosh --ssh=ssh\"\n"+
			"@tm-sort-hosts on\n"+
			"@tm-hostname-prefix off\n"), nil)

	var cfg config
	loader := tmuxopt.Loader{Tmux: mockTmux}
	cfg.RegisterOptions(&loader)
	require.NoError(t, loader.Load(tmux.ShowOptionsRequest{Global: true}))

	assert.Equal(t, "mosh --ssh=ssh", cfg.SSHCommand)
	assert.True(t, cfg.SortHosts)
	assert.False(t, cfg.HostnamePrefix)
}

func TestConfigConnectArgv(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc string
		give string
		want []string
	}{
		{desc: "empty defaults to ssh", give: "", want: []string{"ssh"}},
		{desc: "single word", give: "mosh", want: []string{"mosh"}},
		{
			desc: "with arguments",
			give: "ssh -o ConnectTimeout=5",
			want: []string{"ssh", "-o", "ConnectTimeout=5"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			cfg := config{SSHCommand: tt.give}
			got, err := cfg.ConnectArgv()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("malformed", func(t *testing.T) {
		t.Parallel()

		cfg := config{SSHCommand: `ssh "unterminated`}
		_, err := cfg.ConnectArgv()
		require.Error(t, err)
	})
}

func TestConfigAttachArgv(t *testing.T) {
	t.Parallel()

	t.Run("empty", func(t *testing.T) {
		t.Parallel()

		var cfg config
		got, err := cfg.AttachArgv()
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("options", func(t *testing.T) {
		t.Parallel()

		cfg := config{AttachOptions: "-d -r"}
		got, err := cfg.AttachArgv()
		require.NoError(t, err)
		assert.Equal(t, []string{"-d", "-r"}, got)
	})
}
