package projection

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func scenarioConfig() Config {
	cfg := DefaultConfig()
	cfg.XXMax = 1000
	cfg.XXStep = 0.5
	cfg.LMax = 4
	cfg.Multipoles = []int{2, 10, 50}
	cfg.M = []int{0, 1, 2}
	return cfg
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, scenarioConfig().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"zero step", func(c *Config) { c.XXStep = 0 }, ErrConfig},
		{"negative max", func(c *Config) { c.XXMax = -1 }, ErrConfig},
		{"negative lmax", func(c *Config) { c.LMax = -1 }, ErrConfig},
		{"no multipoles", func(c *Config) { c.Multipoles = nil }, ErrConfig},
		{"unsorted multipoles", func(c *Config) { c.Multipoles = []int{10, 2} }, ErrConfig},
		{"duplicate m", func(c *Config) { c.M = []int{0, 0} }, ErrConfig},
		{"negative m", func(c *Config) { c.M = []int{-1} }, ErrConfig},
		{"no m", func(c *Config) { c.M = nil }, ErrConfig},
		{"negative cut", func(c *Config) { c.JLlmCut = -1 }, ErrConfig},
		{"nothing enabled", func(c *Config) { c.HasTT = false }, ErrConfig},
		{"negative budget", func(c *Config) { c.MaxTableDoubles = -1 }, ErrConfig},
		{"L above lmax", func(c *Config) { c.L = []int{2, 5} }, ErrDomain},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := scenarioConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			require.ErrorIs(t, err, tc.want)

			var perr *Error
			require.True(t, errors.As(err, &perr))
			require.Equal(t, "Validate", perr.Op)
		})
	}
}

func TestConfigLs(t *testing.T) {
	cfg := scenarioConfig()
	require.Equal(t, []int{0, 1, 2, 3, 4}, cfg.Ls())
	cfg.L = []int{1, 3}
	require.Equal(t, []int{1, 3}, cfg.Ls())
}

func TestConfigKinds(t *testing.T) {
	cfg := scenarioConfig()
	require.Equal(t, []Kind{TT}, cfg.Kinds())
	cfg.HasEE, cfg.HasEB = true, true
	require.Equal(t, []Kind{TT, EE, EB}, cfg.Kinds())
	cfg.HasTT = false
	require.Equal(t, []Kind{EE, EB}, cfg.Kinds())
}

func TestParseKind(t *testing.T) {
	for s, want := range map[string]Kind{"TT": TT, "ee": EE, " Eb ": EB} {
		got, err := ParseKind(s)
		require.NoError(t, err)
		require.Equal(t, want, got)
		require.Equal(t, want.String(), got.String())
	}
	_, err := ParseKind("BB")
	require.ErrorIs(t, err, ErrConfig)
}

func TestErrorMatchesKind(t *testing.T) {
	err := domainError("J", "x=%g outside [0, %g]", 2000.0, 1000.0)
	require.ErrorIs(t, err, ErrDomain)
	require.NotErrorIs(t, err, ErrConfig)
	require.Equal(t, "projection: J: x=2000 outside [0, 1000]", err.Error())
	require.Equal(t, "projection: allocation error", ErrAllocation.Error())

	cause := errors.New("boom")
	wrapped := newError(KindConfig, "Init", cause, "register metrics")
	require.ErrorIs(t, wrapped, cause)
	require.ErrorIs(t, wrapped, ErrConfig)
}
