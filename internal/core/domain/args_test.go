package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rulegen/internal/core/domain"
)

func TestTestArg_Defaults(t *testing.T) {
	var arg domain.TestArg

	assert.Equal(t, domain.TestTypeJUnit, arg.EffectiveTestType())
	assert.Equal(t, domain.ForkModeNone, arg.EffectiveForkMode())
	assert.False(t, arg.EffectiveRunTestSeparately())
	assert.False(t, arg.EffectiveUseNativeLibraries())
}

func TestTestArg_Overrides(t *testing.T) {
	testType := domain.TestTypeTestNG
	fork := domain.ForkModePerTest
	yes := true
	arg := domain.TestArg{
		TestType:           &testType,
		ForkMode:           &fork,
		RunTestSeparately:  &yes,
		UseNativeLibraries: &yes,
	}

	assert.Equal(t, domain.TestTypeTestNG, arg.EffectiveTestType())
	assert.Equal(t, domain.ForkModePerTest, arg.EffectiveForkMode())
	assert.True(t, arg.EffectiveRunTestSeparately())
	assert.True(t, arg.EffectiveUseNativeLibraries())
}

func TestParseForkMode(t *testing.T) {
	m, err := domain.ParseForkMode("PER_TEST")
	require.NoError(t, err)
	assert.Equal(t, domain.ForkModePerTest, m)

	_, err = domain.ParseForkMode("per_class")
	require.ErrorIs(t, err, domain.ErrInvalidForkMode)
}

func TestParseTestType(t *testing.T) {
	tt, err := domain.ParseTestType(" testng ")
	require.NoError(t, err)
	assert.Equal(t, domain.TestTypeTestNG, tt)

	_, err = domain.ParseTestType("spock")
	require.ErrorIs(t, err, domain.ErrInvalidTestType)
}

func TestResolveTimeout(t *testing.T) {
	override := 500 * time.Millisecond
	fallback := 1000 * time.Millisecond

	tests := []struct {
		name      string
		override  *time.Duration
		fallback  *time.Duration
		want      time.Duration
		unlimited bool
	}{
		{name: "override wins", override: &override, fallback: &fallback, want: 500 * time.Millisecond},
		{name: "caller default", fallback: &fallback, want: 1000 * time.Millisecond},
		{name: "no timeout", unlimited: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.ResolveTimeout(tt.override, tt.fallback)
			assert.Equal(t, tt.unlimited, got.IsUnlimited())

			d, limited := got.Duration()
			assert.Equal(t, !tt.unlimited, limited)
			assert.Equal(t, tt.want, d)
		})
	}
}

func TestParseTimeout(t *testing.T) {
	d, err := domain.ParseTimeout("")
	require.NoError(t, err)
	assert.Nil(t, d)

	d, err = domain.ParseTimeout("1m30s")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, 90*time.Second, *d)

	_, err = domain.ParseTimeout("soon")
	require.ErrorIs(t, err, domain.ErrInvalidTimeout)

	_, err = domain.ParseTimeout("-1s")
	require.ErrorIs(t, err, domain.ErrInvalidTimeout)
}

func TestMergeEnvironment(t *testing.T) {
	enhanced := map[string]string{"LIB_PATH": "/a"}
	explicit := map[string]string{"LIB_PATH": "/b", "FOO": "1"}

	got := domain.MergeEnvironment(enhanced, explicit)
	assert.Equal(t, map[string]string{"LIB_PATH": "/b", "FOO": "1"}, got)
	assert.Equal(t, "/a", enhanced["LIB_PATH"], "inputs must not be modified")

	empty := domain.MergeEnvironment(nil, nil)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]domain.LogLevel{
		"debug":   domain.LogLevelDebug,
		"FINE":    domain.LogLevelDebug,
		"info":    domain.LogLevelInfo,
		"warning": domain.LogLevelWarn,
		"severe":  domain.LogLevelError,
	}
	for input, want := range tests {
		got, err := domain.ParseLogLevel(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := domain.ParseLogLevel("loud")
	require.ErrorIs(t, err, domain.ErrInvalidLogLevel)
	assert.Equal(t, "WARN", domain.LogLevelWarn.String())
}

func TestCompareRuleKeys(t *testing.T) {
	assert.Equal(t, domain.ChangeStatusNew, domain.CompareRuleKeys("", "abc"))
	assert.Equal(t, domain.ChangeStatusUnchanged, domain.CompareRuleKeys("abc", "abc"))
	assert.Equal(t, domain.ChangeStatusChanged, domain.CompareRuleKeys("abc", "def"))

	assert.Equal(t, domain.ChangeStatusChanged, domain.NormalizeChangeStatus("CHANGED"))
	assert.Equal(t, domain.ChangeStatusNew, domain.NormalizeChangeStatus("bogus"))
}
