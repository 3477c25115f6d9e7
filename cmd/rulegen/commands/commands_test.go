package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rulegen/cmd/rulegen/commands"
	"go.trai.ch/rulegen/internal/app"
	"go.trai.ch/rulegen/internal/build"
)

type mockApp struct {
	expandFunc func(ctx context.Context, targetNames []string, opts app.Options) error
	depsFunc   func(ctx context.Context, targetNames []string, opts app.Options) error
	cleanFunc  func(ctx context.Context, opts app.CleanOptions) error
}

func (m *mockApp) Expand(ctx context.Context, targetNames []string, opts app.Options) error {
	if m.expandFunc != nil {
		return m.expandFunc(ctx, targetNames, opts)
	}
	return nil
}

func (m *mockApp) Deps(ctx context.Context, targetNames []string, opts app.Options) error {
	if m.depsFunc != nil {
		return m.depsFunc(ctx, targetNames, opts)
	}
	return nil
}

func (m *mockApp) Clean(ctx context.Context, opts app.CleanOptions) error {
	if m.cleanFunc != nil {
		return m.cleanFunc(ctx, opts)
	}
	return nil
}

func TestCommands_Expand(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var capturedOpts app.Options
		var capturedTargets []string

		mock := &mockApp{
			expandFunc: func(_ context.Context, targetNames []string, opts app.Options) error {
				capturedOpts = opts
				capturedTargets = targetNames
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{
			"expand", "//app:test", "//lib:test",
			"--config", "ws/rules.yaml", "--state", "/tmp/state", "--build-id", "b-1",
		})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, []string{"//app:test", "//lib:test"}, capturedTargets)
		assert.Equal(t, app.Options{
			ConfigPath: "ws/rules.yaml",
			StateDir:   "/tmp/state",
			BuildID:    "b-1",
		}, capturedOpts)
	})

	t.Run("expands all targets by default", func(t *testing.T) {
		var capturedOpts app.Options
		called := false

		mock := &mockApp{
			expandFunc: func(_ context.Context, targetNames []string, opts app.Options) error {
				assert.Empty(t, targetNames)
				capturedOpts = opts
				called = true
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"expand"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.True(t, called)
		assert.Equal(t, ".", capturedOpts.ConfigPath)
	})

	t.Run("returns error on expansion failure", func(t *testing.T) {
		mock := &mockApp{
			expandFunc: func(_ context.Context, _ []string, _ app.Options) error {
				return errors.New("simulated error")
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"expand", "//app:test"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})
}

func TestCommands_JSONLogSwitch(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want bool
	}{
		{name: "default", args: []string{"deps"}, want: false},
		{name: "enabled", args: []string{"deps", "--json-log"}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got *bool
			cli := commands.New(&mockApp{}, commands.WithJSONLogSwitch(func(enabled bool) {
				got = &enabled
			}))
			cli.SetArgs(tt.args)

			require.NoError(t, cli.Execute(context.Background()))
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestCommands_Deps(t *testing.T) {
	var capturedTargets []string
	mock := &mockApp{
		depsFunc: func(_ context.Context, targetNames []string, _ app.Options) error {
			capturedTargets = targetNames
			return nil
		},
	}

	cli := commands.New(mock)
	cli.SetArgs([]string{"deps", "//app:test"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Equal(t, []string{"//app:test"}, capturedTargets)
}

func TestCommands_Clean(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want app.CleanOptions
	}{
		{
			name: "default cleans state",
			args: []string{"clean"},
			want: app.CleanOptions{ConfigPath: ".", State: true},
		},
		{
			name: "traces only",
			args: []string{"clean", "--traces"},
			want: app.CleanOptions{ConfigPath: ".", Traces: true},
		},
		{
			name: "all",
			args: []string{"clean", "--all", "--config", "ws"},
			want: app.CleanOptions{ConfigPath: "ws", State: true, Traces: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got app.CleanOptions
			mock := &mockApp{
				cleanFunc: func(_ context.Context, opts app.CleanOptions) error {
					got = opts
					return nil
				},
			}

			cli := commands.New(mock)
			cli.SetArgs(tt.args)

			require.NoError(t, cli.Execute(context.Background()))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCommands_Version(t *testing.T) {
	cli := commands.New(&mockApp{})

	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"version"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Contains(t, buf.String(), build.Version)
}
