package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rulegen/internal/adapters/cas"
	"go.trai.ch/rulegen/internal/adapters/config"
	"go.trai.ch/rulegen/internal/adapters/fs"
	"go.trai.ch/rulegen/internal/adapters/telemetry"
	"go.trai.ch/rulegen/internal/app"
	"go.trai.ch/rulegen/internal/core/domain"
	"go.trai.ch/rulegen/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type testMocks struct {
	loader *mocks.MockConfigLoader
	logger *mocks.MockLogger
}

func newProvider(t *testing.T) (ComponentProvider, *testMocks, *bool) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := &testMocks{
		loader: mocks.NewMockConfigLoader(ctrl),
		logger: mocks.NewMockLogger(ctrl),
	}

	application := app.New(
		m.loader,
		mocks.NewMockProjectFilesystem(ctrl),
		m.logger,
		mocks.NewMockStateStore(ctrl),
		telemetry.NewNoOpTelemetry(),
		telemetry.NoOpCacheEventLog,
	)

	cleaned := false
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return &app.Components{
			App:    application,
			Logger: m.logger,
		}, func() { cleaned = true }, nil
	}
	return provider, m, &cleaned
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	provider, _, cleaned := newProvider(t)

	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stdout, stderr, provider)

	assert.Equal(t, 0, exitCode)
	assert.Contains(t, stdout.String(), "rulegen version")
	assert.True(t, *cleaned)
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, new(bytes.Buffer), stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_ExecutionError verifies that run returns 1 and logs when the command fails.
func TestRun_ExecutionError(t *testing.T) {
	provider, m, _ := newProvider(t)

	m.loader.EXPECT().Load(".").Return(nil, domain.ErrConfigReadFailed)
	m.logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorIs(t, err, domain.ErrConfigReadFailed)
	})

	exitCode := run(context.Background(), []string{"expand"}, new(bytes.Buffer), new(bytes.Buffer), provider)
	assert.Equal(t, 1, exitCode)
}

func TestFlatten(t *testing.T) {
	a := errors.New("a")
	b := errors.New("b")
	c := errors.New("c")

	got := flatten(errors.Join(domain.ErrExpansionFailed, errors.Join(a, b), c))
	assert.Equal(t, []error{domain.ErrExpansionFailed, a, b, c}, got)

	assert.Equal(t, []error{a}, flatten(a))
}

// TestRun_ExpandWorkspace runs an expansion against real adapters end to end.
func TestRun_ExpandWorkspace(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)

	root := t.TempDir()
	workspace := `
toolchain:
  library: //scala:library
rules:
  - name: //scala:library
    kind: prebuilt_library
    binary_jar: scala-library.jar
tests:
  - name: //app:test
    srcs: ["FooTest.scala"]
    resources: ["fixture.json"]
`
	require.NoError(t, os.WriteFile(filepath.Join(root, domain.RulesFileName), []byte(workspace), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(root, "fixture.json"), []byte("{}"), 0o600))

	application := app.New(
		config.NewLoader(log),
		fs.NewFilesystem(),
		log,
		cas.NewStore(),
		telemetry.NewNoOpTelemetry(),
		telemetry.NewCacheEventLogFactory(map[string]string{"os": "test"}),
	)
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return &app.Components{App: application, Logger: log}, func() {}, nil
	}

	stdout := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"expand", "--config", root}, stdout, new(bytes.Buffer), provider)
	require.Equal(t, 0, exitCode)
	assert.Contains(t, stdout.String(), "4 rules: 3 new, 0 changed, 0 unchanged")

	stdout.Reset()
	exitCode = run(context.Background(), []string{"expand", "--config", root}, stdout, new(bytes.Buffer), provider)
	require.Equal(t, 0, exitCode)
	assert.Contains(t, stdout.String(), "4 rules: 0 new, 0 changed, 3 unchanged")

	state := filepath.Join(root, domain.DefaultStatePath())
	traces := filepath.Join(root, domain.DefaultTracePath())
	assert.DirExists(t, state)
	assert.FileExists(t, filepath.Join(traces, telemetry.CacheEventFileName))
	assert.NoDirExists(t, domain.DefaultTracePath(), "traces must not land in the working directory")

	log.EXPECT().Info(gomock.Any()).Times(4)
	exitCode = run(context.Background(), []string{"clean", "--all", "--config", root}, new(bytes.Buffer), new(bytes.Buffer), provider)
	require.Equal(t, 0, exitCode)
	assert.NoDirExists(t, state)
	assert.NoDirExists(t, traces)
}
