package registry_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"testing/synctest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rulegen/internal/core/domain"
	"go.trai.ch/rulegen/internal/engine/registry"
)

func prebuilt(target, jar string) *domain.BuildRule {
	return domain.NewBuildRule(
		domain.MustParseTarget(target),
		domain.NewDependencyClosure(),
		nil,
		domain.PrebuiltPayload{BinaryJar: jar},
	)
}

func TestRegistry_ComputeIfAbsent_Memoizes(t *testing.T) {
	r := registry.New()
	id := domain.MustParseTarget("//lib:a")

	var calls int
	build := func(context.Context) (*domain.BuildRule, error) {
		calls++
		return prebuilt("//lib:a", "a.jar"), nil
	}

	first, err := r.ComputeIfAbsent(t.Context(), id, build)
	require.NoError(t, err)
	second, err := r.ComputeIfAbsent(t.Context(), id, build)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, calls)

	got, ok := r.Get(id)
	require.True(t, ok)
	assert.Same(t, first, got)
}

func TestRegistry_ComputeIfAbsent_FailureNotMemoized(t *testing.T) {
	r := registry.New()
	id := domain.MustParseTarget("//lib:a")
	boom := errors.New("boom")

	_, err := r.ComputeIfAbsent(t.Context(), id, func(context.Context) (*domain.BuildRule, error) {
		return nil, boom
	})
	require.ErrorIs(t, err, boom)

	_, ok := r.Get(id)
	assert.False(t, ok)

	rule, err := r.ComputeIfAbsent(t.Context(), id, func(context.Context) (*domain.BuildRule, error) {
		return prebuilt("//lib:a", "a.jar"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, id, rule.Target())
}

func TestRegistry_ComputeIfAbsent_WrongIdentity(t *testing.T) {
	r := registry.New()

	_, err := r.ComputeIfAbsent(t.Context(), domain.MustParseTarget("//lib:a"), func(context.Context) (*domain.BuildRule, error) {
		return prebuilt("//lib:b", "b.jar"), nil
	})
	require.ErrorIs(t, err, domain.ErrDuplicateRegistration)
}

func TestRegistry_Register(t *testing.T) {
	r := registry.New()

	original, err := r.Register(prebuilt("//lib:a", "a.jar"))
	require.NoError(t, err)

	// An equal rule resolves to the registered instance.
	again, err := r.Register(prebuilt("//lib:a", "a.jar"))
	require.NoError(t, err)
	assert.Same(t, original, again)

	// A different rule under the same identity is rejected.
	_, err = r.Register(prebuilt("//lib:a", "other.jar"))
	require.ErrorIs(t, err, domain.ErrDuplicateRegistration)

	got, ok := r.Get(domain.MustParseTarget("//lib:a"))
	require.True(t, ok)
	assert.Same(t, original, got)
}

func TestRegistry_Require(t *testing.T) {
	r := registry.New()
	_, err := r.Register(prebuilt("//lib:a", "a.jar"))
	require.NoError(t, err)

	rule, err := r.Require(t.Context(), domain.MustParseTarget("//lib:a"))
	require.NoError(t, err)
	assert.Equal(t, "//lib:a", rule.Target().String())

	_, err = r.Require(t.Context(), domain.MustParseTarget("//lib:missing"))
	require.ErrorIs(t, err, domain.ErrUnresolvedDependency)
	assert.Equal(t, "no rule registered for //lib:missing: unresolved dependency", err.Error())
}

func TestRegistry_Snapshot(t *testing.T) {
	r := registry.New()
	for _, target := range []string{"//lib:c", "//lib:a", "//lib:b"} {
		_, err := r.Register(prebuilt(target, "x.jar"))
		require.NoError(t, err)
	}

	var names []string
	for _, rule := range r.Snapshot() {
		names = append(names, rule.Target().ShortName())
	}
	assert.Equal(t, []string{"a", "b", "c"}, names)
}

func TestRegistry_ConcurrentSameIdentity(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		r := registry.New()
		id := domain.MustParseTarget("//lib:a")

		var calls atomic.Int32
		release := make(chan struct{})
		build := func(context.Context) (*domain.BuildRule, error) {
			calls.Add(1)
			<-release
			return prebuilt("//lib:a", "a.jar"), nil
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		results := make([]*domain.BuildRule, 2)
		var wg sync.WaitGroup
		for i := range results {
			wg.Add(1)
			go func() {
				defer wg.Done()
				rule, err := r.ComputeIfAbsent(ctx, id, build)
				assert.NoError(t, err)
				results[i] = rule
			}()
		}

		// Both callers are blocked on the single in-flight construction.
		synctest.Wait()
		assert.Equal(t, int32(1), calls.Load())

		close(release)
		wg.Wait()

		require.NotNil(t, results[0])
		assert.Same(t, results[0], results[1])
		assert.Equal(t, int32(1), calls.Load())
	})
}

func TestRegistry_UnrelatedIdentitiesDoNotBlock(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		r := registry.New()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		release := make(chan struct{})
		done := make(chan struct{})
		go func() {
			defer close(done)
			_, _ = r.ComputeIfAbsent(ctx, domain.MustParseTarget("//lib:slow"), func(context.Context) (*domain.BuildRule, error) {
				<-release
				return prebuilt("//lib:slow", "slow.jar"), nil
			})
		}()
		synctest.Wait()

		rule, err := r.ComputeIfAbsent(ctx, domain.MustParseTarget("//lib:fast"), func(context.Context) (*domain.BuildRule, error) {
			return prebuilt("//lib:fast", "fast.jar"), nil
		})
		require.NoError(t, err)
		assert.Equal(t, "//lib:fast", rule.Target().String())

		close(release)
		<-done
	})
}

func TestRegistry_RequireWaitsForInFlight(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		r := registry.New()
		id := domain.MustParseTarget("//lib:a")

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		release := make(chan struct{})
		go func() {
			_, _ = r.ComputeIfAbsent(ctx, id, func(context.Context) (*domain.BuildRule, error) {
				<-release
				return prebuilt("//lib:a", "a.jar"), nil
			})
		}()
		synctest.Wait()

		errCh := make(chan error, 1)
		go func() {
			_, err := r.Require(ctx, id)
			errCh <- err
		}()
		synctest.Wait()

		close(release)
		require.NoError(t, <-errCh)
	})
}

func TestRegistry_CancelWhileWaiting(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		r := registry.New()
		id := domain.MustParseTarget("//lib:a")

		release := make(chan struct{})
		builderCtx, cancelBuilder := context.WithCancel(context.Background())
		defer cancelBuilder()
		go func() {
			_, _ = r.ComputeIfAbsent(builderCtx, id, func(context.Context) (*domain.BuildRule, error) {
				<-release
				return prebuilt("//lib:a", "a.jar"), nil
			})
		}()
		synctest.Wait()

		waiterCtx, cancelWaiter := context.WithCancel(context.Background())
		errCh := make(chan error, 1)
		go func() {
			_, err := r.ComputeIfAbsent(waiterCtx, id, func(context.Context) (*domain.BuildRule, error) {
				t.Error("second construction must not run")
				return nil, nil
			})
			errCh <- err
		}()
		synctest.Wait()

		cancelWaiter()
		err := <-errCh
		require.ErrorIs(t, err, domain.ErrAborted)

		// The in-flight construction still completes and stays registered.
		close(release)
		synctest.Wait()
		_, ok := r.Get(id)
		assert.True(t, ok)
	})
}
