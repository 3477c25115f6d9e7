package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.trai.ch/rulegen/internal/core/domain"
	"go.trai.ch/rulegen/internal/core/ports"
	"go.trai.ch/rulegen/internal/engine/expander"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// invocation holds the state of one Expand call.
type invocation struct {
	*App

	engine   *engine
	ws       *domain.Workspace
	buildID  string
	stateDir string
	events   ports.CacheEventListener

	mu       sync.Mutex
	statuses map[domain.TargetIdentity]domain.ChangeStatus
}

// expandAll expands every target on a bounded errgroup. A failing target does not
// cancel the others; all failures are joined into one error.
func (inv *invocation) expandAll(ctx context.Context, targets []domain.TestDeclaration) error {
	var (
		g    errgroup.Group
		mu   sync.Mutex
		errs []error
	)
	g.SetLimit(inv.concurrency)

	for _, decl := range targets {
		g.Go(func() error {
			if err := inv.expandTarget(ctx, decl); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	if len(errs) == 0 {
		return nil
	}
	return errors.Join(append([]error{domain.ErrExpansionFailed}, errs...)...)
}

func (inv *invocation) expandTarget(ctx context.Context, decl domain.TestDeclaration) (err error) {
	ctx, vertex := inv.telemetry.Record(ctx, "expand "+decl.Target.String())
	defer func() { vertex.Complete(err) }()

	result, err := inv.engine.expander.Expand(ctx, decl.Target, decl.Arg)
	if err != nil {
		return err
	}

	unchanged, err := inv.recordState(decl.Target, result)
	if err != nil {
		return err
	}
	if unchanged {
		vertex.Cached()
	}
	return nil
}

// recordState compares the produced rules with the previous record of the target,
// reports the outcome as cache events and stores the new record. It reports whether
// every rule was unchanged.
func (inv *invocation) recordState(target domain.TargetIdentity, result *expander.Expansion) (bool, error) {
	name := target.String()

	start := inv.now()
	previous, err := inv.store.Get(inv.stateDir, name)
	if err != nil {
		inv.emit(OperationStateLookup, name, domain.CacheOutcomeError, start, 0)
		return false, zerr.With(zerr.Wrap(err, "failed to look up expansion state"), "target", name)
	}

	keys := make(map[string]string, len(result.Rules()))
	allUnchanged := previous != nil
	for _, rule := range result.Rules() {
		id := rule.Target().String()
		keys[id] = domain.RuleKey(rule)

		var prevKey string
		if previous != nil {
			prevKey = previous.RuleKeys[id]
		}
		status := domain.CompareRuleKeys(prevKey, keys[id])
		if status != domain.ChangeStatusUnchanged {
			allUnchanged = false
		}
		inv.setStatus(rule.Target(), status)
	}

	if allUnchanged {
		inv.emit(OperationStateLookup, name, domain.CacheOutcomeHit, start, int64(len(keys)))
		return true, nil
	}
	inv.emit(OperationStateLookup, name, domain.CacheOutcomeMiss, start, 0)

	start = inv.now()
	record := domain.ExpansionRecord{
		Target:    name,
		RuleKeys:  keys,
		Timestamp: start.UnixNano(),
	}
	if err := inv.store.Put(inv.stateDir, record); err != nil {
		inv.emit(OperationStateStore, name, domain.CacheOutcomeError, start, 0)
		return false, zerr.With(zerr.Wrap(err, "failed to record expansion state"), "target", name)
	}
	inv.emit(OperationStateStore, name, domain.CacheOutcomeStored, start, int64(len(keys)))

	return false, nil
}

func (inv *invocation) setStatus(id domain.TargetIdentity, status domain.ChangeStatus) {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	inv.statuses[id] = status
}

func (inv *invocation) emit(op, target string, outcome domain.CacheOutcome, start time.Time, size int64) {
	end := inv.now()
	inv.events.OnCacheEvent(domain.CacheEvent{
		BuildID:   inv.buildID,
		Operation: op,
		Target:    target,
		Outcome:   outcome,
		Duration:  end.Sub(start),
		Size:      size,
		Timestamp: end.UnixNano(),
	})
}
