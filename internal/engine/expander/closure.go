package expander

import (
	"context"

	"go.trai.ch/rulegen/internal/core/domain"
	"go.trai.ch/zerr"
)

// resolveClosure builds the dependency closure of owner, resolving every referenced
// identity through the registry. Resolution failures are not retried.
func (e *Expander) resolveClosure(
	ctx context.Context,
	owner domain.TargetIdentity,
	declared, provided, toolDeps []domain.TargetIdentity,
) (domain.DependencyClosure, error) {
	for _, group := range [][]domain.TargetIdentity{declared, provided, toolDeps} {
		for _, id := range group {
			if _, err := e.registry.Require(ctx, id); err != nil {
				return domain.DependencyClosure{}, closureError(owner, err)
			}
		}
	}

	var resolveErr error
	exportedOf := func(id domain.TargetIdentity) []domain.TargetIdentity {
		if resolveErr != nil {
			return nil
		}
		rule, err := e.registry.Require(ctx, id)
		if err != nil {
			resolveErr = err
			return nil
		}
		return rule.ExportedDeps()
	}

	closure := domain.BuildClosure(declared, provided, exportedOf, toolDeps)
	if resolveErr != nil {
		return domain.DependencyClosure{}, closureError(owner, resolveErr)
	}
	return closure, nil
}

func closureError(owner domain.TargetIdentity, err error) error {
	return zerr.With(zerr.Wrap(err, "failed to resolve dependency closure"), "target", owner.String())
}
