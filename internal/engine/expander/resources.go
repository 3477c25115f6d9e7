package expander

import (
	"slices"
	"strings"

	"go.trai.ch/rulegen/internal/core/domain"
	"go.trai.ch/zerr"
)

// validateResources checks that every resource exists under the project root.
// All missing resources are reported together.
func (e *Expander) validateResources(owner domain.TargetIdentity, resources []string) ([]string, error) {
	var missing []string
	for _, res := range resources {
		ok, err := e.fs.Exists(e.root, res)
		if err != nil {
			return nil, zerr.With(zerr.With(zerr.Wrap(err, "failed to check resource"), "target", owner.String()), "resource", res)
		}
		if !ok {
			missing = append(missing, res)
		}
	}

	if len(missing) > 0 {
		err := zerr.Wrap(domain.ErrInvalidResource, "resources do not exist: "+strings.Join(missing, ", "))
		err = zerr.With(err, "target", owner.String())
		return nil, zerr.With(err, "missing_resources", missing)
	}

	return slices.Clone(resources), nil
}
