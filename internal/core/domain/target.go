package domain

import (
	"cmp"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

const (
	// flavorFieldSep separates a flavor's namespace from its name inside the canonical set encoding.
	flavorFieldSep = "\x1f"
	// flavorSep separates flavors inside the canonical set encoding.
	flavorSep = "\x1e"
)

// Flavor is a named tag that derives a distinct identity from a base target.
// Two flavors are equal only when both namespace and name match, so flavors that
// share a display name but live in different namespaces never collide.
type Flavor struct {
	namespace InternedString
	name      InternedString
}

// NewFlavor creates a flavor in the given namespace.
func NewFlavor(namespace, name string) Flavor {
	return Flavor{
		namespace: NewInternedString(namespace),
		name:      NewInternedString(name),
	}
}

var (
	// FlavorCompiledTestLibrary marks the library rule that compiles a test target's sources.
	FlavorCompiledTestLibrary = NewFlavor("jvm", "compiled-test-library")

	// FlavorABI marks the rule that computes the binary interface stub of a compiled library.
	FlavorABI = NewFlavor("jvm", "abi")
)

// knownFlavors maps display names to the flavors the parser resolves them to.
var knownFlavors = map[string]Flavor{
	FlavorCompiledTestLibrary.Name(): FlavorCompiledTestLibrary,
	FlavorABI.Name():                 FlavorABI,
}

// Name returns the display name of the flavor.
func (f Flavor) Name() string {
	return f.name.String()
}

// Namespace returns the namespace the flavor belongs to.
func (f Flavor) Namespace() string {
	return f.namespace.String()
}

// String returns the display name of the flavor.
func (f Flavor) String() string {
	return f.Name()
}

func (f Flavor) key() string {
	return f.Namespace() + flavorFieldSep + f.Name()
}

func compareFlavors(a, b Flavor) int {
	if c := cmp.Compare(a.Name(), b.Name()); c != 0 {
		return c
	}
	return cmp.Compare(a.Namespace(), b.Namespace())
}

// TargetIdentity identifies a build rule: a base path, a short name and a set of flavors.
// The flavor set is stored in a canonical encoding so that two identities compare equal
// with == whenever their flavor sets are equal, regardless of the order flavors were applied.
type TargetIdentity struct {
	basePath InternedString
	name     InternedString
	flavors  InternedString
}

// NewTargetIdentity creates an unflavored identity.
func NewTargetIdentity(basePath, name string) TargetIdentity {
	return TargetIdentity{
		basePath: NewInternedString(strings.Trim(basePath, "/")),
		name:     NewInternedString(name),
	}
}

// ParseTarget parses a fully qualified target of the form //path/to:name[#flavor,...].
// Flavor names are resolved against the known flavors; unknown names are placed in the
// "user" namespace.
func ParseTarget(s string) (TargetIdentity, error) {
	raw := strings.TrimSpace(s)
	if !strings.HasPrefix(raw, "//") {
		return TargetIdentity{}, invalidTarget(s, "target must start with //")
	}

	body, flavorList, hasFlavors := strings.Cut(raw[2:], "#")
	basePath, name, ok := strings.Cut(body, ":")
	if !ok || name == "" {
		return TargetIdentity{}, invalidTarget(s, "target must contain a non-empty name after ':'")
	}
	if strings.ContainsAny(name, ":/") {
		return TargetIdentity{}, invalidTarget(s, "target name must not contain ':' or '/'")
	}

	id := NewTargetIdentity(basePath, name)
	if !hasFlavors {
		return id, nil
	}

	names := strings.Split(flavorList, ",")
	flavors := make([]Flavor, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			return TargetIdentity{}, invalidTarget(s, "empty flavor")
		}
		if f, known := knownFlavors[n]; known {
			flavors = append(flavors, f)
			continue
		}
		flavors = append(flavors, NewFlavor("user", n))
	}
	return id.WithFlavors(flavors...), nil
}

// MustParseTarget is like ParseTarget but panics on error.
// It is intended for constants and tests.
func MustParseTarget(s string) TargetIdentity {
	id, err := ParseTarget(s)
	if err != nil {
		panic(err)
	}
	return id
}

// ParseTargets parses every string of the slice, failing on the first invalid one.
func ParseTargets(strs []string) ([]TargetIdentity, error) {
	if len(strs) == 0 {
		return nil, nil
	}
	res := make([]TargetIdentity, 0, len(strs))
	for _, s := range strs {
		id, err := ParseTarget(s)
		if err != nil {
			return nil, err
		}
		res = append(res, id)
	}
	return res, nil
}

func invalidTarget(target, reason string) error {
	return zerr.With(zerr.With(zerr.Wrap(ErrInvalidTarget, reason), "target", target), "reason", reason)
}

// Derive attaches a flavor to a base identity.
// Applying a flavor that is already present returns an equal identity.
func Derive(base TargetIdentity, flavor Flavor) TargetIdentity {
	return base.WithFlavors(flavor)
}

// WithFlavors returns a copy of the identity with the given flavors added to its set.
func (t TargetIdentity) WithFlavors(flavors ...Flavor) TargetIdentity {
	if len(flavors) == 0 {
		return t
	}
	set := append(t.Flavors(), flavors...)
	slices.SortFunc(set, compareFlavors)
	set = slices.Compact(set)

	keys := make([]string, len(set))
	for i, f := range set {
		keys[i] = f.key()
	}

	return TargetIdentity{
		basePath: t.basePath,
		name:     t.name,
		flavors:  NewInternedString(strings.Join(keys, flavorSep)),
	}
}

// WithoutFlavors returns the unflavored base identity.
func (t TargetIdentity) WithoutFlavors() TargetIdentity {
	return TargetIdentity{basePath: t.basePath, name: t.name}
}

// Flavors returns the flavors of the identity in canonical order.
func (t TargetIdentity) Flavors() []Flavor {
	encoded := t.flavors.String()
	if encoded == "" {
		return nil
	}
	parts := strings.Split(encoded, flavorSep)
	res := make([]Flavor, 0, len(parts))
	for _, p := range parts {
		ns, name, _ := strings.Cut(p, flavorFieldSep)
		res = append(res, NewFlavor(ns, name))
	}
	return res
}

// HasFlavor reports whether the flavor is part of the identity's flavor set.
func (t TargetIdentity) HasFlavor(f Flavor) bool {
	return slices.Contains(t.Flavors(), f)
}

// IsFlavored reports whether the identity carries at least one flavor.
func (t TargetIdentity) IsFlavored() bool {
	return t.flavors.String() != ""
}

// IsZero reports whether the identity is the zero value.
func (t TargetIdentity) IsZero() bool {
	return t.name.IsZero() && t.basePath.IsZero() && t.flavors.IsZero()
}

// BasePath returns the package path of the target, without the leading //.
func (t TargetIdentity) BasePath() string {
	return t.basePath.String()
}

// ShortName returns the name of the target within its package.
func (t TargetIdentity) ShortName() string {
	return t.name.String()
}

// String returns the fully qualified form //path:name#flavor,....
func (t TargetIdentity) String() string {
	var b strings.Builder
	b.WriteString("//")
	b.WriteString(t.BasePath())
	b.WriteString(":")
	b.WriteString(t.ShortName())

	flavors := t.Flavors()
	for i, f := range flavors {
		if i == 0 {
			b.WriteString("#")
		} else {
			b.WriteString(",")
		}
		b.WriteString(f.Name())
	}
	return b.String()
}

// Key returns an unambiguous string form of the identity, including flavor namespaces.
// Unlike String, two unequal identities never share a key.
func (t TargetIdentity) Key() string {
	return t.BasePath() + ":" + t.ShortName() + "#" + t.flavors.String()
}

// MarshalText implements encoding.TextMarshaler.
func (t TargetIdentity) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *TargetIdentity) UnmarshalText(text []byte) error {
	id, err := ParseTarget(string(text))
	if err != nil {
		return err
	}
	*t = id
	return nil
}

// CompareTargets orders identities by their textual form, then by flavor namespaces.
func CompareTargets(a, b TargetIdentity) int {
	if c := cmp.Compare(a.String(), b.String()); c != 0 {
		return c
	}
	return cmp.Compare(a.Key(), b.Key())
}
