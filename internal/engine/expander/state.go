package expander

// State is a step of a test target expansion.
// An expansion only ever moves forward by exactly one state.
type State int

const (
	// StateStart is the state before any work was done.
	StateStart State = iota
	// StateImplicitDepsResolved means the toolchain deps were found in the registry.
	StateImplicitDepsResolved
	// StateEnhanced means the enhancement hook ran.
	StateEnhanced
	// StateLibraryRuleBuilt means the compiled test library is registered.
	StateLibraryRuleBuilt
	// StateTestRuleBuilt means the test rule is registered.
	StateTestRuleBuilt
	// StateAbiRuleBuilt means the ABI rule is registered.
	StateAbiRuleBuilt
	// StateDone means the expansion finished.
	StateDone
)

var stateNames = [...]string{
	StateStart:                "start",
	StateImplicitDepsResolved: "implicit-deps-resolved",
	StateEnhanced:             "enhanced",
	StateLibraryRuleBuilt:     "library-rule-built",
	StateTestRuleBuilt:        "test-rule-built",
	StateAbiRuleBuilt:         "abi-rule-built",
	StateDone:                 "done",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}
