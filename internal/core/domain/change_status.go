package domain

import "strings"

// ChangeStatus describes how a rule compares to the one recorded by the previous invocation.
type ChangeStatus string

const (
	// ChangeStatusNew indicates the rule was not present in the previous invocation.
	ChangeStatusNew ChangeStatus = "new"
	// ChangeStatusChanged indicates the rule exists but its key differs.
	ChangeStatusChanged ChangeStatus = "changed"
	// ChangeStatusUnchanged indicates the rule key is identical to the recorded one.
	ChangeStatusUnchanged ChangeStatus = "unchanged"
)

// CompareRuleKeys classifies a freshly computed key against a previously recorded one.
// An empty previous key means the rule was never recorded.
func CompareRuleKeys(previous, current string) ChangeStatus {
	switch previous {
	case "":
		return ChangeStatusNew
	case current:
		return ChangeStatusUnchanged
	default:
		return ChangeStatusChanged
	}
}

// NormalizeChangeStatus converts a string to a ChangeStatus, defaulting to new if unknown.
func NormalizeChangeStatus(s string) ChangeStatus {
	switch strings.ToLower(s) {
	case string(ChangeStatusChanged):
		return ChangeStatusChanged
	case string(ChangeStatusUnchanged):
		return ChangeStatusUnchanged
	default:
		return ChangeStatusNew
	}
}
