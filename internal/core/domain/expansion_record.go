package domain

// ExpansionRecord stores the rule keys produced by the last expansion of a test target.
type ExpansionRecord struct {
	// Target is the textual identity of the expanded test target.
	Target string `json:"target"`
	// RuleKeys maps each produced rule identity to its fingerprint.
	RuleKeys map[string]string `json:"rule_keys"`
	// Timestamp is the Unix time in nanoseconds the record was written at.
	Timestamp int64 `json:"timestamp"`
}
