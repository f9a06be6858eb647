package model

// ApprovedItem couples an approved proposal with its verdict, its sealed
// evidence, and its FIFO execution order within the batch.
type ApprovedItem struct {
	Proposal Proposal       `json:"proposal"`
	Verdict  Verdict        `json:"verdict"`
	Evidence EvidenceBundle `json:"evidence"`
	Order    int            `json:"order"`
}

// RejectedItem couples a rejected proposal with its verdict and the
// joined reasons of every failing rule.
type RejectedItem struct {
	Proposal Proposal `json:"proposal"`
	Verdict  Verdict  `json:"verdict"`
	Reason   string   `json:"reason"`
}

// PendingItem carries the remaining cooling-off wait for client retry
// scheduling.
type PendingItem struct {
	Proposal        Proposal `json:"proposal"`
	Verdict         Verdict  `json:"verdict"`
	WaitRemainingMS int64    `json:"wait_remaining_ms"`
}

// Summary aggregates the statistics of one batch.
type Summary struct {
	TotalInputs        int     `json:"total_inputs"`
	NoiseRemoved       int     `json:"noise_removed"`
	DuplicatesMerged   int     `json:"duplicates_merged"`
	ProposalsGenerated int     `json:"proposals_generated"`
	ApprovedCount      int     `json:"approved_count"`
	RejectedCount      int     `json:"rejected_count"`
	PendingCount       int     `json:"pending_count"`
	DiscardRate        float64 `json:"discard_rate"`
	RulesetVersion     string  `json:"ruleset_version"`
}

// BatchResult is the orchestrator's output for one batch: the three
// partitions plus the summary.
type BatchResult struct {
	Approved []ApprovedItem `json:"approved"`
	Rejected []RejectedItem `json:"rejected"`
	Pending  []PendingItem  `json:"pending"`
	Summary  Summary        `json:"summary"`
}
