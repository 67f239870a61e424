package domain

import "time"

// Strategy identifies which cascade level produced an output.
type Strategy string

const (
	StrategyAIFull   Strategy = "ai_full"
	StrategyAISubset Strategy = "ai_smart_subset"
	StrategyTemplate Strategy = "template"
	StrategyAppend   Strategy = "append"
	StrategyOriginal Strategy = "original"
)

// AttemptOutcome is the result of one cascade level for one item.
// Failures are returned as data, not raised.
type AttemptOutcome struct {
	Succeeded bool
	Text      string
	Kind      ErrorKind
	Err       error
	Strategy  Strategy
}

// BatchItemResult is the accepted, length-checked output for one item.
// Created exactly once per item and immutable thereafter.
type BatchItemResult struct {
	Index        int      `json:"index"`
	FinalText    string   `json:"final_text"`
	UsedFallback bool     `json:"used_fallback"`
	Strategy     Strategy `json:"strategy"`
	Validated    bool     `json:"validated"`
}

// BatchSummary aggregates per-item outcomes after a batch completes.
type BatchSummary struct {
	Total             int      `json:"total"`
	SuccessfulPrimary int      `json:"successful_primary"`
	UsedFallback      int      `json:"used_fallback"`
	FailedAll         int      `json:"failed_all"`
	SuccessRate       float64  `json:"success_rate"`
	Errors            []string `json:"errors,omitempty"`
}

// BatchItemRecord is the stored form of one item's outcome, keeping the
// original text alongside the accepted output for history and document
// reconstruction.
type BatchItemRecord struct {
	Index        int      `json:"index"         db:"item_index"`
	OriginalText string   `json:"original_text" db:"original_text"`
	FinalText    string   `json:"final_text"    db:"final_text"`
	Strategy     Strategy `json:"strategy"      db:"strategy"`
	UsedFallback bool     `json:"used_fallback" db:"used_fallback"`
	Validated    bool     `json:"validated"     db:"validated"`
}

// BatchRun is a completed batch with its summary and per-item records.
type BatchRun struct {
	ID        string            `json:"id"`
	Style     Style             `json:"style"`
	Summary   BatchSummary      `json:"summary"`
	Items     []BatchItemRecord `json:"items"`
	CreatedAt time.Time         `json:"created_at"`
}
