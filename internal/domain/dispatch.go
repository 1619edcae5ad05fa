package domain

// MatchKind is the resolution outcome of one bulk item.
type MatchKind int

const (
	Matched MatchKind = iota
	Unmatched
	MissingContactKind
)

// DispatchReceipt is the human-readable record of a successful send.
type DispatchReceipt struct {
	Name       string
	Identifier string
	Contact    string
}

// MissingContactItem is a matched record that cannot be reached.
type MissingContactItem struct {
	Identifier string
	Reason     string
}

// DispatchFailure is an item whose action failed.
type DispatchFailure struct {
	Key   string
	Error string
}

// DispatchResult holds the four disjoint buckets of a bulk run, in input order.
// Every input item appears in exactly one bucket.
type DispatchResult struct {
	Succeeded      []DispatchReceipt
	Unmatched      []string
	MissingContact []MissingContactItem
	Failed         []DispatchFailure
}

// NewDispatchResult returns a result with empty, non-nil buckets.
func NewDispatchResult() *DispatchResult {
	return &DispatchResult{
		Succeeded:      []DispatchReceipt{},
		Unmatched:      []string{},
		MissingContact: []MissingContactItem{},
		Failed:         []DispatchFailure{},
	}
}

// Total is the number of items accounted for across all buckets.
func (r *DispatchResult) Total() int {
	return len(r.Succeeded) + len(r.Unmatched) + len(r.MissingContact) + len(r.Failed)
}
