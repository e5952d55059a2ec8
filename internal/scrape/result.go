package scrape

// Status classifies the outcome of one category's extraction.
type Status int

const (
	// StatusOK means extraction ran; Records may still be empty if the
	// table had no usable rows.
	StatusOK Status = iota
	// StatusBlockMissing means the expected table or block was absent
	// from the document.
	StatusBlockMissing
	// StatusFetchFailed means the document could not be fetched after
	// exhausting retries.
	StatusFetchFailed
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusBlockMissing:
		return "block missing"
	case StatusFetchFailed:
		return "fetch failed"
	default:
		return "unknown"
	}
}

// Result carries one category's extracted records, or the reason the
// category is empty this cycle. Empty-with-reason outcomes flow to the
// aggregator instead of being raised, so one broken category never
// short-circuits its siblings.
type Result[T any] struct {
	Status  Status
	Records []T
	Reason  string
}

// Count returns the number of extracted records.
func (r Result[T]) Count() int { return len(r.Records) }

func ok[T any](records []T) Result[T] {
	return Result[T]{Status: StatusOK, Records: records}
}

func blockMissing[T any](reason string) Result[T] {
	return Result[T]{Status: StatusBlockMissing, Reason: reason}
}

func fetchFailed[T any](err error) Result[T] {
	return Result[T]{Status: StatusFetchFailed, Reason: err.Error()}
}
