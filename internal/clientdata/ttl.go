package clientdata

import "time"

// TTL constants for different data types.
// These are added to time.Now() when storing to calculate the expiry.
const (
	// Interpreter responses are stable for a given query text.
	TTLInterpretation = time.Hour

	// Snapshots handed back alongside interpretations age out with the
	// trading session.
	TTLInterpretedResults = 10 * time.Minute
)

// Buckets lists every cache bucket for cleanup operations.
var Buckets = []string{
	BucketInterpretations,
	BucketInterpretedResults,
}

const (
	BucketInterpretations    = "interpretations"
	BucketInterpretedResults = "interpreted_results"
)
