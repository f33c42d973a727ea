package domain

// ConfidenceBucket buckets a lift prediction's confidence by the count
// of contributing rules.
type ConfidenceBucket string

// Confidence buckets: High for 5+ fired rules, Medium for 3-4, Low otherwise.
const (
	ConfidenceHigh   ConfidenceBucket = "high"
	ConfidenceMedium ConfidenceBucket = "medium"
	ConfidenceLow    ConfidenceBucket = "low"
)

// LiftPrediction is the heuristic predicted conversion lift for a
// variant. Lift compounds multiplicatively across fired rules and is
// always disclosed as a simulated estimate, never a measured result.
type LiftPrediction struct {
	Metric    string  `json:"metric"`
	Baseline  float64 `json:"baseline"`
	Predicted float64 `json:"predicted"`

	// Lift is the relative point estimate, e.g. 0.103 for +10.3%.
	Lift float64 `json:"lift"`

	// IntervalLow/IntervalHigh bound the estimate by a spread tied to
	// the confidence bucket.
	IntervalLow  float64 `json:"interval_low"`
	IntervalHigh float64 `json:"interval_high"`

	Confidence ConfidenceBucket `json:"confidence"`
	RuleCount  int              `json:"rule_count"`

	// Assumptions is a fixed, literal disclosure list returned verbatim.
	Assumptions []string `json:"assumptions"`
}
