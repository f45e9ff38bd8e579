package formula

// Status is the certification outcome of a utilization check.
type Status string

const (
	StatusPass    Status = "PASS"
	StatusWarning Status = "WARNING"
	StatusFail    Status = "FAIL"
)

// Classification thresholds. At or above warningThreshold a member is
// close enough to capacity to flag; at or above failThreshold it is
// overstressed.
const (
	warningThreshold = 0.90
	failThreshold    = 1.00
)

// Classify maps a utilization ratio to PASS (<0.90), WARNING ([0.90,1.00))
// or FAIL (≥1.00).
func Classify(utilization float64) Status {
	switch {
	case utilization < warningThreshold:
		return StatusPass
	case utilization < failThreshold:
		return StatusWarning
	default:
		return StatusFail
	}
}
