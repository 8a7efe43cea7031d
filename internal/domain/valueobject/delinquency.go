package valueobject

import "fmt"

// Delinquency is the payment-status severity of an account. Severity is
// ordinal: current < late_30 < late_60_plus.
type Delinquency string

const (
	DelinquencyCurrent    Delinquency = "current"
	DelinquencyLate30     Delinquency = "late_30"
	DelinquencyLate60Plus Delinquency = "late_60_plus"
)

// ParseDelinquency converts a raw string into a Delinquency status.
func ParseDelinquency(raw string) (Delinquency, error) {
	switch Delinquency(raw) {
	case DelinquencyCurrent, DelinquencyLate30, DelinquencyLate60Plus:
		return Delinquency(raw), nil
	default:
		return "", fmt.Errorf("unknown delinquency status %q", raw)
	}
}

// Valid reports whether the status is one of the known values.
func (d Delinquency) Valid() bool {
	switch d {
	case DelinquencyCurrent, DelinquencyLate30, DelinquencyLate60Plus:
		return true
	}
	return false
}

// Severity returns the ordinal rank used for comparisons.
func (d Delinquency) Severity() int {
	switch d {
	case DelinquencyLate30:
		return 1
	case DelinquencyLate60Plus:
		return 2
	default:
		return 0
	}
}

// AtMost reports whether d is no more severe than limit.
func (d Delinquency) AtMost(limit Delinquency) bool {
	return d.Severity() <= limit.Severity()
}

// WorstDelinquency returns the most severe status in the list, or
// DelinquencyCurrent for an empty list.
func WorstDelinquency(statuses []Delinquency) Delinquency {
	worst := DelinquencyCurrent
	for _, s := range statuses {
		if s.Severity() > worst.Severity() {
			worst = s
		}
	}
	return worst
}

// String returns the wire representation.
func (d Delinquency) String() string {
	return string(d)
}
