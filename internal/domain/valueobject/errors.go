package valueobject

import "fmt"

// DataValidationError reports a malformed or out-of-range field in the
// customer records supplied for an evaluation. It aborts the whole
// evaluation; eligibility decisions are never made on incomplete evidence.
type DataValidationError struct {
	Field  string
	Reason string
}

func (e *DataValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewDataValidationError builds a DataValidationError for the given field.
func NewDataValidationError(field, format string, args ...any) *DataValidationError {
	return &DataValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// RuleConfigError reports an internally inconsistent offer rule set. It is
// surfaced when the catalog is constructed, so a broken offer is rejected
// before any customer is evaluated against it.
type RuleConfigError struct {
	OfferID string
	Reason  string
}

func (e *RuleConfigError) Error() string {
	return fmt.Sprintf("offer %s: invalid rule configuration: %s", e.OfferID, e.Reason)
}

// NewRuleConfigError builds a RuleConfigError for the given offer.
func NewRuleConfigError(offerID, format string, args ...any) *RuleConfigError {
	return &RuleConfigError{OfferID: offerID, Reason: fmt.Sprintf(format, args...)}
}
