package domain

import "errors"

var (
	// Field normalization errors
	ErrDateUnparseable   = errors.New("date is unparseable")
	ErrDateOutOfRange    = errors.New("date is outside the plausible range")
	ErrAmountUnparseable = errors.New("amount is unparseable")

	// Pipeline errors
	ErrEmptyInput = errors.New("input contains no rows")

	// Result store errors
	ErrResultNotFound = errors.New("processing result not found")
)

// RejectReason classifies why a raw row did not become a transaction.
type RejectReason string

const (
	ReasonUnparseableDate         RejectReason = "date_unparseable"
	ReasonDateOutOfRange          RejectReason = "date_out_of_range"
	ReasonUnparseableAmount       RejectReason = "amount_unparseable"
	ReasonUnrecognizedFormat      RejectReason = "unrecognized_format"
	ReasonAmbiguousClassification RejectReason = "ambiguous_classification"
	ReasonDuplicateRow            RejectReason = "duplicate_row"
)
