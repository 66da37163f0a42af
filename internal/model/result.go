package model

import "fmt"

// ResultStatus is the terminal state of decoding one message.
type ResultStatus string

const (
	StatusSuccess  ResultStatus = "success"
	StatusUnparsed ResultStatus = "unparsed"
)

// Stage names the pipeline step at which a message failed.
type Stage string

const (
	StageRuleMatch Stage = "rule-match"
	StageExtract   Stage = "extract"
	StageNormalize Stage = "normalize"
)

// FailureReason classifies why a message could not be decoded.
type FailureReason string

const (
	ReasonSenderUnmatched   FailureReason = "sender-unmatched"
	ReasonNotTransaction    FailureReason = "not-transaction"
	ReasonFieldAbsent       FailureReason = "field-absent"
	ReasonAmountUnparseable FailureReason = "amount-unparseable"
	ReasonDateUnparseable   FailureReason = "date-unparseable"
)

// Failure describes a single decode failure with enough context to
// refine rule coverage.
type Failure struct {
	Stage  Stage
	Field  FieldKind // empty when the failure is not field-specific
	Reason FailureReason
	Detail string
}

func (f Failure) Error() string {
	if f.Field != "" {
		return fmt.Sprintf("%s [%s]: %s: %s", f.Stage, f.Field, f.Reason, f.Detail)
	}
	return fmt.Sprintf("%s: %s: %s", f.Stage, f.Reason, f.Detail)
}

// ExtractionResult is the outcome of decoding one RawMessage. Exactly
// one of Record/Failure is set, matching Status.
type ExtractionResult struct {
	Message RawMessage
	Status  ResultStatus
	Record  *TransactionRecord
	Failure *Failure
}

// Success builds a successful result.
func Success(msg RawMessage, rec *TransactionRecord) ExtractionResult {
	return ExtractionResult{Message: msg, Status: StatusSuccess, Record: rec}
}

// Unparsed builds a failed result.
func Unparsed(msg RawMessage, f Failure) ExtractionResult {
	return ExtractionResult{Message: msg, Status: StatusUnparsed, Failure: &f}
}
