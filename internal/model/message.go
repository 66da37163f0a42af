package model

import "time"

// RawMessage is one bank SMS as handed to the decoder. The body is
// expected in canonical form (see ingest.Preprocess); the decoder never
// mutates a message.
type RawMessage struct {
	ID         string
	Sender     string    // originating short code, may be empty
	Body       string
	ReceivedAt time.Time // zero if the source did not record one
}

// FieldKind identifies one extractable field of a bank message.
type FieldKind string

const (
	FieldAmount       FieldKind = "amount"
	FieldDate         FieldKind = "date"
	FieldType         FieldKind = "type"
	FieldCounterparty FieldKind = "counterparty"
	FieldAccountRef   FieldKind = "account_ref"
	FieldRefNo        FieldKind = "ref_no"
	FieldBalance      FieldKind = "balance"
)

// Required reports whether a record cannot succeed without this field.
func (k FieldKind) Required() bool {
	return k == FieldAmount || k == FieldDate
}
