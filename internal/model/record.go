package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TxnType classifies the direction of a transaction.
type TxnType string

const (
	TxnDebit   TxnType = "debit"
	TxnCredit  TxnType = "credit"
	TxnUnknown TxnType = "unknown"
)

// TransactionRecord is the canonical, fully normalized output for one
// decoded message.
type TransactionRecord struct {
	Amount       decimal.Decimal // negative = money out, positive = money in
	Type         TxnType
	Date         time.Time
	Counterparty string // free text, may be empty
	AccountRef   string // masked account number, may be empty
	RefNo        string // bank reference (UPI/IMPS/NEFT), may be empty
	Balance      decimal.NullDecimal
	RuleLabel    string // label of the rule set that matched
	MessageID    string
}
