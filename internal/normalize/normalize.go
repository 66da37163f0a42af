// Package normalize converts raw captured substrings into canonical
// values. Every function here is deterministic and side-effect free.
package normalize

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/smsledger-dev/smsledger/internal/model"
)

// Error describes a failed field normalization.
type Error struct {
	Field  model.FieldKind
	Reason model.FailureReason
	Detail string
}

func (e *Error) Error() string {
	return fmt.Sprintf("normalizing %s: %s: %s", e.Field, e.Reason, e.Detail)
}

var (
	currencyMarker = regexp.MustCompile(`(?i)rs\.?|inr|₹`)
	digit          = regexp.MustCompile(`[0-9]`)
)

// Amount parses a captured amount, stripping currency markers and
// thousands separators. The second return reports whether the capture
// carried its own sign.
func Amount(raw string) (decimal.Decimal, bool, error) {
	s := currencyMarker.ReplaceAllString(raw, "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	if !digit.MatchString(s) {
		return decimal.Zero, false, &Error{
			Field:  model.FieldAmount,
			Reason: model.ReasonAmountUnparseable,
			Detail: fmt.Sprintf("no digits in %q", raw),
		}
	}

	signed := strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+")

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false, &Error{
			Field:  model.FieldAmount,
			Reason: model.ReasonAmountUnparseable,
			Detail: fmt.Sprintf("parsing %q: %v", raw, err),
		}
	}
	return d, signed, nil
}

// Resolve settles the record's sign jointly from the parsed amount and
// the transaction type. A debit is money out (negative), a credit
// money in (positive). With an unknown type an explicit sign on the
// capture is honored; an unsigned amount is ambiguous and fails rather
// than guessing.
func Resolve(amount decimal.Decimal, explicitSign bool, txn model.TxnType) (decimal.Decimal, error) {
	switch txn {
	case model.TxnDebit:
		return amount.Abs().Neg(), nil
	case model.TxnCredit:
		return amount.Abs(), nil
	default:
		if explicitSign {
			return amount, nil
		}
		return decimal.Zero, &Error{
			Field:  model.FieldAmount,
			Reason: model.ReasonAmountUnparseable,
			Detail: "sign ambiguous: unknown transaction type and unsigned amount",
		}
	}
}

// Balance parses a captured running balance. Same numeric handling as
// Amount but reported against the balance field.
func Balance(raw string) (decimal.Decimal, error) {
	d, _, err := Amount(raw)
	if err != nil {
		var nerr *Error
		if errors.As(err, &nerr) {
			return decimal.Zero, &Error{Field: model.FieldBalance, Reason: nerr.Reason, Detail: nerr.Detail}
		}
		return decimal.Zero, err
	}
	return d, nil
}

// Classify maps the direction vocabulary onto a transaction type.
// Debit words are checked before credit words, each in declared order;
// unknown vocabulary yields TxnUnknown rather than an error.
func Classify(text string, debitWords, creditWords []string) model.TxnType {
	for _, w := range debitWords {
		if strings.Contains(text, w) {
			return model.TxnDebit
		}
	}
	for _, w := range creditWords {
		if strings.Contains(text, w) {
			return model.TxnCredit
		}
	}
	return model.TxnUnknown
}
