// Package decoder runs the per-message pipeline: rule lookup, field
// extraction, and normalization. Each message is processed exactly
// once, synchronously; failures are returned as data, never dropped.
package decoder

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/smsledger-dev/smsledger/internal/extract"
	"github.com/smsledger-dev/smsledger/internal/model"
	"github.com/smsledger-dev/smsledger/internal/normalize"
	"github.com/smsledger-dev/smsledger/internal/rules"
)

// Decoder decodes raw messages against an immutable registry. Safe for
// concurrent use once constructed.
type Decoder struct {
	registry *rules.Registry
}

// New creates a Decoder over a fully built registry.
func New(registry *rules.Registry) *Decoder {
	return &Decoder{registry: registry}
}

// Decode runs one message to a terminal result. The body is expected
// in canonical form (see ingest.Preprocess).
func (d *Decoder) Decode(msg model.RawMessage) model.ExtractionResult {
	rs := d.registry.Lookup(msg.Sender, msg.Body)
	if rs == nil {
		return model.Unparsed(msg, model.Failure{
			Stage:  model.StageRuleMatch,
			Reason: model.ReasonSenderUnmatched,
			Detail: "no rule set claims sender " + orUnknown(msg.Sender),
		})
	}

	if !rs.IsTransaction(msg.Body) {
		return model.Unparsed(msg, model.Failure{
			Stage:  model.StageRuleMatch,
			Reason: model.ReasonNotTransaction,
			Detail: "body gated as non-transaction traffic by " + rs.Label,
		})
	}

	caps := extract.Extract(rs, msg.Body)

	rawAmount, ok := caps.Get(model.FieldAmount)
	if !ok {
		return model.Unparsed(msg, model.Failure{
			Stage:  model.StageExtract,
			Field:  model.FieldAmount,
			Reason: model.ReasonFieldAbsent,
			Detail: "no extractor captured an amount",
		})
	}

	// Direction comes from the captured type token when one was
	// declared, from the whole body otherwise.
	typeText := msg.Body
	if rawType, ok := caps.Get(model.FieldType); ok {
		typeText = rawType
	}
	txnType := normalize.Classify(typeText, rs.DebitWords, rs.CreditWords)

	amount, explicitSign, err := normalize.Amount(rawAmount)
	if err != nil {
		return model.Unparsed(msg, normalizeFailure(err))
	}
	signed, err := normalize.Resolve(amount, explicitSign, txnType)
	if err != nil {
		return model.Unparsed(msg, normalizeFailure(err))
	}

	date, failure := d.resolveDate(rs, msg, caps)
	if failure != nil {
		return model.Unparsed(msg, *failure)
	}

	rec := &model.TransactionRecord{
		Amount:    signed,
		Type:      txnType,
		Date:      date,
		RuleLabel: rs.Label,
		MessageID: msg.ID,
	}
	if v, ok := caps.Get(model.FieldCounterparty); ok {
		rec.Counterparty = v
	}
	if v, ok := caps.Get(model.FieldAccountRef); ok {
		rec.AccountRef = v
	}
	if v, ok := caps.Get(model.FieldRefNo); ok {
		rec.RefNo = v
	}
	if v, ok := caps.Get(model.FieldBalance); ok {
		// Balance is optional: a capture that fails numeric
		// normalization is treated as absent, not as a record failure.
		if bal, err := normalize.Balance(v); err == nil {
			rec.Balance = decimal.NullDecimal{Decimal: bal, Valid: true}
		}
	}

	return model.Success(msg, rec)
}

func (d *Decoder) resolveDate(rs *rules.RuleSet, msg model.RawMessage, caps extract.Captures) (date time.Time, failure *model.Failure) {
	raw, ok := caps.Get(model.FieldDate)
	if !ok {
		if rs.UseReceivedAt && !msg.ReceivedAt.IsZero() {
			return msg.ReceivedAt, nil
		}
		return date, &model.Failure{
			Stage:  model.StageExtract,
			Field:  model.FieldDate,
			Reason: model.ReasonFieldAbsent,
			Detail: "no extractor captured a date and no received timestamp fallback",
		}
	}
	parsed, err := normalize.Date(raw, rs.DateLayouts)
	if err != nil {
		f := normalizeFailure(err)
		return date, &f
	}
	return parsed, nil
}

func normalizeFailure(err error) model.Failure {
	if nerr, ok := err.(*normalize.Error); ok {
		return model.Failure{
			Stage:  model.StageNormalize,
			Field:  nerr.Field,
			Reason: nerr.Reason,
			Detail: nerr.Detail,
		}
	}
	return model.Failure{
		Stage:  model.StageNormalize,
		Reason: model.ReasonAmountUnparseable,
		Detail: err.Error(),
	}
}

func orUnknown(sender string) string {
	if sender == "" {
		return "(empty)"
	}
	return sender
}
