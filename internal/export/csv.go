// Package export writes decoded results to downstream sinks.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/smsledger-dev/smsledger/internal/model"
)

// Header is the CSV header for decoded results.
const Header = "message_id,sender,status,rule,type,amount,date,counterparty,account_ref,ref_no,balance,failure"

const (
	numFields    = 12
	dateFormat   = "2006-01-02"
	colMessageID = 0
	colSender    = 1
	colStatus    = 2
	colRule      = 3
	colType      = 4
	colAmount    = 5
	colDate      = 6
	colCparty    = 7
	colAcctRef   = 8
	colRefNo     = 9
	colBalance   = 10
	colFailure   = 11
)

// MarshalResult converts a result to a CSV row. Failure rows carry the
// failure column and leave record columns empty.
func MarshalResult(res model.ExtractionResult) []string {
	row := make([]string, numFields)
	row[colMessageID] = res.Message.ID
	row[colSender] = res.Message.Sender
	row[colStatus] = string(res.Status)

	if res.Record != nil {
		rec := res.Record
		row[colRule] = rec.RuleLabel
		row[colType] = string(rec.Type)
		row[colAmount] = rec.Amount.StringFixed(2)
		row[colDate] = rec.Date.Format(dateFormat)
		row[colCparty] = rec.Counterparty
		row[colAcctRef] = rec.AccountRef
		row[colRefNo] = rec.RefNo
		if rec.Balance.Valid {
			row[colBalance] = rec.Balance.Decimal.StringFixed(2)
		}
	}
	if res.Failure != nil {
		row[colFailure] = res.Failure.Error()
	}
	return row
}

// WriteResults streams results to w as CSV, header first. One row per
// result; successes and failures are both represented so the output
// always has as many rows as the input had messages.
func WriteResults(w io.Writer, results iter.Seq[model.ExtractionResult]) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	i := 0
	for res := range results {
		if err := cw.Write(MarshalResult(res)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
		i++
	}
	return cw.Error()
}

// Slice adapts an in-memory batch to the sequence WriteResults takes.
func Slice(results []model.ExtractionResult) iter.Seq[model.ExtractionResult] {
	return func(yield func(model.ExtractionResult) bool) {
		for _, res := range results {
			if !yield(res) {
				return
			}
		}
	}
}
