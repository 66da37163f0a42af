// Package ingest reads SMS dump files and canonicalizes message bodies
// for the decoder.
package ingest

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/smsledger-dev/smsledger/internal/model"
)

// DumpMessage is one row of an SMS dump JSON file.
type DumpMessage struct {
	Address string `json:"address"`
	Body    string `json:"body"`
	Date    string `json:"date,omitempty"` // RFC 3339, optional
}

// Sequential full-string replaces: the newline pass runs first so the
// abbreviation passes see the spaces it writes ("\nur " must become
// " your ").
var replacements = [][2]string{
	{"\n", " "},
	{" ur ", " your "},
	{" trf ", " transfer "},
	{" refno ", " ref no "},
}

// Preprocess canonicalizes a message body: lowercase, newlines to
// spaces, and common bank abbreviations expanded. Rule set patterns
// are written against this form.
func Preprocess(body string) string {
	s := strings.ToLower(body)
	for _, rep := range replacements {
		s = strings.ReplaceAll(s, rep[0], rep[1])
	}
	return s
}

// ReadDump parses an SMS dump (JSON array of DumpMessage) into
// RawMessages with fresh IDs and canonical bodies. A row with a
// malformed date keeps a zero ReceivedAt rather than failing the whole
// dump; only unreadable JSON is an error.
func ReadDump(r io.Reader) ([]model.RawMessage, error) {
	var rows []DumpMessage
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, fmt.Errorf("parsing sms dump: %w", err)
	}

	msgs := make([]model.RawMessage, 0, len(rows))
	for _, row := range rows {
		msg := model.RawMessage{
			ID:     uuid.NewString(),
			Sender: strings.ToLower(strings.TrimSpace(row.Address)),
			Body:   Preprocess(row.Body),
		}
		if row.Date != "" {
			if ts, err := time.Parse(time.RFC3339, row.Date); err == nil {
				msg.ReceivedAt = ts
			}
		}
		msgs = append(msgs, msg)
	}
	return msgs, nil
}

// WriteDump writes messages back out in dump format, for the filter
// command's output.
func WriteDump(w io.Writer, msgs []model.RawMessage) error {
	rows := make([]DumpMessage, len(msgs))
	for i, msg := range msgs {
		rows[i] = DumpMessage{Address: msg.Sender, Body: msg.Body}
		if !msg.ReceivedAt.IsZero() {
			rows[i].Date = msg.ReceivedAt.Format(time.RFC3339)
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rows); err != nil {
		return fmt.Errorf("writing sms dump: %w", err)
	}
	return nil
}

// FilterBankSenders keeps messages whose sender contains any of the
// given bank entity strings, case-insensitively. Order is preserved.
func FilterBankSenders(msgs []model.RawMessage, entities []string) []model.RawMessage {
	var kept []model.RawMessage
	for _, msg := range msgs {
		sender := strings.ToLower(msg.Sender)
		for _, e := range entities {
			if e != "" && strings.Contains(sender, strings.ToLower(e)) {
				kept = append(kept, msg)
				break
			}
		}
	}
	return kept
}
