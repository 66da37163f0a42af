package export

import (
	"database/sql"
	"fmt"
	"iter"

	_ "modernc.org/sqlite"

	"github.com/smsledger-dev/smsledger/internal/model"
)

const createTransactions = `
CREATE TABLE IF NOT EXISTS transactions (
	message_id   TEXT PRIMARY KEY,
	sender       TEXT NOT NULL,
	rule         TEXT NOT NULL,
	type         TEXT NOT NULL,
	amount       TEXT NOT NULL,
	date         TEXT NOT NULL,
	counterparty TEXT NOT NULL DEFAULT '',
	account_ref  TEXT NOT NULL DEFAULT '',
	ref_no       TEXT NOT NULL DEFAULT '',
	balance      TEXT
)`

const insertTransaction = `
INSERT INTO transactions
	(message_id, sender, rule, type, amount, date, counterparty, account_ref, ref_no, balance)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// OpenDB opens (creating if needed) a SQLite results database. A
// single connection avoids SQLite locking issues.
func OpenDB(path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening results db: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(createTransactions); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating transactions table: %w", err)
	}
	return db, nil
}

// InsertRecords writes every successful record in the sequence to the
// database in one transaction. Unparsed results are skipped. Returns
// the number of rows written.
func InsertRecords(db *sql.DB, results iter.Seq[model.ExtractionResult]) (int, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning insert: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(insertTransaction)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	n := 0
	for res := range results {
		if res.Record == nil {
			continue
		}
		rec := res.Record
		var balance any
		if rec.Balance.Valid {
			balance = rec.Balance.Decimal.StringFixed(2)
		}
		_, err := stmt.Exec(
			rec.MessageID,
			res.Message.Sender,
			rec.RuleLabel,
			string(rec.Type),
			rec.Amount.StringFixed(2),
			rec.Date.Format(dateFormat),
			rec.Counterparty,
			rec.AccountRef,
			rec.RefNo,
			balance,
		)
		if err != nil {
			return 0, fmt.Errorf("inserting record %s: %w", rec.MessageID, err)
		}
		n++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing insert: %w", err)
	}
	return n, nil
}
