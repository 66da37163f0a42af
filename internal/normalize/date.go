package normalize

import (
	"fmt"
	"strings"
	"time"

	"github.com/smsledger-dev/smsledger/internal/model"
)

// Date parses a captured date against the rule set's declared layouts,
// tried in order. Ambiguity is resolved by layout order, never by
// guessing; a capture no layout accepts fails.
func Date(raw string, layouts []string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &Error{
		Field:  model.FieldDate,
		Reason: model.ReasonDateUnparseable,
		Detail: fmt.Sprintf("%q matches none of %d declared layouts", raw, len(layouts)),
	}
}
