package decoder

import (
	"iter"

	"github.com/smsledger-dev/smsledger/internal/model"
)

// Collect decodes a stream of messages lazily, yielding one result per
// input in input order. The sequence is bounded by its input and not
// restartable; a caller that stops consuming stops the work.
func (d *Decoder) Collect(msgs iter.Seq[model.RawMessage]) iter.Seq[model.ExtractionResult] {
	return func(yield func(model.ExtractionResult) bool) {
		for msg := range msgs {
			if !yield(d.Decode(msg)) {
				return
			}
		}
	}
}

// DecodeAll decodes a batch eagerly, preserving order. Output length
// always equals input length.
func (d *Decoder) DecodeAll(msgs []model.RawMessage) []model.ExtractionResult {
	results := make([]model.ExtractionResult, len(msgs))
	for i, msg := range msgs {
		results[i] = d.Decode(msg)
	}
	return results
}
