package formatter

import (
	"errors"

	"github.com/philipp01105/attrlog/core"
)

// Formatter renders a record into the given writer. An error aborts
// the record for the handler that invoked the formatter; other
// handlers are unaffected.
type Formatter interface {
	Format(r *core.Record, w *core.Writer) error
}

// ErrAttributeMissing reports a required placeholder whose attribute
// is absent from the record. The record is dropped by that handler.
var ErrAttributeMissing = errors.New("attribute not found in record")
