// Package parser normalizes customer order spreadsheets into the canonical
// order model. Every customer format gets a hand-written adapter; there is no
// generic fallback. An adapter runs the fixed pipeline
// read → extract trade points → extract products → build orders
// (row-marker formats interleave the last three in a single scan) against a
// transaction-bound Store.
package parser

import (
	"context"
	"fmt"

	"github.com/baikov/orders-backend/internal/model"
)

// Job carries everything one parse operation needs: the upload being
// processed, its customer, the raw file bytes, and the transaction-bound
// persistence surface.
type Job struct {
	Customer      *model.Customer
	CustomerOrder *model.CustomerOrder
	FileName      string
	Data          []byte
	Store         Store
}

// Parser is the single capability every adapter exposes.
type Parser interface {
	Parse(ctx context.Context) error
}

// Constructor builds an adapter bound to one job.
type Constructor func(job *Job) Parser

// registry maps customer codes to adapter constructors. Adding a customer
// format means adding one adapter file and one entry here — existing
// adapters are never modified.
var registry = map[string]Constructor{
	"stroytorgovlya": newStroyTorgovlya,
	"oseni":          newOseni,
	"kruasan":        newKruasan,
	"teremok":        newTeremok,
}

// Registered reports whether an adapter exists for the customer code.
// Callers check this before storing anything for the upload.
func Registered(code string) bool {
	_, ok := registry[code]
	return ok
}

// New selects the adapter for the job's customer. Unknown code is fatal to
// the whole operation; no partial parse is attempted.
func New(job *Job) (Parser, error) {
	ctor, ok := registry[job.Customer.Code]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, job.Customer.Code)
	}
	return ctor(job), nil
}
