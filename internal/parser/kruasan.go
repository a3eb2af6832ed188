package parser

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// kruasan reads the "Круассан" chain format: a headerless sheet where the
// first column lists products (from the fourth row down) and every other
// column belongs to one trade point. The first three rows of a trade point
// column carry its sub-name, name and external code at fixed offsets; the
// display name is composed as "name (sub-name)".
//
// The format has no vendor code column, so creation synthesizes an opaque
// unique code to keep the (name, vendor code) natural key distinct per
// product name.
type kruasan struct {
	job *Job
}

const (
	kruasanHeaderRows = 3 // sub-name, name, sapcode
	kruasanProductCol = 0
)

func newKruasan(job *Job) Parser { return &kruasan{job: job} }

func (p *kruasan) Parse(ctx context.Context) error {
	t, err := ReadWorkbook(p.job.Data, ReadOptions{NoHeader: true})
	if err != nil {
		return err
	}

	tps, err := p.extractTradePoints(ctx, t)
	if err != nil {
		return err
	}
	if err := p.extractProducts(ctx, t); err != nil {
		return err
	}

	// Re-slice below the header block so the shared builder sees only
	// product rows.
	body := &Table{Rows: t.Rows}
	if len(body.Rows) > kruasanHeaderRows {
		body.Rows = body.Rows[kruasanHeaderRows:]
	} else {
		body.Rows = nil
	}
	return buildColumnOrders(ctx, p.job, body, kruasanProductCol, tps)
}

// extractTradePoints reads the fixed header block of every column after the
// first: row 0 sub-name, row 1 name, row 2 external code. Trade points are
// keyed by external code; the composed display name applies on creation only.
func (p *kruasan) extractTradePoints(ctx context.Context, t *Table) ([]tpColumn, error) {
	if t.Empty() {
		return nil, nil
	}
	width := len(t.Rows[0])

	var tps []tpColumn
	for col := 1; col < width; col++ {
		sapCode := t.Cell(2, col)
		if sapCode == "0" {
			continue // blank column — no trade point block
		}
		name := fmt.Sprintf("%s (%s)", t.Cell(1, col), t.Cell(0, col))
		tp, err := p.job.Store.GetOrCreateTradePointBySapCode(ctx, p.job.Customer.ID, sapCode, name)
		if err != nil {
			return nil, err
		}
		tps = append(tps, tpColumn{tp: tp, col: col})
	}
	return tps, nil
}

// extractProducts get-or-creates a product per body row, keyed by name with
// a synthesized vendor code applied only when the record is created.
func (p *kruasan) extractProducts(ctx context.Context, t *Table) error {
	for row := kruasanHeaderRows; row < len(t.Rows); row++ {
		name := strings.TrimSpace(t.Cell(row, kruasanProductCol))
		if name == "" || name == "0" {
			continue
		}
		code := strings.ReplaceAll(uuid.NewString(), "-", "")
		if _, err := p.job.Store.GetOrCreateProductByName(ctx, p.job.Customer.ID, name, code); err != nil {
			return err
		}
	}
	return nil
}
