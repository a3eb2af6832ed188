package parser

import (
	"context"
	"strings"
)

// stroyTorgovlya reads the "Строй-Торговля" chain format: one sheet, one
// header row after a single skipped title row. Two fixed columns carry the
// product name and the vendor code; every other column is named after a
// trade point and holds its quantities.
type stroyTorgovlya struct {
	job *Job
}

const (
	stroyProductColumn = "Второе наименование товара"
	stroyCodeColumn    = "Артикул"
	stroySkipRows      = 1
)

func newStroyTorgovlya(job *Job) Parser { return &stroyTorgovlya{job: job} }

func (p *stroyTorgovlya) Parse(ctx context.Context) error {
	t, err := ReadWorkbook(p.job.Data, ReadOptions{SkipRows: stroySkipRows})
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
	return buildColumnOrders(ctx, p.job, t, t.Col(stroyProductColumn), tps)
}

// extractTradePoints treats every column except the product and code columns
// as one trade point name. Repeated names reuse the same record.
func (p *stroyTorgovlya) extractTradePoints(ctx context.Context, t *Table) ([]tpColumn, error) {
	var tps []tpColumn
	for col, name := range t.Header {
		if name == stroyProductColumn || name == stroyCodeColumn || name == "" {
			continue
		}
		tp, err := p.job.Store.GetOrCreateTradePointByName(ctx, p.job.Customer.ID, name)
		if err != nil {
			return nil, err
		}
		tps = append(tps, tpColumn{tp: tp, col: col})
	}
	return tps, nil
}

// extractProducts get-or-creates a customer product per row, keyed on
// (name, vendor code). Must complete before order building.
func (p *stroyTorgovlya) extractProducts(ctx context.Context, t *Table) error {
	prodCol := t.Col(stroyProductColumn)
	if prodCol < 0 {
		return &columnError{name: stroyProductColumn}
	}
	codeCol := t.Col(stroyCodeColumn)
	if codeCol < 0 {
		return &columnError{name: stroyCodeColumn}
	}
	for row := range t.Rows {
		name := strings.TrimSpace(t.Cell(row, prodCol))
		code := strings.TrimSpace(t.Cell(row, codeCol))
		if _, err := p.job.Store.GetOrCreateProduct(ctx, p.job.Customer.ID, name, code); err != nil {
			return err
		}
	}
	return nil
}
