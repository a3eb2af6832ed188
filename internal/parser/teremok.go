package parser

import (
	"context"
	"fmt"
	"strings"

	"github.com/baikov/orders-backend/internal/model"
)

// teremok reads the "Теремок" chain format: a ZIP bundle with one xlsx
// member per trade point. Each member describes its trade point in a fixed
// header block (name, address, external code) and lists product rows below
// it: name, vendor code, quantity. Members produce independent orders; the
// touched-product set spans the whole bundle.
type teremok struct {
	job *Job
}

const (
	teremokNameCol   = 0
	teremokVendorCol = 1
	teremokQtyCol    = 2
)

func newTeremok(job *Job) Parser { return &teremok{job: job} }

func (p *teremok) Parse(ctx context.Context) error {
	sheets, err := ReadArchive(p.job.Data)
	if err != nil {
		return err
	}

	touched := newTouchedSet()
	for _, sheet := range sheets {
		if err := p.parseSheet(ctx, &sheet, touched); err != nil {
			return err
		}
	}
	return p.job.Store.AttachProducts(ctx, p.job.CustomerOrder.ID, touched.ids)
}

func (p *teremok) parseSheet(ctx context.Context, sheet *ArchiveSheet, touched *touchedSet) error {
	if sheet.Meta.SapCode == "" {
		return fmt.Errorf("%w: member %s has no trade point code", ErrUnreadableFile, sheet.FileName)
	}

	name := sheet.Meta.Name
	if sheet.Meta.Address != "" {
		name = fmt.Sprintf("%s (%s)", sheet.Meta.Name, sheet.Meta.Address)
	}
	tp, err := p.job.Store.GetOrCreateTradePointBySapCode(ctx, p.job.Customer.ID, sheet.Meta.SapCode, name)
	if err != nil {
		return err
	}

	t := sheet.Table

	// Products first: order building resolves by the same natural key.
	for row := range t.Rows {
		pname := strings.TrimSpace(t.Cell(row, teremokNameCol))
		if pname == "" || pname == "0" {
			continue
		}
		code := strings.TrimSpace(t.Cell(row, teremokVendorCol))
		if _, err := p.job.Store.GetOrCreateProduct(ctx, p.job.Customer.ID, pname, code); err != nil {
			return err
		}
	}

	var items []model.ProductInOrder
	for row := range t.Rows {
		amount := int(t.Number(row, teremokQtyCol))
		if amount <= 0 {
			continue
		}
		pname := strings.TrimSpace(t.Cell(row, teremokNameCol))
		if pname == "" || pname == "0" {
			continue
		}
		cp, err := p.job.Store.FindProductByName(ctx, p.job.Customer.ID, pname)
		if err != nil {
			return fmt.Errorf("%w: product %q: %v", ErrIntegrity, pname, err)
		}
		items = append(items, model.ProductInOrder{ProductID: cp.ID, Amount: amount})
		touched.add(cp.ID)
	}

	if len(items) == 0 {
		return nil // member had no positive quantities — no order
	}

	order := &model.Order{
		CustomerOrderID: p.job.CustomerOrder.ID,
		TradePointID:    tp.ID,
	}
	if err := p.job.Store.CreateOrder(ctx, order); err != nil {
		return err
	}
	for i := range items {
		items[i].OrderID = order.ID
	}
	return p.job.Store.CreateLineItems(ctx, items)
}
