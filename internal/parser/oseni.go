package parser

import (
	"context"
	"strings"

	"github.com/baikov/orders-backend/internal/model"
)

// oseni reads the "Осень" chain format: a single flat sheet where trade
// points and their product rows are interleaved top to bottom. A row whose
// vendor-code cell differs from its code cell marks the start of a new trade
// point section; the rows after it (code cell non-empty) are that trade
// point's products. The "Итого" sentinel ends the data region.
//
// The scan is an explicit two-state machine — noOpenOrder / orderOpen — and
// an open order is flushed only when it accumulated at least one line item,
// so a trailing marker with no product rows persists nothing.
type oseni struct {
	job *Job
}

const (
	oseniVendorCodeColumn = "Артикул"
	oseniTPColumn         = "Код"
	oseniProductColumn    = "Номенклатура"
	oseniQuantityColumn   = "Количество"
	oseniTotalSentinel    = "Итого"
	oseniSkipRows         = 7
)

type oseniState int

const (
	noOpenOrder oseniState = iota
	orderOpen
)

// openOrder buffers the trade point and line items of the section currently
// being scanned. Nothing is persisted until the section closes non-empty.
type openOrder struct {
	tp    *model.TradePoint
	items []model.ProductInOrder
}

func newOseni(job *Job) Parser { return &oseni{job: job} }

func (p *oseni) Parse(ctx context.Context) error {
	t, err := ReadWorkbook(p.job.Data, ReadOptions{
		SkipRows: oseniSkipRows,
		Columns: []string{
			oseniVendorCodeColumn,
			oseniTPColumn,
			oseniProductColumn,
			oseniQuantityColumn,
		},
	})
	if err != nil {
		return err
	}

	vCol := t.Col(oseniVendorCodeColumn)
	tpCol := t.Col(oseniTPColumn)
	prodCol := t.Col(oseniProductColumn)
	qtyCol := t.Col(oseniQuantityColumn)

	state := noOpenOrder
	var current openOrder
	touched := newTouchedSet()

	for row := range t.Rows {
		vendorCode := t.Cell(row, vCol)
		if vendorCode == oseniTotalSentinel {
			break
		}
		tpCell := t.Cell(row, tpCol)

		switch {
		case vendorCode != tpCell && tpCell != "0":
			// Trade point marker row: close the previous section, open
			// a new one. A blank code cell is never a marker, so the
			// "0" fill value cannot become a trade point name.
			if err := p.flush(ctx, state, &current); err != nil {
				return err
			}
			tp, err := p.job.Store.GetOrCreateTradePointByName(ctx, p.job.Customer.ID, tpCell)
			if err != nil {
				return err
			}
			current = openOrder{tp: tp}
			state = orderOpen

		case tpCell != "0" && state == orderOpen:
			// Product row inside an open section.
			cp, err := p.job.Store.GetOrCreateProduct(
				ctx,
				p.job.Customer.ID,
				strings.TrimSpace(t.Cell(row, prodCol)),
				strings.TrimSpace(vendorCode),
			)
			if err != nil {
				return err
			}
			if amount := int(t.Number(row, qtyCol)); amount > 0 {
				current.items = append(current.items, model.ProductInOrder{
					ProductID: cp.ID,
					Amount:    amount,
				})
				touched.add(cp.ID)
			}

			// Rows outside any open section are skipped.
		}
	}

	if err := p.flush(ctx, state, &current); err != nil {
		return err
	}
	return p.job.Store.AttachProducts(ctx, p.job.CustomerOrder.ID, touched.ids)
}

// flush persists the open section's order, if it holds any line items.
func (p *oseni) flush(ctx context.Context, state oseniState, current *openOrder) error {
	if state != orderOpen || len(current.items) == 0 {
		return nil
	}
	order := &model.Order{
		CustomerOrderID: p.job.CustomerOrder.ID,
		TradePointID:    current.tp.ID,
	}
	if err := p.job.Store.CreateOrder(ctx, order); err != nil {
		return err
	}
	for i := range current.items {
		current.items[i].OrderID = order.ID
	}
	return p.job.Store.CreateLineItems(ctx, current.items)
}
