package parser

import (
	"context"
	"fmt"
	"strings"

	"github.com/baikov/orders-backend/internal/model"

	"github.com/google/uuid"
)

// touchedSet accumulates the customer products that entered a line item,
// de-duplicated, in first-seen order.
type touchedSet struct {
	seen map[uuid.UUID]struct{}
	ids  []uuid.UUID
}

func newTouchedSet() *touchedSet {
	return &touchedSet{seen: make(map[uuid.UUID]struct{})}
}

func (s *touchedSet) add(id uuid.UUID) {
	if _, ok := s.seen[id]; ok {
		return
	}
	s.seen[id] = struct{}{}
	s.ids = append(s.ids, id)
}

// tpColumn pairs a resolved trade point with the table column holding its
// quantities.
type tpColumn struct {
	tp  *model.TradePoint
	col int
}

// buildColumnOrders is the order builder for column-addressed formats: each
// trade point owns one quantity column, products are named in productCol.
// For every trade point it scans all rows, turns each positive quantity into
// a line item (amount truncated toward zero), skips everything else, and
// persists an Order only when at least one line item accumulated. The
// touched-product set is attached to the CustomerOrder once, at the end.
//
// Products are resolved by lookup, not creation: extraction has already run,
// so a miss here is an ErrIntegrity.
func buildColumnOrders(ctx context.Context, job *Job, t *Table, productCol int, tps []tpColumn) error {
	touched := newTouchedSet()

	for _, tc := range tps {
		var items []model.ProductInOrder

		for row := range t.Rows {
			qty := t.Number(row, tc.col)
			if qty <= 0 {
				continue
			}
			name := strings.TrimSpace(t.Cell(row, productCol))
			cp, err := job.Store.FindProductByName(ctx, job.Customer.ID, name)
			if err != nil {
				return fmt.Errorf("%w: product %q: %v", ErrIntegrity, name, err)
			}
			items = append(items, model.ProductInOrder{
				ProductID: cp.ID,
				Amount:    int(qty),
			})
			touched.add(cp.ID)
		}

		if len(items) == 0 {
			continue // no positive quantities — no order for this trade point
		}

		order := &model.Order{
			CustomerOrderID: job.CustomerOrder.ID,
			TradePointID:    tc.tp.ID,
		}
		if err := job.Store.CreateOrder(ctx, order); err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := job.Store.CreateLineItems(ctx, items); err != nil {
			return err
		}
	}

	return job.Store.AttachProducts(ctx, job.CustomerOrder.ID, touched.ids)
}
