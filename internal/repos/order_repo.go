package repos

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"tokokita/internal/domain"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

type orderRow struct {
	ID             string `db:"id"`
	Subtotal       int64  `db:"subtotal"`
	ShippingCost   int64  `db:"shipping_cost"`
	Total          int64  `db:"total"`
	Address        string `db:"address"`
	PaymentMethod  string `db:"payment_method"`
	ShippingMethod string `db:"shipping_method"`
	CreatedAt      string `db:"created_at"`
}

// Place writes the order header, its line snapshots, and the removal of
// the checked-out cart lines as one transaction, so a failed line insert
// can never leave a header with zero lines behind.
func (r *OrderRepo) Place(ctx context.Context, userID string, o domain.Order, clearProductIDs []string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
	  INSERT INTO orders(id, user_id, subtotal, shipping_cost, total, address, payment_method, shipping_method, created_at)
	  VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, o.ID, userID, o.Subtotal, o.ShippingCost, o.Total, o.Address,
		o.PaymentMethod, o.ShippingMethod, o.CreatedAt.UTC().Format(time.RFC3339)); err != nil {
		return err
	}

	for _, l := range o.Lines {
		if _, err := tx.ExecContext(ctx, `
		  INSERT INTO order_items(order_id, product_id, name, price, quantity)
		  VALUES(?, ?, ?, ?, ?)
		`, o.ID, l.ProductID, l.Name, l.Price, l.Quantity); err != nil {
			return err
		}
	}

	if len(clearProductIDs) > 0 {
		query, args, err := sqlx.In(`
		  DELETE FROM cart_items WHERE user_id = ? AND product_id IN (?)
		`, userID, clearProductIDs)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, r.db.Rebind(query), args...); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ListByUser returns the user's orders, newest first, with line snapshots.
func (r *OrderRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	var rows []orderRow
	if err := r.db.SelectContext(ctx, &rows, `
	  SELECT id, subtotal, shipping_cost, total, address, payment_method, shipping_method, created_at
	  FROM orders
	  WHERE user_id = ?
	  ORDER BY created_at DESC
	`, userID); err != nil {
		return nil, err
	}

	out := make([]domain.Order, 0, len(rows))
	for _, row := range rows {
		created, _ := time.Parse(time.RFC3339, row.CreatedAt)
		var lines []domain.OrderLine
		if err := r.db.SelectContext(ctx, &lines, `
		  SELECT product_id, name, price, quantity
		  FROM order_items
		  WHERE order_id = ?
		  ORDER BY name
		`, row.ID); err != nil {
			return nil, err
		}
		out = append(out, domain.Order{
			ID:             row.ID,
			Lines:          lines,
			Subtotal:       row.Subtotal,
			ShippingCost:   row.ShippingCost,
			Total:          row.Total,
			Address:        row.Address,
			PaymentMethod:  row.PaymentMethod,
			ShippingMethod: row.ShippingMethod,
			CreatedAt:      created,
		})
	}
	return out, nil
}
