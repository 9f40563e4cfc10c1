package repos

import (
	"context"

	"github.com/jmoiron/sqlx"

	"tokokita/internal/domain"
)

type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

type cartItemRow struct {
	ProductID string `db:"product_id"`
	Name      string `db:"name"`
	Price     int64  `db:"price"`
	Image     string `db:"image"`
	Quantity  int    `db:"quantity"`
}

func (r *CartRepo) ListByUser(ctx context.Context, userID string) ([]domain.CartLine, error) {
	var rows []cartItemRow
	if err := r.db.SelectContext(ctx, &rows, `
	  SELECT product_id, name, price, image, quantity
	  FROM cart_items
	  WHERE user_id = ?
	  ORDER BY created_at
	`, userID); err != nil {
		return nil, err
	}
	lines := make([]domain.CartLine, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, domain.CartLine{
			Product: domain.Product{
				ID:    row.ProductID,
				Name:  row.Name,
				Price: row.Price,
				Image: row.Image,
			},
			Quantity: row.Quantity,
		})
	}
	return lines, nil
}

// Upsert inserts a line or replaces its quantity when one already exists
// for the user+product key.
func (r *CartRepo) Upsert(ctx context.Context, userID string, line domain.CartLine) error {
	_, err := r.db.ExecContext(ctx, `
	  INSERT INTO cart_items(user_id, product_id, name, price, image, quantity, created_at)
	  VALUES(?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	  ON CONFLICT(user_id, product_id) DO UPDATE
	  SET quantity = excluded.quantity, updated_at = CURRENT_TIMESTAMP
	`, userID, line.Product.ID, line.Product.Name, line.Product.Price, line.Product.Image, line.Quantity)
	return err
}

func (r *CartRepo) SetQuantity(ctx context.Context, userID, productID string, qty int) error {
	_, err := r.db.ExecContext(ctx, `
	  UPDATE cart_items SET quantity = ?, updated_at = CURRENT_TIMESTAMP
	  WHERE user_id = ? AND product_id = ?
	`, qty, userID, productID)
	return err
}

func (r *CartRepo) Delete(ctx context.Context, userID, productID string) error {
	_, err := r.db.ExecContext(ctx, `
	  DELETE FROM cart_items WHERE user_id = ? AND product_id = ?
	`, userID, productID)
	return err
}
