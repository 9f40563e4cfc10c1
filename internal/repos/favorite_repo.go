package repos

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type FavoriteRepo struct{ db *sqlx.DB }

func NewFavoriteRepo(db *sqlx.DB) *FavoriteRepo { return &FavoriteRepo{db: db} }

func (r *FavoriteRepo) ListProductIDs(ctx context.Context, userID string) ([]string, error) {
	var out []string
	err := r.db.SelectContext(ctx, &out, `
	  SELECT product_id FROM favorites WHERE user_id = ? ORDER BY created_at
	`, userID)
	return out, err
}

func (r *FavoriteRepo) Insert(ctx context.Context, userID, productID string) error {
	_, err := r.db.ExecContext(ctx, `
	  INSERT INTO favorites(user_id, product_id, created_at)
	  VALUES(?, ?, CURRENT_TIMESTAMP)
	  ON CONFLICT(user_id, product_id) DO NOTHING
	`, userID, productID)
	return err
}

func (r *FavoriteRepo) Delete(ctx context.Context, userID, productID string) error {
	_, err := r.db.ExecContext(ctx, `
	  DELETE FROM favorites WHERE user_id = ? AND product_id = ?
	`, userID, productID)
	return err
}
