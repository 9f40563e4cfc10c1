package repos

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"tokokita/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

func (r *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.SelectContext(ctx, &out, `
	  SELECT id, name, price, image, description, category, stock
	  FROM products
	  ORDER BY created_at DESC
	`)
	return out, err
}

func (r *ProductRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.GetContext(ctx, &p, `
	  SELECT id, name, price, image, description, category, stock
	  FROM products WHERE id = ?
	`, id)
	return p, err
}

func (r *ProductRepo) GetByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(`
	  SELECT id, name, price, image, description, category, stock
	  FROM products WHERE id IN (?)
	`, ids)
	if err != nil {
		return nil, err
	}
	var out []domain.Product
	err = r.db.SelectContext(ctx, &out, r.db.Rebind(query), args...)
	return out, err
}

// Categories lists the distinct category labels currently in the catalog.
func (r *ProductRepo) Categories(ctx context.Context) ([]string, error) {
	var out []string
	err := r.db.SelectContext(ctx, &out, `
	  SELECT DISTINCT category FROM products ORDER BY category
	`)
	return out, err
}

func (r *ProductRepo) Insert(ctx context.Context, p domain.Product) error {
	_, err := r.db.ExecContext(ctx, `
	  INSERT INTO products(id, name, price, image, description, category, stock, created_at)
	  VALUES(?, ?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.Name, p.Price, p.Image, p.Description, p.Category, p.Stock,
		time.Now().UTC().Format(time.RFC3339))
	return err
}

func (r *ProductRepo) Update(ctx context.Context, p domain.Product) error {
	_, err := r.db.ExecContext(ctx, `
	  UPDATE products
	  SET name=?, price=?, image=?, description=?, category=?, stock=?, updated_at=?
	  WHERE id=?
	`, p.Name, p.Price, p.Image, p.Description, p.Category, p.Stock,
		time.Now().UTC().Format(time.RFC3339), p.ID)
	return err
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	return err
}
