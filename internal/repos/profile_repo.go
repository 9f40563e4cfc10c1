package repos

import (
	"context"

	"github.com/jmoiron/sqlx"

	"tokokita/internal/domain"
)

type ProfileRepo struct{ db *sqlx.DB }

func NewProfileRepo(db *sqlx.DB) *ProfileRepo { return &ProfileRepo{db: db} }

func (r *ProfileRepo) Get(ctx context.Context, userID string) (domain.Profile, error) {
	var p domain.Profile
	err := r.db.GetContext(ctx, &p, `
	  SELECT id, full_name, address, role FROM profiles WHERE id = ?
	`, userID)
	return p, err
}

// Upsert writes name and address; the role column is never touched here,
// only seeding and operators set it.
func (r *ProfileRepo) Upsert(ctx context.Context, userID, fullName, address string) error {
	_, err := r.db.ExecContext(ctx, `
	  INSERT INTO profiles(id, full_name, address) VALUES(?, ?, ?)
	  ON CONFLICT(id) DO UPDATE SET full_name = excluded.full_name, address = excluded.address
	`, userID, fullName, address)
	return err
}
