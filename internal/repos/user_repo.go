package repos

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"tokokita/internal/domain"
)

var (
	ErrBadCreds   = errors.New("invalid email or password")
	ErrEmailTaken = errors.New("email already registered")
	ErrNoSession  = errors.New("no bound session")
)

// UserRepo is the gateway's authentication subsystem: credential
// exchange plus session binding via the sid cookie value.
type UserRepo struct{ db *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) SignIn(ctx context.Context, email, password, sid string) (*domain.User, error) {
	var u domain.User
	err := r.db.GetContext(ctx, &u, `
	  SELECT id, email, password_hash FROM users WHERE LOWER(email)=LOWER(?)
	`, strings.TrimSpace(email))
	if err != nil {
		return nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	if _, err := r.db.ExecContext(ctx, `
	  INSERT INTO sessions(id, user_id, last_seen) VALUES(?, ?, CURRENT_TIMESTAMP)
	  ON CONFLICT(id) DO UPDATE SET user_id = excluded.user_id, last_seen = CURRENT_TIMESTAMP
	`, sid, u.ID); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) SignUp(ctx context.Context, email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return err
	}
	id := uuid.NewString()
	res, err := r.db.ExecContext(ctx, `
	  INSERT INTO users(id, email, password_hash) VALUES(?, ?, ?)
	  ON CONFLICT(email) DO NOTHING
	`, id, strings.TrimSpace(email), string(hash))
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrEmailTaken
	}
	_, err = r.db.ExecContext(ctx, `
	  INSERT INTO profiles(id, role) VALUES(?, 'user') ON CONFLICT(id) DO NOTHING
	`, id)
	return err
}

func (r *UserRepo) SignOut(ctx context.Context, sid string) error {
	_, err := r.db.ExecContext(ctx, `
	  UPDATE sessions SET user_id = NULL, last_seen = CURRENT_TIMESTAMP WHERE id = ?
	`, sid)
	return err
}

// SessionUser resolves the sid cookie to its bound user, if any.
func (r *UserRepo) SessionUser(ctx context.Context, sid string) (*domain.User, error) {
	var u domain.User
	err := r.db.GetContext(ctx, &u, `
	  SELECT u.id, u.email, u.password_hash
	  FROM sessions s
	  JOIN users u ON u.id = s.user_id
	  WHERE s.id = ?
	`, sid)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
