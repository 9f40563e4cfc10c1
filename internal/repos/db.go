package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed baseline catalog if DB is empty
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	// Ensure demo accounts exist (idempotent; safe to run every start)
	if err := seedUsers(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Users & Sessions
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- same value as the 'sid' cookie
  user_id TEXT NULL REFERENCES users(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);

-- Profiles
CREATE TABLE IF NOT EXISTS profiles(
  id TEXT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
  full_name TEXT NOT NULL DEFAULT '',
  address   TEXT NOT NULL DEFAULT '',
  role TEXT NOT NULL DEFAULT 'user' CHECK (role IN ('user','admin'))
);

-- Products (prices in the smallest currency unit)
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  price INTEGER NOT NULL CHECK (price >= 0),
  image TEXT NOT NULL DEFAULT '',
  description TEXT NOT NULL DEFAULT '',
  category TEXT NOT NULL DEFAULT 'General',
  stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);

-- Cart lines (one row per user+product; name/price/image copied at add)
CREATE TABLE IF NOT EXISTS cart_items(
  user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL,
  name  TEXT NOT NULL,
  price INTEGER NOT NULL,
  image TEXT NOT NULL DEFAULT '',
  quantity INTEGER NOT NULL CHECK (quantity >= 1),
  created_at TEXT,
  updated_at TEXT,
  PRIMARY KEY (user_id, product_id)
);

-- Favorites (set membership by product id)
CREATE TABLE IF NOT EXISTS favorites(
  user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL,
  created_at TEXT,
  PRIMARY KEY (user_id, product_id)
);

-- Orders (immutable once written)
CREATE TABLE IF NOT EXISTS orders(
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  subtotal INTEGER NOT NULL,
  shipping_cost INTEGER NOT NULL DEFAULT 0,
  total INTEGER NOT NULL,
  address TEXT NOT NULL,
  payment_method  TEXT NOT NULL,
  shipping_method TEXT NOT NULL,
  created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id);

CREATE TABLE IF NOT EXISTS order_items(
  order_id   TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL,
  name  TEXT NOT NULL,
  price INTEGER NOT NULL,
  quantity INTEGER NOT NULL,
  PRIMARY KEY (order_id, product_id)
);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM products`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo products")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO products(id,name,price,image,description,category,stock) VALUES
	  ('kopi-gayo','Kopi Gayo 250g',55000,'','Single-origin arabica from Aceh','Coffee',12),
	  ('kopi-toraja','Kopi Toraja 250g',62000,'','Earthy arabica from Sulawesi','Coffee',8),
	  ('batik-tulis','Batik Tulis Scarf',185000,'','Hand-drawn batik, indigo dye','Apparel',3),
	  ('rotan-bag','Rattan Handbag',98000,'','Woven round rattan bag','Apparel',0),
	  ('keramik-mug','Ceramic Mug',45000,'','Stoneware mug, 300ml','Home',20)`)
	return tx.Commit()
}

// seedUsers ensures one admin and one regular account exist (idempotent).
func seedUsers(db *sqlx.DB) error {
	type acct struct {
		ID, Email, Name, Role, Hash string
	}
	mk := func(id, email, name, role, raw string) acct {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return acct{ID: id, Email: email, Name: name, Role: role, Hash: string(h)}
	}

	accounts := []acct{
		mk("u-admin", "admin@tokokita.test", "Admin", "admin", "Passw0rd!"),
		mk("u-sari", "sari@tokokita.test", "Sari", "user", "Passw0rd!"),
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, a := range accounts {
		if _, err := tx.Exec(`
			INSERT INTO users(id,email,password_hash) VALUES(?,?,?)
			ON CONFLICT(email) DO NOTHING
		`, a.ID, a.Email, a.Hash); err != nil {
			return err
		}
		if _, err := tx.Exec(`
			INSERT INTO profiles(id,full_name,role) VALUES(?,?,?)
			ON CONFLICT(id) DO NOTHING
		`, a.ID, a.Name, a.Role); err != nil {
			return err
		}
	}

	return tx.Commit()
}
