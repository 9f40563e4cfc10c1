package domain

type User struct {
	ID    string `db:"id"`
	Email string `db:"email"`
	Hash  string `db:"password_hash"`
}

type Profile struct {
	ID       string `db:"id" json:"id"`
	FullName string `db:"full_name" json:"full_name"`
	Address  string `db:"address" json:"address"`
	Role     string `db:"role" json:"role"` // admin | user
}

func (p Profile) IsAdmin() bool { return p.Role == "admin" }
