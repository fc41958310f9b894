package domain

type Role string

const (
	RoleCustomer Role = "customer"
	RoleWorker   Role = "worker"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleWorker, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID    string `db:"id" json:"id"`
	Name  string `db:"name" json:"name"`
	Email string `db:"email" json:"email"`
	Hash  string `db:"password_hash" json:"-"`
	Phone string `db:"phone" json:"phone"`
	Role  Role   `db:"role" json:"role"`
}

// UserSummary is the admin directory row.
type UserSummary struct {
	ID    string `db:"id" json:"id"`
	Name  string `db:"name" json:"name"`
	Email string `db:"email" json:"email"`
	Role  Role   `db:"role" json:"role"`
}
