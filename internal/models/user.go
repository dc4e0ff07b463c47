package models

import "time"

// Roles known to the system. The column is plain text, so new roles don't
// need a migration.
const (
	RoleAdmin      = "admin"
	RoleDoctor     = "doctor"
	RoleSecretaria = "secretaria"
	RolePatient    = "patient"
)

type User struct {
	ID        string    `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	Password  string    `db:"password_hash" json:"-"`
	FirstName *string   `db:"first_name" json:"firstName"`
	LastName  *string   `db:"last_name" json:"lastName"`
	Role      string    `db:"role" json:"role"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
