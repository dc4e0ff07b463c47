package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"clinica-salud-api/internal/models"
)

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	u.ID = uuid.NewString()
	err := s.db.QueryRowxContext(ctx, `
		INSERT INTO users (id, email, password_hash, first_name, last_name, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`, u.ID, u.Email, u.Password, u.FirstName, u.LastName, u.Role).
		Scan(&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return translate(err)
	}
	return nil
}

func (s *Store) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.db.GetContext(ctx, &u, `
		SELECT id, email, password_hash, first_name, last_name, role, created_at, updated_at
		FROM users WHERE email = $1
	`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *Store) UserByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	err := s.db.GetContext(ctx, &u, `
		SELECT id, email, password_hash, first_name, last_name, role, created_at, updated_at
		FROM users WHERE id = $1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	err := s.db.SelectContext(ctx, &users, `
		SELECT id, email, password_hash, first_name, last_name, role, created_at, updated_at
		FROM users ORDER BY created_at
	`)
	return users, err
}

// UserUpdate carries the fields an admin may change. Nil means leave the
// stored value untouched.
type UserUpdate struct {
	Email     *string
	FirstName *string
	LastName  *string
	Role      *string
}

func (s *Store) UpdateUser(ctx context.Context, id string, in UserUpdate) (*models.User, error) {
	u, err := s.UserByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}

	if in.Email != nil {
		u.Email = *in.Email
	}
	if in.FirstName != nil {
		u.FirstName = in.FirstName
	}
	if in.LastName != nil {
		u.LastName = in.LastName
	}
	if in.Role != nil {
		u.Role = *in.Role
	}

	err = s.db.QueryRowxContext(ctx, `
		UPDATE users
		SET email = $1, first_name = $2, last_name = $3, role = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at
	`, u.Email, u.FirstName, u.LastName, u.Role, id).Scan(&u.UpdatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return u, nil
}

// DeleteUser removes the row and returns the removed snapshot.
func (s *Store) DeleteUser(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	err := s.db.QueryRowxContext(ctx,
		`DELETE FROM users WHERE id = $1 RETURNING id, email`, id,
	).Scan(&u.ID, &u.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, translate(err)
	}
	return &u, nil
}
