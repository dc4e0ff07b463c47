package store

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
)

// The store surfaces a closed set of error kinds so handlers can map them
// to HTTP statuses without inspecting driver codes themselves.
var (
	ErrNotFound       = errors.New("store: not found")
	ErrDuplicateEmail = errors.New("store: email already in use")
	ErrPatientRef     = errors.New("store: invalid patient reference")
	ErrServiceRef     = errors.New("store: invalid service reference")
)

type Store struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

const (
	uniqueViolation = "23505"
	fkViolation     = "23503"
	invalidText     = "22P02"
)

// translate maps Postgres constraint violations onto the store's error set.
// Which foreign key fired tells us whether the patient or the service
// reference was at fault.
func translate(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case uniqueViolation:
		return ErrDuplicateEmail
	case fkViolation:
		if strings.Contains(pgErr.ConstraintName, "patient") {
			return ErrPatientRef
		}
		return ErrServiceRef
	case invalidText:
		// a malformed uuid in a lookup is just "no such row"
		return ErrNotFound
	}
	return err
}
