package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"clinica-salud-api/internal/models"
)

const serviceColumns = `id, name, description, duration, price`

func (s *Store) CreateService(ctx context.Context, svc *models.Service) error {
	svc.ID = uuid.NewString()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO services (id, name, description, duration, price)
		VALUES ($1, $2, $3, $4, $5)
	`, svc.ID, svc.Name, svc.Description, svc.Duration, svc.Price)
	return translate(err)
}

func (s *Store) ListServices(ctx context.Context) ([]models.Service, error) {
	services := []models.Service{}
	err := s.db.SelectContext(ctx, &services,
		`SELECT `+serviceColumns+` FROM services`)
	return services, err
}

func (s *Store) ServiceByID(ctx context.Context, id string) (*models.Service, error) {
	var svc models.Service
	err := s.db.GetContext(ctx, &svc,
		`SELECT `+serviceColumns+` FROM services WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, translate(err)
	}
	return &svc, nil
}

type ServiceUpdate struct {
	Name        *string
	Description *string
	Duration    *int
	Price       *float64
}

func (s *Store) UpdateService(ctx context.Context, id string, in ServiceUpdate) (*models.Service, error) {
	svc, err := s.ServiceByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}

	if in.Name != nil {
		svc.Name = *in.Name
	}
	if in.Description != nil {
		svc.Description = in.Description
	}
	if in.Duration != nil {
		svc.Duration = *in.Duration
	}
	if in.Price != nil {
		svc.Price = *in.Price
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE services
		SET name = $1, description = $2, duration = $3, price = $4
		WHERE id = $5
	`, svc.Name, svc.Description, svc.Duration, svc.Price, id)
	if err != nil {
		return nil, translate(err)
	}
	return svc, nil
}

// DeleteService fails with ErrServiceRef when appointments still reference
// the service; the FK has no cascade.
func (s *Store) DeleteService(ctx context.Context, id string) (*models.Service, error) {
	var svc models.Service
	err := s.db.QueryRowxContext(ctx,
		`DELETE FROM services WHERE id = $1 RETURNING `+serviceColumns, id,
	).StructScan(&svc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, translate(err)
	}
	return &svc, nil
}
