package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"clinica-salud-api/internal/models"
)

const patientColumns = `id, primer_nombre, apellido, fecha_nacimiento, genero, telefono, direccion, historial_medico`

func (s *Store) CreatePatient(ctx context.Context, p *models.Patient) error {
	p.ID = uuid.NewString()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO patients (id, primer_nombre, apellido, fecha_nacimiento, genero, telefono, direccion, historial_medico)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, p.ID, p.PrimerNombre, p.Apellido, p.FechaNacimiento, p.Genero, p.Telefono, p.Direccion, p.HistorialMedico)
	return translate(err)
}

// ListPatients returns all patients, optionally filtered by a
// case-insensitive substring over either name column.
func (s *Store) ListPatients(ctx context.Context, search string) ([]models.Patient, error) {
	patients := []models.Patient{}

	if search == "" {
		err := s.db.SelectContext(ctx, &patients,
			`SELECT `+patientColumns+` FROM patients`)
		return patients, err
	}

	err := s.db.SelectContext(ctx, &patients, `
		SELECT `+patientColumns+`
		FROM patients
		WHERE primer_nombre ILIKE '%' || $1 || '%' OR apellido ILIKE '%' || $1 || '%'
	`, search)
	return patients, err
}

func (s *Store) PatientByID(ctx context.Context, id string) (*models.Patient, error) {
	var p models.Patient
	err := s.db.GetContext(ctx, &p,
		`SELECT `+patientColumns+` FROM patients WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

// FindOrCreatePatient resolves a patient by exact name pair, creating a bare
// record (names only) when none exists. First match wins; concurrent callers
// racing on the same pair can both insert, which is accepted behavior.
func (s *Store) FindOrCreatePatient(ctx context.Context, primerNombre, apellido string) (*models.Patient, error) {
	var p models.Patient
	err := s.db.GetContext(ctx, &p, `
		SELECT `+patientColumns+`
		FROM patients
		WHERE primer_nombre = $1 AND apellido = $2
		LIMIT 1
	`, primerNombre, apellido)
	if err == nil {
		return &p, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, translate(err)
	}

	p = models.Patient{PrimerNombre: primerNombre, Apellido: apellido}
	if err := s.CreatePatient(ctx, &p); err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

type PatientUpdate struct {
	PrimerNombre    *string
	Apellido        *string
	FechaNacimiento *time.Time
	Genero          *string
	Telefono        *string
	Direccion       *string
	HistorialMedico *string
}

func (s *Store) UpdatePatient(ctx context.Context, id string, in PatientUpdate) (*models.Patient, error) {
	p, err := s.PatientByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}

	if in.PrimerNombre != nil {
		p.PrimerNombre = *in.PrimerNombre
	}
	if in.Apellido != nil {
		p.Apellido = *in.Apellido
	}
	if in.FechaNacimiento != nil {
		p.FechaNacimiento = in.FechaNacimiento
	}
	if in.Genero != nil {
		p.Genero = in.Genero
	}
	if in.Telefono != nil {
		p.Telefono = in.Telefono
	}
	if in.Direccion != nil {
		p.Direccion = in.Direccion
	}
	if in.HistorialMedico != nil {
		p.HistorialMedico = in.HistorialMedico
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE patients
		SET primer_nombre = $1, apellido = $2, fecha_nacimiento = $3, genero = $4,
		    telefono = $5, direccion = $6, historial_medico = $7
		WHERE id = $8
	`, p.PrimerNombre, p.Apellido, p.FechaNacimiento, p.Genero, p.Telefono, p.Direccion, p.HistorialMedico, id)
	if err != nil {
		return nil, translate(err)
	}
	return p, nil
}

func (s *Store) DeletePatient(ctx context.Context, id string) (*models.Patient, error) {
	var p models.Patient
	err := s.db.QueryRowxContext(ctx,
		`DELETE FROM patients WHERE id = $1 RETURNING `+patientColumns, id,
	).StructScan(&p)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}
