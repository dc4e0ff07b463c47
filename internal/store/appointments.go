package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"clinica-salud-api/internal/models"
)

// detailQuery loads an appointment joined with its patient and service.
// The dotted aliases let sqlx scan straight into AppointmentDetail.
const detailQuery = `
	SELECT a.id, a.patient_id, a.service_id, a.start_time, a.end_time, a.status,
	       a.created_at, a.updated_at,
	       p.id AS "patient.id",
	       p.primer_nombre AS "patient.primer_nombre",
	       p.apellido AS "patient.apellido",
	       p.fecha_nacimiento AS "patient.fecha_nacimiento",
	       p.genero AS "patient.genero",
	       p.telefono AS "patient.telefono",
	       p.direccion AS "patient.direccion",
	       p.historial_medico AS "patient.historial_medico",
	       s.id AS "service.id",
	       s.name AS "service.name",
	       s.description AS "service.description",
	       s.duration AS "service.duration",
	       s.price AS "service.price"
	FROM appointments a
	JOIN patients p ON p.id = a.patient_id
	JOIN services s ON s.id = a.service_id
`

func (s *Store) CreateAppointment(ctx context.Context, a *models.Appointment) error {
	a.ID = uuid.NewString()
	err := s.db.QueryRowxContext(ctx, `
		INSERT INTO appointments (id, patient_id, service_id, start_time, end_time, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`, a.ID, a.PatientID, a.ServiceID, a.StartTime, a.EndTime, a.Status).
		Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return translate(err)
	}
	return nil
}

func (s *Store) AppointmentByID(ctx context.Context, id string) (*models.Appointment, error) {
	var a models.Appointment
	err := s.db.GetContext(ctx, &a, `
		SELECT id, patient_id, service_id, start_time, end_time, status, created_at, updated_at
		FROM appointments WHERE id = $1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (s *Store) AppointmentDetail(ctx context.Context, id string) (*models.AppointmentDetail, error) {
	var d models.AppointmentDetail
	err := s.db.GetContext(ctx, &d, detailQuery+` WHERE a.id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, translate(err)
	}
	return &d, nil
}

// ListAppointments returns every appointment with patient and service
// embedded, ordered by start time ascending. The ordering is the one
// guarantee callers rely on.
func (s *Store) ListAppointments(ctx context.Context) ([]models.AppointmentDetail, error) {
	details := []models.AppointmentDetail{}
	err := s.db.SelectContext(ctx, &details, detailQuery+` ORDER BY a.start_time ASC`)
	return details, err
}

func (s *Store) UpdateAppointment(ctx context.Context, a *models.Appointment) error {
	err := s.db.QueryRowxContext(ctx, `
		UPDATE appointments
		SET patient_id = $1, service_id = $2, start_time = $3, end_time = $4,
		    status = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING updated_at
	`, a.PatientID, a.ServiceID, a.StartTime, a.EndTime, a.Status, a.ID).
		Scan(&a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return translate(err)
	}
	return nil
}

func (s *Store) DeleteAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	var a models.Appointment
	err := s.db.QueryRowxContext(ctx, `
		DELETE FROM appointments WHERE id = $1
		RETURNING id, patient_id, service_id, start_time, end_time, status, created_at, updated_at
	`, id).StructScan(&a)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, translate(err)
	}
	return &a, nil
}
