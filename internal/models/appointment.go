package models

import "time"

type Appointment struct {
	ID        string    `db:"id" json:"id"`
	PatientID string    `db:"patient_id" json:"patientId"`
	ServiceID string    `db:"service_id" json:"serviceId"`
	StartTime time.Time `db:"start_time" json:"startTime"`
	EndTime   time.Time `db:"end_time" json:"endTime"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// AppointmentDetail is an appointment joined with its patient and service,
// the shape every appointment response uses.
type AppointmentDetail struct {
	Appointment
	Patient Patient `json:"patient"`
	Service Service `json:"service"`
}
