package models

import "time"

// Patient mirrors the clinic's historical schema, so the name columns keep
// their Spanish identifiers. Everything beyond the name pair is optional.
type Patient struct {
	ID              string     `db:"id" json:"id"`
	PrimerNombre    string     `db:"primer_nombre" json:"primerNombre"`
	Apellido        string     `db:"apellido" json:"apellido"`
	FechaNacimiento *time.Time `db:"fecha_nacimiento" json:"fechaNacimiento"`
	Genero          *string    `db:"genero" json:"genero"`
	Telefono        *string    `db:"telefono" json:"telefono"`
	Direccion       *string    `db:"direccion" json:"direccion"`
	HistorialMedico *string    `db:"historial_medico" json:"historialMedico"`
}
