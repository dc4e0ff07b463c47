package models

// Service is a bookable clinic service. Duration is whole minutes.
type Service struct {
	ID          string  `db:"id" json:"id"`
	Name        string  `db:"name" json:"name"`
	Description *string `db:"description" json:"description"`
	Duration    int     `db:"duration" json:"duration"`
	Price       float64 `db:"price" json:"price"`
}
