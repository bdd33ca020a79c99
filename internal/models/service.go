package models

type Service struct {
	ID             int     `json:"id"`
	Name           string  `json:"name"`
	Price          float64 `json:"price"`
	TimeRequired   float64 `json:"time_required"`
	Description    string  `json:"description"`
	FieldOfService string  `json:"field_of_service"`
}
