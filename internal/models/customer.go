package models

type Customer struct {
	ID          int    `json:"id"`
	Username    string `json:"username"`
	Password    string `json:"-"`
	IsBlocked   bool   `json:"is_blocked"`
	Location    string `json:"location"`
	PinCode     string `json:"pin_code"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
	Address     string `json:"address"`
}

// CustomerRequestCounts is the per-status breakdown shown on the customer dashboard.
type CustomerRequestCounts struct {
	Pending    int `json:"pending"`
	Accepted   int `json:"accepted"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
	Closed     int `json:"closed"`
}
