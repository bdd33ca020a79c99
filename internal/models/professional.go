package models

// Professional is a service provider. Rating is a running average updated on
// every rated closure; the three request-id sets live in the
// professional_requests table and are loaded on demand.
type Professional struct {
	ID          int     `json:"id"`
	Username    string  `json:"username"`
	Password    string  `json:"-"`
	Expertise   string  `json:"expertise"`
	Rating      float64 `json:"rating"`
	NumReviews  int     `json:"num_reviews"`
	Location    string  `json:"location"`
	PinCode     string  `json:"pin_code"`
	IsApproved  bool    `json:"is_approved"`
	PhoneNumber string  `json:"phone_number"`
	Email       string  `json:"email"`
	Address     string  `json:"address"`
}

// Membership kinds in professional_requests.
const (
	RequestSetRejected  = "rejected"
	RequestSetAccepted  = "accepted"
	RequestSetCompleted = "completed"
)

type ProfessionalRequestCounts struct {
	Pending    int `json:"pending"`
	Accepted   int `json:"accepted"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
	Rejected   int `json:"rejected"`
}
