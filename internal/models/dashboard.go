package models

type AdminDashboard struct {
	TotalServices           int `json:"total_services"`
	ActiveCustomers         int `json:"active_customers"`
	BlockedCustomers        int `json:"blocked_customers"`
	ApprovedProfessionals   int `json:"approved_professionals"`
	UnapprovedProfessionals int `json:"unapproved_professionals"`
}

type CustomerDashboard struct {
	Customer Customer              `json:"customer"`
	Counts   CustomerRequestCounts `json:"request_counts"`
}

type ProfessionalDashboard struct {
	Professional Professional              `json:"professional"`
	Counts       ProfessionalRequestCounts `json:"request_counts"`
}
