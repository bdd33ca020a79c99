package models

import (
	"github.com/golang-jwt/jwt"
)

// Claims is the JWT payload issued by the external auth service.
type Claims struct {
	UserID int    `json:"user_id"`
	Role   string `json:"role"`
	jwt.StandardClaims
}

const (
	RoleAdmin        = "admin"
	RoleCustomer     = "customer"
	RoleProfessional = "professional"
)
