package models

import "github.com/golang-jwt/jwt/v5"

// Principal identifies the authenticated caller. Tokens are issued by the
// identity service; this API only verifies them.
type Principal struct {
	UserID   string `json:"user_id"`
	Role     string `json:"role"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	jwt.RegisteredClaims
}
