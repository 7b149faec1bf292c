// Package identity derives a best-effort view of who the stored token says
// the user is. The payload is decoded without signature verification, so
// nothing here is a trust decision: the hint only picks defaults in the UI
// (which listing endpoint to query first), and the API independently
// authorizes every request it receives.
package identity

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims mirrors the payload fields the WorkSync API puts in its tokens.
// Unknown fields are ignored.
type Claims struct {
	Role     string `json:"role"`
	IsAdmin  bool   `json:"isAdmin"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	jwt.RegisteredClaims
}

const RoleAdmin = "admin"

var parser = jwt.NewParser()

// Decode extracts the claims from the token payload without verifying the
// signature. Callers that need a hard failure mode get the error; IsAdmin
// swallows it.
func Decode(token string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// IsAdmin reports whether the token claims an administrator role. It is a
// pure function of the token string and fails closed: an absent, malformed,
// or undecodable token is a regular user. Advisory only; never use this to
// gate access to anything.
func IsAdmin(token string) bool {
	if token == "" {
		return false
	}
	claims, err := Decode(token)
	if err != nil {
		return false
	}
	return claims.Role == RoleAdmin || claims.IsAdmin
}
