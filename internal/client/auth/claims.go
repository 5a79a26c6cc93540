// Package auth derives the current principal from the bearer token issued by
// the FraudShield backend.
//
// The client never holds the signing secret, so tokens are parsed without
// signature verification; only the registered time claims are validated.
// Verification is the backend's job on every request.
package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrTokenDecode is returned for malformed or expired credentials.
var ErrTokenDecode = errors.New("token decode error")

// Role is the principal's role claim.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Claims mirrors the payload the backend signs on login.
type Claims struct {
	jwt.RegisteredClaims
	UserID json.Number `json:"user_id"`
	Role   Role        `json:"role"`
}

// Principal is the identity decoded from a credential.
type Principal struct {
	UserID string
	Role   Role
}

// IsAdmin reports whether p carries the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// Decoder turns tokens into principals.
type Decoder struct {
	parser    *jwt.Parser
	validator *jwt.Validator
}

// NewDecoder returns a Decoder that validates exp/nbf/iat against now.
// A nil now uses time.Now.
func NewDecoder(now func() time.Time) *Decoder {
	opts := []jwt.ParserOption{jwt.WithLeeway(5 * time.Second)}
	if now != nil {
		opts = append(opts, jwt.WithTimeFunc(now))
	}
	return &Decoder{
		parser:    jwt.NewParser(),
		validator: jwt.NewValidator(opts...),
	}
}

// Decode extracts the principal from tokenString. Any failure is reported as
// ErrTokenDecode wrapping the cause.
func (d *Decoder) Decode(tokenString string) (Principal, error) {
	if tokenString == "" {
		return Principal{}, fmt.Errorf("%w: empty token", ErrTokenDecode)
	}

	claims := &Claims{}
	if _, _, err := d.parser.ParseUnverified(tokenString, claims); err != nil {
		return Principal{}, fmt.Errorf("%w: %w", ErrTokenDecode, err)
	}
	if err := d.validator.Validate(claims); err != nil {
		return Principal{}, fmt.Errorf("%w: %w", ErrTokenDecode, err)
	}

	return Principal{UserID: claims.UserID.String(), Role: claims.Role}, nil
}
