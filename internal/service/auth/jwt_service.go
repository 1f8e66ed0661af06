package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// JWTService verifies the bearer tokens that the platform's identity
// service mints for students. This API only consumes tokens; GenerateToken
// exists so local tooling and tests can mint compatible ones.
type JWTService interface {
	// GenerateToken creates a signed JWT access token for the given student.
	GenerateToken(ctx context.Context, studentID uuid.UUID) (string, error)

	// ValidateToken validates the provided token string and extracts the
	// claims. Returns an error if validation fails (expired, invalid
	// signature, malformed token).
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims carries the verified identity extracted from a token.
type Claims struct {
	// StudentID is the unique identifier of the student the token was
	// issued for.
	StudentID uuid.UUID `json:"uid,omitempty"`

	// Standard registered JWT claims
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
