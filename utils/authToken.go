package utils

import (
	"errors"
	"fmt"
	"time"

	"CluCare/models"

	"github.com/o1egl/paseto"
)

// AccessTokenExpiry bounds a session; downstream requests verify the token
// without a database round trip for the claims themselves.
const AccessTokenExpiry = 8 * time.Hour

// DoctorClaims carries the staff-specific token fields.
type DoctorClaims struct {
	Specialization string `json:"specialization"`
	Department     string `json:"department"`
	Qualifications string `json:"qualifications"`
}

// PatientClaims carries the patient-specific token fields.
type PatientClaims struct {
	PatientID        string           `json:"patientId"`
	Age              int              `json:"age"`
	Gender           string           `json:"gender"`
	MedicalSpecialty string           `json:"medicalSpecialty"`
	Type             string           `json:"type"`
	Contact          models.Contact   `json:"contact"`
	Insurance        models.Insurance `json:"insurance"`
	WardNumber       int              `json:"wardNumber"`
	BedNumber        int              `json:"bedNumber"`
}

// TokenClaims is the payload of a session token.
type TokenClaims struct {
	UserID  string         `json:"id"`
	Email   string         `json:"email"`
	Role    string         `json:"role"`
	Name    string         `json:"name"`
	Expiry  time.Time      `json:"expiry"`
	Doctor  *DoctorClaims  `json:"doctor,omitempty"`
	Patient *PatientClaims `json:"patient,omitempty"`
}

// TokenIssuer encrypts and decrypts session tokens with a symmetric key.
type TokenIssuer struct {
	key []byte
}

// NewTokenIssuer validates the symmetric key length (32 bytes for PASETO v2).
func NewTokenIssuer(key string) (*TokenIssuer, error) {
	if len(key) != 32 {
		return nil, fmt.Errorf("symmetric key must be 32 bytes long, got %d", len(key))
	}
	return &TokenIssuer{key: []byte(key)}, nil
}

// Generate issues a session token for the given claims, stamping the expiry.
func (t *TokenIssuer) Generate(claims TokenClaims) (string, error) {
	claims.Expiry = time.Now().Add(AccessTokenExpiry)
	token, err := paseto.NewV2().Encrypt(t.key, claims, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

// Validate decrypts a token and checks its expiry.
func (t *TokenIssuer) Validate(tokenString string) (*TokenClaims, error) {
	var claims TokenClaims
	if err := paseto.NewV2().Decrypt(tokenString, t.key, &claims, nil); err != nil {
		return nil, fmt.Errorf("failed to decrypt token: %w", err)
	}
	if time.Now().After(claims.Expiry) {
		return nil, errors.New("token expired")
	}
	return &claims, nil
}
