package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// PartyKind tells which side of an application the token holder is on.
type PartyKind string

const (
	// KindJobSeeker applicant account
	KindJobSeeker PartyKind = "jobSeeker"
	// KindEmployer employer account
	KindEmployer PartyKind = "employer"
)

// Claims structure for custom claims in JWT
type Claims struct {
	PartyID     string    `json:"party_id"`
	Kind        PartyKind `json:"kind"`
	DisplayName string    `json:"display_name"`
	jwt.RegisteredClaims
}

// Secret Key for JWT signing and validation
var (
	JWTSecret       = []byte("secure_secret_key")
	tokenExpiration = 60 * time.Minute
)

// GenerateJWT generates a JWT token
func GenerateJWT(partyID string, kind PartyKind, displayName, issuer string) (string, error) {
	claims := Claims{
		PartyID:     partyID,
		Kind:        kind,
		DisplayName: displayName,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenExpiration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(JWTSecret)
}

// ParseJWT parses a JWT and extracts the Claims
func ParseJWT(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return JWTSecret, nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
