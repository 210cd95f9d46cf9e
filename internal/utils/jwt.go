package utils // package utils provides helpers for session token creation

import (
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// SessionToken is a signed HS256 JWT proving a successful login, paired
// with its expiration time. Token issuance is stateless: nothing is
// stored server side, the signature alone authenticates later requests.
type SessionToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// NewSessionToken builds and signs an HS256 JWT for a user. It takes the
// signing secret, the user ID, the user's email and a TTL in minutes.
// The JWT carries the subject (sub), email, expiration (exp) and issued
// at (iat) claims.
func NewSessionToken(secret string, userID uint64, email string, ttlMin int) (SessionToken, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"exp":   exp.Unix(),
		"iat":   now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return SessionToken{}, err
	}
	return SessionToken{Token: signed, Exp: exp}, nil
}
