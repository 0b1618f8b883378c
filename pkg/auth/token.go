package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL applies when Issue is called with a zero TTL.
const DefaultTokenTTL = 15 * time.Minute

// Tokens issues and verifies HS256-signed bearer tokens. Tokens are
// stateless: validity is purely a function of signature and expiry.
type Tokens struct {
	secret []byte
}

func NewTokens(secret []byte) *Tokens {
	return &Tokens{secret: secret}
}

// Issue signs a token binding the username as subject with an absolute
// expiry of now+ttl.
func (t *Tokens) Issue(username string, ttl time.Duration) (string, error) {
	if ttl == 0 {
		ttl = DefaultTokenTTL
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": username,
		"exp": time.Now().Add(ttl).Unix(),
	})
	return token.SignedString(t.secret)
}

// Verify returns the subject username for a valid token. Signature, shape,
// and expiry failures all collapse into ErrInvalidToken; whether the subject
// still exists is the caller's problem.
func (t *Tokens) Verify(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrInvalidKeyType
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	username, _ := claims["sub"].(string)
	if username == "" {
		return "", ErrInvalidToken
	}
	return username, nil
}
