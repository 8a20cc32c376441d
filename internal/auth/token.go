package auth

import (
	"errors"
	"time"

	"github.com/go-chi/jwtauth"
	"github.com/lestrrat-go/jwx/jwt"

	"github.com/tendant/simple-cms/internal/domain"
)

const (
	claimUserID = "user_id"
	claimRole   = "role"

	// DefaultTokenTTL is the validity of an issued session token
	DefaultTokenTTL = time.Hour
)

// ErrInvalidToken indicates a token without a usable identity
var ErrInvalidToken = errors.New("invalid token")

// TokenIssuer signs and verifies HS256 session tokens carrying a Principal
type TokenIssuer struct {
	ja  *jwtauth.JWTAuth
	ttl time.Duration
}

// NewTokenIssuer creates an issuer signing with secret. A zero ttl selects DefaultTokenTTL.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if ttl == 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenIssuer{
		ja:  jwtauth.New("HS256", []byte(secret), nil),
		ttl: ttl,
	}
}

// JWTAuth exposes the underlying verifier for jwtauth middleware
func (t *TokenIssuer) JWTAuth() *jwtauth.JWTAuth {
	return t.ja
}

// Issue returns a signed token for p expiring after the configured ttl
func (t *TokenIssuer) Issue(p Principal) (string, error) {
	claims := map[string]interface{}{
		claimUserID: p.UserID,
		claimRole:   string(p.Role),
	}
	jwtauth.SetIssuedNow(claims)
	jwtauth.SetExpiryIn(claims, t.ttl)

	_, tokenString, err := t.ja.Encode(claims)
	if err != nil {
		return "", err
	}
	return tokenString, nil
}

// Parse verifies tokenString and returns the principal it carries
func (t *TokenIssuer) Parse(tokenString string) (Principal, error) {
	token, err := jwtauth.VerifyToken(t.ja, tokenString)
	if err != nil {
		return Principal{}, err
	}
	return PrincipalFromToken(token)
}

// PrincipalFromToken reads the identity claims of a verified token
func PrincipalFromToken(token jwt.Token) (Principal, error) {
	if token == nil {
		return Principal{}, ErrInvalidToken
	}
	claims := token.PrivateClaims()

	userID, _ := claims[claimUserID].(string)
	role, _ := claims[claimRole].(string)
	p := Principal{UserID: userID, Role: domain.Role(role)}
	if p.UserID == "" || !p.Role.IsValid() {
		return Principal{}, ErrInvalidToken
	}
	return p, nil
}
