package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dellmdq/OT109-Server/config"
	"github.com/dellmdq/OT109-Server/internal/types"
)

// Token validation failures. All wrap types.ErrUnauthenticated so handlers
// can map them to 401 without inspecting the concrete cause.
var (
	ErrTokenExpired   = fmt.Errorf("%w: token has expired", types.ErrUnauthenticated)
	ErrTokenMalformed = fmt.Errorf("%w: malformed token", types.ErrUnauthenticated)
	ErrTokenSignature = fmt.Errorf("%w: invalid token signature", types.ErrUnauthenticated)
)

// Claims carried by an access token. The subject is the principal's email;
// nothing else is encoded, the principal is resolved from storage on every
// request.
type Claims struct {
	jwt.RegisteredClaims
}

// TokenService issues and validates signed, time-bounded identity tokens.
// All fields are set once at startup and never mutated, so a single instance
// is safe for unsynchronized concurrent use.
type TokenService struct {
	secretKey []byte
	ttl       time.Duration
	issuer    string
}

// NewTokenService builds a TokenService from the JWT config section.
func NewTokenService(cfg config.JWTConfig) (*TokenService, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("jwt secret key is not configured")
	}
	return &TokenService{
		secretKey: []byte(cfg.SecretKey),
		ttl:       cfg.TokenTTL,
		issuer:    cfg.Issuer,
	}, nil
}

// Issue produces a signed HS256 token for the given principal email with
// issued-at now and expiry now+TTL.
func (s *TokenService) Issue(email string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Validate verifies signature and expiry and returns the claims. Failures
// come back as ErrTokenExpired, ErrTokenSignature or ErrTokenMalformed.
func (s *TokenService) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrTokenSignature
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrTokenMalformed
		default:
			return nil, ErrTokenMalformed
		}
	}
	if !token.Valid {
		return nil, ErrTokenMalformed
	}

	if s.issuer != "" && claims.Issuer != s.issuer {
		return nil, ErrTokenSignature
	}
	if claims.Subject == "" {
		return nil, ErrTokenMalformed
	}

	return claims, nil
}
