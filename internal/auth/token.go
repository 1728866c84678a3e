package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// ErrInvalidToken is the single outcome for any rejected token: malformed,
// bad signature, expired, or unparsable. Callers never learn which.
var ErrInvalidToken = errors.New("invalid token")

// DefaultAccessTokenTTL applies when no TTL is configured.
const DefaultAccessTokenTTL = 30 * time.Minute

// TokenManager issues and validates signed bearer tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	logger *zap.Logger
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, ttl time.Duration, logger *zap.Logger) *TokenManager {
	if ttl <= 0 {
		ttl = DefaultAccessTokenTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, logger: logger}
}

// Claims is the token payload: subject carries the username.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// Issue builds and signs a token for the given identity, expiring after the
// configured TTL.
func (tm *TokenManager) Issue(username, userID string) (string, time.Time, error) {
	return tm.IssueWithTTL(username, userID, tm.ttl)
}

// IssueWithTTL signs a token with an explicit lifetime.
func (tm *TokenManager) IssueWithTTL(username, userID string, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Validate checks signature and expiry and returns the embedded claims.
// Expiry is compared against the current clock with no leeway. Every failure
// collapses to ErrInvalidToken; the distinct reason is only logged.
func (tm *TokenManager) Validate(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		tm.logger.Debug("token rejected", zap.Error(err))
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		tm.logger.Debug("token rejected", zap.String("reason", "claims not valid"))
		return nil, ErrInvalidToken
	}
	return claims, nil
}
