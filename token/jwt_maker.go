package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const minSecretKeySize = 8

var ErrInvalidToken = errors.New("token is invalid")

// JWTMaker creates and verifies HS256 tokens. Verification tries an
// ordered list of signing keys so tokens issued under a retired key keep
// working until they expire: the primary key first, then any legacy keys.
type JWTMaker struct {
	signingKey string
	verifyKeys []string
}

// NewJWTMaker creates a maker signing with primaryKey and verifying
// against primaryKey plus the given legacy keys, in that order.
func NewJWTMaker(primaryKey string, legacyKeys ...string) (Maker, error) {
	if len(primaryKey) < minSecretKeySize {
		return nil, fmt.Errorf("invalid key size: must be at least %d characters", minSecretKeySize)
	}

	verifyKeys := []string{primaryKey}
	for _, key := range legacyKeys {
		if key != "" && key != primaryKey {
			verifyKeys = append(verifyKeys, key)
		}
	}

	return &JWTMaker{
		signingKey: primaryKey,
		verifyKeys: verifyKeys,
	}, nil
}

// CreateToken creates a new token for a specific user id and duration
func (maker *JWTMaker) CreateToken(userID string, duration time.Duration) (string, error) {
	payload, err := NewPayload(userID, duration)
	if err != nil {
		return "", fmt.Errorf("failed to create token payload: %w", err)
	}

	claims := jwt.MapClaims{
		"id":      payload.ID.String(),
		"user_id": payload.UserID,
		"iat":     payload.IssuedAt.Unix(),
		"exp":     payload.ExpiredAt.Unix(),
	}

	jwtToken := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token, err := jwtToken.SignedString([]byte(maker.signingKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return token, nil
}

// VerifyToken checks the token against each verification key in order and
// returns the payload from the first successful decode carrying a user_id
// claim.
func (maker *JWTMaker) VerifyToken(token string) (*Payload, error) {
	var lastErr error

	for _, key := range maker.verifyKeys {
		payload, err := maker.verifyWithKey(token, key)
		if err == nil {
			return payload, nil
		}
		// An expired error means the signature matched this key; trying
		// further keys would only mask the real failure.
		if errors.Is(err, ErrExpired) {
			return nil, ErrExpired
		}
		lastErr = err
	}

	if lastErr == nil {
		lastErr = ErrInvalidToken
	}
	return nil, fmt.Errorf("invalid token: %w", lastErr)
}

func (maker *JWTMaker) verifyWithKey(token, key string) (*Payload, error) {
	keyFunc := func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(key), nil
	}

	parsed, err := jwt.Parse(token, keyFunc)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return nil, errors.New("token is missing user_id claim")
	}

	payload := &Payload{UserID: userID}
	if id, ok := claims["id"].(string); ok {
		payload.ID, _ = uuid.Parse(id)
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		payload.IssuedAt = iat.Time
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		payload.ExpiredAt = exp.Time
	}

	return payload, nil
}
