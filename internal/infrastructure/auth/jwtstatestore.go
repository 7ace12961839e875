package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pulse-inc/pulse/internal/domain/integration"
	"github.com/pulse-inc/pulse/internal/shared/biztime"
)

const stateIssuer = "pulse-oauth-state"

type stateClaims struct {
	Provider    string `json:"provider"`
	RedirectURI string `json:"redirect_uri,omitempty"`
	jwt.RegisteredClaims
}

// JWTStateStore issues self-contained signed states. It needs no shared
// storage, so a state stays valid until it expires rather than being
// consumed on first use.
type JWTStateStore struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTStateStore(secret string, ttl time.Duration) *JWTStateStore {
	return &JWTStateStore{
		secret: []byte(secret),
		ttl:    ttl,
		now:    biztime.NowUTC,
	}
}

func (s *JWTStateStore) Issue(_ context.Context, info integration.StateInfo) (string, error) {
	nonce, err := GenerateState()
	if err != nil {
		return "", err
	}

	now := s.now()
	claims := &stateClaims{
		Provider:    info.Provider,
		RedirectURI: info.RedirectURI,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        nonce,
			Issuer:    stateIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign state: %w", err)
	}
	return signed, nil
}

func (s *JWTStateStore) Verify(_ context.Context, state string) (*integration.StateInfo, error) {
	if state == "" {
		return nil, errors.New("state cannot be empty")
	}

	token, err := jwt.ParseWithClaims(state, &stateClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(stateIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse state: %w", err)
	}

	claims, ok := token.Claims.(*stateClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid state")
	}

	info := &integration.StateInfo{
		Provider:    claims.Provider,
		RedirectURI: claims.RedirectURI,
	}
	if claims.IssuedAt != nil {
		info.CreatedAt = claims.IssuedAt.Time.UTC()
	}
	return info, nil
}
