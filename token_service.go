package todoapp

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const refreshTokenBytes = 32

// TokenServiceImpl mints HS256 access tokens and the opaque refresh
// tokens that accompany them.
type TokenServiceImpl struct {
	signingKey     []byte
	accessTokenTTL time.Duration
	issuer         string
	audience       jwt.ClaimStrings
	logger         Logger
}

var _ TokenService = (*TokenServiceImpl)(nil)

func NewTokenService(signingKey []byte, accessTokenTTL time.Duration, issuer string, audience []string, logger Logger) *TokenServiceImpl {
	if logger == nil {
		logger = defLogger{}
	}
	return &TokenServiceImpl{
		signingKey:     signingKey,
		accessTokenTTL: accessTokenTTL,
		issuer:         issuer,
		audience:       jwt.ClaimStrings(audience),
		logger:         logger,
	}
}

// Generate signs an access token for the given identity.
func (s *TokenServiceImpl) Generate(identity Identity) (string, error) {
	now := time.Now()
	claims := &JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Audience:  s.audience,
			Subject:   identity.ID(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTokenTTL)),
		},
		UID:      identity.ID(),
		UserName: identity.Username(),
	}
	return s.SignClaims(claims)
}

// SignClaims signs pre-built claims. Exposed so tests can craft
// edge-case tokens.
func (s *TokenServiceImpl) SignClaims(claims *JWTClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("unable to sign claims: %w", err)
	}
	return signed, nil
}

// GenerateRefreshToken returns a new opaque refresh token: 32 random
// bytes, base64 encoded.
func (s *TokenServiceImpl) GenerateRefreshToken() (string, error) {
	buf := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("unable to read random bytes: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf), nil
}

// Validate parses and verifies an access token. The signing method has
// to be HMAC and the alg header has to spell HS256, compared
// case-insensitively, so RS256 and none are rejected before the key is
// ever handed out.
func (s *TokenServiceImpl) Validate(tokenString string) (AuthClaims, error) {
	claims := &JWTClaims{}

	opts := []jwt.ParserOption{}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}
	if len(s.audience) > 0 {
		opts = append(opts, jwt.WithAudience(s.audience[0]))
	}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		alg, _ := t.Header["alg"].(string)
		if !strings.EqualFold(alg, jwt.SigningMethodHS256.Alg()) {
			return nil, fmt.Errorf("unexpected signing algorithm: %v", t.Header["alg"])
		}
		return s.signingKey, nil
	}, opts...)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		s.logger.Debug("token validation failed: %v", err)
		return nil, ErrTokenMalformed
	}

	if !token.Valid {
		return nil, ErrTokenMalformed
	}

	return claims, nil
}
