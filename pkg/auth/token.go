package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/angelmondragon/partnerhub-backend/pkg/config"
	"github.com/angelmondragon/partnerhub-backend/pkg/enums"
)

var jwtSigningMethod = jwt.SigningMethodHS256

var (
	errSecretRequired  = errors.New("jwt secret is required")
	errPartnerRequired = errors.New("partner tokens must carry partner_id")
)

// MintIdentityToken signs a token the way the identity provider does. The API
// never issues tokens itself; this backs local tooling and tests.
func MintIdentityToken(cfg config.AuthConfig, now time.Time, ttl time.Duration, payload IdentityPayload) (string, error) {
	if cfg.JWTSecret == "" {
		return "", errSecretRequired
	}
	if ttl <= 0 {
		return "", fmt.Errorf("token ttl must be positive")
	}
	if strings.TrimSpace(payload.Subject) == "" {
		return "", fmt.Errorf("token subject is required")
	}
	if !payload.Role.IsValid() {
		return "", fmt.Errorf("invalid actor role %q", payload.Role)
	}

	claims := IdentityClaims{
		Email:     payload.Email,
		Role:      payload.Role,
		PartnerID: payload.PartnerID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   payload.Subject,
			Issuer:    cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwtSigningMethod, claims)
	signed, err := token.SignedString([]byte(cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("signing jwt: %w", err)
	}
	return signed, nil
}

// ParseIdentityToken verifies signature, issuer and expiry, then checks the
// role claims are coherent.
func ParseIdentityToken(cfg config.AuthConfig, tokenString string) (*IdentityClaims, error) {
	if cfg.JWTSecret == "" {
		return nil, errSecretRequired
	}

	claims := &IdentityClaims{}
	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if token.Method != jwtSigningMethod {
				return nil, fmt.Errorf("unexpected signing method %s", token.Header["alg"])
			}
			return []byte(cfg.JWTSecret), nil
		},
		jwt.WithValidMethods([]string{jwtSigningMethod.Alg()}),
		jwt.WithIssuer(cfg.Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(cfg.Leeway),
	)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(claims.Subject) == "" {
		return nil, fmt.Errorf("token subject is required")
	}
	if !claims.Role.IsValid() {
		return nil, fmt.Errorf("invalid actor role %q", claims.Role)
	}
	if claims.Role == enums.ActorRolePartner && (claims.PartnerID == nil || *claims.PartnerID == uuid.Nil) {
		return nil, errPartnerRequired
	}
	return claims, nil
}
