package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/angelmondragon/partnerhub-backend/pkg/enums"
)

// IdentityPayload captures the data the identity provider puts in a token.
type IdentityPayload struct {
	Subject   string
	Email     string
	Role      enums.ActorRole
	PartnerID *uuid.UUID
}

// IdentityClaims is the typed JWT minted by the identity provider. Subject
// carries the provider's user id.
type IdentityClaims struct {
	Email     string          `json:"email,omitempty"`
	Role      enums.ActorRole `json:"role"`
	PartnerID *uuid.UUID      `json:"partner_id,omitempty"`
	jwt.RegisteredClaims
}
