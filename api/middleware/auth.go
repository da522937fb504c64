package middleware

import (
	"net/http"
	"strings"

	"github.com/angelmondragon/partnerhub-backend/api/responses"
	pkgauth "github.com/angelmondragon/partnerhub-backend/pkg/auth"
	"github.com/angelmondragon/partnerhub-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/partnerhub-backend/pkg/errors"
	"github.com/angelmondragon/partnerhub-backend/pkg/logger"
)

// Auth verifies the identity provider's bearer token and seeds the request
// context with subject, role and partner id.
func Auth(cfg config.AuthConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgauth.ParseIdentityToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			partnerID := ""
			if claims.PartnerID != nil {
				partnerID = claims.PartnerID.String()
			}
			ctx := WithIdentity(r.Context(), claims.Subject, string(claims.Role), partnerID)

			if logg != nil {
				ctx = logg.WithUserID(ctx, claims.Subject)
				ctx = logg.WithActorRole(ctx, string(claims.Role))
				if partnerID != "" {
					ctx = logg.WithPartnerID(ctx, partnerID)
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(header string) string {
	raw := strings.TrimSpace(header)
	if len(raw) > 7 && strings.EqualFold(raw[:7], "bearer ") {
		return strings.TrimSpace(raw[7:])
	}
	return ""
}
