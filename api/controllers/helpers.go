package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/angelmondragon/partnerhub-backend/api/middleware"
	pkgerrors "github.com/angelmondragon/partnerhub-backend/pkg/errors"
)

func actorID(r *http.Request) *string {
	id := middleware.UserIDFromContext(r.Context())
	if id == "" {
		return nil
	}
	return &id
}

func partnerID(r *http.Request) (uuid.UUID, error) {
	id, ok := middleware.PartnerUUIDFromContext(r.Context())
	if !ok {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeForbidden, "partner context missing")
	}
	return id, nil
}

func validationErr(err error, msg string) error {
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, msg)
}
