package middleware

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/angelmondragon/partnerhub-backend/api/validators"
	pkgerrors "github.com/angelmondragon/partnerhub-backend/pkg/errors"
)

// bufferBody reads at most validators.MaxBodyBytes of the request and rewinds
// r.Body so the handler can decode it again.
func bufferBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, validators.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "request body too large")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read request body")
	}
	r.Body = io.NopCloser(bytes.NewReader(body))
	return body, nil
}
