package controllers

import (
	"net/http"

	"github.com/aquasur/aquasur-backend/api/responses"
	"github.com/aquasur/aquasur-backend/api/validators"
	"github.com/aquasur/aquasur-backend/internal/auth"
	"github.com/aquasur/aquasur-backend/pkg/logger"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// AdminAuthLogin authenticates a back-office account and returns a bearer token.
func AdminAuthLogin(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body loginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), body.Email, body.Password)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, loginView{
			Token:     result.Token,
			ExpiresAt: result.ExpiresAt,
			AdminID:   result.Admin.ID.String(),
			Email:     result.Admin.Email,
			Name:      result.Admin.Name,
		})
	}
}
