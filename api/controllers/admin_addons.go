package controllers

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/aquasur/aquasur-backend/api/responses"
	"github.com/aquasur/aquasur-backend/api/validators"
	"github.com/aquasur/aquasur-backend/internal/addons"
	"github.com/aquasur/aquasur-backend/pkg/enums"
	"github.com/aquasur/aquasur-backend/pkg/errors"
	"github.com/aquasur/aquasur-backend/pkg/logger"
)

type addonRequest struct {
	Kind     string  `json:"kind" validate:"required,oneof=equipment accessory"`
	Name     string  `json:"name" validate:"required,min=2,max=120"`
	Price    string  `json:"price" validate:"required"`
	Required bool    `json:"required"`
	Image    *string `json:"image" validate:"omitempty,url"`
	IsActive bool    `json:"is_active"`
}

func (b addonRequest) toInput() (addons.Input, error) {
	kind, err := enums.ParseAddonKind(b.Kind)
	if err != nil {
		return addons.Input{}, errors.New(errors.CodeValidation, "invalid addon kind")
	}
	price, err := decimal.NewFromString(strings.TrimSpace(b.Price))
	if err != nil {
		return addons.Input{}, errors.New(errors.CodeValidation, "invalid price")
	}
	return addons.Input{
		Kind:     kind,
		Name:     b.Name,
		Price:    price,
		Required: b.Required,
		Image:    b.Image,
		IsActive: b.IsActive,
	}, nil
}

// AdminListAddons lists equipments and accessories, optionally by kind.
func AdminListAddons(svc addons.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var kind *enums.AddonKind
		if raw := strings.TrimSpace(r.URL.Query().Get("kind")); raw != "" {
			parsed, err := enums.ParseAddonKind(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, errors.New(errors.CodeValidation, "invalid addon kind"))
				return
			}
			kind = &parsed
		}

		list, err := svc.List(r.Context(), kind, true)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toAddonViews(list))
	}
}

// AdminCreateAddon handles POST /addons.
func AdminCreateAddon(svc addons.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body addonRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := body.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		addon, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, toAddonView(*addon))
	}
}

// AdminUpdateAddon handles PUT /addons/{addonId}.
func AdminUpdateAddon(svc addons.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "addonId", "addon id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body addonRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := body.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		addon, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toAddonView(*addon))
	}
}

// AdminDeleteAddon handles DELETE /addons/{addonId}.
func AdminDeleteAddon(svc addons.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "addonId", "addon id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
