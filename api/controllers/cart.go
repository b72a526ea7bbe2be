package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/aquasur/aquasur-backend/api/responses"
	"github.com/aquasur/aquasur-backend/api/validators"
	"github.com/aquasur/aquasur-backend/internal/cart"
	"github.com/aquasur/aquasur-backend/pkg/errors"
	"github.com/aquasur/aquasur-backend/pkg/logger"
)

// CartTokenHeader carries the opaque cart session token on every cart call.
const CartTokenHeader = "X-Cart-Token"

type cartAddonRequest struct {
	AddonID  string `json:"addon_id" validate:"required,uuid4"`
	Quantity int    `json:"quantity" validate:"omitempty,min=1"`
}

type cartAddRequest struct {
	ProductID string             `json:"product_id" validate:"required,uuid4"`
	Addons    []cartAddonRequest `json:"addons" validate:"omitempty,dive"`
}

type cartQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

func cartToken(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(CartTokenHeader))
}

func writeCart(w http.ResponseWriter, token string, c *cart.Cart) {
	w.Header().Set(CartTokenHeader, token)
	responses.WriteSuccess(w, toCartView(token, c))
}

// CartGet returns the current snapshot, minting a token for new sessions.
func CartGet(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, c, err := svc.Get(r.Context(), cartToken(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeCart(w, token, c)
	}
}

// CartAddItem adds a product with its addon selection.
func CartAddItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body cartAddRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := uuid.Parse(body.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, errors.New(errors.CodeValidation, "invalid product id"))
			return
		}

		input := cart.AddItemInput{ProductID: productID}
		for _, addon := range body.Addons {
			addonID, parseErr := uuid.Parse(addon.AddonID)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w, errors.New(errors.CodeValidation, "invalid addon id"))
				return
			}
			input.Addons = append(input.Addons, cart.AddonChoice{
				AddonID:  addonID,
				Quantity: addon.Quantity,
			})
		}

		token, c, err := svc.AddItem(r.Context(), cartToken(r), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeCart(w, token, c)
	}
}

// CartUpdateLine sets the quantity of one line.
func CartUpdateLine(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lineID, err := uuid.Parse(chi.URLParam(r, "lineId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, errors.New(errors.CodeValidation, "invalid line id"))
			return
		}

		var body cartQuantityRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		token := cartToken(r)
		c, err := svc.UpdateLine(r.Context(), token, lineID, body.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeCart(w, token, c)
	}
}

// CartRemoveLine drops one line from the snapshot.
func CartRemoveLine(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lineID, err := uuid.Parse(chi.URLParam(r, "lineId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, errors.New(errors.CodeValidation, "invalid line id"))
			return
		}

		token := cartToken(r)
		c, err := svc.RemoveLine(r.Context(), token, lineID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeCart(w, token, c)
	}
}

// CartClear drops the whole snapshot.
func CartClear(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Clear(r.Context(), cartToken(r)); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "cleared"})
	}
}
