package controllers

import (
	"net/http"

	"github.com/aquasur/aquasur-backend/api/responses"
	"github.com/aquasur/aquasur-backend/api/validators"
	"github.com/aquasur/aquasur-backend/internal/quotes"
	"github.com/aquasur/aquasur-backend/pkg/logger"
)

type submitQuoteRequest struct {
	CustomerName  string  `json:"customer_name" validate:"required,min=2,max=120"`
	CustomerEmail string  `json:"customer_email" validate:"required,email"`
	CustomerPhone string  `json:"customer_phone" validate:"required,phone"`
	Address       *string `json:"address" validate:"omitempty,max=240"`
	Notes         *string `json:"notes" validate:"omitempty,max=2000"`
}

// SubmitQuote turns the current cart snapshot into a persisted quote and
// returns the WhatsApp handoff.
func SubmitQuote(svc quotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body submitQuoteRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Submit(r.Context(), quotes.SubmitInput{
			CartToken:     cartToken(r),
			CustomerName:  body.CustomerName,
			CustomerEmail: body.CustomerEmail,
			CustomerPhone: body.CustomerPhone,
			Address:       body.Address,
			Notes:         body.Notes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, submitQuoteView{
			Quote:       toQuoteView(*result.Quote),
			Message:     result.Message,
			WhatsAppURL: result.WhatsAppURL,
		})
	}
}
