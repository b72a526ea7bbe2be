package controllers

import (
	"net/http"
	"strings"

	"github.com/aquasur/aquasur-backend/api/responses"
	"github.com/aquasur/aquasur-backend/api/validators"
	"github.com/aquasur/aquasur-backend/internal/quotes"
	"github.com/aquasur/aquasur-backend/pkg/enums"
	"github.com/aquasur/aquasur-backend/pkg/errors"
	"github.com/aquasur/aquasur-backend/pkg/logger"
	"github.com/aquasur/aquasur-backend/pkg/pagination"
)

type quoteStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}

// AdminListQuotes lists submitted quotes, optionally narrowed by status.
func AdminListQuotes(svc quotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := quotes.ListInput{
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, parseErr := enums.ParseQuoteStatus(raw)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w, errors.New(errors.CodeValidation, "invalid quote status"))
				return
			}
			input.Status = &status
		}

		page, err := svc.List(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, quotePageView{
			Quotes:     toQuoteViews(page.Quotes),
			NextCursor: page.NextCursor,
		})
	}
}

// AdminGetQuote returns one quote with its line items.
func AdminGetQuote(svc quotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "quoteId", "quote id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		quote, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toQuoteView(*quote))
	}
}

// AdminUpdateQuoteStatus moves a pending quote to approved or rejected.
func AdminUpdateQuoteStatus(svc quotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "quoteId", "quote id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body quoteStatusRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseQuoteStatus(body.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, errors.New(errors.CodeValidation, "invalid quote status"))
			return
		}

		quote, err := svc.UpdateStatus(r.Context(), id, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toQuoteView(*quote))
	}
}
