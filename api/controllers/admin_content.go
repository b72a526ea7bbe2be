package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aquasur/aquasur-backend/api/responses"
	"github.com/aquasur/aquasur-backend/api/validators"
	"github.com/aquasur/aquasur-backend/internal/content"
	"github.com/aquasur/aquasur-backend/pkg/enums"
	"github.com/aquasur/aquasur-backend/pkg/errors"
	"github.com/aquasur/aquasur-backend/pkg/logger"
)

type contentEntryRequest struct {
	Key      string  `json:"key" validate:"required,min=2,max=80"`
	Title    *string `json:"title" validate:"omitempty,max=160"`
	BodyHTML string  `json:"body_html" validate:"required"`
	Image    *string `json:"image" validate:"omitempty,url"`
}

type settingRequest struct {
	Key   string `json:"key" validate:"required,min=2,max=80"`
	Type  string `json:"type" validate:"required,oneof=string number boolean json"`
	Value string `json:"value" validate:"required"`
}

// AdminListContent lists every editable content entry.
func AdminListContent(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := svc.ListEntries(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toContentEntryViews(entries))
	}
}

// AdminCreateContent handles POST /content.
func AdminCreateContent(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body contentEntryRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entry, err := svc.CreateEntry(r.Context(), content.EntryInput{
			Key:      body.Key,
			Title:    body.Title,
			BodyHTML: body.BodyHTML,
			Image:    body.Image,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, toContentEntryView(*entry))
	}
}

// AdminUpdateContent handles PUT /content/{entryId}.
func AdminUpdateContent(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "entryId", "content id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body contentEntryRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entry, err := svc.UpdateEntry(r.Context(), id, content.EntryInput{
			Key:      body.Key,
			Title:    body.Title,
			BodyHTML: body.BodyHTML,
			Image:    body.Image,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toContentEntryView(*entry))
	}
}

// AdminDeleteContent handles DELETE /content/{entryId}.
func AdminDeleteContent(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "entryId", "content id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteEntry(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// AdminListSettings lists every typed setting.
func AdminListSettings(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settings, err := svc.ListSettings(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toSettingViews(settings))
	}
}

// AdminPutSetting creates or replaces one setting.
func AdminPutSetting(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body settingRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		settingType, err := enums.ParseSettingType(body.Type)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, errors.New(errors.CodeValidation, "invalid setting type"))
			return
		}

		setting, err := svc.PutSetting(r.Context(), content.SettingInput{
			Key:   body.Key,
			Type:  settingType,
			Value: body.Value,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toSettingView(*setting))
	}
}

// AdminDeleteSetting handles DELETE /settings/{key}.
func AdminDeleteSetting(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteSetting(r.Context(), chi.URLParam(r, "key")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
