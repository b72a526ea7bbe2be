package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aquasur/aquasur-backend/api/responses"
	"github.com/aquasur/aquasur-backend/api/validators"
	"github.com/aquasur/aquasur-backend/internal/catalog"
	"github.com/aquasur/aquasur-backend/pkg/errors"
	"github.com/aquasur/aquasur-backend/pkg/logger"
	"github.com/aquasur/aquasur-backend/pkg/pagination"
)

type categoryRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=80"`
	Slug     string `json:"slug" validate:"omitempty,max=80"`
	Position int    `json:"position" validate:"omitempty,min=0"`
}

type productRequest struct {
	Name        string   `json:"name" validate:"required,min=2,max=160"`
	Description *string  `json:"description" validate:"omitempty,max=2000"`
	BodyHTML    *string  `json:"body_html"`
	Price       string   `json:"price" validate:"required"`
	SalePrice   *string  `json:"sale_price"`
	MainImage   *string  `json:"main_image" validate:"omitempty,url"`
	Gallery     []string `json:"gallery" validate:"omitempty,dive,url"`
	Features    []string `json:"features" validate:"omitempty,dive,max=200"`
	CategoryID  *string  `json:"category_id" validate:"omitempty,uuid4"`
	AddonIDs    []string `json:"addon_ids" validate:"omitempty,dive,uuid4"`
	IsActive    bool     `json:"is_active"`
	Position    int      `json:"position" validate:"omitempty,min=0"`
}

func (b productRequest) toInput() (catalog.ProductInput, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(b.Price))
	if err != nil {
		return catalog.ProductInput{}, errors.New(errors.CodeValidation, "invalid price")
	}

	input := catalog.ProductInput{
		Name:        b.Name,
		Description: b.Description,
		BodyHTML:    b.BodyHTML,
		Price:       price,
		MainImage:   b.MainImage,
		Gallery:     b.Gallery,
		Features:    b.Features,
		IsActive:    b.IsActive,
		Position:    b.Position,
	}

	if b.SalePrice != nil {
		sale, saleErr := decimal.NewFromString(strings.TrimSpace(*b.SalePrice))
		if saleErr != nil {
			return catalog.ProductInput{}, errors.New(errors.CodeValidation, "invalid sale price")
		}
		input.SalePrice = &sale
	}
	if b.CategoryID != nil {
		categoryID, parseErr := uuid.Parse(*b.CategoryID)
		if parseErr != nil {
			return catalog.ProductInput{}, errors.New(errors.CodeValidation, "invalid category id")
		}
		input.CategoryID = &categoryID
	}
	for _, raw := range b.AddonIDs {
		addonID, parseErr := uuid.Parse(raw)
		if parseErr != nil {
			return catalog.ProductInput{}, errors.New(errors.CodeValidation, "invalid addon id")
		}
		input.AddonIDs = append(input.AddonIDs, addonID)
	}
	return input, nil
}

func pathID(r *http.Request, param, label string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		return uuid.Nil, errors.New(errors.CodeValidation, "invalid "+label)
	}
	return id, nil
}

// AdminCreateCategory handles POST /categories.
func AdminCreateCategory(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body categoryRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := svc.CreateCategory(r.Context(), catalog.CategoryInput{
			Name:     body.Name,
			Slug:     body.Slug,
			Position: body.Position,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, toCategoryView(*category))
	}
}

// AdminUpdateCategory handles PUT /categories/{categoryId}.
func AdminUpdateCategory(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "categoryId", "category id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body categoryRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := svc.UpdateCategory(r.Context(), id, catalog.CategoryInput{
			Name:     body.Name,
			Slug:     body.Slug,
			Position: body.Position,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toCategoryView(*category))
	}
}

// AdminDeleteCategory handles DELETE /categories/{categoryId}.
func AdminDeleteCategory(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "categoryId", "category id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteCategory(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// AdminListProducts lists products including inactive ones.
func AdminListProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.ListProducts(r.Context(), catalog.ListProductsInput{
			Limit:           limit,
			Cursor:          strings.TrimSpace(r.URL.Query().Get("cursor")),
			IncludeInactive: true,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, productPageView{
			Products:   toProductViews(page.Products),
			NextCursor: page.NextCursor,
		})
	}
}

// AdminGetProduct returns one product regardless of active state.
func AdminGetProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "productId", "product id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := svc.GetProduct(r.Context(), id, true)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toProductView(*product))
	}
}

// AdminCreateProduct handles POST /products.
func AdminCreateProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body productRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := body.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.CreateProduct(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, toProductView(*product))
	}
}

// AdminUpdateProduct handles PUT /products/{productId}.
func AdminUpdateProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "productId", "product id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body productRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := body.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.UpdateProduct(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toProductView(*product))
	}
}

// AdminDeleteProduct handles DELETE /products/{productId}.
func AdminDeleteProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "productId", "product id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteProduct(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
