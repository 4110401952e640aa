package httpapi

import (
	"encoding/json"
	"expvar"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fairyhunter13/sales-dashboard-service/internal/catalog"
	"github.com/fairyhunter13/sales-dashboard-service/internal/model"
	"github.com/fairyhunter13/sales-dashboard-service/internal/obs"
)

var (
	productsCreated = expvar.NewInt("products_created")
	productsUpdated = expvar.NewInt("products_updated")
	productsDeleted = expvar.NewInt("products_deleted")
)

type productsResponse struct {
	Products []model.Product `json:"products"`
	Count    int             `json:"count"`
}

type bodyKind int

const (
	bodyUnsupported bodyKind = iota
	bodyJSON
	bodyForm
	bodyMultipart
)

func requestBodyKind(r *http.Request) bodyKind {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return bodyUnsupported
	}
	switch mt {
	case "application/json":
		return bodyJSON
	case "application/x-www-form-urlencoded":
		return bodyForm
	case "multipart/form-data":
		return bodyMultipart
	default:
		return bodyUnsupported
	}
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// formValues parses url-encoded or multipart bodies into the posted values.
func formValues(r *http.Request, kind bodyKind) (url.Values, error) {
	var err error
	if kind == bodyMultipart {
		err = r.ParseMultipartForm(maxBodyBytes)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		return nil, err
	}
	return r.PostForm, nil
}

func parseID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("id %q is not a positive integer", raw)
	}
	return id, nil
}

func (a *App) listProductsHandler(w http.ResponseWriter, r *http.Request) {
	items := a.Catalog.List()
	writeJSON(w, http.StatusOK, productsResponse{Products: items, Count: len(items)})
}

func (a *App) getProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid_id", err.Error())
		return
	}
	p, ok := a.Catalog.Get(id)
	if !ok {
		WriteJSONError(w, http.StatusNotFound, "not_found", "")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (a *App) createProductHandler(w http.ResponseWriter, r *http.Request) {
	var in model.ProductCreate
	switch kind := requestBodyKind(r); kind {
	case bodyJSON:
		if err := decodeJSON(r, &in); err != nil {
			WriteJSONError(w, http.StatusBadRequest, "invalid_json", err.Error())
			return
		}
	case bodyForm, bodyMultipart:
		values, err := formValues(r, kind)
		if err != nil {
			WriteJSONError(w, http.StatusBadRequest, "invalid_form", err.Error())
			return
		}
		parsed, err := catalog.ParseForm(catalog.FormInputFromValues(values))
		if err != nil {
			writeError(w, r, err)
			return
		}
		in = parsed
	default:
		WriteJSONError(w, http.StatusUnsupportedMediaType, "unsupported_media_type", "expected application/json or form data")
		return
	}

	p, err := a.Catalog.Create(in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	productsCreated.Add(1)
	obs.Logger.Info("product_created", "request_id", RequestIDFromContext(r.Context()), "product_id", p.ID)
	w.Header().Set("Location", "/api/products/"+strconv.FormatInt(p.ID, 10))
	writeJSON(w, http.StatusCreated, p)
}

func (a *App) updateProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid_id", err.Error())
		return
	}

	var in model.ProductUpdate
	switch kind := requestBodyKind(r); kind {
	case bodyJSON:
		if err := decodeJSON(r, &in); err != nil {
			WriteJSONError(w, http.StatusBadRequest, "invalid_json", err.Error())
			return
		}
	case bodyForm, bodyMultipart:
		values, err := formValues(r, kind)
		if err != nil {
			WriteJSONError(w, http.StatusBadRequest, "invalid_form", err.Error())
			return
		}
		parsed, err := catalog.ParseUpdateForm(values)
		if err != nil {
			writeError(w, r, err)
			return
		}
		in = parsed
	default:
		WriteJSONError(w, http.StatusUnsupportedMediaType, "unsupported_media_type", "expected application/json or form data")
		return
	}

	p, err := a.Catalog.Update(id, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	productsUpdated.Add(1)
	obs.Logger.Info("product_updated", "request_id", RequestIDFromContext(r.Context()), "product_id", p.ID)
	writeJSON(w, http.StatusOK, p)
}

func (a *App) deleteProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid_id", err.Error())
		return
	}
	if _, ok := a.Catalog.Get(id); ok {
		productsDeleted.Add(1)
		obs.Logger.Info("product_deleted", "request_id", RequestIDFromContext(r.Context()), "product_id", id)
	}
	a.Catalog.Delete(id)
	w.WriteHeader(http.StatusNoContent)
}
