package catalog

import (
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fairyhunter13/sales-dashboard-service/internal/model"
)

// FormInput carries the raw strings typed into the admin product form.
type FormInput struct {
	Name        string
	Price       string
	Stock       string
	Description string
}

// FormInputFromValues reads a FormInput from url-encoded form values.
func FormInputFromValues(v url.Values) FormInput {
	return FormInput{
		Name:        v.Get("name"),
		Price:       v.Get("price"),
		Stock:       v.Get("stock"),
		Description: v.Get("description"),
	}
}

// ParseForm converts form strings into a creation payload.
func ParseForm(f FormInput) (model.ProductCreate, error) {
	var errs []error
	price, err := parsePrice(f.Price)
	if err != nil {
		errs = append(errs, err)
	}
	stock, err := parseStock(f.Stock)
	if err != nil {
		errs = append(errs, err)
	}
	in := model.ProductCreate{
		Name:        strings.TrimSpace(f.Name),
		Price:       price,
		Stock:       stock,
		Description: strings.TrimSpace(f.Description),
	}
	if len(errs) > 0 {
		if in.Name == "" {
			errs = append([]error{&ValidationError{Field: "name", Reason: "is required"}}, errs...)
		}
		return model.ProductCreate{}, errors.Join(errs...)
	}
	if err := ValidateCreate(in); err != nil {
		return model.ProductCreate{}, err
	}
	return in, nil
}

// ParseUpdateForm converts the fields present in v into a partial update.
// Absent fields are left unchanged.
func ParseUpdateForm(v url.Values) (model.ProductUpdate, error) {
	var (
		in   model.ProductUpdate
		errs []error
	)
	if v.Has("name") {
		name := strings.TrimSpace(v.Get("name"))
		in.Name = &name
	}
	if v.Has("price") {
		price, err := parsePrice(v.Get("price"))
		if err != nil {
			errs = append(errs, err)
		} else {
			in.Price = &price
		}
	}
	if v.Has("stock") {
		stock, err := parseStock(v.Get("stock"))
		if err != nil {
			errs = append(errs, err)
		} else {
			in.Stock = &stock
		}
	}
	if v.Has("description") {
		desc := strings.TrimSpace(v.Get("description"))
		in.Description = &desc
	}
	if err := ValidateUpdate(in); err != nil {
		errs = append([]error{err}, errs...)
	}
	if len(errs) > 0 {
		return model.ProductUpdate{}, errors.Join(errs...)
	}
	return in, nil
}

func parsePrice(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, &ValidationError{Field: "price", Reason: "must be a number"}
	}
	return d, nil
}

func parseStock(s string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, &ValidationError{Field: "stock", Reason: "must be a whole number"}
	}
	return n, nil
}
