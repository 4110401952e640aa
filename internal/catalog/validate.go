package catalog

import (
	"errors"
	"strings"

	"github.com/fairyhunter13/sales-dashboard-service/internal/model"
)

// ValidationError reports malformed admin input for a single field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

// ValidateCreate checks a creation payload. All failing fields are reported.
func ValidateCreate(in model.ProductCreate) error {
	var errs []error
	if strings.TrimSpace(in.Name) == "" {
		errs = append(errs, &ValidationError{Field: "name", Reason: "is required"})
	}
	if in.Price.IsNegative() {
		errs = append(errs, &ValidationError{Field: "price", Reason: "must be >= 0"})
	}
	if in.Stock < 0 {
		errs = append(errs, &ValidationError{Field: "stock", Reason: "must be >= 0"})
	}
	return errors.Join(errs...)
}

// ValidateUpdate checks the fields present in a partial payload.
func ValidateUpdate(in model.ProductUpdate) error {
	var errs []error
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		errs = append(errs, &ValidationError{Field: "name", Reason: "must not be empty"})
	}
	if in.Price != nil && in.Price.IsNegative() {
		errs = append(errs, &ValidationError{Field: "price", Reason: "must be >= 0"})
	}
	if in.Stock != nil && *in.Stock < 0 {
		errs = append(errs, &ValidationError{Field: "stock", Reason: "must be >= 0"})
	}
	return errors.Join(errs...)
}
