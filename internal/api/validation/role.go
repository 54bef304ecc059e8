package validation

import "strings"

// FieldError represents a validation error on a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// CreateRoleRequest mirrors the fields needed for create role validation.
type CreateRoleRequest struct {
	Name string
}

// ValidateCreateRoleRequest validates the fields of a create role request.
// Returns a slice of field errors; empty slice means valid.
func ValidateCreateRoleRequest(req CreateRoleRequest) []FieldError {
	var errs []FieldError

	name := strings.TrimSpace(req.Name)
	if name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "name is required"})
	} else if len(name) > 255 {
		errs = append(errs, FieldError{Field: "name", Message: "name must be at most 255 characters"})
	}

	return errs
}
