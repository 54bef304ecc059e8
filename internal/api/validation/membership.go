package validation

import "github.com/google/uuid"

// CreateMembershipRequest mirrors the fields needed for membership
// assignment validation.
type CreateMembershipRequest struct {
	RoleID string
	UserID string
	TeamID string
}

// ValidateCreateMembershipRequest validates the fields of a membership
// assignment request.
func ValidateCreateMembershipRequest(req CreateMembershipRequest) []FieldError {
	var errs []FieldError

	errs = appendUUIDError(errs, "roleId", req.RoleID)
	errs = appendUUIDError(errs, "userId", req.UserID)
	errs = appendUUIDError(errs, "teamId", req.TeamID)

	return errs
}

func appendUUIDError(errs []FieldError, field, value string) []FieldError {
	if value == "" {
		return append(errs, FieldError{Field: field, Message: field + " is required"})
	}
	if _, err := uuid.Parse(value); err != nil {
		return append(errs, FieldError{Field: field, Message: field + " must be a valid UUID"})
	}
	return errs
}
