package compliance

import "errors"

// Precondition errors are caught before any network call and surfaced to
// the user verbatim.
var (
	ErrOrganisationNotFound      = errors.New("Organisation not found")
	ErrResponsiblePersonRequired = errors.New("Responsible person is required")
)

// ValidationError marks a missing or malformed required field. Invalid
// distinguishes a present-but-malformed value from an absent one.
type ValidationError struct {
	Field   string
	Invalid bool
}

func (e *ValidationError) Error() string {
	if e.Invalid {
		return e.Field + " is invalid"
	}
	return e.Field + " is required"
}
