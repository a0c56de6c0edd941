package errorvalues

import "errors"

var (
	ErrValidation         = errors.New("validation error")
	ErrMedicineNotFound   = errors.New("medicine doesn't exist")
	ErrDoseNotFound       = errors.New("dose log doesn't exist")
	ErrWrongOwner         = errors.New("resource has different owner")
	ErrDoseAlreadyDecided = errors.New("dose log already has a terminal status")
	ErrTooEarly           = errors.New("too early to mark dose as taken")
	ErrInvalidStatus      = errors.New("status transition not allowed")
	ErrInvalidTimezone    = errors.New("unknown IANA timezone")
	ErrInvalidTimeOfDay   = errors.New("time of day must be HH:MM")
	ErrWellnessNotFound   = errors.New("wellness score doesn't exist")
	ErrInvalidToken       = errors.New("invalid token")
)
