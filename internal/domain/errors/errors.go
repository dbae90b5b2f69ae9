package errors

import "errors"

var (
	ErrAlreadyExists         = errors.New("already exists")
	ErrNotFound              = errors.New("not found")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrInvalidTrackingCode   = errors.New("invalid tracking code")
	ErrInvalidBooking        = errors.New("invalid booking request")
	ErrBookingNotCancellable = errors.New("booking can no longer be cancelled")
	ErrUnknownStatus         = errors.New("unknown shipment status")
	ErrLabelGeneration       = errors.New("label generation failed")
	ErrPickupScheduling      = errors.New("pickup scheduling failed")
)
