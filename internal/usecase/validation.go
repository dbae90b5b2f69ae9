package usecase

import "unicode"

// Tracking codes follow the EP<7 digits>FI format handed out at booking.
const (
	trackingPrefix = "EP"
	trackingSuffix = "FI"
	trackingDigits = 7
)

// ValidateTrackingCode checks the tracking code format.
func ValidateTrackingCode(code string) bool {
	if len(code) != len(trackingPrefix)+trackingDigits+len(trackingSuffix) {
		return false
	}
	if code[:len(trackingPrefix)] != trackingPrefix {
		return false
	}
	if code[len(code)-len(trackingSuffix):] != trackingSuffix {
		return false
	}
	for _, r := range code[len(trackingPrefix) : len(code)-len(trackingSuffix)] {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
