package usecase

import "time"

// Bridge for external tests (package usecase_test).
var EstimateDelivery = estimateDelivery

const TrackingCodeAttempts = trackingCodeAttempts

func SetNow(u *BookingUseCase, fn func() time.Time) { u.now = fn }
