package postgres

import "github.com/pkg/errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrAlreadyClockedIn  = errors.New("already clocked in")
	ErrAlreadyClockedOut = errors.New("already clocked out")
	ErrNotClockedIn      = errors.New("no active clock-in")
	ErrShiftConflict     = errors.New("shift overlaps an existing shift")
	ErrOutsideGeofence   = errors.New("outside store geofence")
	ErrStoreLimitReached = errors.New("store limit reached")
	ErrAlreadyPaid       = errors.New("period already settled")
)
