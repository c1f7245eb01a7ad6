// Package payroll is the single implementation of the earnings math. Every
// call site that reports or settles pay (self view, admin summaries, exports,
// mark-as-paid) builds a []Line and calls Compute, so thresholds and rounding
// cannot drift between endpoints.
package payroll

import "math"

// Rules are the penalty thresholds, injected from configuration.
type Rules struct {
	// LateWarningCount is how many late arrivals are forgiven before
	// penalties start. With the default of 2, the 3rd late and every one
	// after it is penalized.
	LateWarningCount int
	// LatePenaltyFactor scales the shift length into penalty hours for a
	// penalized late arrival.
	LatePenaltyFactor float64
	// NoShowPenaltyFactor scales the shift length into penalty hours for a
	// missed shift.
	NoShowPenaltyFactor float64
}

// Line is one attendance outcome in chronological order: either a completed
// shift (Hours worked, possibly late) or a no-show.
type Line struct {
	Hours      float64 // clock-out minus clock-in, fractional hours
	ShiftHours float64 // scheduled shift length, the penalty base
	IsLate     bool
	NoShow     bool
	Paid       bool
}

// Summary is the aggregated result. Monetary fields are rounded half-up to
// two decimals independently; Net is computed from the rounded parts.
type Summary struct {
	HoursWorked float64 `json:"hoursWorked"`
	PaidHours   float64 `json:"paidHours"`
	UnpaidHours float64 `json:"unpaidHours"`

	LateCount        int     `json:"lateCount"`
	LatePenaltyHours float64 `json:"latePenaltyHours"`

	NoShowCount        int     `json:"noShowCount"`
	NoShowPenaltyHours float64 `json:"noShowPenaltyHours"`

	GrossEarnings float64 `json:"grossEarnings"`
	LatePenalty   float64 `json:"latePenalty"`
	NoShowPenalty float64 `json:"noShowPenalty"`
	NetEarnings   float64 `json:"netEarnings"`
}

// Round2 rounds half away from zero to two decimals. All money in the system
// goes through this.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Compute aggregates attendance lines into an earnings summary. Lines must be
// in chronological order: the warning allowance applies to the first lates of
// the period, whichever they are.
//
// An employee without a configured rate gets an all-zero summary rather than
// an error; callers attach the "no salary configured" marker.
func Compute(lines []Line, hourlyRate float64, rules Rules) Summary {
	var s Summary

	if hourlyRate <= 0 {
		return s
	}

	for _, line := range lines {
		if line.NoShow {
			s.NoShowCount++
			s.NoShowPenaltyHours += rules.NoShowPenaltyFactor * line.ShiftHours
			continue
		}

		s.HoursWorked += line.Hours
		if line.Paid {
			s.PaidHours += line.Hours
		} else {
			s.UnpaidHours += line.Hours
		}

		if line.IsLate {
			s.LateCount++
			if s.LateCount > rules.LateWarningCount {
				s.LatePenaltyHours += rules.LatePenaltyFactor * line.ShiftHours
			}
		}
	}

	// Money is derived from the raw sums; the hour fields are rounded for
	// display only.
	s.GrossEarnings = Round2(s.HoursWorked * hourlyRate)
	s.LatePenalty = Round2(s.LatePenaltyHours * hourlyRate)
	s.NoShowPenalty = Round2(s.NoShowPenaltyHours * hourlyRate)
	s.NetEarnings = Round2(s.GrossEarnings - s.LatePenalty - s.NoShowPenalty)

	s.HoursWorked = Round2(s.HoursWorked)
	s.PaidHours = Round2(s.PaidHours)
	s.UnpaidHours = Round2(s.UnpaidHours)

	return s
}
