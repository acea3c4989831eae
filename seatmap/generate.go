package seatmap

import (
	"errors"
	"fmt"

	"showtime-tix-cli/model"
	"showtime-tix-cli/service"
)

// Form limits matching the back-office grid inputs.
const (
	MaxRowsPerBatch = 26
	MaxColumns      = 50
)

// Generate synthesizes a rectangular block of seats for a screen. The block
// starts one row past the highest row prefix already present in existing
// (row "A" for an empty screen), so tiers generated front-to-back append
// cleanly and never interleave with earlier batches. Columns number 1..cols
// within each row.
//
// The returned batch has exactly rows*cols entries. A label collision with
// the existing set is an error and nothing is returned; persistence of the
// batch itself is a single atomic request left to the caller.
func Generate(existing []model.Seat, rows int, cols int, tier string) ([]service.NewSeat, error) {
	if rows < 1 {
		return nil, errors.New("row count must be at least 1")
	}
	if cols < 1 {
		return nil, errors.New("column count must be at least 1")
	}
	if rows > MaxRowsPerBatch {
		return nil, fmt.Errorf("row count must be at most %d per batch", MaxRowsPerBatch)
	}
	if cols > MaxColumns {
		return nil, fmt.Errorf("column count must be at most %d", MaxColumns)
	}
	if !model.ValidTier(tier) {
		return nil, fmt.Errorf("unknown seat tier %q", tier)
	}

	taken := make(map[string]bool, len(existing))
	for _, seat := range existing {
		taken[seat.SeatNumber] = true
	}

	start := NextRowIndex(existing)
	batch := make([]service.NewSeat, 0, rows*cols)
	for r := start; r < start+rows; r++ {
		row := RowLabel(r)
		for c := 1; c <= cols; c++ {
			label := fmt.Sprintf("%s%d", row, c)
			if taken[label] {
				return nil, fmt.Errorf("seat %s already exists for this screen", label)
			}
			batch = append(batch, service.NewSeat{SeatNumber: label, SeatType: tier})
		}
	}
	return batch, nil
}

// NextRowIndex returns the zero-based index of the first free row: one past
// the highest row prefix found among existing seats, or 0 when none parse.
func NextRowIndex(existing []model.Seat) int {
	next := 0
	for _, seat := range existing {
		row, _, ok := SplitLabel(seat.SeatNumber)
		if !ok {
			continue
		}
		if idx := RowIndex(row); idx >= next {
			next = idx + 1
		}
	}
	return next
}
