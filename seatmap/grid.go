package seatmap

import (
	"slices"

	"showtime-tix-cli/model"
)

// Section is one tier's block of a seat grid, rows already in natural order.
type Section struct {
	Tier string
	Rows []Row
}

// Row is one lettered row of a section, seats ordered by column.
type Row struct {
	Label string
	Seats []model.ShowSeat
}

// Grid is the display-ready layout of a show's seats: sections in descending
// tier order (highest-value tier nearest the screen indicator, so gold, then
// premium, then regular).
type Grid struct {
	Sections []Section
}

// displayOrder ranks tiers for rendering; lower renders first (nearest the
// screen indicator). Unknown tiers group with regular.
func displayOrder(tier string) int {
	switch tier {
	case model.TierGold:
		return 0
	case model.TierPremium:
		return 1
	default:
		return 2
	}
}

// BuildGrid partitions seats by tier and orders everything naturally.
func BuildGrid(seats []model.ShowSeat) Grid {
	byTier := make(map[string][]model.ShowSeat)
	for _, seat := range seats {
		tier := seat.SeatType
		if !model.ValidTier(tier) {
			tier = model.TierRegular
		}
		byTier[tier] = append(byTier[tier], seat)
	}

	tiers := make([]string, 0, len(byTier))
	for tier := range byTier {
		tiers = append(tiers, tier)
	}
	slices.SortFunc(tiers, func(a, b string) int {
		if d := displayOrder(a) - displayOrder(b); d != 0 {
			return d
		}
		return 0
	})

	grid := Grid{Sections: make([]Section, 0, len(tiers))}
	for _, tier := range tiers {
		grid.Sections = append(grid.Sections, Section{Tier: tier, Rows: buildRows(byTier[tier])})
	}
	return grid
}

func buildRows(seats []model.ShowSeat) []Row {
	byRow := make(map[string][]model.ShowSeat)
	for _, seat := range seats {
		row, _, ok := SplitLabel(seat.SeatNumber)
		if !ok {
			row = ""
		}
		byRow[row] = append(byRow[row], seat)
	}

	labels := make([]string, 0, len(byRow))
	for label := range byRow {
		labels = append(labels, label)
	}
	slices.SortFunc(labels, CompareRows)

	rows := make([]Row, 0, len(labels))
	for _, label := range labels {
		seats := byRow[label]
		slices.SortFunc(seats, func(a, b model.ShowSeat) int {
			return CompareLabels(a.SeatNumber, b.SeatNumber)
		})
		rows = append(rows, Row{Label: label, Seats: seats})
	}
	return rows
}

// WidestRow returns the highest column number present anywhere in the grid,
// the width the renderer sizes its columns to.
func (g Grid) WidestRow() int {
	widest := 0
	for _, section := range g.Sections {
		for _, row := range section.Rows {
			for _, seat := range row.Seats {
				if _, col, ok := SplitLabel(seat.SeatNumber); ok && col > widest {
					widest = col
				}
			}
		}
	}
	return widest
}

// Count reports seats by status across the whole grid.
func (g Grid) Count() (available int, taken int, total int) {
	for _, section := range g.Sections {
		for _, row := range section.Rows {
			for _, seat := range row.Seats {
				total++
				if seat.Available() {
					available++
				} else {
					taken++
				}
			}
		}
	}
	return available, taken, total
}

// SortSeats orders a static seat catalog naturally, the order the admin
// preview renders in.
func SortSeats(seats []model.Seat) {
	slices.SortFunc(seats, func(a, b model.Seat) int {
		return CompareLabels(a.SeatNumber, b.SeatNumber)
	})
}
