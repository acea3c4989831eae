package seatmap

import (
	"slices"

	"showtime-tix-cli/model"
)

// Selection tracks the seats a customer has picked for one show. Membership
// is keyed by ShowSeat id, so a seat can never appear twice.
type Selection struct {
	seats map[int64]model.ShowSeat
}

func NewSelection() *Selection {
	return &Selection{seats: make(map[int64]model.ShowSeat)}
}

// Toggle flips the seat's membership and reports whether anything changed.
// Seats that are not AVAILABLE are inert: they never enter the selection.
func (s *Selection) Toggle(seat model.ShowSeat) bool {
	if !seat.Available() {
		return false
	}
	if _, ok := s.seats[seat.Id]; ok {
		delete(s.seats, seat.Id)
		return true
	}
	s.seats[seat.Id] = seat
	return true
}

func (s *Selection) Contains(id int64) bool {
	_, ok := s.seats[id]
	return ok
}

func (s *Selection) Count() int {
	return len(s.seats)
}

func (s *Selection) Clear() {
	s.seats = make(map[int64]model.ShowSeat)
}

// Total is the sum of the effective prices of every selected seat.
func (s *Selection) Total() float64 {
	total := 0.0
	for _, seat := range s.seats {
		total += seat.Price
	}
	return total
}

// Ids returns the selected ShowSeat identifiers in natural label order, the
// order the booking request carries them in.
func (s *Selection) Ids() []int64 {
	sorted := s.sorted()
	ids := make([]int64, 0, len(sorted))
	for _, seat := range sorted {
		ids = append(ids, seat.Id)
	}
	return ids
}

// Labels returns the selected seat numbers in natural order.
func (s *Selection) Labels() []string {
	sorted := s.sorted()
	labels := make([]string, 0, len(sorted))
	for _, seat := range sorted {
		labels = append(labels, seat.SeatNumber)
	}
	return labels
}

func (s *Selection) sorted() []model.ShowSeat {
	seats := make([]model.ShowSeat, 0, len(s.seats))
	for _, seat := range s.seats {
		seats = append(seats, seat)
	}
	slices.SortFunc(seats, func(a, b model.ShowSeat) int {
		return CompareLabels(a.SeatNumber, b.SeatNumber)
	})
	return seats
}
