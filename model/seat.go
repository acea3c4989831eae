package model

// Seat tiers, front of house to back.
const (
	TierRegular = "REGULAR"
	TierPremium = "PREMIUM"
	TierGold    = "GOLD"
)

// Tiers lists the closed tier set in generation order (front rows first).
var Tiers = []string{TierRegular, TierPremium, TierGold}

func ValidTier(tier string) bool {
	for _, t := range Tiers {
		if t == tier {
			return true
		}
	}
	return false
}

// Seat is a catalog entry owned by a screen. SeatNumber is the row prefix
// plus column number ("A1", "J12") and is unique within the screen.
type Seat struct {
	Id         int64   `json:"id"`
	SeatNumber string  `json:"seatNumber"`
	SeatType   string  `json:"seatType"`
	Price      float64 `json:"price"`
	ScreenId   int64   `json:"screenId"`
}

// ShowSeat statuses.
const (
	SeatAvailable = "AVAILABLE"
	SeatLocked    = "LOCKED"
	SeatBooked    = "BOOKED"
)

// ShowSeat is the bookable projection of a Seat for one show, carrying the
// booking status and the effective price fixed at show-creation time.
type ShowSeat struct {
	Id         int64   `json:"id"`
	SeatNumber string  `json:"seatNumber"`
	SeatType   string  `json:"seatType"`
	Price      float64 `json:"price"`
	Status     string  `json:"status"`
}

func (s ShowSeat) Available() bool {
	return s.Status == SeatAvailable
}
