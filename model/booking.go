package model

import "time"

// Booking statuses.
const (
	BookingPending   = "PENDING"
	BookingConfirmed = "CONFIRMED"
)

// Booking is created PENDING when seats are submitted and becomes CONFIRMED
// only after the backend verifies the payment capture.
type Booking struct {
	Id            int64     `json:"id"`
	ShowId        int64     `json:"showId"`
	MovieTitle    string    `json:"movieTitle"`
	TheaterName   string    `json:"theaterName"`
	ShowStartTime time.Time `json:"showStartTime"`
	BookedSeats   []string  `json:"bookedSeats"`
	TotalAmount   float64   `json:"totalAmount"`
	Status        string    `json:"status"`
}

// PendingBooking is the response to a booking creation: the booking id, the
// provisional total, and the opaque payment-session handle that binds the
// hosted payment page to this charge.
type PendingBooking struct {
	Id           int64   `json:"id"`
	TotalAmount  float64 `json:"totalAmount"`
	ClientSecret string  `json:"clientSecret"`
}
