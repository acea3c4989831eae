package service

import (
	"context"
	"errors"
	"fmt"

	"showtime-tix-cli/model"
)

// BookingRequest submits a seat selection for a show. At least one seat is
// required; an empty selection never issues a request.
type BookingRequest struct {
	ShowId      int64   `json:"showId" validate:"required,gt=0"`
	ShowSeatIds []int64 `json:"showSeatIds" validate:"required,min=1,dive,gt=0"`
}

// CreateBooking creates a PENDING booking and returns the payment-session
// handle the hosted checkout page binds to. A rejection (e.g. a seat taken
// between page load and submission) carries the backend's reason.
func (c *Client) CreateBooking(ctx context.Context, req BookingRequest) (model.PendingBooking, error) {
	if err := checkRequest(req); err != nil {
		return model.PendingBooking{}, err
	}
	var pending model.PendingBooking
	if err := c.writeJSON(ctx, "POST", "/booking/createbooking", req, &pending); err != nil {
		return model.PendingBooking{}, err
	}
	return pending, nil
}

// ConfirmBooking finalizes a booking after payment capture and returns the
// receipt.
func (c *Client) ConfirmBooking(ctx context.Context, bookingId int64) (model.Booking, error) {
	if bookingId <= 0 {
		return model.Booking{}, errors.New("booking id is required")
	}
	var booking model.Booking
	if err := c.writeJSON(ctx, "POST", fmt.Sprintf("/booking/%d/confirm", bookingId), nil, &booking); err != nil {
		return model.Booking{}, err
	}
	return booking, nil
}

func (c *Client) GetMyBookings(ctx context.Context) ([]model.Booking, error) {
	var bookings []model.Booking
	if err := c.getJSON(ctx, "/booking/mybookings", nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// CheckoutURL builds the hosted payment page address for a pending booking.
// The page is served by the backend and renders the card-payment widget
// bound to the payment-session handle.
func (c *Client) CheckoutURL(pending model.PendingBooking) (string, error) {
	if pending.ClientSecret == "" {
		return "", errors.New("missing payment session handle")
	}
	return fmt.Sprintf("%s/checkout?bookingId=%d&session=%s", c.baseURL, pending.Id, pending.ClientSecret), nil
}
