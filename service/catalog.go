package service

import (
	"context"
	"errors"
	"fmt"

	"showtime-tix-cli/model"
)

// TheaterRequest creates or updates a theater.
type TheaterRequest struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address" validate:"required"`
	City    string `json:"city" validate:"required"`
}

// ScreenRequest creates a screen inside a theater.
type ScreenRequest struct {
	Name       string `json:"name" validate:"required"`
	ScreenType string `json:"screenType" validate:"required,oneof=REGULAR LARGE_FORMAT STEREOSCOPIC PREMIUM"`
	TheaterId  int64  `json:"theaterId" validate:"required,gt=0"`
}

// NewSeat is one entry of a seat batch.
type NewSeat struct {
	SeatNumber string `json:"seatNumber" validate:"required"`
	SeatType   string `json:"seatType" validate:"required,oneof=REGULAR PREMIUM GOLD"`
}

// SeatBatchRequest persists a generated layout block in one atomic request.
type SeatBatchRequest struct {
	ScreenId int64     `json:"screenId" validate:"required,gt=0"`
	Seats    []NewSeat `json:"seats" validate:"required,min=1,dive"`
}

func (c *Client) GetAllTheaters(ctx context.Context) ([]model.Theater, error) {
	var theaters []model.Theater
	if err := c.getJSON(ctx, "/theaters", nil, &theaters); err != nil {
		return nil, err
	}
	return theaters, nil
}

func (c *Client) AddTheater(ctx context.Context, req TheaterRequest) (model.Theater, error) {
	if err := checkRequest(req); err != nil {
		return model.Theater{}, err
	}
	var theater model.Theater
	if err := c.writeJSON(ctx, "POST", "/theaters", req, &theater); err != nil {
		return model.Theater{}, err
	}
	return theater, nil
}

func (c *Client) UpdateTheater(ctx context.Context, id int64, req TheaterRequest) (model.Theater, error) {
	if id <= 0 {
		return model.Theater{}, errors.New("theater id is required")
	}
	if err := checkRequest(req); err != nil {
		return model.Theater{}, err
	}
	var theater model.Theater
	if err := c.writeJSON(ctx, "PUT", fmt.Sprintf("/theaters/%d", id), req, &theater); err != nil {
		return model.Theater{}, err
	}
	return theater, nil
}

func (c *Client) DeleteTheater(ctx context.Context, id int64) error {
	if id <= 0 {
		return errors.New("theater id is required")
	}
	return c.writeJSON(ctx, "DELETE", fmt.Sprintf("/theaters/%d", id), nil, nil)
}

func (c *Client) GetScreensByTheater(ctx context.Context, theaterId int64) ([]model.Screen, error) {
	if theaterId <= 0 {
		return nil, errors.New("theater id is required")
	}
	var screens []model.Screen
	if err := c.getJSON(ctx, fmt.Sprintf("/screens/theater/%d", theaterId), nil, &screens); err != nil {
		return nil, err
	}
	return screens, nil
}

func (c *Client) AddScreen(ctx context.Context, req ScreenRequest) (model.Screen, error) {
	if err := checkRequest(req); err != nil {
		return model.Screen{}, err
	}
	var screen model.Screen
	if err := c.writeJSON(ctx, "POST", "/screens", req, &screen); err != nil {
		return model.Screen{}, err
	}
	return screen, nil
}

func (c *Client) DeleteScreen(ctx context.Context, id int64) error {
	if id <= 0 {
		return errors.New("screen id is required")
	}
	return c.writeJSON(ctx, "DELETE", fmt.Sprintf("/screens/%d", id), nil, nil)
}

func (c *Client) GetSeatsByScreen(ctx context.Context, screenId int64) ([]model.Seat, error) {
	if screenId <= 0 {
		return nil, errors.New("screen id is required")
	}
	var seats []model.Seat
	if err := c.getJSON(ctx, fmt.Sprintf("/seats/screen/%d", screenId), nil, &seats); err != nil {
		return nil, err
	}
	return seats, nil
}

// AddSeats persists a layout batch. The write is atomic-or-nothing from the
// client's perspective: on rejection (e.g. duplicate labels) nothing was
// persisted and the failure is returned for verbatim surfacing.
func (c *Client) AddSeats(ctx context.Context, req SeatBatchRequest) error {
	if err := checkRequest(req); err != nil {
		return err
	}
	return c.writeJSON(ctx, "POST", "/seats", req, nil)
}

// ClearScreenLayout deletes every seat of a screen. The backend refuses when
// bookings already reference the seats; that refusal is the caller's to show.
func (c *Client) ClearScreenLayout(ctx context.Context, screenId int64) error {
	if screenId <= 0 {
		return errors.New("screen id is required")
	}
	return c.writeJSON(ctx, "DELETE", fmt.Sprintf("/seats/screen/%d", screenId), nil, nil)
}
