package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"showtime-tix-cli/model"
)

// ShowRequest schedules a screening with per-tier pricing.
type ShowRequest struct {
	MovieId    int64              `json:"movieId" validate:"required,gt=0"`
	ScreenId   int64              `json:"screenId" validate:"required,gt=0"`
	StartTime  time.Time          `json:"startTime" validate:"required"`
	EndTime    time.Time          `json:"endTime" validate:"required,gtfield=StartTime"`
	SeatPrices map[string]float64 `json:"seatPrices" validate:"required,min=1"`
}

// ShowFilter narrows a show listing. An empty City means no city filter;
// the "All" display sentinel must never reach this layer.
type ShowFilter struct {
	MovieId int64
	City    string
	Date    time.Time
}

func (c *Client) AddShow(ctx context.Context, req ShowRequest) (model.Show, error) {
	if err := checkRequest(req); err != nil {
		return model.Show{}, err
	}
	var show model.Show
	if err := c.writeJSON(ctx, "POST", "/shows", req, &show); err != nil {
		return model.Show{}, err
	}
	return show, nil
}

func (c *Client) GetAllShows(ctx context.Context) ([]model.Show, error) {
	var shows []model.Show
	if err := c.getJSON(ctx, "/shows/all", nil, &shows); err != nil {
		return nil, err
	}
	return shows, nil
}

func (c *Client) GetShowsByMovie(ctx context.Context, movieId int64) ([]model.Show, error) {
	if movieId <= 0 {
		return nil, errors.New("movie id is required")
	}
	var shows []model.Show
	if err := c.getJSON(ctx, fmt.Sprintf("/shows/movie/%d", movieId), nil, &shows); err != nil {
		return nil, err
	}
	return shows, nil
}

// GetFilteredShows lists shows for a movie on a date, optionally narrowed to
// a city. Unset filter parts are omitted from the query entirely.
func (c *Client) GetFilteredShows(ctx context.Context, filter ShowFilter) ([]model.Show, error) {
	if filter.MovieId <= 0 {
		return nil, errors.New("movie id is required")
	}
	query := url.Values{"movieId": {strconv.FormatInt(filter.MovieId, 10)}}
	if city := strings.TrimSpace(filter.City); city != "" {
		query.Set("city", city)
	}
	if !filter.Date.IsZero() {
		query.Set("date", filter.Date.Format(time.DateOnly))
	}

	var shows []model.Show
	if err := c.getJSON(ctx, "/shows", query, &shows); err != nil {
		return nil, err
	}
	return shows, nil
}

func (c *Client) GetShowById(ctx context.Context, id int64) (model.Show, error) {
	if id <= 0 {
		return model.Show{}, errors.New("show id is required")
	}
	var show model.Show
	if err := c.getJSON(ctx, fmt.Sprintf("/shows/%d", id), nil, &show); err != nil {
		return model.Show{}, err
	}
	return show, nil
}

// GetShowSeats fetches the bookable seat projections for one show.
func (c *Client) GetShowSeats(ctx context.Context, showId int64) ([]model.ShowSeat, error) {
	if showId <= 0 {
		return nil, errors.New("show id is required")
	}
	var seats []model.ShowSeat
	if err := c.getJSON(ctx, fmt.Sprintf("/shows/%d/seats", showId), nil, &seats); err != nil {
		return nil, err
	}
	return seats, nil
}

func (c *Client) DeleteShow(ctx context.Context, id int64) error {
	if id <= 0 {
		return errors.New("show id is required")
	}
	return c.writeJSON(ctx, "DELETE", fmt.Sprintf("/shows/%d", id), nil, nil)
}
