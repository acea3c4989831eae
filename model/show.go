package model

import "time"

// Show is a scheduled screening. The backend denormalizes movie, screen and
// theater display fields into the listing payloads.
type Show struct {
	Id             int64              `json:"id"`
	MovieId        int64              `json:"movieId"`
	MovieTitle     string             `json:"movieTitle"`
	ScreenId       int64              `json:"screenId"`
	ScreenName     string             `json:"screenName"`
	TheaterName    string             `json:"theaterName"`
	TheaterAddress string             `json:"theaterAddress"`
	TheaterCity    string             `json:"theaterCity"`
	StartTime      time.Time          `json:"startTime"`
	EndTime        time.Time          `json:"endTime"`
	SeatPrices     map[string]float64 `json:"seatPrices"`
}
