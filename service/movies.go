package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"showtime-tix-cli/model"
)

// MovieRequest creates or updates a catalog movie directly, without going
// through the external-metadata import.
type MovieRequest struct {
	Title     string `json:"title" validate:"required"`
	Genre     string `json:"genre"`
	Language  string `json:"language"`
	Duration  string `json:"duration"`
	Rating    string `json:"rating"`
	Plot      string `json:"plot"`
	Cast      string `json:"cast"`
	Director  string `json:"director"`
	PosterURL string `json:"posterUrl"`
}

func (c *Client) GetAllMovies(ctx context.Context) ([]model.Movie, error) {
	var movies []model.Movie
	if err := c.getJSON(ctx, "/movies/getallmovies", nil, &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

// SearchMovies searches the internal catalog by title.
func (c *Client) SearchMovies(ctx context.Context, title string) ([]model.Movie, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errors.New("search title is required")
	}
	var movies []model.Movie
	query := url.Values{"title": {title}}
	if err := c.getJSON(ctx, "/movies/search", query, &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

// SearchOmdb searches the external metadata provider by title. Results are
// import candidates, not catalog entries.
func (c *Client) SearchOmdb(ctx context.Context, title string) ([]model.OmdbResult, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errors.New("search title is required")
	}
	var results []model.OmdbResult
	query := url.Values{"title": {title}}
	if err := c.getJSON(ctx, "/movies/omdb/search", query, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// ImportMovie imports a movie into the catalog by its external provider id.
func (c *Client) ImportMovie(ctx context.Context, imdbId string) (model.Movie, error) {
	imdbId = strings.TrimSpace(imdbId)
	if imdbId == "" {
		return model.Movie{}, errors.New("imdb id is required")
	}
	var movie model.Movie
	if err := c.writeJSON(ctx, "POST", "/movies/omdb/import/"+url.PathEscape(imdbId), nil, &movie); err != nil {
		return model.Movie{}, err
	}
	return movie, nil
}

func (c *Client) AddMovie(ctx context.Context, req MovieRequest) (model.Movie, error) {
	if err := checkRequest(req); err != nil {
		return model.Movie{}, err
	}
	var movie model.Movie
	if err := c.writeJSON(ctx, "POST", "/movies/addmovie", req, &movie); err != nil {
		return model.Movie{}, err
	}
	return movie, nil
}

func (c *Client) UpdateMovie(ctx context.Context, id int64, req MovieRequest) (model.Movie, error) {
	if id <= 0 {
		return model.Movie{}, errors.New("movie id is required")
	}
	if err := checkRequest(req); err != nil {
		return model.Movie{}, err
	}
	var movie model.Movie
	if err := c.writeJSON(ctx, "PUT", fmt.Sprintf("/movies/updatemovie/%d", id), req, &movie); err != nil {
		return model.Movie{}, err
	}
	return movie, nil
}

func (c *Client) DeleteMovie(ctx context.Context, id int64) error {
	if id <= 0 {
		return errors.New("movie id is required")
	}
	return c.writeJSON(ctx, "DELETE", fmt.Sprintf("/movies/deletemovie/%d", id), nil, nil)
}
