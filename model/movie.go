package model

type Movie struct {
	Id        int64  `json:"id"`
	Title     string `json:"title"`
	Genre     string `json:"genre"`
	Language  string `json:"language"`
	Duration  string `json:"duration"`
	Rating    string `json:"rating"`
	Plot      string `json:"plot"`
	Cast      string `json:"cast"`
	Director  string `json:"director"`
	PosterURL string `json:"posterUrl"`
	ImdbId    string `json:"imdbId"`
}

// OmdbResult is one hit from the external metadata provider search.
type OmdbResult struct {
	ImdbId string `json:"imdbID"`
	Title  string `json:"title"`
	Year   string `json:"year"`
	Poster string `json:"poster"`
}
