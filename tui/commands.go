package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"showtime-tix-cli/model"
	"showtime-tix-cli/seatmap"
	"showtime-tix-cli/service"
	"showtime-tix-cli/store"
)

type errMsg struct {
	err            error
	returnState    appState
	returnStateSet bool
}

func errCmd(err error) tea.Cmd {
	return func() tea.Msg { return errMsg{err: err} }
}

func errWithReturnCmd(err error, returnTo appState) tea.Cmd {
	return func() tea.Msg { return errMsg{err: err, returnState: returnTo, returnStateSet: true} }
}

type sessionMsg struct {
	user model.User
	err  error
}

type loginMsg struct {
	user model.User
	err  error
}

type registerMsg struct {
	err error
}

type logoutMsg struct{ err error }

type moviesMsg struct {
	movies []model.Movie
	err    error
}

// searchTickMsg fires when a debounce window elapses. Stale ticks carry a
// superseded sequence number and are dropped.
type searchTickMsg struct {
	seq  int
	omdb bool
}

type searchMsg struct {
	seq    int
	movies []model.Movie
	err    error
}

type omdbMsg struct {
	seq     int
	results []model.OmdbResult
	err     error
}

type theatersMsg struct {
	theaters []model.Theater
	err      error
}

type scheduleMsg struct {
	seq   int
	shows []model.Show
	err   error
}

type showSeatsMsg struct {
	seats []model.ShowSeat
	err   error
}

type bookingCreatedMsg struct {
	pending model.PendingBooking
	err     error
}

type bookingConfirmedMsg struct {
	booking model.Booking
	err     error
}

type myBookingsMsg struct {
	bookings []model.Booking
	err      error
}

type screensMsg struct {
	screens []model.Screen
	err     error
}

type screenSeatsMsg struct {
	seats []model.Seat
	err   error
}

type adminShowsMsg struct {
	shows []model.Show
	err   error
}

type movieImportedMsg struct {
	movie model.Movie
	err   error
}

// mutationMsg is the shared result of back-office writes. refresh names the
// follow-up fetch to run on success.
type mutationMsg struct {
	note    string
	refresh tea.Cmd
	err     error
}

type checkoutOpenedMsg struct{ err error }

func (m appModel) checkSessionCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		user, err := client.Me(context.Background())
		return sessionMsg{user: user, err: err}
	}
}

func (m appModel) loginCmd(creds service.Credentials) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		user, err := client.Login(context.Background(), creds)
		return loginMsg{user: user, err: err}
	}
}

func (m appModel) registerCmd(reg service.Registration) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		return registerMsg{err: client.Register(context.Background(), reg)}
	}
}

func (m appModel) logoutCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		return logoutMsg{err: client.Logout(context.Background())}
	}
}

// fetchCatalogCmd serves the movie catalog from the store cache when fresh
// and refreshes it from the backend otherwise.
func (m appModel) fetchCatalogCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		if cached, fresh, err := store.LoadMovieCache(); err == nil && fresh && len(cached) > 0 {
			return moviesMsg{movies: cached}
		}
		movies, err := client.GetAllMovies(context.Background())
		if err != nil {
			return moviesMsg{err: err}
		}
		_ = store.SaveMovieCache(movies)
		return moviesMsg{movies: movies}
	}
}

func (m appModel) fetchTheatersCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		if cached, fresh, err := store.LoadTheaterCache(); err == nil && fresh && len(cached) > 0 {
			return theatersMsg{theaters: cached}
		}
		theaters, err := client.GetAllTheaters(context.Background())
		if err != nil {
			return theatersMsg{err: err}
		}
		_ = store.SaveTheaterCache(theaters)
		return theatersMsg{theaters: theaters}
	}
}

func (m appModel) fetchTheatersFreshCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		theaters, err := client.GetAllTheaters(context.Background())
		if err != nil {
			return theatersMsg{err: err}
		}
		_ = store.SaveTheaterCache(theaters)
		return theatersMsg{theaters: theaters}
	}
}

func debounceCmd(seq int, omdb bool) tea.Cmd {
	return tea.Tick(searchDebounce, func(time.Time) tea.Msg {
		return searchTickMsg{seq: seq, omdb: omdb}
	})
}

func (m appModel) searchMoviesCmd(seq int, title string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		movies, err := client.SearchMovies(context.Background(), title)
		return searchMsg{seq: seq, movies: movies, err: err}
	}
}

func (m appModel) searchOmdbCmd(seq int, title string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		results, err := client.SearchOmdb(context.Background(), title)
		return omdbMsg{seq: seq, results: results, err: err}
	}
}

func (m appModel) importMovieCmd(imdbId string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		movie, err := client.ImportMovie(context.Background(), imdbId)
		if err == nil {
			_ = store.InvalidateCatalog()
		}
		return movieImportedMsg{movie: movie, err: err}
	}
}

// fetchScheduleCmd issues the filtered show query for the current movie,
// date, and city. The sequence number lets Update discard answers that a
// newer filter change has already superseded.
func (m *appModel) fetchScheduleCmd() tea.Cmd {
	m.scheduleSeq++
	seq := m.scheduleSeq
	client := m.client
	filter := service.ShowFilter{
		MovieId: m.selectedMovie.Id,
		City:    m.city,
		Date:    m.date,
	}
	return func() tea.Msg {
		shows, err := client.GetFilteredShows(context.Background(), filter)
		return scheduleMsg{seq: seq, shows: shows, err: err}
	}
}

func (m appModel) fetchShowSeatsCmd(showId int64) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		seats, err := client.GetShowSeats(context.Background(), showId)
		return showSeatsMsg{seats: seats, err: err}
	}
}

func (m appModel) createBookingCmd() tea.Cmd {
	client := m.client
	req := service.BookingRequest{
		ShowId:      m.selectedShow.Id,
		ShowSeatIds: m.selection.Ids(),
	}
	return func() tea.Msg {
		pending, err := client.CreateBooking(context.Background(), req)
		return bookingCreatedMsg{pending: pending, err: err}
	}
}

func (m appModel) openCheckoutCmd() tea.Cmd {
	client := m.client
	pending := m.pending
	return func() tea.Msg {
		url, err := client.CheckoutURL(pending)
		if err != nil {
			return checkoutOpenedMsg{err: err}
		}
		return checkoutOpenedMsg{err: openURL(url)}
	}
}

func (m appModel) confirmBookingCmd() tea.Cmd {
	client := m.client
	id := m.pending.Id
	return func() tea.Msg {
		booking, err := client.ConfirmBooking(context.Background(), id)
		return bookingConfirmedMsg{booking: booking, err: err}
	}
}

func (m appModel) fetchMyBookingsCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		bookings, err := client.GetMyBookings(context.Background())
		return myBookingsMsg{bookings: bookings, err: err}
	}
}

func (m appModel) fetchScreensCmd(theaterId int64) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		screens, err := client.GetScreensByTheater(context.Background(), theaterId)
		return screensMsg{screens: screens, err: err}
	}
}

func (m appModel) fetchScreenSeatsCmd(screenId int64) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		seats, err := client.GetSeatsByScreen(context.Background(), screenId)
		return screenSeatsMsg{seats: seats, err: err}
	}
}

func (m appModel) fetchAdminShowsCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		shows, err := client.GetAllShows(context.Background())
		return adminShowsMsg{shows: shows, err: err}
	}
}

func (m appModel) addTheaterCmd(req service.TheaterRequest) tea.Cmd {
	client := m.client
	refresh := m.fetchTheatersFreshCmd()
	return func() tea.Msg {
		_, err := client.AddTheater(context.Background(), req)
		if err != nil {
			return mutationMsg{err: err}
		}
		_ = store.InvalidateCatalog()
		return mutationMsg{note: "Theater added.", refresh: refresh}
	}
}

func (m appModel) updateTheaterCmd(id int64, req service.TheaterRequest) tea.Cmd {
	client := m.client
	refresh := m.fetchTheatersFreshCmd()
	return func() tea.Msg {
		_, err := client.UpdateTheater(context.Background(), id, req)
		if err != nil {
			return mutationMsg{err: err}
		}
		_ = store.InvalidateCatalog()
		return mutationMsg{note: "Theater updated.", refresh: refresh}
	}
}

func (m appModel) deleteTheaterCmd(id int64) tea.Cmd {
	client := m.client
	refresh := m.fetchTheatersFreshCmd()
	return func() tea.Msg {
		if err := client.DeleteTheater(context.Background(), id); err != nil {
			return mutationMsg{err: err}
		}
		_ = store.InvalidateCatalog()
		return mutationMsg{note: "Theater deleted.", refresh: refresh}
	}
}

func (m appModel) addScreenCmd(req service.ScreenRequest) tea.Cmd {
	client := m.client
	refresh := m.fetchScreensCmd(req.TheaterId)
	return func() tea.Msg {
		_, err := client.AddScreen(context.Background(), req)
		if err != nil {
			return mutationMsg{err: err}
		}
		return mutationMsg{note: "Screen added.", refresh: refresh}
	}
}

func (m appModel) deleteScreenCmd(screenId int64, theaterId int64) tea.Cmd {
	client := m.client
	refresh := m.fetchScreensCmd(theaterId)
	return func() tea.Msg {
		if err := client.DeleteScreen(context.Background(), screenId); err != nil {
			return mutationMsg{err: err}
		}
		return mutationMsg{note: "Screen deleted.", refresh: refresh}
	}
}

// generateSeatsCmd synthesizes the block locally and persists it as one
// atomic batch. The collision check happens before anything is sent.
func (m appModel) generateSeatsCmd(rows int, cols int, tier string) tea.Cmd {
	client := m.client
	screenId := m.adminScreen.Id
	existing := m.adminSeats
	refresh := m.fetchScreenSeatsCmd(screenId)
	return func() tea.Msg {
		batch, err := seatmap.Generate(existing, rows, cols, tier)
		if err != nil {
			return mutationMsg{err: err}
		}
		if err := client.AddSeats(context.Background(), service.SeatBatchRequest{ScreenId: screenId, Seats: batch}); err != nil {
			return mutationMsg{err: err}
		}
		return mutationMsg{note: "Seat block saved.", refresh: refresh}
	}
}

func (m appModel) clearLayoutCmd() tea.Cmd {
	client := m.client
	screenId := m.adminScreen.Id
	refresh := m.fetchScreenSeatsCmd(screenId)
	return func() tea.Msg {
		if err := client.ClearScreenLayout(context.Background(), screenId); err != nil {
			return mutationMsg{err: err}
		}
		return mutationMsg{note: "Layout cleared.", refresh: refresh}
	}
}

// refreshMoviesCmd refetches the movie catalog past the cache and rewrites it.
func (m appModel) refreshMoviesCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		movies, err := client.GetAllMovies(context.Background())
		if err == nil {
			_ = store.SaveMovieCache(movies)
		}
		return moviesMsg{movies: movies, err: err}
	}
}

func (m appModel) addMovieCmd(req service.MovieRequest) tea.Cmd {
	client := m.client
	refresh := m.refreshMoviesCmd()
	return func() tea.Msg {
		_, err := client.AddMovie(context.Background(), req)
		if err != nil {
			return mutationMsg{err: err}
		}
		_ = store.InvalidateCatalog()
		return mutationMsg{note: "Movie added.", refresh: refresh}
	}
}

func (m appModel) updateMovieCmd(id int64, req service.MovieRequest) tea.Cmd {
	client := m.client
	refresh := m.refreshMoviesCmd()
	return func() tea.Msg {
		_, err := client.UpdateMovie(context.Background(), id, req)
		if err != nil {
			return mutationMsg{err: err}
		}
		_ = store.InvalidateCatalog()
		return mutationMsg{note: "Movie updated.", refresh: refresh}
	}
}

func (m appModel) deleteMovieCmd(id int64) tea.Cmd {
	client := m.client
	refresh := m.refreshMoviesCmd()
	return func() tea.Msg {
		if err := client.DeleteMovie(context.Background(), id); err != nil {
			return mutationMsg{err: err}
		}
		_ = store.InvalidateCatalog()
		return mutationMsg{note: "Movie deleted.", refresh: refresh}
	}
}

func (m appModel) addShowCmd(req service.ShowRequest) tea.Cmd {
	client := m.client
	refresh := m.fetchAdminShowsCmd()
	return func() tea.Msg {
		_, err := client.AddShow(context.Background(), req)
		if err != nil {
			return mutationMsg{err: err}
		}
		return mutationMsg{note: "Show scheduled.", refresh: refresh}
	}
}

func (m appModel) deleteShowCmd(id int64) tea.Cmd {
	client := m.client
	refresh := m.fetchAdminShowsCmd()
	return func() tea.Msg {
		if err := client.DeleteShow(context.Background(), id); err != nil {
			return mutationMsg{err: err}
		}
		return mutationMsg{note: "Show deleted.", refresh: refresh}
	}
}
