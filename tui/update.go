package tui

import (
	"fmt"
	"slices"

	tea "github.com/charmbracelet/bubbletea"

	"showtime-tix-cli/model"
	"showtime-tix-cli/seatmap"
	"showtime-tix-cli/service"
)

// updateMessages routes every async fetch result. Returns handled=false for
// messages that belong to the focused list instead.
func (m appModel) updateMessages(msg tea.Msg) (appModel, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case sessionMsg:
		m.sessionChecked = true
		if msg.err == nil {
			m.user = msg.user
		} else if !service.IsUnauthorized(msg.err) {
			// Backend unreachable at startup still lets the catalog cache
			// render; the session stays anonymous.
			m.note = "Could not verify session: " + errorText(msg.err)
		}
		if m.state == stateCheckingSession {
			m.state = stateHome
		}
		return m, nil, true

	case loginMsg:
		if msg.err != nil {
			m.loginForm.feedback = errorText(msg.err)
			m.state = stateLogin
			return m, nil, true
		}
		m.user = msg.user
		m.loginForm = newLoginForm(false)
		m.registering = false
		m.note = "Signed in."
		return m.resumeAfterLogin()

	case registerMsg:
		if msg.err != nil {
			m.loginForm.feedback = errorText(msg.err)
			m.state = stateLogin
			return m, nil, true
		}
		m.registering = false
		m.loginForm = newLoginForm(false)
		m.loginForm.feedback = ""
		m.note = "Account created. Sign in to continue."
		m.state = stateLogin
		return m, nil, true

	case logoutMsg:
		m.user = model.User{}
		m.note = "Signed out."
		m.state = stateHome
		return m, nil, true

	case moviesMsg:
		if msg.err != nil {
			if m.isLoadingState() {
				return m, errCmd(msg.err), true
			}
			m.note = "Movie catalog unavailable: " + errorText(msg.err)
			return m, nil, true
		}
		m.movies = msg.movies
		if !m.searching {
			m.movieList.SetItems(movieItems(m.movies))
		}
		m.movieAdmin.SetItems(movieItems(m.movies))
		m, _ = m.consumeAfterLoad()
		return m, nil, true

	case searchTickMsg:
		if msg.omdb {
			if msg.seq != m.omdbSeq {
				return m, nil, true
			}
			query := m.omdbInput.Value()
			if query == "" {
				m.omdbList.SetItems(nil)
				return m, nil, true
			}
			return m, m.searchOmdbCmd(msg.seq, query), true
		}
		if msg.seq != m.searchSeq {
			return m, nil, true
		}
		query := m.searchInput.Value()
		if query == "" {
			m.searching = false
			m.movieList.SetItems(movieItems(m.movies))
			return m, nil, true
		}
		return m, m.searchMoviesCmd(msg.seq, query), true

	case searchMsg:
		if msg.seq != m.searchSeq {
			return m, nil, true
		}
		if msg.err != nil {
			m.note = "Search failed: " + errorText(msg.err)
			return m, nil, true
		}
		m.searching = true
		m.movieList.SetItems(movieItems(msg.movies))
		return m, nil, true

	case omdbMsg:
		if msg.seq != m.omdbSeq {
			return m, nil, true
		}
		if msg.err != nil {
			m.note = "External search failed: " + errorText(msg.err)
			return m, nil, true
		}
		m.omdbList.SetItems(omdbItems(msg.results))
		return m, nil, true

	case theatersMsg:
		if msg.err != nil {
			return m, errCmd(msg.err), true
		}
		m.theaters = msg.theaters
		m.theaterList.SetItems(theaterItems(m.theaters))
		m.cityList.SetItems(cityItems(m.theaters))
		switch m.pickFor {
		case pickTheaterForScreens, pickTheaterForSeats, pickTheaterForShow:
			m.pickList.Title = "Select Theater"
			m.pickList.SetItems(theaterItems(m.theaters))
		}
		m, _ = m.consumeAfterLoad()
		return m, nil, true

	case scheduleMsg:
		if msg.seq != m.scheduleSeq {
			return m, nil, true
		}
		if msg.err != nil {
			return m, errWithReturnCmd(msg.err, stateHome), true
		}
		m.schedule, m.scheduleRows = buildSchedule(msg.shows)
		m.scheduleIdx = 0
		m.state = stateSchedule
		return m, nil, true

	case showSeatsMsg:
		if msg.err != nil {
			return m, errWithReturnCmd(msg.err, stateSchedule), true
		}
		m.grid = seatmap.BuildGrid(msg.seats)
		m.selection.Clear()
		m.cursorSec, m.cursorRow, m.cursorCol = 0, 0, 0
		m.state = stateSeatMap
		return m, nil, true

	case bookingCreatedMsg:
		if msg.err != nil {
			return m, errWithReturnCmd(msg.err, stateSeatMap), true
		}
		m.pending = msg.pending
		m.payNote = ""
		m.state = statePayment
		return m, m.openCheckoutCmd(), true

	case checkoutOpenedMsg:
		if msg.err != nil {
			if url, urlErr := m.client.CheckoutURL(m.pending); urlErr == nil {
				m.payNote = "Could not open a browser. Visit: " + url
			} else {
				m.payNote = "Could not open the checkout page: " + errorText(msg.err)
			}
		}
		return m, nil, true

	case bookingConfirmedMsg:
		if msg.err != nil {
			return m, errWithReturnCmd(msg.err, statePayment), true
		}
		m.receipt = msg.booking
		m.selection.Clear()
		m.state = stateReceipt
		return m, nil, true

	case myBookingsMsg:
		if msg.err != nil {
			return m, errWithReturnCmd(msg.err, stateHome), true
		}
		m.bookingsList.SetItems(bookingItems(msg.bookings))
		m.state = stateMyBookings
		return m, nil, true

	case screensMsg:
		if msg.err != nil {
			return m, errWithReturnCmd(msg.err, stateAdminMenu), true
		}
		m.adminScreens = msg.screens
		switch m.pickFor {
		case pickScreenForSeats, pickScreenForShow:
			m.pickList.Title = "Select Screen"
			m.pickList.SetItems(screenItems(m.adminScreens))
			m.state = statePick
		default:
			m.screenList.Title = "Screens • " + m.adminTheater.Name
			m.screenList.SetItems(screenItems(m.adminScreens))
			m.state = stateAdminScreens
		}
		return m, nil, true

	case screenSeatsMsg:
		if msg.err != nil {
			return m, errWithReturnCmd(msg.err, stateAdminMenu), true
		}
		m.adminSeats = msg.seats
		seatmap.SortSeats(m.adminSeats)
		m.state = stateAdminSeats
		return m, nil, true

	case adminShowsMsg:
		if msg.err != nil {
			return m, errWithReturnCmd(msg.err, stateAdminMenu), true
		}
		shows := msg.shows
		slices.SortFunc(shows, func(a, b model.Show) int {
			return a.StartTime.Compare(b.StartTime)
		})
		m.showAdmin.SetItems(showItems(shows))
		m.state = stateAdminShows
		return m, nil, true

	case movieImportedMsg:
		if msg.err != nil {
			return m, errWithReturnCmd(msg.err, stateOmdbSearch), true
		}
		m.note = "Imported " + msg.movie.Title + "."
		m.afterLoad = stateAdminMovies
		m.afterLoadSet = true
		m.enterLoading("Refreshing catalog")
		return m, m.fetchCatalogCmd(), true

	case mutationMsg:
		if msg.err != nil {
			return m, errCmd(msg.err), true
		}
		m.note = msg.note
		if msg.refresh != nil {
			m.enterLoading("Refreshing")
			return m, msg.refresh, true
		}
		return m, nil, true
	}

	return m, nil, false
}

// consumeAfterLoad lands on the deferred target once its data has arrived.
func (m appModel) consumeAfterLoad() (appModel, bool) {
	if !m.afterLoadSet || m.state != stateLoading {
		return m, false
	}
	m.state = m.afterLoad
	m.afterLoadSet = false
	return m, true
}

// resumeAfterLogin returns to the flow the session gate interrupted.
func (m appModel) resumeAfterLogin() (appModel, tea.Cmd, bool) {
	target := stateHome
	if m.authTargetSet {
		target = m.authTarget
		m.authTargetSet = false
	}
	switch target {
	case stateMyBookings:
		m.enterLoading("Loading bookings")
		return m, m.fetchMyBookingsCmd(), true
	case stateSeatMap:
		// The customer was mid-checkout; picking up where they left off
		// means submitting the booking they already composed.
		if m.selection.Count() > 0 {
			m.enterLoading("Creating booking")
			return m, m.createBookingCmd(), true
		}
		m.state = stateSeatMap
		return m, nil, true
	case statePayment:
		// The booking was created before the session lapsed; put the
		// customer back on the payment view to confirm it.
		if m.pending.Id != 0 {
			m.payNote = fmt.Sprintf("Booking #%d is still reserved. Press enter to confirm.", m.pending.Id)
			m.state = statePayment
			return m, nil, true
		}
		m.state = stateHome
		return m, nil, true
	case stateAdminMenu:
		if !m.user.IsAdmin() {
			m.note = "Admin access required."
			m.state = stateHome
			return m, nil, true
		}
		m.adminMenu.SetItems(adminMenuItems())
		m.state = stateAdminMenu
		return m, nil, true
	default:
		// With no interrupted flow, admins land on the back office.
		if m.user.IsAdmin() {
			m.adminMenu.SetItems(adminMenuItems())
			m.state = stateAdminMenu
			return m, nil, true
		}
		m.state = stateHome
		return m, nil, true
	}
}
