package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"showtime-tix-cli/config"
	"showtime-tix-cli/model"
	"showtime-tix-cli/seatmap"
	"showtime-tix-cli/service"
)

type testItem struct {
	value string
}

func (t testItem) Title() string       { return t.value }
func (t testItem) Description() string { return "" }
func (t testItem) FilterValue() string { return strings.ToLower(t.value) }

func newTestModel() appModel {
	cfg := config.Config{APIBaseURL: "http://example.invalid"}
	client := service.NewClient(nil, cfg.APIBaseURL)
	return New(cfg, client).(appModel)
}

func newFilterModel(items []list.Item) *appModel {
	m := newTestModel()
	m.state = stateSelectCity
	m.cityList.SetItems(items)
	return &m
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func date(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, time.UTC)
}

func TestHandleFilterInput_AppendsRunes(t *testing.T) {
	m := newFilterModel([]list.Item{
		testItem{value: "Mumbai"},
		testItem{value: "Pune"},
	})

	if !m.handleFilterInput(keyRunes("m")) {
		t.Fatal("expected filter input to be handled")
	}
	if got := m.cityList.FilterValue(); got != "m" {
		t.Fatalf("expected filter value %q, got %q", "m", got)
	}

	if !m.handleFilterInput(keyRunes("u")) {
		t.Fatal("expected filter input to be handled")
	}
	if got := m.cityList.FilterValue(); got != "mu" {
		t.Fatalf("expected filter value %q, got %q", "mu", got)
	}
}

func TestHandleFilterInput_Backspace(t *testing.T) {
	m := newFilterModel([]list.Item{testItem{value: "Mumbai"}})

	m.handleFilterInput(keyRunes("m"))
	m.handleFilterInput(keyRunes("u"))

	if !m.handleFilterInput(tea.KeyMsg{Type: tea.KeyBackspace}) {
		t.Fatal("expected backspace to be handled")
	}
	if got := m.cityList.FilterValue(); got != "m" {
		t.Fatalf("expected filter value %q, got %q", "m", got)
	}

	m.handleFilterInput(tea.KeyMsg{Type: tea.KeyBackspace})
	if m.handleFilterInput(tea.KeyMsg{Type: tea.KeyBackspace}) {
		t.Fatal("expected backspace on an empty filter to fall through")
	}
}

func TestScheduleMsg_StaleSequenceDiscarded(t *testing.T) {
	m := newTestModel()
	m.state = stateLoading
	m.scheduleSeq = 2

	stale := scheduleMsg{seq: 1, shows: []model.Show{{Id: 99, TheaterName: "Old"}}}
	next, _, handled := m.updateMessages(stale)
	if !handled {
		t.Fatal("expected the message to be consumed")
	}
	if next.state != stateLoading || len(next.schedule) != 0 {
		t.Fatalf("expected a stale response to change nothing, got state=%d schedule=%v", next.state, next.schedule)
	}

	current := scheduleMsg{seq: 2, shows: []model.Show{{Id: 1, TheaterName: "Galaxy"}}}
	next, _, _ = next.updateMessages(current)
	if next.state != stateSchedule {
		t.Fatalf("expected the current response to land, got state=%d", next.state)
	}
	if len(next.scheduleRows) != 1 || next.scheduleRows[0].Id != 1 {
		t.Fatalf("unexpected schedule rows: %+v", next.scheduleRows)
	}
}

func TestSearchTick_StaleSequenceFiresNothing(t *testing.T) {
	m := newTestModel()
	m.searchSeq = 5

	_, cmd, handled := m.updateMessages(searchTickMsg{seq: 4})
	if !handled {
		t.Fatal("expected the tick to be consumed")
	}
	if cmd != nil {
		t.Fatal("expected a superseded tick to fire no search")
	}
}

func TestSearchTick_EmptyQueryRestoresCatalog(t *testing.T) {
	m := newTestModel()
	m.movies = []model.Movie{{Id: 1, Title: "Dune"}}
	m.searching = true
	m.searchSeq = 3
	m.searchInput.SetValue("")

	next, cmd, _ := m.updateMessages(searchTickMsg{seq: 3})
	if cmd != nil {
		t.Fatal("expected no remote search for an empty query")
	}
	if next.searching {
		t.Fatal("expected search mode to end")
	}
	if len(next.movieList.Items()) != 1 {
		t.Fatalf("expected the catalog back in the list, got %d items", len(next.movieList.Items()))
	}
}

func TestSearchMsg_StaleResultsDiscarded(t *testing.T) {
	m := newTestModel()
	m.searchSeq = 7
	m.movieList.SetItems(movieItems([]model.Movie{{Id: 1, Title: "Current"}}))

	next, _, _ := m.updateMessages(searchMsg{seq: 6, movies: []model.Movie{{Id: 2, Title: "Stale"}}})
	items := next.movieList.Items()
	if len(items) != 1 || items[0].(movieItem).movie.Title != "Current" {
		t.Fatalf("expected stale search results to be dropped, got %+v", items)
	}
}

func TestBookingsShortcut_AnonymousGoesToLogin(t *testing.T) {
	m := newTestModel()
	m.state = stateHome
	m.sessionChecked = true

	next, _, handled := m.handleStorefrontKey(keyRunes("b"))
	if !handled {
		t.Fatal("expected the shortcut to be handled")
	}
	if next.state != stateLogin {
		t.Fatalf("expected the login gate, got state=%d", next.state)
	}
	if !next.authTargetSet || next.authTarget != stateMyBookings {
		t.Fatal("expected the interrupted destination to be remembered")
	}
}

func TestBookingsShortcut_PendingSessionCheckWaits(t *testing.T) {
	m := newTestModel()
	m.state = stateHome
	m.sessionChecked = false

	next, _, _ := m.handleStorefrontKey(keyRunes("b"))
	if next.state != stateHome {
		t.Fatalf("expected no redirect while the identity probe is pending, got state=%d", next.state)
	}
}

func TestBackOffice_NonAdminDenied(t *testing.T) {
	m := newTestModel()
	m.state = stateHome
	m.sessionChecked = true
	m.user = model.User{Id: 1, Email: "jane@example.com", Roles: model.RoleSet{"ROLE_USER"}}

	next, _, _ := m.gotoBackOffice()
	if next.state != stateHome {
		t.Fatalf("expected a non-admin to stay on the storefront, got state=%d", next.state)
	}
	if next.note == "" {
		t.Fatal("expected an access note")
	}
}

func TestSeatMap_SpaceTogglesOnlyAvailableSeats(t *testing.T) {
	m := newTestModel()
	m.state = stateSeatMap
	m.grid = seatmap.BuildGrid([]model.ShowSeat{
		{Id: 1, SeatNumber: "A1", SeatType: model.TierRegular, Price: 150, Status: model.SeatAvailable},
		{Id: 2, SeatNumber: "A2", SeatType: model.TierRegular, Price: 150, Status: model.SeatBooked},
	})

	next, _, _ := m.handleStorefrontKey(tea.KeyMsg{Type: tea.KeySpace})
	if next.selection.Count() != 1 || !next.selection.Contains(1) {
		t.Fatalf("expected A1 to be selected, got %v", next.selection.Labels())
	}

	// Move onto the booked seat; toggling must refuse.
	next.cursorCol = 1
	next, _, _ = next.handleStorefrontKey(tea.KeyMsg{Type: tea.KeySpace})
	if next.selection.Contains(2) {
		t.Fatal("expected the booked seat to stay unselected")
	}
	if next.note == "" {
		t.Fatal("expected feedback about the unavailable seat")
	}
}

func TestSeatMap_EnterWithEmptySelectionBlocked(t *testing.T) {
	m := newTestModel()
	m.state = stateSeatMap
	m.sessionChecked = true
	m.user = model.User{Id: 1, Email: "jane@example.com"}

	next, cmd, _ := m.handleStorefrontKey(tea.KeyMsg{Type: tea.KeyEnter})
	if next.state != stateSeatMap || cmd != nil {
		t.Fatal("expected an empty selection to stay on the seat map")
	}
	if next.note == "" {
		t.Fatal("expected a prompt to select seats first")
	}
}

func TestBuildSchedule_GroupsByTheaterInTimeOrder(t *testing.T) {
	shows := []model.Show{
		{Id: 3, TheaterName: "Galaxy", StartTime: date(2026, 1, 22, 21, 0)},
		{Id: 1, TheaterName: "Apollo", StartTime: date(2026, 1, 22, 19, 0)},
		{Id: 2, TheaterName: "Galaxy", StartTime: date(2026, 1, 22, 18, 0)},
	}

	groups, rows := buildSchedule(shows)
	if len(groups) != 2 {
		t.Fatalf("expected 2 theater groups, got %d", len(groups))
	}
	if groups[0].TheaterName != "Apollo" || groups[1].TheaterName != "Galaxy" {
		t.Fatalf("unexpected group order: %s, %s", groups[0].TheaterName, groups[1].TheaterName)
	}
	if len(groups[1].Shows) != 2 || groups[1].Shows[0].Id != 2 {
		t.Fatalf("expected Galaxy slots in start-time order, got %+v", groups[1].Shows)
	}
	if len(rows) != 3 || rows[0].Id != 1 {
		t.Fatalf("expected the flat rows to mirror render order, got %+v", rows)
	}
}

func TestAdminMovies_AddAndEditOpenTheForm(t *testing.T) {
	m := newTestModel()
	m.state = stateAdminMovies
	m.movieAdmin.SetItems(movieItems([]model.Movie{
		{Id: 4, Title: "Dune", Genre: "Sci-Fi"},
	}))

	next, _, handled := m.handleAdminKey(keyRunes("a"))
	if !handled || next.state != stateMovieForm {
		t.Fatalf("expected the movie form, got state=%d", next.state)
	}
	if next.editingMovie != 0 {
		t.Fatalf("expected a blank form for add, got editing id %d", next.editingMovie)
	}

	next, _, _ = m.handleAdminKey(keyRunes("e"))
	if next.state != stateMovieForm || next.editingMovie != 4 {
		t.Fatalf("expected to edit movie 4, got state=%d editing=%d", next.state, next.editingMovie)
	}
	if got := next.movieForm.value(0); got != "Dune" {
		t.Fatalf("expected the form prefilled with the title, got %q", got)
	}
}

func TestSubmitMovieForm_RequiresTitle(t *testing.T) {
	m := newTestModel()
	m.movieForm = newMovieForm(model.Movie{})

	next, cmd := m.submitMovieForm()
	if cmd != nil {
		t.Fatal("expected no command for an empty title")
	}
	if next.movieForm.feedback == "" {
		t.Fatal("expected inline feedback about the missing title")
	}

	next.movieForm.fields[0].input.SetValue("Arrival")
	next, cmd = next.submitMovieForm()
	if cmd == nil {
		t.Fatal("expected a save command once the title is set")
	}
	if next.state != stateLoading {
		t.Fatalf("expected the loading state, got %d", next.state)
	}
	if !next.afterLoadSet || next.afterLoad != stateAdminMovies {
		t.Fatal("expected the refresh to land back on the movie catalog")
	}
}

func TestSubmitShowForm_RejectsOutOfWindowAndBadOrder(t *testing.T) {
	m := newTestModel()
	m.cfg.WindowOpen = date(2026, 1, 20, 0, 0)
	m.cfg.WindowClose = date(2026, 1, 26, 23, 59)
	m.showForm = newShowForm()
	m.showForm.fields[0].input.SetValue("2026-03-01 19:00")
	m.showForm.fields[1].input.SetValue("2026-03-01 21:30")
	m.showForm.fields[2].input.SetValue("150")
	m.showForm.fields[3].input.SetValue("200")
	m.showForm.fields[4].input.SetValue("300")

	next, cmd := m.submitShowForm()
	if cmd != nil {
		t.Fatal("expected no command for an out-of-window show")
	}
	if !strings.Contains(next.showForm.feedback, "booking window") {
		t.Fatalf("expected the window bounds in the feedback, got %q", next.showForm.feedback)
	}

	// End before start is rejected before the window check matters.
	m.showForm.fields[0].input.SetValue("2026-01-21 21:00")
	m.showForm.fields[1].input.SetValue("2026-01-21 19:00")
	next, cmd = m.submitShowForm()
	if cmd != nil {
		t.Fatal("expected no command when the end precedes the start")
	}
	if !strings.Contains(next.showForm.feedback, "after the start") {
		t.Fatalf("expected end-after-start feedback, got %q", next.showForm.feedback)
	}
}

func TestScheduleDateStrip_ClosedWindowOffersNothing(t *testing.T) {
	m := newTestModel()
	m.cfg.WindowOpen = date(2020, 1, 1, 0, 0)
	m.cfg.WindowClose = date(2020, 1, 7, 23, 59)
	m.state = stateSchedule

	if items := m.scheduleDateItems(); len(items) != 0 {
		t.Fatalf("expected no dates once the window has closed, got %d", len(items))
	}

	next, _, handled := m.handleStorefrontKey(keyRunes("d"))
	if !handled {
		t.Fatal("expected the key to be handled")
	}
	if next.state != stateSchedule {
		t.Fatalf("expected to stay on the schedule, got state=%d", next.state)
	}
	if next.note == "" {
		t.Fatal("expected a closed-window note")
	}
}

func TestResumeAfterLogin_PaymentKeepsPendingBooking(t *testing.T) {
	m := newTestModel()
	m.user = model.User{Id: 1, Email: "jane@example.com"}
	m.pending = model.PendingBooking{Id: 42, TotalAmount: 400}
	m.authTarget = statePayment
	m.authTargetSet = true

	next, _, _ := m.resumeAfterLogin()
	if next.state != statePayment {
		t.Fatalf("expected the payment view back, got state=%d", next.state)
	}
	if !strings.Contains(next.payNote, "42") {
		t.Fatalf("expected the booking id in the note, got %q", next.payNote)
	}
}

func TestErrMsg_ExpiredSessionRedirectsToLogin(t *testing.T) {
	m := newTestModel()
	m.state = stateLoading
	m.user = model.User{Id: 1, Email: "jane@example.com"}

	expired := &service.APIError{StatusCode: 401, Status: "401 Unauthorized", Endpoint: "/booking/mybookings"}
	next, _ := m.Update(errMsg{err: expired, returnState: stateMyBookings, returnStateSet: true})
	got := next.(appModel)
	if got.state != stateLogin {
		t.Fatalf("expected the login gate, got state=%d", got.state)
	}
	if got.user.Authenticated() {
		t.Fatal("expected the stale session snapshot to be cleared")
	}
	if !got.authTargetSet || got.authTarget != stateMyBookings {
		t.Fatal("expected the interrupted destination to be remembered")
	}
}

func TestErrMsg_ForbiddenReturnsHome(t *testing.T) {
	m := newTestModel()
	m.state = stateLoading
	m.user = model.User{Id: 1, Email: "jane@example.com", Roles: model.RoleSet{"ROLE_USER"}}

	denied := &service.APIError{StatusCode: 403, Status: "403 Forbidden", Endpoint: "/theaters"}
	next, _ := m.Update(errMsg{err: denied})
	got := next.(appModel)
	if got.state != stateHome {
		t.Fatalf("expected the storefront, got state=%d", got.state)
	}
	if got.note == "" {
		t.Fatal("expected an access note")
	}
}

func TestResumeAfterLogin_AdminTargetChecksRole(t *testing.T) {
	m := newTestModel()
	m.user = model.User{Id: 1, Email: "jane@example.com", Roles: model.RoleSet{"ROLE_USER"}}
	m.authTarget = stateAdminMenu
	m.authTargetSet = true

	next, _, _ := m.resumeAfterLogin()
	if next.state != stateHome {
		t.Fatalf("expected a non-admin to land on the storefront, got state=%d", next.state)
	}

	m.user = model.User{Id: 2, Email: "root@example.com", Roles: model.RoleSet{"ROLE_ADMIN"}}
	m.authTargetSet = true
	next, _, _ = m.resumeAfterLogin()
	if next.state != stateAdminMenu {
		t.Fatalf("expected an admin to reach the back office, got state=%d", next.state)
	}
}
