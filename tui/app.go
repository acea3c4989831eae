// Package tui is the terminal surface: the customer storefront and the
// administrative back office, one bubbletea state machine over the booking
// API client.
package tui

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"showtime-tix-cli/config"
	"showtime-tix-cli/model"
	"showtime-tix-cli/seatmap"
	"showtime-tix-cli/service"
)

type appState int

const (
	stateCheckingSession appState = iota
	stateLoading
	stateHome
	stateSchedule
	stateSelectDate
	stateSelectCity
	stateSeatMap
	statePayment
	stateReceipt
	stateMyBookings
	stateLogin
	stateAdminMenu
	stateAdminTheaters
	stateTheaterForm
	stateAdminScreens
	stateScreenForm
	stateAdminSeats
	stateAdminMovies
	stateMovieForm
	stateOmdbSearch
	stateAdminShows
	stateShowForm
	statePick
	stateConfirm
	stateError
)

// pickPurpose tags what the generic picker list is choosing.
type pickPurpose int

const (
	pickNothing pickPurpose = iota
	pickTheaterForScreens
	pickTheaterForSeats
	pickScreenForSeats
	pickMovieForShow
	pickTheaterForShow
	pickScreenForShow
)

const searchDebounce = 300 * time.Millisecond

type appModel struct {
	cfg    config.Config
	client *service.Client

	state        appState
	lastState    appState
	err          error
	loadingTitle string

	width  int
	height int

	// Session snapshot. sessionChecked stays false until the startup
	// identity probe answers; protected views render a neutral loading
	// state instead of redirecting while it is pending.
	user           model.User
	sessionChecked bool
	authTarget     appState
	authTargetSet  bool

	// Catalog copies, refreshed through the store cache.
	movies   []model.Movie
	theaters []model.Theater

	movieList    list.Model
	bookingsList list.Model
	adminMenu    list.Model
	theaterList  list.Model
	screenList   list.Model
	movieAdmin   list.Model
	omdbList     list.Model
	showAdmin    list.Model
	pickList     list.Model
	dateList     list.Model
	cityList     list.Model

	pickFor pickPurpose

	// Where to land once an ambiguous fetch answers; several flows share
	// the theater and movie fetches but continue differently.
	afterLoad    appState
	afterLoadSet bool

	// One-line status and payment notes shown under the header.
	note    string
	payNote string

	editingTheater int64
	editingMovie   int64

	spinner spinner.Model

	// Debounced remote search (storefront + metadata import share the
	// sequence-guard mechanics, not the sequence).
	searchInput textinput.Model
	searchSeq   int
	searching   bool
	omdbInput   textinput.Model
	omdbSeq     int

	// Schedule browser inputs and its derived-query sequence.
	selectedMovie model.Movie
	date          time.Time
	city          string
	scheduleSeq   int
	schedule      []scheduleGroup
	scheduleRows  []model.Show
	scheduleIdx   int

	// Seat picker.
	selectedShow model.Show
	grid         seatmap.Grid
	selection    *seatmap.Selection
	cursorSec    int
	cursorRow    int
	cursorCol    int

	pending model.PendingBooking
	receipt model.Booking

	// Back office working set.
	adminTheater model.Theater
	adminScreen  model.Screen
	adminScreens []model.Screen
	adminSeats   []model.Seat
	theaterForm  formModel
	movieForm    formModel
	screenForm   formModel
	architect    formModel
	showForm     formModel
	showMovie    model.Movie
	showScreen   model.Screen
	loginForm    formModel
	registering  bool

	confirmPrompt string
	confirmAction tea.Cmd
	confirmReturn appState
}

// New builds the application model. The client's cookie jar carries the
// server session for the whole run.
func New(cfg config.Config, client *service.Client) tea.Model {
	m := appModel{
		cfg:       cfg,
		client:    client,
		state:     stateCheckingSession,
		date:      truncateDate(time.Now()),
		city:      cfg.DefaultCity,
		selection: seatmap.NewSelection(),
	}

	m.movieList = newList("Now Showing")
	m.bookingsList = newList("My Bookings")
	m.adminMenu = newList("Back Office")
	m.theaterList = newList("Theaters")
	m.screenList = newList("Screens")
	m.movieAdmin = newList("Movie Catalog")
	m.omdbList = newList("Import Results")
	m.showAdmin = newList("Scheduled Shows")
	m.pickList = newList("Select")
	m.dateList = newList("Select Date")
	m.cityList = newList("Select City")
	m.adminMenu.SetFilteringEnabled(false)
	m.dateList.SetFilteringEnabled(false)

	m.searchInput = textinput.New()
	m.searchInput.Placeholder = "Search for movies..."
	m.searchInput.CharLimit = 64
	m.omdbInput = textinput.New()
	m.omdbInput.Placeholder = "Search external catalog..."
	m.omdbInput.CharLimit = 64

	m.loginForm = newLoginForm(false)
	m.theaterForm = newTheaterForm(model.Theater{})
	m.movieForm = newMovieForm(model.Movie{})
	m.screenForm = newScreenForm()
	m.architect = newArchitectForm()
	m.showForm = newShowForm()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	m.spinner = sp

	return m
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.checkSessionCmd(), m.fetchCatalogCmd(), m.spinner.Tick)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLists()
		return m, nil

	case tea.KeyMsg:
		if m.textEntryActive() {
			return m.updateActiveInput(msg)
		}
		if m.handleFilterInput(msg) {
			return m, nil
		}
		var handled bool
		var cmd tea.Cmd
		m, cmd, handled = m.handleKey(msg)
		if handled {
			return m, cmd
		}

	case spinner.TickMsg:
		// The tick chain keeps running so re-entering a loading state never
		// shows a frozen spinner.
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case errMsg:
		if service.IsUnauthorized(msg.err) {
			// The session expired mid-flow; sign in again and resume.
			m.user = model.User{}
			if msg.returnStateSet {
				m.authTarget = msg.returnState
				m.authTargetSet = true
			}
			m.loginForm = newLoginForm(false)
			m.loginForm.feedback = "Your session has expired. Sign in again."
			m.state = stateLogin
			return m, nil
		}
		if service.IsForbidden(msg.err) {
			m.note = "You don't have permission for that."
			m.state = stateHome
			return m, nil
		}
		m.err = msg.err
		if msg.returnStateSet {
			m.lastState = msg.returnState
		} else {
			m.lastState = recoverStateFrom(m.state)
		}
		m.state = stateError
		return m, nil
	}

	if model, cmd, handled := m.updateMessages(msg); handled {
		return model, cmd
	}

	var cmd tea.Cmd
	switch m.state {
	case stateHome:
		m.movieList, cmd = m.movieList.Update(msg)
	case stateMyBookings:
		m.bookingsList, cmd = m.bookingsList.Update(msg)
	case stateAdminMenu:
		m.adminMenu, cmd = m.adminMenu.Update(msg)
	case stateAdminTheaters:
		m.theaterList, cmd = m.theaterList.Update(msg)
	case stateAdminScreens:
		m.screenList, cmd = m.screenList.Update(msg)
	case stateAdminMovies:
		m.movieAdmin, cmd = m.movieAdmin.Update(msg)
	case stateOmdbSearch:
		m.omdbList, cmd = m.omdbList.Update(msg)
	case stateAdminShows:
		m.showAdmin, cmd = m.showAdmin.Update(msg)
	case statePick:
		m.pickList, cmd = m.pickList.Update(msg)
	case stateSelectDate:
		m.dateList, cmd = m.dateList.Update(msg)
	case stateSelectCity:
		m.cityList, cmd = m.cityList.Update(msg)
	}
	return m, cmd
}

func (m appModel) View() string {
	header := m.headerView()
	switch m.state {
	case stateCheckingSession, stateLoading:
		return header + "\n\n" + m.loadingView()
	case stateHome:
		return header + "\n\n" + m.homeView()
	case stateSchedule:
		return header + "\n\n" + m.scheduleView()
	case stateSelectDate:
		return header + "\n\n" + m.dateList.View()
	case stateSelectCity:
		return header + "\n\n" + m.cityList.View()
	case stateSeatMap:
		return header + "\n\n" + m.seatMapView()
	case statePayment:
		return header + "\n\n" + m.paymentView()
	case stateReceipt:
		return header + "\n\n" + m.receiptView()
	case stateMyBookings:
		return header + "\n\n" + m.bookingsList.View()
	case stateLogin:
		return header + "\n\n" + m.loginView()
	case stateAdminMenu:
		return header + "\n\n" + m.adminMenu.View()
	case stateAdminTheaters:
		return header + "\n\n" + m.theaterList.View()
	case stateTheaterForm:
		return header + "\n\n" + m.theaterForm.View()
	case stateAdminScreens:
		return header + "\n\n" + m.screenList.View()
	case stateScreenForm:
		return header + "\n\n" + m.screenForm.View()
	case stateAdminSeats:
		return header + "\n\n" + m.architectView()
	case stateAdminMovies:
		return header + "\n\n" + m.movieAdmin.View()
	case stateMovieForm:
		return header + "\n\n" + m.movieForm.View()
	case stateOmdbSearch:
		return header + "\n\n" + m.omdbSearchView()
	case stateAdminShows:
		return header + "\n\n" + m.showAdmin.View()
	case stateShowForm:
		return header + "\n\n" + m.showFormView()
	case statePick:
		return header + "\n\n" + m.pickList.View()
	case stateConfirm:
		return header + "\n\n" + m.confirmView()
	case stateError:
		return header + "\n\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Render(errorText(m.err)) + "\n\n" + hint("Press esc to go back or ctrl+c to quit.")
	default:
		return header
	}
}

func (m appModel) headerView() string {
	title := lipgloss.NewStyle().Bold(true).Render("Showtime Tix")
	sub := []string{}
	if m.user.Authenticated() {
		who := m.user.Name
		if who == "" {
			who = m.user.Email
		}
		if m.user.IsAdmin() {
			who += " (admin)"
		}
		sub = append(sub, "Signed in: "+who)
	}
	if m.selectedMovie.Title != "" && (m.state == stateSchedule || m.state == stateSelectDate || m.state == stateSelectCity || m.state == stateSeatMap) {
		sub = append(sub, "Movie: "+m.selectedMovie.Title)
	}
	if m.state == stateSchedule || m.state == stateSelectDate || m.state == stateSelectCity {
		sub = append(sub, "Date: "+m.date.Format(time.DateOnly))
		city := m.city
		if city == "" {
			city = "All cities"
		}
		sub = append(sub, "City: "+city)
	}
	if m.state == stateSeatMap && m.selectedShow.Id != 0 {
		sub = append(sub, fmt.Sprintf("Show: %s • %s", m.selectedShow.StartTime.Format("15:04"), m.selectedShow.TheaterName))
	}
	meta := strings.Join(sub, " • ")
	if meta != "" {
		meta = "\n" + lipgloss.NewStyle().Faint(true).Render(meta)
	}
	filterLine := ""
	if listPtr := m.activeList(); listPtr != nil {
		if filter := listPtr.FilterValue(); filter != "" {
			filterLine = "\n" + hint(fmt.Sprintf("Filter: %s", filter))
		}
	}
	noteLine := ""
	if m.note != "" {
		noteLine = "\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Render(m.note)
	}
	return title + meta + filterLine + noteLine + "\n" + hint(m.keyHints())
}

func (m appModel) keyHints() string {
	switch m.state {
	case stateHome:
		base := "ctrl+c quit • enter show times • / search • b my bookings"
		if m.user.IsAdmin() {
			base += " • ctrl+a back office"
		}
		if m.user.Authenticated() {
			return base + " • ctrl+x sign out"
		}
		return base + " • l sign in"
	case stateSchedule:
		return "esc back • up/down pick slot • enter select seats • d date • c city"
	case stateSeatMap:
		return "esc back • arrows move • space toggle seat • enter proceed to pay"
	case statePayment:
		return "o reopen checkout • enter i have paid, confirm • esc cancel"
	case stateReceipt:
		return "b my bookings • esc back to browsing"
	case stateLogin:
		if m.registering {
			return "tab next field • enter create account • ctrl+r back to sign in • esc cancel"
		}
		return "tab next field • enter sign in • ctrl+r register • esc cancel"
	case stateAdminTheaters:
		return "a add • e edit • d delete • esc back"
	case stateAdminScreens:
		return "a add • d delete • esc back"
	case stateAdminSeats:
		return "tab next field • enter generate & save • ctrl+x clear layout • esc back"
	case stateAdminMovies:
		return "a add • e edit • s external search • d delete • esc back"
	case stateOmdbSearch:
		return "type to search • enter import selected • esc back"
	case stateAdminShows:
		return "a schedule show • d delete • esc back"
	case stateShowForm:
		return "tab next field • enter commit to schedule • esc cancel"
	case stateConfirm:
		return "y confirm • n/esc cancel"
	default:
		return "ctrl+c quit • esc back • type to filter"
	}
}

func (m appModel) loadingView() string {
	title := m.loadingTitle
	if m.state == stateCheckingSession {
		title = "Checking session"
	}
	if title == "" {
		title = "Loading"
	}
	return fmt.Sprintf("%s %s\n\n%s", m.spinner.View(), title, hint("Fetching data..."))
}

func (m appModel) confirmView() string {
	warn := lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	return warn.Render(m.confirmPrompt) + "\n\n" + hint("Press y to confirm, n to cancel.")
}

// textEntryActive reports whether key strokes belong to a focused text
// input rather than to list filtering or shortcuts.
func (m appModel) textEntryActive() bool {
	switch m.state {
	case stateLogin, stateTheaterForm, stateScreenForm, stateAdminSeats, stateMovieForm, stateShowForm, stateOmdbSearch:
		return true
	case stateHome:
		return m.searchInput.Focused()
	default:
		return false
	}
}

func (m appModel) handleKey(msg tea.KeyMsg) (appModel, tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit, true
	case "esc":
		if listPtr := m.activeList(); listPtr != nil {
			if listPtr.SettingFilter() || listPtr.IsFiltered() {
				listPtr.ResetFilter()
				return m, nil, true
			}
		}
		next, cmd := m.goBack()
		return next, cmd, true
	}

	if m.state == stateConfirm {
		switch msg.String() {
		case "y", "Y":
			action := m.confirmAction
			m.confirmAction = nil
			m.enterLoading("Working")
			return m, action, true
		case "n", "N":
			m.state = m.confirmReturn
			return m, nil, true
		}
		return m, nil, true
	}

	if next, cmd, handled := m.handleStorefrontKey(msg); handled {
		return next, cmd, true
	}
	if next, cmd, handled := m.handleAdminKey(msg); handled {
		return next, cmd, true
	}
	return m, nil, false
}

func (m appModel) goBack() (appModel, tea.Cmd) {
	switch m.state {
	case stateSchedule:
		m.state = stateHome
	case stateSelectDate, stateSelectCity:
		m.state = stateSchedule
	case stateSeatMap:
		m.selection.Clear()
		m.state = stateSchedule
		cmd := m.fetchScheduleCmd()
		return m, cmd
	case statePayment:
		// The pending booking stays PENDING server-side; the selection is
		// kept so the customer can retry.
		m.state = stateSeatMap
	case stateReceipt, stateMyBookings, stateAdminMenu:
		m.state = stateHome
	case stateLogin:
		m.loginForm = newLoginForm(false)
		m.registering = false
		m.state = stateHome
	case stateAdminTheaters, stateAdminScreens, stateAdminSeats, stateAdminMovies, stateAdminShows:
		m.state = stateAdminMenu
	case stateTheaterForm:
		m.state = stateAdminTheaters
	case stateScreenForm:
		m.state = stateAdminScreens
	case stateMovieForm, stateOmdbSearch:
		m.state = stateAdminMovies
	case stateShowForm:
		m.state = stateAdminShows
	case statePick:
		m.state = m.pickReturnState()
	case stateConfirm:
		m.state = m.confirmReturn
	case stateError:
		m.state = m.lastState
	default:
		return m, nil
	}
	return m, nil
}

func (m appModel) pickReturnState() appState {
	switch m.pickFor {
	case pickTheaterForScreens:
		return stateAdminMenu
	case pickTheaterForSeats, pickScreenForSeats:
		return stateAdminMenu
	case pickMovieForShow, pickTheaterForShow, pickScreenForShow:
		return stateAdminShows
	default:
		return stateHome
	}
}

func (m *appModel) handleFilterInput(msg tea.KeyMsg) bool {
	listPtr := m.activeList()
	if listPtr == nil {
		return false
	}
	if !listPtr.FilteringEnabled() {
		return false
	}
	switch msg.Type {
	case tea.KeyRunes:
		if len(msg.Runes) == 0 {
			return false
		}
		// Single-letter shortcuts win over filtering on action lists.
		if m.shortcutRune(string(msg.Runes)) {
			return false
		}
		m.appendFilter(listPtr, string(msg.Runes))
		return true
	case tea.KeySpace:
		m.appendFilter(listPtr, " ")
		return true
	case tea.KeyBackspace, tea.KeyDelete:
		if listPtr.FilterValue() == "" {
			return false
		}
		m.popFilter(listPtr)
		return true
	default:
		return false
	}
}

// shortcutRune reports whether the rune is a bound action key in the
// current state and must not feed the list filter.
func (m appModel) shortcutRune(r string) bool {
	switch m.state {
	case stateHome:
		return r == "/" || r == "b" || r == "l"
	case stateAdminTheaters:
		return r == "a" || r == "e" || r == "d"
	case stateAdminScreens:
		return r == "a" || r == "d"
	case stateAdminMovies:
		return r == "a" || r == "e" || r == "s" || r == "d"
	case stateAdminShows:
		return r == "a" || r == "d"
	case stateMyBookings:
		return false
	default:
		return false
	}
}

func (m *appModel) appendFilter(listPtr *list.Model, value string) {
	if value == "" {
		return
	}
	current := listPtr.FilterValue()
	listPtr.SetFilterText(current + value)
}

func (m *appModel) popFilter(listPtr *list.Model) {
	value := listPtr.FilterValue()
	if value == "" {
		return
	}
	value = trimLastRune(value)
	if value == "" {
		listPtr.ResetFilter()
		return
	}
	listPtr.SetFilterText(value)
}

func trimLastRune(value string) string {
	runes := []rune(value)
	if len(runes) <= 1 {
		return ""
	}
	return string(runes[:len(runes)-1])
}

func (m *appModel) activeList() *list.Model {
	switch m.state {
	case stateHome:
		return &m.movieList
	case stateMyBookings:
		return &m.bookingsList
	case stateAdminMenu:
		return &m.adminMenu
	case stateAdminTheaters:
		return &m.theaterList
	case stateAdminScreens:
		return &m.screenList
	case stateAdminMovies:
		return &m.movieAdmin
	case stateOmdbSearch:
		return &m.omdbList
	case stateAdminShows:
		return &m.showAdmin
	case statePick:
		return &m.pickList
	case stateSelectCity:
		return &m.cityList
	default:
		return nil
	}
}

func (m appModel) isLoadingState() bool {
	return m.state == stateCheckingSession || m.state == stateLoading
}

func (m *appModel) resizeLists() {
	if m.width == 0 || m.height == 0 {
		return
	}
	h := m.height - 6
	if h < 6 {
		h = 6
	}
	for _, l := range []*list.Model{
		&m.movieList, &m.bookingsList, &m.adminMenu, &m.theaterList,
		&m.screenList, &m.movieAdmin, &m.omdbList, &m.showAdmin,
		&m.pickList, &m.dateList, &m.cityList,
	} {
		l.SetSize(m.width, h)
	}
}

func (m *appModel) enterLoading(title string) {
	m.loadingTitle = title
	m.state = stateLoading
}

func newList(title string) list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true
	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = title
	l.Filter = caseInsensitiveFilter
	l.SetFilteringEnabled(true)
	l.SetShowFilter(true)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	return l
}

func hint(text string) string {
	return lipgloss.NewStyle().Faint(true).Render(text)
}

func recoverStateFrom(state appState) appState {
	switch state {
	case stateCheckingSession, stateLoading:
		return stateHome
	case stateError:
		return stateHome
	default:
		return state
	}
}

func truncateDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func caseInsensitiveFilter(term string, targets []string) []list.Rank {
	term = strings.ToLower(term)
	lower := make([]string, len(targets))
	for i, t := range targets {
		lower[i] = strings.ToLower(t)
	}
	return list.DefaultFilter(term, lower)
}

// errorText prefers the backend's own reason over transport noise.
func errorText(err error) string {
	if err == nil {
		return "unknown error"
	}
	var apiErr *service.APIError
	if errors.As(err, &apiErr) {
		if msg := apiErr.Message(); msg != "" {
			return msg
		}
	}
	return err.Error()
}

func openURL(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "linux":
		return exec.Command("xdg-open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return fmt.Errorf("unsupported OS for opening browser: %s", runtime.GOOS)
	}
}
