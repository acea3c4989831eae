package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"showtime-tix-cli/model"
	"showtime-tix-cli/seatmap"
	"showtime-tix-cli/service"
)

func (m appModel) handleAdminKey(msg tea.KeyMsg) (appModel, tea.Cmd, bool) {
	switch m.state {
	case stateAdminMenu:
		if msg.String() != "enter" {
			return m, nil, false
		}
		item, ok := m.adminMenu.SelectedItem().(menuItem)
		if !ok {
			return m, nil, true
		}
		return m.openAdminSection(item.state)

	case stateAdminTheaters:
		switch msg.String() {
		case "a":
			m.theaterForm = newTheaterForm(model.Theater{})
			m.editingTheater = 0
			m.state = stateTheaterForm
			return m, nil, true
		case "e":
			item, ok := m.theaterList.SelectedItem().(theaterItem)
			if !ok {
				return m, nil, true
			}
			m.theaterForm = newTheaterForm(item.theater)
			m.editingTheater = item.theater.Id
			m.state = stateTheaterForm
			return m, nil, true
		case "d":
			item, ok := m.theaterList.SelectedItem().(theaterItem)
			if !ok {
				return m, nil, true
			}
			m.afterLoad = stateAdminTheaters
			m.afterLoadSet = true
			return m.askConfirm(
				fmt.Sprintf("Delete theater %q and everything scheduled in it?", item.theater.Name),
				m.deleteTheaterCmd(item.theater.Id),
				stateAdminTheaters,
			)
		}

	case statePick:
		if msg.String() != "enter" {
			return m, nil, false
		}
		return m.consumePick()

	case stateAdminScreens:
		switch msg.String() {
		case "a":
			m.screenForm = newScreenForm()
			m.state = stateScreenForm
			return m, nil, true
		case "d":
			item, ok := m.screenList.SelectedItem().(screenItem)
			if !ok {
				return m, nil, true
			}
			return m.askConfirm(
				fmt.Sprintf("Delete screen %q and its seat layout?", item.screen.Name),
				m.deleteScreenCmd(item.screen.Id, m.adminTheater.Id),
				stateAdminScreens,
			)
		}

	case stateAdminMovies:
		switch msg.String() {
		case "a":
			m.movieForm = newMovieForm(model.Movie{})
			m.editingMovie = 0
			m.state = stateMovieForm
			return m, nil, true
		case "e":
			item, ok := m.movieAdmin.SelectedItem().(movieItem)
			if !ok {
				return m, nil, true
			}
			m.movieForm = newMovieForm(item.movie)
			m.editingMovie = item.movie.Id
			m.state = stateMovieForm
			return m, nil, true
		case "s":
			m.omdbInput.Reset()
			m.omdbInput.Focus()
			m.omdbList.SetItems(nil)
			m.omdbSeq++
			m.state = stateOmdbSearch
			return m, nil, true
		case "d":
			item, ok := m.movieAdmin.SelectedItem().(movieItem)
			if !ok {
				return m, nil, true
			}
			m.afterLoad = stateAdminMovies
			m.afterLoadSet = true
			return m.askConfirm(
				fmt.Sprintf("Delete movie %q from the catalog?", item.movie.Title),
				m.deleteMovieCmd(item.movie.Id),
				stateAdminMovies,
			)
		}

	case stateAdminShows:
		switch msg.String() {
		case "a":
			if len(m.movies) == 0 {
				m.note = "Add movies to the catalog first."
				return m, nil, true
			}
			m.pickFor = pickMovieForShow
			m.pickList.Title = "Select Movie"
			m.pickList.SetItems(movieItems(m.movies))
			m.state = statePick
			return m, nil, true
		case "d":
			item, ok := m.showAdmin.SelectedItem().(showItem)
			if !ok {
				return m, nil, true
			}
			return m.askConfirm(
				fmt.Sprintf("Delete the %s show of %q?",
					item.show.StartTime.Format("Mon 02 Jan 15:04"), item.show.MovieTitle),
				m.deleteShowCmd(item.show.Id),
				stateAdminShows,
			)
		}
	}

	return m, nil, false
}

func (m appModel) openAdminSection(target appState) (appModel, tea.Cmd, bool) {
	switch target {
	case stateAdminTheaters:
		m.afterLoad = stateAdminTheaters
		m.afterLoadSet = true
		m.enterLoading("Loading theaters")
		return m, m.fetchTheatersFreshCmd(), true
	case stateAdminScreens:
		m.pickFor = pickTheaterForScreens
		return m.pickTheater()
	case stateAdminSeats:
		m.pickFor = pickTheaterForSeats
		return m.pickTheater()
	case stateAdminMovies:
		m.movieAdmin.SetItems(movieItems(m.movies))
		m.state = stateAdminMovies
		return m, nil, true
	case stateAdminShows:
		m.enterLoading("Loading shows")
		return m, m.fetchAdminShowsCmd(), true
	default:
		return m, nil, true
	}
}

func (m appModel) pickTheater() (appModel, tea.Cmd, bool) {
	if len(m.theaters) > 0 {
		m.pickList.Title = "Select Theater"
		m.pickList.SetItems(theaterItems(m.theaters))
		m.state = statePick
		return m, nil, true
	}
	m.afterLoad = statePick
	m.afterLoadSet = true
	m.enterLoading("Loading theaters")
	return m, m.fetchTheatersCmd(), true
}

// consumePick advances whichever multi-step flow the picker belongs to.
func (m appModel) consumePick() (appModel, tea.Cmd, bool) {
	switch m.pickFor {
	case pickTheaterForScreens:
		item, ok := m.pickList.SelectedItem().(theaterItem)
		if !ok {
			return m, nil, true
		}
		m.adminTheater = item.theater
		m.enterLoading("Loading screens")
		return m, m.fetchScreensCmd(item.theater.Id), true

	case pickTheaterForSeats:
		item, ok := m.pickList.SelectedItem().(theaterItem)
		if !ok {
			return m, nil, true
		}
		m.adminTheater = item.theater
		m.pickFor = pickScreenForSeats
		m.enterLoading("Loading screens")
		return m, m.fetchScreensCmd(item.theater.Id), true

	case pickScreenForSeats:
		item, ok := m.pickList.SelectedItem().(screenItem)
		if !ok {
			return m, nil, true
		}
		m.adminScreen = item.screen
		m.architect = newArchitectForm()
		m.enterLoading("Loading layout")
		return m, m.fetchScreenSeatsCmd(item.screen.Id), true

	case pickMovieForShow:
		item, ok := m.pickList.SelectedItem().(movieItem)
		if !ok {
			return m, nil, true
		}
		m.showMovie = item.movie
		m.pickFor = pickTheaterForShow
		return m.pickTheater()

	case pickTheaterForShow:
		item, ok := m.pickList.SelectedItem().(theaterItem)
		if !ok {
			return m, nil, true
		}
		m.adminTheater = item.theater
		m.pickFor = pickScreenForShow
		m.enterLoading("Loading screens")
		return m, m.fetchScreensCmd(item.theater.Id), true

	case pickScreenForShow:
		item, ok := m.pickList.SelectedItem().(screenItem)
		if !ok {
			return m, nil, true
		}
		m.showScreen = item.screen
		m.showForm = newShowForm()
		m.state = stateShowForm
		return m, nil, true
	}
	return m, nil, true
}

func (m appModel) askConfirm(prompt string, action tea.Cmd, returnTo appState) (appModel, tea.Cmd, bool) {
	m.confirmPrompt = prompt
	m.confirmAction = action
	m.confirmReturn = returnTo
	m.state = stateConfirm
	return m, nil, true
}

// submitTheaterForm validates locally before anything is sent; the client
// DTO validation catches what slips through.
func (m appModel) submitTheaterForm() (appModel, tea.Cmd) {
	req := service.TheaterRequest{
		Name:    m.theaterForm.value(0),
		Address: m.theaterForm.value(1),
		City:    m.theaterForm.value(2),
	}
	if req.Name == "" || req.Address == "" || req.City == "" {
		m.theaterForm.feedback = "All fields are required."
		return m, nil
	}
	m.afterLoad = stateAdminTheaters
	m.afterLoadSet = true
	m.enterLoading("Saving theater")
	if m.editingTheater != 0 {
		return m, m.updateTheaterCmd(m.editingTheater, req)
	}
	return m, m.addTheaterCmd(req)
}

func (m appModel) submitScreenForm() (appModel, tea.Cmd) {
	req := service.ScreenRequest{
		Name:       m.screenForm.value(0),
		ScreenType: m.screenForm.value(1),
		TheaterId:  m.adminTheater.Id,
	}
	if req.Name == "" {
		m.screenForm.feedback = "Screen name is required."
		return m, nil
	}
	m.enterLoading("Saving screen")
	return m, m.addScreenCmd(req)
}

func (m appModel) submitMovieForm() (appModel, tea.Cmd) {
	req := service.MovieRequest{
		Title:     m.movieForm.value(0),
		Genre:     m.movieForm.value(1),
		Language:  m.movieForm.value(2),
		Duration:  m.movieForm.value(3),
		Rating:    m.movieForm.value(4),
		Director:  m.movieForm.value(5),
		Cast:      m.movieForm.value(6),
		Plot:      m.movieForm.value(7),
		PosterURL: m.movieForm.value(8),
	}
	if req.Title == "" {
		m.movieForm.feedback = "Title is required."
		return m, nil
	}
	m.afterLoad = stateAdminMovies
	m.afterLoadSet = true
	m.enterLoading("Saving movie")
	if m.editingMovie != 0 {
		return m, m.updateMovieCmd(m.editingMovie, req)
	}
	return m, m.addMovieCmd(req)
}

func (m appModel) submitArchitectForm() (appModel, tea.Cmd) {
	rows, err := strconv.Atoi(m.architect.value(0))
	if err != nil {
		m.architect.feedback = "Rows must be a number."
		return m, nil
	}
	cols, err := strconv.Atoi(m.architect.value(1))
	if err != nil {
		m.architect.feedback = "Columns must be a number."
		return m, nil
	}
	tier := m.architect.value(2)
	if _, genErr := seatmap.Generate(m.adminSeats, rows, cols, tier); genErr != nil {
		m.architect.feedback = genErr.Error()
		return m, nil
	}
	m.architect.feedback = ""
	m.enterLoading("Saving seat block")
	return m, m.generateSeatsCmd(rows, cols, tier)
}

func (m appModel) submitShowForm() (appModel, tea.Cmd) {
	start, err := parseLocalTime(m.showForm.value(0))
	if err != nil {
		m.showForm.feedback = "Start time must look like 2026-01-21 19:30."
		return m, nil
	}
	end, err := parseLocalTime(m.showForm.value(1))
	if err != nil {
		m.showForm.feedback = "End time must look like 2026-01-21 22:00."
		return m, nil
	}
	if !end.After(start) {
		m.showForm.feedback = "End time must be after the start time."
		return m, nil
	}
	if !m.cfg.InWindow(start) || !m.cfg.InWindow(end) {
		m.showForm.feedback = fmt.Sprintf("Shows must fall inside the booking window (%s to %s).",
			m.cfg.WindowOpen.Format(time.DateOnly), m.cfg.WindowClose.Format(time.DateOnly))
		return m, nil
	}

	prices := make(map[string]float64, len(model.Tiers))
	for i, tier := range []string{model.TierRegular, model.TierPremium, model.TierGold} {
		price, priceErr := strconv.ParseFloat(m.showForm.value(2+i), 64)
		if priceErr != nil || price <= 0 {
			m.showForm.feedback = "Every tier needs a positive price."
			return m, nil
		}
		prices[tier] = price
	}

	m.showForm.feedback = ""
	m.enterLoading("Scheduling show")
	return m, m.addShowCmd(service.ShowRequest{
		MovieId:    m.showMovie.Id,
		ScreenId:   m.showScreen.Id,
		StartTime:  start,
		EndTime:    end,
		SeatPrices: prices,
	})
}

func parseLocalTime(value string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", strings.TrimSpace(value), time.Local)
}

func (m appModel) architectView() string {
	var b strings.Builder
	title := fmt.Sprintf("Seat Layout • %s / %s", m.adminTheater.Name, m.adminScreen.Name)
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(title))
	b.WriteString("\n\n")
	b.WriteString(m.layoutPreview())
	b.WriteString("\n")
	next := seatmap.RowLabel(seatmap.NextRowIndex(m.adminSeats))
	b.WriteString(hint(fmt.Sprintf("%d seats in place • next block starts at row %s", len(m.adminSeats), next)))
	b.WriteString("\n\n")
	b.WriteString(m.architect.View())
	return b.String()
}

// layoutPreview renders the persisted seats row by row, tier shown per seat
// group the way the generator lays them down.
func (m appModel) layoutPreview() string {
	if len(m.adminSeats) == 0 {
		return hint("No seats yet. Generate the first block below.")
	}
	var b strings.Builder
	currentRow := ""
	for _, seat := range m.adminSeats {
		row, _, ok := seatmap.SplitLabel(seat.SeatNumber)
		if !ok {
			row = "?"
		}
		if row != currentRow {
			if currentRow != "" {
				b.WriteString("\n")
			}
			currentRow = row
			b.WriteString(fmt.Sprintf("%-3s ", row))
		}
		b.WriteString(tierMark(seat.SeatType))
	}
	b.WriteString("\n")
	b.WriteString(hint("g gold  p premium  r regular"))
	return b.String()
}

func tierMark(tier string) string {
	switch tier {
	case model.TierGold:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Render("g ")
	case model.TierPremium:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Render("p ")
	default:
		return "r "
	}
}

func (m appModel) omdbSearchView() string {
	return m.omdbInput.View() + "\n\n" + m.omdbList.View()
}

func (m appModel) showFormView() string {
	title := fmt.Sprintf("Schedule %q on %s / %s",
		m.showMovie.Title, m.adminTheater.Name, m.showScreen.Name)
	return lipgloss.NewStyle().Bold(true).Render(title) + "\n\n" + m.showForm.View()
}
