package tui

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"showtime-tix-cli/model"
	"showtime-tix-cli/seatmap"
	"showtime-tix-cli/store"
)

var (
	screenStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("7")).Bold(true)
	tierStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	seatFree      = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	seatTaken     = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Strikethrough(true)
	seatPicked    = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("2")).Bold(true)
	seatCursor    = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("5")).Bold(true)
	theaterHeader = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	slotStyle     = lipgloss.NewStyle().Padding(0, 1)
	slotSelected  = lipgloss.NewStyle().Padding(0, 1).Reverse(true)
)

// scheduleGroup is one theater's block of the schedule browser.
type scheduleGroup struct {
	TheaterName string
	Address     string
	Shows       []model.Show
}

// buildSchedule groups shows by theater and orders slots by start time. The
// flat row slice mirrors the render order for cursor addressing.
func buildSchedule(shows []model.Show) ([]scheduleGroup, []model.Show) {
	slices.SortFunc(shows, func(a, b model.Show) int {
		if c := strings.Compare(a.TheaterName, b.TheaterName); c != 0 {
			return c
		}
		return a.StartTime.Compare(b.StartTime)
	})

	var groups []scheduleGroup
	var rows []model.Show
	for _, show := range shows {
		if len(groups) == 0 || groups[len(groups)-1].TheaterName != show.TheaterName {
			groups = append(groups, scheduleGroup{
				TheaterName: show.TheaterName,
				Address:     show.TheaterAddress,
			})
		}
		groups[len(groups)-1].Shows = append(groups[len(groups)-1].Shows, show)
		rows = append(rows, show)
	}
	return groups, rows
}

func (m appModel) handleStorefrontKey(msg tea.KeyMsg) (appModel, tea.Cmd, bool) {
	switch m.state {
	case stateHome:
		switch msg.String() {
		case "/":
			m.note = ""
			m.searchInput.Focus()
			return m, nil, true
		case "b":
			return m.gotoBookings()
		case "l":
			if !m.user.Authenticated() {
				m.authTargetSet = false
				m.state = stateLogin
			}
			return m, nil, true
		case "ctrl+x":
			if m.user.Authenticated() {
				return m, m.logoutCmd(), true
			}
			return m, nil, true
		case "ctrl+a":
			return m.gotoBackOffice()
		case "enter":
			item, ok := m.movieList.SelectedItem().(movieItem)
			if !ok {
				return m, nil, true
			}
			m.note = ""
			m.selectedMovie = item.movie
			if remembered := store.LastCity(); remembered != "" && m.city == m.cfg.DefaultCity {
				m.city = remembered
			}
			m.enterLoading("Loading showtimes")
			cmd := m.fetchScheduleCmd()
			return m, cmd, true
		}

	case stateSchedule:
		switch msg.String() {
		case "up", "k":
			if m.scheduleIdx > 0 {
				m.scheduleIdx--
			}
			return m, nil, true
		case "down", "j":
			if m.scheduleIdx < len(m.scheduleRows)-1 {
				m.scheduleIdx++
			}
			return m, nil, true
		case "enter":
			if len(m.scheduleRows) == 0 {
				return m, nil, true
			}
			m.selectedShow = m.scheduleRows[m.scheduleIdx]
			m.enterLoading("Loading seats")
			return m, m.fetchShowSeatsCmd(m.selectedShow.Id), true
		case "d":
			items := m.scheduleDateItems()
			if len(items) == 0 {
				m.note = "The booking window has closed; no dates are open."
				return m, nil, true
			}
			m.dateList.SetItems(items)
			m.state = stateSelectDate
			return m, nil, true
		case "c":
			if len(m.theaters) > 0 {
				m.cityList.SetItems(cityItems(m.theaters))
				m.state = stateSelectCity
				return m, nil, true
			}
			m.afterLoad = stateSelectCity
			m.afterLoadSet = true
			m.enterLoading("Loading cities")
			return m, m.fetchTheatersCmd(), true
		}

	case stateSelectDate:
		if msg.String() == "enter" {
			if item, ok := m.dateList.SelectedItem().(dateItem); ok {
				m.date = item.date
				m.enterLoading("Loading showtimes")
				cmd := m.fetchScheduleCmd()
				return m, cmd, true
			}
			return m, nil, true
		}

	case stateSelectCity:
		if msg.String() == "enter" {
			if item, ok := m.cityList.SelectedItem().(cityItem); ok {
				m.city = item.name
				_ = store.RememberCity(item.name)
				m.enterLoading("Loading showtimes")
				cmd := m.fetchScheduleCmd()
				return m, cmd, true
			}
			return m, nil, true
		}

	case stateSeatMap:
		switch msg.String() {
		case "up", "k":
			m.moveCursor(-1, 0)
			return m, nil, true
		case "down", "j":
			m.moveCursor(1, 0)
			return m, nil, true
		case "left", "h":
			m.moveCursor(0, -1)
			return m, nil, true
		case "right", "l":
			m.moveCursor(0, 1)
			return m, nil, true
		case " ", "space":
			if seat, ok := m.cursorSeat(); ok {
				m.note = ""
				if !m.selection.Toggle(seat) {
					m.note = "That seat is not available."
				}
			}
			return m, nil, true
		case "enter":
			if m.selection.Count() == 0 {
				m.note = "Select at least one seat first."
				return m, nil, true
			}
			if !m.sessionChecked {
				return m, nil, true
			}
			if !m.user.Authenticated() {
				m.authTarget = stateSeatMap
				m.authTargetSet = true
				m.state = stateLogin
				return m, nil, true
			}
			m.enterLoading("Creating booking")
			return m, m.createBookingCmd(), true
		}

	case statePayment:
		switch msg.String() {
		case "o":
			return m, m.openCheckoutCmd(), true
		case "enter":
			m.enterLoading("Confirming payment")
			return m, m.confirmBookingCmd(), true
		}

	case stateReceipt:
		if msg.String() == "b" {
			return m.gotoBookings()
		}
	}

	return m, nil, false
}

func (m appModel) gotoBookings() (appModel, tea.Cmd, bool) {
	if !m.sessionChecked {
		return m, nil, true
	}
	if !m.user.Authenticated() {
		m.authTarget = stateMyBookings
		m.authTargetSet = true
		m.state = stateLogin
		return m, nil, true
	}
	m.enterLoading("Loading bookings")
	return m, m.fetchMyBookingsCmd(), true
}

func (m appModel) gotoBackOffice() (appModel, tea.Cmd, bool) {
	if !m.sessionChecked {
		return m, nil, true
	}
	if !m.user.Authenticated() {
		m.authTarget = stateAdminMenu
		m.authTargetSet = true
		m.state = stateLogin
		return m, nil, true
	}
	if !m.user.IsAdmin() {
		m.note = "Admin access required."
		return m, nil, true
	}
	m.adminMenu.SetItems(adminMenuItems())
	m.state = stateAdminMenu
	return m, nil, true
}

// scheduleDateItems offers every bookable day from today (or the window
// opening, whichever is later) to the window close, capped at a week. Once
// the window has closed there is nothing left to offer.
func (m appModel) scheduleDateItems() []list.Item {
	start := truncateDate(time.Now())
	open := truncateDate(m.cfg.WindowOpen)
	if start.Before(open) {
		start = open
	}
	end := truncateDate(m.cfg.WindowClose)
	if end.Before(start) {
		return nil
	}
	days := int(end.Sub(start).Hours()/24) + 1
	if days > 7 {
		days = 7
	}
	return dateItems(start, days)
}

func (m appModel) homeView() string {
	search := ""
	if m.searchInput.Focused() || m.searchInput.Value() != "" {
		search = m.searchInput.View() + "\n\n"
	}
	return search + m.movieList.View()
}

func (m appModel) scheduleView() string {
	if len(m.schedule) == 0 {
		empty := lipgloss.NewStyle().Faint(true).Render(
			"No shows match these filters. Try another date or city (d / c).")
		return empty
	}

	var b strings.Builder
	idx := 0
	for _, group := range m.schedule {
		b.WriteString(theaterHeader.Render(group.TheaterName))
		if group.Address != "" {
			b.WriteString(hint("  " + group.Address))
		}
		b.WriteString("\n  ")
		for _, show := range group.Shows {
			label := fmt.Sprintf("%s %s", show.StartTime.Format("15:04"), show.ScreenName)
			if idx == m.scheduleIdx {
				b.WriteString(slotSelected.Render(label))
			} else {
				b.WriteString(slotStyle.Render(label))
			}
			b.WriteString(" ")
			idx++
		}
		b.WriteString("\n\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// moveCursor walks the grid row-wise. Vertical moves cross section
// boundaries; the column clamps to the destination row's width.
func (m *appModel) moveCursor(dr int, dc int) {
	rows := m.flatRows()
	if len(rows) == 0 {
		return
	}
	flat := m.flatRowIndex(rows)
	if dr != 0 {
		flat += dr
		if flat < 0 {
			flat = 0
		}
		if flat >= len(rows) {
			flat = len(rows) - 1
		}
		m.cursorSec, m.cursorRow = rows[flat][0], rows[flat][1]
		width := len(m.grid.Sections[m.cursorSec].Rows[m.cursorRow].Seats)
		if m.cursorCol >= width {
			m.cursorCol = width - 1
		}
		return
	}
	width := len(m.grid.Sections[m.cursorSec].Rows[m.cursorRow].Seats)
	m.cursorCol += dc
	if m.cursorCol < 0 {
		m.cursorCol = 0
	}
	if m.cursorCol >= width {
		m.cursorCol = width - 1
	}
}

// flatRows lists every (section, row) pair in render order.
func (m appModel) flatRows() [][2]int {
	var rows [][2]int
	for s, section := range m.grid.Sections {
		for r := range section.Rows {
			rows = append(rows, [2]int{s, r})
		}
	}
	return rows
}

func (m appModel) flatRowIndex(rows [][2]int) int {
	for i, pair := range rows {
		if pair[0] == m.cursorSec && pair[1] == m.cursorRow {
			return i
		}
	}
	return 0
}

func (m appModel) cursorSeat() (model.ShowSeat, bool) {
	if m.cursorSec >= len(m.grid.Sections) {
		return model.ShowSeat{}, false
	}
	section := m.grid.Sections[m.cursorSec]
	if m.cursorRow >= len(section.Rows) {
		return model.ShowSeat{}, false
	}
	row := section.Rows[m.cursorRow]
	if m.cursorCol >= len(row.Seats) {
		return model.ShowSeat{}, false
	}
	return row.Seats[m.cursorCol], true
}

func (m appModel) seatMapView() string {
	available, taken, total := m.grid.Count()
	if total == 0 {
		return hint("This show has no seat layout yet.")
	}

	width := m.grid.WidestRow()
	cell := len(fmt.Sprintf("%d", width)) + 2

	var b strings.Builder
	screenWidth := 4 + width*(cell+1)
	b.WriteString(screenStyle.Render(center("S C R E E N", screenWidth)))
	b.WriteString("\n\n")

	for s, section := range m.grid.Sections {
		price := m.tierPrice(section.Tier, section)
		header := section.Tier
		if price > 0 {
			header = fmt.Sprintf("%s • ₹%.0f", section.Tier, price)
		}
		b.WriteString(tierStyle.Render(header))
		b.WriteString("\n")
		for r, row := range section.Rows {
			b.WriteString(fmt.Sprintf("%-3s ", row.Label))
			for c, seat := range row.Seats {
				label := seatCellLabel(seat, cell)
				style := seatFree
				switch {
				case s == m.cursorSec && r == m.cursorRow && c == m.cursorCol:
					style = seatCursor
				case m.selection.Contains(seat.Id):
					style = seatPicked
				case !seat.Available():
					style = seatTaken
				}
				b.WriteString(style.Render(label))
				b.WriteString(" ")
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(hint(fmt.Sprintf("%d available • %d taken • %d total", available, taken, total)))
	b.WriteString("\n")
	legend := seatFree.Render("free") + "  " + seatPicked.Render("selected") + "  " + seatTaken.Render("taken")
	b.WriteString(legend)
	b.WriteString("\n\n")
	if m.selection.Count() > 0 {
		b.WriteString(fmt.Sprintf("Selected: %s\n", strings.Join(m.selection.Labels(), ", ")))
		b.WriteString(lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("Total: ₹%.2f", m.selection.Total())))
	} else {
		b.WriteString(hint("No seats selected."))
	}
	return b.String()
}

// tierPrice prefers the show's published tier pricing and falls back to the
// first seat's effective price.
func (m appModel) tierPrice(tier string, section seatmap.Section) float64 {
	if price, ok := m.selectedShow.SeatPrices[tier]; ok {
		return price
	}
	for _, row := range section.Rows {
		for _, seat := range row.Seats {
			return seat.Price
		}
	}
	return 0
}

func seatCellLabel(seat model.ShowSeat, cell int) string {
	_, col, ok := seatmap.SplitLabel(seat.SeatNumber)
	if !ok {
		return center("?", cell)
	}
	return center(fmt.Sprintf("%d", col), cell)
}

func center(text string, width int) string {
	if len(text) >= width {
		return text
	}
	left := (width - len(text)) / 2
	right := width - len(text) - left
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", right)
}

func (m appModel) paymentView() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Complete your payment"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Booking #%d is reserved for you.\n", m.pending.Id))
	b.WriteString(fmt.Sprintf("Amount due: ₹%.2f\n\n", m.pending.TotalAmount))
	b.WriteString("A secure checkout page has been opened in your browser.\n")
	b.WriteString("Finish the payment there, then press enter to confirm.\n")
	if m.payNote != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Render(m.payNote))
	}
	return b.String()
}

func (m appModel) receiptView() string {
	ok := lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	var b strings.Builder
	b.WriteString(ok.Render("Booking confirmed!"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Reference   #MB-%d\n", m.receipt.Id))
	b.WriteString(fmt.Sprintf("Movie       %s\n", m.receipt.MovieTitle))
	b.WriteString(fmt.Sprintf("Theater     %s\n", m.receipt.TheaterName))
	b.WriteString(fmt.Sprintf("Showtime    %s\n", m.receipt.ShowStartTime.Format("Mon 02 Jan 2006 15:04")))
	b.WriteString(fmt.Sprintf("Seats       %s\n", strings.Join(m.receipt.BookedSeats, ", ")))
	b.WriteString(fmt.Sprintf("Paid        ₹%.2f\n", m.receipt.TotalAmount))
	return b.String()
}
