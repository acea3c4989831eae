package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// updateActiveInput owns every keystroke while a text form or search box has
// focus. Only a handful of control keys escape to navigation.
func (m appModel) updateActiveInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.state {
	case stateHome:
		switch msg.String() {
		case "esc":
			m.searchInput.Reset()
			m.searchInput.Blur()
			m.searchSeq++
			m.searching = false
			m.movieList.SetItems(movieItems(m.movies))
			return m, nil
		case "enter":
			m.searchInput.Blur()
			return m, nil
		case "up", "down":
			var cmd tea.Cmd
			m.movieList, cmd = m.movieList.Update(msg)
			return m, cmd
		}
		before := m.searchInput.Value()
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		if m.searchInput.Value() == before {
			return m, cmd
		}
		m.searchSeq++
		return m, tea.Batch(cmd, debounceCmd(m.searchSeq, false))

	case stateOmdbSearch:
		switch msg.String() {
		case "esc":
			next, cmd := m.goBack()
			return next, cmd
		case "enter":
			item, ok := m.omdbList.SelectedItem().(omdbItem)
			if !ok {
				return m, nil
			}
			m.enterLoading(fmt.Sprintf("Importing %s", item.result.Title))
			return m, m.importMovieCmd(item.result.ImdbId)
		case "up", "down":
			var cmd tea.Cmd
			m.omdbList, cmd = m.omdbList.Update(msg)
			return m, cmd
		}
		before := m.omdbInput.Value()
		var cmd tea.Cmd
		m.omdbInput, cmd = m.omdbInput.Update(msg)
		if m.omdbInput.Value() == before {
			return m, cmd
		}
		m.omdbSeq++
		return m, tea.Batch(cmd, debounceCmd(m.omdbSeq, true))

	case stateLogin:
		switch msg.String() {
		case "esc":
			next, cmd := m.goBack()
			return next, cmd
		case "ctrl+r":
			m.registering = !m.registering
			m.loginForm = newLoginForm(m.registering)
			return m, nil
		}
		var cmd tea.Cmd
		var submitted bool
		m.loginForm, cmd, submitted = m.loginForm.Update(msg)
		if !submitted {
			return m, cmd
		}
		return m.submitLoginForm()

	case stateTheaterForm:
		if msg.String() == "esc" {
			next, cmd := m.goBack()
			return next, cmd
		}
		var cmd tea.Cmd
		var submitted bool
		m.theaterForm, cmd, submitted = m.theaterForm.Update(msg)
		if !submitted {
			return m, cmd
		}
		return m.submitTheaterForm()

	case stateScreenForm:
		if msg.String() == "esc" {
			next, cmd := m.goBack()
			return next, cmd
		}
		var cmd tea.Cmd
		var submitted bool
		m.screenForm, cmd, submitted = m.screenForm.Update(msg)
		if !submitted {
			return m, cmd
		}
		return m.submitScreenForm()

	case stateMovieForm:
		if msg.String() == "esc" {
			next, cmd := m.goBack()
			return next, cmd
		}
		var cmd tea.Cmd
		var submitted bool
		m.movieForm, cmd, submitted = m.movieForm.Update(msg)
		if !submitted {
			return m, cmd
		}
		return m.submitMovieForm()

	case stateAdminSeats:
		switch msg.String() {
		case "esc":
			next, cmd := m.goBack()
			return next, cmd
		case "ctrl+x":
			if len(m.adminSeats) == 0 {
				m.note = "Nothing to clear."
				return m, nil
			}
			next, cmd, _ := m.askConfirm(
				fmt.Sprintf("Clear all %d seats from %s? This cannot be undone.",
					len(m.adminSeats), m.adminScreen.Name),
				m.clearLayoutCmd(),
				stateAdminSeats,
			)
			return next, cmd
		}
		var cmd tea.Cmd
		var submitted bool
		m.architect, cmd, submitted = m.architect.Update(msg)
		if !submitted {
			return m, cmd
		}
		return m.submitArchitectForm()

	case stateShowForm:
		if msg.String() == "esc" {
			next, cmd := m.goBack()
			return next, cmd
		}
		var cmd tea.Cmd
		var submitted bool
		m.showForm, cmd, submitted = m.showForm.Update(msg)
		if !submitted {
			return m, cmd
		}
		return m.submitShowForm()
	}

	return m, nil
}
