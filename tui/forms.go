package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"showtime-tix-cli/model"
)

// formField is one line of a form: either free text or a fixed choice the
// user cycles with left/right.
type formField struct {
	label   string
	input   textinput.Model
	choices []string
	choice  int
}

func textField(label, placeholder, value string) formField {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 128
	in.SetValue(value)
	return formField{label: label, input: in}
}

func passwordField(label string) formField {
	f := textField(label, "", "")
	f.input.EchoMode = textinput.EchoPassword
	f.input.EchoCharacter = '•'
	return f
}

func choiceField(label string, choices []string) formField {
	return formField{label: label, choices: choices}
}

func (f formField) isChoice() bool { return len(f.choices) > 0 }

func (f formField) value() string {
	if f.isChoice() {
		return f.choices[f.choice]
	}
	return strings.TrimSpace(f.input.Value())
}

// formModel is a vertical stack of fields with one focused at a time.
type formModel struct {
	title    string
	fields   []formField
	focus    int
	feedback string
}

func newForm(title string, fields ...formField) formModel {
	m := formModel{title: title, fields: fields}
	m.setFocus(0)
	return m
}

func (m *formModel) setFocus(i int) {
	if len(m.fields) == 0 {
		return
	}
	if i < 0 {
		i = len(m.fields) - 1
	}
	if i >= len(m.fields) {
		i = 0
	}
	m.focus = i
	for idx := range m.fields {
		if idx == i && !m.fields[idx].isChoice() {
			m.fields[idx].input.Focus()
		} else {
			m.fields[idx].input.Blur()
		}
	}
}

// Update routes a key to the form. It reports submitted=true when the user
// pressed enter on the last field (or enter anywhere with all fields filled).
func (m formModel) Update(msg tea.KeyMsg) (formModel, tea.Cmd, bool) {
	switch msg.String() {
	case "tab", "down":
		m.setFocus(m.focus + 1)
		return m, nil, false
	case "shift+tab", "up":
		m.setFocus(m.focus - 1)
		return m, nil, false
	case "enter":
		if m.focus < len(m.fields)-1 {
			m.setFocus(m.focus + 1)
			return m, nil, false
		}
		return m, nil, true
	case "left":
		if f := &m.fields[m.focus]; f.isChoice() {
			f.choice = (f.choice + len(f.choices) - 1) % len(f.choices)
			return m, nil, false
		}
	case "right":
		if f := &m.fields[m.focus]; f.isChoice() {
			f.choice = (f.choice + 1) % len(f.choices)
			return m, nil, false
		}
	}
	if m.fields[m.focus].isChoice() {
		return m, nil, false
	}
	var cmd tea.Cmd
	m.fields[m.focus].input, cmd = m.fields[m.focus].input.Update(msg)
	return m, cmd, false
}

func (m formModel) View() string {
	var b strings.Builder
	if m.title != "" {
		b.WriteString(lipgloss.NewStyle().Bold(true).Render(m.title))
		b.WriteString("\n\n")
	}
	labelStyle := lipgloss.NewStyle().Width(18)
	focusMark := lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Render("> ")
	for i, f := range m.fields {
		mark := "  "
		if i == m.focus {
			mark = focusMark
		}
		b.WriteString(mark)
		b.WriteString(labelStyle.Render(f.label))
		if f.isChoice() {
			b.WriteString("◀ " + f.choices[f.choice] + " ▶")
		} else {
			b.WriteString(f.input.View())
		}
		b.WriteString("\n")
	}
	if m.feedback != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Render(m.feedback))
	}
	return b.String()
}

func (m formModel) value(i int) string {
	if i < 0 || i >= len(m.fields) {
		return ""
	}
	return m.fields[i].value()
}

func newLoginForm(registering bool) formModel {
	if registering {
		return newForm("Create an account",
			textField("Name", "Jane Moviegoer", ""),
			textField("Email", "you@example.com", ""),
			passwordField("Password"),
		)
	}
	return newForm("Sign in",
		textField("Email or username", "you@example.com", ""),
		passwordField("Password"),
	)
}

func newTheaterForm(theater model.Theater) formModel {
	title := "Add theater"
	if theater.Id != 0 {
		title = "Edit theater"
	}
	return newForm(title,
		textField("Name", "Galaxy Multiplex", theater.Name),
		textField("Address", "12 High Street", theater.Address),
		textField("City", "Mumbai", theater.City),
	)
}

func newMovieForm(movie model.Movie) formModel {
	title := "Add movie"
	if movie.Id != 0 {
		title = "Edit movie"
	}
	return newForm(title,
		textField("Title", "Interstellar", movie.Title),
		textField("Genre", "Sci-Fi", movie.Genre),
		textField("Language", "English", movie.Language),
		textField("Duration", "169 min", movie.Duration),
		textField("Rating", "8.7", movie.Rating),
		textField("Director", "Christopher Nolan", movie.Director),
		textField("Cast", "Matthew McConaughey, Anne Hathaway", movie.Cast),
		textField("Plot", "", movie.Plot),
		textField("Poster URL", "https://...", movie.PosterURL),
	)
}

func newScreenForm() formModel {
	return newForm("Add screen",
		textField("Name", "Screen 1", ""),
		choiceField("Type", model.ScreenTypes),
	)
}

func newArchitectForm() formModel {
	return newForm("",
		textField("Rows", "3", ""),
		textField("Columns", "10", ""),
		choiceField("Tier", model.Tiers),
	)
}

func newShowForm() formModel {
	return newForm("",
		textField("Start (YYYY-MM-DD HH:MM)", "2026-01-21 19:30", ""),
		textField("End (YYYY-MM-DD HH:MM)", "2026-01-21 22:00", ""),
		textField("Regular price", "150", ""),
		textField("Premium price", "200", ""),
		textField("Gold price", "300", ""),
	)
}
