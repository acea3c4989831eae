package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"

	"showtime-tix-cli/model"
)

type movieItem struct {
	movie model.Movie
}

func (i movieItem) Title() string { return i.movie.Title }

func (i movieItem) Description() string {
	parts := []string{}
	if i.movie.Genre != "" {
		parts = append(parts, i.movie.Genre)
	}
	if i.movie.Language != "" {
		parts = append(parts, i.movie.Language)
	}
	if i.movie.Duration != "" {
		parts = append(parts, i.movie.Duration)
	}
	if i.movie.Rating != "" {
		parts = append(parts, "★ "+i.movie.Rating)
	}
	if len(parts) == 0 {
		return "No details"
	}
	return strings.Join(parts, " • ")
}

func (i movieItem) FilterValue() string {
	return i.movie.Title + " " + i.movie.Genre + " " + i.movie.Language
}

func movieItems(movies []model.Movie) []list.Item {
	items := make([]list.Item, 0, len(movies))
	for _, movie := range movies {
		items = append(items, movieItem{movie: movie})
	}
	return items
}

type bookingItem struct {
	booking model.Booking
}

func (i bookingItem) Title() string {
	return fmt.Sprintf("#MB-%d  %s", i.booking.Id, i.booking.MovieTitle)
}

func (i bookingItem) Description() string {
	seats := strings.Join(i.booking.BookedSeats, ", ")
	when := i.booking.ShowStartTime.Format("Mon 02 Jan 15:04")
	return fmt.Sprintf("%s • %s • Seats %s • ₹%.2f • %s",
		i.booking.TheaterName, when, seats, i.booking.TotalAmount, i.booking.Status)
}

func (i bookingItem) FilterValue() string {
	return i.booking.MovieTitle + " " + i.booking.TheaterName
}

func bookingItems(bookings []model.Booking) []list.Item {
	items := make([]list.Item, 0, len(bookings))
	for _, booking := range bookings {
		items = append(items, bookingItem{booking: booking})
	}
	return items
}

type menuItem struct {
	title string
	desc  string
	state appState
}

func (i menuItem) Title() string       { return i.title }
func (i menuItem) Description() string { return i.desc }
func (i menuItem) FilterValue() string { return i.title }

func adminMenuItems() []list.Item {
	return []list.Item{
		menuItem{title: "Theaters", desc: "Add, edit, and remove venues", state: stateAdminTheaters},
		menuItem{title: "Screens", desc: "Manage a theater's screens", state: stateAdminScreens},
		menuItem{title: "Seat Layouts", desc: "Generate and clear screen seat blocks", state: stateAdminSeats},
		menuItem{title: "Movies", desc: "Catalog upkeep and external import", state: stateAdminMovies},
		menuItem{title: "Shows", desc: "Schedule screenings inside the booking window", state: stateAdminShows},
	}
}

type theaterItem struct {
	theater model.Theater
}

func (i theaterItem) Title() string { return i.theater.Name }

func (i theaterItem) Description() string {
	return fmt.Sprintf("%s, %s", i.theater.Address, i.theater.City)
}

func (i theaterItem) FilterValue() string {
	return i.theater.Name + " " + i.theater.City
}

func theaterItems(theaters []model.Theater) []list.Item {
	items := make([]list.Item, 0, len(theaters))
	for _, theater := range theaters {
		items = append(items, theaterItem{theater: theater})
	}
	return items
}

type screenItem struct {
	screen model.Screen
}

func (i screenItem) Title() string       { return i.screen.Name }
func (i screenItem) Description() string { return i.screen.ScreenType }
func (i screenItem) FilterValue() string { return i.screen.Name }

func screenItems(screens []model.Screen) []list.Item {
	items := make([]list.Item, 0, len(screens))
	for _, screen := range screens {
		items = append(items, screenItem{screen: screen})
	}
	return items
}

type omdbItem struct {
	result model.OmdbResult
}

func (i omdbItem) Title() string       { return i.result.Title }
func (i omdbItem) Description() string { return i.result.Year + " • " + i.result.ImdbId }
func (i omdbItem) FilterValue() string { return i.result.Title }

func omdbItems(results []model.OmdbResult) []list.Item {
	items := make([]list.Item, 0, len(results))
	for _, result := range results {
		items = append(items, omdbItem{result: result})
	}
	return items
}

type showItem struct {
	show model.Show
}

func (i showItem) Title() string {
	return fmt.Sprintf("%s  %s", i.show.StartTime.Format("Mon 02 Jan 15:04"), i.show.MovieTitle)
}

func (i showItem) Description() string {
	return fmt.Sprintf("%s • %s (%s)", i.show.TheaterName, i.show.ScreenName, i.show.TheaterCity)
}

func (i showItem) FilterValue() string {
	return i.show.MovieTitle + " " + i.show.TheaterName
}

func showItems(shows []model.Show) []list.Item {
	items := make([]list.Item, 0, len(shows))
	for _, show := range shows {
		items = append(items, showItem{show: show})
	}
	return items
}

type dateItem struct {
	date time.Time
}

func (i dateItem) Title() string {
	return i.date.Format("Monday, 02 January")
}

func (i dateItem) Description() string {
	today := truncateDate(time.Now())
	switch {
	case i.date.Equal(today):
		return "Today"
	case i.date.Equal(today.AddDate(0, 0, 1)):
		return "Tomorrow"
	default:
		return i.date.Format(time.DateOnly)
	}
}

func (i dateItem) FilterValue() string { return i.date.Format(time.DateOnly) }

func dateItems(from time.Time, days int) []list.Item {
	items := make([]list.Item, 0, days)
	for d := 0; d < days; d++ {
		items = append(items, dateItem{date: truncateDate(from).AddDate(0, 0, d)})
	}
	return items
}

type cityItem struct {
	name string
}

func (i cityItem) Title() string {
	if i.name == "" {
		return "All cities"
	}
	return i.name
}

func (i cityItem) Description() string {
	if i.name == "" {
		return "No city restriction"
	}
	return "Only theaters in " + i.name
}

func (i cityItem) FilterValue() string { return i.Title() }

// cityItems builds the filter choices from the theater catalog, the
// unrestricted entry first, then each distinct city once.
func cityItems(theaters []model.Theater) []list.Item {
	seen := make(map[string]bool)
	items := []list.Item{cityItem{}}
	for _, theater := range theaters {
		city := strings.TrimSpace(theater.City)
		if city == "" || seen[strings.ToLower(city)] {
			continue
		}
		seen[strings.ToLower(city)] = true
		items = append(items, cityItem{name: city})
	}
	return items
}
