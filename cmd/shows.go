package cmd

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"showtime-tix-cli/model"
	"showtime-tix-cli/service"
)

var showsCmd = &cobra.Command{
	Use:   "shows",
	Short: "List showtimes for a movie",
	Long:  `List a movie's showtimes grouped by theater, optionally narrowed by date and city.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, client, err := bootstrap()
		if err != nil {
			return err
		}
		ctx := context.Background()

		movieId, _ := cmd.Flags().GetInt64("movie")
		if movieId == 0 {
			movieId, err = promptMovie(ctx, client)
			if err != nil {
				return err
			}
		}

		filter := service.ShowFilter{MovieId: movieId}
		if raw, _ := cmd.Flags().GetString("date"); raw != "" {
			date, parseErr := time.Parse(time.DateOnly, raw)
			if parseErr != nil {
				return fmt.Errorf("invalid --date %q, want YYYY-MM-DD", raw)
			}
			filter.Date = date
		}
		city, _ := cmd.Flags().GetString("city")
		if city == "" {
			city = cfg.DefaultCity
		}
		filter.City = strings.TrimSpace(city)

		shows, err := client.GetFilteredShows(ctx, filter)
		if err != nil {
			return err
		}
		if len(shows) == 0 {
			fmt.Println("No shows match these filters.")
			return nil
		}
		renderShows(shows)
		return nil
	},
}

func promptMovie(ctx context.Context, client *service.Client) (int64, error) {
	movies, err := client.GetAllMovies(ctx)
	if err != nil {
		return 0, err
	}
	if len(movies) == 0 {
		return 0, fmt.Errorf("the movie catalog is empty")
	}
	titles := make([]string, len(movies))
	for i, movie := range movies {
		titles[i] = movie.Title
	}
	sel := promptui.Select{
		Label: "Select a movie",
		Items: titles,
		Size:  10,
	}
	idx, _, err := sel.Run()
	if err != nil {
		return 0, err
	}
	return movies[idx].Id, nil
}

func renderShows(shows []model.Show) {
	slices.SortFunc(shows, func(a, b model.Show) int {
		if c := strings.Compare(a.TheaterName, b.TheaterName); c != 0 {
			return c
		}
		return a.StartTime.Compare(b.StartTime)
	})

	rowConfigAutoMerge := table.RowConfig{AutoMerge: true}
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Theater", "City", "Screen", "Date", "Time", "Prices"}, rowConfigAutoMerge)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, AutoMerge: true, WidthMax: 28},
		{Number: 2, AutoMerge: true},
		{Number: 4, AutoMerge: true},
		{Number: 6, AutoMerge: true},
	})
	t.Style().Options.SeparateRows = true

	for _, show := range shows {
		t.AppendRow(table.Row{
			show.TheaterName,
			show.TheaterCity,
			show.ScreenName,
			show.StartTime.Format(time.DateOnly),
			show.StartTime.Format("15:04"),
			formatPrices(show.SeatPrices),
		}, rowConfigAutoMerge)
	}
	t.Render()
}

// formatPrices renders per-tier pricing in a stable tier order.
func formatPrices(prices map[string]float64) string {
	if len(prices) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(prices))
	for _, tier := range []string{model.TierGold, model.TierPremium, model.TierRegular} {
		if price, ok := prices[tier]; ok {
			parts = append(parts, fmt.Sprintf("%s %.0f", strings.ToLower(tier), price))
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " / ")
}
