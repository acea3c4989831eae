package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"showtime-tix-cli/service"
)

var bookingsCmd = &cobra.Command{
	Use:   "bookings",
	Short: "List your confirmed bookings",
	Long:  `Sign in and print your booking history as a table.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, client, err := bootstrap()
		if err != nil {
			return err
		}
		ctx := context.Background()

		creds, err := promptCredentials()
		if err != nil {
			return err
		}
		user, err := client.Login(ctx, creds)
		if err != nil {
			if service.IsUnauthorized(err) {
				return errors.New("sign in failed: check your email and password")
			}
			return err
		}

		bookings, err := client.GetMyBookings(ctx)
		if err != nil {
			return err
		}
		if len(bookings) == 0 {
			fmt.Printf("No bookings yet for %s.\n", user.Email)
			return nil
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Ref", "Movie", "Theater", "Showtime", "Seats", "Amount", "Status"})
		t.SetColumnConfigs([]table.ColumnConfig{
			{Number: 2, WidthMax: 24},
			{Number: 3, WidthMax: 24},
		})
		for _, booking := range bookings {
			t.AppendRow(table.Row{
				fmt.Sprintf("MB-%d", booking.Id),
				booking.MovieTitle,
				booking.TheaterName,
				booking.ShowStartTime.Format("2006-01-02 15:04"),
				strings.Join(booking.BookedSeats, ", "),
				fmt.Sprintf("%.2f", booking.TotalAmount),
				booking.Status,
			})
		}
		t.Render()
		return nil
	},
}

func promptCredentials() (service.Credentials, error) {
	emailPrompt := promptui.Prompt{
		Label: "Email",
		Validate: func(input string) error {
			if strings.TrimSpace(input) == "" {
				return errors.New("email is required")
			}
			return nil
		},
	}
	email, err := emailPrompt.Run()
	if err != nil {
		return service.Credentials{}, err
	}

	passwordPrompt := promptui.Prompt{
		Label: "Password",
		Mask:  '•',
		Validate: func(input string) error {
			if input == "" {
				return errors.New("password is required")
			}
			return nil
		},
	}
	password, err := passwordPrompt.Run()
	if err != nil {
		return service.Credentials{}, err
	}

	return service.Credentials{UsernameOrEmail: strings.TrimSpace(email), Password: password}, nil
}
