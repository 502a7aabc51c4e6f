package main

import (
	"strings"

	"drivehub/pkg/client"

	"github.com/spf13/cobra"
)

func newBookCmd(app *cli) *cobra.Command {
	var req client.BookingRequest

	cmd := &cobra.Command{
		Use:   "book",
		Short: "Submit a booking request",
		Example: `  storefront book --car 3 --phone "+1 555 0100" --pickup "Airport" \
    --from 2024-01-15T10:00 --to 2024-01-17T09:00`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// name and email default to the signed-in account
			if u, ok := app.api.Auth.CurrentUser(cmd.Context()); ok {
				if req.Email == "" {
					req.Email = u.Email
				}
				if req.FullName == "" {
					req.FullName = u.Username
				}
			}
			req.Email = strings.TrimSpace(req.Email)
			return report(app, cmd, app.api.Bookings.Submit(cmd.Context(), req), printBooking)
		},
	}
	flags := cmd.Flags()
	flags.UintVar(&req.CarID, "car", 0, "car id")
	flags.StringVar(&req.FullName, "name", "", "driver's full name")
	flags.StringVar(&req.Email, "email", "", "contact email")
	flags.StringVar(&req.PhoneNumber, "phone", "", "contact phone number")
	flags.StringVar(&req.PickupLocation, "pickup", "", "pickup location")
	flags.StringVar(&req.DropoffLocation, "dropoff", "", "drop-off location (defaults to pickup)")
	flags.StringVar(&req.PickupDateTime, "from", "", "pickup date-time, 2006-01-02T15:04")
	flags.StringVar(&req.ReturnDateTime, "to", "", "return date-time, 2006-01-02T15:04")
	flags.StringVar(&req.CarType, "type", "", "car type")
	flags.StringVar(&req.Notes, "notes", "", "notes for the rental desk")
	_ = cmd.MarkFlagRequired("car")
	return cmd
}

func newBookingsCmd(app *cli) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "bookings",
		Short: "Show your booking history",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				u, err := app.currentUser(cmd)
				if err != nil {
					return err
				}
				email = u.Email
			}
			return report(app, cmd, app.api.Bookings.History(cmd.Context(), email), printBookings)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email to look up (staff only for other accounts)")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "recent",
			Short: "Show the newest bookings",
			RunE: func(cmd *cobra.Command, args []string) error {
				return report(app, cmd, app.api.Bookings.Recent(cmd.Context()), printBookings)
			},
		},
		&cobra.Command{
			Use:   "cancel <id>",
			Short: "Cancel a pending booking",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				return report(app, cmd, app.api.Bookings.Cancel(cmd.Context(), id), printBooking)
			},
		},
	)
	return cmd
}
