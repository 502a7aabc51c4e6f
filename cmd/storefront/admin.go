package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"drivehub/pkg/apiresult"
	"drivehub/pkg/client"

	"github.com/spf13/cobra"
)

func newAdminCmd(app *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Order and fleet management (admins and managers)",
	}
	cmd.AddCommand(newAdminOrdersCmd(app), newAdminCarsCmd(app), newAdminSignupCmd(app))
	return cmd
}

func newAdminOrdersCmd(app *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Review and decide booking orders",
	}

	var status string
	var pending bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			switch {
			case pending:
				return report(app, cmd, app.api.Admin.PendingOrders(ctx), printBookings)
			case status != "":
				return report(app, cmd, app.api.Admin.OrdersByStatus(ctx, status), printBookings)
			default:
				return report(app, cmd, app.api.Admin.AllOrders(ctx), printBookings)
			}
		},
	}
	list.Flags().StringVar(&status, "status", "", "only orders in this status")
	list.Flags().BoolVar(&pending, "pending", false, "only orders awaiting a decision")

	stats := &cobra.Command{
		Use:   "stats",
		Short: "Show order statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return report(app, cmd, app.api.Admin.OrderStatistics(cmd.Context()), printOrderStatistics)
		},
	}

	cmd.AddCommand(
		list,
		orderDecisionCmd(app, "approve", "Approve a pending order"),
		orderDecisionCmd(app, "reject", "Reject a pending order"),
		orderDecisionCmd(app, "complete", "Mark an approved order as returned"),
		stats,
	)
	return cmd
}

func orderDecisionCmd(app *cli, action, short string) *cobra.Command {
	var notes string

	cmd := &cobra.Command{
		Use:   action + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var env apiresult.Envelope[client.Booking]
			switch action {
			case "approve":
				env = app.api.Admin.ApproveOrder(cmd.Context(), id, notes)
			case "reject":
				env = app.api.Admin.RejectOrder(cmd.Context(), id, notes)
			default:
				env = app.api.Admin.CompleteOrder(cmd.Context(), id, notes)
			}
			return report(app, cmd, env, printBooking)
		},
	}
	cmd.Flags().StringVar(&notes, "notes", "", "note shown to the customer")
	return cmd
}

func newAdminCarsCmd(app *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cars",
		Short: "Manage the fleet",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List every car, booked or not",
			RunE: func(cmd *cobra.Command, args []string) error {
				return report(app, cmd, app.api.Admin.AllCars(cmd.Context()), printCars)
			},
		},
		newAdminCarsAddCmd(app),
		newAdminCarsUpdateCmd(app),
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Remove a car from the fleet",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				return report(app, cmd, app.api.Admin.DeleteCar(cmd.Context(), id), nil)
			},
		},
		&cobra.Command{
			Use:   "toggle <id>",
			Short: "Flip a car's availability",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				return report(app, cmd, app.api.Admin.ToggleAvailability(cmd.Context(), id), printCar)
			},
		},
		&cobra.Command{
			Use:   "price <id> <pricePerDay>",
			Short: "Change a car's daily price",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				price, err := strconv.ParseFloat(strings.TrimPrefix(args[1], "$"), 64)
				if err != nil {
					return fmt.Errorf("invalid price %q", args[1])
				}
				return report(app, cmd, app.api.Admin.UpdatePricing(cmd.Context(), id, price), printCar)
			},
		},
		&cobra.Command{
			Use:   "image <id> <file>",
			Short: "Upload a car photo",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				f, err := os.Open(args[1])
				if err != nil {
					return fmt.Errorf("failed to open image: %w", err)
				}
				defer f.Close()
				return report(app, cmd, app.api.Admin.UploadCarImage(cmd.Context(), id, args[1], f), printCar)
			},
		},
		&cobra.Command{
			Use:   "stats",
			Short: "Show fleet statistics",
			RunE: func(cmd *cobra.Command, args []string) error {
				return report(app, cmd, app.api.Admin.CarStatistics(cmd.Context()), printCarStatistics)
			},
		},
	)
	return cmd
}

func newAdminCarsAddCmd(app *cli) *cobra.Command {
	var car client.CarInput
	var unavailable bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a car to the fleet",
		RunE: func(cmd *cobra.Command, args []string) error {
			if unavailable {
				available := false
				car.Available = &available
			}
			return report(app, cmd, app.api.Admin.AddCar(cmd.Context(), car), printCar)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&car.Name, "name", "", "display name")
	flags.StringVar(&car.Make, "make", "", "manufacturer")
	flags.StringVar(&car.Model, "model", "", "model")
	flags.IntVar(&car.Year, "year", 0, "model year")
	flags.StringVar(&car.CarType, "type", "", "car type, e.g. SUV")
	flags.StringVar(&car.Transmission, "transmission", "Automatic", "Automatic or Manual")
	flags.StringVar(&car.FuelType, "fuel", "Petrol", "fuel type")
	flags.IntVar(&car.SeatingCapacity, "seats", 5, "seating capacity")
	flags.Float64Var(&car.PricePerDay, "price", 0, "price per day")
	flags.StringVar(&car.Color, "color", "", "colour")
	flags.StringVar(&car.LicensePlate, "plate", "", "licence plate")
	flags.IntVar(&car.Mileage, "mileage", 0, "odometer reading")
	flags.StringVar(&car.Description, "description", "", "description")
	flags.BoolVar(&car.AirConditioning, "ac", true, "has air conditioning")
	flags.BoolVar(&car.BluetoothConnectivity, "bluetooth", false, "has bluetooth")
	flags.BoolVar(&car.GPSNavigation, "gps", false, "has GPS navigation")
	flags.BoolVar(&unavailable, "unavailable", false, "add the car as not bookable")
	return cmd
}

func newAdminCarsUpdateCmd(app *cli) *cobra.Command {
	var (
		name, carMake, model, carType, color, plate, description string
		year, seats, mileage                                     int
		price                                                    float64
		available                                                bool
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change car details; only the given flags are sent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var update client.CarUpdate
			flags := cmd.Flags()
			setString := func(flag string, v *string, dst **string) {
				if flags.Changed(flag) {
					*dst = v
				}
			}
			setInt := func(flag string, v *int, dst **int) {
				if flags.Changed(flag) {
					*dst = v
				}
			}
			setString("name", &name, &update.Name)
			setString("make", &carMake, &update.Make)
			setString("model", &model, &update.Model)
			setString("type", &carType, &update.CarType)
			setString("color", &color, &update.Color)
			setString("plate", &plate, &update.LicensePlate)
			setString("description", &description, &update.Description)
			setInt("year", &year, &update.Year)
			setInt("seats", &seats, &update.SeatingCapacity)
			setInt("mileage", &mileage, &update.Mileage)
			if flags.Changed("price") {
				update.PricePerDay = &price
			}
			if flags.Changed("available") {
				update.Available = &available
			}

			return report(app, cmd, app.api.Admin.UpdateCar(cmd.Context(), id, update), printCar)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&name, "name", "", "display name")
	flags.StringVar(&carMake, "make", "", "manufacturer")
	flags.StringVar(&model, "model", "", "model")
	flags.StringVar(&carType, "type", "", "car type")
	flags.StringVar(&color, "color", "", "colour")
	flags.StringVar(&plate, "plate", "", "licence plate")
	flags.StringVar(&description, "description", "", "description")
	flags.IntVar(&year, "year", 0, "model year")
	flags.IntVar(&seats, "seats", 0, "seating capacity")
	flags.IntVar(&mileage, "mileage", 0, "odometer reading")
	flags.Float64Var(&price, "price", 0, "price per day")
	flags.BoolVar(&available, "available", true, "whether the car can be booked")
	return cmd
}

func newAdminSignupCmd(app *cli) *cobra.Command {
	var username, email, password, role string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an admin or manager account",
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := passwordOrPrompt(cmd, password)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			show := func(w io.Writer, res client.AuthResult) {
				fmt.Fprintf(w, "Created %s account for %s\n", res.User.Role, res.User.Email)
			}
			switch strings.ToLower(role) {
			case "admin":
				return report(app, cmd, app.api.Auth.SignupAdmin(ctx, username, email, pw), show)
			case "manager":
				return report(app, cmd, app.api.Auth.SignupManager(ctx, username, email, pw), show)
			default:
				return fmt.Errorf("invalid role %q (must be admin or manager)", role)
			}
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "display name")
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password (prompted when omitted)")
	cmd.Flags().StringVar(&role, "role", "manager", "admin or manager")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
