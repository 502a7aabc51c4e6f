package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"drivehub/pkg/apiresult"
	"drivehub/pkg/client"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newCarsCmd(app *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cars",
		Short: "Browse the fleet",
	}
	cmd.AddCommand(
		newCarsListCmd(app),
		carByIDCmd(app, "show <id>", "Show a car", app.carGet),
		newCarsSearchCmd(app),
		newCarsFilterCmd(app),
		newCarsTypesCmd(app),
		newCarsOptionsCmd(app),
		newCarsAvailabilityCmd(app),
		carByIDCmd(app, "book <id>", "Reserve a car for yourself", app.carBook),
	)
	return cmd
}

func (app *cli) carGet(ctx context.Context, id uint) apiresult.Envelope[client.Car] {
	return app.api.Cars.Get(ctx, id)
}

func (app *cli) carBook(ctx context.Context, id uint) apiresult.Envelope[client.Car] {
	return app.api.Cars.Book(ctx, id)
}

// carByIDCmd builds a command that takes one car id and prints one car
func carByIDCmd(app *cli, use, short string, fetch func(context.Context, uint) apiresult.Envelope[client.Car]) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return report(app, cmd, fetch(cmd.Context(), id), printCar)
		},
	}
}

// list fetches cars and filter options side by side. Options are a
// nice-to-have, so only a failed car listing fails the command.
func newCarsListCmd(app *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available cars",
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				cars    apiresult.Envelope[[]client.Car]
				options apiresult.Envelope[client.FilterOptions]
			)

			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				cars = app.api.Cars.ListAvailable(ctx)
				return cars.Err()
			})
			g.Go(func() error {
				options = app.api.Cars.FilterOptions(ctx)
				return nil
			})
			_ = g.Wait()

			return report(app, cmd, cars, func(w io.Writer, list []client.Car) {
				printCars(w, list)
				if options.Success && !app.jsonOut {
					fmt.Fprintln(w)
					printFilterOptions(w, options.Data)
				}
			})
		},
	}
}

func newCarsSearchCmd(app *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "search <keyword>",
		Short: "Search available cars by make, model or type",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := app.api.Cars.Search(cmd.Context(), strings.Join(args, " "))
			return report(app, cmd, env, printCars)
		},
	}
}

func newCarsFilterCmd(app *cli) *cobra.Command {
	var (
		filter   client.CarFilter
		minPrice float64
		maxPrice float64
		seats    int
	)

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Filter available cars",
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed("min-price") {
				filter.MinPrice = &minPrice
			}
			if flags.Changed("max-price") {
				filter.MaxPrice = &maxPrice
			}
			if flags.Changed("seats") {
				filter.SeatingCapacity = &seats
			}
			return report(app, cmd, app.api.Cars.Filter(cmd.Context(), filter), printCars)
		},
	}
	cmd.Flags().StringVar(&filter.CarType, "type", "", "car type, e.g. SUV")
	cmd.Flags().StringVar(&filter.Transmission, "transmission", "", "Automatic or Manual")
	cmd.Flags().StringVar(&filter.FuelType, "fuel", "", "fuel type")
	cmd.Flags().Float64Var(&minPrice, "min-price", 0, "minimum price per day")
	cmd.Flags().Float64Var(&maxPrice, "max-price", 0, "maximum price per day")
	cmd.Flags().IntVar(&seats, "seats", 0, "minimum seating capacity")
	return cmd
}

func newCarsTypesCmd(app *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "types <carType>",
		Short: "List available cars of one type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return report(app, cmd, app.api.Cars.ByType(cmd.Context(), args[0]), printCars)
		},
	}
}

func newCarsOptionsCmd(app *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "Show the values the fleet can be filtered by",
		RunE: func(cmd *cobra.Command, args []string) error {
			return report(app, cmd, app.api.Cars.FilterOptions(cmd.Context()), printFilterOptions)
		},
	}
}

func newCarsAvailabilityCmd(app *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "availability <id>",
		Short: "Check whether a car can be booked",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return report(app, cmd, app.api.Cars.Availability(cmd.Context(), id), printAvailability)
		},
	}
}
