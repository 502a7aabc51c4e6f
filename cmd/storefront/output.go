package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"

	"drivehub/pkg/apiresult"
	"drivehub/pkg/client"

	"github.com/spf13/cobra"
)

// errCommandFailed means the failure was already printed
var errCommandFailed = errors.New("command failed")

// report prints an envelope. Messages always go through apiresult.Text so
// nothing structured reaches the terminal.
func report[T any](app *cli, cmd *cobra.Command, env apiresult.Envelope[T], show func(io.Writer, T)) error {
	if app.jsonOut {
		out := cmd.OutOrStdout()
		if !env.Success {
			out = cmd.ErrOrStderr()
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(env); err != nil {
			return err
		}
	} else if env.Success {
		if msg := apiresult.Text(env.Message, ""); msg != "" {
			fmt.Fprintln(cmd.OutOrStdout(), msg)
		}
		if show != nil {
			show(cmd.OutOrStdout(), env.Data)
		}
	} else {
		fmt.Fprintln(cmd.ErrOrStderr(), apiresult.Text(env.Message, apiresult.GenericErrorMessage))
	}

	if !env.Success {
		return errCommandFailed
	}
	return nil
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return uint(id), nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func printCars(w io.Writer, cars []client.Car) {
	if len(cars) == 0 {
		fmt.Fprintln(w, "No cars found.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCAR\tTYPE\tSEATS\tPRICE/DAY\tAVAILABLE")
	for _, car := range cars {
		fmt.Fprintf(tw, "%d\t%s %s %d\t%s\t%d\t$%.2f\t%s\n",
			car.ID, car.Make, car.Model, car.Year, car.CarType, car.SeatingCapacity, car.PricePerDay, yesNo(car.Available))
	}
	tw.Flush()
}

func printCar(w io.Writer, car client.Car) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\t%d\n", car.ID)
	fmt.Fprintf(tw, "Name\t%s\n", car.Name)
	fmt.Fprintf(tw, "Car\t%s %s %d\n", car.Make, car.Model, car.Year)
	fmt.Fprintf(tw, "Type\t%s\n", car.CarType)
	fmt.Fprintf(tw, "Transmission\t%s\n", car.Transmission)
	fmt.Fprintf(tw, "Fuel\t%s\n", car.FuelType)
	fmt.Fprintf(tw, "Seats\t%d\n", car.SeatingCapacity)
	fmt.Fprintf(tw, "Price/day\t$%.2f\n", car.PricePerDay)
	fmt.Fprintf(tw, "Plate\t%s\n", car.LicensePlate)
	fmt.Fprintf(tw, "Available\t%s\n", yesNo(car.Available))
	if car.ImageURL != "" {
		fmt.Fprintf(tw, "Image\t%s\n", car.ImageURL)
	}
	if car.Description != "" {
		fmt.Fprintf(tw, "Description\t%s\n", car.Description)
	}
	tw.Flush()
}

func printBookings(w io.Writer, list []client.Booking) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No bookings found.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCAR\tCUSTOMER\tPICKUP\tRETURN\tDAYS\tTOTAL\tSTATUS")
	for _, b := range list {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\t%d\t$%.2f\t%s\n",
			b.ID, b.CarID, b.Email, b.PickupDateTime, b.ReturnDateTime, b.RentalDays, b.TotalAmount, b.BookingStatus)
	}
	tw.Flush()
}

func printBooking(w io.Writer, b client.Booking) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Booking\t#%d\n", b.ID)
	fmt.Fprintf(tw, "Status\t%s\n", b.BookingStatus)
	fmt.Fprintf(tw, "Car\t%d\n", b.CarID)
	fmt.Fprintf(tw, "Pickup\t%s at %s\n", b.PickupDateTime, b.PickupLocation)
	fmt.Fprintf(tw, "Return\t%s at %s\n", b.ReturnDateTime, b.DropoffLocation)
	fmt.Fprintf(tw, "Days\t%d\n", b.RentalDays)
	fmt.Fprintf(tw, "Total\t$%.2f\n", b.TotalAmount)
	if b.AdminNotes != "" {
		fmt.Fprintf(tw, "Notes\t%s\n", b.AdminNotes)
	}
	tw.Flush()
}

func printFilterOptions(w io.Writer, o client.FilterOptions) {
	fmt.Fprintf(w, "Types:         %s\n", strings.Join(o.CarTypes, ", "))
	fmt.Fprintf(w, "Makes:         %s\n", strings.Join(o.Makes, ", "))
	fmt.Fprintf(w, "Fuel:          %s\n", strings.Join(o.FuelTypes, ", "))
	fmt.Fprintf(w, "Transmissions: %s\n", strings.Join(o.Transmissions, ", "))
}

func printAvailability(w io.Writer, a client.Availability) {
	fmt.Fprintf(w, "Car %d available: %s\n", a.CarID, yesNo(a.Available))
}

func printCarStatistics(w io.Writer, s client.CarStatistics) {
	fmt.Fprintf(w, "Total: %d  Available: %d  Unavailable: %d  Avg price/day: $%.2f\n",
		s.TotalCars, s.AvailableCars, s.UnavailableCars, s.AveragePricePerDay)
	for _, carType := range slices.Sorted(maps.Keys(s.CarsByType)) {
		fmt.Fprintf(w, "  %s: %d\n", carType, s.CarsByType[carType])
	}
}

func printOrderStatistics(w io.Writer, s client.OrderStatistics) {
	fmt.Fprintf(w, "Total: %d  Pending: %d  Approved: %d  Rejected: %d  Completed: %d  Cancelled: %d\n",
		s.TotalOrders, s.PendingOrders, s.ApprovedOrders, s.RejectedOrders, s.CompletedOrders, s.CancelledOrders)
	fmt.Fprintf(w, "Revenue: $%.2f  Pending revenue: $%.2f\n", s.TotalRevenue, s.PendingRevenue)
}
