package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"farewatch/pkg/models"
	"farewatch/pkg/utils"
	"farewatch/pkg/workflow"
)

var (
	flightFrom       string
	flightTo         string
	flightDepart     string
	flightReturn     string
	flightCabin      string
	flightPassengers int
)

var flightsCmd = &cobra.Command{
	Use:   "flights",
	Short: "Compare flight prices for a route",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), oneShotTimeout)
		defer cancel()

		backend := newBackend()
		alerts := workflow.NewAlertChannel(nil, printNotice)
		comparator := workflow.NewQuoteComparator(backend, alerts, nil, logger)

		flights, err := comparator.CompareFlights(ctx, models.FlightRequest{
			Origin:        flightFrom,
			Destination:   flightTo,
			DepartureDate: flightDepart,
			ReturnDate:    flightReturn,
			Passengers:    flightPassengers,
			CabinClass:    flightCabin,
		})
		if err != nil {
			return describeError(err)
		}

		if len(flights) == 0 {
			fmt.Println("No flights found for this route.")
			return nil
		}
		for _, f := range flights {
			marker := "  "
			if f.Recommended {
				marker = "★ "
			}
			stops := fmt.Sprintf("%d stops", f.Stops)
			if f.Stops == 0 {
				stops = "nonstop"
			} else if f.Stops == 1 {
				stops = "1 stop"
			}
			fmt.Printf("%s%-14s %10s  %-10s %-8s %s\n",
				marker, f.Provider, f.PriceEstimate,
				utils.FormatDuration(f.Duration), stops, f.CabinClass)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(flightsCmd)
	flightsCmd.Flags().StringVarP(&flightFrom, "from", "f", "", "Origin city")
	flightsCmd.Flags().StringVarP(&flightTo, "to", "t", "", "Destination city")
	flightsCmd.Flags().StringVarP(&flightDepart, "depart", "d", "", "Departure date (YYYY-MM-DD)")
	flightsCmd.Flags().StringVarP(&flightReturn, "return", "r", "", "Return date (YYYY-MM-DD), omit for one-way")
	flightsCmd.Flags().StringVarP(&flightCabin, "cabin", "c", models.CabinEconomy, "Cabin class: economy, premium_economy, business, first")
	flightsCmd.Flags().IntVarP(&flightPassengers, "passengers", "p", 1, "Passenger count")
}
