package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"farewatch/pkg/models"
	"farewatch/pkg/workflow"
)

var (
	trackFrom       string
	trackTo         string
	trackPassengers int
	trackPhone      string
	trackProvider   string
)

var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Track a route and get notified when its price drops",
	Long: `track compares prices for the route, picks an estimate (the
recommended one unless --provider says otherwise) and registers its current
price as the target. You'll be notified once the route drops below it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), oneShotTimeout)
		defer cancel()

		backend := newBackend()
		alerts := workflow.NewAlertChannel(nil, printNotice)
		comparator := workflow.NewQuoteComparator(backend, alerts, nil, logger)
		tracker := workflow.NewRouteTracker(backend, alerts, logger)

		estimates, err := comparator.Compare(ctx, models.TripRequest{
			Pickup:         trackFrom,
			Dropoff:        trackTo,
			PassengerCount: trackPassengers,
		})
		if err != nil {
			return describeError(err)
		}
		if len(estimates) == 0 {
			return fmt.Errorf("no estimates available for this route")
		}

		chosen := estimates[0]
		for _, est := range estimates {
			if trackProvider != "" && est.Provider == trackProvider {
				chosen = est
				break
			}
			if trackProvider == "" && est.Recommended {
				chosen = est
			}
		}

		route, err := tracker.Create(ctx, chosen, trackPhone, trackPassengers)
		if err != nil {
			return err
		}
		fmt.Printf("Tracking route #%d: %s → %s at %s (%s)\n",
			route.ID, route.Pickup, route.Dropoff, chosen.PriceEstimate, chosen.Provider)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(trackCmd)
	trackCmd.Flags().StringVarP(&trackFrom, "from", "f", "", "Pickup location")
	trackCmd.Flags().StringVarP(&trackTo, "to", "t", "", "Dropoff location")
	trackCmd.Flags().IntVarP(&trackPassengers, "passengers", "p", 1, "Passenger count (1-7)")
	trackCmd.Flags().StringVar(&trackPhone, "phone", "", "Phone number in E.164 format (+1XXXXXXXXXX)")
	trackCmd.Flags().StringVar(&trackProvider, "provider", "", "Track a specific provider's estimate instead of the recommended one")
	trackCmd.MarkFlagRequired("phone")
}
