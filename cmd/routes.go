package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"farewatch/pkg/workflow"
)

var (
	routesPhone string
	routeID     int
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Manage tracked routes",
}

var routesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tracked routes for a phone number",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), oneShotTimeout)
		defer cancel()

		alerts := workflow.NewAlertChannel(nil, printNotice)
		tracker := workflow.NewRouteTracker(newBackend(), alerts, logger)

		routes, err := tracker.List(ctx, routesPhone)
		if err != nil {
			return err
		}
		if len(routes) == 0 {
			fmt.Println("No tracked routes.")
			return nil
		}
		for _, r := range routes {
			status := "active"
			if !r.IsActive {
				status = "notified"
			}
			fmt.Printf("#%-4d %s → %s  target $%.2f  %d pax  %-8s  since %s\n",
				r.ID, r.Pickup, r.Dropoff, r.TargetPrice, r.PassengerCount,
				status, r.CreatedAt.Format("2006-01-02"))
		}
		return nil
	},
}

var routesRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Stop tracking a route",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), oneShotTimeout)
		defer cancel()

		alerts := workflow.NewAlertChannel(nil, printNotice)
		tracker := workflow.NewRouteTracker(newBackend(), alerts, logger)

		if err := tracker.Remove(ctx, routeID, routesPhone); err != nil {
			return err
		}
		fmt.Printf("Stopped tracking route #%d\n", routeID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(routesCmd)
	routesCmd.AddCommand(routesListCmd, routesRemoveCmd)

	routesListCmd.Flags().StringVar(&routesPhone, "phone", "", "Phone number in E.164 format")
	routesListCmd.MarkFlagRequired("phone")

	routesRemoveCmd.Flags().IntVar(&routeID, "id", 0, "Tracked route id")
	routesRemoveCmd.Flags().StringVar(&routesPhone, "phone", "", "Phone number to refresh the list for afterwards")
	routesRemoveCmd.MarkFlagRequired("id")
}
