package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"farewatch/pkg/models"
	"farewatch/pkg/utils"
	"farewatch/pkg/workflow"
)

var (
	compareFrom       string
	compareTo         string
	comparePassengers int
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare cab prices for a trip",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), oneShotTimeout)
		defer cancel()

		backend := newBackend()
		alerts := workflow.NewAlertChannel(nil, printNotice)
		comparator := workflow.NewQuoteComparator(backend, alerts, nil, logger)

		estimates, err := comparator.Compare(ctx, models.TripRequest{
			Pickup:         compareFrom,
			Dropoff:        compareTo,
			PassengerCount: comparePassengers,
		})
		if err != nil {
			return describeError(err)
		}

		if len(estimates) == 0 {
			fmt.Println("No estimates available for this route.")
			return nil
		}
		for _, est := range estimates {
			printEstimate(est)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)
	compareCmd.Flags().StringVarP(&compareFrom, "from", "f", "", "Pickup location")
	compareCmd.Flags().StringVarP(&compareTo, "to", "t", "", "Dropoff location")
	compareCmd.Flags().IntVarP(&comparePassengers, "passengers", "p", 1, "Passenger count (1-7)")
}

func printEstimate(est models.PriceEstimate) {
	marker := "  "
	if est.Recommended {
		marker = "★ "
	}
	fmt.Printf("%s%-8s %8s  %-12s %6.1f mi  %-12s %s\n",
		marker, est.Provider, est.PriceEstimate,
		utils.FormatDuration(est.Duration), est.Distance,
		utils.RatePerMile(est.PriceEstimate, est.Distance), est.Capacity)
}

// printNotice surfaces workflow notices on stderr for one-shot runs.
func printNotice(n *models.Notice) {
	if n == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "[%s] %s\n", n.Severity, n.Message)
}

// describeError renders validation errors field by field; everything else
// passes through.
func describeError(err error) error {
	var verr *workflow.ValidationError
	if errors.As(err, &verr) {
		fields := make([]string, 0, len(verr.Fields))
		for f := range verr.Fields {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		for _, f := range fields {
			fmt.Fprintf(os.Stderr, "  %s: %s\n", f, verr.Fields[f])
		}
		return errors.New("invalid request")
	}
	return err
}
