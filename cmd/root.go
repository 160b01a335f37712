package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"farewatch/cmd/ui"
	"farewatch/pkg/api"
	"farewatch/pkg/workflow"
)

var logger *zap.Logger

var rootCmd = &cobra.Command{
	Use:   "farewatch",
	Short: "Compare ride and flight prices, track routes for price drops",
	Long: `farewatch compares cab and flight prices across providers and can
register a route so you get notified when its price drops below the fare
you saw. Run without arguments for the interactive interface, or use the
subcommands for one-shot queries.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if viper.GetBool("verbose") {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return ui.Run(newSession())
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("base-url", "http://localhost:8000", "Pricing backend base URL")
	rootCmd.PersistentFlags().Duration("timeout", api.DefaultTimeout, "HTTP request timeout")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logs")
	viper.BindPFlags(rootCmd.PersistentFlags())

	viper.SetEnvPrefix("FAREWATCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func newBackend() *api.Client {
	return api.NewClient(
		viper.GetString("base-url"),
		logger.Named("api"),
		api.WithTimeout(viper.GetDuration("timeout")),
	)
}

// newSession hands the interactive UI its backend; the UI wires its own
// workflow instance so notices and suggestions land in its event loop.
func newSession() ui.Session {
	return ui.Session{
		Backend: newBackend(),
		Clock:   workflow.SystemClock(),
		Logger:  logger.Named("ui"),
	}
}

// oneShotTimeout bounds non-interactive command runs.
const oneShotTimeout = 30 * time.Second
