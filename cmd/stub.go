package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"farewatch/pkg/stub"
)

var (
	stubAddr          string
	stubCheckInterval time.Duration
)

var stubCmd = &cobra.Command{
	Use:   "stub",
	Short: "Run a local in-memory pricing backend",
	Long: `stub serves the full backend API on localhost with deterministic
mock pricing, so the client can be developed and demoed without the real
service. Tracked routes are kept in memory and re-priced periodically.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server := stub.NewServer(logger.Named("stub"))
		server.Watcher = stub.NewWatcher(server.Store, logger.Named("watcher"), stubCheckInterval)

		watchCtx, stopWatch := context.WithCancel(cmd.Context())
		defer stopWatch()
		go server.Watcher.Run(watchCtx)

		srv := &http.Server{
			Addr:              stubAddr,
			Handler:           server.Engine,
			ReadHeaderTimeout: 10 * time.Second,
		}

		go func() {
			logger.Info("stub backend listening", zap.String("addr", stubAddr))
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("stub backend stopped", zap.Error(err))
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit

		logger.Info("shutting down stub backend")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	},
}

func init() {
	rootCmd.AddCommand(stubCmd)
	stubCmd.Flags().StringVar(&stubAddr, "addr", ":8000", "Listen address")
	stubCmd.Flags().DurationVar(&stubCheckInterval, "check-interval", stub.DefaultCheckInterval, "How often tracked routes are re-priced")
}
