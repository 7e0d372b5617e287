package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/diffreview/internal/providers"
	"github.com/dshills/diffreview/internal/server"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var flagAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the review HTTP/WebSocket service",
	Long: `Serve exposes POST /api/review, GET /api/models, GET /api/health and
GET /ws. Each request carries its own provider and API key.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		overrides := buildOverrides()
		if flagAddr != "" {
			overrides["addr"] = flagAddr
		}
		cfg, err := loadConfig(overrides)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := server.New(newDispatcher(cfg), server.Options{
			Addr:          cfg.Server.Addr,
			AllowedOrigin: cfg.Server.AllowedOrigin,
			ModelsFn:      func() any { return providers.Table() },
		}, log.Logger)

		if err := srv.Run(ctx); err != nil {
			fail(cmd, ExitRuntimeError, "%v", err)
			return nil
		}
		log.Info().Msg("review service stopped")
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "Listen address (default from config, 127.0.0.1:8787)")
}
