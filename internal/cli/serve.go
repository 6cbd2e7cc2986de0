package cli

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/chrisagrams/mstransfer/internal/auth"
	"github.com/chrisagrams/mstransfer/internal/codec"
	"github.com/chrisagrams/mstransfer/internal/config"
	"github.com/chrisagrams/mstransfer/internal/events"
	"github.com/chrisagrams/mstransfer/internal/resources"
	"github.com/chrisagrams/mstransfer/internal/server"
	"github.com/chrisagrams/mstransfer/internal/transfer"
)

func newServeCmd() *cobra.Command {
	cfg := config.DefaultServerConfig()
	var apiKeyFlag string
	var codecBinary string
	var workerCount int
	storeAsFlag := string(cfg.StoreAs)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run an mstransfer receiver",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.StoreAs = config.StoreAs(storeAsFlag)
			cfg.APIKey = config.ResolveAPIKey(apiKeyFlag)
			if cfg.APIKey != "" && cfg.Auth == config.AuthNone {
				cfg.Auth = config.AuthAPIKey
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}

			logger := GetLogger()
			bus := events.NewEventBus(0)
			logger.SubscribeEventBus(bus)

			var authenticator auth.Authenticator = auth.NoneAuthenticator{}
			if cfg.Auth == config.AuthAPIKey {
				authenticator = auth.APIKeyAuthenticator{Key: cfg.APIKey}
			}

			adapter := codec.NewProcessAdapter(codecBinary)
			registry := transfer.NewRegistry(bus)
			resourceMgr := resources.NewManager(resources.Config{MaxThreads: workerCount})
			pool := transfer.NewDecompressWorkerPool(resourceMgr.Size(), adapter)

			srv := server.NewServer(cfg, registry, adapter, pool, authenticator, logger)
			router := server.NewRouter(srv)

			ctx := GetContext()
			go srv.RunSweepLoop(ctx, time.Duration(cfg.SweepInterval)*time.Second, time.Duration(cfg.SweepMaxAgeSecs)*time.Second)

			httpServer := &http.Server{
				Addr:    cfg.Addr(),
				Handler: router,
			}

			go func() {
				<-ctx.Done()
				httpServer.Close()
			}()

			logger.Info().Str("addr", cfg.Addr()).Str("store_as", string(cfg.StoreAs)).Msg("mstransfer receiver listening")
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&cfg.Host, "host", cfg.Host, "Bind host")
	cmd.Flags().IntVar(&cfg.Port, "port", cfg.Port, "Bind port")
	cmd.Flags().StringVar(&cfg.OutDir, "out-dir", cfg.OutDir, "Output directory for received files")
	cmd.Flags().StringVar(&storeAsFlag, "store-as", storeAsFlag, `Stored format: "msz" or "mzml"`)
	cmd.Flags().StringVar(&apiKeyFlag, "api-key", "", "Require this API key (enables api-key auth)")
	cmd.Flags().StringVar(&codecBinary, "codec-binary", "", "Path to the external codec executable (default: mscompress on PATH)")
	cmd.Flags().IntVar(&workerCount, "decompress-workers", 0, "Concurrent decompression worker count (0 = auto-detect from CPU count)")
	cmd.Flags().IntVar(&cfg.SweepInterval, "sweep-interval", cfg.SweepInterval, "Registry sweep interval, seconds")
	cmd.Flags().IntVar(&cfg.SweepMaxAgeSecs, "sweep-max-age", cfg.SweepMaxAgeSecs, "Terminal record retention before sweep, seconds")

	return cmd
}
