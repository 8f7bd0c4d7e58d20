package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"zhi-theme/core/feature"
	"zhi-theme/core/logger"
	"zhi-theme/core/middleware/auth"
	"zhi-theme/core/middleware/rayid"
	"zhi-theme/feature/status"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "zhi-theme/docs/swagger"
)

// @title Zhi Theme Bootstrap API
// @version 1.0
// @description Status of the zhi theme dependency bootstrap.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Bootstrap the theme and serve its status",
	Long:  `Runs one bootstrap pass, then starts the HTTP status server until interrupted.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		// 1. Load configuration, logger, storage and history
		a, err := newApp(ctx, true)
		if err != nil {
			log.Fatalf("Failed to initialize: %v", err)
		}
		logg := a.logger
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 2. Build the bootstrap
		b, err := a.bootstrapper()
		if err != nil {
			logg.Fatal("Failed to create bootstrap", zap.Error(err))
		}

		// 3. Register features
		var history status.HistoryReader
		if a.history != nil {
			history = a.history
		}
		statusFeature := status.NewFeature(b, history, logg)
		mgr := feature.NewManager()
		mgr.Register(statusFeature)

		// 4. First bootstrap pass
		if _, err := statusFeature.Service().Rebootstrap(ctx); err != nil {
			logg.Error("Initial bootstrap failed", zap.Error(err))
		}

		// 5. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		// RayID first so every request log carries it
		app.Use(rayid.New())
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Swagger stays public
		app.Get("/swagger/*", swagger.HandlerDefault)

		app.Use(auth.New(auth.Config{ApiKey: a.cfg.Server.ApiKey}))

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 6. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", a.cfg.Server.Port))
			if err := app.Listen(a.cfg.Server.Addr()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 7. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
