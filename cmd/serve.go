package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"preset-manager/core/loader"
	"preset-manager/core/logger"
	"preset-manager/core/middleware/auth"
	"preset-manager/core/middleware/rayid"
	"preset-manager/feature/integrity"
	"preset-manager/feature/presets"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "preset-manager/docs/swagger"
)

// @title Preset Manager API
// @version 1.0
// @description API for managing Voicemeeter presets and their backups.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the preset manager server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. Configuration, logger and backends
		rt, err := bootstrap(true)
		if err != nil {
			return err
		}
		defer rt.close()
		logg := rt.logger
		zap.ReplaceGlobals(logg)

		cfg := rt.cfg
		if !cfg.Server.IsValidFormat() {
			return fmt.Errorf("unsupported server format %q", cfg.Server.Format)
		}

		// 2. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			BodyLimit:             cfg.Server.BodyLimit,
		})

		// 3. Initialize Feature Loader
		mgr := loader.NewManager()
		mgr.Register(presets.NewFeature(rt.presets, cfg.Server.Extension()))
		mgr.Register(integrity.NewFeature(rt.integrity()))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Request logging with the ray id
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

		// 3. Public endpoints
		app.Get("/swagger/*", swagger.HandlerDefault)
		skip := []string{}
		if cfg.Telemetry.Enabled {
			app.Get(cfg.Telemetry.Path, adaptor.HTTPHandler(promhttp.Handler()))
			skip = append(skip, cfg.Telemetry.Path)
		}

		// 4. Auth protects everything registered after it
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey, Skip: skip}))

		// 5. Load Features
		if err := mgr.LoadAll(app); err != nil {
			return err
		}

		// 6. Start Server
		go func() {
			logg.Info("Starting server",
				zap.String("port", cfg.Server.Port),
				zap.String("library", rt.presets.LibraryDir()),
				zap.Bool("catalog", rt.db != nil),
				zap.Bool("mirror", rt.mirror != nil),
			)
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 7. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		return app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)
}
