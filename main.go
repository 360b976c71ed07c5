package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"quicknotes-server/configs"
	"quicknotes-server/server"
	service "quicknotes-server/services"
)

var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:           "quicknotes",
		Short:         "QuickNotes REST API server",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}

	flags := rootCmd.Flags()
	flags.Int("port", 5000, "HTTP listen port")
	flags.String("store-driver", configs.DriverMongo, "note store: mongo, redis, sqlite or memory")
	flags.String("mongo-uri", "", "MongoDB connection string")
	flags.Int("grpc-port", 50051, "gRPC health port, 0 disables")
	flags.String("log-level", "info", "log level")

	if err := rootCmd.Execute(); err != nil {
		logrus.Fatal(err)
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := configs.Load(cmd.Flags())
	if err != nil {
		return errors.Wrap(err, "invalid configuration")
	}
	configs.InitLogrus(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := configs.ConnectStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			logrus.WithError(err).Warn("Closing store")
		}
	}()

	hub := service.NewWebSocketService()
	noteService := service.NewNoteService(store.Notes, hub)
	app := server.NewApp(noteService, hub, store.Ping, server.AppOptions{
		CORSOrigin: cfg.CORSOrigin,
		Metrics:    true,
	})

	if cfg.GRPCPort > 0 {
		go func() {
			if err := server.RunGRPCServer(ctx, fmt.Sprintf(":%d", cfg.GRPCPort), store.Ping); err != nil {
				logrus.WithError(err).Error("gRPC health server stopped")
			}
		}()
	}

	if cfg.ConsulAddress != "" {
		if err := configs.RegisterService(ctx, cfg.ConsulAddress, configs.NewConsulService(cfg)); err != nil {
			logrus.WithError(err).Warn("Consul service registration failed")
		}
	}

	go func() {
		<-ctx.Done()
		logrus.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logrus.WithError(err).Warn("HTTP shutdown")
		}
	}()

	logrus.Infof("Server running on port %d (store: %s)", cfg.Port, cfg.StoreDriver)
	return app.Listen(cfg.ListenAddr())
}
