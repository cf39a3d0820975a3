package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/teenfaith/teenfaith/internal/api"
	"github.com/teenfaith/teenfaith/internal/app"
	"github.com/teenfaith/teenfaith/internal/auth"
	"github.com/teenfaith/teenfaith/internal/content"
	"github.com/teenfaith/teenfaith/internal/motivation"
	"github.com/teenfaith/teenfaith/internal/registry"
	"github.com/teenfaith/teenfaith/internal/scheduler"
	"github.com/teenfaith/teenfaith/internal/storage"
	"golang.org/x/sync/errgroup"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the TeenFaith+ server",
	Long:  `Start the TeenFaith+ server to serve content, handle accounts and generate motivational messages.`,
	Example: `teenfaith serve --config config.yml
teenfaith serve -c /path/to/config.yml --log-level debug
`,
	Run: startServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func startServer(cmd *cobra.Command, _ []string) {
	cfg := loadConfig()

	kv, err := storage.New(cfg.Storage)
	if err != nil {
		log.Fatalf("failed to initialize storage: %v", err)
	}
	defer kv.Close() //nolint:errcheck

	reg := registry.New(kv)
	catalog := content.Default()
	ctrl := app.New(
		auth.New(reg, cfg.Auth),
		reg,
		catalog,
		content.NewDaily(catalog, time.Now()),
		motivation.New(cfg.Motivation),
		cfg.Avatar,
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sched, err := scheduler.New(ctx)
	if err != nil {
		log.Fatalf("failed to create scheduler: %v", err)
	}
	if err := ctrl.RegisterJobs(sched); err != nil {
		log.Fatalf("failed to register jobs: %v", err)
	}

	server, err := api.New(cfg, ctrl, log.GetLevel() == log.DebugLevel)
	if err != nil {
		log.Fatalf("failed to create API server: %v", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sched.Start()
		<-ctx.Done()
		return sched.Stop()
	})
	g.Go(func() error {
		return server.Run(ctx)
	})

	log.Info("teenfaith started successfully", "storage", cfg.Storage.Type)
	if err := g.Wait(); err != nil && err != context.Canceled {
		log.Error("server stopped with error", "error", err)
		return
	}
	log.Info("shut down gracefully")
}
