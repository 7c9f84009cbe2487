package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Zachkp/portfolio/internal/blog"
	"github.com/Zachkp/portfolio/internal/printer"
	"github.com/Zachkp/portfolio/internal/profile"
	"github.com/Zachkp/portfolio/internal/store"
	"github.com/Zachkp/portfolio/internal/views"
	"github.com/Zachkp/portfolio/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web server",
	Long: `Run the web server. Landing pages are generated and audited once at
startup. SQLite holds visitor records and the blog cache; Redis, when
REDIS_URL is set, holds view counts.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	gin.SetMode(cfg.Server.Mode)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gen, err := newGenerator(cfg)
	if err != nil {
		return err
	}
	prof, err := profile.Default()
	if err != nil {
		return printer.Error("Embedded profile is broken", err.Error(), nil)
	}

	db, err := store.Open(cfg.Database.Path)
	if err != nil {
		return printer.Error("Failed to open database", err.Error(),
			[]string{"Check DATABASE_PATH points at a writable location"})
	}
	defer db.Close()
	if err := db.Migrate(ctx); err != nil {
		return printer.Error("Failed to migrate database", err.Error(), nil)
	}

	var counter views.Counter = views.NopCounter{}
	if cfg.Redis.URL != "" {
		dialCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		rc, err := views.Dial(dialCtx, cfg.Redis.URL)
		cancel()
		if err != nil {
			logger.Warn("view counts disabled", zap.Error(err))
		} else {
			defer rc.Close()
			counter = rc
		}
	}

	// a nil interface, not a typed nil *blog.Client, when no store is set
	var src blog.Source
	if cfg.Blog.APIURL != "" {
		src = blog.NewClient(blog.ClientOptions{
			BaseURL:           cfg.Blog.APIURL,
			APIKey:            cfg.Blog.APIKey,
			Timeout:           time.Duration(cfg.Blog.TimeoutSeconds) * time.Second,
			RequestsPerSecond: cfg.Blog.RequestsPerSecond,
		})
	}

	srv, err := web.New(ctx, web.Deps{
		Config:    cfg,
		Logger:    logger,
		Generator: gen,
		Profile:   prof,
		Blog:      blog.NewService(src, db, logger),
		Visitors:  db,
		Views:     counter,
	})
	if err != nil {
		return printer.Error("Failed to start server", err.Error(), nil)
	}

	printer.Success("Serving on http://localhost%s\n", cfg.Addr())
	if err := srv.Run(ctx); err != nil {
		return printer.Error("Server stopped", err.Error(),
			[]string{"Check nothing else is listening on port " + cfg.Server.Port})
	}
	return nil
}
