package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/whiterosearts/petalsite/internal/config"
	"github.com/whiterosearts/petalsite/internal/content"
	"github.com/whiterosearts/petalsite/internal/progress"
	"github.com/whiterosearts/petalsite/internal/server"
	"github.com/whiterosearts/petalsite/internal/site"
	"github.com/whiterosearts/petalsite/internal/watch"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Build the site and start the local preview server",
	Long: `Builds the site and serves it with live scroll sessions, petal redirects,
health and metrics endpoints. With --watch the site is rebuilt whenever the
content or config file changes.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "port to listen on (defaults to serve.port)")
	serveCmd.Flags().Bool("open", false, "open browser automatically")
	serveCmd.Flags().Bool("watch", false, "rebuild when the content or config file changes")
	serveCmd.Flags().Bool("static", false, "compute scroll effects in the browser instead of live sessions")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	c, err := loadContent(cfg)
	if err != nil {
		return err
	}

	if port, _ := cmd.Flags().GetInt("port"); port != 0 {
		cfg.Serve.Port = port
	}
	if w, _ := cmd.Flags().GetBool("watch"); w {
		cfg.Watch.Enabled = true
	}
	live := cfg.Serve.Live
	if static, _ := cmd.Flags().GetBool("static"); static {
		live = false
	}

	if _, err := buildSite(cmd.Context(), cfg, c, live, progress.NewReporter(), logger); err != nil {
		return err
	}

	open, _ := cmd.Flags().GetBool("open")
	return serveSite(cmd, cfg, c, live, open, logger)
}

// serveSite runs the preview server until interrupted, rebuilding on change
// when watching is enabled.
func serveSite(cmd *cobra.Command, cfg *config.Config, c *content.Content, live, open bool, logger *zap.Logger) error {
	srv := server.New(server.Config{
		Port:      cfg.Serve.Port,
		SiteDir:   cfg.OutputDir,
		AllowAll:  cfg.Serve.AllowAll,
		FrameRate: cfg.Scroll.FrameRate,
		Travel:    cfg.Scroll.Travel,
	}, c, logger)

	// Graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving site: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		fmt.Fprintln(os.Stderr, "\nShutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if cfg.Watch.Enabled {
		w, err := watch.New([]string{cfg.ContentFile, cfgFile}, cfg.Watch.DebounceDelay(),
			func(ctx context.Context, paths []string) {
				rebuild(ctx, cfg, srv, live, logger, paths)
			}, logger)
		if err != nil {
			stop()
			g.Wait()
			return err
		}
		g.Go(func() error { return w.Run(ctx) })
		fmt.Fprintf(os.Stderr, "Watching %s and %s for changes\n", cfg.ContentFile, cfgFile)
	}

	url := fmt.Sprintf("http://localhost:%d", cfg.Serve.Port)
	fmt.Fprintf(cmd.OutOrStdout(), "Serving at %s — press Ctrl+C to stop\n", url)
	if open {
		site.OpenBrowser(url)
	}

	return g.Wait()
}

// rebuild regenerates the site after a watched file changed and swaps the
// served content. Failures keep the previous build online.
func rebuild(ctx context.Context, effective *config.Config, srv *server.Server, live bool, logger *zap.Logger, paths []string) {
	logger.Info("change detected, rebuilding", zap.Strings("paths", paths))

	c, pages, err := rebuildSite(ctx, effective, live, logger)
	if err != nil {
		logger.Error("rebuild failed", zap.Error(err))
		return
	}
	srv.SetContent(c)
	logger.Info("site rebuilt", zap.Int("pages", pages))
}

// rebuildSite re-reads the config file and content, keeping the output
// directory and serve settings of the running command so flag overrides
// survive the rebuild.
func rebuildSite(ctx context.Context, effective *config.Config, live bool, logger *zap.Logger) (*content.Content, int, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, 0, err
	}
	cfg.OutputDir = effective.OutputDir
	cfg.Serve = effective.Serve

	c, err := loadContent(cfg)
	if err != nil {
		return nil, 0, err
	}
	pages, err := buildSite(ctx, cfg, c, live, progress.Nop{}, logger)
	if err != nil {
		return nil, 0, err
	}
	return c, pages, nil
}
