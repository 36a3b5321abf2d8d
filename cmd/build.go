package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/whiterosearts/petalsite/internal/config"
	"github.com/whiterosearts/petalsite/internal/content"
	"github.com/whiterosearts/petalsite/internal/progress"
	"github.com/whiterosearts/petalsite/internal/site"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Generate the static portfolio site",
	Long:  `Renders the landing page, one page per show, the stylesheet and script, and copies local assets into the output directory.`,
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().String("output", "", "override output directory (defaults to output_dir from the config)")
	buildCmd.Flags().Bool("live", false, "render pages for the preview server's live scroll sessions")
	buildCmd.Flags().Bool("serve", false, "start the preview server after generating")
	buildCmd.Flags().Int("port", 0, "port for the preview server (defaults to serve.port)")
	buildCmd.Flags().Bool("open", false, "open browser automatically when serving")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
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

	if outputDir, _ := cmd.Flags().GetString("output"); outputDir != "" {
		cfg.OutputDir = outputDir
	}
	if port, _ := cmd.Flags().GetInt("port"); port != 0 {
		cfg.Serve.Port = port
	}
	serve, _ := cmd.Flags().GetBool("serve")
	live, _ := cmd.Flags().GetBool("live")
	if serve && !cmd.Flags().Changed("live") {
		live = cfg.Serve.Live
	}

	pageCount, err := buildSite(cmd.Context(), cfg, c, live, progress.NewReporter(), logger)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Static site generated: %s (%d pages)\n", cfg.OutputDir, pageCount)

	if !serve {
		return nil
	}
	open, _ := cmd.Flags().GetBool("open")
	return serveSite(cmd, cfg, c, live, open, logger)
}

// buildSite runs the generator with the config's asset and scroll settings.
func buildSite(ctx context.Context, cfg *config.Config, c *content.Content, live bool, reporter progress.Reporter, logger *zap.Logger) (int, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	gen := site.NewGenerator(c, cfg.OutputDir, site.Options{
		AssetsDir:    cfg.AssetsDir,
		AssetInclude: cfg.AssetInclude,
		Live:         live,
		Travel:       cfg.Scroll.Travel,
		FrameRate:    cfg.Scroll.FrameRate,
	})
	gen.Reporter = reporter
	gen.Logger = logger
	pageCount, err := gen.Generate(ctx)
	if err != nil {
		return 0, fmt.Errorf("generating site: %w", err)
	}
	return pageCount, nil
}
