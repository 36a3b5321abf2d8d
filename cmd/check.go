package cmd

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/whiterosearts/petalsite/internal/site"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate content and probe remote media",
	Long: `Validates the content file, lists warnings such as petals without links or
soundtracks that cannot play inline, and checks that every remote image,
video and sheet music link answers. Unreachable media is reported, not fatal,
unless --strict is set.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().Bool("offline", false, "skip probing remote media")
	checkCmd.Flags().Int("concurrency", 4, "number of media probes in flight")
	checkCmd.Flags().Duration("timeout", 15*time.Second, "timeout per media probe")
	checkCmd.Flags().Bool("strict", false, "exit non-zero when media is unreachable")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	c, err := loadContent(cfg)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if err := c.Validate(); err != nil {
		return fmt.Errorf("content %s: %w", cfg.ContentFile, err)
	}
	fmt.Fprintf(out, "Content %s: %d shows, %d soundtracks\n", cfg.ContentFile, len(c.Shows), len(c.Soundtracks))

	warnings := c.Warnings()
	for _, w := range warnings {
		fmt.Fprintf(out, "  warning: %s\n", w)
	}

	if offline, _ := cmd.Flags().GetBool("offline"); offline {
		return nil
	}

	concurrency, _ := cmd.Flags().GetInt("concurrency")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	urls := c.AssetURLs()
	fmt.Fprintf(out, "Checking %d remote assets...\n", len(urls))

	results := site.CheckAssets(cmd.Context(), &http.Client{Timeout: timeout}, urls, concurrency)
	failed := 0
	for _, r := range results {
		switch {
		case r.OK():
			if verbose {
				fmt.Fprintf(out, "  ok   %d %s\n", r.StatusCode, r.URL)
			}
		case r.Err != "":
			failed++
			fmt.Fprintf(out, "  FAIL %s: %s\n", r.URL, r.Err)
		default:
			failed++
			fmt.Fprintf(out, "  FAIL %d %s\n", r.StatusCode, r.URL)
		}
	}
	fmt.Fprintf(out, "%d of %d assets reachable\n", len(results)-failed, len(results))

	if strict, _ := cmd.Flags().GetBool("strict"); strict && failed > 0 {
		return fmt.Errorf("%d assets unreachable", failed)
	}
	return nil
}
