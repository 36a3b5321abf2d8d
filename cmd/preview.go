package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/whiterosearts/petalsite/internal/preview"
	"github.com/whiterosearts/petalsite/internal/site"
)

var previewCmd = &cobra.Command{
	Use:   "preview [slug]",
	Short: "Preview a show's scroll effects in the terminal",
	Long: `Renders the quote reveal and the petal map of a show (the newest by default)
in the terminal. Scroll with the arrow keys or mouse wheel, select petals with
tab and open their sheet music with enter.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().Bool("print", false, "print petal links instead of opening a browser")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	c, err := loadContent(cfg)
	if err != nil {
		return err
	}

	var opened []string
	printOnly, _ := cmd.Flags().GetBool("print")
	openLink := func(url string) {
		opened = append(opened, url)
		if !printOnly {
			site.OpenBrowser(url)
		}
	}

	opts := preview.Options{
		FrameRate: cfg.Scroll.FrameRate,
		Travel:    cfg.Scroll.Travel,
		OpenLink:  openLink,
	}
	if len(args) == 1 {
		opts.Slug = args[0]
	}

	m, err := preview.New(c, opts)
	if err != nil {
		return err
	}
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running preview: %w", err)
	}

	for _, url := range opened {
		fmt.Fprintln(cmd.OutOrStdout(), url)
	}
	return nil
}
