package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/whiterosearts/petalsite/internal/content"
)

// WizardResult is what the init wizard produced.
type WizardResult struct {
	Config     *Config
	Content    *content.Content
	ConfigPath string
}

// RunWizard runs an interactive setup, then saves the config to configPath
// and a starter content file next to it.
func RunWizard(configPath string) (*WizardResult, error) {
	fmt.Println("Welcome to petalsite! Let's set up your portfolio.")
	fmt.Println()

	c := content.Default()

	// 1. Artist name.
	namePrompt := promptui.Prompt{
		Label:   "Artist name",
		Default: c.About.Name,
	}
	name, err := namePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("artist name: %w", err)
	}

	// 2. Site title and tagline.
	titlePrompt := promptui.Prompt{
		Label:   "Site title",
		Default: c.Site.Title,
	}
	title, err := titlePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("site title: %w", err)
	}

	taglinePrompt := promptui.Prompt{
		Label:   "Tagline",
		Default: c.Site.Tagline,
	}
	tagline, err := taglinePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("tagline: %w", err)
	}

	// 3. Splash video.
	splashPrompt := promptui.Select{
		Label: "Show a splash video before the page",
		Items: []string{"yes", "no"},
	}
	splashIdx, _, err := splashPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("splash selection: %w", err)
	}

	// 4. Output directory.
	outputPrompt := promptui.Prompt{
		Label:   "Output directory for the generated site",
		Default: "public",
	}
	outputDir, err := outputPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("output dir: %w", err)
	}

	// 5. Extra asset patterns.
	assetPrompt := promptui.Prompt{
		Label:   "Extra asset patterns (comma-separated, leave blank for defaults)",
		Default: "",
	}
	assetStr, err := assetPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("asset patterns: %w", err)
	}

	cfg := DefaultConfig()
	cfg.OutputDir = outputDir
	if extra := splitAndTrim(assetStr); len(extra) > 0 {
		cfg.AssetInclude = append(append([]string{}, DefaultAssetInclude...), extra...)
	}

	c.About.Name = name
	c.Site.Title = title
	c.Site.Tagline = tagline
	c.Site.Splash.Enabled = splashIdx == 0

	if err := cfg.Save(configPath); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	if _, err := os.Stat(cfg.ContentFile); err == nil {
		fmt.Printf("\nKeeping existing %s\n", cfg.ContentFile)
	} else {
		if err := c.Save(cfg.ContentFile); err != nil {
			return nil, fmt.Errorf("saving content: %w", err)
		}
		fmt.Printf("\nStarter content written to %s\n", cfg.ContentFile)
	}

	for _, w := range c.Warnings() {
		fmt.Printf("Note: %s\n", w)
	}

	fmt.Printf("Configuration saved to %s\n", configPath)
	return &WizardResult{Config: cfg, Content: c, ConfigPath: configPath}, nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
