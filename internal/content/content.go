package content

import (
	"fmt"
	"os"
	"regexp"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// Load reads content from a YAML file. A missing file yields Default().
func Load(path string) (*Content, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	} else if err != nil {
		return nil, fmt.Errorf("accessing content %s: %w", path, err)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("reading content %s: %w", path, err)
	}

	c := &Content{}
	if err := k.Unmarshal("", c); err != nil {
		return nil, fmt.Errorf("unmarshalling content: %w", err)
	}
	return c, nil
}

// Save writes the content to a YAML file.
func (c *Content) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling content: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing content to %s: %w", path, err)
	}
	return nil
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Validate reports structural problems that would break rendering.
func (c *Content) Validate() error {
	seen := make(map[string]bool)
	for i, s := range c.Shows {
		if s.Slug == "" {
			return fmt.Errorf("shows[%d]: slug is required", i)
		}
		if !slugPattern.MatchString(s.Slug) {
			return fmt.Errorf("shows[%d]: invalid slug %q: use lowercase letters, digits and dashes", i, s.Slug)
		}
		if seen[s.Slug] {
			return fmt.Errorf("shows[%d]: duplicate slug %q", i, s.Slug)
		}
		seen[s.Slug] = true

		if s.Title == "" {
			return fmt.Errorf("show %q: title is required", s.Slug)
		}
		for j, p := range s.PetalPositions {
			if p.X < 0 || p.X > 100 || p.Y < 0 || p.Y > 100 {
				return fmt.Errorf("show %q: petal %d at (%g, %g) is outside 0..100", s.Slug, j, p.X, p.Y)
			}
		}
	}
	return nil
}

// Warnings lists problems that degrade the page without breaking it, such as
// petals whose link index has no matching link.
func (c *Content) Warnings() []string {
	var out []string
	for _, s := range c.Shows {
		for i := range s.PetalPositions {
			if _, ok := s.PetalLink(i); !ok {
				out = append(out, fmt.Sprintf("show %q: petal %d links to missing sheet %d", s.Slug, i, s.PetalPositions[i].LinkIndex))
			}
		}
		if s.Cover == "" {
			out = append(out, fmt.Sprintf("show %q: no cover image", s.Slug))
		}
	}
	for _, t := range c.Soundtracks {
		if !t.Playable() {
			out = append(out, fmt.Sprintf("soundtrack %q is not a direct media file; convert it before it can play inline", t.Label))
		}
	}
	if c.Site.Splash.Enabled && c.Site.Splash.Src == "" {
		out = append(out, "splash is enabled but has no video source")
	}
	return out
}
