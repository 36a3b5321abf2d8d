// Package content holds the static content of the portfolio: shows, the about
// section and site-wide settings. Content is loaded once and passed to the
// renderers explicitly.
package content

import (
	"net/url"
	"strings"
)

// SheetLink is a labelled external document attached to a show.
type SheetLink struct {
	Label string `yaml:"label" koanf:"label" json:"label"`
	URL   string `yaml:"url" koanf:"url" json:"url"`
}

// Petal is a clickable marker placed over a show's cover at percentage
// coordinates. LinkIndex points into the show's SheetMusicLinks.
type Petal struct {
	X         float64 `yaml:"x" koanf:"x" json:"x"`
	Y         float64 `yaml:"y" koanf:"y" json:"y"`
	LinkIndex int     `yaml:"link_index" koanf:"link_index" json:"link_index"`
}

// Show is one released production.
type Show struct {
	Slug            string      `yaml:"slug" koanf:"slug" json:"slug"`
	Title           string      `yaml:"title" koanf:"title" json:"title"`
	Year            int         `yaml:"year" koanf:"year" json:"year"`
	Cover           string      `yaml:"cover" koanf:"cover" json:"cover"`
	YouTubeID       string      `yaml:"youtube_id" koanf:"youtube_id" json:"youtube_id"`
	SoundCloudURL   string      `yaml:"soundcloud_url" koanf:"soundcloud_url" json:"soundcloud_url"`
	Description     string      `yaml:"description" koanf:"description" json:"description"`
	SheetMusicLinks []SheetLink `yaml:"sheet_music_links" koanf:"sheet_music_links" json:"sheet_music_links"`
	PetalPositions  []Petal     `yaml:"petal_positions" koanf:"petal_positions" json:"petal_positions"`
}

// PetalLink resolves the link behind petal i. ok is false when either the
// petal or its link index does not exist; callers treat that as a no-op.
func (s Show) PetalLink(i int) (SheetLink, bool) {
	if i < 0 || i >= len(s.PetalPositions) {
		return SheetLink{}, false
	}
	idx := s.PetalPositions[i].LinkIndex
	if idx < 0 || idx >= len(s.SheetMusicLinks) {
		return SheetLink{}, false
	}
	link := s.SheetMusicLinks[idx]
	if strings.TrimSpace(link.URL) == "" {
		return SheetLink{}, false
	}
	return link, true
}

// EmbedURL returns the YouTube embed URL, or "" without a video.
func (s Show) EmbedURL() string {
	if s.YouTubeID == "" {
		return ""
	}
	return "https://www.youtube.com/embed/" + url.PathEscape(s.YouTubeID)
}

// WatchURL returns the YouTube watch URL, or "" without a video.
func (s Show) WatchURL() string {
	if s.YouTubeID == "" {
		return ""
	}
	return "https://www.youtube.com/watch?v=" + url.QueryEscape(s.YouTubeID)
}

// AboutLinks are the artist's outbound profiles.
type AboutLinks struct {
	YouTube    string `yaml:"youtube" koanf:"youtube" json:"youtube"`
	SoundCloud string `yaml:"soundcloud" koanf:"soundcloud" json:"soundcloud"`
	Email      string `yaml:"email" koanf:"email" json:"email"`
}

// About is the biography section.
type About struct {
	Name    string     `yaml:"name" koanf:"name" json:"name"`
	Photo   string     `yaml:"photo" koanf:"photo" json:"photo"`
	Bio     string     `yaml:"bio" koanf:"bio" json:"bio"`
	Bullets []string   `yaml:"bullets" koanf:"bullets" json:"bullets"`
	Links   AboutLinks `yaml:"links" koanf:"links" json:"links"`
}

// Splash is the optional intro video shown before the page.
type Splash struct {
	Enabled bool   `yaml:"enabled" koanf:"enabled" json:"enabled"`
	Src     string `yaml:"src" koanf:"src" json:"src"`
}

// Site holds site-wide settings.
type Site struct {
	Title          string   `yaml:"title" koanf:"title" json:"title"`
	Tagline        string   `yaml:"tagline" koanf:"tagline" json:"tagline"`
	Favicon        string   `yaml:"favicon" koanf:"favicon" json:"favicon"`
	Copyright      string   `yaml:"copyright" koanf:"copyright" json:"copyright"`
	HeroBackground string   `yaml:"hero_background" koanf:"hero_background" json:"hero_background"`
	HoverBell      string   `yaml:"hover_bell" koanf:"hover_bell" json:"hover_bell"`
	Splash         Splash   `yaml:"splash" koanf:"splash" json:"splash"`
	Quote          []string `yaml:"quote" koanf:"quote" json:"quote"`
}

// Soundtrack is background music offered behind the play/pause gate.
type Soundtrack struct {
	Label string `yaml:"label" koanf:"label" json:"label"`
	URL   string `yaml:"url" koanf:"url" json:"url"`
}

// playableExts are formats an <audio> element can stream directly.
var playableExts = []string{".mp3", ".ogg", ".oga", ".wav", ".m4a", ".aac", ".flac", ".opus", ".webm"}

// Playable reports whether the URL points at a media file rather than a
// hosting page. Page URLs (YouTube, SoundCloud share links) need converting
// to a direct file before they can be played inline.
func (s Soundtrack) Playable() bool {
	u, err := url.Parse(strings.TrimSpace(s.URL))
	if err != nil || u.Host == "" {
		return false
	}
	path := strings.ToLower(u.Path)
	for _, ext := range playableExts {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// Content is everything the renderers need.
type Content struct {
	Site        Site         `yaml:"site" koanf:"site" json:"site"`
	About       About        `yaml:"about" koanf:"about" json:"about"`
	Shows       []Show       `yaml:"shows" koanf:"shows" json:"shows"`
	Soundtracks []Soundtrack `yaml:"soundtracks" koanf:"soundtracks" json:"soundtracks"`
}

// Newest returns the first listed show.
func (c *Content) Newest() (Show, bool) {
	if len(c.Shows) == 0 {
		return Show{}, false
	}
	return c.Shows[0], true
}

// FindShow looks a show up by slug.
func (c *Content) FindShow(slug string) (Show, bool) {
	for _, s := range c.Shows {
		if s.Slug == slug {
			return s, true
		}
	}
	return Show{}, false
}

// AssetURLs lists every media URL referenced by the content, in order and
// without duplicates.
func (c *Content) AssetURLs() []string {
	seen := make(map[string]bool)
	var out []string
	add := func(u string) {
		u = strings.TrimSpace(u)
		if u == "" || seen[u] {
			return
		}
		seen[u] = true
		out = append(out, u)
	}

	add(c.Site.HeroBackground)
	add(c.Site.HoverBell)
	if c.Site.Splash.Enabled {
		add(c.Site.Splash.Src)
	}
	add(c.About.Photo)
	for _, s := range c.Shows {
		add(s.Cover)
		for _, l := range s.SheetMusicLinks {
			add(l.URL)
		}
	}
	for _, t := range c.Soundtracks {
		if t.Playable() {
			add(t.URL)
		}
	}
	return out
}
