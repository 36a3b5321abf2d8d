package site

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/whiterosearts/petalsite/internal/content"
)

func TestFullSiteGeneration(t *testing.T) {
	outputDir := t.TempDir()

	gen := NewGenerator(content.Default(), outputDir, Options{})
	pages, err := gen.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if pages != 2 {
		t.Errorf("page count = %d, want 2", pages)
	}

	expectedFiles := []string{
		"index.html",
		"style.css",
		"script.js",
		"shows/divine-machinery-ex-machina/index.html",
	}
	for _, f := range expectedFiles {
		path := filepath.Join(outputDir, filepath.FromSlash(f))
		if _, err := os.Stat(path); os.IsNotExist(err) {
			t.Errorf("expected file %s does not exist", f)
		}
	}

	indexStr := readTestFile(t, filepath.Join(outputDir, "index.html"))

	for _, want := range []string{
		"Where music grows into stories.",
		"Divine Machinery :: Ex Machina",
		`href="shows/divine-machinery-ex-machina/index.html"`,
		"Paul Cezanne",
		`data-scroll-subject="quote"`,
		`data-scroll-subject="petals-divine-machinery-ex-machina"`,
		`opacity:0.000;transform:translateY(24.00px)`,
		`href="https://example.com/opener_excerpt.pdf"`,
		`data-threshold="0.25"`,
		`id="splash"`,
		`id="hover-bell"`,
		"Sound Design",
		`href="mailto:caydencollinsmusic@gmail.com"`,
		"© White Rose Arts",
		`src="script.js"`,
	} {
		if !strings.Contains(indexStr, want) {
			t.Errorf("index.html should contain %q", want)
		}
	}

	// The shipped soundtrack is a YouTube page, so it renders as a link.
	if strings.Contains(indexStr, "soundtrack-audio") {
		t.Error("unplayable soundtrack should not render an audio element")
	}
	if !strings.Contains(indexStr, `class="soundtrack-link"`) {
		t.Error("unplayable soundtrack should render as an external link")
	}
	if strings.Contains(indexStr, "data-live") {
		t.Error("static build should not enable live mode")
	}

	showStr := readTestFile(t, filepath.Join(outputDir, "shows", "divine-machinery-ex-machina", "index.html"))
	for _, want := range []string{
		`href="../../style.css"`,
		"https://www.youtube.com/embed/Jus8Y5up0Nc",
		"<h2 id=\"program-notes\">Program Notes</h2>",
		"<em>Divine Machinery</em>",
		"Ballad – main theme (FE)",
	} {
		if !strings.Contains(showStr, want) {
			t.Errorf("show page should contain %q", want)
		}
	}
}

// The petal map must not be its own tracked region: it is shorter than the
// viewport, which would reveal every petal within a single pixel of scroll.
func TestPetalMapPinsInsideTrack(t *testing.T) {
	outputDir := t.TempDir()
	if _, err := NewGenerator(content.Default(), outputDir, Options{}).Generate(context.Background()); err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	wrapped := regexp.MustCompile(`<div class="petal-track" data-scroll-subject="petals-divine-machinery-ex-machina" data-petals="3">\s*<div class="petal-pin">\s*<div class="petal-map">`)
	for _, page := range []string{"index.html", "shows/divine-machinery-ex-machina/index.html"} {
		html := readTestFile(t, filepath.Join(outputDir, filepath.FromSlash(page)))
		if !wrapped.MatchString(html) {
			t.Errorf("%s: petal map should sit in a pinned track that carries the scroll subject", page)
		}
		if strings.Contains(html, `class="petal-map" data-scroll-subject`) {
			t.Errorf("%s: petal map itself must not be the scroll subject", page)
		}
	}

	css := readTestFile(t, filepath.Join(outputDir, "style.css"))
	for _, want := range []string{
		".petal-track { position: relative; height: 250vh; }",
		".petal-pin { position: sticky;",
	} {
		if !strings.Contains(css, want) {
			t.Errorf("style.css should contain %q", want)
		}
	}
}

func TestGenerateLiveMode(t *testing.T) {
	outputDir := t.TempDir()

	gen := NewGenerator(content.Default(), outputDir, Options{Live: true})
	if _, err := gen.Generate(context.Background()); err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	indexStr := readTestFile(t, filepath.Join(outputDir, "index.html"))
	if !strings.Contains(indexStr, `data-live="/ws/scroll"`) {
		t.Error("live build should point pages at the scroll socket")
	}
	if !strings.Contains(indexStr, `href="/go/divine-machinery-ex-machina/petal/1"`) {
		t.Error("live build should route petals through the redirect endpoint")
	}
}

func TestGenerateDeadPetalIsNoop(t *testing.T) {
	c := content.Default()
	c.Shows[0].PetalPositions[1].LinkIndex = 99

	outputDir := t.TempDir()
	if _, err := NewGenerator(c, outputDir, Options{}).Generate(context.Background()); err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	indexStr := readTestFile(t, filepath.Join(outputDir, "index.html"))
	if !strings.Contains(indexStr, `class="petal petal-dead"`) {
		t.Error("petal with missing link should render without an anchor")
	}
	if strings.Count(indexStr, `class="petal" href=`) != 2 {
		t.Errorf("expected 2 linked petals, got %d", strings.Count(indexStr, `class="petal" href=`))
	}
}

func TestGenerateMissingAssets(t *testing.T) {
	c := content.Default()
	c.Site.HeroBackground = ""
	c.Site.HoverBell = ""
	c.Site.Splash.Src = ""
	c.About.Photo = ""
	c.Shows[0].Cover = ""
	c.Shows[0].YouTubeID = ""

	outputDir := t.TempDir()
	if _, err := NewGenerator(c, outputDir, Options{}).Generate(context.Background()); err != nil {
		t.Fatalf("Generate should tolerate missing assets: %v", err)
	}

	indexStr := readTestFile(t, filepath.Join(outputDir, "index.html"))
	if strings.Contains(indexStr, `id="splash"`) {
		t.Error("splash without a source should not render")
	}
	if !strings.Contains(indexStr, `class="cover-missing"`) {
		t.Error("show without a cover should render a placeholder")
	}
	showStr := readTestFile(t, filepath.Join(outputDir, "shows", "divine-machinery-ex-machina", "index.html"))
	if strings.Contains(showStr, "<iframe") {
		t.Error("show without a video should not embed one")
	}
}

func TestGenerateEmptyShows(t *testing.T) {
	c := content.Default()
	c.Shows = nil

	outputDir := t.TempDir()
	pages, err := NewGenerator(c, outputDir, Options{}).Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if pages != 1 {
		t.Errorf("page count = %d, want 1", pages)
	}
	if !strings.Contains(readTestFile(t, filepath.Join(outputDir, "index.html")), "New work is on the way.") {
		t.Error("empty show list should render a placeholder")
	}
}

func TestGenerateInvalidContent(t *testing.T) {
	c := content.Default()
	c.Shows[0].Slug = ""

	if _, err := NewGenerator(c, t.TempDir(), Options{}).Generate(context.Background()); err == nil {
		t.Error("Generate should fail for invalid content")
	}
	if _, err := NewGenerator(nil, t.TempDir(), Options{}).Generate(context.Background()); err == nil {
		t.Error("Generate should fail without content")
	}
}

func TestGenerateCopiesAssets(t *testing.T) {
	assetsDir := t.TempDir()
	outputDir := t.TempDir()

	writeTestFile(t, filepath.Join(assetsDir, "favicon.svg"), "<svg/>")
	writeTestFile(t, filepath.Join(assetsDir, "audio", "theme.mp3"), "ID3")
	writeTestFile(t, filepath.Join(assetsDir, "notes.txt"), "private")

	gen := NewGenerator(content.Default(), outputDir, Options{
		AssetsDir:    assetsDir,
		AssetInclude: []string{"**/*.svg", "**/*.mp3"},
	})
	if _, err := gen.Generate(context.Background()); err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	if got := readTestFile(t, filepath.Join(outputDir, "favicon.svg")); got != "<svg/>" {
		t.Errorf("favicon.svg = %q", got)
	}
	if _, err := os.Stat(filepath.Join(outputDir, "audio", "theme.mp3")); err != nil {
		t.Errorf("nested asset not copied: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outputDir, "notes.txt")); !os.IsNotExist(err) {
		t.Error("unmatched file should not be copied")
	}
}

func TestMatchAssets(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "b.png"), "")
	writeTestFile(t, filepath.Join(dir, "img", "a.png"), "")

	got, err := MatchAssets(dir, []string{"**/*.png", "*.png"})
	if err != nil {
		t.Fatalf("MatchAssets error: %v", err)
	}
	want := []string{"b.png", "img/a.png"}
	if len(got) != len(want) {
		t.Fatalf("MatchAssets = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("MatchAssets[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if got, err := MatchAssets(filepath.Join(dir, "missing"), []string{"**"}); err != nil || got != nil {
		t.Errorf("missing dir: got %v, %v", got, err)
	}
	if _, err := MatchAssets(dir, []string{"[unclosed"}); err == nil {
		t.Error("expected error for invalid pattern")
	}
}

func TestCheckAssets(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok.jpg":
			w.WriteHeader(http.StatusOK)
		case "/get-only.wav":
			if r.Method == http.MethodHead {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			w.WriteHeader(http.StatusOK)
		default:
			http.NotFound(w, r)
		}
	}))
	defer ts.Close()

	urls := []string{ts.URL + "/ok.jpg", ts.URL + "/get-only.wav", ts.URL + "/gone.webm", "://bad"}
	results := CheckAssets(context.Background(), ts.Client(), urls, 2)

	if len(results) != len(urls) {
		t.Fatalf("results = %d, want %d", len(results), len(urls))
	}
	if !results[0].OK() {
		t.Errorf("ok.jpg should pass: %+v", results[0])
	}
	if !results[1].OK() {
		t.Errorf("get-only.wav should pass via GET fallback: %+v", results[1])
	}
	if results[2].OK() || results[2].StatusCode != http.StatusNotFound {
		t.Errorf("gone.webm should fail with 404: %+v", results[2])
	}
	if results[3].OK() || results[3].Err == "" {
		t.Errorf("malformed URL should report an error: %+v", results[3])
	}
}

func TestHeroStyle(t *testing.T) {
	if got := string(heroStyle("https://cdn.example.com/rose.jpg")); got != `background-image:url("https://cdn.example.com/rose.jpg")` {
		t.Errorf("heroStyle = %q", got)
	}
	if got := heroStyle("javascript:alert(1)"); got != "" {
		t.Errorf("heroStyle should drop non-http URLs, got %q", got)
	}
	if got := string(heroStyle(`https://x.test/a"b).jpg`)); strings.ContainsAny(got[len(`background-image:url("`):len(got)-2], `"()`) {
		t.Errorf("heroStyle should escape quotes and parens, got %q", got)
	}
}

func readTestFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

// writeTestFile is a helper that creates a file with intermediate directories.
func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
