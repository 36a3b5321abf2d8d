package site

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"go.uber.org/zap"

	"github.com/whiterosearts/petalsite/internal/content"
	"github.com/whiterosearts/petalsite/internal/progress"
	"github.com/whiterosearts/petalsite/internal/scroll"
)

// Options tune what the generator emits.
type Options struct {
	// AssetsDir holds local files (favicon, audio, PDFs) copied into the site.
	AssetsDir string
	// AssetInclude are doublestar patterns relative to AssetsDir.
	AssetInclude []string
	// Live points pages at the preview server's scroll sessions and routes
	// petal clicks through its redirect endpoint.
	Live      bool
	Travel    float64
	FrameRate int
}

// Generator renders the portfolio into a directory of static files.
type Generator struct {
	Content   *content.Content
	OutputDir string
	Options   Options
	Reporter  progress.Reporter
	Logger    *zap.Logger
}

// NewGenerator creates a Generator for the given content.
func NewGenerator(c *content.Content, outputDir string, opts Options) *Generator {
	if opts.Travel <= 0 {
		opts.Travel = scroll.DefaultTravel
	}
	if opts.FrameRate <= 0 {
		opts.FrameRate = scroll.DefaultFrameRate
	}
	return &Generator{
		Content:   c,
		OutputDir: outputDir,
		Options:   opts,
		Reporter:  progress.Nop{},
		Logger:    zap.NewNop(),
	}
}

// LivePath is the websocket endpoint pages use in live mode.
const LivePath = "/ws/scroll"

// pageData holds the data passed to the HTML templates for each page.
type pageData struct {
	Title       string
	BasePath    string
	Site        content.Site
	About       aboutView
	Shows       []*showView
	Newest      *showView
	Show        *showView
	Quote       []quoteLine
	Soundtracks []content.Soundtrack
	Live        bool
	LivePath    string
	FrameRate   int
	Travel      float64
}

type aboutView struct {
	content.About
	BioHTML template.HTML
}

type showView struct {
	content.Show
	Href            string
	DescriptionHTML template.HTML
	Petals          []petalView
}

type petalView struct {
	Index     int
	Threshold float64
	Linked    bool
	Href      string
	Label     string
	Style     template.CSS
}

type quoteLine struct {
	Index int
	Total int
	Text  string
	Style template.CSS
}

// Generate builds the site. Returns the number of pages written.
func (g *Generator) Generate(ctx context.Context) (int, error) {
	if g.Content == nil {
		return 0, fmt.Errorf("no content to render")
	}
	if err := g.Content.Validate(); err != nil {
		return 0, fmt.Errorf("invalid content: %w", err)
	}
	for _, w := range g.Content.Warnings() {
		g.Logger.Warn("content warning", zap.String("detail", w))
	}

	if err := os.MkdirAll(g.OutputDir, 0o755); err != nil {
		return 0, err
	}

	md := newMarkdown()
	tmpl, err := parseTemplates()
	if err != nil {
		return 0, err
	}

	assets, err := MatchAssets(g.Options.AssetsDir, g.Options.AssetInclude)
	if err != nil {
		return 0, fmt.Errorf("matching assets: %w", err)
	}

	total := 3 + len(g.Content.Shows) + len(assets)
	g.Reporter.Start(total)
	defer g.Reporter.Finish()
	step := 0
	tick := func(msg string) {
		step++
		g.Reporter.Update(step, msg)
	}

	// Write static assets.
	if err := os.WriteFile(filepath.Join(g.OutputDir, "style.css"), []byte(cssContent), 0o644); err != nil {
		return 0, err
	}
	tick("style.css")
	if err := os.WriteFile(filepath.Join(g.OutputDir, "script.js"), []byte(jsContent), 0o644); err != nil {
		return 0, err
	}
	tick("script.js")

	for _, rel := range assets {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		if err := copyFile(filepath.Join(g.Options.AssetsDir, filepath.FromSlash(rel)), filepath.Join(g.OutputDir, filepath.FromSlash(rel))); err != nil {
			return 0, fmt.Errorf("copying asset %s: %w", rel, err)
		}
		tick(rel)
	}

	// Render pages.
	if err := g.renderPage(tmpl, "index", "index.html", g.buildPage(md, "", nil)); err != nil {
		return 0, fmt.Errorf("rendering index: %w", err)
	}
	tick("index.html")
	pages := 1

	for _, s := range g.Content.Shows {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		rel := path.Join("shows", s.Slug, "index.html")
		data := g.buildPage(md, "../../", &s)
		if err := g.renderPage(tmpl, "show", rel, data); err != nil {
			return 0, fmt.Errorf("rendering %s: %w", rel, err)
		}
		tick(rel)
		pages++
	}

	g.Logger.Info("site generated",
		zap.String("output", g.OutputDir),
		zap.Int("pages", pages),
		zap.Int("assets", len(assets)))
	return pages, nil
}

func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)
}

func parseTemplates() (*template.Template, error) {
	funcs := template.FuncMap{"heroStyle": heroStyle}
	base, err := template.New("layout").Funcs(funcs).Parse(layoutTemplates)
	if err != nil {
		return nil, fmt.Errorf("parsing layout templates: %w", err)
	}
	for name, src := range map[string]string{"index": indexTemplate, "show": showTemplate} {
		if _, err := base.New(name).Parse(src); err != nil {
			return nil, fmt.Errorf("parsing %s template: %w", name, err)
		}
	}
	return base, nil
}

// buildPage assembles template data. focus is the show of a detail page, or
// nil for the landing page.
func (g *Generator) buildPage(md goldmark.Markdown, basePath string, focus *content.Show) pageData {
	c := g.Content
	data := pageData{
		Title:       c.Site.Title,
		BasePath:    basePath,
		Site:        c.Site,
		About:       aboutView{About: c.About, BioHTML: renderMarkdown(md, c.About.Bio)},
		Soundtracks: c.Soundtracks,
		Live:        g.Options.Live,
		LivePath:    LivePath,
		FrameRate:   g.Options.FrameRate,
		Travel:      g.Options.Travel,
	}

	for _, s := range c.Shows {
		data.Shows = append(data.Shows, g.buildShow(md, basePath, s))
	}
	if len(data.Shows) > 0 {
		data.Newest = data.Shows[0]
	}

	lines := scroll.RevealAll(0, len(c.Site.Quote), g.Options.Travel)
	for i, text := range c.Site.Quote {
		data.Quote = append(data.Quote, quoteLine{
			Index: i,
			Total: len(c.Site.Quote),
			Text:  text,
			Style: lineStyle(lines[i]),
		})
	}

	if focus != nil {
		data.Show = g.buildShow(md, basePath, *focus)
		data.Title = focus.Title + " — " + c.Site.Title
	}
	return data
}

func (g *Generator) buildShow(md goldmark.Markdown, basePath string, s content.Show) *showView {
	v := &showView{
		Show:            s,
		Href:            basePath + path.Join("shows", s.Slug, "index.html"),
		DescriptionHTML: renderMarkdown(md, s.Description),
	}
	states := scroll.RevealPetals(0, len(s.PetalPositions))
	for i, p := range s.PetalPositions {
		pv := petalView{
			Index:     i,
			Threshold: states[i].Threshold,
			Style:     petalStyle(p, states[i]),
		}
		if link, ok := s.PetalLink(i); ok {
			pv.Linked = true
			pv.Label = link.Label
			pv.Href = link.URL
			if g.Options.Live {
				pv.Href = fmt.Sprintf("/go/%s/petal/%d", url.PathEscape(s.Slug), i)
			}
		}
		v.Petals = append(v.Petals, pv)
	}
	return v
}

func (g *Generator) renderPage(tmpl *template.Template, name, rel string, data pageData) error {
	outPath := filepath.Join(g.OutputDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return err
	}
	return writeFileAtomic(outPath, buf.Bytes())
}

// renderMarkdown converts text to HTML. Conversion errors fall back to the
// escaped source so a bad description never breaks the build.
func renderMarkdown(md goldmark.Markdown, src string) template.HTML {
	if strings.TrimSpace(src) == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return template.HTML("<p>" + template.HTMLEscapeString(src) + "</p>")
	}
	return template.HTML(buf.String())
}

func lineStyle(s scroll.LineState) template.CSS {
	return template.CSS(fmt.Sprintf("opacity:%.3f;transform:translateY(%.2fpx)", s.Opacity, s.OffsetY))
}

func petalStyle(p content.Petal, s scroll.PetalState) template.CSS {
	return template.CSS(fmt.Sprintf("left:%.2f%%;top:%.2f%%;opacity:%.3f;transform:scale(%.2f)", p.X, p.Y, s.Opacity, s.Scale))
}

var cssURLReplacer = strings.NewReplacer(`"`, "%22", `\`, "%5C", "\n", "", "\r", "", ")", "%29", "(", "%28")

// heroStyle builds a background-image declaration, or nothing for URLs that
// are neither http(s) nor site-relative.
func heroStyle(raw string) template.CSS {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	switch u.Scheme {
	case "http", "https", "":
	default:
		return ""
	}
	return template.CSS(`background-image:url("` + cssURLReplacer.Replace(u.String()) + `")`)
}

func writeFileAtomic(path string, data []byte) error {
	tmp := fmt.Sprintf("%s.tmp-%d", path, time.Now().UnixNano())
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
