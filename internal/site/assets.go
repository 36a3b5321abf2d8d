package site

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"
)

// MatchAssets returns the slash-separated paths under dir matching any of the
// patterns, sorted and deduplicated. A missing dir yields no assets.
func MatchAssets(dir string, patterns []string) ([]string, error) {
	if dir == "" {
		return nil, nil
	}
	if info, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, nil
	} else if err != nil {
		return nil, err
	} else if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	fsys := os.DirFS(dir)
	seen := make(map[string]bool)
	var out []string
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid asset pattern %q", pattern)
		}
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("globbing %q: %w", pattern, err)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	sort.Strings(out)
	return out, nil
}

func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// AssetStatus is the outcome of probing one remote asset.
type AssetStatus struct {
	URL        string `json:"url"`
	StatusCode int    `json:"status_code,omitempty"`
	Err        string `json:"error,omitempty"`
}

// OK reports whether the asset answered with a 2xx or 3xx status.
func (s AssetStatus) OK() bool {
	return s.Err == "" && s.StatusCode >= 200 && s.StatusCode < 400
}

// CheckAssets probes every URL with at most concurrency requests in flight.
// Failures are recorded per asset; the returned slice matches urls by index.
func CheckAssets(ctx context.Context, client *http.Client, urls []string, concurrency int) []AssetStatus {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	if concurrency <= 0 {
		concurrency = 4
	}

	results := make([]AssetStatus, len(urls))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, u := range urls {
		i, u := i, u
		g.Go(func() error {
			results[i] = probe(ctx, client, u)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// probe tries HEAD first and falls back to GET for hosts that reject it.
func probe(ctx context.Context, client *http.Client, u string) AssetStatus {
	st := AssetStatus{URL: u}
	for _, method := range []string{http.MethodHead, http.MethodGet} {
		req, err := http.NewRequestWithContext(ctx, method, u, nil)
		if err != nil {
			st.Err = err.Error()
			return st
		}
		resp, err := client.Do(req)
		if err != nil {
			st.Err = err.Error()
			return st
		}
		resp.Body.Close()
		st.StatusCode = resp.StatusCode
		if resp.StatusCode != http.StatusMethodNotAllowed && resp.StatusCode != http.StatusNotImplemented {
			return st
		}
	}
	return st
}
