package integration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/chefclub/publisher/internal/application"
	"github.com/chefclub/publisher/internal/config"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// TestPublishRun exercises the whole pipeline: profiles on disk, settings
// resolution, and output-directory preparation.
func TestPublishRun(t *testing.T) {
	for _, key := range []string{
		"SITEURL", "RELATIVE_URLS", "FEED_ALL_ATOM", "CATEGORY_FEED_ATOM",
		"TAG_FEED_ATOM", "DELETE_OUTPUT_DIRECTORY", "DISQUS_SITENAME", "OUTPUT_DIR",
	} {
		t.Setenv(key, "")
	}

	project := t.TempDir()
	oldWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(project); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(oldWd) })

	basePath := filepath.Join(project, "siteconf.yaml")
	writeFile(t, basePath, strings.TrimSpace(`
site_url: "http://localhost:8000"
relative_urls: true
delete_output_directory: false
output_dir: out
`))

	publishPath := filepath.Join(project, "publishconf.yaml")
	writeFile(t, publishPath, strings.TrimSpace(`
site_url: "https://tech.chefclub.tv/"
relative_urls: false
delete_output_directory: true
disqus_sitename: tech-chefclub-tv
`))

	outputDir := filepath.Join(project, "out")
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		t.Fatalf("setup output dir: %v", err)
	}
	writeFile(t, filepath.Join(outputDir, "stale.html"), "<html>old build</html>")

	cfg, err := config.Load(&config.Overrides{ConfigFile: basePath, PublishFile: publishPath})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	app, err := application.New(cfg, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	if err := app.Prepare(); err != nil {
		t.Fatalf("Prepare returned error: %v", err)
	}

	entries, err := os.ReadDir(outputDir)
	if err != nil {
		t.Fatalf("expected output dir to survive: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected output dir emptied, found %d entries", len(entries))
	}

	feedPath, err := app.Feeds().Category("recipes")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "https://tech.chefclub.tv/feeds/recipes.atom.xml"; app.Feeds().Link(feedPath) != want {
		t.Fatalf("expected %s, got %s", want, app.Feeds().Link(feedPath))
	}
}
