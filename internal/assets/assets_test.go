package assets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSite(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"index.html":              "<html></html>",
		"style.css":               "body{}",
		"script.js":               "console.log(1)",
		"sw.js":                   "// generated",
		"data.json":               "{}",
		"images/logo.png":         "png",
		"images/work/hero.png":    "png",
		"notes.md":                "# notes",
		"node_modules/x/index.js": "x",
		"script.js.map":           "{}",
	}
	for rel, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

var (
	testInclude = []string{"index.html", "**/*.css", "**/*.js", "*.json", "images/**"}
	testExclude = []string{"sw.js", "**/*.map"}
)

func TestManifest(t *testing.T) {
	dir := writeSite(t)

	got, err := Manifest(dir, testInclude, testExclude, []string{"https://cdn.tailwindcss.com"})
	if err != nil {
		t.Fatalf("Manifest: %v", err)
	}

	want := []string{
		"./",
		"./data.json",
		"./images/logo.png",
		"./images/work/hero.png",
		"./index.html",
		"./script.js",
		"./style.css",
		"https://cdn.tailwindcss.com",
	}
	if len(got) != len(want) {
		t.Fatalf("Manifest = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Manifest[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestManifestMissingDir(t *testing.T) {
	if _, err := Manifest(filepath.Join(t.TempDir(), "nope"), nil, nil, nil); err == nil {
		t.Error("expected error for missing site dir")
	}
}

func TestMatchesIncludeExclude(t *testing.T) {
	tests := []struct {
		path     string
		patterns []string
		want     bool
	}{
		{"css/site.css", []string{"**/*.css"}, true},
		{"site.css", []string{"**/*.css"}, true},
		{"images/a/b.png", []string{"images/**"}, true},
		{"deep/sw.js", []string{"sw.js"}, true},
		{"index.html", []string{"*.json"}, false},
	}
	for _, tt := range tests {
		if got := MatchesInclude(tt.path, tt.patterns); got != tt.want {
			t.Errorf("MatchesInclude(%q, %v) = %v, want %v", tt.path, tt.patterns, got, tt.want)
		}
	}
	if !MatchesInclude("anything", nil) {
		t.Error("empty include should match everything")
	}
	if MatchesExclude("anything", nil) {
		t.Error("empty exclude should match nothing")
	}
}

func TestFingerprintChangesWithContent(t *testing.T) {
	dir := writeSite(t)

	a, err := Fingerprint(dir, testInclude, testExclude)
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}
	b, _ := Fingerprint(dir, testInclude, testExclude)
	if a != b || len(a) != 12 {
		t.Fatalf("fingerprint not stable: %q vs %q", a, b)
	}

	os.WriteFile(filepath.Join(dir, "style.css"), []byte("body{color:red}"), 0o644)
	c, _ := Fingerprint(dir, testInclude, testExclude)
	if c == a {
		t.Error("fingerprint should change when a precached file changes")
	}

	os.WriteFile(filepath.Join(dir, "notes.md"), []byte("changed"), 0o644)
	d, _ := Fingerprint(dir, testInclude, testExclude)
	if d != c {
		t.Error("fingerprint should ignore files outside the manifest")
	}
}

func TestServiceWorker(t *testing.T) {
	js, err := ServiceWorker("kumtech-cache-v5", []string{"./", "./index.html"})
	if err != nil {
		t.Fatalf("ServiceWorker: %v", err)
	}
	src := string(js)
	for _, want := range []string{
		`const CACHE_NAME = "kumtech-cache-v5";`,
		`"./index.html"`,
		"cache.addAll(ASSETS_TO_CACHE)",
		"caches.match(event.request)",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("service worker missing %q:\n%s", want, src)
		}
	}

	if _, err := ServiceWorker("", nil); err == nil {
		t.Error("expected error for empty cache name")
	}
	empty, _ := ServiceWorker("c", nil)
	if !strings.Contains(string(empty), "ASSETS_TO_CACHE = []") {
		t.Errorf("nil assets should render an empty list:\n%s", empty)
	}
}

func TestBuildVersioned(t *testing.T) {
	dir := writeSite(t)

	js, err := Build(dir, "showcase", testInclude, testExclude, nil, true)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !strings.Contains(string(js), `const CACHE_NAME = "showcase-`) {
		t.Errorf("expected fingerprinted cache name:\n%s", js)
	}

	plain, _ := Build(dir, "showcase", testInclude, testExclude, nil, false)
	if !strings.Contains(string(plain), `const CACHE_NAME = "showcase";`) {
		t.Errorf("expected plain cache name:\n%s", plain)
	}
}
