package site

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/ziadkadry99/showcase/internal/portfolio"
	"github.com/ziadkadry99/showcase/internal/progress"
)

// ExportPage is one static page: a filter at a page number.
type ExportPage struct {
	Filter string
	Page   int
}

// RelPath returns the slash-separated output path of the page.
func (p ExportPage) RelPath() string {
	dir := ""
	if p.Filter != portfolio.FilterAll {
		dir = slug(p.Filter) + "/"
	}
	if p.Page > 1 {
		dir += fmt.Sprintf("page/%d/", p.Page)
	}
	return dir + "index.html"
}

// slug maps a filter name onto a safe directory name.
func slug(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, strings.ToLower(name))
}

// ExportPlan lists every static page: each filter from "all" through the
// catalog categories, at each page up to its total.
func (s *Site) ExportPlan() []ExportPage {
	var plan []ExportPage
	filters := []string{portfolio.FilterAll}
	for _, c := range s.cat.Categories() {
		if c != portfolio.FilterAll {
			filters = append(filters, c)
		}
	}
	for _, f := range filters {
		e := s.NewEngine()
		snap := e.SetFilter(f)
		pages := snap.TotalPages
		if pages < 1 {
			pages = 1
		}
		for p := 1; p <= pages; p++ {
			plan = append(plan, ExportPage{Filter: f, Page: p})
		}
	}
	return plan
}

// Export writes the static site to outDir: the site directory's files,
// one HTML page per ExportPlan entry and a generated sw.js. It returns the
// number of pages written.
func (s *Site) Export(outDir string, reporter progress.Reporter) (int, error) {
	if reporter == nil {
		reporter = progress.Discard{}
	}
	if s.opts.SiteDir != "" && within(outDir, s.opts.SiteDir) {
		return 0, fmt.Errorf("output dir %s is inside site dir %s", outDir, s.opts.SiteDir)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return 0, err
	}

	if s.opts.SiteDir != "" {
		if err := copyDir(s.opts.SiteDir, outDir); err != nil {
			return 0, fmt.Errorf("copying site dir: %w", err)
		}
	}

	plan := s.ExportPlan()
	reporter.Start(len(plan))
	for i, pg := range plan {
		if err := s.exportPage(outDir, pg); err != nil {
			return i, fmt.Errorf("exporting %s: %w", pg.RelPath(), err)
		}
		reporter.Update(i+1, pg.RelPath())
	}
	reporter.Finish()

	js, err := s.ServiceWorker()
	if err != nil {
		return len(plan), fmt.Errorf("building service worker: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outDir, "sw.js"), js, 0o644); err != nil {
		return len(plan), err
	}
	return len(plan), nil
}

func (s *Site) exportPage(outDir string, pg ExportPage) error {
	e := s.NewEngine()
	e.SetFilter(pg.Filter)
	snap := e.Restore(pg.Page)

	rel := pg.RelPath()
	basePath := strings.Repeat("../", strings.Count(rel, "/"))
	link := func(filter, _ string, page int) string {
		return basePath + ExportPage{Filter: filter, Page: page}.RelPath()
	}

	data := s.pageData(snap, link, basePath)

	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, data); err != nil {
		return err
	}

	out := filepath.Join(outDir, filepath.FromSlash(path.Clean(rel)))
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return err
	}
	return os.WriteFile(out, buf.Bytes(), 0o644)
}

// within reports whether dir is base or below it.
func within(dir, base string) bool {
	absDir, err1 := filepath.Abs(dir)
	absBase, err2 := filepath.Abs(base)
	if err1 != nil || err2 != nil {
		return false
	}
	rel, err := filepath.Rel(absBase, absDir)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// copyDir recursively copies a directory, skipping any existing sw.js.
func copyDir(src, dst string) error {
	return filepath.Walk(src, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, p)
		if err != nil {
			return err
		}
		destPath := filepath.Join(dst, rel)

		if info.IsDir() {
			return os.MkdirAll(destPath, 0o755)
		}
		if rel == "sw.js" {
			return nil
		}
		return copyFile(p, destPath)
	})
}

// copyFile copies a single file.
func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	dstFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer dstFile.Close()

	_, err = io.Copy(dstFile, srcFile)
	return err
}
