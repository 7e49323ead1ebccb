package assets

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// Manifest lists the files under dir selected by include and not excluded,
// as sorted "./relative" paths led by "./", followed by the extra URLs in
// the order given.
func Manifest(dir string, include, exclude, extra []string) ([]string, error) {
	files, err := collect(dir, include, exclude)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(files)+len(extra)+1)
	out = append(out, "./")
	for _, rel := range files {
		out = append(out, "./"+rel)
	}
	out = append(out, extra...)
	return out, nil
}

// Fingerprint hashes the content of every manifest file under dir so the
// cache name changes whenever a precached file does.
func Fingerprint(dir string, include, exclude []string) (string, error) {
	files, err := collect(dir, include, exclude)
	if err != nil {
		return "", err
	}

	h := sha256.New()
	for _, rel := range files {
		f, err := os.Open(filepath.Join(dir, filepath.FromSlash(rel)))
		if err != nil {
			return "", fmt.Errorf("assets: open %s: %w", rel, err)
		}
		io.WriteString(h, rel)
		_, err = io.Copy(h, f)
		f.Close()
		if err != nil {
			return "", fmt.Errorf("assets: hash %s: %w", rel, err)
		}
	}
	return hex.EncodeToString(h.Sum(nil))[:12], nil
}

// collect walks dir and returns matching slash-separated relative paths.
func collect(dir string, include, exclude []string) ([]string, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("assets: resolve root: %w", err)
	}
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("assets: %w", err)
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		if d.IsDir() {
			if path != root && shouldSkipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if !MatchesInclude(rel, include) || MatchesExclude(rel, exclude) {
			return nil
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("assets: walk: %w", err)
	}

	sort.Strings(files)
	return files, nil
}
