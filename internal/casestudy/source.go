package casestudy

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// Source fetches the full set of studies keyed by id.
type Source interface {
	Fetch(ctx context.Context) (map[string]Study, error)
}

// NewSource returns an HTTPSource for http(s) references and a FileSource
// for anything else.
func NewSource(ref string) Source {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return NewHTTPSource(ref)
	}
	return &FileSource{Path: strings.TrimPrefix(ref, "file://")}
}

// HTTPSource fetches studies from a JSON resource over HTTP.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

// NewHTTPSource creates an HTTPSource with a bounded request timeout.
func NewHTTPSource(url string) *HTTPSource {
	return &HTTPSource{
		URL:    url,
		Client: &http.Client{Timeout: 15 * time.Second},
	}
}

func (s *HTTPSource) Fetch(ctx context.Context) (map[string]Study, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", s.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("fetching %s: status %d: %s", s.URL, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return decode(resp.Body)
}

// FileSource reads studies from a local JSON file.
type FileSource struct {
	Path string
}

func (s *FileSource) Fetch(ctx context.Context) (map[string]Study, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", s.Path, err)
	}
	defer f.Close()
	return decode(f)
}

// decode parses the `{ "<id>": { ...study } }` document. Each study's ID is
// taken from its key.
func decode(r io.Reader) (map[string]Study, error) {
	var raw map[string]Study
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding case studies: %w", err)
	}
	for id, st := range raw {
		st.ID = id
		raw[id] = st
	}
	return raw, nil
}
