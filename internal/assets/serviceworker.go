package assets

import (
	"bytes"
	"encoding/json"
	"fmt"
	"text/template"
)

var swTmpl = template.Must(template.New("sw").Funcs(template.FuncMap{
	"js": func(v any) (string, error) {
		b, err := json.MarshalIndent(v, "", "  ")
		return string(b), err
	},
}).Parse(`const CACHE_NAME = {{js .CacheName}};
const ASSETS_TO_CACHE = {{js .Assets}};

self.addEventListener('install', (event) => {
  event.waitUntil(
    caches.open(CACHE_NAME).then((cache) => cache.addAll(ASSETS_TO_CACHE))
  );
});

self.addEventListener('activate', (event) => {
  event.waitUntil(
    caches.keys().then((names) =>
      Promise.all(names.filter((n) => n !== CACHE_NAME).map((n) => caches.delete(n)))
    )
  );
});

self.addEventListener('fetch', (event) => {
  event.respondWith(
    caches.match(event.request).then((response) => response || fetch(event.request))
  );
});
`))

// ServiceWorker renders a cache-first service worker that precaches assets
// under cacheName and drops caches with any other name on activation.
func ServiceWorker(cacheName string, assets []string) ([]byte, error) {
	if cacheName == "" {
		return nil, fmt.Errorf("assets: cache name is required")
	}
	if assets == nil {
		assets = []string{}
	}

	var buf bytes.Buffer
	err := swTmpl.Execute(&buf, struct {
		CacheName string
		Assets    []string
	}{cacheName, assets})
	if err != nil {
		return nil, fmt.Errorf("assets: render service worker: %w", err)
	}
	return buf.Bytes(), nil
}

// Build produces the service worker for dir. When versioned is true the
// content fingerprint is appended to cacheName.
func Build(dir, cacheName string, include, exclude, extra []string, versioned bool) ([]byte, error) {
	manifest, err := Manifest(dir, include, exclude, extra)
	if err != nil {
		return nil, err
	}
	if versioned {
		fp, err := Fingerprint(dir, include, exclude)
		if err != nil {
			return nil, err
		}
		cacheName = cacheName + "-" + fp
	}
	return ServiceWorker(cacheName, manifest)
}
