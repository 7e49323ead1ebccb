package site

import (
	"html/template"
	"strings"
)

var templateFuncs = template.FuncMap{
	"join": strings.Join,
}

// pageTemplate is the Go html/template for the portfolio page.
const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}}</title>
  <style>` + cssContent + `</style>
</head>
<body>
  <header class="top-bar">
    <h1>{{.Title}}</h1>
    {{if .Live}}
    <form class="search" action="{{.BasePath}}/" method="get">
      <input type="search" id="search-input" name="q" value="{{.SearchTerm}}" placeholder="Search projects..." autocomplete="off">
    </form>
    {{end}}
  </header>

  <nav class="filters" id="filters">
    {{range .Filters}}<a class="filter-btn{{if .Active}} active{{end}}" data-filter="{{.Name}}" href="{{.Href}}">{{.Label}}</a>{{end}}
  </nav>

  <main class="portfolio-grid" id="portfolio-grid">
    {{range .View.Cards}}
    <article class="portfolio-item{{if .Hidden}} hidden{{end}}" data-id="{{.ID}}" data-category="{{join .Categories " "}}">
      {{if .ImageURL}}<img data-gallery="{{.Gallery}}" src="{{.ImageURL}}" srcset="{{.SrcSet}}" sizes="(max-width: 768px) 100vw, 33vw" alt="{{.Alt}}" loading="lazy">{{end}}
      <h3 class="portfolio-title">{{.Title}}</h3>
      <p class="portfolio-description">{{.Description}}</p>
    </article>
    {{end}}
    <div class="empty-state{{if .View.EmptyState}} visible{{end}}" id="empty-state">
      <h3>No items found</h3>
      <p>Try adjusting your search or filter to find what you're looking for.</p>
      <p class="suggestions" id="suggestions">{{if .Suggestions}}Did you mean: {{join .Suggestions ", "}}?{{end}}</p>
    </div>
  </main>

  <div class="pager" id="pager">
    <a id="load-more" class="btn{{if not .LoadMoreHref}} hidden{{end}}" href="{{.LoadMoreHref}}">Load More</a>
    <div id="pages" class="pages">
      {{if .PrevHref}}<a class="page-btn" data-step="-1" href="{{.PrevHref}}">&larr;</a>{{end}}
      {{range .Pages}}<a class="page-btn{{if .Active}} active{{end}}" data-page="{{.Number}}" href="{{.Href}}">{{.Number}}</a>{{end}}
      {{if .NextHref}}<a class="page-btn" data-step="1" href="{{.NextHref}}">&rarr;</a>{{end}}
    </div>
  </div>

  <div class="modal hidden" id="study-modal" role="dialog" aria-modal="true">
    <div class="modal-body">
      <button class="close" id="study-close" aria-label="Close">&times;</button>
      <div id="study-content"></div>
    </div>
  </div>

  <div class="lightbox hidden" id="lightbox">
    <button class="close" data-lb="close" aria-label="Close">&times;</button>
    <button class="nav prev" data-lb="prev" aria-label="Previous">&lsaquo;</button>
    <img id="lightbox-img" alt="">
    <button class="nav next" data-lb="next" aria-label="Next">&rsaquo;</button>
  </div>

  <div class="toasts" id="toasts"></div>

  {{if .Live}}
  <script>
    window.SHOWCASE = {{.ConfigJSON}};
    window.SHOWCASE.scrollY = {{.ScrollY}};
    window.SHOWCASE.toast = {{.Toast}};
  </script>
  <script>` + jsContent + `</script>
  {{else}}
  <script>
    if ('serviceWorker' in navigator) navigator.serviceWorker.register({{.BasePath}} + 'sw.js');
  </script>
  {{end}}
</body>
</html>`

// cssContent styles the portfolio page.
const cssContent = `
:root { --accent: #d4a373; --ink: #1f2933; --muted: #6b7280; --bg: #fafafa; }
* { box-sizing: border-box; }
body { margin: 0; font-family: system-ui, sans-serif; color: var(--ink); background: var(--bg); }
.top-bar { display: flex; align-items: center; justify-content: space-between; padding: 1.5rem 2rem; }
.search input { padding: .5rem .75rem; border: 1px solid #ddd; border-radius: 6px; min-width: 16rem; }
.filters { display: flex; gap: .5rem; padding: 0 2rem 1rem; flex-wrap: wrap; }
.filter-btn, .page-btn, .btn { padding: .4rem .9rem; border-radius: 999px; border: 1px solid #ddd; color: inherit; text-decoration: none; }
.filter-btn.active, .page-btn.active { background: var(--accent); color: #fff; border-color: var(--accent); }
.portfolio-grid { display: grid; grid-template-columns: repeat(3, 1fr); gap: 1.5rem; padding: 0 2rem; }
@media (max-width: 900px) { .portfolio-grid { grid-template-columns: repeat(2, 1fr); } }
@media (max-width: 600px) { .portfolio-grid { grid-template-columns: 1fr; } }
.portfolio-item { background: #fff; border-radius: 10px; overflow: hidden; cursor: pointer; box-shadow: 0 1px 3px rgba(0,0,0,.08); }
.portfolio-item img { cursor: zoom-in; width: 100%; aspect-ratio: 4/3; object-fit: cover; display: block; }
.portfolio-item h3, .portfolio-item p { margin: .75rem 1rem; }
.portfolio-description { color: var(--muted); }
.hidden { display: none !important; }
.empty-state { display: none; grid-column: 1 / -1; text-align: center; padding: 3rem; color: var(--muted); }
.empty-state.visible { display: block; }
.pager { display: flex; flex-direction: column; align-items: center; gap: 1rem; padding: 2rem; }
.pages { display: flex; gap: .4rem; }
.btn-loading { opacity: .6; pointer-events: none; }
.modal, .lightbox { position: fixed; inset: 0; background: rgba(0,0,0,.7); display: flex; align-items: center; justify-content: center; z-index: 20; }
.modal-body { background: #fff; max-width: 56rem; max-height: 90vh; overflow: auto; border-radius: 12px; padding: 2rem; position: relative; }
.modal-body .gallery { display: grid; grid-template-columns: repeat(3, 1fr); gap: .5rem; }
.modal-body .gallery img, .modal-body .hero { width: 100%; cursor: zoom-in; }
.lightbox img { max-width: 90vw; max-height: 85vh; }
.lightbox .nav, .close { position: absolute; background: none; border: 0; color: #fff; font-size: 2.5rem; cursor: pointer; }
.lightbox .prev { left: 1rem; } .lightbox .next { right: 1rem; }
.close { top: .5rem; right: 1rem; color: inherit; }
.lightbox .close { color: #fff; }
.toasts { position: fixed; bottom: 1.5rem; right: 1.5rem; display: flex; flex-direction: column; gap: .5rem; z-index: 30; }
.toast { padding: .75rem 1rem; border-radius: 8px; background: var(--ink); color: #fff; }
.toast.error { background: #b91c1c; } .toast.success { background: #15803d; }
`

// jsContent connects the page to the live listing over a websocket.
const jsContent = `
(function() {
  var cfg = window.SHOWCASE || {};
  var grid = document.getElementById('portfolio-grid');
  var proto = location.protocol === 'https:' ? 'wss:' : 'ws:';
  var params = new URLSearchParams(location.search);
  params.set('path', location.pathname);
  var ws = new WebSocket(proto + '//' + location.host + '/ws/portfolio?' + params.toString());
  var loadMore = document.getElementById('load-more');
  var searchInput = document.getElementById('search-input');
  var lastScroll = -1;

  function send(msg) { if (ws.readyState === 1) ws.send(JSON.stringify(msg)); }

  function toast(t) {
    if (!t) return;
    var el = document.createElement('div');
    el.className = 'toast ' + t.level;
    el.textContent = t.message;
    document.getElementById('toasts').appendChild(el);
    setTimeout(function() { el.remove(); }, t.ttl_ms || 3000);
  }

  function cards() { return grid.querySelectorAll('.portfolio-item'); }

  function applyView(view, suggestions) {
    var hidden = {};
    view.cards.forEach(function(c) { hidden[c.id] = c.hidden; });
    var cell = null;
    cards().forEach(function(el) {
      var h = hidden[el.dataset.id];
      el.classList.toggle('hidden', h);
      if (!h && !cell) { var r = el.getBoundingClientRect(); cell = { w: r.width, h: r.height }; }
    });
    cell = cell || { w: 0, h: 0 };

    view.transition.moves.forEach(function(m) {
      var el = grid.querySelector('[data-id="' + CSS.escape(m.id) + '"]');
      if (!el) return;
      el.style.transition = 'none';
      el.style.transform = 'translate(' + (m.dx * cell.w) + 'px,' + (m.dy * cell.h) + 'px)';
      requestAnimationFrame(function() {
        el.getBoundingClientRect();
        el.style.transition = 'transform 0.6s cubic-bezier(0.2, 0, 0.2, 1)';
        el.style.transform = '';
      });
    });
    view.transition.enter.forEach(function(id) {
      var el = grid.querySelector('[data-id="' + CSS.escape(id) + '"]');
      if (!el) return;
      el.style.transition = 'none';
      el.style.opacity = '0';
      el.style.transform = 'scale(0.9) translateY(20px)';
      requestAnimationFrame(function() {
        el.getBoundingClientRect();
        el.style.transition = 'opacity 0.4s ease-out, transform 0.4s cubic-bezier(0.2, 0, 0.2, 1)';
        el.style.opacity = '1';
        el.style.transform = '';
      });
    });

    document.getElementById('empty-state').classList.toggle('visible', view.empty_state);
    document.getElementById('suggestions').textContent =
      suggestions && suggestions.length ? 'Did you mean: ' + suggestions.join(', ') + '?' : '';

    document.querySelectorAll('.filter-btn').forEach(function(b) {
      b.classList.toggle('active', b.dataset.filter === view.snapshot.active_filter);
    });

    loadMore.classList.remove('btn-loading');
    loadMore.classList.toggle('hidden', !view.load_more.visible);

    var pages = document.getElementById('pages');
    pages.innerHTML = '';
    if (view.has_prev) pages.appendChild(pageLink('←', { step: -1 }));
    view.pages.forEach(function(p) {
      var a = pageLink(String(p.number), { page: p.number });
      if (p.active) a.classList.add('active');
      pages.appendChild(a);
    });
    if (view.has_next) pages.appendChild(pageLink('→', { step: 1 }));
  }

  function syncURL(snap) {
    var p = new URLSearchParams();
    if (snap.active_filter && snap.active_filter !== 'all') p.set('filter', snap.active_filter);
    if (snap.search_term) p.set('q', snap.search_term);
    var qs = p.toString();
    history.replaceState(null, '', location.pathname + (qs ? '?' + qs : ''));
  }

  function pageLink(label, data) {
    var a = document.createElement('a');
    a.className = 'page-btn';
    a.href = '#';
    a.textContent = label;
    if (data.page) a.dataset.page = data.page;
    if (data.step) a.dataset.step = data.step;
    return a;
  }

  function showStudy(d) {
    var s = d.study;
    var html = '<h2>' + escapeHTML(s.title) + '</h2>' +
      '<p><strong>' + escapeHTML(s.client) + '</strong> &middot; ' + escapeHTML(s.timeline) + ' &middot; ' + escapeHTML(s.services) + '</p>' +
      (d.image_url ? '<img class="hero" data-single="' + escapeAttr(d.image_url) + '" src="' + escapeAttr(d.image_url) + '" srcset="' + escapeAttr(d.srcset) + '" alt="">' : '') +
      '<h3>Challenge</h3>' + d.challenge_html +
      '<h3>Solution</h3>' + d.solution_html +
      '<h3>Results</h3><ul>' + (s.results || []).map(function(r) { return '<li>' + escapeHTML(r) + '</li>'; }).join('') + '</ul>';
    if (d.gallery.length) {
      html += '<div class="gallery">' + d.gallery.map(function(g) { return '<img data-single="' + escapeAttr(g) + '" src="' + escapeAttr(g) + '" alt="">'; }).join('') + '</div>';
    }
    if (d.related.length) {
      html += '<h3>Related projects</h3><div class="gallery">' + d.related.map(function(r) {
        return '<a href="#" data-open="' + escapeAttr(r.id) + '"><img src="' + escapeAttr(r.image_url) + '" alt=""><span>' + escapeHTML(r.title) + '</span></a>';
      }).join('') + '</div>';
    }
    document.getElementById('study-content').innerHTML = html;
    document.getElementById('study-modal').classList.remove('hidden');
  }

  function showLightbox(lb) {
    var box = document.getElementById('lightbox');
    box.classList.toggle('hidden', !lb.open);
    document.getElementById('lightbox-img').src = lb.src || '';
    box.querySelectorAll('.nav').forEach(function(b) { b.classList.toggle('hidden', !lb.navigable); });
  }

  function escapeHTML(s) {
    var d = document.createElement('div');
    d.textContent = s || '';
    return d.innerHTML;
  }

  function escapeAttr(s) {
    return String(s || '').replace(/&/g, '&amp;').replace(/\x22/g, '&quot;')
      .replace(/\x27/g, '&#39;').replace(/</g, '&lt;').replace(/>/g, '&gt;');
  }

  ws.onmessage = function(ev) {
    var msg = JSON.parse(ev.data);
    switch (msg.type) {
      case 'snapshot':
        applyView(msg.view, msg.suggestions);
        syncURL(msg.view.snapshot);
        if (msg.scroll_y) window.scrollTo(0, msg.scroll_y);
        break;
      case 'study': showStudy(msg.study); break;
      case 'lightbox': showLightbox(msg.lightbox); break;
      case 'toast': toast(msg.toast); break;
      case 'error': console.warn('showcase:', msg.error); break;
    }
  };

  document.getElementById('filters').addEventListener('click', function(e) {
    var b = e.target.closest('.filter-btn');
    if (!b) return;
    e.preventDefault();
    send({ type: 'filter', filter: b.dataset.filter });
  });

  if (searchInput) {
    searchInput.form.addEventListener('submit', function(e) { e.preventDefault(); });
    searchInput.addEventListener('input', function() { send({ type: 'search', query: searchInput.value }); });
  }

  loadMore.addEventListener('click', function(e) {
    e.preventDefault();
    loadMore.classList.add('btn-loading');
    send({ type: 'load_more' });
  });

  document.getElementById('pages').addEventListener('click', function(e) {
    var a = e.target.closest('.page-btn');
    if (!a) return;
    e.preventDefault();
    if (a.dataset.step) send({ type: a.dataset.step === '1' ? 'next_page' : 'prev_page' });
    else send({ type: 'page', page: parseInt(a.dataset.page, 10) });
  });

  grid.addEventListener('click', function(e) {
    var img = e.target.closest('img[data-gallery]');
    if (img) { send({ type: 'lightbox', action: 'open', index: parseInt(img.dataset.gallery, 10) }); return; }
    var card = e.target.closest('.portfolio-item');
    if (card) send({ type: 'open', id: card.dataset.id });
  });

  document.getElementById('study-modal').addEventListener('click', function(e) {
    var open = e.target.closest('[data-open]');
    if (open) { e.preventDefault(); send({ type: 'open', id: open.dataset.open }); return; }
    var img = e.target.closest('[data-single]');
    if (img) { send({ type: 'lightbox', action: 'single', src: img.dataset.single }); return; }
    if (e.target.id === 'study-modal' || e.target.id === 'study-close') {
      document.getElementById('study-modal').classList.add('hidden');
    }
  });

  var lightbox = document.getElementById('lightbox');
  lightbox.addEventListener('click', function(e) {
    var b = e.target.closest('[data-lb]');
    if (b) send({ type: 'lightbox', action: b.dataset.lb });
  });
  var touchX = null;
  lightbox.addEventListener('touchstart', function(e) { touchX = e.changedTouches[0].screenX; });
  lightbox.addEventListener('touchend', function(e) {
    if (touchX === null) return;
    send({ type: 'lightbox', action: 'swipe', dx: Math.round(e.changedTouches[0].screenX - touchX) });
    touchX = null;
  });

  document.addEventListener('keydown', function(e) {
    if (!lightbox.classList.contains('hidden')) {
      if (e.key === 'Escape') send({ type: 'lightbox', action: 'close' });
      if (e.key === 'ArrowRight') send({ type: 'lightbox', action: 'next' });
      if (e.key === 'ArrowLeft') send({ type: 'lightbox', action: 'prev' });
      return;
    }
    if (e.key === 'Escape') document.getElementById('study-modal').classList.add('hidden');
    if (!(e.ctrlKey || e.metaKey)) return;
    var k = e.key.toLowerCase();
    if (k === 'z' && !e.shiftKey) { e.preventDefault(); send({ type: 'undo' }); }
    else if ((k === 'z' && e.shiftKey) || k === 'y') { e.preventDefault(); send({ type: 'redo' }); }
  });

  var ticking = false;
  window.addEventListener('scroll', function() {
    if (ticking) return;
    ticking = true;
    requestAnimationFrame(function() {
      ticking = false;
      var y = Math.round(window.scrollY);
      if (y !== lastScroll) { lastScroll = y; send({ type: 'scroll', scroll_y: y }); }
    });
  });

  if (cfg.scrollY) window.scrollTo(0, cfg.scrollY);
  toast(cfg.toast);

  if ('serviceWorker' in navigator) {
    window.addEventListener('load', function() { navigator.serviceWorker.register('/sw.js'); });
  }
})();
`
