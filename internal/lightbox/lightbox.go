package lightbox

// SwipeThreshold is the minimum horizontal travel, in pixels, that counts
// as a swipe.
const SwipeThreshold = 50

// State is what a presentation layer needs to draw the lightbox.
type State struct {
	Open      bool   `json:"open"`
	Src       string `json:"src"`
	Index     int    `json:"index"`
	Total     int    `json:"total"`
	Navigable bool   `json:"navigable"`
}

// Lightbox tracks the full-screen image viewer over an ordered gallery.
type Lightbox struct {
	images []string
	index  int
	open   bool
	single string // set when showing one image outside the gallery
}

// New creates a closed lightbox over images.
func New(images []string) *Lightbox {
	cp := make([]string, len(images))
	copy(cp, images)
	return &Lightbox{images: cp}
}

// Open shows the gallery image at i. Out-of-range indexes wrap.
func (l *Lightbox) Open(i int) State {
	if len(l.images) == 0 {
		return l.State()
	}
	l.single = ""
	l.open = true
	l.index = wrap(i, len(l.images))
	return l.State()
}

// OpenSingle shows src by itself with gallery navigation disabled.
func (l *Lightbox) OpenSingle(src string) State {
	if src == "" {
		return l.State()
	}
	l.single = src
	l.open = true
	return l.State()
}

// Next advances to the following image, wrapping to the first.
func (l *Lightbox) Next() State { return l.step(1) }

// Prev goes back one image, wrapping to the last.
func (l *Lightbox) Prev() State { return l.step(-1) }

// Swipe interprets a horizontal touch travel: left swipes (negative dx)
// advance, right swipes go back.
func (l *Lightbox) Swipe(dx int) State {
	switch {
	case dx < -SwipeThreshold:
		return l.Next()
	case dx > SwipeThreshold:
		return l.Prev()
	}
	return l.State()
}

// Close hides the lightbox and restores gallery navigation.
func (l *Lightbox) Close() State {
	l.open = false
	l.single = ""
	return l.State()
}

// State reports the current view.
func (l *Lightbox) State() State {
	st := State{Open: l.open, Index: l.index, Total: len(l.images)}
	switch {
	case !l.open:
	case l.single != "":
		st.Src = l.single
	default:
		st.Src = l.images[l.index]
		st.Navigable = len(l.images) > 1
	}
	return st
}

func (l *Lightbox) step(delta int) State {
	if !l.open || l.single != "" || len(l.images) == 0 {
		return l.State()
	}
	l.index = wrap(l.index+delta, len(l.images))
	return l.State()
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
