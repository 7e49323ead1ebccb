package casestudy

import (
	"fmt"
	"strings"
)

// Responsive widths offered in the detail view's srcset.
var srcSetWidths = []int{400, 800, 1200}

// ImageURL strips any query string from ref and requests a resized,
// auto-formatted rendition of the given width.
func ImageURL(ref string, width int) string {
	if ref == "" {
		return ""
	}
	base, _, _ := strings.Cut(ref, "?")
	return fmt.Sprintf("%s?q=80&w=%d&auto=format", base, width)
}

// SrcSet builds a srcset attribute value for ref.
func SrcSet(ref string) string {
	if ref == "" {
		return ""
	}
	parts := make([]string, len(srcSetWidths))
	for i, w := range srcSetWidths {
		parts[i] = fmt.Sprintf("%s %dw", ImageURL(ref, w), w)
	}
	return strings.Join(parts, ", ")
}
