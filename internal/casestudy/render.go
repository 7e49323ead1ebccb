package casestudy

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
)

// Detail is a study prepared for the modal view.
type Detail struct {
	Study         Study         `json:"study"`
	ChallengeHTML template.HTML `json:"challenge_html"`
	SolutionHTML  template.HTML `json:"solution_html"`
	ImageURL      string        `json:"image_url"`
	SrcSet        string        `json:"srcset"`
	Gallery       []string      `json:"gallery"`
	Related       []RelatedCard `json:"related"`
}

// RelatedCard is a compact link to another study.
type RelatedCard struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
	ImageURL string `json:"image_url"`
}

// Renderer turns study markdown fields into HTML. Raw HTML in the source is
// escaped.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer creates a Renderer with GFM and code highlighting.
func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				highlighting.NewHighlighting(
					highlighting.WithStyle("github"),
				),
			),
		),
	}
}

// Markdown renders src to HTML.
func (r *Renderer) Markdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// Detail assembles the modal view for id from lib.
func (r *Renderer) Detail(lib *Library, id string) (*Detail, error) {
	st, err := lib.Get(id)
	if err != nil {
		return nil, err
	}

	challenge, err := r.Markdown(st.Challenge)
	if err != nil {
		return nil, fmt.Errorf("study %s challenge: %w", id, err)
	}
	solution, err := r.Markdown(st.Solution)
	if err != nil {
		return nil, fmt.Errorf("study %s solution: %w", id, err)
	}

	d := &Detail{
		Study:         st,
		ChallengeHTML: challenge,
		SolutionHTML:  solution,
		ImageURL:      ImageURL(st.Image, 800),
		SrcSet:        SrcSet(st.Image),
		Gallery:       make([]string, 0, len(st.Gallery)),
		Related:       []RelatedCard{},
	}
	for _, g := range st.Gallery {
		d.Gallery = append(d.Gallery, ImageURL(g, 600))
	}
	for _, rel := range lib.Related(id, DefaultRelatedLimit) {
		d.Related = append(d.Related, RelatedCard{
			ID:       rel.ID,
			Title:    rel.Title,
			Category: rel.Category,
			ImageURL: ImageURL(rel.Image, 400),
		})
	}
	return d, nil
}
