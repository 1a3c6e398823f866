package render

import (
	"html/template"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	iconPolicyOnce sync.Once
	iconPolicy     *bluemonday.Policy
)

// iconSanitizer allows plain text and emoji plus the markup icon sets use:
// inline svg, <i class> glyph fonts and images.
func iconSanitizer() *bluemonday.Policy {
	iconPolicyOnce.Do(func() {
		p := bluemonday.NewPolicy()
		p.AllowStandardURLs()
		p.AllowElements("i", "span", "svg", "g", "path", "circle", "rect", "line", "polyline", "polygon", "title")
		p.AllowAttrs("class", "aria-hidden", "aria-label").Globally()
		p.AllowAttrs("xmlns", "viewbox", "width", "height", "fill", "stroke", "stroke-width", "stroke-linecap", "stroke-linejoin", "role").OnElements("svg")
		p.AllowAttrs("d", "fill", "stroke", "stroke-width", "fill-rule", "clip-rule").OnElements("path")
		p.AllowAttrs("cx", "cy", "r", "fill").OnElements("circle")
		p.AllowAttrs("x", "y", "width", "height", "rx", "ry", "fill").OnElements("rect")
		p.AllowAttrs("x1", "y1", "x2", "y2").OnElements("line")
		p.AllowAttrs("points").OnElements("polyline", "polygon")
		p.AllowImages()
		iconPolicy = p
	})
	return iconPolicy
}

// SanitizeIcon cleans icon markup taken from the data document.
func SanitizeIcon(markup string) template.HTML {
	if markup == "" {
		return ""
	}
	return template.HTML(iconSanitizer().Sanitize(markup))
}
