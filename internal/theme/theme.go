// Package theme maps the optional site config onto page-wide CSS custom
// properties and the navigation logo slot.
package theme

import (
	"html/template"
	"strings"

	"finitefield.org/portfolio-web/internal/portfolio"
)

// CSS custom properties the stylesheet reads.
const (
	VarPrimary    = "--color-dark-blue"
	VarSecondary  = "--color-light-gray"
	VarBackground = "--color-white"
	VarText       = "--color-dark"
	VarFontHead   = "--font-heading"
	VarFontBody   = "--font-body"
)

// LogoHeightPx is the fixed rendered height of an image logo.
const LogoHeightPx = 40

// order fixes declaration output so rendered pages are stable.
var order = []string{VarPrimary, VarSecondary, VarBackground, VarText, VarFontHead, VarFontBody}

// binding ties one optional theme field to the variable it sets.
type binding struct {
	variable string
	field    func(*portfolio.Theme) string
	format   func(string) string
}

var bindings = []binding{
	{VarPrimary, func(t *portfolio.Theme) string { return t.PrimaryColor }, verbatim},
	{VarSecondary, func(t *portfolio.Theme) string { return t.SecondaryColor }, verbatim},
	{VarBackground, func(t *portfolio.Theme) string { return t.BackgroundColor }, verbatim},
	{VarText, func(t *portfolio.Theme) string { return t.TextColor }, verbatim},
	{VarFontHead, func(t *portfolio.Theme) string { return t.FontHeading }, FontFamily},
	{VarFontBody, func(t *portfolio.Theme) string { return t.FontBody }, FontFamily},
}

// Vars is a set of CSS custom property values.
type Vars map[string]string

// Defaults returns the stylesheet's built-in values.
func Defaults() Vars {
	return Vars{
		VarPrimary:    "#1E3A8A",
		VarSecondary:  "#F3F4F6",
		VarBackground: "#FFFFFF",
		VarText:       "#111827",
		VarFontHead:   FontFamily("Poppins"),
		VarFontBody:   FontFamily("Inter"),
	}
}

// FontFamily wraps a font name into a declaration with a sans-serif fallback.
func FontFamily(name string) string {
	return "'" + name + "', sans-serif"
}

func verbatim(v string) string { return v }

// Apply returns a copy of base with every present theme field applied.
// Absent fields keep the value from base; nothing is ever cleared.
func Apply(base Vars, t *portfolio.Theme) Vars {
	out := make(Vars, len(base))
	for k, v := range base {
		out[k] = v
	}
	if t == nil {
		return out
	}
	for _, b := range bindings {
		if v := b.field(t); v != "" {
			out[b.variable] = b.format(v)
		}
	}
	return out
}

// Declarations renders the variables as an inline style value in a fixed order.
// Characters that could end the declaration or the attribute are dropped.
func (v Vars) Declarations() template.CSS {
	var sb strings.Builder
	for _, name := range order {
		value, ok := v[name]
		if !ok || value == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(name)
		sb.WriteString(": ")
		sb.WriteString(stripUnsafe(value))
		sb.WriteByte(';')
	}
	return template.CSS(sb.String())
}

func stripUnsafe(v string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ';', '{', '}', '<', '>', '"', '\\', '\n', '\r':
			return -1
		}
		return r
	}, v)
}

// LogoSlot is the resolved content of the navigation logo.
type LogoSlot struct {
	ImageURL string
	HeightPx int
	Text     string
}

// IsImage reports whether the slot renders an image.
func (s LogoSlot) IsImage() bool { return s.ImageURL != "" }

// ResolveLogo picks an image logo when the config asks for one and provides a
// URL; otherwise the logo text, falling back to the first word of name.
func ResolveLogo(logo *portfolio.Logo, name string) LogoSlot {
	if logo != nil && logo.Type == portfolio.LogoTypeImage && logo.Content != "" {
		return LogoSlot{ImageURL: logo.Content, HeightPx: LogoHeightPx}
	}
	if logo != nil && logo.Content != "" {
		return LogoSlot{Text: logo.Content}
	}
	return LogoSlot{Text: firstWord(name)}
}

func firstWord(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// Applied is the theme state of one rendered page.
type Applied struct {
	Vars Vars
	Logo LogoSlot
}

// Resolve applies the record's config on top of base. A record without config
// keeps base untouched.
func Resolve(base Vars, rec portfolio.Record) Applied {
	return Applied{
		Vars: Apply(base, rec.Theme()),
		Logo: ResolveLogo(rec.Logo(), rec.Personal.Name),
	}
}
