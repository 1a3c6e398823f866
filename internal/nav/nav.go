package nav

import (
    "encoding/json"
    "path"
    "strings"

    "golang.org/x/text/cases"
    "golang.org/x/text/language"
)

// ScrollThreshold is the vertical scroll offset (px) past which the navbar
// gets the "scrolled" class. Exactly 50 is not scrolled.
const ScrollThreshold = 50

// HeaderOffset compensates the fixed header height when scrolling to a section.
const HeaderOffset = 80

// Class names toggled by the navigation script.
const (
    ClassScrolled = "scrolled"
    ClassMenuOpen = "active"
)

// Item represents a section link in the navigation bar.
type Item struct {
    Href  string // e.g. "#about"
    Label string
}

// RenderedItem is a view model for templates.
type RenderedItem struct {
    Href   string
    Label  string
    Active bool
}

// Crumb represents a breadcrumb entry on secondary pages.
type Crumb struct {
    Href   string
    Label  string
    Active bool
}

// Main is the primary navigation definition, one link per page section.
var Main = []Item{
    {Href: "#home", Label: "Home"},
    {Href: "#about", Label: "About"},
    {Href: "#skills", Label: "Skills"},
    {Href: "#projects", Label: "Projects"},
    {Href: "#contact", Label: "Contact"},
}

// Build renders navigation items. Off the home page (base != "/") section links
// are prefixed with "/" so they navigate back to the home page anchors.
func Build(base string) []RenderedItem {
    if base == "" {
        base = "/"
    }
    items := make([]RenderedItem, 0, len(Main))
    for i, it := range Main {
        href := it.Href
        if base != "/" {
            href = "/" + it.Href
        }
        items = append(items, RenderedItem{
            Href:   href,
            Label:  it.Label,
            Active: base == "/" && i == 0,
        })
    }
    return items
}

// Breadcrumbs builds breadcrumb entries for a secondary page path.
// Home is always first; each deeper segment gets a title-cased label.
func Breadcrumbs(currentPath string) []Crumb {
    if currentPath == "" {
        currentPath = "/"
    }
    crumbs := []Crumb{{Href: "/", Label: "Home", Active: currentPath == "/"}}
    if currentPath == "/" {
        return crumbs
    }

    clean := path.Clean(currentPath)
    parts := strings.Split(strings.TrimPrefix(clean, "/"), "/")
    href := ""
    for i, part := range parts {
        if part == "" {
            continue
        }
        href = href + "/" + part
        crumbs = append(crumbs, Crumb{
            Href:   href,
            Label:  TitleFromSegment(part),
            Active: i == len(parts)-1,
        })
    }
    return crumbs
}

// TitleFromSegment turns a slug like "case-studies" into "Case Studies".
func TitleFromSegment(seg string) string {
    if seg == "" {
        return seg
    }
    s := strings.ReplaceAll(seg, "-", " ")
    s = strings.ReplaceAll(s, "_", " ")
    return cases.Title(language.English).String(s)
}

// BarStyle is the inline style of one bar of the three-bar menu icon.
type BarStyle struct {
    Transform string `json:"transform"`
    Opacity   string `json:"opacity"`
}

var (
    openBars = [3]BarStyle{
        {Transform: "rotate(45deg) translate(5px, 5px)", Opacity: "1"},
        {Transform: "none", Opacity: "0"},
        {Transform: "rotate(-45deg) translate(7px, -6px)", Opacity: "1"},
    }
    closedBars = [3]BarStyle{
        {Transform: "none", Opacity: "1"},
        {Transform: "none", Opacity: "1"},
        {Transform: "none", Opacity: "1"},
    }
)

// ScriptConfig carries the navigation constants to the browser script, which
// owns the scroll, menu and smooth-scroll behaviour.
type ScriptConfig struct {
    ScrollThreshold int         `json:"scrollThreshold"`
    HeaderOffset    int         `json:"headerOffset"`
    ScrolledClass   string      `json:"scrolledClass"`
    MenuOpenClass   string      `json:"menuOpenClass"`
    OpenBars        [3]BarStyle `json:"openBars"`
    ClosedBars      [3]BarStyle `json:"closedBars"`
}

// Script returns the navigation script configuration.
func Script() ScriptConfig {
    return ScriptConfig{
        ScrollThreshold: ScrollThreshold,
        HeaderOffset:    HeaderOffset,
        ScrolledClass:   ClassScrolled,
        MenuOpenClass:   ClassMenuOpen,
        OpenBars:        openBars,
        ClosedBars:      closedBars,
    }
}

// JSON encodes the configuration for a data attribute.
func (c ScriptConfig) JSON() string {
    b, err := json.Marshal(c)
    if err != nil {
        return "{}"
    }
    return string(b)
}
