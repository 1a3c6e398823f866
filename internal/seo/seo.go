package seo

import "strings"

type OpenGraph struct {
    Title       string
    Description string
    Image       string
    Type        string
}

type Meta struct {
    Title       string
    Description string
    Canonical   string
    OG          OpenGraph
}

// ForPage builds page metadata. siteURL may be empty, in which case no
// canonical link is emitted.
func ForPage(title, description, siteURL, path string) Meta {
    canonical := ""
    if siteURL != "" {
        canonical = strings.TrimRight(siteURL, "/") + path
    }
    return Meta{
        Title:       title,
        Description: description,
        Canonical:   canonical,
        OG: OpenGraph{
            Title:       title,
            Description: description,
            Type:        "website",
        },
    }
}
