package seo

import (
    "encoding/json"
    "html/template"
)

const schemaContext = "https://schema.org"

// JSON marshals v to a compact JSON string. It returns an empty string on error.
func JSON(v any) string {
    b, err := json.Marshal(v)
    if err != nil {
        return ""
    }
    return string(b)
}

// Script marshals v for a <script type="application/ld+json"> block.
func Script(v any) template.JS {
    return template.JS(JSON(v))
}

// PersonSchema describes the portfolio owner.
type PersonSchema struct {
    Context  string   `json:"@context"`
    Type     string   `json:"@type"`
    Name     string   `json:"name"`
    JobTitle string   `json:"jobTitle,omitempty"`
    Email    string   `json:"email,omitempty"`
    URL      string   `json:"url,omitempty"`
    SameAs   []string `json:"sameAs,omitempty"`
}

// Person builds the owner schema. Empty fields are omitted and email is
// written as a mailto URI.
func Person(name, jobTitle, email, url string, sameAs []string) PersonSchema {
    p := PersonSchema{Context: schemaContext, Type: "Person", Name: name, JobTitle: jobTitle, URL: url, SameAs: sameAs}
    if email != "" {
        p.Email = "mailto:" + email
    }
    return p
}

// WebSiteSchema names the site.
type WebSiteSchema struct {
    Context string `json:"@context"`
    Type    string `json:"@type"`
    Name    string `json:"name"`
    URL     string `json:"url,omitempty"`
}

// WebSite builds a WebSite schema.
func WebSite(name, url string) WebSiteSchema {
    return WebSiteSchema{Context: schemaContext, Type: "WebSite", Name: name, URL: url}
}

// BreadcrumbItem maps name and absolute item URL.
type BreadcrumbItem struct {
    Name string
    Item string
}

type listItem struct {
    Type     string `json:"@type"`
    Position int    `json:"position"`
    Name     string `json:"name"`
    Item     string `json:"item"`
}

// BreadcrumbSchema is a schema.org BreadcrumbList.
type BreadcrumbSchema struct {
    Context  string     `json:"@context"`
    Type     string     `json:"@type"`
    Elements []listItem `json:"itemListElement"`
}

// BreadcrumbList numbers items from 1 in order.
func BreadcrumbList(items []BreadcrumbItem) BreadcrumbSchema {
    el := make([]listItem, 0, len(items))
    for i, it := range items {
        el = append(el, listItem{Type: "ListItem", Position: i + 1, Name: it.Name, Item: it.Item})
    }
    return BreadcrumbSchema{Context: schemaContext, Type: "BreadcrumbList", Elements: el}
}
