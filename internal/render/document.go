package render

import (
	"html/template"

	"finitefield.org/portfolio-web/internal/format"
	"finitefield.org/portfolio-web/internal/nav"
	"finitefield.org/portfolio-web/internal/pages"
	"finitefield.org/portfolio-web/internal/portfolio"
	"finitefield.org/portfolio-web/internal/seo"
)

// Document is the view model of a supplemental markdown page.
type Document struct {
	Layout
	Title   string
	Summary string
	Updated string
	Body    template.HTML
	// Index lists pages when rendering the pages overview.
	Index []pages.Page
}

// BuildDocument wraps a markdown page in the site layout themed by rec.
func BuildDocument(rec portfolio.Record, page pages.Page, opts Options) Document {
	opts = opts.withDefaults()
	layout := buildLayout(rec, opts, page.Title+" | "+rec.Personal.Name, page.Summary)
	layout.Meta.OG.Type = "article"
	layout.Crumbs = nav.Breadcrumbs(opts.Path)
	if len(layout.Crumbs) > 0 {
		layout.Crumbs[len(layout.Crumbs)-1].Label = page.Title
	}
	items := make([]seo.BreadcrumbItem, 0, len(layout.Crumbs))
	for _, c := range layout.Crumbs {
		items = append(items, seo.BreadcrumbItem{Name: c.Label, Item: opts.SiteURL + c.Href})
	}
	layout.JSONLD = append(layout.JSONLD, seo.Script(seo.BreadcrumbList(items)))
	return Document{
		Layout:  layout,
		Title:   page.Title,
		Summary: page.Summary,
		Updated: format.Date(page.UpdatedAt),
		Body:    page.Body,
	}
}

// BuildIndex renders the overview of all published pages.
func BuildIndex(rec portfolio.Record, list []pages.Page, opts Options) Document {
	if opts.Path == "" {
		opts.Path = "/pages"
	}
	doc := BuildDocument(rec, pages.Page{Title: "Pages"}, opts)
	doc.Index = list
	return doc
}
