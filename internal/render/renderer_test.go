package render

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finitefield.org/portfolio-web/internal/nav"
	"finitefield.org/portfolio-web/internal/pages"
	"finitefield.org/portfolio-web/internal/portfolio"
	"finitefield.org/portfolio-web/internal/reveal"
	"finitefield.org/portfolio-web/internal/testutil"
)

func renderHome(t *testing.T, rec portfolio.Record) []byte {
	t.Helper()
	r, err := NewRenderer("", false)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, TemplateHome, Build(rec, Options{Now: fixedNow})))
	return buf.Bytes()
}

func TestRenderHomeDOMContract(t *testing.T) {
	doc := testutil.ParseHTML(t, renderHome(t, loadFixture(t)))

	for _, id := range []string{
		"hero-name", "hero-title", "hero-description", "about-bio", "about-description",
		"expertise-grid", "skills-grid", "projects-grid", "contact-email", "contact-location",
		"contact-availability", "social-links", "footer-name", "current-year", "nav-logo",
		"navbar", "navToggle", "navMenu",
	} {
		assert.Equal(t, 1, doc.Find("#"+id).Length(), "missing #%s", id)
	}
	assert.Equal(t, "Alex Rivera", testutil.TextOf(doc, "#hero-name"))
	assert.Equal(t, "Lisbon, Portugal", testutil.TextOf(doc, "#contact-location"))
	assert.Equal(t, "2026", testutil.TextOf(doc, "#current-year"))
	assert.Equal(t, "Alex", testutil.TextOf(doc, "#nav-logo"))
	assert.Equal(t, 5, doc.Find("#navMenu .nav-link").Length())

	href, _ := doc.Find("#contact-email").Attr("href")
	assert.Equal(t, "mailto:alex@example.com", href)

	style, _ := doc.Find("html").Attr("style")
	assert.Contains(t, style, "--color-dark-blue: #1E3A8A;")
	assert.Contains(t, style, "--font-heading: 'Poppins', sans-serif;")
}

func TestRenderHomeCards(t *testing.T) {
	doc := testutil.ParseHTML(t, renderHome(t, loadFixture(t)))

	assert.Equal(t, 4, doc.Find("#expertise-grid").Children().Length())
	skills := doc.Find("#skills-grid .skill-card")
	require.Equal(t, 3, skills.Length())
	bar := skills.First().Find(".progress-bar")
	progress, _ := bar.Attr("data-progress")
	assert.Equal(t, "95", progress)
	width, _ := bar.Attr("style")
	assert.Contains(t, width, "width: 0")
	delay, _ := skills.Eq(1).Attr("style")
	assert.Contains(t, delay, "animation-delay: 0.1s")

	cards := doc.Find("#projects-grid .project-card")
	require.Equal(t, 3, cards.Length())

	first := cards.Eq(0)
	assert.Equal(t, 1, first.Find("video").Length())
	assert.Equal(t, 0, first.Find("img").Length())
	dataHref, ok := first.Attr("data-href")
	assert.True(t, ok)
	assert.Equal(t, "assets/videos/northwind.mp4", dataHref)

	second := cards.Eq(1)
	assert.Equal(t, 1, second.Find("img").Length())
	_, ok = second.Attr("data-href")
	assert.True(t, ok, "external links are clickable too")

	third := cards.Eq(2)
	assert.Equal(t, 0, third.Find("video").Length())
	assert.Equal(t, 1, third.Find("img").Length())
	_, ok = third.Attr("data-href")
	assert.False(t, ok)
	fallback, _ := third.Find("img").Attr("data-fallback")
	assert.True(t, strings.HasPrefix(fallback, "data:image/svg+xml,"), fallback)

	social := doc.Find("#social-links a.social-link")
	require.Equal(t, 2, social.Length())
	target, _ := social.First().Attr("target")
	rel, _ := social.First().Attr("rel")
	title, _ := social.First().Attr("title")
	assert.Equal(t, "_blank", target)
	assert.Equal(t, "noopener noreferrer", rel)
	assert.Equal(t, "Vimeo", title)
}

func TestRenderScriptConfig(t *testing.T) {
	doc := testutil.ParseHTML(t, renderHome(t, loadFixture(t)))
	body := doc.Find("body")

	rawNav, ok := body.Attr("data-nav-config")
	require.True(t, ok)
	var navCfg nav.ScriptConfig
	require.NoError(t, json.Unmarshal([]byte(rawNav), &navCfg))
	assert.Equal(t, nav.Script(), navCfg)

	rawReveal, ok := body.Attr("data-reveal-config")
	require.True(t, ok)
	var revealCfg reveal.ScriptConfig
	require.NoError(t, json.Unmarshal([]byte(rawReveal), &revealCfg))
	assert.Equal(t, 0.15, revealCfg.Threshold)
	assert.Equal(t, "0px 0px -50px 0px", revealCfg.RootMargin)
	assert.EqualValues(t, 200, revealCfg.ProgressDelayMs)

	// Every card the script reveals starts hidden with an empty bar.
	doc.Find(".skill-card").Each(func(_ int, card *goquery.Selection) {
		assert.True(t, card.HasClass(revealCfg.FadeClass))
		assert.False(t, card.HasClass(revealCfg.VisibleClass))
		bar := card.Find(".progress-bar")
		_, ok := bar.Attr("data-progress")
		assert.True(t, ok)
		style, _ := bar.Attr("style")
		assert.Equal(t, "width: 0", style)
	})
	assert.Equal(t, 3, doc.Find("#projects-grid ."+revealCfg.FadeClass).Length())
	assert.Equal(t, 3, doc.Find("#navToggle .bar").Length())
}

func TestRenderWebmProjectIsVideo(t *testing.T) {
	rec := portfolio.Default()
	rec.Projects = []portfolio.Project{{Title: "Loop", VideoURL: "loops/intro.webm", Tags: []string{}}}
	doc := testutil.ParseHTML(t, renderHome(t, rec))
	card := doc.Find("#projects-grid .project-card")
	assert.Equal(t, 1, card.Find("video").Length())
	assert.Equal(t, 0, card.Find("img").Length())
}

func TestRenderEmptyCollections(t *testing.T) {
	doc := testutil.ParseHTML(t, renderHome(t, portfolio.Default()))
	for _, id := range []string{"expertise-grid", "skills-grid", "projects-grid", "social-links"} {
		assert.Equal(t, 0, doc.Find("#"+id).Children().Length(), "#%s should be empty", id)
	}
	assert.Equal(t, "Motion Graphics Artist", testutil.TextOf(doc, "#hero-name"))
	assert.Equal(t, "Motion", testutil.TextOf(doc, "#nav-logo"))
}

func TestRenderEscapesText(t *testing.T) {
	rec := portfolio.Default()
	rec.Personal.Name = `<script>alert("x")</script>`
	body := renderHome(t, rec)
	assert.NotContains(t, string(body), `<script>alert("x")</script>`)
	doc := testutil.ParseHTML(t, body)
	assert.Equal(t, rec.Personal.Name, testutil.TextOf(doc, "#hero-name"))
}

func TestRenderImageLogo(t *testing.T) {
	rec := portfolio.Default()
	rec.Config = &portfolio.SiteConfig{Logo: &portfolio.Logo{Type: "image", Content: "/assets/logo.svg"}}
	doc := testutil.ParseHTML(t, renderHome(t, rec))
	img := doc.Find("#nav-logo img")
	require.Equal(t, 1, img.Length())
	src, _ := img.Attr("src")
	style, _ := img.Attr("style")
	assert.Equal(t, "/assets/logo.svg", src)
	assert.Contains(t, style, "height: 40px")
}

func TestRenderDocument(t *testing.T) {
	r, err := NewRenderer("", false)
	require.NoError(t, err)
	page := pages.Page{
		Slug:      "colophon",
		Title:     "Colophon",
		Body:      "<p>Made with care.</p>",
		UpdatedAt: time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC),
	}
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, TemplateDocument, BuildDocument(loadFixture(t), page, Options{Now: fixedNow, Path: "/pages/colophon"})))

	doc := testutil.ParseHTML(t, buf.Bytes())
	assert.Equal(t, "Colophon", testutil.TextOf(doc, ".document-title"))
	assert.Equal(t, "Made with care.", testutil.TextOf(doc, ".document-body p:not(.document-updated)"))
	assert.Equal(t, "Colophon", testutil.TextOf(doc, ".breadcrumbs [aria-current=page]"))
	href, _ := doc.Find("#navMenu .nav-link").Eq(1).Attr("href")
	assert.Equal(t, "/#about", href)
	assert.Equal(t, "Colophon | Alex Rivera", testutil.TextOf(doc, "title"))
}

func TestRenderUnknownPage(t *testing.T) {
	r, err := NewRenderer("", false)
	require.NoError(t, err)
	assert.Error(t, r.Render(&bytes.Buffer{}, "missing", nil))
}

func TestDevModeReparsesFromDisk(t *testing.T) {
	dir := t.TempDir()
	for _, sub := range []string{"layouts", "partials", "pages"} {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, sub), 0o755))
	}
	write := func(name, body string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	write("layouts/base.tmpl", `{{define "base"}}[{{template "content" .}}]{{end}}`)
	write("partials/empty.tmpl", `{{define "unused"}}{{end}}`)
	write("pages/home.tmpl", `{{define "content"}}v1{{end}}`)
	write("pages/document.tmpl", `{{define "content"}}doc{{end}}`)

	r, err := NewRenderer(dir, true)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, TemplateHome, nil))
	assert.Equal(t, "[v1]", buf.String())

	write("pages/home.tmpl", `{{define "content"}}v2{{end}}`)
	buf.Reset()
	require.NoError(t, r.Render(&buf, TemplateHome, nil))
	assert.Equal(t, "[v2]", buf.String())
}

func TestRenderIndex(t *testing.T) {
	r, err := NewRenderer("", false)
	require.NoError(t, err)
	list := []pages.Page{{Slug: "colophon", Title: "Colophon"}, {Slug: "case-studies", Title: "Case Studies"}}
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, TemplateDocument, BuildIndex(portfolio.Default(), list, Options{Now: fixedNow})))

	doc := testutil.ParseHTML(t, buf.Bytes())
	links := doc.Find(".document-index a")
	require.Equal(t, 2, links.Length())
	href, _ := links.Eq(1).Attr("href")
	assert.Equal(t, "/pages/case-studies", href)
}
