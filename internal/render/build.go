// Package render turns a portfolio record into the page view model and
// executes the site templates.
package render

import (
	"html"
	"html/template"
	"net/url"
	"strconv"
	"strings"
	"time"

	"finitefield.org/portfolio-web/internal/format"
	"finitefield.org/portfolio-web/internal/nav"
	"finitefield.org/portfolio-web/internal/portfolio"
	"finitefield.org/portfolio-web/internal/reveal"
	"finitefield.org/portfolio-web/internal/seo"
	"finitefield.org/portfolio-web/internal/theme"
)

// Options carries everything Build needs besides the record.
type Options struct {
	Now      func() time.Time
	SiteURL  string
	Path     string
	Base     theme.Vars
	Reveal   reveal.Options
	Fallback bool
}

func (o Options) withDefaults() Options {
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Path == "" {
		o.Path = "/"
	}
	if o.Base == nil {
		o.Base = theme.Defaults()
	}
	if o.Reveal.Threshold == 0 && o.Reveal.RootMargin == "" {
		o.Reveal = reveal.DefaultOptions()
	}
	return o
}

// Layout is shared by every page rendered inside the base template.
type Layout struct {
	Lang         string
	Meta         seo.Meta
	StyleVars    template.CSS
	Logo         theme.LogoSlot
	Nav          []nav.RenderedItem
	Crumbs       []nav.Crumb
	NavScript    string
	RevealScript string
	JSONLD       []template.JS
	FooterName   string
	Year         string
	Fallback     bool
}

// Page is the home page view model.
type Page struct {
	Layout
	Hero     Hero
	About    About
	Skills   []SkillCard
	Projects []ProjectCard
	Contact  Contact
}

// Hero is the top section.
type Hero struct {
	Name        string
	Title       string
	Tagline     string
	Description string
}

// About holds the about copy and expertise cards.
type About struct {
	Bio         string
	Description string
	Expertise   []ExpertiseCard
}

// ExpertiseCard is one expertise entry.
type ExpertiseCard struct {
	Label string
	Delay string
}

// SkillCard is one skill with its progress bar.
type SkillCard struct {
	ID          string
	Icon        template.HTML
	Name        string
	Category    string
	Proficiency int
	Label       string
	Delay       string
}

// ProjectCard is one project tile.
type ProjectCard struct {
	Title       string
	Year        int
	Description string
	Tags        []string
	Delay       string
	// Video is set when the preview is an inline video.
	Video       string
	Thumbnail   string
	Placeholder template.URL
	// Href is non-empty when the whole card opens a link.
	Href string
}

// Clickable reports whether the card opens Href.
func (p ProjectCard) Clickable() bool { return p.Href != "" }

// HasVideo reports whether the preview is a video element.
func (p ProjectCard) HasVideo() bool { return p.Video != "" }

// Contact is the contact section.
type Contact struct {
	Email        string
	MailTo       template.URL
	Location     string
	Availability string
	Social       []SocialLink
}

// SocialLink is one outbound profile link.
type SocialLink struct {
	URL      string
	Platform string
	Icon     template.HTML
	Delay    string
}

// Build maps rec onto a fresh home page view model. Every section is derived
// from rec alone, so calling Build again with a new record never keeps
// entries from the previous one.
func Build(rec portfolio.Record, opts Options) Page {
	opts = opts.withDefaults()
	p := Page{
		Layout: buildLayout(rec, opts, rec.Personal.Name, rec.Personal.HeroDescription),
		Hero: Hero{
			Name:        rec.Personal.Name,
			Title:       rec.Personal.Title,
			Tagline:     rec.Personal.Tagline,
			Description: rec.Personal.HeroDescription,
		},
		About: About{
			Bio:         rec.About.Bio,
			Description: rec.About.Description,
			Expertise:   make([]ExpertiseCard, 0, len(rec.About.Expertise)),
		},
		Skills:   make([]SkillCard, 0, len(rec.Skills)),
		Projects: make([]ProjectCard, 0, len(rec.Projects)),
		Contact: Contact{
			Email:        rec.Contact.Email,
			MailTo:       mailto(rec.Contact.Email),
			Location:     rec.Contact.Location,
			Availability: rec.Contact.Availability,
			Social:       make([]SocialLink, 0, len(rec.Contact.Social)),
		},
	}
	for i, item := range rec.About.Expertise {
		p.About.Expertise = append(p.About.Expertise, ExpertiseCard{Label: item, Delay: format.Delay(i)})
	}
	for i, s := range rec.Skills {
		p.Skills = append(p.Skills, SkillCard{
			ID:          "skill-" + strconv.Itoa(i),
			Icon:        SanitizeIcon(s.Icon),
			Name:        s.Name,
			Category:    s.Category,
			Proficiency: s.Proficiency,
			Label:       format.Percent(s.Proficiency),
			Delay:       format.Delay(i),
		})
	}
	for i, pr := range rec.Projects {
		p.Projects = append(p.Projects, buildProject(pr, i))
	}
	for i, s := range rec.Contact.Social {
		p.Contact.Social = append(p.Contact.Social, SocialLink{
			URL:      s.URL,
			Platform: s.Platform,
			Icon:     SanitizeIcon(s.Icon),
			Delay:    format.Delay(i),
		})
	}
	p.JSONLD = append(p.JSONLD, seo.Script(seo.Person(
		rec.Personal.Name, rec.Personal.Title, rec.Contact.Email, opts.SiteURL, socialURLs(rec),
	)))
	return p
}

func buildLayout(rec portfolio.Record, opts Options, title, description string) Layout {
	applied := theme.Resolve(opts.Base, rec)
	return Layout{
		Lang:         "en",
		Meta:         seo.ForPage(title, description, opts.SiteURL, opts.Path),
		StyleVars:    applied.Vars.Declarations(),
		Logo:         applied.Logo,
		Nav:          nav.Build(opts.Path),
		NavScript:    nav.Script().JSON(),
		RevealScript: opts.Reveal.ScriptJSON(),
		JSONLD:       []template.JS{seo.Script(seo.WebSite(rec.Personal.Name, opts.SiteURL))},
		FooterName:   rec.Personal.Name,
		Year:         format.Year(opts.Now()),
		Fallback:     opts.Fallback,
	}
}

// IsVideo reports whether a project link points at a media file that can be
// previewed inline. The check is case-sensitive.
func IsVideo(u string) bool {
	return strings.HasSuffix(u, ".mp4") || strings.HasSuffix(u, ".webm")
}

func buildProject(pr portfolio.Project, i int) ProjectCard {
	card := ProjectCard{
		Title:       pr.Title,
		Year:        pr.Year,
		Description: pr.Description,
		Tags:        pr.Tags,
		Delay:       format.Delay(i),
		Href:        pr.VideoURL,
	}
	if card.Tags == nil {
		card.Tags = []string{}
	}
	if IsVideo(pr.VideoURL) {
		card.Video = pr.VideoURL
	} else {
		card.Thumbnail = pr.Thumbnail
		card.Placeholder = Placeholder(pr.Title)
	}
	return card
}

// Placeholder returns an SVG data URI showing title on a grey 400x300 tile,
// used when a thumbnail fails to load.
func Placeholder(title string) template.URL {
	svg := `<svg xmlns="http://www.w3.org/2000/svg" width="400" height="300">` +
		`<rect fill="#E5E7EB" width="400" height="300"/>` +
		`<text fill="#6B7280" font-family="Arial" font-size="20" x="50%" y="50%" text-anchor="middle" dy=".3em">` +
		html.EscapeString(title) +
		`</text></svg>`
	return template.URL("data:image/svg+xml," + url.PathEscape(svg))
}

func mailto(email string) template.URL {
	if email == "" {
		return ""
	}
	return template.URL("mailto:" + url.PathEscape(email))
}

func socialURLs(rec portfolio.Record) []string {
	out := make([]string, 0, len(rec.Contact.Social))
	for _, s := range rec.Contact.Social {
		if s.URL != "" {
			out = append(out, s.URL)
		}
	}
	return out
}
