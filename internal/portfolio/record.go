// Package portfolio defines the portfolio record rendered by the site and the
// rules for decoding it from its JSON document.
package portfolio

import "strings"

// Record is the root document describing the profile owner's content.
// A Record is replaced wholesale; callers never patch one in place.
type Record struct {
	Personal Personal    `json:"personal"`
	About    About       `json:"about"`
	Skills   []Skill     `json:"skills" validate:"dive"`
	Projects []Project   `json:"projects" validate:"dive"`
	Contact  Contact     `json:"contact"`
	Config   *SiteConfig `json:"config,omitempty"`
}

// Personal holds the hero section copy.
type Personal struct {
	Name            string `json:"name" validate:"required"`
	Title           string `json:"title"`
	Tagline         string `json:"tagline"`
	HeroDescription string `json:"heroDescription"`
}

// About holds the about section copy and the ordered expertise list.
type About struct {
	Bio         string   `json:"bio"`
	Description string   `json:"description"`
	Expertise   []string `json:"expertise"`
}

// Skill is one entry of the skills grid. Proficiency is a percentage and is
// used both as the label and as the progress bar width.
type Skill struct {
	Icon        string `json:"icon"`
	Name        string `json:"name" validate:"required"`
	Category    string `json:"category"`
	Proficiency int    `json:"proficiency" validate:"min=0,max=100"`
}

// Project is one showcase card. VideoURL may point to a media file or an
// external page.
type Project struct {
	ID          int      `json:"id,omitempty"`
	Title       string   `json:"title" validate:"required"`
	Year        int      `json:"year"`
	Description string   `json:"description"`
	Thumbnail   string   `json:"thumbnail"`
	VideoURL    string   `json:"videoUrl,omitempty"`
	Tags        []string `json:"tags"`
}

// Contact holds the contact section and social links.
type Contact struct {
	Email        string       `json:"email"`
	Location     string       `json:"location"`
	Availability string       `json:"availability"`
	Social       []SocialLink `json:"social" validate:"dive"`
}

// SocialLink is a single outbound profile link.
type SocialLink struct {
	Platform string `json:"platform" validate:"required"`
	URL      string `json:"url" validate:"required"`
	Icon     string `json:"icon"`
}

// SiteConfig groups the optional presentation settings.
type SiteConfig struct {
	Theme *Theme `json:"theme,omitempty"`
	Logo  *Logo  `json:"logo,omitempty"`
}

// Theme overrides page-wide style variables. Empty fields are left alone.
type Theme struct {
	PrimaryColor    string `json:"primaryColor,omitempty"`
	SecondaryColor  string `json:"secondaryColor,omitempty"`
	BackgroundColor string `json:"backgroundColor,omitempty"`
	TextColor       string `json:"textColor,omitempty"`
	FontHeading     string `json:"fontHeading,omitempty"`
	FontBody        string `json:"fontBody,omitempty"`
}

// Logo describes the navigation logo slot. Type "image" treats Content as an
// image URL; anything else renders Content as text.
type Logo struct {
	Type    string `json:"type,omitempty"`
	Content string `json:"content,omitempty"`
}

// LogoTypeImage marks a logo whose content is an image URL.
const LogoTypeImage = "image"

// Default returns the built-in placeholder record used whenever the real
// document cannot be loaded.
func Default() Record {
	return Record{
		Personal: Personal{
			Name:            "Motion Graphics Artist",
			Title:           "Creative Designer & Animator",
			Tagline:         "Bringing ideas to life",
			HeroDescription: "Crafting captivating visual stories",
		},
		About: About{
			Bio:         "A passionate motion graphics artist.",
			Description: "Creating engaging animations.",
			Expertise:   []string{},
		},
		Skills:   []Skill{},
		Projects: []Project{},
		Contact: Contact{
			Email:        "contact@example.com",
			Location:     "Your City",
			Availability: "Available for freelance",
			Social:       []SocialLink{},
		},
	}
}

// FirstName returns the first whitespace separated word of the person's name.
func (r Record) FirstName() string {
	fields := strings.Fields(r.Personal.Name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// Theme returns the theme config or nil.
func (r Record) Theme() *Theme {
	if r.Config == nil {
		return nil
	}
	return r.Config.Theme
}

// Logo returns the logo config or nil.
func (r Record) Logo() *Logo {
	if r.Config == nil {
		return nil
	}
	return r.Config.Logo
}

// Clone returns a deep copy so a loaded record can be shared read-only.
func (r Record) Clone() Record {
	cp := r
	cp.About.Expertise = cloneStrings(r.About.Expertise)
	if r.Skills != nil {
		cp.Skills = make([]Skill, len(r.Skills))
		copy(cp.Skills, r.Skills)
	}
	if r.Projects != nil {
		cp.Projects = make([]Project, len(r.Projects))
		for i, p := range r.Projects {
			p.Tags = cloneStrings(p.Tags)
			cp.Projects[i] = p
		}
	}
	if r.Contact.Social != nil {
		cp.Contact.Social = make([]SocialLink, len(r.Contact.Social))
		copy(cp.Contact.Social, r.Contact.Social)
	}
	if r.Config != nil {
		cfg := SiteConfig{}
		if r.Config.Theme != nil {
			t := *r.Config.Theme
			cfg.Theme = &t
		}
		if r.Config.Logo != nil {
			l := *r.Config.Logo
			cfg.Logo = &l
		}
		cp.Config = &cfg
	}
	return cp
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
