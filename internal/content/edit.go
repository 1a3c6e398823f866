// Package content implements the editing operations of the content manager
// CLI on top of a portfolio record and its data file.
package content

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"finitefield.org/portfolio-web/internal/portfolio"
)

// DefaultSkillIcon is used when a skill is added without an icon.
const DefaultSkillIcon = "⚡"

// ErrIndex is returned for list positions outside the list.
var ErrIndex = errors.New("content: no entry at that position")

func indexError(n, length int) error {
	return fmt.Errorf("%w: %d (have %d)", ErrIndex, n, length)
}

// ClampProficiency bounds a proficiency to 0..100.
func ClampProficiency(p int) int {
	return max(0, min(100, p))
}

// ParseTags splits a comma separated list, dropping empty entries.
func ParseTags(raw string) []string {
	out := []string{}
	for _, tag := range strings.Split(raw, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

// PersonalUpdate changes the non-nil hero fields.
type PersonalUpdate struct {
	Name            *string
	Title           *string
	Tagline         *string
	HeroDescription *string
}

// UpdatePersonal applies u to rec.
func UpdatePersonal(rec *portfolio.Record, u PersonalUpdate) {
	set(&rec.Personal.Name, u.Name)
	set(&rec.Personal.Title, u.Title)
	set(&rec.Personal.Tagline, u.Tagline)
	set(&rec.Personal.HeroDescription, u.HeroDescription)
}

// AboutUpdate changes the non-nil about fields.
type AboutUpdate struct {
	Bio         *string
	Description *string
}

// UpdateAbout applies u to rec.
func UpdateAbout(rec *portfolio.Record, u AboutUpdate) {
	set(&rec.About.Bio, u.Bio)
	set(&rec.About.Description, u.Description)
}

// ContactUpdate changes the non-nil contact fields.
type ContactUpdate struct {
	Email        *string
	Location     *string
	Availability *string
}

// UpdateContact applies u to rec.
func UpdateContact(rec *portfolio.Record, u ContactUpdate) {
	set(&rec.Contact.Email, u.Email)
	set(&rec.Contact.Location, u.Location)
	set(&rec.Contact.Availability, u.Availability)
}

func set(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

// AddExpertise appends an expertise entry.
func AddExpertise(rec *portfolio.Record, item string) error {
	item = strings.TrimSpace(item)
	if item == "" {
		return errors.New("content: expertise must not be empty")
	}
	rec.About.Expertise = append(rec.About.Expertise, item)
	return nil
}

// RemoveExpertise removes the n-th (1-based) expertise entry.
func RemoveExpertise(rec *portfolio.Record, n int) (string, error) {
	if n < 1 || n > len(rec.About.Expertise) {
		return "", indexError(n, len(rec.About.Expertise))
	}
	removed := rec.About.Expertise[n-1]
	rec.About.Expertise = append(rec.About.Expertise[:n-1:n-1], rec.About.Expertise[n:]...)
	return removed, nil
}

// AddSkill appends a skill. Proficiency is clamped and an empty icon gets
// DefaultSkillIcon.
func AddSkill(rec *portfolio.Record, name, category string, proficiency int, icon string) (portfolio.Skill, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return portfolio.Skill{}, errors.New("content: skill name is required")
	}
	icon = strings.TrimSpace(icon)
	if icon == "" {
		icon = DefaultSkillIcon
	}
	s := portfolio.Skill{
		Name:        name,
		Category:    strings.TrimSpace(category),
		Proficiency: ClampProficiency(proficiency),
		Icon:        icon,
	}
	rec.Skills = append(rec.Skills, s)
	return s, nil
}

// SkillUpdate changes the non-nil fields of a skill.
type SkillUpdate struct {
	Name        *string
	Category    *string
	Proficiency *int
	Icon        *string
}

// UpdateSkill edits the n-th (1-based) skill.
func UpdateSkill(rec *portfolio.Record, n int, u SkillUpdate) (portfolio.Skill, error) {
	if n < 1 || n > len(rec.Skills) {
		return portfolio.Skill{}, indexError(n, len(rec.Skills))
	}
	s := &rec.Skills[n-1]
	set(&s.Name, u.Name)
	set(&s.Category, u.Category)
	set(&s.Icon, u.Icon)
	if u.Proficiency != nil {
		s.Proficiency = ClampProficiency(*u.Proficiency)
	}
	return *s, nil
}

// RemoveSkill removes the n-th (1-based) skill.
func RemoveSkill(rec *portfolio.Record, n int) (portfolio.Skill, error) {
	if n < 1 || n > len(rec.Skills) {
		return portfolio.Skill{}, indexError(n, len(rec.Skills))
	}
	removed := rec.Skills[n-1]
	rec.Skills = append(rec.Skills[:n-1:n-1], rec.Skills[n:]...)
	return removed, nil
}

// ProjectInput describes a new project.
type ProjectInput struct {
	Title       string
	Description string
	Thumbnail   string
	VideoURL    string
	Tags        []string
	Year        int
}

// AddProject appends a project with the next free id. A zero year means the
// current year.
func AddProject(rec *portfolio.Record, in ProjectInput, now time.Time) (portfolio.Project, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return portfolio.Project{}, errors.New("content: project title is required")
	}
	year := in.Year
	if year == 0 {
		year = now.Year()
	}
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}
	p := portfolio.Project{
		ID:          nextProjectID(rec.Projects),
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Thumbnail:   strings.TrimSpace(in.Thumbnail),
		VideoURL:    strings.TrimSpace(in.VideoURL),
		Tags:        tags,
		Year:        year,
	}
	rec.Projects = append(rec.Projects, p)
	return p, nil
}

func nextProjectID(projects []portfolio.Project) int {
	highest := 0
	for _, p := range projects {
		highest = max(highest, p.ID)
	}
	return highest + 1
}

// ProjectUpdate changes the non-nil fields of a project.
type ProjectUpdate struct {
	Title       *string
	Description *string
	Thumbnail   *string
	VideoURL    *string
	Tags        []string
	Year        *int
}

// UpdateProject edits the n-th (1-based) project. Its id never changes.
func UpdateProject(rec *portfolio.Record, n int, u ProjectUpdate) (portfolio.Project, error) {
	if n < 1 || n > len(rec.Projects) {
		return portfolio.Project{}, indexError(n, len(rec.Projects))
	}
	p := &rec.Projects[n-1]
	set(&p.Title, u.Title)
	set(&p.Description, u.Description)
	set(&p.Thumbnail, u.Thumbnail)
	set(&p.VideoURL, u.VideoURL)
	if u.Tags != nil {
		p.Tags = u.Tags
	}
	if u.Year != nil {
		p.Year = *u.Year
	}
	return *p, nil
}

// RemoveProject removes the n-th (1-based) project.
func RemoveProject(rec *portfolio.Record, n int) (portfolio.Project, error) {
	if n < 1 || n > len(rec.Projects) {
		return portfolio.Project{}, indexError(n, len(rec.Projects))
	}
	removed := rec.Projects[n-1]
	rec.Projects = append(rec.Projects[:n-1:n-1], rec.Projects[n:]...)
	return removed, nil
}

// AddSocial appends a social link.
func AddSocial(rec *portfolio.Record, platform, url, icon string) (portfolio.SocialLink, error) {
	platform, url = strings.TrimSpace(platform), strings.TrimSpace(url)
	if platform == "" || url == "" {
		return portfolio.SocialLink{}, errors.New("content: platform and url are required")
	}
	s := portfolio.SocialLink{Platform: platform, URL: url, Icon: strings.TrimSpace(icon)}
	rec.Contact.Social = append(rec.Contact.Social, s)
	return s, nil
}

// RemoveSocial removes the n-th (1-based) social link.
func RemoveSocial(rec *portfolio.Record, n int) (portfolio.SocialLink, error) {
	if n < 1 || n > len(rec.Contact.Social) {
		return portfolio.SocialLink{}, indexError(n, len(rec.Contact.Social))
	}
	removed := rec.Contact.Social[n-1]
	rec.Contact.Social = append(rec.Contact.Social[:n-1:n-1], rec.Contact.Social[n:]...)
	return removed, nil
}

// ThemeUpdate changes the non-nil theme fields.
type ThemeUpdate struct {
	PrimaryColor    *string
	SecondaryColor  *string
	BackgroundColor *string
	TextColor       *string
	FontHeading     *string
	FontBody        *string
}

// UpdateTheme applies u, creating the config and theme when absent.
func UpdateTheme(rec *portfolio.Record, u ThemeUpdate) {
	if rec.Config == nil {
		rec.Config = &portfolio.SiteConfig{}
	}
	if rec.Config.Theme == nil {
		rec.Config.Theme = &portfolio.Theme{}
	}
	t := rec.Config.Theme
	set(&t.PrimaryColor, u.PrimaryColor)
	set(&t.SecondaryColor, u.SecondaryColor)
	set(&t.BackgroundColor, u.BackgroundColor)
	set(&t.TextColor, u.TextColor)
	set(&t.FontHeading, u.FontHeading)
	set(&t.FontBody, u.FontBody)
}

// SetLogo sets the navigation logo. kind is "text" or "image".
func SetLogo(rec *portfolio.Record, kind, content string) error {
	kind = strings.ToLower(strings.TrimSpace(kind))
	if kind != "text" && kind != portfolio.LogoTypeImage {
		return fmt.Errorf("content: unknown logo type %q", kind)
	}
	if rec.Config == nil {
		rec.Config = &portfolio.SiteConfig{}
	}
	rec.Config.Logo = &portfolio.Logo{Type: kind, Content: strings.TrimSpace(content)}
	return nil
}
