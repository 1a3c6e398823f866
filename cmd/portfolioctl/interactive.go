package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"finitefield.org/portfolio-web/internal/content"
	"finitefield.org/portfolio-web/internal/portfolio"
)

type menuAction struct {
	label string
	run   func() error
}

func (c *cli) interactiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Edit the portfolio from a menu",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return c.runMenu()
		},
	}
}

func (c *cli) runMenu() error {
	actions := []menuAction{
		{"Show portfolio", c.menuShow},
		{"Edit personal information", c.menuPersonal},
		{"Edit contact information", c.menuContact},
		{"Add skill", c.menuAddSkill},
		{"Edit skill", c.menuEditSkill},
		{"Remove skill", c.menuRemove("skill", skillNames, func(rec *portfolio.Record, n int) (string, error) {
			s, err := content.RemoveSkill(rec, n)
			return s.Name, err
		})},
		{"Add project", c.menuAddProject},
		{"Edit project", c.menuEditProject},
		{"Remove project", c.menuRemove("project", projectTitles, func(rec *portfolio.Record, n int) (string, error) {
			p, err := content.RemoveProject(rec, n)
			return p.Title, err
		})},
		{"Add expertise", c.menuAddExpertise},
		{"Remove expertise", c.menuRemove("expertise", func(rec portfolio.Record) []string {
			return rec.About.Expertise
		}, content.RemoveExpertise)},
		{"Add social link", c.menuAddSocial},
		{"Remove social link", c.menuRemove("social link", socialPlatforms, func(rec *portfolio.Record, n int) (string, error) {
			l, err := content.RemoveSocial(rec, n)
			return l.Platform, err
		})},
		{"Edit theme", c.menuTheme},
		{"Upload media", c.menuUpload},
		{"Exit", nil},
	}
	labels := make([]string, len(actions))
	for i, a := range actions {
		labels[i] = a.label
	}

	fmt.Fprintln(c.out, "Portfolio content manager")
	for {
		sel := promptui.Select{Label: "What would you like to do", Items: labels, Size: len(labels)}
		idx, _, err := sel.Run()
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("menu: %w", err)
		}
		action := actions[idx]
		if action.run == nil {
			return nil
		}
		if err := action.run(); err != nil {
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrAbort) {
				continue
			}
			fmt.Fprintf(c.out, "Error: %v\n", err)
		}
	}
}

// ask prompts for one value, offering current as the default.
func ask(label, current string) (string, error) {
	p := promptui.Prompt{Label: label, Default: current, AllowEdit: current != ""}
	return p.Run()
}

func askInt(label string, current int) (int, error) {
	p := promptui.Prompt{
		Label:   label,
		Default: strconv.Itoa(current),
		Validate: func(s string) error {
			_, err := strconv.Atoi(strings.TrimSpace(s))
			return err
		},
	}
	raw, err := p.Run()
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(raw))
}

func (c *cli) menuShow() error {
	rec, err := c.repo.Load()
	if err != nil {
		return err
	}
	c.printRecord(rec)
	return nil
}

func (c *cli) menuPersonal() error {
	return c.edit(func(rec *portfolio.Record) (string, error) {
		fields := []struct {
			label string
			dst   *string
		}{
			{"Name", &rec.Personal.Name},
			{"Title", &rec.Personal.Title},
			{"Tagline", &rec.Personal.Tagline},
			{"Hero description", &rec.Personal.HeroDescription},
			{"Bio", &rec.About.Bio},
			{"About description", &rec.About.Description},
		}
		for _, f := range fields {
			v, err := ask(f.label, *f.dst)
			if err != nil {
				return "", err
			}
			*f.dst = strings.TrimSpace(v)
		}
		return "Personal information updated", nil
	})
}

func (c *cli) menuContact() error {
	return c.edit(func(rec *portfolio.Record) (string, error) {
		email, err := ask("Email", rec.Contact.Email)
		if err != nil {
			return "", err
		}
		location, err := ask("Location", rec.Contact.Location)
		if err != nil {
			return "", err
		}
		availability, err := ask("Availability", rec.Contact.Availability)
		if err != nil {
			return "", err
		}
		content.UpdateContact(rec, content.ContactUpdate{Email: &email, Location: &location, Availability: &availability})
		return "Contact information updated", nil
	})
}

func (c *cli) menuAddSkill() error {
	return c.edit(func(rec *portfolio.Record) (string, error) {
		name, err := ask("Skill name", "")
		if err != nil {
			return "", err
		}
		category, err := ask("Category", "")
		if err != nil {
			return "", err
		}
		proficiency, err := askInt("Proficiency (0-100)", 50)
		if err != nil {
			return "", err
		}
		icon, err := ask("Icon", content.DefaultSkillIcon)
		if err != nil {
			return "", err
		}
		s, err := content.AddSkill(rec, name, category, proficiency, icon)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Added skill %s (%d%%)", s.Name, s.Proficiency), nil
	})
}

// pick lets the user choose one of items and returns its 1-based position.
func pick(label, what string, items []string) (int, error) {
	if len(items) == 0 {
		return 0, fmt.Errorf("there is no %s yet", what)
	}
	sel := promptui.Select{Label: label, Items: items}
	idx, _, err := sel.Run()
	if err != nil {
		return 0, err
	}
	return idx + 1, nil
}

func (c *cli) menuEditSkill() error {
	return c.edit(func(rec *portfolio.Record) (string, error) {
		n, err := pick("Edit which skill", "skill", skillNames(*rec))
		if err != nil {
			return "", err
		}
		cur := rec.Skills[n-1]
		var u content.SkillUpdate
		name, err := ask("Skill name", cur.Name)
		if err != nil {
			return "", err
		}
		category, err := ask("Category", cur.Category)
		if err != nil {
			return "", err
		}
		proficiency, err := askInt("Proficiency (0-100)", cur.Proficiency)
		if err != nil {
			return "", err
		}
		icon, err := ask("Icon", cur.Icon)
		if err != nil {
			return "", err
		}
		u.Name, u.Category, u.Proficiency, u.Icon = &name, &category, &proficiency, &icon
		s, err := content.UpdateSkill(rec, n, u)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Updated skill %s (%d%%)", s.Name, s.Proficiency), nil
	})
}

func (c *cli) menuEditProject() error {
	return c.edit(func(rec *portfolio.Record) (string, error) {
		n, err := pick("Edit which project", "project", projectTitles(*rec))
		if err != nil {
			return "", err
		}
		cur := rec.Projects[n-1]
		fields := []struct {
			label   string
			current string
			dst     *string
		}{
			{"Title", cur.Title, &cur.Title},
			{"Description", cur.Description, &cur.Description},
			{"Thumbnail path", cur.Thumbnail, &cur.Thumbnail},
			{"Video file or link", cur.VideoURL, &cur.VideoURL},
		}
		for _, f := range fields {
			v, err := ask(f.label, f.current)
			if err != nil {
				return "", err
			}
			*f.dst = strings.TrimSpace(v)
		}
		tags, err := ask("Tags (comma separated)", strings.Join(cur.Tags, ", "))
		if err != nil {
			return "", err
		}
		year, err := askInt("Year", cur.Year)
		if err != nil {
			return "", err
		}
		p, err := content.UpdateProject(rec, n, content.ProjectUpdate{
			Title:       &cur.Title,
			Description: &cur.Description,
			Thumbnail:   &cur.Thumbnail,
			VideoURL:    &cur.VideoURL,
			Tags:        content.ParseTags(tags),
			Year:        &year,
		})
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Updated project %d: %s", p.ID, p.Title), nil
	})
}

func (c *cli) menuAddProject() error {
	return c.edit(func(rec *portfolio.Record) (string, error) {
		var in content.ProjectInput
		var err error
		if in.Title, err = ask("Title", ""); err != nil {
			return "", err
		}
		if in.Description, err = ask("Description", ""); err != nil {
			return "", err
		}
		if in.Thumbnail, err = ask("Thumbnail path", ""); err != nil {
			return "", err
		}
		if in.VideoURL, err = ask("Video file or link", ""); err != nil {
			return "", err
		}
		tags, err := ask("Tags (comma separated)", "")
		if err != nil {
			return "", err
		}
		in.Tags = content.ParseTags(tags)
		if in.Year, err = askInt("Year", c.now().Year()); err != nil {
			return "", err
		}
		p, err := content.AddProject(rec, in, c.now())
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Added project %d: %s", p.ID, p.Title), nil
	})
}

func (c *cli) menuAddExpertise() error {
	return c.edit(func(rec *portfolio.Record) (string, error) {
		item, err := ask("Expertise", "")
		if err != nil {
			return "", err
		}
		if err := content.AddExpertise(rec, item); err != nil {
			return "", err
		}
		return "Added expertise " + strings.TrimSpace(item), nil
	})
}

func (c *cli) menuAddSocial() error {
	return c.edit(func(rec *portfolio.Record) (string, error) {
		platform, err := ask("Platform", "")
		if err != nil {
			return "", err
		}
		url, err := ask("URL", "")
		if err != nil {
			return "", err
		}
		icon, err := ask("Icon markup (optional)", "")
		if err != nil {
			return "", err
		}
		s, err := content.AddSocial(rec, platform, url, icon)
		if err != nil {
			return "", err
		}
		return "Added " + s.Platform + " link", nil
	})
}

func (c *cli) menuTheme() error {
	return c.edit(func(rec *portfolio.Record) (string, error) {
		current := portfolio.Theme{}
		if t := rec.Theme(); t != nil {
			current = *t
		}
		var u content.ThemeUpdate
		fields := []struct {
			label   string
			current string
			dst     **string
		}{
			{"Primary color", current.PrimaryColor, &u.PrimaryColor},
			{"Secondary color", current.SecondaryColor, &u.SecondaryColor},
			{"Background color", current.BackgroundColor, &u.BackgroundColor},
			{"Text color", current.TextColor, &u.TextColor},
			{"Heading font", current.FontHeading, &u.FontHeading},
			{"Body font", current.FontBody, &u.FontBody},
		}
		for _, f := range fields {
			v, err := ask(f.label, f.current)
			if err != nil {
				return "", err
			}
			if v != f.current {
				*f.dst = &v
			}
		}
		content.UpdateTheme(rec, u)
		return "Theme updated", nil
	})
}

func (c *cli) menuUpload() error {
	sel := promptui.Select{
		Label: "Media kind",
		Items: []string{string(content.MediaLogo), string(content.MediaThumbnail), string(content.MediaVideo)},
	}
	_, kind, err := sel.Run()
	if err != nil {
		return err
	}
	src, err := ask("File path", "")
	if err != nil {
		return err
	}
	served, err := c.repo.Upload(content.MediaKind(kind), strings.TrimSpace(src))
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Uploaded to %s\n", served)
	return nil
}

func skillNames(rec portfolio.Record) []string {
	out := make([]string, len(rec.Skills))
	for i, s := range rec.Skills {
		out[i] = s.Name
	}
	return out
}

func projectTitles(rec portfolio.Record) []string {
	out := make([]string, len(rec.Projects))
	for i, p := range rec.Projects {
		out[i] = fmt.Sprintf("%s (%d)", p.Title, p.Year)
	}
	return out
}

func socialPlatforms(rec portfolio.Record) []string {
	out := make([]string, len(rec.Contact.Social))
	for i, s := range rec.Contact.Social {
		out[i] = s.Platform
	}
	return out
}

// menuRemove offers the current entries of a list and removes the chosen one.
func (c *cli) menuRemove(what string, names func(portfolio.Record) []string, remove func(*portfolio.Record, int) (string, error)) func() error {
	return func() error {
		return c.edit(func(rec *portfolio.Record) (string, error) {
			items := names(*rec)
			if len(items) == 0 {
				return "", fmt.Errorf("there is no %s to remove", what)
			}
			sel := promptui.Select{Label: "Remove which " + what, Items: items}
			idx, _, err := sel.Run()
			if err != nil {
				return "", err
			}
			removed, err := remove(rec, idx+1)
			if err != nil {
				return "", err
			}
			return "Removed " + what + " " + removed, nil
		})
	}
}
