package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"finitefield.org/portfolio-web/internal/content"
	"finitefield.org/portfolio-web/internal/portfolio"
)

func (c *cli) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the current portfolio",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			rec, err := c.repo.Load()
			if err != nil {
				return err
			}
			c.printRecord(rec)
			return nil
		},
	}
}

func (c *cli) printRecord(rec portfolio.Record) {
	w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "Name:\t%s\n", rec.Personal.Name)
	fmt.Fprintf(w, "Title:\t%s\n", rec.Personal.Title)
	fmt.Fprintf(w, "Tagline:\t%s\n", rec.Personal.Tagline)
	fmt.Fprintf(w, "Email:\t%s\n", rec.Contact.Email)
	fmt.Fprintf(w, "Location:\t%s\n", rec.Contact.Location)

	fmt.Fprintf(w, "\nExpertise (%d)\n", len(rec.About.Expertise))
	for i, e := range rec.About.Expertise {
		fmt.Fprintf(w, "  %d.\t%s\n", i+1, e)
	}
	fmt.Fprintf(w, "\nSkills (%d)\n", len(rec.Skills))
	for i, s := range rec.Skills {
		fmt.Fprintf(w, "  %d.\t%s %s\t%s\t%d%%\n", i+1, s.Icon, s.Name, s.Category, s.Proficiency)
	}
	fmt.Fprintf(w, "\nProjects (%d)\n", len(rec.Projects))
	for i, p := range rec.Projects {
		fmt.Fprintf(w, "  %d.\t%s (%d)\t%s\n", i+1, p.Title, p.Year, p.VideoURL)
	}
	fmt.Fprintf(w, "\nSocial (%d)\n", len(rec.Contact.Social))
	for i, s := range rec.Contact.Social {
		fmt.Fprintf(w, "  %d.\t%s\t%s\n", i+1, s.Platform, s.URL)
	}
}

func (c *cli) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the data file against the schema",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if _, err := c.repo.Load(); err != nil {
				return err
			}
			fmt.Fprintf(c.out, "%s is valid\n", c.repo.DataFile)
			return nil
		},
	}
}

func (c *cli) setNameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-name NAME",
		Short: "Set the display name",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return c.edit(func(rec *portfolio.Record) (string, error) {
				content.UpdatePersonal(rec, content.PersonalUpdate{Name: &args[0]})
				return fmt.Sprintf("Name set to %q", rec.Personal.Name), nil
			})
		},
	}
}

func (c *cli) setBioCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-bio BIO",
		Short: "Set the about bio",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return c.edit(func(rec *portfolio.Record) (string, error) {
				content.UpdateAbout(rec, content.AboutUpdate{Bio: &args[0]})
				return "Bio updated", nil
			})
		},
	}
}

// changed returns a pointer to the flag value when the flag was given.
func changed(cmd *cobra.Command, name string) *string {
	flags := cmd.Flags()
	if !flags.Changed(name) {
		return nil
	}
	v, err := flags.GetString(name)
	if err != nil {
		return nil
	}
	return &v
}

func changedInt(cmd *cobra.Command, name string) *int {
	flags := cmd.Flags()
	if !flags.Changed(name) {
		return nil
	}
	v, err := flags.GetInt(name)
	if err != nil {
		return nil
	}
	return &v
}

func (c *cli) personalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "personal",
		Short: "Update hero fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.edit(func(rec *portfolio.Record) (string, error) {
				content.UpdatePersonal(rec, content.PersonalUpdate{
					Name:            changed(cmd, "name"),
					Title:           changed(cmd, "title"),
					Tagline:         changed(cmd, "tagline"),
					HeroDescription: changed(cmd, "description"),
				})
				content.UpdateAbout(rec, content.AboutUpdate{
					Bio:         changed(cmd, "bio"),
					Description: changed(cmd, "about"),
				})
				return "Personal information updated", nil
			})
		},
	}
	cmd.Flags().String("name", "", "Display name")
	cmd.Flags().String("title", "", "Job title")
	cmd.Flags().String("tagline", "", "Hero tagline")
	cmd.Flags().String("description", "", "Hero description")
	cmd.Flags().String("bio", "", "About bio")
	cmd.Flags().String("about", "", "About description")
	return cmd
}

func (c *cli) contactCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Update contact fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.edit(func(rec *portfolio.Record) (string, error) {
				content.UpdateContact(rec, content.ContactUpdate{
					Email:        changed(cmd, "email"),
					Location:     changed(cmd, "location"),
					Availability: changed(cmd, "availability"),
				})
				return "Contact information updated", nil
			})
		},
	}
	cmd.Flags().String("email", "", "Contact email")
	cmd.Flags().String("location", "", "Location")
	cmd.Flags().String("availability", "", "Availability")
	return cmd
}

func (c *cli) addSkillCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add-skill NAME CATEGORY PROFICIENCY [ICON]",
		Short: "Append a skill (proficiency is clamped to 0..100)",
		Args:  cobra.RangeArgs(3, 4),
		RunE: func(_ *cobra.Command, args []string) error {
			proficiency, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("proficiency must be a number: %w", err)
			}
			icon := ""
			if len(args) == 4 {
				icon = args[3]
			}
			return c.edit(func(rec *portfolio.Record) (string, error) {
				s, err := content.AddSkill(rec, args[0], args[1], proficiency, icon)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Added skill %s (%d%%)", s.Name, s.Proficiency), nil
			})
		},
	}
}

func positionArg(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("position must be a number: %w", err)
	}
	return n, nil
}

func (c *cli) removeSkillCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove-skill N",
		Short: "Remove the N-th skill",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			n, err := positionArg(args[0])
			if err != nil {
				return err
			}
			return c.edit(func(rec *portfolio.Record) (string, error) {
				s, err := content.RemoveSkill(rec, n)
				if err != nil {
					return "", err
				}
				return "Removed skill " + s.Name, nil
			})
		},
	}
}

func (c *cli) editSkillCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit-skill N",
		Short: "Change fields of the N-th skill",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := positionArg(args[0])
			if err != nil {
				return err
			}
			return c.edit(func(rec *portfolio.Record) (string, error) {
				s, err := content.UpdateSkill(rec, n, content.SkillUpdate{
					Name:        changed(cmd, "name"),
					Category:    changed(cmd, "category"),
					Proficiency: changedInt(cmd, "proficiency"),
					Icon:        changed(cmd, "icon"),
				})
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Updated skill %s (%d%%)", s.Name, s.Proficiency), nil
			})
		},
	}
	cmd.Flags().String("name", "", "Skill name")
	cmd.Flags().String("category", "", "Skill category")
	cmd.Flags().Int("proficiency", 0, "Proficiency, clamped to 0..100")
	cmd.Flags().String("icon", "", "Icon text or markup")
	return cmd
}

func (c *cli) addProjectCmd() *cobra.Command {
	var (
		in   content.ProjectInput
		tags string
	)
	cmd := &cobra.Command{
		Use:   "add-project",
		Short: "Append a project",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			in.Tags = content.ParseTags(tags)
			return c.edit(func(rec *portfolio.Record) (string, error) {
				p, err := content.AddProject(rec, in, c.now())
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Added project %d: %s", p.ID, p.Title), nil
			})
		},
	}
	cmd.Flags().StringVar(&in.Title, "title", "", "Project title (required)")
	cmd.Flags().StringVar(&in.Description, "description", "", "Project description")
	cmd.Flags().StringVar(&in.Thumbnail, "thumbnail", "", "Thumbnail path or URL")
	cmd.Flags().StringVar(&in.VideoURL, "video", "", "Video file or project link")
	cmd.Flags().StringVar(&tags, "tags", "", "Comma separated tags")
	cmd.Flags().IntVar(&in.Year, "year", 0, "Year (default: current year)")
	if err := cmd.MarkFlagRequired("title"); err != nil {
		panic(fmt.Sprintf("failed to mark title flag as required: %v", err))
	}
	return cmd
}

func (c *cli) editProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit-project N",
		Short: "Change fields of the N-th project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := positionArg(args[0])
			if err != nil {
				return err
			}
			u := content.ProjectUpdate{
				Title:       changed(cmd, "title"),
				Description: changed(cmd, "description"),
				Thumbnail:   changed(cmd, "thumbnail"),
				VideoURL:    changed(cmd, "video"),
				Year:        changedInt(cmd, "year"),
			}
			if tags := changed(cmd, "tags"); tags != nil {
				u.Tags = content.ParseTags(*tags)
			}
			return c.edit(func(rec *portfolio.Record) (string, error) {
				p, err := content.UpdateProject(rec, n, u)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Updated project %d: %s", p.ID, p.Title), nil
			})
		},
	}
	cmd.Flags().String("title", "", "Project title")
	cmd.Flags().String("description", "", "Project description")
	cmd.Flags().String("thumbnail", "", "Thumbnail path or URL")
	cmd.Flags().String("video", "", "Video file or project link")
	cmd.Flags().String("tags", "", "Comma separated tags (empty clears them)")
	cmd.Flags().Int("year", 0, "Year")
	return cmd
}

func (c *cli) removeProjectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove-project N",
		Short: "Remove the N-th project",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			n, err := positionArg(args[0])
			if err != nil {
				return err
			}
			return c.edit(func(rec *portfolio.Record) (string, error) {
				p, err := content.RemoveProject(rec, n)
				if err != nil {
					return "", err
				}
				return "Removed project " + p.Title, nil
			})
		},
	}
}

func (c *cli) addExpertiseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add-expertise ITEM",
		Short: "Append an expertise entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return c.edit(func(rec *portfolio.Record) (string, error) {
				if err := content.AddExpertise(rec, args[0]); err != nil {
					return "", err
				}
				return "Added expertise " + args[0], nil
			})
		},
	}
}

func (c *cli) removeExpertiseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove-expertise N",
		Short: "Remove the N-th expertise entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			n, err := positionArg(args[0])
			if err != nil {
				return err
			}
			return c.edit(func(rec *portfolio.Record) (string, error) {
				item, err := content.RemoveExpertise(rec, n)
				if err != nil {
					return "", err
				}
				return "Removed expertise " + item, nil
			})
		},
	}
}

func (c *cli) addSocialCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add-social PLATFORM URL [ICON]",
		Short: "Append a social link",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(_ *cobra.Command, args []string) error {
			icon := ""
			if len(args) == 3 {
				icon = args[2]
			}
			return c.edit(func(rec *portfolio.Record) (string, error) {
				s, err := content.AddSocial(rec, args[0], args[1], icon)
				if err != nil {
					return "", err
				}
				return "Added " + s.Platform + " link", nil
			})
		},
	}
}

func (c *cli) removeSocialCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove-social N",
		Short: "Remove the N-th social link",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			n, err := positionArg(args[0])
			if err != nil {
				return err
			}
			return c.edit(func(rec *portfolio.Record) (string, error) {
				s, err := content.RemoveSocial(rec, n)
				if err != nil {
					return "", err
				}
				return "Removed " + s.Platform + " link", nil
			})
		},
	}
}

func (c *cli) themeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Update theme colors and fonts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.edit(func(rec *portfolio.Record) (string, error) {
				content.UpdateTheme(rec, content.ThemeUpdate{
					PrimaryColor:    changed(cmd, "primary"),
					SecondaryColor:  changed(cmd, "secondary"),
					BackgroundColor: changed(cmd, "background"),
					TextColor:       changed(cmd, "text"),
					FontHeading:     changed(cmd, "font-heading"),
					FontBody:        changed(cmd, "font-body"),
				})
				return "Theme updated", nil
			})
		},
	}
	cmd.Flags().String("primary", "", "Primary color")
	cmd.Flags().String("secondary", "", "Secondary color")
	cmd.Flags().String("background", "", "Background color")
	cmd.Flags().String("text", "", "Text color")
	cmd.Flags().String("font-heading", "", "Heading font family")
	cmd.Flags().String("font-body", "", "Body font family")
	return cmd
}

func (c *cli) logoCmd() *cobra.Command {
	var kind, value string
	cmd := &cobra.Command{
		Use:   "logo",
		Short: "Set the navigation logo",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return c.edit(func(rec *portfolio.Record) (string, error) {
				if err := content.SetLogo(rec, kind, value); err != nil {
					return "", err
				}
				return "Logo updated", nil
			})
		},
	}
	cmd.Flags().StringVar(&kind, "type", "text", "Logo type: text or image")
	cmd.Flags().StringVar(&value, "content", "", "Logo text or image path")
	return cmd
}

func (c *cli) uploadCmd() *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "upload FILE",
		Short: "Copy a logo, thumbnail or video into the assets directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			served, err := c.repo.Upload(content.MediaKind(kind), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(c.out, served)
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", string(content.MediaThumbnail), "Media kind: logo, thumbnail or video")
	return cmd
}

func (c *cli) backupsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backups",
		Short: "List backups, newest first",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			list, err := c.repo.Backups()
			if err != nil {
				return err
			}
			if len(list) == 0 {
				fmt.Fprintln(c.out, "No backups")
				return nil
			}
			w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
			for _, b := range list {
				fmt.Fprintf(w, "%s\t%s\t%s\n", b.ID, b.CreatedAt.Local().Format("2006-01-02 15:04:05"), b.Path)
			}
			return w.Flush()
		},
	}
}

func (c *cli) restoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore ID",
		Short: "Replace the data file with a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			backup, err := c.repo.Restore(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Restored %s\n", args[0])
			if backup != "" {
				fmt.Fprintf(c.out, "Backup: %s\n", backup)
			}
			return nil
		},
	}
}
