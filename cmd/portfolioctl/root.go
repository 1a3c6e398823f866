package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"finitefield.org/portfolio-web/internal/config"
	"finitefield.org/portfolio-web/internal/content"
	"finitefield.org/portfolio-web/internal/portfolio"
)

type cli struct {
	out  io.Writer
	now  func() time.Time
	repo *content.Repository

	dataFile  string
	backupDir string
	mediaDir  string
	envFile   string
	cfgOpts   []config.Option
}

func newRootCmd(out io.Writer, opts ...config.Option) *cobra.Command {
	c := &cli{out: out, now: time.Now, cfgOpts: opts}
	root := &cobra.Command{
		Use:           "portfolioctl",
		Short:         "Edit the portfolio data file",
		Long:          "portfolioctl edits portfolio-data.json in place, keeping a backup of every previous version, and copies media into the assets directory.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd)
		},
	}
	flags := root.PersistentFlags()
	flags.StringVar(&c.dataFile, "data", content.DefaultDataFile, "Path to portfolio-data.json")
	flags.StringVar(&c.backupDir, "backups", content.DefaultBackupDir, "Directory for backups (default: backups next to the data file)")
	flags.StringVar(&c.mediaDir, "media", content.DefaultMediaDir, "Directory served under /assets")
	flags.StringVar(&c.envFile, "env-file", ".env", "Optional .env file with PORTFOLIO_* settings")

	root.AddCommand(
		c.showCmd(),
		c.validateCmd(),
		c.setNameCmd(),
		c.setBioCmd(),
		c.personalCmd(),
		c.contactCmd(),
		c.addSkillCmd(),
		c.editSkillCmd(),
		c.removeSkillCmd(),
		c.addProjectCmd(),
		c.editProjectCmd(),
		c.removeProjectCmd(),
		c.addExpertiseCmd(),
		c.removeExpertiseCmd(),
		c.addSocialCmd(),
		c.removeSocialCmd(),
		c.themeCmd(),
		c.logoCmd(),
		c.uploadCmd(),
		c.backupsCmd(),
		c.restoreCmd(),
		c.interactiveCmd(),
	)
	return root
}

// setup fills flags left at their defaults from the site configuration, so
// the CLI edits the same files the server reads.
func (c *cli) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(append([]config.Option{config.WithEnvFile(c.envFile)}, c.cfgOpts...)...)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if !flags.Changed("data") && isLocalSource(cfg.Data.Source) {
		c.dataFile = strings.TrimPrefix(cfg.Data.Source, "file://")
	}
	if !flags.Changed("backups") {
		c.backupDir = filepath.Join(filepath.Dir(c.dataFile), "backups")
	}
	if !flags.Changed("media") && cfg.Site.MediaDir != "" {
		c.mediaDir = cfg.Site.MediaDir
	}
	c.repo = content.NewRepository(c.dataFile, c.backupDir, c.mediaDir)
	return nil
}

func isLocalSource(src string) bool {
	src = strings.TrimSpace(src)
	if src == "" {
		return false
	}
	for _, scheme := range []string{"http://", "https://", "gs://"} {
		if strings.HasPrefix(src, scheme) {
			return false
		}
	}
	return true
}

// edit loads the record, applies fn and saves. fn returns the message printed
// on success.
func (c *cli) edit(fn func(rec *portfolio.Record) (string, error)) error {
	rec, err := c.repo.Load()
	if err != nil {
		return err
	}
	msg, err := fn(&rec)
	if err != nil {
		return err
	}
	backup, err := c.repo.Save(rec)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, msg)
	if backup != "" {
		fmt.Fprintf(c.out, "Backup: %s\n", backup)
	}
	return nil
}
