package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finitefield.org/portfolio-web/internal/config"
	"finitefield.org/portfolio-web/internal/content"
	"finitefield.org/portfolio-web/internal/portfolio"
)

type testEnv struct {
	dir      string
	dataFile string
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	dir := t.TempDir()
	dataFile := filepath.Join(dir, "data", "portfolio-data.json")
	repo := content.NewRepository(dataFile, filepath.Join(dir, "data", "backups"), filepath.Join(dir, "assets"))
	_, err := repo.Save(portfolio.Default())
	require.NoError(t, err)
	return testEnv{dir: dir, dataFile: dataFile}
}

func (e testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out, config.WithoutSystemEnv(), config.WithEnvFile(""))
	cmd.SetArgs(append(args, "--data", e.dataFile, "--media", filepath.Join(e.dir, "assets")))
	err := cmd.Execute()
	return out.String(), err
}

func (e testEnv) load(t *testing.T) portfolio.Record {
	t.Helper()
	data, err := os.ReadFile(e.dataFile)
	require.NoError(t, err)
	rec, err := portfolio.Decode(data)
	require.NoError(t, err)
	return rec
}

func TestSetNameWritesBackup(t *testing.T) {
	env := newTestEnv(t)
	out, err := env.run(t, "set-name", "Jane Doe")
	require.NoError(t, err)
	assert.Contains(t, out, `Name set to "Jane Doe"`)
	assert.Contains(t, out, "Backup: ")
	assert.Equal(t, "Jane Doe", env.load(t).Personal.Name)

	out, err = env.run(t, "backups")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(env.dir, "data", "backups"))
}

func TestPersonalOnlyTouchesGivenFlags(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "personal", "--title", "Animator", "--bio", "Makes things move")
	require.NoError(t, err)

	rec := env.load(t)
	assert.Equal(t, "Animator", rec.Personal.Title)
	assert.Equal(t, "Makes things move", rec.About.Bio)
	assert.Equal(t, portfolio.Default().Personal.Name, rec.Personal.Name)
}

func TestSkillCommands(t *testing.T) {
	env := newTestEnv(t)
	out, err := env.run(t, "add-skill", "Cinema 4D", "3D", "120")
	require.NoError(t, err)
	assert.Contains(t, out, "(100%)")

	rec := env.load(t)
	require.Len(t, rec.Skills, 1)
	assert.Equal(t, content.DefaultSkillIcon, rec.Skills[0].Icon)

	_, err = env.run(t, "add-skill", "Cinema 4D", "3D", "high")
	assert.Error(t, err)

	_, err = env.run(t, "remove-skill", "2")
	assert.ErrorIs(t, err, content.ErrIndex)

	_, err = env.run(t, "remove-skill", "1")
	require.NoError(t, err)
	assert.Empty(t, env.load(t).Skills)
}

func TestAddProjectDefaultsYear(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "add-project", "--title", "Reel", "--video", "assets/videos/reel.mp4", "--tags", "AE, 3D")
	require.NoError(t, err)

	rec := env.load(t)
	require.Len(t, rec.Projects, 1)
	p := rec.Projects[0]
	assert.Equal(t, 1, p.ID)
	assert.Equal(t, time.Now().Year(), p.Year)
	assert.Equal(t, []string{"AE", "3D"}, p.Tags)

	_, err = env.run(t, "add-project")
	assert.Error(t, err)
}

func TestEditSkillOnlyTouchesGivenFlags(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "add-skill", "Cinema 4D", "3D", "70", "🎬")
	require.NoError(t, err)

	out, err := env.run(t, "edit-skill", "1", "--proficiency", "150", "--category", "Motion")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated skill Cinema 4D (100%)")

	s := env.load(t).Skills[0]
	assert.Equal(t, "Cinema 4D", s.Name)
	assert.Equal(t, "Motion", s.Category)
	assert.Equal(t, 100, s.Proficiency)
	assert.Equal(t, "🎬", s.Icon)

	_, err = env.run(t, "edit-skill", "1", "--proficiency", "0", "--name", "Blender", "--icon", "")
	require.NoError(t, err)
	s = env.load(t).Skills[0]
	assert.Equal(t, "Blender", s.Name)
	assert.Equal(t, 0, s.Proficiency)
	assert.Empty(t, s.Icon)

	_, err = env.run(t, "edit-skill", "2", "--name", "Nuke")
	assert.ErrorIs(t, err, content.ErrIndex)
	_, err = env.run(t, "edit-skill", "1", "--proficiency", "high")
	assert.Error(t, err)
}

func TestEditProjectKeepsID(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "add-project", "--title", "Reel", "--year", "2023", "--tags", "AE")
	require.NoError(t, err)
	_, err = env.run(t, "add-project", "--title", "Promo", "--year", "2024")
	require.NoError(t, err)

	out, err := env.run(t, "edit-project", "2",
		"--title", "Launch Promo", "--video", "assets/videos/promo.webm", "--tags", "3D, Sound", "--year", "2025")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated project 2: Launch Promo")

	rec := env.load(t)
	p := rec.Projects[1]
	assert.Equal(t, 2, p.ID)
	assert.Equal(t, "Launch Promo", p.Title)
	assert.Equal(t, "assets/videos/promo.webm", p.VideoURL)
	assert.Equal(t, []string{"3D", "Sound"}, p.Tags)
	assert.Equal(t, 2025, p.Year)
	assert.Equal(t, "Reel", rec.Projects[0].Title)

	_, err = env.run(t, "edit-project", "1", "--description", "Showreel")
	require.NoError(t, err)
	first := env.load(t).Projects[0]
	assert.Equal(t, "Showreel", first.Description)
	assert.Equal(t, []string{"AE"}, first.Tags, "tags stay unless --tags is given")
	assert.Equal(t, 2023, first.Year)

	_, err = env.run(t, "edit-project", "1", "--tags", "")
	require.NoError(t, err)
	assert.Empty(t, env.load(t).Projects[0].Tags)

	_, err = env.run(t, "edit-project", "3", "--title", "Missing")
	assert.ErrorIs(t, err, content.ErrIndex)
}

func TestThemeAndLogo(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "theme", "--primary", "#ff0066")
	require.NoError(t, err)
	_, err = env.run(t, "logo", "--type", "image", "--content", "assets/logo.png")
	require.NoError(t, err)

	rec := env.load(t)
	require.NotNil(t, rec.Theme())
	assert.Equal(t, "#ff0066", rec.Theme().PrimaryColor)
	assert.Empty(t, rec.Theme().SecondaryColor)
	assert.Equal(t, "assets/logo.png", rec.Logo().Content)
}

func TestUploadPrintsServedPath(t *testing.T) {
	env := newTestEnv(t)
	src := filepath.Join(t.TempDir(), "shot.webp")
	require.NoError(t, os.WriteFile(src, []byte("img"), 0o644))

	out, err := env.run(t, "upload", "--kind", "thumbnail", src)
	require.NoError(t, err)
	assert.Equal(t, "assets/projects/shot.webp\n", out)
	assert.FileExists(t, filepath.Join(env.dir, "assets", "projects", "shot.webp"))
}

func TestShowAndValidate(t *testing.T) {
	env := newTestEnv(t)
	out, err := env.run(t, "show")
	require.NoError(t, err)
	assert.Contains(t, out, portfolio.Default().Personal.Name)

	out, err = env.run(t, "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")

	require.NoError(t, os.WriteFile(env.dataFile, []byte(`{"personal":{}}`), 0o644))
	_, err = env.run(t, "validate")
	assert.Error(t, err)
}
