package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
	"strings"
)

//go:embed templates
var embedded embed.FS

// Page templates executed inside the base layout.
const (
	TemplateHome     = "home"
	TemplateDocument = "document"
)

var pageNames = []string{TemplateHome, TemplateDocument}

// Renderer executes the site templates. Templates come from the embedded set
// unless a directory is configured; in dev mode they are reparsed from that
// directory on every render.
type Renderer struct {
	fsys  fs.FS
	dev   bool
	cache map[string]*template.Template
}

// NewRenderer parses the templates. dir may be empty to use the embedded set.
func NewRenderer(dir string, dev bool) (*Renderer, error) {
	var fsys fs.FS
	if strings.TrimSpace(dir) != "" {
		fsys = os.DirFS(dir)
	} else {
		sub, err := fs.Sub(embedded, "templates")
		if err != nil {
			return nil, err
		}
		fsys = sub
		dev = false
	}
	r := &Renderer{fsys: fsys, dev: dev}
	set, err := r.parseAll()
	if err != nil {
		return nil, err
	}
	r.cache = set
	return r, nil
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"join": strings.Join,
	}
}

func (r *Renderer) parseAll() (map[string]*template.Template, error) {
	set := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.New(name).Funcs(funcMap()).ParseFS(r.fsys,
			"layouts/*.tmpl",
			"partials/*.tmpl",
			"pages/"+name+".tmpl",
		)
		if err != nil {
			return nil, fmt.Errorf("render: parse %s: %w", name, err)
		}
		set[name] = t
	}
	return set, nil
}

// Render executes the base layout with the content of the named page.
func (r *Renderer) Render(w io.Writer, name string, data any) error {
	set := r.cache
	if r.dev {
		fresh, err := r.parseAll()
		if err != nil {
			return err
		}
		set = fresh
	}
	t, ok := set[name]
	if !ok {
		return fmt.Errorf("render: unknown page %q", name)
	}
	if err := t.ExecuteTemplate(w, "base", data); err != nil {
		return fmt.Errorf("render: execute %s: %w", name, err)
	}
	return nil
}
