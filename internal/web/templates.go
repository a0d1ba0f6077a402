package web

import (
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/justestif/emotify/internal/emotion"
	"github.com/justestif/emotify/internal/report"
)

// Templates manages HTML template rendering.
type Templates struct {
	templates map[string]*template.Template
	partials  map[string]*template.Template
	funcs     template.FuncMap
}

// NewTemplates creates a new template manager by loading templates from the given filesystem.
func NewTemplates(templatesFS fs.FS) (*Templates, error) {
	t := &Templates{
		templates: make(map[string]*template.Template),
		partials:  make(map[string]*template.Template),
		funcs:     defaultFuncs(),
	}

	if err := t.load(templatesFS); err != nil {
		return nil, err
	}

	return t, nil
}

// Render renders a page template with the given data.
func (t *Templates) Render(w io.Writer, page string, data any) error {
	tmpl, ok := t.templates[page]
	if !ok {
		return fmt.Errorf("template %q not found", page)
	}
	return tmpl.ExecuteTemplate(w, "base", data)
}

// RenderPartial renders a partial template (without base layout) with the given data.
func (t *Templates) RenderPartial(w io.Writer, partial string, data any) error {
	tmpl, ok := t.partials[partial]
	if !ok {
		return fmt.Errorf("partial %q not found", partial)
	}
	return tmpl.ExecuteTemplate(w, partial, data)
}

// load parses all templates from the filesystem.
func (t *Templates) load(templatesFS fs.FS) error {
	layouts, err := fs.Glob(templatesFS, "layouts/*.html")
	if err != nil {
		return fmt.Errorf("finding layouts: %w", err)
	}

	partials, err := fs.Glob(templatesFS, "partials/*.html")
	if err != nil {
		return fmt.Errorf("finding partials: %w", err)
	}

	pages, err := fs.Glob(templatesFS, "pages/*.html")
	if err != nil {
		return fmt.Errorf("finding pages: %w", err)
	}

	// Common files to include with every page
	commonFiles := append(layouts, partials...)

	for _, page := range pages {
		name := strings.TrimSuffix(filepath.Base(page), ".html")
		files := append([]string{page}, commonFiles...)

		tmpl, err := template.New(name).Funcs(t.funcs).ParseFS(templatesFS, files...)
		if err != nil {
			return fmt.Errorf("parsing template %s: %w", name, err)
		}
		t.templates[name] = tmpl
	}

	// Partials are also parsed alone for HTMX fragments. A partial may use
	// other partials, so each one gets the full set.
	for _, partial := range partials {
		name := strings.TrimSuffix(filepath.Base(partial), ".html")

		tmpl, err := template.New(name).Funcs(t.funcs).ParseFS(templatesFS, partials...)
		if err != nil {
			return fmt.Errorf("parsing partial %s: %w", name, err)
		}
		t.partials[name] = tmpl
	}

	return nil
}

// defaultFuncs returns the default template functions.
func defaultFuncs() template.FuncMap {
	return template.FuncMap{
		// capitalize upper-cases the first letter of each word
		"capitalize": report.Capitalize,

		// percent formats a share as "37.5%"
		"percent": func(f float64) string {
			return fmt.Sprintf("%.1f%%", f)
		},

		// ordinal formats 1 as "1st"
		"ordinal": humanize.Ordinal,

		// comma formats 1500 as "1,500"
		"comma": func(n int) string {
			return humanize.Comma(int64(n))
		},

		// duration rounds to milliseconds for display
		"duration": func(d time.Duration) string {
			return d.Round(time.Millisecond).String()
		},

		// join joins a list with ", "
		"join": func(items []string) string {
			return strings.Join(items, ", ")
		},

		// intensityWidth maps a 0-10 intensity to a CSS percentage width
		"intensityWidth": func(i int) int {
			return i * 10
		},

		// add adds two integers (for 1-based indexing in loops)
		"add": func(a, b int) int {
			return a + b
		},
	}
}

// PageData contains common data passed to all page templates.
type PageData struct {
	Title       string
	CurrentPath string
	Status      APIStatus
}

// APIStatus describes which remote services are configured.
type APIStatus struct {
	SearchProvider string
	SearchReady    bool
	GeminiReady    bool
	ConfigError    string
}

// Ready reports whether analyses can run.
func (s APIStatus) Ready() bool {
	return s.SearchReady && s.GeminiReady && s.ConfigError == ""
}

// FlashMessage represents a temporary notification message.
type FlashMessage struct {
	Type    string // "success", "error", "warning", "info"
	Message string
}

// FormData holds the submitted search fields so the form can be refilled.
type FormData struct {
	Artist string
	Title  string
}

// subject names the submitted song for messages, e.g. "Hello by Adele".
func (f FormData) subject() string {
	title := strings.TrimSpace(f.Title)
	artist := strings.TrimSpace(f.Artist)
	if title == "" || artist == "" {
		return title + artist
	}
	return title + " by " + artist
}

// HomePageData contains data for the home page template.
type HomePageData struct {
	PageData
	Form   FormData
	Result *ResultData
}

// ResultData contains data for the results partial.
type ResultData struct {
	Error *FlashMessage
	Raw   string // unparseable model reply, shown for malformed responses

	Report  *report.Report
	Ranked  []emotion.Share
	Top     []emotion.Share
	Summary string
	Charts  template.JS
}
