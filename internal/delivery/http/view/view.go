// Package view renders the HTML pages of the site.
package view

import (
	"embed"
	"html/template"
	"io"
	"time"

	deliverycontext "secretwall/internal/delivery/context"
	"secretwall/internal/errors"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Page names accepted by Render.
const (
	PageHome     = "home"
	PageRegister = "register"
	PageLogin    = "login"
	PageSecrets  = "secrets"
	PageSubmit   = "submit"
	PageError    = "error"
)

var pageNames = []string{PageHome, PageRegister, PageLogin, PageSecrets, PageSubmit, PageError}

var functions = template.FuncMap{
	"year": func() int { return time.Now().Year() },
}

// Page is the data every template receives.
type Page struct {
	Title         string
	Path          string
	Authenticated bool
	Username      string
	FormError     string
	FormData      map[string]string
	Secrets       []string
	Error         *ErrorView
}

// ErrorView describes a failed request.
type ErrorView struct {
	Status  int
	Message string
}

// Renderer implements echo.Renderer. Each page is its own template set of base.html plus the page file.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.New(name).Funcs(functions).ParseFS(templatesFS, "templates/base.html", "templates/"+name+".html")
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse %s template", name)
		}
		pages[name] = tmpl
	}

	return &Renderer{pages: pages}, nil
}

// Render executes the named page. data must be a *Page or nil; session state is filled in from c.
func (r *Renderer) Render(w io.Writer, name string, data any, c echo.Context) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return errors.Errorf("unknown page %q", name)
	}

	page, ok := data.(*Page)
	if !ok || page == nil {
		page = &Page{}
	}
	if c != nil {
		page.Path = c.Request().URL.Path
		if snapshot := deliverycontext.GetSession(c); snapshot != nil {
			page.Authenticated = true
			page.Username = snapshot.Username
		}
	}

	if err := tmpl.ExecuteTemplate(w, "base", page); err != nil {
		return errors.Wrapf(err, "failed to render %s", name)
	}

	return nil
}
