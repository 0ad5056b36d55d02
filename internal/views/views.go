package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

// View is a page that renders into the view region of the shell.
type View interface {
	// Name is the template name (e.g., "cv").
	Name() string

	// Title is the page title.
	Title() string

	// Render writes the view fragment.
	Render(w io.Writer, d Data) error
}

// Data is what a view renders from.
type Data struct {
	// Path is the requested location.
	Path string

	// Profile is the CV content.
	Profile *Profile

	// Hrefs maps a route name to its address-bar href.
	Hrefs func(name string) string
}

// Href returns the href for a route name, or "#" if unknown.
func (d Data) Href(name string) string {
	if d.Hrefs == nil {
		return "#"
	}
	return d.Hrefs(name)
}

// NavItem is a navigation link in the shell.
type NavItem struct {
	Name   string
	Label  string
	Href   string
	Active bool
}

// Shell is the full-page wrapper rendered on initial loads.
type Shell struct {
	SiteName     string
	Title        string
	History      string
	Base         string
	Route        string
	WebSocket    string
	ClientScript string
	Nav          []NavItem
	Content      template.HTML
}

type templateView struct {
	name  string
	title string
	tmpl  *template.Template
}

func (v *templateView) Name() string  { return v.name }
func (v *templateView) Title() string { return v.title }

func (v *templateView) Render(w io.Writer, d Data) error {
	if err := v.tmpl.ExecuteTemplate(w, v.name, d); err != nil {
		return fmt.Errorf("render %s: %w", v.name, err)
	}
	return nil
}

// Set holds the parsed views and page shell.
type Set struct {
	Home     View
	CV       View
	NotFound View

	layout *template.Template
}

var funcs = template.FuncMap{
	"join": strings.Join,
}

// NewSet parses the embedded templates.
func NewSet() (*Set, error) {
	tmpl, err := template.New("views").Funcs(funcs).ParseFS(templateFS,
		"templates/home.html", "templates/cv.html", "templates/notfound.html")
	if err != nil {
		return nil, fmt.Errorf("parse views: %w", err)
	}
	layout, err := template.ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	return &Set{
		Home:     &templateView{name: "home", title: "Home", tmpl: tmpl},
		CV:       &templateView{name: "cv", title: "CV", tmpl: tmpl},
		NotFound: &templateView{name: "notfound", title: "Not found", tmpl: tmpl},
		layout:   layout,
	}, nil
}

// Fragment renders v into a string.
func (s *Set) Fragment(v View, d Data) (string, error) {
	var buf bytes.Buffer
	if err := v.Render(&buf, d); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderPage renders v wrapped in the page shell.
func (s *Set) RenderPage(w io.Writer, shell Shell, v View, d Data) error {
	content, err := s.Fragment(v, d)
	if err != nil {
		return err
	}
	// content was produced by html/template and is already escaped.
	shell.Content = template.HTML(content)
	if shell.Title == "" {
		shell.Title = v.Title()
	}
	if err := s.layout.ExecuteTemplate(w, "layout.html", shell); err != nil {
		return fmt.Errorf("render layout: %w", err)
	}
	return nil
}
