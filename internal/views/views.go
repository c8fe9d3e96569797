// Package views renders the employee pages. Every view is a pure function of
// the page data it is given.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strings"

	"billed/internal"
	"billed/pkg/types"
)

//go:embed templates
var templateFS embed.FS

var routes = map[string]string{
	"login":   internal.ROUTE_LOGIN,
	"logout":  internal.ROUTE_LOGOUT,
	"bills":   internal.ROUTE_BILLS,
	"newBill": internal.ROUTE_NEW_BILL,
}

type Renderer struct {
	templates *template.Template
}

func Load() (*Renderer, error) {
	funcMap := template.FuncMap{
		"route": func(name string) (string, error) {
			path, ok := routes[name]
			if !ok {
				return "", fmt.Errorf("unknown route %q", name)
			}
			return path, nil
		},
		"billTypes": func() []string {
			return types.BillTypes
		},
	}

	t := template.New("").Funcs(funcMap)
	err := fs.WalkDir(templateFS, "templates", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".html") {
			return nil
		}

		data, err := fs.ReadFile(templateFS, path)
		if err != nil {
			return fmt.Errorf("read template %s: %w", path, err)
		}

		if _, err := t.Parse(string(data)); err != nil {
			return fmt.Errorf("parse template %s: %w", path, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &Renderer{templates: t}, nil
}

// BillsUI renders the loading page, the error page or the bills list, in that
// order of precedence. Rows are rendered in the order given.
func (r *Renderer) BillsUI(w io.Writer, data *types.BillsPageData) error {
	if data == nil {
		data = &types.BillsPageData{}
	}

	switch {
	case data.Loading:
		return r.templates.ExecuteTemplate(w, "page.loading", data)
	case data.Error != "":
		return r.templates.ExecuteTemplate(w, "page.error", data)
	default:
		return r.templates.ExecuteTemplate(w, "page.bills", data)
	}
}

func (r *Renderer) NewBillUI(w io.Writer, data *types.NewBillPageData) error {
	if data == nil {
		data = &types.NewBillPageData{}
	}
	return r.templates.ExecuteTemplate(w, "page.newbill", data)
}

func (r *Renderer) LoginUI(w io.Writer, data *types.LoginPageData) error {
	if data == nil {
		data = &types.LoginPageData{}
	}
	return r.templates.ExecuteTemplate(w, "page.login", data)
}
