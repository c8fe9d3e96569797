package server

import (
	"bytes"
	"io"
	"net/http"

	"billed/pkg/types"
)

// renderPage renders into a buffer first so a template failure still ends
// as a clean 500.
func (s *Service) renderPage(w http.ResponseWriter, r *http.Request, status int, data any, render func(w io.Writer) error) {
	userEmail, _ := r.Context().Value(contextKeyEmail).(string)

	if setter, ok := data.(types.NavbarDataSetter); ok {
		setter.SetNavbarData(types.NavbarData{
			IsAuthenticated: userEmail != "",
			UserEmail:       userEmail,
		})
	}

	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		s.logger.WithError(err).WithField("path", r.URL.Path).Error("failed to render page")
		s.internalServerError(w)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *Service) internalServerError(w http.ResponseWriter) {
	http.Error(w, "internal server error", http.StatusInternalServerError)
}
