package server

import (
	"net/http"

	"billed/internal"
)

func (s *Service) redirectToLogin(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, internal.ROUTE_LOGIN, http.StatusSeeOther)
}
