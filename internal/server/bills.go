package server

import (
	"context"
	"io"
	"net/http"

	"billed/internal/container"
)

func (s *Service) handleGetBills(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), backendTimeout)
	defer cancel()

	bills := container.NewBills(s.deps(w, r))
	data := bills.Page(ctx)

	if id := r.URL.Query().Get("preview"); id != "" && data.Error == "" {
		for _, row := range data.Bills {
			if row.ID != id {
				continue
			}
			data.Preview = bills.HandleClickIconEye(container.IconEyeTarget{
				BillURL:    row.FileURL,
				ModalWidth: modalWidth,
			})
			break
		}
	}

	status := http.StatusOK
	if data.Error != "" {
		status = http.StatusInternalServerError
	}

	s.renderPage(w, r, status, data, func(w io.Writer) error {
		return s.views.BillsUI(w, data)
	})
}

// handlePostBills is the new bill button of the bills page.
func (s *Service) handlePostBills(w http.ResponseWriter, r *http.Request) {
	container.NewBills(s.deps(w, r)).HandleClickNewBill()
}
