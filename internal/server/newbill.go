package server

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"billed/internal/container"
	"billed/pkg/types"
)

const (
	newBillTitle = "Envoyer une note de frais"

	missingFileMessage = "Veuillez sélectionner un justificatif."
)

func (s *Service) handleGetNewBill(w http.ResponseWriter, r *http.Request) {
	data := &types.NewBillPageData{BasePageData: types.BasePageData{Title: newBillTitle}}
	s.renderNewBill(w, r, http.StatusOK, data)
}

func (s *Service) handlePostNewBill(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxUploadMB<<20)
	if err := r.ParseMultipartForm(s.config.MaxUploadMB << 20); err != nil {
		s.logger.WithError(err).Info("failed to parse new bill form")
		http.Error(w, "invalid form payload", http.StatusBadRequest)
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	data := &types.NewBillPageData{BasePageData: types.BasePageData{Title: newBillTitle}}
	if err := decoder.Decode(&data.Form, url.Values(r.MultipartForm.Value)); err != nil {
		s.logger.WithError(err).Info("failed to decode new bill form")
		http.Error(w, "invalid form payload", http.StatusBadRequest)
		return
	}

	newBill := container.NewNewBill(s.deps(w, r))

	files, closeFiles, err := openFiles(r.MultipartForm.File["file"])
	defer closeFiles()
	if err != nil {
		s.logger.WithError(err).Error("failed to open uploaded file")
		s.internalServerError(w)
		return
	}

	if err := newBill.HandleChangeFile(container.ChangeFileEvent{Files: files}); err != nil {
		data.FileError = newBill.ValidationMessage()
		if errors.Is(err, container.ErrNoFileSelected) {
			data.FileError = missingFileMessage
		}
		s.renderNewBill(w, r, http.StatusUnprocessableEntity, data)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), backendTimeout)
	defer cancel()

	err = newBill.HandleSubmit(ctx, container.SubmitEvent{Form: data.Form})
	switch {
	case err == nil:
		return
	case errors.Is(err, container.ErrInvalidForm):
		data.Error = err.Error()
		s.renderNewBill(w, r, http.StatusUnprocessableEntity, data)
	case errors.Is(err, container.ErrNoUser):
		s.redirectToLogin(w, r)
	default:
		s.logger.WithError(err).Error("failed to submit new bill")
		page := &types.BillsPageData{
			BasePageData: types.BasePageData{Title: "Mes notes de frais"},
			Error:        err.Error(),
		}
		s.renderPage(w, r, http.StatusInternalServerError, page, func(w io.Writer) error {
			return s.views.BillsUI(w, page)
		})
	}
}

func (s *Service) renderNewBill(w http.ResponseWriter, r *http.Request, status int, data *types.NewBillPageData) {
	s.renderPage(w, r, status, data, func(w io.Writer) error {
		return s.views.NewBillUI(w, data)
	})
}

// openFiles opens the uploaded parts. The returned func closes whatever was
// opened, even on error.
func openFiles(headers []*multipart.FileHeader) ([]container.File, func(), error) {
	var (
		files   = make([]container.File, 0, len(headers))
		opened  = make([]multipart.File, 0, len(headers))
		closeFn = func() {
			for _, f := range opened {
				_ = f.Close()
			}
		}
	)

	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			return nil, closeFn, err
		}
		opened = append(opened, f)

		files = append(files, container.File{
			Name:        header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Body:        f,
		})
	}

	return files, closeFn, nil
}
