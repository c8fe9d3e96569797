package container

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"mime"
	"path"
	"slices"
	"strconv"
	"strings"

	"billed/internal"
	"billed/internal/format"
	"billed/pkg/types"

	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidFileExtension = errors.New("invalid file extension")
	ErrNoFileSelected       = errors.New("no file selected")
	ErrInvalidForm          = errors.New("formulaire invalide")
)

// InvalidFileMessage is shown under the file input when the selection is
// rejected.
const InvalidFileMessage = "Seuls les fichiers jpg, jpeg et png sont acceptés."

const defaultPct = 20

var allowedExtensions = []string{"jpg", "jpeg", "png"}

// File is a file picked in the new bill form.
type File struct {
	Name        string
	ContentType string
	Body        io.Reader
}

type ChangeFileEvent struct {
	Files []File
}

type SubmitEvent struct {
	Form types.NewBillForm
}

type NewBill struct {
	deps Deps

	file    *File
	message string
}

func NewNewBill(deps Deps) *NewBill {
	return &NewBill{deps: deps}
}

// HandleChangeFile keeps the first selected file when its extension is
// accepted. Otherwise the selection is dropped and a message is set.
func (n *NewBill) HandleChangeFile(event ChangeFileEvent) error {
	n.file = nil

	if len(event.Files) == 0 {
		n.message = ""
		return ErrNoFileSelected
	}

	file := event.Files[0]
	file.Name = baseName(file.Name)

	if !ValidFileName(file.Name) {
		n.message = InvalidFileMessage
		n.deps.logger().WithField("file_name", file.Name).Info("rejected attachment extension")
		return fmt.Errorf("%w: %s", ErrInvalidFileExtension, file.Name)
	}

	n.file = &file
	n.message = ""

	return nil
}

// HandleSubmit uploads the retained file, stores a pending bill for the
// current employee and navigates back to the bills list.
func (n *NewBill) HandleSubmit(ctx context.Context, event SubmitEvent) error {
	if n.file == nil {
		return ErrNoFileSelected
	}

	user, err := CurrentUser(n.deps.LocalStorage)
	if err != nil {
		return fmt.Errorf("read current user: %w", err)
	}

	bill, err := billFromForm(event.Form)
	if err != nil {
		return err
	}

	contentType := n.file.ContentType
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = mime.TypeByExtension(path.Ext(n.file.Name))
	}

	fileURL, err := n.deps.Backend.Upload(ctx, internal.STORAGE_KEY_PREFIX+n.file.Name, n.file.Body, contentType)
	if err != nil {
		return fmt.Errorf("upload attachment: %w", err)
	}

	bill.Email = user.Email
	bill.FileURL = fileURL
	bill.FileName = n.file.Name
	bill.Status = types.BillStatusPending

	if _, err := n.deps.Backend.Post(ctx, bill); err != nil {
		return fmt.Errorf("create bill: %w", err)
	}

	n.deps.logger().WithFields(logrus.Fields{
		"bill_id": bill.ID,
		"email":   bill.Email,
	}).Info("bill created")

	n.deps.navigate(internal.ROUTE_BILLS)

	return nil
}

// ValidationMessage is the message to show under the file input, if any.
func (n *NewBill) ValidationMessage() string {
	return n.message
}

// FileName is the name of the retained file, empty when none is retained.
func (n *NewBill) FileName() string {
	if n.file == nil {
		return ""
	}
	return n.file.Name
}

// ValidFileName reports whether name has an accepted image extension.
func ValidFileName(name string) bool {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
	return slices.Contains(allowedExtensions, ext)
}

// baseName strips any directory, browsers may send C:\fakepath\name.jpg.
func baseName(name string) string {
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		return name[i+1:]
	}
	return name
}

func billFromForm(form types.NewBillForm) (*types.Bill, error) {
	bill := &types.Bill{
		Type:       strings.TrimSpace(form.Type),
		Name:       strings.TrimSpace(form.Name),
		Date:       strings.TrimSpace(form.Date),
		Commentary: strings.TrimSpace(form.Commentary),
		Pct:        defaultPct,
	}

	if !slices.Contains(types.BillTypes, bill.Type) {
		return nil, fmt.Errorf("%w: type de dépense inconnu", ErrInvalidForm)
	}

	if _, err := format.ParseDate(bill.Date); err != nil {
		return nil, fmt.Errorf("%w: date invalide", ErrInvalidForm)
	}

	amount, ok := parseMoney(form.Amount)
	if !ok {
		return nil, fmt.Errorf("%w: montant invalide", ErrInvalidForm)
	}
	bill.Amount = amount

	if vat := strings.TrimSpace(form.VAT); vat != "" {
		if bill.VAT, ok = parseMoney(vat); !ok {
			return nil, fmt.Errorf("%w: TVA invalide", ErrInvalidForm)
		}
	}

	if pct := strings.TrimSpace(form.Pct); pct != "" {
		var err error
		bill.Pct, err = strconv.Atoi(pct)
		if err != nil || bill.Pct < 0 || bill.Pct > 100 {
			return nil, fmt.Errorf("%w: pourcentage invalide", ErrInvalidForm)
		}
	}

	return bill, nil
}

// parseMoney accepts finite, non-negative amounts only.
func parseMoney(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false
	}
	return v, true
}
