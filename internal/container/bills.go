package container

import (
	"context"
	"math"
	"slices"
	"strings"

	"billed/internal"
	"billed/internal/format"
	"billed/pkg/types"

	"github.com/sirupsen/logrus"
)

// previewWidthRatio is the share of the modal width given to the attachment.
const previewWidthRatio = 0.5

type Bills struct {
	deps Deps
}

func NewBills(deps Deps) *Bills {
	return &Bills{deps: deps}
}

func (b *Bills) HandleClickNewBill() {
	b.deps.navigate(internal.ROUTE_NEW_BILL)
}

// IconEyeTarget is the eye icon of a bill row that was clicked.
type IconEyeTarget struct {
	BillURL    string
	ModalWidth int
}

// HandleClickIconEye opens the attachment modal for the clicked row. It
// returns nil when the row carries no attachment.
func (b *Bills) HandleClickIconEye(target IconEyeTarget) *types.FilePreview {
	url := strings.TrimSpace(target.BillURL)
	if url == "" {
		return nil
	}

	return &types.FilePreview{
		URL:   url,
		Width: int(math.Floor(float64(target.ModalWidth) * previewWidthRatio)),
	}
}

// GetBills fetches the bills of the current employee, latest first, ready for
// display. A bill with a malformed date is still listed with its raw date.
func (b *Bills) GetBills(ctx context.Context) ([]types.BillRow, error) {
	logger := b.deps.logger()

	bills, err := b.deps.Backend.Get(ctx)
	if err != nil {
		return nil, err
	}

	user, err := CurrentUser(b.deps.LocalStorage)
	if err != nil {
		logger.WithError(err).Debug("listing bills without a current user")
	} else if user.Email != "" {
		bills = slices.DeleteFunc(bills, func(bill types.Bill) bool {
			return bill.Email != user.Email
		})
	}

	sortByDateDesc(bills)

	rows := make([]types.BillRow, 0, len(bills))
	for _, bill := range bills {
		row, err := format.Row(bill)
		if err != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"bill_id": bill.ID,
				"date":    bill.Date,
			}).Warn("malformed bill date, showing raw value")
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// Page maps the bill list, or the failure to fetch it, onto the bills view.
func (b *Bills) Page(ctx context.Context) *types.BillsPageData {
	data := &types.BillsPageData{
		BasePageData: types.BasePageData{Title: "Mes notes de frais"},
	}

	rows, err := b.GetBills(ctx)
	if err != nil {
		b.deps.logger().WithError(err).Error("failed to fetch bills")
		data.Error = err.Error()
		return data
	}

	data.Bills = rows
	return data
}

// sortByDateDesc orders bills latest first. Bills with a malformed date go
// last, keeping their relative order.
func sortByDateDesc(bills []types.Bill) {
	slices.SortStableFunc(bills, func(a, b types.Bill) int {
		ta, errA := format.ParseDate(a.Date)
		tb, errB := format.ParseDate(b.Date)
		switch {
		case errA != nil && errB != nil:
			return 0
		case errA != nil:
			return 1
		case errB != nil:
			return -1
		}
		return tb.Compare(ta)
	})
}
