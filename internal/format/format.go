// Package format turns stored bills into the strings shown to employees.
package format

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"billed/pkg/types"
)

// DateLayout is the layout of dates as submitted by the new bill form.
const DateLayout = "2006-01-02"

var monthLabels = [...]string{
	"Jan", "Fév", "Mar", "Avr", "Mai", "Jui",
	"Jui", "Aoû", "Sep", "Oct", "Nov", "Déc",
}

// ParseDate parses a bill date.
func ParseDate(raw string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", raw, err)
	}
	return t, nil
}

// Date renders a bill date as "4 Avr. 04".
func Date(raw string) (string, error) {
	t, err := ParseDate(raw)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%d %s. %02d", t.Day(), monthLabels[t.Month()-1], t.Year()%100), nil
}

func Status(status types.BillStatus) string {
	switch status {
	case types.BillStatusPending:
		return "En attente"
	case types.BillStatusAccepted:
		return "Accepté"
	case types.BillStatusRefused:
		return "Refusé"
	default:
		return string(status)
	}
}

func Amount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64) + " €"
}

// Row builds the display row of a bill. When the date cannot be parsed the
// row still comes back complete, carrying the raw date, alongside the error.
func Row(bill types.Bill) (types.BillRow, error) {
	row := types.BillRow{
		ID:      bill.ID,
		Date:    bill.Date,
		Type:    bill.Type,
		Name:    bill.Name,
		Amount:  Amount(bill.Amount),
		Status:  Status(bill.Status),
		FileURL: bill.FileURL,
	}

	date, err := Date(bill.Date)
	if err != nil {
		return row, err
	}
	row.Date = date

	return row, nil
}
