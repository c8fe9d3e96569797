package types

import "time"

type BillStatus string

const (
	BillStatusPending  BillStatus = "pending"
	BillStatusAccepted BillStatus = "accepted"
	BillStatusRefused  BillStatus = "refused"
)

// Bill is one expense report submitted by an employee. The attachment itself
// lives in file storage, the bill only keeps its URL and name.
type Bill struct {
	ID           string     `db:"id" json:"id"`
	Email        string     `db:"email" json:"email"`
	Type         string     `db:"type" json:"type"`
	Name         string     `db:"name" json:"name"`
	Date         string     `db:"date" json:"date"`
	Amount       float64    `db:"amount" json:"amount"`
	VAT          float64    `db:"vat" json:"vat"`
	Pct          int        `db:"pct" json:"pct"`
	Commentary   string     `db:"commentary" json:"commentary"`
	CommentAdmin string     `db:"comment_admin" json:"commentAdmin"`
	FileURL      string     `db:"file_url" json:"fileUrl"`
	FileName     string     `db:"file_name" json:"fileName"`
	Status       BillStatus `db:"status" json:"status"`
	CreatedAt    time.Time  `db:"created_at" json:"-"`
}

// BillRow is the display projection of a Bill rendered by the bills list.
type BillRow struct {
	ID      string
	Date    string
	Type    string
	Name    string
	Amount  string
	Status  string
	FileURL string
}

// FilePreview is the state of the attachment modal.
type FilePreview struct {
	URL   string
	Width int
}

// BillTypes are the expense categories offered by the new bill form.
var BillTypes = []string{
	"Transports",
	"Restaurants et bars",
	"Hôtel et logement",
	"Services en ligne",
	"IT et électronique",
	"Equipement et matériel",
	"Fournitures de bureau",
}

// NewBillForm is the decoded new bill form. The attachment is read
// separately from the multipart body.
type NewBillForm struct {
	Type       string `form:"expense-type"`
	Name       string `form:"expense-name"`
	Date       string `form:"datepicker"`
	Amount     string `form:"amount"`
	VAT        string `form:"vat"`
	Pct        string `form:"pct"`
	Commentary string `form:"commentary"`
}
