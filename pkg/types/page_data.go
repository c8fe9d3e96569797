package types

type NavbarData struct {
	IsAuthenticated bool
	UserEmail       string
}

type NavbarDataSetter interface {
	SetNavbarData(data NavbarData)
}

type BasePageData struct {
	Title  string
	Navbar NavbarData
}

func (d *BasePageData) SetNavbarData(data NavbarData) {
	d.Navbar = data
}

// BillsPageData drives the bills list view. Loading wins over Error, and
// Error wins over the list.
type BillsPageData struct {
	BasePageData
	Bills   []BillRow
	Loading bool
	Error   string
	Preview *FilePreview
}

type NewBillPageData struct {
	BasePageData
	Form      NewBillForm
	FileError string
	Error     string
}

type LoginPageData struct {
	BasePageData
	Email string
	Error string
}
