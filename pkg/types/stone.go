package types

// Stone statuses. A stone moves to Reserved when a deal opens on it, to Sold
// when that deal completes, and back to Available when the deal is lost or
// deleted.
const (
	StoneAvailable = "Available"
	StoneReserved  = "Reserved"
	StoneSold      = "Sold"
)

// Stone is a single inventoried gemstone.
type Stone struct {
	ID            int64    `db:"id" json:"id"`
	Carat         *float64 `db:"carat" json:"carat"`
	Shape         *string  `db:"shape" json:"shape"`
	Color         *string  `db:"color" json:"color"`
	Clarity       *string  `db:"clarity" json:"clarity"`
	Cut           *string  `db:"cut" json:"cut"`
	Certification *string  `db:"certification" json:"certification"`
	CertNumber    *string  `db:"cert_number" json:"cert_number"`
	AskingPrice   *float64 `db:"asking_price" json:"asking_price"`
	CostPrice     *float64 `db:"cost_price" json:"cost_price"`
	Source        *string  `db:"source" json:"source"`
	SupplierID    *int64   `db:"supplier_id" json:"supplier_id"`
	Status        string   `db:"status" json:"status"`
	Notes         *string  `db:"notes" json:"notes"`
	DateAdded     string   `db:"date_added" json:"date_added"`
	DateUpdated   string   `db:"date_updated" json:"date_updated"`

	// SupplierName is joined from contacts for display.
	SupplierName *string `db:"supplier_name" json:"supplier_name"`
}

// StoneInput carries the mutable stone fields for create and full-replace
// update. A nil Status keeps the current status (Available on create).
type StoneInput struct {
	Carat         *float64 `json:"carat"`
	Shape         *string  `json:"shape"`
	Color         *string  `json:"color"`
	Clarity       *string  `json:"clarity"`
	Cut           *string  `json:"cut"`
	Certification *string  `json:"certification"`
	CertNumber    *string  `json:"cert_number"`
	AskingPrice   *float64 `json:"asking_price"`
	CostPrice     *float64 `json:"cost_price"`
	Source        *string  `json:"source"`
	SupplierID    *int64   `json:"supplier_id"`
	Status        *string  `json:"status"`
	Notes         *string  `json:"notes"`
}

// StoneFilter narrows ListStones. Zero values match everything.
type StoneFilter struct {
	Status     string
	Shape      string
	SupplierID *int64
}
