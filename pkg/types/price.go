package types

// PriceLogEntry is a historical per-carat market observation. It is not
// linked to any stone.
type PriceLogEntry struct {
	ID            int64    `db:"id" json:"id"`
	Shape         *string  `db:"shape" json:"shape"`
	CaratMin      *float64 `db:"carat_min" json:"carat_min"`
	CaratMax      *float64 `db:"carat_max" json:"carat_max"`
	Color         *string  `db:"color" json:"color"`
	Clarity       *string  `db:"clarity" json:"clarity"`
	PricePerCarat *float64 `db:"price_per_carat" json:"price_per_carat"`
	Source        *string  `db:"source" json:"source"`
	Notes         *string  `db:"notes" json:"notes"`
	DateLogged    string   `db:"date_logged" json:"date_logged"`
}

// PriceInput carries a new observation. CaratMax defaults to CaratMin and
// DateLogged to today.
type PriceInput struct {
	Shape         *string  `json:"shape"`
	CaratMin      *float64 `json:"carat_min"`
	CaratMax      *float64 `json:"carat_max"`
	Color         *string  `json:"color"`
	Clarity       *string  `json:"clarity"`
	PricePerCarat *float64 `json:"price_per_carat"`
	Source        *string  `json:"source"`
	Notes         *string  `json:"notes"`
	DateLogged    *string  `json:"date_logged"`
}

// PriceFilter narrows ListPrices.
type PriceFilter struct {
	Shape string
}
