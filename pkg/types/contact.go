package types

// Conventional contact categories. Type is free text; these are the values
// the stats endpoint counts.
const (
	ContactBuyer    = "Buyer"
	ContactSupplier = "Supplier"
)

// Contact is a buyer or supplier counterparty.
type Contact struct {
	ID          int64   `db:"id" json:"id"`
	Name        string  `db:"name" json:"name"`
	Company     *string `db:"company" json:"company"`
	Type        *string `db:"type" json:"type"`
	Email       *string `db:"email" json:"email"`
	Phone       *string `db:"phone" json:"phone"`
	Location    *string `db:"location" json:"location"`
	Preferences *string `db:"preferences" json:"preferences"`
	Notes       *string `db:"notes" json:"notes"`
	LastContact *string `db:"last_contact" json:"last_contact"`
	DateAdded   string  `db:"date_added" json:"date_added"`
}

// ContactInput carries the mutable contact fields. Name is required by the
// store; a nil Name fails the NOT NULL constraint.
type ContactInput struct {
	Name        *string `json:"name"`
	Company     *string `json:"company"`
	Type        *string `json:"type"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	Location    *string `json:"location"`
	Preferences *string `json:"preferences"`
	Notes       *string `json:"notes"`
	LastContact *string `json:"last_contact"`
}

// ContactFilter narrows ListContacts.
type ContactFilter struct {
	Type string
}
