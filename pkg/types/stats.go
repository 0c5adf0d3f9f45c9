package types

// InventoryStats summarizes the stones table.
type InventoryStats struct {
	Total          int64   `db:"total" json:"total"`
	Available      int64   `db:"available" json:"available"`
	Reserved       int64   `db:"reserved" json:"reserved"`
	Sold           int64   `db:"sold" json:"sold"`
	AvailableValue float64 `db:"available_value" json:"available_value"`
}

// DealStats summarizes the deals table. Revenue and Commission cover
// completed deals only.
type DealStats struct {
	Total      int64   `db:"total" json:"total"`
	Active     int64   `db:"active" json:"active"`
	Completed  int64   `db:"completed" json:"completed"`
	Revenue    float64 `db:"revenue" json:"revenue"`
	Commission float64 `db:"commission" json:"commission"`
}

// ContactStats summarizes the contacts table.
type ContactStats struct {
	Total     int64 `db:"total" json:"total"`
	Buyers    int64 `db:"buyers" json:"buyers"`
	Suppliers int64 `db:"suppliers" json:"suppliers"`
}

// Stats is the dashboard snapshot.
type Stats struct {
	Inventory    InventoryStats `json:"inventory"`
	Deals        DealStats      `json:"deals"`
	Contacts     ContactStats   `json:"contacts"`
	RecentStones []Stone        `json:"recent_stones"`
	RecentDeals  []Deal         `json:"recent_deals"`
}
