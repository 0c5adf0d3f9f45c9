package sqlite

// Schema DDL for all tables. References between tables are not declared as
// foreign keys; the ledger maintains them itself.
const (
	createContacts = `CREATE TABLE IF NOT EXISTS contacts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    company TEXT,
    type TEXT,
    email TEXT,
    phone TEXT,
    location TEXT,
    preferences TEXT,
    notes TEXT,
    last_contact TEXT,
    date_added TEXT NOT NULL
);`

	createStones = `CREATE TABLE IF NOT EXISTS stones (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    carat REAL NOT NULL CHECK (carat > 0),
    shape TEXT,
    color TEXT,
    clarity TEXT,
    cut TEXT,
    certification TEXT,
    cert_number TEXT,
    asking_price REAL,
    cost_price REAL,
    source TEXT,
    supplier_id INTEGER,
    status TEXT NOT NULL DEFAULT 'Available' CHECK (status IN ('Available', 'Reserved', 'Sold')),
    notes TEXT,
    date_added TEXT NOT NULL,
    date_updated TEXT NOT NULL
);`

	createDeals = `CREATE TABLE IF NOT EXISTS deals (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    stone_id INTEGER NOT NULL,
    buyer_id INTEGER,
    status TEXT NOT NULL DEFAULT 'Pending' CHECK (status IN ('Pending', 'Negotiating', 'Agreed', 'Completed', 'Lost')),
    asking_price REAL,
    offered_price REAL,
    final_price REAL,
    commission REAL,
    commission_percent REAL NOT NULL DEFAULT 3.0,
    notes TEXT,
    date_started TEXT NOT NULL,
    date_closed TEXT
);`

	createPriceLog = `CREATE TABLE IF NOT EXISTS price_log (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    shape TEXT,
    carat_min REAL,
    carat_max REAL,
    color TEXT,
    clarity TEXT,
    price_per_carat REAL NOT NULL,
    source TEXT,
    notes TEXT,
    date_logged TEXT NOT NULL
);`
)

// Index DDL for the list and stats queries.
const (
	idxStonesStatus   = `CREATE INDEX IF NOT EXISTS idx_stones_status ON stones(status);`
	idxStonesSupplier = `CREATE INDEX IF NOT EXISTS idx_stones_supplier ON stones(supplier_id);`
	idxDealsStone     = `CREATE INDEX IF NOT EXISTS idx_deals_stone ON deals(stone_id);`
	idxDealsStatus    = `CREATE INDEX IF NOT EXISTS idx_deals_status ON deals(status);`
	idxPriceLogLogged = `CREATE INDEX IF NOT EXISTS idx_price_log_logged ON price_log(date_logged, id);`
	idxContactsType   = `CREATE INDEX IF NOT EXISTS idx_contacts_type ON contacts(type);`
)

// schemaDDL lists all CREATE TABLE statements.
var schemaDDL = []string{
	createContacts,
	createStones,
	createDeals,
	createPriceLog,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxStonesStatus,
	idxStonesSupplier,
	idxDealsStone,
	idxDealsStatus,
	idxPriceLogLogged,
	idxContactsType,
}

// Table names.
const (
	tableContacts = "contacts"
	tableStones   = "stones"
	tableDeals    = "deals"
	tablePriceLog = "price_log"
)

// tableColumns maps each table to its column list. Loading a store file and
// the JSONL import/export all copy exactly these columns, in this order.
var tableColumns = []struct {
	table   string
	columns []string
}{
	{tableContacts, []string{"id", "name", "company", "type", "email", "phone", "location", "preferences", "notes", "last_contact", "date_added"}},
	{tableStones, []string{"id", "carat", "shape", "color", "clarity", "cut", "certification", "cert_number", "asking_price", "cost_price", "source", "supplier_id", "status", "notes", "date_added", "date_updated"}},
	{tableDeals, []string{"id", "stone_id", "buyer_id", "status", "asking_price", "offered_price", "final_price", "commission", "commission_percent", "notes", "date_started", "date_closed"}},
	{tablePriceLog, []string{"id", "shape", "carat_min", "carat_max", "color", "clarity", "price_per_carat", "source", "notes", "date_logged"}},
}
