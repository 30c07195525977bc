package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS companies (
    id                   INTEGER PRIMARY KEY,
    name                 TEXT NOT NULL,
    website              TEXT,
    industry             TEXT,
    notes                TEXT,
    created_at           TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS contacts (
    id                   INTEGER PRIMARY KEY,
    name                 TEXT NOT NULL,
    email                TEXT,
    phone                TEXT,
    company              TEXT,
    company_id           INTEGER REFERENCES companies(id) ON DELETE SET NULL,
    title                TEXT,
    website              TEXT,
    additional_info      TEXT,
    created_at           TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS deals (
    id                   INTEGER PRIMARY KEY,
    contact_id           INTEGER REFERENCES contacts(id) ON DELETE SET NULL,
    title                TEXT NOT NULL,
    value                REAL,
    probability          INTEGER,
    stage                TEXT,
    status               TEXT NOT NULL DEFAULT 'open',
    lead_source          TEXT,
    budget               TEXT,
    authority            TEXT,
    need                 TEXT,
    timeline             TEXT,
    expected_close_date  TEXT,
    closed_revenue       REAL NOT NULL DEFAULT 0,
    created_at           TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS skus (
    id                   INTEGER PRIMARY KEY,
    name                 TEXT NOT NULL,
    category             TEXT NOT NULL,
    subcategory          TEXT NOT NULL,
    UNIQUE(name, category, subcategory)
);

CREATE TABLE IF NOT EXISTS deal_skus (
    id                   INTEGER PRIMARY KEY,
    deal_id              INTEGER NOT NULL REFERENCES deals(id) ON DELETE CASCADE,
    sku_id               INTEGER NOT NULL REFERENCES skus(id) ON DELETE CASCADE,
    UNIQUE(deal_id, sku_id)
);

CREATE TABLE IF NOT EXISTS activities (
    id                   INTEGER PRIMARY KEY,
    deal_id              INTEGER REFERENCES deals(id) ON DELETE SET NULL,
    contact_id           INTEGER REFERENCES contacts(id) ON DELETE SET NULL,
    type                 TEXT,
    description          TEXT,
    next_steps           TEXT,
    due_date             TEXT,
    created_at           TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS settings (
    id                   INTEGER PRIMARY KEY,
    key                  TEXT NOT NULL UNIQUE,
    value                TEXT NOT NULL,
    updated_at           TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_contacts_company ON contacts(company_id);
CREATE INDEX IF NOT EXISTS idx_deals_contact ON deals(contact_id);
CREATE INDEX IF NOT EXISTS idx_deals_status ON deals(status);
CREATE INDEX IF NOT EXISTS idx_activities_deal ON activities(deal_id);
CREATE INDEX IF NOT EXISTS idx_activities_due ON activities(due_date);
`

// skuCatalog is the fixed product catalog seeded at startup.
var skuCatalog = []struct {
	Name        string
	Category    string
	Subcategory string
}{
	{"Premium Clean Long Fiber", "Raw Materials", "Fiber"},
	{"Non-woven Grade, Clean Fiber", "Raw Materials", "Fiber"},
	{"Short Fiber/Hurd Mix", "Raw Materials", "Fiber"},
	{`H1 Hurd - 3/4"`, "Raw Materials", "Hurd"},
	{`H2 Hurd - 1/2"`, "Raw Materials", "Hurd"},
	{`H3 Hurd - 1/16"`, "Raw Materials", "Hurd"},
	{`2"x24"x48"`, "Products", "Insulation"},
	{`3.5"x24"x48"`, "Products", "Insulation"},
	{`5.5"x24"x48"`, "Products", "Insulation"},
	{`7.5"x24"x48"`, "Products", "Insulation"},
	{`1"x24"x48"`, "Products", "Acoustic Panels"},
	{`2"x24"x48"`, "Products", "Acoustic Panels"},
	{`4"x24"x48"`, "Products", "Acoustic Panels"},
}
