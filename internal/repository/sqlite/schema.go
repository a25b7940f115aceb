// Package sqlite provides a SQLite-backed ledger store for offline deployments and the CLI.
package sqlite

// Schema creates the ledger tables. Amounts are stored as decimal text so they round-trip
// exactly; timestamps are RFC 3339 text in UTC.
const Schema = `
CREATE TABLE IF NOT EXISTS inventory (
    name TEXT PRIMARY KEY,             -- case-sensitive item name
    quantity TEXT NOT NULL,
    average_cost TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS sales (
    id TEXT PRIMARY KEY,
    created_at TEXT NOT NULL,
    item TEXT NOT NULL,
    quantity TEXT NOT NULL,
    price TEXT NOT NULL,
    profit TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sales_created_at ON sales(created_at);

CREATE TABLE IF NOT EXISTS purchases (
    id TEXT PRIMARY KEY,
    created_at TEXT NOT NULL,
    item TEXT NOT NULL,
    quantity TEXT NOT NULL,
    price TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS expenses (
    id TEXT PRIMARY KEY,
    created_at TEXT NOT NULL,
    title TEXT NOT NULL,
    amount TEXT NOT NULL
);

-- Single row holding the running totals.
CREATE TABLE IF NOT EXISTS summary (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    cash TEXT NOT NULL,
    total_profit TEXT NOT NULL,
    capital TEXT NOT NULL
);
`
