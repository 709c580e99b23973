package export

const Schema = `
CREATE TABLE IF NOT EXISTS transactions (
	run_id TEXT NOT NULL,
	date DATETIME NOT NULL,
	merchant TEXT NOT NULL,
	type TEXT NOT NULL,
	category TEXT NOT NULL,
	flag TEXT NOT NULL,
	amount REAL NOT NULL,
	source TEXT NOT NULL,
	account_owner TEXT NOT NULL,
	source_file TEXT NOT NULL,
	master_category TEXT NOT NULL,
	merchant_group TEXT NOT NULL,
	year INTEGER NOT NULL,
	month INTEGER NOT NULL,
	year_month TEXT NOT NULL,
	abs_amount REAL NOT NULL,
	transaction_type TEXT NOT NULL,
	account_group TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	started DATETIME NOT NULL,
	finished DATETIME NOT NULL,
	row_count INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_transactions_run ON transactions(run_id);
CREATE INDEX IF NOT EXISTS idx_transactions_year_month ON transactions(year_month);
`
