package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS users (
    id   INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS budgets (
    id     INTEGER PRIMARY KEY AUTOINCREMENT,
    year   INTEGER NOT NULL,
    month  INTEGER NOT NULL,
    amount INTEGER NOT NULL,
    UNIQUE(year, month)
);

CREATE TABLE IF NOT EXISTS expenses (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    date       TEXT NOT NULL,
    user_id    INTEGER NOT NULL,
    category   TEXT NOT NULL,
    memo       TEXT,
    amount     INTEGER NOT NULL,
    created_at TEXT NOT NULL,
    FOREIGN KEY(user_id) REFERENCES users(id)
);

CREATE INDEX IF NOT EXISTS idx_expenses_date ON expenses(date);
`
