package item

// Column mapping shared by the SQL backends: one row per item in the items
// table, id generated by the database. position is 64-bit everywhere so it
// holds any Go int the reorder endpoint accepts.
const selectColumns = "id, name, position"

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS items (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name VARCHAR(255) NOT NULL,
    position INTEGER NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_items_position ON items(position)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS items (
    id BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
    name VARCHAR(255) NOT NULL,
    position BIGINT NOT NULL
)`,
	`ALTER TABLE items ALTER COLUMN position TYPE BIGINT`,
	`CREATE INDEX IF NOT EXISTS idx_items_position ON items(position)`,
}
