package database

// migrations is an ordered list of SQL migration groups. Each group runs in
// one transaction; its version is its 1-based index.
var migrations = [][]string{
	// Migration 1: scene nodes, spec catalogs, attribute values
	{
		`CREATE TABLE nodes (
			id TEXT PRIMARY KEY,
			kind TEXT NOT NULL,
			name TEXT NOT NULL,
			parent_id TEXT,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE INDEX idx_nodes_kind ON nodes(kind)`,

		`CREATE TABLE kind_settings (
			kind TEXT PRIMARY KEY,
			default_property TEXT NOT NULL DEFAULT ''
		)`,

		// No uniqueness on name: the catalog order is the collection order
		// and duplicate names resolve to the lowest position.
		`CREATE TABLE property_specs (
			kind TEXT NOT NULL,
			position INTEGER NOT NULL,
			name TEXT NOT NULL,
			type_name TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			editor TEXT NOT NULL DEFAULT '',
			expandable BOOLEAN NOT NULL DEFAULT FALSE,
			read_only BOOLEAN NOT NULL DEFAULT FALSE,
			hidden BOOLEAN NOT NULL DEFAULT FALSE,
			disabled BOOLEAN NOT NULL DEFAULT FALSE,
			refresh_properties BOOLEAN NOT NULL DEFAULT FALSE,
			default_value TEXT,
			PRIMARY KEY (kind, position)
		)`,
		`CREATE INDEX idx_property_specs_name ON property_specs(kind, name)`,

		`CREATE TABLE attribute_values (
			node_id TEXT NOT NULL,
			name TEXT NOT NULL,
			value TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			PRIMARY KEY (node_id, name),
			FOREIGN KEY (node_id) REFERENCES nodes(id) ON DELETE CASCADE
		)`,

		`CREATE TABLE attribute_history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			node_id TEXT NOT NULL,
			name TEXT NOT NULL,
			value TEXT,
			timestamp TEXT NOT NULL,
			source TEXT NOT NULL DEFAULT 'API',
			FOREIGN KEY (node_id) REFERENCES nodes(id) ON DELETE CASCADE
		)`,
		`CREATE INDEX idx_attribute_history ON attribute_history(node_id, name, id)`,
	},
}
