package models

// CreateStatements returns the schema DDL in dependency order. Every
// statement is idempotent so schema initialization can run on each cold
// start. code_sets comes before data_columns because of the reference
// constraint.
func CreateStatements() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS communities (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL UNIQUE,
			description TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS domains (
			id VARCHAR(255) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			community_id INTEGER NOT NULL REFERENCES communities(id) ON DELETE CASCADE
		);`,
		`CREATE INDEX IF NOT EXISTS idx_domains_community_id ON domains(community_id);`,
		`CREATE TABLE IF NOT EXISTS code_sets (
			id VARCHAR(255) PRIMARY KEY,
			name VARCHAR(255) NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS data_tables (
			id VARCHAR(255) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			description TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			domain_id VARCHAR(255) NOT NULL REFERENCES domains(id) ON DELETE CASCADE
		);`,
		`CREATE INDEX IF NOT EXISTS idx_data_tables_domain_id ON data_tables(domain_id);`,
		`CREATE TABLE IF NOT EXISTS data_columns (
			id VARCHAR(255) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			description TEXT,
			data_type VARCHAR(50),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			data_table_id VARCHAR(255) NOT NULL REFERENCES data_tables(id) ON DELETE CASCADE,
			code_set_id VARCHAR(255) REFERENCES code_sets(id) ON DELETE SET NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_data_columns_data_table_id ON data_columns(data_table_id);`,
		`CREATE TABLE IF NOT EXISTS code_values (
			id VARCHAR(255) PRIMARY KEY,
			code VARCHAR(255) NOT NULL,
			label VARCHAR(255) NOT NULL,
			code_set_id VARCHAR(255) NOT NULL REFERENCES code_sets(id) ON DELETE CASCADE
		);`,
		`CREATE INDEX IF NOT EXISTS idx_code_values_code_set_id ON code_values(code_set_id);`,
	}
}
