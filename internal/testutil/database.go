package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	// Configure SQLite for testing
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	// Create schema
	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	// Cleanup when test ends
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the production migrations.
func createTestSchema(db *sql.DB) error {
	schema := `
		-- Portfolio table
		CREATE TABLE IF NOT EXISTS portfolio (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			description TEXT,
			owner_id VARCHAR(100) NOT NULL DEFAULT 'guest',
			total_value TEXT NOT NULL DEFAULT '0',
			total_gain_loss TEXT NOT NULL DEFAULT '0',
			total_gain_loss_percent TEXT NOT NULL DEFAULT '0',
			daily_change TEXT NOT NULL DEFAULT '0',
			daily_change_percent TEXT NOT NULL DEFAULT '0',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		-- Asset table
		CREATE TABLE IF NOT EXISTS asset (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			portfolio_id VARCHAR(36) NOT NULL,
			symbol VARCHAR(20) NOT NULL,
			name VARCHAR(100) NOT NULL,
			asset_type VARCHAR(10) NOT NULL,
			quantity TEXT NOT NULL,
			purchase_price TEXT NOT NULL,
			current_price TEXT NOT NULL DEFAULT '0',
			total_value TEXT NOT NULL DEFAULT '0',
			gain_loss TEXT NOT NULL DEFAULT '0',
			gain_loss_percent TEXT NOT NULL DEFAULT '0',
			daily_change TEXT NOT NULL DEFAULT '0',
			daily_change_percent TEXT NOT NULL DEFAULT '0',
			metadata TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(portfolio_id) REFERENCES portfolio(id) ON DELETE CASCADE
		);

		CREATE INDEX IF NOT EXISTS idx_asset_portfolio_id ON asset(portfolio_id);

		-- Price history table
		CREATE TABLE IF NOT EXISTS price_history (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			symbol VARCHAR(20) NOT NULL,
			timestamp DATETIME NOT NULL,
			open TEXT NOT NULL,
			high TEXT NOT NULL,
			low TEXT NOT NULL,
			close TEXT NOT NULL,
			volume TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_price_history_symbol_timestamp
			ON price_history(symbol, timestamp);
	`

	_, err := db.Exec(schema)
	return err
}
