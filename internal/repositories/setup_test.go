package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// testDB opens the Postgres instance named by TEST_DATABASE_URL. The
// concurrency tests need real row locking, so without a migrated database
// they skip instead of faking the driver.
func testDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Fatalf("ping test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// seedProvider inserts a customer, a provider user and a verified provider
// profile, and removes them (with their bookings) when the test finishes.
func seedProvider(t *testing.T, db *sql.DB) (customerID, providerID int) {
	t.Helper()
	ctx := context.Background()
	suffix := time.Now().UnixNano()

	var providerUserID int
	err := db.QueryRowContext(ctx, `
		INSERT INTO users (email, full_name, password, role)
		VALUES ($1, 'Test Customer', 'x', 'customer')
		RETURNING id
	`, fmt.Sprintf("customer%d@test.local", suffix)).Scan(&customerID)
	if err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	err = db.QueryRowContext(ctx, `
		INSERT INTO users (email, full_name, password, role)
		VALUES ($1, 'Test Provider', 'x', 'provider')
		RETURNING id
	`, fmt.Sprintf("provider%d@test.local", suffix)).Scan(&providerUserID)
	if err != nil {
		t.Fatalf("seed provider user: %v", err)
	}
	err = db.QueryRowContext(ctx, `
		INSERT INTO provider_profiles (user_id, base_price, is_verified, is_active)
		VALUES ($1, 100, TRUE, TRUE)
		RETURNING id
	`, providerUserID).Scan(&providerID)
	if err != nil {
		t.Fatalf("seed provider profile: %v", err)
	}

	t.Cleanup(func() {
		db.ExecContext(ctx, `DELETE FROM bookings WHERE provider_id = $1`, providerID)
		// Profile and availability rows cascade from the users.
		db.ExecContext(ctx, `DELETE FROM users WHERE id IN ($1, $2)`, customerID, providerUserID)
	})
	return customerID, providerID
}

// seedAllDayAvailability opens every weekday so the booking tests can pick
// timestamps without weekday arithmetic.
func seedAllDayAvailability(t *testing.T, db *sql.DB, providerID int) {
	t.Helper()
	for day := 0; day < 7; day++ {
		_, err := db.Exec(`
			INSERT INTO provider_availability (provider_id, day_of_week, start_time, end_time)
			VALUES ($1, $2, '00:00', '23:59')
		`, providerID, day)
		if err != nil {
			t.Fatalf("seed availability day %d: %v", day, err)
		}
	}
}
