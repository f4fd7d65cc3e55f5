//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func CreateTestUser(t *testing.T, db DBLike, email, role string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	// bcrypt hash of "password123"; auth endpoints are out of scope, the
	// column just satisfies NOT NULL.
	passwordHash := "$2a$12$uhAjVE9f92IGYv3E25pJNetg.27lVt0p7jmLWjqjmhOg92ldPS0A."
	tag, err := db.Exec(ctx,
		"INSERT INTO users (id, email, password_hash, role) VALUES ($1, $2, $3, $4) ON CONFLICT (email) DO NOTHING",
		userID, email, passwordHash, role)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID)
	}

	return userID
}

func CreateTestStation(t *testing.T, db DBLike, name string, active bool) uuid.UUID {
	t.Helper()

	stationID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx,
		"INSERT INTO verification_stations (id, name, active) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING",
		stationID, name, active)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM verification_stations WHERE name = $1", name).Scan(&stationID)
	}

	return stationID
}

// CreateTestJourney inserts a journey awaiting verification together with
// its PENDING credit, the state the verification flow starts from.
// 100 km on 20 kWh reduces 11 kg of CO2, worth 0.0077 credits at
// pending confidence.
func CreateTestJourney(t *testing.T, db DBLike, ownerID uuid.UUID) (journeyID, creditID uuid.UUID) {
	t.Helper()

	journeyID = uuid.New()
	creditID = uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx,
		"INSERT INTO journeys (id, owner_id, distance_km, energy_kwh, verification_status) VALUES ($1, $2, 100, 20, 'pending_verification')",
		journeyID, ownerID)
	require.NoError(t, err)

	_, err = db.Exec(ctx,
		"INSERT INTO carbon_credits (id, owner_id, journey_id, co2_reduced_kg, amount, status) VALUES ($1, $2, $3, 11, 0.0077, 'pending')",
		creditID, ownerID, journeyID)
	require.NoError(t, err)

	return journeyID, creditID
}

// inserts basic reference data needed by tests
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO verification_stations (id, name, active) VALUES
		    (gen_random_uuid(), 'Central Station', true),
		    (gen_random_uuid(), 'Decommissioned Station', false)
		ON CONFLICT DO NOTHING;
	`)
	return err
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
