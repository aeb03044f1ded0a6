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
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// Well-known topology ids seeded by SeedReferenceData. Tests reference these
// instead of looking rows up by name.
var (
	SeedGroupID            = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	SeedDowntownID         = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	SeedSeasideID          = uuid.MustParse("33333333-3333-3333-3333-333333333333")
	SeedDowntownStandardID = uuid.MustParse("44444444-4444-4444-4444-444444444444")
	SeedDowntownDeluxeID   = uuid.MustParse("55555555-5555-5555-5555-555555555555")
	SeedSeasideStandardID  = uuid.MustParse("66666666-6666-6666-6666-666666666666")
	SeedSeasideSuiteID     = uuid.MustParse("77777777-7777-7777-7777-777777777777")
)

func CreateTestGroup(t *testing.T, db DBLike, name string) uuid.UUID {
	t.Helper()

	groupID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx, "INSERT INTO property_groups (id, name) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING", groupID, name)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM property_groups WHERE name = $1", name).Scan(&groupID)
	}

	return groupID
}

func CreateTestProperty(t *testing.T, db DBLike, groupID uuid.UUID, name string, allowOverbooking bool, overbookingLimit int) uuid.UUID {
	t.Helper()

	propertyID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx, `
		INSERT INTO properties (id, group_id, name, timezone, currency, allow_overbooking, overbooking_limit)
		VALUES ($1, $2, $3, 'UTC', 'EUR', $4, $5)`,
		propertyID, groupID, name, allowOverbooking, overbookingLimit)
	require.NoError(t, err)

	return propertyID
}

func CreateTestRoomType(t *testing.T, db DBLike, propertyID uuid.UUID, code string, totalRooms int, baseRate decimal.Decimal) uuid.UUID {
	t.Helper()

	roomTypeID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx, `
		INSERT INTO room_types (id, property_id, code, name, max_occupancy, base_rate, currency, total_rooms)
		VALUES ($1, $2, $3, $4, 2, $5, 'EUR', $6)
		ON CONFLICT (property_id, code) DO NOTHING`,
		roomTypeID, propertyID, code, "Test "+code, baseRate, totalRooms)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM room_types WHERE property_id = $1 AND code = $2", propertyID, code).Scan(&roomTypeID)
	}

	return roomTypeID
}

// SeedReferenceData inserts the topology tests run against: one group, two
// properties, four room types and their channel codes. Mirrors the dev seed.
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	if _, err := pool.Exec(ctx, `
		INSERT INTO property_groups (id, name) VALUES
		    ($1, 'Aurora Hotel Group')
		ON CONFLICT (name) DO NOTHING;
	`, SeedGroupID); err != nil {
		return err
	}

	if _, err := pool.Exec(ctx, `
		INSERT INTO properties (id, group_id, name, timezone, currency, allow_overbooking, overbooking_limit) VALUES
		    ($1, $3, 'Aurora Downtown', 'Europe/Berlin', 'EUR', false, 0),
		    ($2, $3, 'Aurora Seaside', 'Europe/Lisbon', 'EUR', true, 2)
		ON CONFLICT (id) DO NOTHING;
	`, SeedDowntownID, SeedSeasideID, SeedGroupID); err != nil {
		return err
	}

	if _, err := pool.Exec(ctx, `
		INSERT INTO room_types (id, property_id, code, name, max_occupancy, base_rate, currency, total_rooms, category) VALUES
		    ($1, $5, 'STD', 'Standard Double', 2, 120.00, 'EUR', 20, 'standard'),
		    ($2, $5, 'DLX', 'Deluxe King', 3, 180.00, 'EUR', 10, 'deluxe'),
		    ($3, $6, 'STD', 'Standard Twin', 2, 95.00, 'EUR', 30, 'standard'),
		    ($4, $6, 'SUI', 'Sea View Suite', 4, 260.00, 'EUR', 6, 'suite')
		ON CONFLICT (property_id, code) DO NOTHING;
	`, SeedDowntownStandardID, SeedDowntownDeluxeID, SeedSeasideStandardID, SeedSeasideSuiteID, SeedDowntownID, SeedSeasideID); err != nil {
		return err
	}

	if _, err := pool.Exec(ctx, `
		INSERT INTO channel_mappings (property_id, channel, external_code, room_type_id) VALUES
		    ($1, 'booking.com', 'BDC-STD', $3),
		    ($1, 'booking.com', 'BDC-DLX', $4),
		    ($1, 'expedia', 'EXP-201', $3),
		    ($2, 'booking.com', 'BDC-STD', $5),
		    ($2, 'expedia', 'EXP-882', $6)
		ON CONFLICT (property_id, channel, external_code) DO NOTHING;
	`, SeedDowntownID, SeedSeasideID, SeedDowntownStandardID, SeedDowntownDeluxeID, SeedSeasideStandardID, SeedSeasideSuiteID); err != nil {
		return err
	}

	return nil
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// ResetDB truncates all tables and reseeds the topology.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('atlas_schema_revisions')`)
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
