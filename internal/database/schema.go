package database

import (
	"context"
	"fmt"
)

// schema creates the properties table. Documents, events, history and the insurance
// policy belong to a single property and are stored as JSONB on its row.
const schema = `
CREATE EXTENSION IF NOT EXISTS postgis;

CREATE TABLE IF NOT EXISTS properties (
	id                      BIGSERIAL PRIMARY KEY,
	address                 TEXT NOT NULL,
	location                TEXT NOT NULL,
	units                   INTEGER NOT NULL DEFAULT 1,
	occupancy               TEXT NOT NULL DEFAULT '0%',
	acquisition_price       DOUBLE PRECISION NOT NULL DEFAULT 0,
	market_value            DOUBLE PRECISION NOT NULL DEFAULT 0,
	loan_balance            DOUBLE PRECISION NOT NULL DEFAULT 0,
	equity                  DOUBLE PRECISION NOT NULL DEFAULT 0,
	type                    TEXT NOT NULL CHECK (type IN ('house', 'apartment')),
	last_roofing_assessment DATE,
	insurance_expires_in    INTEGER NOT NULL DEFAULT 0,
	image                   TEXT NOT NULL DEFAULT '',
	name                    TEXT NOT NULL DEFAULT '',
	roof_type               TEXT NOT NULL DEFAULT '',
	build_year              INTEGER NOT NULL DEFAULT 0,
	stories                 INTEGER NOT NULL DEFAULT 0,
	square_footage          INTEGER NOT NULL DEFAULT 0,
	coordinates             GEOMETRY(Point, 4326),
	documents               JSONB NOT NULL DEFAULT '[]',
	events                  JSONB NOT NULL DEFAULT '[]',
	history                 JSONB NOT NULL DEFAULT '[]',
	insurance               JSONB,
	created_at              TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at              TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS properties_coordinates_idx ON properties USING GIST (coordinates);
`

// Migrate creates the schema if it does not exist yet.
func (db *Database) Migrate(ctx context.Context) error {
	if _, err := db.Pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
