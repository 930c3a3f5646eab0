package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/stwalsh4118/portfolio/internal/database"
	"github.com/stwalsh4118/portfolio/internal/models"
)

// postgresRepository stores properties in the properties table. Owned collections live
// in JSONB columns and coordinates in a PostGIS point.
type postgresRepository struct {
	db *database.Database
}

// NewPostgresRepository creates a PropertyRepository backed by PostgreSQL.
func NewPostgresRepository(db *database.Database) PropertyRepository {
	return &postgresRepository{
		db: db,
	}
}

const selectProperties = `
	SELECT
		id,
		address,
		location,
		units,
		occupancy,
		acquisition_price,
		market_value,
		loan_balance,
		equity,
		type,
		last_roofing_assessment,
		insurance_expires_in,
		image,
		name,
		roof_type,
		build_year,
		stories,
		square_footage,
		ST_AsGeoJSON(coordinates) AS coordinates,
		documents,
		events,
		history,
		insurance
	FROM properties
`

func scanProperty(row pgx.Row) (*models.Property, error) {
	var (
		p          models.Property
		roof       *time.Time
		coordsJSON []byte
		documents  []byte
		events     []byte
		history    []byte
		insurance  []byte
	)

	err := row.Scan(
		&p.ID,
		&p.Address,
		&p.Location,
		&p.Units,
		&p.Occupancy,
		&p.AcquisitionPrice,
		&p.MarketValue,
		&p.LoanBalance,
		&p.Equity,
		&p.Type,
		&roof,
		&p.InsuranceExpiresIn,
		&p.Image,
		&p.Name,
		&p.RoofType,
		&p.BuildYear,
		&p.Stories,
		&p.SquareFootage,
		&coordsJSON,
		&documents,
		&events,
		&history,
		&insurance,
	)
	if err != nil {
		return nil, err
	}

	if roof != nil {
		p.LastRoofingAssessment = models.DateOf(*roof)
	}
	if coordsJSON != nil {
		if err := p.Coordinates.Scan(coordsJSON); err != nil {
			return nil, fmt.Errorf("failed to parse coordinates for property %d: %w", p.ID, err)
		}
	}
	if err := json.Unmarshal(documents, &p.Documents); err != nil {
		return nil, fmt.Errorf("failed to decode documents for property %d: %w", p.ID, err)
	}
	if err := json.Unmarshal(events, &p.Events); err != nil {
		return nil, fmt.Errorf("failed to decode events for property %d: %w", p.ID, err)
	}
	if err := json.Unmarshal(history, &p.History); err != nil {
		return nil, fmt.Errorf("failed to decode history for property %d: %w", p.ID, err)
	}
	if insurance != nil {
		p.Insurance = &models.InsurancePolicy{}
		if err := json.Unmarshal(insurance, p.Insurance); err != nil {
			return nil, fmt.Errorf("failed to decode insurance for property %d: %w", p.ID, err)
		}
	}

	return &p, nil
}

// columnValues encodes the writable columns of p in the order used by Add and Update.
func columnValues(p *models.Property) ([]any, error) {
	documents, err := json.Marshal(nonNil(p.Documents))
	if err != nil {
		return nil, fmt.Errorf("failed to encode documents: %w", err)
	}
	events, err := json.Marshal(nonNil(p.Events))
	if err != nil {
		return nil, fmt.Errorf("failed to encode events: %w", err)
	}
	history, err := json.Marshal(nonNil(p.History))
	if err != nil {
		return nil, fmt.Errorf("failed to encode history: %w", err)
	}

	var insurance []byte
	if p.Insurance != nil {
		if insurance, err = json.Marshal(p.Insurance); err != nil {
			return nil, fmt.Errorf("failed to encode insurance: %w", err)
		}
	}

	var roof *time.Time
	if !p.LastRoofingAssessment.IsZero() {
		t := p.LastRoofingAssessment.Time
		roof = &t
	}

	var coords *string
	if !p.Coordinates.IsZero() {
		v, err := p.Coordinates.Value()
		if err != nil {
			return nil, err
		}
		s := v.(string)
		coords = &s
	}

	return []any{
		p.Address,
		p.Location,
		p.Units,
		p.Occupancy,
		p.AcquisitionPrice,
		p.MarketValue,
		p.LoanBalance,
		p.Equity,
		string(p.Type),
		roof,
		p.InsuranceExpiresIn,
		p.Image,
		p.Name,
		p.RoofType,
		p.BuildYear,
		p.Stories,
		p.SquareFootage,
		coords,
		documents,
		events,
		history,
		insurance,
	}, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func (r *postgresRepository) List(ctx context.Context) ([]*models.Property, error) {
	rows, err := r.db.Pool.Query(ctx, selectProperties+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query properties: %w", err)
	}
	defer rows.Close()

	results := []*models.Property{}
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan property row: %w", err)
		}
		results = append(results, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating property rows: %w", err)
	}

	return results, nil
}

func (r *postgresRepository) Get(ctx context.Context, id int64) (*models.Property, error) {
	p, err := scanProperty(r.db.Pool.QueryRow(ctx, selectProperties+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query property %d: %w", id, err)
	}
	return p, nil
}

func (r *postgresRepository) Add(ctx context.Context, p *models.Property) (*models.Property, error) {
	if p == nil {
		return nil, fmt.Errorf("cannot add nil property")
	}

	values, err := columnValues(p)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO properties (
			address, location, units, occupancy,
			acquisition_price, market_value, loan_balance, equity,
			type, last_roofing_assessment, insurance_expires_in, image,
			name, roof_type, build_year, stories, square_footage,
			coordinates, documents, events, history, insurance
		) VALUES (
			$1, $2, $3, $4,
			$5, $6, $7, $8,
			$9, $10, $11, $12,
			$13, $14, $15, $16, $17,
			ST_SetSRID(ST_GeomFromGeoJSON($18::text), 4326), $19, $20, $21, $22
		)
		RETURNING id
	`

	stored := p.Clone()
	if err := r.db.Pool.QueryRow(ctx, query, values...).Scan(&stored.ID); err != nil {
		return nil, fmt.Errorf("failed to insert property %q: %w", p.Address, err)
	}
	return stored, nil
}

const updateProperty = `
	UPDATE properties SET
		address = $1, location = $2, units = $3, occupancy = $4,
		acquisition_price = $5, market_value = $6, loan_balance = $7, equity = $8,
		type = $9, last_roofing_assessment = $10, insurance_expires_in = $11, image = $12,
		name = $13, roof_type = $14, build_year = $15, stories = $16, square_footage = $17,
		coordinates = ST_SetSRID(ST_GeomFromGeoJSON($18::text), 4326),
		documents = $19, events = $20, history = $21, insurance = $22,
		updated_at = now()
	WHERE id = $23
`

// Update locks the row with SELECT ... FOR UPDATE for the duration of fn.
func (r *postgresRepository) Update(ctx context.Context, id int64, fn UpdateFunc) (*models.Property, error) {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin update of property %d: %w", id, err)
	}
	defer tx.Rollback(ctx)

	p, err := scanProperty(tx.QueryRow(ctx, selectProperties+` WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("update property %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to lock property %d: %w", id, err)
	}

	if err := fn(p); err != nil {
		return nil, err
	}
	p.ID = id

	values, err := columnValues(p)
	if err != nil {
		return nil, err
	}
	if _, err := tx.Exec(ctx, updateProperty, append(values, id)...); err != nil {
		return nil, fmt.Errorf("failed to update property %d: %w", id, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit update of property %d: %w", id, err)
	}
	return p, nil
}

func (r *postgresRepository) Remove(ctx context.Context, id int64) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM properties WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete property %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("remove property %d: %w", id, ErrNotFound)
	}
	return nil
}

func (r *postgresRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

// Seed inserts properties when the table is empty, keeping their ids, and moves the id
// sequence past them. It reports how many rows were inserted.
func Seed(ctx context.Context, db *database.Database, properties []*models.Property) (int, error) {
	var count int
	if err := db.Pool.QueryRow(ctx, `SELECT count(*) FROM properties`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count properties: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO properties (
			address, location, units, occupancy,
			acquisition_price, market_value, loan_balance, equity,
			type, last_roofing_assessment, insurance_expires_in, image,
			name, roof_type, build_year, stories, square_footage,
			coordinates, documents, events, history, insurance, id
		) VALUES (
			$1, $2, $3, $4,
			$5, $6, $7, $8,
			$9, $10, $11, $12,
			$13, $14, $15, $16, $17,
			ST_SetSRID(ST_GeomFromGeoJSON($18::text), 4326), $19, $20, $21, $22, $23
		)
	`
	for _, p := range properties {
		values, err := columnValues(p)
		if err != nil {
			return 0, err
		}
		if _, err := tx.Exec(ctx, query, append(values, p.ID)...); err != nil {
			return 0, fmt.Errorf("failed to seed property %d: %w", p.ID, err)
		}
	}

	if _, err := tx.Exec(ctx, `SELECT setval(pg_get_serial_sequence('properties', 'id'), (SELECT MAX(id) FROM properties))`); err != nil {
		return 0, fmt.Errorf("failed to advance property id sequence: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit seed transaction: %w", err)
	}
	return len(properties), nil
}
