// Package postgres implements the store interfaces against PostgreSQL using
// pgx. The extracted_data payload round-trips through JSONB untouched; the
// store never interprets it.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/GarageLog/garage-log-backend/internal/store"
	"github.com/GarageLog/garage-log-backend/types"
	"github.com/jackc/pgx/v5"
)

// TimelineStore implements store.TimelineStore using PostgreSQL.
type TimelineStore struct {
	pool DBPool
}

var _ store.TimelineStore = (*TimelineStore)(nil)

// NewTimelineStore creates a new TimelineStore instance.
func NewTimelineStore(pool DBPool) *TimelineStore {
	return &TimelineStore{pool: pool}
}

const timelineColumns = `id, tenant_id, vehicle_id, type, timestamp, mileage, extracted_data, notes, photo_key, created_at, updated_at`

// CreateItem inserts a new timeline item and returns its generated ID.
func (s *TimelineStore) CreateItem(ctx context.Context, item *types.TimelineItem) (string, error) {
	payload, err := marshalExtractedData(item.ExtractedData)
	if err != nil {
		return "", err
	}

	query := `
		INSERT INTO timeline_items (tenant_id, vehicle_id, type, timestamp, mileage, extracted_data, notes, photo_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	var id string
	err = s.pool.QueryRow(ctx, query,
		item.TenantID,
		item.VehicleID,
		item.Type,
		item.Timestamp,
		item.Mileage,
		payload,
		item.Notes,
		item.PhotoKey,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to insert timeline item: %w", err)
	}
	return id, nil
}

// GetItem retrieves a timeline item by tenant+vehicle+id.
func (s *TimelineStore) GetItem(ctx context.Context, tenantID, vehicleID, id string) (*types.TimelineItem, error) {
	query := `
		SELECT ` + timelineColumns + `
		FROM timeline_items
		WHERE id = $1 AND tenant_id = $2 AND vehicle_id = $3 AND deleted_at IS NULL`

	row := s.pool.QueryRow(ctx, query, id, tenantID, vehicleID)
	item, err := scanTimelineItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

// ListItems retrieves a page of timeline items for a vehicle, newest first,
// along with the total count.
func (s *TimelineStore) ListItems(ctx context.Context, tenantID, vehicleID string, limit, offset int) ([]*types.TimelineItem, int, error) {
	query := `
		SELECT ` + timelineColumns + `, COUNT(*) OVER() AS total
		FROM timeline_items
		WHERE tenant_id = $1 AND vehicle_id = $2 AND deleted_at IS NULL
		ORDER BY timestamp DESC, created_at DESC
		LIMIT $3 OFFSET $4`

	rows, err := s.pool.Query(ctx, query, tenantID, vehicleID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list timeline items: %w", err)
	}
	defer rows.Close()

	var items []*types.TimelineItem
	var total int
	for rows.Next() {
		item := &types.TimelineItem{}
		var payload []byte
		err := rows.Scan(
			&item.ID,
			&item.TenantID,
			&item.VehicleID,
			&item.Type,
			&item.Timestamp,
			&item.Mileage,
			&payload,
			&item.Notes,
			&item.PhotoKey,
			&item.CreatedAt,
			&item.UpdatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, err
		}
		if item.ExtractedData, err = unmarshalExtractedData(payload); err != nil {
			return nil, 0, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// UpdateItem applies a partial update and returns the updated row.
func (s *TimelineStore) UpdateItem(ctx context.Context, tenantID, vehicleID, id string, update *types.UpdateTimelineItemRequest) (*types.TimelineItem, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []any{id, tenantID, vehicleID}

	addClause := func(column string, value any) {
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Timestamp != nil {
		addClause("timestamp", *update.Timestamp)
	}
	if update.Mileage != nil {
		addClause("mileage", *update.Mileage)
	}
	if update.ExtractedData != nil {
		payload, err := marshalExtractedData(update.ExtractedData)
		if err != nil {
			return nil, err
		}
		addClause("extracted_data", payload)
	}
	if update.Notes != nil {
		addClause("notes", *update.Notes)
	}

	query := fmt.Sprintf(`
		UPDATE timeline_items
		SET %s
		WHERE id = $1 AND tenant_id = $2 AND vehicle_id = $3 AND deleted_at IS NULL
		RETURNING %s`, strings.Join(setClauses, ", "), timelineColumns)

	row := s.pool.QueryRow(ctx, query, args...)
	item, err := scanTimelineItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

// DeleteItem soft-deletes a timeline item.
func (s *TimelineStore) DeleteItem(ctx context.Context, tenantID, vehicleID, id string) error {
	query := `
		UPDATE timeline_items
		SET deleted_at = NOW()
		WHERE id = $1 AND tenant_id = $2 AND vehicle_id = $3 AND deleted_at IS NULL`

	tag, err := s.pool.Exec(ctx, query, id, tenantID, vehicleID)
	if err != nil {
		return fmt.Errorf("failed to delete timeline item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func scanTimelineItem(row pgx.Row) (*types.TimelineItem, error) {
	item := &types.TimelineItem{}
	var payload []byte
	err := row.Scan(
		&item.ID,
		&item.TenantID,
		&item.VehicleID,
		&item.Type,
		&item.Timestamp,
		&item.Mileage,
		&payload,
		&item.Notes,
		&item.PhotoKey,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if item.ExtractedData, err = unmarshalExtractedData(payload); err != nil {
		return nil, err
	}
	return item, nil
}

func marshalExtractedData(d types.ExtractedData) ([]byte, error) {
	if d == nil {
		d = types.ExtractedData{}
	}
	payload, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal extracted_data: %w", err)
	}
	return payload, nil
}

func unmarshalExtractedData(payload []byte) (types.ExtractedData, error) {
	if len(payload) == 0 {
		return types.ExtractedData{}, nil
	}
	var d types.ExtractedData
	if err := json.Unmarshal(payload, &d); err != nil {
		return nil, fmt.Errorf("failed to unmarshal extracted_data: %w", err)
	}
	return d, nil
}
