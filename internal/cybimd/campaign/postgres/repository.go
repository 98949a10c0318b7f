// Package postgres implements the campaign repository using PostgreSQL
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/cybim/cybim-signage/api/types/v1alpha1"
	"github.com/cybim/cybim-signage/internal/cybimd/campaign"
	"github.com/cybim/cybim-signage/internal/cybimd/database"
	"github.com/cybim/cybim-signage/internal/cybimd/errors"
)

// Repository implements campaign.Repository using PostgreSQL. Media
// items and the schedule are stored as JSONB documents; play order is
// the insertion order kept by the position column.
type Repository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewRepository creates a new PostgreSQL campaign repository
func NewRepository(db *sql.DB, logger *slog.Logger) campaign.Repository {
	return &Repository{db: db, logger: logger}
}

func (r *Repository) Create(ctx context.Context, c *v1alpha1.Campaign) error {
	const op = "CampaignRepository.Create"

	items, schedule, err := marshalDocs(c)
	if err != nil {
		return errors.NewError("STORAGE", "error encoding campaign", op, err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO campaigns (
			id, name, items, schedule, loop_alone,
			created_at, updated_at, version
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		c.ID, c.Name, items, schedule, c.Loop,
		c.CreatedAt, c.UpdatedAt, c.Version,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return errors.NewError("CONFLICT", fmt.Sprintf("campaign %q already exists", c.Name), op, errors.ErrConflict)
		}
		r.logger.Error("failed to insert campaign",
			"error", err,
			"campaignID", c.ID,
			"operation", op,
		)
		return errors.NewError("STORAGE", "error storing campaign", op, err)
	}
	return nil
}

func (r *Repository) Get(ctx context.Context, id uuid.UUID) (*v1alpha1.Campaign, error) {
	const op = "CampaignRepository.Get"

	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, items, schedule, loop_alone,
		       created_at, updated_at, version
		FROM campaigns
		WHERE id = $1
	`, id)

	c, err := scanCampaign(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewError("NOT_FOUND", fmt.Sprintf("campaign %s not found", id), op, errors.ErrNotFound)
		}
		return nil, errors.NewError("STORAGE", "error loading campaign", op, err)
	}
	return c, nil
}

func (r *Repository) List(ctx context.Context) ([]v1alpha1.Campaign, error) {
	const op = "CampaignRepository.List"

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, items, schedule, loop_alone,
		       created_at, updated_at, version
		FROM campaigns
		ORDER BY position ASC
	`)
	if err != nil {
		return nil, errors.NewError("STORAGE", "error listing campaigns", op, err)
	}
	defer rows.Close()

	var campaigns []v1alpha1.Campaign
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, errors.NewError("STORAGE", "error scanning campaign", op, err)
		}
		campaigns = append(campaigns, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewError("STORAGE", "error iterating campaigns", op, err)
	}
	return campaigns, nil
}

func (r *Repository) Save(ctx context.Context, c *v1alpha1.Campaign) error {
	const op = "CampaignRepository.Save"

	items, schedule, err := marshalDocs(c)
	if err != nil {
		return errors.NewError("STORAGE", "error encoding campaign", op, err)
	}

	return database.RunInTx(ctx, r.db, nil, func(tx *database.Tx) error {
		result, err := tx.ExecContext(ctx, `
			UPDATE campaigns
			SET name = $1,
			    items = $2,
			    schedule = $3,
			    loop_alone = $4,
			    updated_at = $5,
			    version = version + 1
			WHERE id = $6 AND version = $7
		`,
			c.Name, items, schedule, c.Loop, c.UpdatedAt,
			c.ID, c.Version,
		)
		if err != nil {
			r.logger.Error("failed to update campaign",
				"error", err,
				"campaignID", c.ID,
				"operation", op,
			)
			return errors.NewError("STORAGE", "error updating campaign", op, err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return errors.NewError("STORAGE", "error updating campaign", op, err)
		}
		if affected == 0 {
			// either missing or a concurrent writer won
			var exists bool
			if err := tx.QueryRowContext(ctx,
				`SELECT EXISTS(SELECT 1 FROM campaigns WHERE id = $1)`, c.ID,
			).Scan(&exists); err != nil {
				return errors.NewError("STORAGE", "error updating campaign", op, err)
			}
			if !exists {
				return errors.NewError("NOT_FOUND", fmt.Sprintf("campaign %s not found", c.ID), op, errors.ErrNotFound)
			}
			return errors.NewError("VERSION_MISMATCH", "campaign was modified concurrently", op, errors.ErrVersionMismatch)
		}
		c.Version++
		return nil
	})
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "CampaignRepository.Delete"

	result, err := r.db.ExecContext(ctx, `DELETE FROM campaigns WHERE id = $1`, id)
	if err != nil {
		return errors.NewError("STORAGE", "error deleting campaign", op, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return errors.NewError("STORAGE", "error deleting campaign", op, err)
	}
	if affected == 0 {
		return errors.NewError("NOT_FOUND", fmt.Sprintf("campaign %s not found", id), op, errors.ErrNotFound)
	}
	return nil
}

func marshalDocs(c *v1alpha1.Campaign) (items, schedule []byte, err error) {
	items, err = json.Marshal(c.Items)
	if err != nil {
		return nil, nil, fmt.Errorf("error marshaling items: %w", err)
	}
	schedule, err = json.Marshal(c.Schedule)
	if err != nil {
		return nil, nil, fmt.Errorf("error marshaling schedule: %w", err)
	}
	return items, schedule, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCampaign(row rowScanner) (*v1alpha1.Campaign, error) {
	var (
		c        v1alpha1.Campaign
		items    []byte
		schedule []byte
	)
	err := row.Scan(
		&c.ID, &c.Name, &items, &schedule, &c.Loop,
		&c.CreatedAt, &c.UpdatedAt, &c.Version,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &c.Items); err != nil {
		return nil, fmt.Errorf("error unmarshaling items: %w", err)
	}
	if err := json.Unmarshal(schedule, &c.Schedule); err != nil {
		return nil, fmt.Errorf("error unmarshaling schedule: %w", err)
	}
	return &c, nil
}
