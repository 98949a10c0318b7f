// Package postgres implements the settings repository using PostgreSQL
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/cybim/cybim-signage/api/types/v1alpha1"
	"github.com/cybim/cybim-signage/internal/cybimd/errors"
	"github.com/cybim/cybim-signage/internal/cybimd/settings"
)

// Repository stores the single playback settings record as a JSONB
// document
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new PostgreSQL settings repository
func NewRepository(db *sql.DB) settings.Repository {
	return &Repository{db: db}
}

func (r *Repository) Load(ctx context.Context) (v1alpha1.PlaybackSettings, bool, error) {
	const op = "SettingsRepository.Load"

	var doc []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT settings FROM playback_settings WHERE id = TRUE`,
	).Scan(&doc)
	if err == sql.ErrNoRows {
		return v1alpha1.PlaybackSettings{}, false, nil
	}
	if err != nil {
		return v1alpha1.PlaybackSettings{}, false, errors.NewError("STORAGE", "error loading settings", op, err)
	}

	var s v1alpha1.PlaybackSettings
	if err := json.Unmarshal(doc, &s); err != nil {
		return v1alpha1.PlaybackSettings{}, false, errors.NewError("STORAGE", "error decoding settings", op, err)
	}
	return s, true, nil
}

func (r *Repository) Save(ctx context.Context, s v1alpha1.PlaybackSettings) error {
	const op = "SettingsRepository.Save"

	doc, err := json.Marshal(s)
	if err != nil {
		return errors.NewError("STORAGE", "error encoding settings", op, err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO playback_settings (id, settings, updated_at)
		VALUES (TRUE, $1, $2)
		ON CONFLICT (id) DO UPDATE
		SET settings = EXCLUDED.settings,
		    updated_at = EXCLUDED.updated_at
	`, doc, time.Now())
	if err != nil {
		return errors.NewError("STORAGE", "error storing settings", op, err)
	}
	return nil
}
