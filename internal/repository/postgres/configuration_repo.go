package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"docflow/internal/domain"
	"docflow/internal/port"
)

type configurationRepo struct {
	db *sqlx.DB
}

// NewConfigurationRepo creates a new PostgreSQL-backed ConfigurationRepository.
func NewConfigurationRepo(db *sqlx.DB) port.ConfigurationRepository {
	return &configurationRepo{db: db}
}

func (r *configurationRepo) Create(ctx context.Context, cfg *domain.Configuration) error {
	cfg.ID = uuid.New()
	now := time.Now().UTC()
	cfg.CreatedAt = now
	cfg.UpdatedAt = now
	if cfg.Version == 0 {
		cfg.Version = 1
	}

	query := `INSERT INTO configurations (id, kind, scope, organization_id, format_id, name,
		priority, version, is_active, rules, prompt_template, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := r.db.ExecContext(ctx, query,
		cfg.ID, cfg.Kind, cfg.Scope, cfg.OrganizationID, cfg.FormatID, cfg.Name,
		cfg.Priority, cfg.Version, cfg.IsActive, cfg.Rules, cfg.PromptTemplate,
		cfg.CreatedBy, cfg.CreatedAt, cfg.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicateActiveConfig
		}
		return fmt.Errorf("configurationRepo.Create: %w", err)
	}
	return nil
}

func (r *configurationRepo) Update(ctx context.Context, cfg *domain.Configuration) error {
	cfg.UpdatedAt = time.Now().UTC()
	query := `UPDATE configurations
		SET name = $1, priority = $2, version = version + 1, is_active = $3,
			rules = $4, prompt_template = $5, updated_at = $6
		WHERE id = $7`

	result, err := r.db.ExecContext(ctx, query,
		cfg.Name, cfg.Priority, cfg.IsActive, cfg.Rules, cfg.PromptTemplate,
		cfg.UpdatedAt, cfg.ID)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicateActiveConfig
		}
		return fmt.Errorf("configurationRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	cfg.Version++
	return nil
}

func (r *configurationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Configuration, error) {
	var cfg domain.Configuration
	err := r.db.GetContext(ctx, &cfg, "SELECT * FROM configurations WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("configurationRepo.GetByID: %w", err)
	}
	return &cfg, nil
}

func (r *configurationRepo) List(ctx context.Context, kind domain.ConfigKind, offset, limit int) ([]domain.Configuration, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM configurations WHERE kind = $1", kind)
	if err != nil {
		return nil, 0, fmt.Errorf("configurationRepo.List count: %w", err)
	}

	var cfgs []domain.Configuration
	err = r.db.SelectContext(ctx, &cfgs,
		"SELECT * FROM configurations WHERE kind = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3",
		kind, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("configurationRepo.List: %w", err)
	}
	return cfgs, total, nil
}

func (r *configurationRepo) ListActive(ctx context.Context, kind domain.ConfigKind, scope domain.ConfigScope, organizationID, formatID *uuid.UUID) ([]domain.Configuration, error) {
	// IS NOT DISTINCT FROM treats NULL identifiers as part of the scope key.
	query := `SELECT * FROM configurations
		WHERE kind = $1 AND scope = $2 AND is_active = true
		  AND organization_id IS NOT DISTINCT FROM $3
		  AND format_id IS NOT DISTINCT FROM $4
		ORDER BY priority DESC, updated_at DESC`

	var cfgs []domain.Configuration
	err := r.db.SelectContext(ctx, &cfgs, query, kind, scope, organizationID, formatID)
	if err != nil {
		return nil, fmt.Errorf("configurationRepo.ListActive: %w", err)
	}
	return cfgs, nil
}

func (r *configurationRepo) CountActive(ctx context.Context, kind domain.ConfigKind, scope domain.ConfigScope, organizationID, formatID *uuid.UUID, excludeID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM configurations
		WHERE kind = $1 AND scope = $2 AND is_active = true
		  AND organization_id IS NOT DISTINCT FROM $3
		  AND format_id IS NOT DISTINCT FROM $4
		  AND id <> $5`

	var count int
	err := r.db.GetContext(ctx, &count, query, kind, scope, organizationID, formatID, excludeID)
	if err != nil {
		return 0, fmt.Errorf("configurationRepo.CountActive: %w", err)
	}
	return count, nil
}
