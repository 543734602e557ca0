package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"learnhr.service/internal/core/model"
)

// PolicyRepo stores the single company policy row in PostgreSQL.
// The allow-list is kept as a JSONB column.
type PolicyRepo struct {
	DB *sql.DB
}

// NewPolicyRepo create new instance
func NewPolicyRepo(db *sql.DB) PolicyRepository {
	return &PolicyRepo{DB: db}
}

// Get returns the active policy, or (nil, nil) when none has been configured yet.
func (r *PolicyRepo) Get(ctx context.Context) (*model.CompanyPolicy, error) {
	p := &model.CompanyPolicy{}
	var networks []byte

	query := `SELECT work_start, work_end, late_threshold_minutes, working_days_per_month,
                     allowed_networks, updated_at
              FROM company_policy
              WHERE id = 1`

	row := r.DB.QueryRowContext(ctx, query)
	err := row.Scan(&p.WorkStart, &p.WorkEnd, &p.LateThresholdMinutes, &p.WorkingDaysPerMonth,
		&networks, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(networks, &p.AllowedNetworks); err != nil {
		return nil, fmt.Errorf("failed to decode allowed networks: %w", err)
	}
	return p, nil
}

// Save upserts the policy row. Only administrators reach this path.
func (r *PolicyRepo) Save(ctx context.Context, p *model.CompanyPolicy) error {
	networks, err := json.Marshal(p.AllowedNetworks)
	if err != nil {
		return fmt.Errorf("failed to encode allowed networks: %w", err)
	}

	query := `INSERT INTO company_policy
                  (id, work_start, work_end, late_threshold_minutes, working_days_per_month, allowed_networks, updated_at)
              VALUES (1, $1, $2, $3, $4, $5, NOW())
              ON CONFLICT (id) DO UPDATE
              SET work_start = EXCLUDED.work_start,
                  work_end = EXCLUDED.work_end,
                  late_threshold_minutes = EXCLUDED.late_threshold_minutes,
                  working_days_per_month = EXCLUDED.working_days_per_month,
                  allowed_networks = EXCLUDED.allowed_networks,
                  updated_at = NOW()`

	_, err = r.DB.ExecContext(ctx, query, p.WorkStart, p.WorkEnd, p.LateThresholdMinutes,
		p.WorkingDaysPerMonth, networks)
	return err
}
