package leads

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PgxPool is the slice of pgxpool.Pool the repository needs.
type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores leads in the relational database.
type PostgresRepository struct {
	pool PgxPool
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool PgxPool) *PostgresRepository {
	if pool == nil {
		panic("leads: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

// Create inserts a new row.
func (r *PostgresRepository) Create(ctx context.Context, req *CreateLeadRequest) (*Lead, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	id := uuid.New()
	publicID := fmt.Sprintf("LEAD-%d", time.Now().UnixMilli())
	query := `
		INSERT INTO leads (id, public_id, brand, name, email, phone, zip, service_type, address,
			utm_source, utm_medium, utm_campaign, session_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at
	`
	var createdAt time.Time
	if err := r.pool.QueryRow(ctx, query,
		id,
		publicID,
		req.Brand,
		req.Name,
		req.Email,
		req.Phone,
		req.Zip,
		req.ServiceType,
		req.Address,
		req.UTMSource,
		req.UTMMedium,
		req.UTMCampaign,
		req.SessionID,
	).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("leads: insert failed: %w", err)
	}

	return &Lead{
		ID:          id.String(),
		PublicID:    publicID,
		Brand:       req.Brand,
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Zip:         req.Zip,
		ServiceType: req.ServiceType,
		Address:     req.Address,
		UTMSource:   req.UTMSource,
		UTMMedium:   req.UTMMedium,
		UTMCampaign: req.UTMCampaign,
		SessionID:   req.SessionID,
		CreatedAt:   createdAt,
	}, nil
}

// GetByID fetches a lead by its internal id.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Lead, error) {
	query := `
		SELECT id, public_id, brand, name, email, phone, zip, service_type, address,
			utm_source, utm_medium, utm_campaign, session_id, created_at
		FROM leads
		WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)
	lead, err := scanLead(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("leads: select failed: %w", err)
	}
	return lead, nil
}

// ListByBrand fetches a page of a brand's leads, newest first.
func (r *PostgresRepository) ListByBrand(ctx context.Context, brandID string, filter ListLeadsFilter) ([]*Lead, error) {
	query := `
		SELECT id, public_id, brand, name, email, phone, zip, service_type, address,
			utm_source, utm_medium, utm_campaign, session_id, created_at
		FROM leads
		WHERE brand = $1
			AND ($2 = '' OR service_type = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, query, brandID, filter.ServiceType, limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("leads: list failed: %w", err)
	}
	defer rows.Close()

	var out []*Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("leads: scan failed: %w", err)
		}
		out = append(out, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("leads: list failed: %w", err)
	}
	return out, nil
}

func scanLead(row pgx.Row) (*Lead, error) {
	var lead Lead
	if err := row.Scan(
		&lead.ID,
		&lead.PublicID,
		&lead.Brand,
		&lead.Name,
		&lead.Email,
		&lead.Phone,
		&lead.Zip,
		&lead.ServiceType,
		&lead.Address,
		&lead.UTMSource,
		&lead.UTMMedium,
		&lead.UTMCampaign,
		&lead.SessionID,
		&lead.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &lead, nil
}
