package leads

import (
	"context"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &PostgresRepository{pool: mock}
	reqBody := validRequest()

	mock.ExpectQuery("INSERT INTO leads").
		WithArgs(
			pgxmock.AnyArg(), pgxmock.AnyArg(),
			"safehaven", "Jane Doe", "jane@example.com", "(919) 555-0142",
			"27701", "Home Security System", "123 Main St, Durham, NC",
			"google", "cpc", "spring", "sess_1756600000000_abc123def",
		).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now().UTC()))

	lead, err := repo.Create(context.Background(), &reqBody)
	require.NoError(t, err)
	assert.Regexp(t, `^LEAD-\d+$`, lead.PublicID)
	assert.Equal(t, "safehaven", lead.Brand)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_CreateValidates(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &PostgresRepository{pool: mock}
	reqBody := validRequest()
	reqBody.Name = ""

	_, err = repo.Create(context.Background(), &reqBody)
	assert.ErrorIs(t, err, ErrInvalidName)
}

func TestPostgresRepository_ListByBrand(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &PostgresRepository{pool: mock}
	now := time.Now().UTC()

	cols := []string{
		"id", "public_id", "brand", "name", "email", "phone", "zip", "service_type",
		"address", "utm_source", "utm_medium", "utm_campaign", "session_id", "created_at",
	}
	mock.ExpectQuery("SELECT (.+) FROM leads").
		WithArgs("safehaven", "", 50, 0).
		WillReturnRows(pgxmock.NewRows(cols).
			AddRow("id-1", "LEAD-1", "safehaven", "Jane Doe", "jane@example.com", "(919) 555-0142",
				"27701", "Home Security System", "123 Main St", "direct", "", "", "sess_1", now))

	got, err := repo.ListByBrand(context.Background(), "safehaven", ListLeadsFilter{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "LEAD-1", got[0].PublicID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
