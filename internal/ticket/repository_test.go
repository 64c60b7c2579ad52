package ticket

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTicketMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	closer := func() { sqlxDB.Close() }
	return repo, mock, closer
}

func TestCreateTicket(t *testing.T) {
	repo, mock, close := setupTicketMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO tickets")).
		WithArgs(3, "Tiket Masuk Candi Borobudur", "Candi Borobudur", "Magelang", int64(100000), 500).
		WillReturnRows(sqlmock.NewRows([]string{"id", "seller_id", "name", "site_name", "location", "price", "quota", "created_at"}).
			AddRow(1, 3, "Tiket Masuk Candi Borobudur", "Candi Borobudur", "Magelang", 100000, 500, time.Now()))

	ticket, err := repo.Create(context.Background(), 3, CreateTicketRequest{
		Name:     "Tiket Masuk Candi Borobudur",
		SiteName: "Candi Borobudur",
		Location: "Magelang",
		Price:    100000,
		Quota:    500,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(100000), ticket.Price)
}

func TestDecrementQuota_Exceeded(t *testing.T) {
	repo, mock, close := setupTicketMock(t)
	defer close()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE tickets SET quota = quota - $2 WHERE id = $1 AND quota >= $2")).
		WithArgs(1, 1000).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DecrementQuota(context.Background(), 1, 1000)
	assert.ErrorIs(t, err, ErrQuotaExceeded)
}

func TestDecrementQuota_Success(t *testing.T) {
	repo, mock, close := setupTicketMock(t)
	defer close()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE tickets SET quota = quota - $2")).
		WithArgs(1, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.DecrementQuota(context.Background(), 1, 2)
	assert.NoError(t, err)
}
