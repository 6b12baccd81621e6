package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/finance_tracker/internal/models"
	"github.com/SscSPs/finance_tracker/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const recordColumns = `record_id, user_id, kind, amount, currency_code, record_date,
	category, source, description, created_at, created_by, last_updated_at, last_updated_by`

// PgxRecordRepository stores incomes and expenses.
type PgxRecordRepository struct {
	BaseRepository
}

func newPgxRecordRepository(db *pgxpool.Pool) portsrepo.RecordRepositoryFacade {
	return &PgxRecordRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.RecordRepositoryFacade = (*PgxRecordRepository)(nil)

func scanRecord(row pgx.Row) (models.MonetaryRecord, error) {
	var m models.MonetaryRecord
	err := row.Scan(
		&m.RecordID, &m.UserID, &m.Kind, &m.Amount, &m.CurrencyCode, &m.RecordDate,
		&m.Category, &m.Source, &m.Description,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxRecordRepository) SaveRecord(ctx context.Context, record domain.MonetaryRecord) error {
	m := mapping.ToModelRecord(record)
	query := `INSERT INTO records (` + recordColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);`
	_, err := r.Pool.Exec(ctx, query,
		m.RecordID, m.UserID, m.Kind, m.Amount, m.CurrencyCode, m.RecordDate,
		m.Category, m.Source, m.Description,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save record: %w", err)
	}
	return nil
}

func (r *PgxRecordRepository) FindRecordByID(ctx context.Context, recordID string) (*domain.MonetaryRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM records WHERE record_id = $1;`
	m, err := scanRecord(r.Pool.QueryRow(ctx, query, recordID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("record " + recordID + " not found")
		}
		return nil, fmt.Errorf("failed to find record %s: %w", recordID, err)
	}
	d := mapping.ToDomainRecord(m)
	return &d, nil
}

// buildListRecordsQuery turns a filter into a keyset-paginated query ordered
// by (record_date, created_at) descending.
func buildListRecordsQuery(filter domain.RecordFilter) (string, []interface{}) {
	query := `SELECT ` + recordColumns + ` FROM records WHERE user_id = $1`
	args := []interface{}{filter.UserID}

	if filter.Kind != nil {
		args = append(args, string(*filter.Kind))
		query += " AND kind = $" + strconv.Itoa(len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		query += " AND record_date >= $" + strconv.Itoa(len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += " AND record_date < $" + strconv.Itoa(len(args))
	}
	if filter.AfterDate != nil && filter.AfterCreatedAt != nil {
		args = append(args, *filter.AfterDate, *filter.AfterCreatedAt)
		query += " AND (record_date, created_at) < ($" + strconv.Itoa(len(args)-1) + ", $" + strconv.Itoa(len(args)) + ")"
	}

	query += " ORDER BY record_date DESC, created_at DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += " LIMIT $" + strconv.Itoa(len(args))
	}
	return query + ";", args
}

func (r *PgxRecordRepository) ListRecords(ctx context.Context, filter domain.RecordFilter) ([]domain.MonetaryRecord, error) {
	query, args := buildListRecordsQuery(filter)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query records for user "+filter.UserID, err)
	}
	defer rows.Close()

	modelRecords, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.MonetaryRecord, error) {
		return scanRecord(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan records: %w", err)
	}
	return mapping.ToDomainRecordSlice(modelRecords), nil
}
