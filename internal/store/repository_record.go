package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abbasl7/e-vault/internal/logger"
	"github.com/abbasl7/e-vault/models"
)

type recordRepository struct {
	db     *DB
	logger *logger.Logger
}

func NewRecordRepository(db *DB, logger *logger.Logger) RecordRepository {
	return &recordRepository{db: db, logger: logger}
}

func (r *recordRepository) SaveRecord(ctx context.Context, record models.Record) error {
	log := logger.FromContext(ctx)

	fields, err := json.Marshal(record.Fields)
	if err != nil {
		return fmt.Errorf("encode record fields: %w", err)
	}
	attachments, err := json.Marshal(record.Attachments)
	if err != nil {
		return fmt.Errorf("encode record attachments: %w", err)
	}

	query, args, err := buildSaveRecordQuery(
		record.ID,
		record.Category,
		string(fields),
		string(attachments),
		record.CreatedAt,
		record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "recordRepository.SaveRecord").
			Str("record_id", record.ID).
			Msg("failed to execute upsert for record")
		return fmt.Errorf("failed to save record %s: %w", record.ID, err)
	}

	return nil
}

func (r *recordRepository) GetRecord(ctx context.Context, id string) (models.Record, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetRecordQuery(id)
	if err != nil {
		return models.Record{}, fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	record, err := scanRecord(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Record{}, ErrRecordNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.GetRecord").
			Str("record_id", id).
			Msg("failed to scan record row")
		return models.Record{}, err
	}

	return record, nil
}

func (r *recordRepository) GetRecordsByCategory(ctx context.Context, category models.Category) ([]models.Record, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetRecordsByCategoryQuery(category)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.GetRecordsByCategory").
			Str("category", string(category)).
			Msg("failed to query records")
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var records []models.Record
	for rows.Next() {
		record, scanErr := scanRecord(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "recordRepository.GetRecordsByCategory").
				Msg("failed to scan record row")
			return nil, scanErr
		}
		records = append(records, record)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("error iterating record rows: %w", rowsErr)
	}

	return records, nil
}

func (r *recordRepository) GetAllRecords(ctx context.Context) (map[models.Category][]models.Record, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetAllRecordsQuery()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.GetAllRecords").
			Msg("failed to query all records")
		return nil, fmt.Errorf("failed to query all records: %w", err)
	}
	defer rows.Close()

	grouped := make(map[models.Category][]models.Record)
	for rows.Next() {
		record, scanErr := scanRecord(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "recordRepository.GetAllRecords").
				Msg("failed to scan record row")
			return nil, scanErr
		}
		grouped[record.Category] = append(grouped[record.Category], record)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("error iterating record rows: %w", rowsErr)
	}

	return grouped, nil
}

func (r *recordRepository) DeleteRecord(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteRecordQuery(id)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.DeleteRecord").
			Str("record_id", id).
			Msg("failed to delete record")
		return fmt.Errorf("failed to delete record %s: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrRecordNotFound
	}

	return nil
}

// scannable covers *sql.Row and *sql.Rows.
type scannable interface {
	Scan(dest ...any) error
}

func scanRecord(row scannable) (models.Record, error) {
	var (
		record          models.Record
		category        string
		fieldsJSON      string
		attachmentsJSON string
	)

	err := row.Scan(
		&record.ID,
		&category,
		&fieldsJSON,
		&attachmentsJSON,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Record{}, err
		}
		return models.Record{}, fmt.Errorf("failed to scan record row: %w", err)
	}

	record.Category = models.Category(category)
	if err = json.Unmarshal([]byte(fieldsJSON), &record.Fields); err != nil {
		return models.Record{}, fmt.Errorf("decode record fields: %w", err)
	}
	if err = json.Unmarshal([]byte(attachmentsJSON), &record.Attachments); err != nil {
		return models.Record{}, fmt.Errorf("decode record attachments: %w", err)
	}

	return record, nil
}
