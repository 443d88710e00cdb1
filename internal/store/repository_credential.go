package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/abbasl7/e-vault/internal/logger"
	"github.com/abbasl7/e-vault/models"
)

type credentialRepository struct {
	db     *DB
	logger *logger.Logger
}

func NewCredentialRepository(db *DB, logger *logger.Logger) CredentialRepository {
	return &credentialRepository{db: db, logger: logger}
}

func (r *credentialRepository) GetCredential(ctx context.Context) (models.Credential, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetCredentialQuery()
	if err != nil {
		return models.Credential{}, fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	var c models.Credential
	row := r.db.QueryRowContext(ctx, query, args...)
	err = row.Scan(
		&c.ID,
		&c.MasterHash,
		&c.Salt,
		&c.Username,
		&c.SecurityQuestion1,
		&c.SecurityAnswer1Hash,
		&c.SecurityQuestion2,
		&c.SecurityAnswer2Hash,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Credential{}, ErrCredentialNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "credentialRepository.GetCredential").
			Msg("failed to scan credential row")
		return models.Credential{}, fmt.Errorf("failed to scan credential row: %w", err)
	}

	return c, nil
}

func (r *credentialRepository) SaveCredential(ctx context.Context, credential models.Credential) error {
	log := logger.FromContext(ctx)

	query, args, err := buildSaveCredentialQuery(credential)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "credentialRepository.SaveCredential").
			Msg("failed to execute upsert for credential")
		return fmt.Errorf("failed to save credential: %w", err)
	}

	return nil
}
