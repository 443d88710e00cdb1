package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/abbasl7/e-vault/models"
)

// builder is the shared squirrel statement builder. SQLite uses ?
// placeholders, squirrel's default.
var builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

var credentialColumns = []string{
	"id",
	"master_hash",
	"salt",
	"username",
	"security_question1",
	"security_answer1_hash",
	"security_question2",
	"security_answer2_hash",
	"created_at",
	"updated_at",
}

var recordColumns = []string{
	"id",
	"category",
	"fields",
	"attachments",
	"created_at",
	"updated_at",
}

func buildSaveCredentialQuery(c models.Credential) (string, []any, error) {
	return builder.
		Insert(c.TableName()).
		Options("OR REPLACE").
		Columns(credentialColumns...).
		Values(
			c.ID,
			c.MasterHash,
			c.Salt,
			c.Username,
			c.SecurityQuestion1,
			c.SecurityAnswer1Hash,
			c.SecurityQuestion2,
			c.SecurityAnswer2Hash,
			c.CreatedAt,
			c.UpdatedAt,
		).
		ToSql()
}

func buildGetCredentialQuery() (string, []any, error) {
	return builder.
		Select(credentialColumns...).
		From(models.Credential{}.TableName()).
		Where(sq.Eq{"id": models.CredentialID}).
		ToSql()
}

func buildSaveRecordQuery(id string, category models.Category, fields, attachments string, createdAt, updatedAt int64) (string, []any, error) {
	return builder.
		Insert(models.Record{}.TableName()).
		Options("OR REPLACE").
		Columns(recordColumns...).
		Values(id, string(category), fields, attachments, createdAt, updatedAt).
		ToSql()
}

func buildGetRecordQuery(id string) (string, []any, error) {
	return builder.
		Select(recordColumns...).
		From(models.Record{}.TableName()).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func buildGetRecordsByCategoryQuery(category models.Category) (string, []any, error) {
	return builder.
		Select(recordColumns...).
		From(models.Record{}.TableName()).
		Where(sq.Eq{"category": string(category)}).
		OrderBy("created_at DESC").
		ToSql()
}

func buildGetAllRecordsQuery() (string, []any, error) {
	return builder.
		Select(recordColumns...).
		From(models.Record{}.TableName()).
		OrderBy("category", "created_at DESC").
		ToSql()
}

func buildDeleteRecordQuery(id string) (string, []any, error) {
	return builder.
		Delete(models.Record{}.TableName()).
		Where(sq.Eq{"id": id}).
		ToSql()
}
