package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/jobtrack/internal/model"
)

// PostgresNoteRepo はPostgreSQLを使用した応募ノートリポジトリ。
type PostgresNoteRepo struct {
	*postgresRepo[model.ApplicationNote]
}

// NewPostgresNoteRepo はPostgresNoteRepoを生成する。
func NewPostgresNoteRepo(db *sql.DB) *PostgresNoteRepo {
	return &PostgresNoteRepo{postgresRepo: newPostgresRepo(db, noteTableSpec())}
}

func noteTableSpec() tableSpec[model.ApplicationNote] {
	return tableSpec[model.ApplicationNote]{
		table: "application_notes",
		columns: []string{
			"id", "owner_id", "application_id", "text", "created_at", "updated_at",
		},
		insertCols: []string{
			"owner_id", "application_id", "text", "created_at", "updated_at",
		},
		updateCols: []string{
			"text", "updated_at",
		},
		scanRow: func(rs rowScanner) (*model.ApplicationNote, error) {
			note := &model.ApplicationNote{}
			var updatedAt sql.NullTime
			err := rs.Scan(
				&note.ID, &note.OwnerID, &note.ApplicationID, &note.Text,
				&note.CreatedAt, &updatedAt,
			)
			if err != nil {
				return nil, err
			}
			note.UpdatedAt = nullTimeValue(updatedAt)
			return note, nil
		},
		insertArgs: func(note *model.ApplicationNote) []any {
			return []any{note.OwnerID, note.ApplicationID, note.Text, note.CreatedAt, note.UpdatedAt}
		},
		updateArgs: func(note *model.ApplicationNote) []any {
			return []any{note.Text, note.UpdatedAt}
		},
		id:    func(note *model.ApplicationNote) int64 { return note.ID },
		setID: func(note *model.ApplicationNote, id int64) { note.ID = id },
	}
}

// CreateWithApplicationCheck は親応募の存在確認とノートの作成を同一トランザクションで行う。
// 確認と挿入の間に親が削除される競合は、親行の共有ロックにより防止される。
func (r *PostgresNoteRepo) CreateWithApplicationCheck(ctx context.Context, note *model.ApplicationNote) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("トランザクションの開始に失敗しました: %w", err)
	}
	defer tx.Rollback()

	var applicationID int64
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM job_applications WHERE id = $1 AND owner_id = $2 FOR SHARE`,
		note.ApplicationID, note.OwnerID,
	).Scan(&applicationID)
	if err == sql.ErrNoRows {
		return ErrParentNotFound
	}
	if err != nil {
		return fmt.Errorf("親応募の確認に失敗しました: %w", err)
	}

	var id int64
	err = tx.QueryRowContext(ctx,
		`INSERT INTO application_notes (owner_id, application_id, text, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		note.OwnerID, note.ApplicationID, note.Text, note.CreatedAt, note.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("ノートの作成に失敗しました: %w", err)
	}
	note.ID = id

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("トランザクションのコミットに失敗しました: %w", err)
	}
	return nil
}

// ListByApplication は指定オーナー・指定応募のノート一覧を返す。
func (r *PostgresNoteRepo) ListByApplication(ctx context.Context, ownerID string, applicationID int64) ([]*model.ApplicationNote, error) {
	return r.query(ctx, "WHERE owner_id = $1 AND application_id = $2 ORDER BY id", ownerID, applicationID)
}
