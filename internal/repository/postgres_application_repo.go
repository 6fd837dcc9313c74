package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/jobtrack/internal/model"
)

// PostgresApplicationRepo はPostgreSQLを使用した応募リポジトリ。
type PostgresApplicationRepo struct {
	*postgresRepo[model.JobApplication]
}

// NewPostgresApplicationRepo はPostgresApplicationRepoを生成する。
func NewPostgresApplicationRepo(db *sql.DB) *PostgresApplicationRepo {
	return &PostgresApplicationRepo{postgresRepo: newPostgresRepo(db, applicationTableSpec())}
}

func applicationTableSpec() tableSpec[model.JobApplication] {
	return tableSpec[model.JobApplication]{
		table: "job_applications",
		columns: []string{
			"id", "owner_id", "job_id", "status", "created_at", "updated_at",
		},
		insertCols: []string{
			"owner_id", "job_id", "status", "created_at", "updated_at",
		},
		updateCols: []string{
			"status", "updated_at",
		},
		scanRow: func(rs rowScanner) (*model.JobApplication, error) {
			app := &model.JobApplication{}
			var updatedAt sql.NullTime
			err := rs.Scan(
				&app.ID, &app.OwnerID, &app.JobID, &app.Status,
				&app.CreatedAt, &updatedAt,
			)
			if err != nil {
				return nil, err
			}
			app.UpdatedAt = nullTimeValue(updatedAt)
			return app, nil
		},
		insertArgs: func(app *model.JobApplication) []any {
			return []any{app.OwnerID, app.JobID, app.Status, app.CreatedAt, app.UpdatedAt}
		},
		updateArgs: func(app *model.JobApplication) []any {
			return []any{app.Status, app.UpdatedAt}
		},
		id:    func(app *model.JobApplication) int64 { return app.ID },
		setID: func(app *model.JobApplication, id int64) { app.ID = id },
	}
}

// CreateWithJobCheck は親求人の存在確認と応募の作成を同一トランザクションで行う。
// 確認と挿入の間に親が削除される競合は、親行の共有ロックにより防止される。
func (r *PostgresApplicationRepo) CreateWithJobCheck(ctx context.Context, application *model.JobApplication) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("トランザクションの開始に失敗しました: %w", err)
	}
	defer tx.Rollback()

	var jobID int64
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM jobs WHERE id = $1 AND owner_id = $2 FOR SHARE`,
		application.JobID, application.OwnerID,
	).Scan(&jobID)
	if err == sql.ErrNoRows {
		return ErrParentNotFound
	}
	if err != nil {
		return fmt.Errorf("親求人の確認に失敗しました: %w", err)
	}

	var id int64
	err = tx.QueryRowContext(ctx,
		`INSERT INTO job_applications (owner_id, job_id, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		application.OwnerID, application.JobID, application.Status,
		application.CreatedAt, application.UpdatedAt,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("応募の作成に失敗しました: %w", err)
	}
	application.ID = id

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("トランザクションのコミットに失敗しました: %w", err)
	}
	return nil
}

// ListByOwner は指定オーナーの応募一覧を返す。
func (r *PostgresApplicationRepo) ListByOwner(ctx context.Context, ownerID string) ([]*model.JobApplication, error) {
	return r.query(ctx, "WHERE owner_id = $1 ORDER BY id", ownerID)
}

// ListByJob は指定オーナー・指定求人の応募一覧を返す。
func (r *PostgresApplicationRepo) ListByJob(ctx context.Context, ownerID string, jobID int64) ([]*model.JobApplication, error) {
	return r.query(ctx, "WHERE owner_id = $1 AND job_id = $2 ORDER BY id", ownerID, jobID)
}
