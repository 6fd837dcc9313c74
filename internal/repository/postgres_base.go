package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
)

// rowScanner はsql.Rowとsql.Rowsの共通スキャンインターフェース。
type rowScanner interface {
	Scan(dest ...any) error
}

// tableSpec は集約型Tとテーブルの対応を記述する。
// 汎用リポジトリ実装はこの記述だけを頼りにSQLを組み立てる。
type tableSpec[T any] struct {
	table      string                        // テーブル名
	columns    []string                      // SELECT対象の全列（id先頭）
	insertCols []string                      // INSERT対象の列（id除く）
	updateCols []string                      // UPDATE対象の列（id・owner_id・created_at除く）
	scanRow    func(rs rowScanner) (*T, error)
	insertArgs func(e *T) []any
	updateArgs func(e *T) []any
	id         func(e *T) int64
	setID      func(e *T, id int64)
}

// postgresRepo はRepository[T]のPostgreSQL実装。集約ごとにtableSpecを与えて生成する。
type postgresRepo[T any] struct {
	db   *sql.DB
	spec tableSpec[T]

	selectQuery string
	insertQuery string
	updateQuery string
}

func newPostgresRepo[T any](db *sql.DB, spec tableSpec[T]) *postgresRepo[T] {
	return &postgresRepo[T]{
		db:          db,
		spec:        spec,
		selectQuery: fmt.Sprintf("SELECT %s FROM %s", strings.Join(spec.columns, ", "), spec.table),
		insertQuery: fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id",
			spec.table, strings.Join(spec.insertCols, ", "), placeholders(1, len(spec.insertCols))),
		updateQuery: fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d",
			spec.table, setClause(spec.updateCols), len(spec.updateCols)+1),
	}
}

// placeholders は$start〜$start+n-1のプレースホルダ列を生成する。
func placeholders(start, n int) string {
	parts := make([]string, n)
	for i := 0; i < n; i++ {
		parts[i] = fmt.Sprintf("$%d", start+i)
	}
	return strings.Join(parts, ", ")
}

// setClause は "col1 = $1, col2 = $2, ..." 形式のSET句を生成する。
func setClause(cols []string) string {
	parts := make([]string, len(cols))
	for i, col := range cols {
		parts[i] = fmt.Sprintf("%s = $%d", col, i+1)
	}
	return strings.Join(parts, ", ")
}

// Add はエンティティを1件永続化し、採番されたIDを書き戻す。
func (r *postgresRepo[T]) Add(ctx context.Context, entity *T) error {
	var id int64
	err := r.db.QueryRowContext(ctx, r.insertQuery, r.spec.insertArgs(entity)...).Scan(&id)
	if err != nil {
		return fmt.Errorf("%sの作成に失敗しました: %w", r.spec.table, err)
	}
	r.spec.setID(entity, id)
	return nil
}

// AddRange は複数エンティティを同一トランザクションで永続化する。
func (r *postgresRepo[T]) AddRange(ctx context.Context, entities []*T) error {
	if len(entities) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("トランザクションの開始に失敗しました: %w", err)
	}
	defer tx.Rollback()

	for _, entity := range entities {
		var id int64
		if err := tx.QueryRowContext(ctx, r.insertQuery, r.spec.insertArgs(entity)...).Scan(&id); err != nil {
			return fmt.Errorf("%sの一括作成に失敗しました: %w", r.spec.table, err)
		}
		r.spec.setID(entity, id)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("トランザクションのコミットに失敗しました: %w", err)
	}
	return nil
}

// Remove はエンティティを1件削除する。
func (r *postgresRepo[T]) Remove(ctx context.Context, entity *T) error {
	_, err := r.db.ExecContext(ctx,
		fmt.Sprintf("DELETE FROM %s WHERE id = $1", r.spec.table), r.spec.id(entity))
	if err != nil {
		return fmt.Errorf("%sの削除に失敗しました: %w", r.spec.table, err)
	}
	return nil
}

// RemoveRange は複数エンティティを同一トランザクションで削除する。
func (r *postgresRepo[T]) RemoveRange(ctx context.Context, entities []*T) error {
	if len(entities) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("トランザクションの開始に失敗しました: %w", err)
	}
	defer tx.Rollback()

	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", r.spec.table)
	for _, entity := range entities {
		if _, err := tx.ExecContext(ctx, query, r.spec.id(entity)); err != nil {
			return fmt.Errorf("%sの一括削除に失敗しました: %w", r.spec.table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("トランザクションのコミットに失敗しました: %w", err)
	}
	return nil
}

// FindByID は指定IDのエンティティを取得する。見つからない場合はnilを返す。
func (r *postgresRepo[T]) FindByID(ctx context.Context, id int64) (*T, error) {
	row := r.db.QueryRowContext(ctx, r.selectQuery+" WHERE id = $1", id)
	entity, err := r.spec.scanRow(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%sの取得に失敗しました: %w", r.spec.table, err)
	}
	return entity, nil
}

// ListAll は全エンティティをID昇順で返す。
func (r *postgresRepo[T]) ListAll(ctx context.Context) ([]*T, error) {
	rows, err := r.db.QueryContext(ctx, r.selectQuery+" ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("%sの一覧取得に失敗しました: %w", r.spec.table, err)
	}
	defer rows.Close()

	return r.collect(rows)
}

// Find は述語を満たすエンティティを返す。
// データ量が小さい前提のもと、全件取得後にフィルタする。
func (r *postgresRepo[T]) Find(ctx context.Context, pred func(*T) bool) ([]*T, error) {
	all, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]*T, 0, len(all))
	for _, entity := range all {
		if pred(entity) {
			matched = append(matched, entity)
		}
	}
	return matched, nil
}

// Update はエンティティのインプレース変更を永続化する。
func (r *postgresRepo[T]) Update(ctx context.Context, entity *T) error {
	args := append(r.spec.updateArgs(entity), r.spec.id(entity))
	_, err := r.db.ExecContext(ctx, r.updateQuery, args...)
	if err != nil {
		return fmt.Errorf("%sの更新に失敗しました: %w", r.spec.table, err)
	}
	return nil
}

// query は追加のWHERE句付きでエンティティ一覧を取得する。集約別リポジトリの絞り込み用。
func (r *postgresRepo[T]) query(ctx context.Context, where string, args ...any) ([]*T, error) {
	rows, err := r.db.QueryContext(ctx, r.selectQuery+" "+where, args...)
	if err != nil {
		return nil, fmt.Errorf("%sの検索に失敗しました: %w", r.spec.table, err)
	}
	defer rows.Close()

	return r.collect(rows)
}

func (r *postgresRepo[T]) collect(rows *sql.Rows) ([]*T, error) {
	var entities []*T
	for rows.Next() {
		entity, err := r.spec.scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("%sの行スキャンに失敗しました: %w", r.spec.table, err)
		}
		entities = append(entities, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%sの行イテレーションに失敗しました: %w", r.spec.table, err)
	}
	return entities, nil
}

// isUniqueViolation はPostgreSQLの一意制約違反（SQLSTATE 23505）かどうかを判定する。
func isUniqueViolation(err error) bool {
	pqErr, ok := err.(*pq.Error)
	return ok && pqErr.Code == "23505"
}

// nullTimeValue はsql.NullTimeを*time.Timeに変換する。
func nullTimeValue(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	return &t.Time
}
