package repository

import (
	"context"
	"database/sql"

	"github.com/hitoshi/jobtrack/internal/model"
)

// PostgresPreferencesRepo はPostgreSQLを使用した求職条件リポジトリ。
type PostgresPreferencesRepo struct {
	*postgresRepo[model.Preferences]
}

// NewPostgresPreferencesRepo はPostgresPreferencesRepoを生成する。
func NewPostgresPreferencesRepo(db *sql.DB) *PostgresPreferencesRepo {
	return &PostgresPreferencesRepo{postgresRepo: newPostgresRepo(db, preferencesTableSpec())}
}

func preferencesTableSpec() tableSpec[model.Preferences] {
	return tableSpec[model.Preferences]{
		table: "preferences",
		columns: []string{
			"id", "owner_id", "min_salary", "max_salary", "job_type",
			"needs_sponsorship", "needs_relocation", "created_at", "updated_at",
		},
		insertCols: []string{
			"owner_id", "min_salary", "max_salary", "job_type",
			"needs_sponsorship", "needs_relocation", "created_at", "updated_at",
		},
		updateCols: []string{
			"min_salary", "max_salary", "job_type",
			"needs_sponsorship", "needs_relocation", "updated_at",
		},
		scanRow: func(rs rowScanner) (*model.Preferences, error) {
			prefs := &model.Preferences{}
			var updatedAt sql.NullTime
			err := rs.Scan(
				&prefs.ID, &prefs.OwnerID, &prefs.Salary.Min, &prefs.Salary.Max,
				&prefs.JobType, &prefs.NeedsSponsorship, &prefs.NeedsRelocation,
				&prefs.CreatedAt, &updatedAt,
			)
			if err != nil {
				return nil, err
			}
			prefs.UpdatedAt = nullTimeValue(updatedAt)
			return prefs, nil
		},
		insertArgs: func(prefs *model.Preferences) []any {
			return []any{
				prefs.OwnerID, prefs.Salary.Min, prefs.Salary.Max, prefs.JobType,
				prefs.NeedsSponsorship, prefs.NeedsRelocation,
				prefs.CreatedAt, prefs.UpdatedAt,
			}
		},
		updateArgs: func(prefs *model.Preferences) []any {
			return []any{
				prefs.Salary.Min, prefs.Salary.Max, prefs.JobType,
				prefs.NeedsSponsorship, prefs.NeedsRelocation, prefs.UpdatedAt,
			}
		},
		id:    func(prefs *model.Preferences) int64 { return prefs.ID },
		setID: func(prefs *model.Preferences, id int64) { prefs.ID = id },
	}
}

// FindFirstByOwner は指定オーナーの求職条件のうちID最小の1件を返す。見つからない場合はnilを返す。
func (r *PostgresPreferencesRepo) FindFirstByOwner(ctx context.Context, ownerID string) (*model.Preferences, error) {
	results, err := r.query(ctx, "WHERE owner_id = $1 ORDER BY id LIMIT 1", ownerID)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}
