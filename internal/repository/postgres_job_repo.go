package repository

import (
	"context"
	"database/sql"

	"github.com/hitoshi/jobtrack/internal/model"
)

// PostgresJobRepo はPostgreSQLを使用した求人リポジトリ。
type PostgresJobRepo struct {
	*postgresRepo[model.Job]
}

// NewPostgresJobRepo はPostgresJobRepoを生成する。
func NewPostgresJobRepo(db *sql.DB) *PostgresJobRepo {
	return &PostgresJobRepo{postgresRepo: newPostgresRepo(db, jobTableSpec())}
}

func jobTableSpec() tableSpec[model.Job] {
	return tableSpec[model.Job]{
		table: "jobs",
		columns: []string{
			"id", "owner_id", "title", "company", "location", "job_type",
			"description", "offers_sponsorship", "offers_relocation",
			"created_at", "updated_at",
		},
		insertCols: []string{
			"owner_id", "title", "company", "location", "job_type",
			"description", "offers_sponsorship", "offers_relocation",
			"created_at", "updated_at",
		},
		updateCols: []string{
			"title", "company", "location", "job_type", "description",
			"offers_sponsorship", "offers_relocation", "updated_at",
		},
		scanRow: func(rs rowScanner) (*model.Job, error) {
			job := &model.Job{}
			var updatedAt sql.NullTime
			err := rs.Scan(
				&job.ID, &job.OwnerID, &job.Title, &job.Company, &job.Location,
				&job.JobType, &job.Description,
				&job.OffersSponsorship, &job.OffersRelocation,
				&job.CreatedAt, &updatedAt,
			)
			if err != nil {
				return nil, err
			}
			job.UpdatedAt = nullTimeValue(updatedAt)
			return job, nil
		},
		insertArgs: func(job *model.Job) []any {
			return []any{
				job.OwnerID, job.Title, job.Company, job.Location, job.JobType,
				job.Description, job.OffersSponsorship, job.OffersRelocation,
				job.CreatedAt, job.UpdatedAt,
			}
		},
		updateArgs: func(job *model.Job) []any {
			return []any{
				job.Title, job.Company, job.Location, job.JobType, job.Description,
				job.OffersSponsorship, job.OffersRelocation, job.UpdatedAt,
			}
		},
		id:    func(job *model.Job) int64 { return job.ID },
		setID: func(job *model.Job, id int64) { job.ID = id },
	}
}

// ListByOwner は指定オーナーの求人一覧を返す。
func (r *PostgresJobRepo) ListByOwner(ctx context.Context, ownerID string) ([]*model.Job, error) {
	return r.query(ctx, "WHERE owner_id = $1 ORDER BY id", ownerID)
}
