// Package job は求人管理のドメインロジックを提供する。
package job

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hitoshi/jobtrack/internal/metrics"
	"github.com/hitoshi/jobtrack/internal/model"
	"github.com/hitoshi/jobtrack/internal/repository"
)

const aggregate = "job"

// Service は求人管理のサービス層。
// 求人の作成・更新・削除・取得のビジネスルールを所有する。
type Service struct {
	repo     repository.JobRepository
	recorder metrics.Recorder
}

// NewService はServiceの新しいインスタンスを生成する。recorderはnilでもよい。
func NewService(repo repository.JobRepository, recorder metrics.Recorder) *Service {
	return &Service{
		repo:     repo,
		recorder: recorder,
	}
}

// CreateParams は求人作成の入力。
type CreateParams struct {
	Title             string
	Company           string
	Location          string
	JobType           string
	Description       string
	OffersSponsorship bool
	OffersRelocation  bool
}

// UpdateParams は求人の部分更新の入力。
// nilのフィールドは変更されない。Title・Companyに空白のみの値を指定すると
// バリデーションエラーとなる。Location・Descriptionは空文字列でクリアできる。
type UpdateParams struct {
	Title             *string
	Company           *string
	Location          *string
	JobType           *string
	Description       *string
	OffersSponsorship *bool
	OffersRelocation  *bool
}

// Create は求人を検証して作成する。
// Title・Companyは前後の空白を除去したうえで必須。ストアへのアクセス前に
// すべてのバリデーションが完了する。
func (s *Service) Create(ctx context.Context, ownerID string, p CreateParams) (job *model.Job, err error) {
	start := time.Now()
	defer func() { s.observe("create", start, err) }()

	if strings.TrimSpace(ownerID) == "" {
		return nil, model.NewEmptyOwnerError()
	}

	title := strings.TrimSpace(p.Title)
	if title == "" {
		return nil, model.NewRequiredFieldError("title")
	}

	company := strings.TrimSpace(p.Company)
	if company == "" {
		return nil, model.NewRequiredFieldError("company")
	}

	jobType, err := model.ParseJobType(p.JobType)
	if err != nil {
		return nil, err
	}

	job = &model.Job{
		Entity: model.Entity{
			OwnerID:   ownerID,
			CreatedAt: time.Now(),
		},
		Title:             title,
		Company:           company,
		Location:          p.Location,
		JobType:           jobType,
		Description:       p.Description,
		OffersSponsorship: p.OffersSponsorship,
		OffersRelocation:  p.OffersRelocation,
	}

	if err = s.repo.Add(ctx, job); err != nil {
		return nil, fmt.Errorf("求人の作成に失敗しました: %w", err)
	}

	slog.Info("求人を作成しました",
		slog.Int64("job_id", job.ID),
		slog.String("owner_id", ownerID),
		slog.String("company", company),
	)

	return job, nil
}

// Update は求人を部分更新する。
// 指定されたフィールドのみを上書きし、最終更新日時を進める。
func (s *Service) Update(ctx context.Context, ownerID string, jobID int64, p UpdateParams) (job *model.Job, err error) {
	start := time.Now()
	defer func() { s.observe("update", start, err) }()

	job, err = s.findOwned(ctx, ownerID, jobID)
	if err != nil {
		return nil, err
	}

	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			return nil, model.NewRequiredFieldError("title")
		}
		job.Title = title
	}
	if p.Company != nil {
		company := strings.TrimSpace(*p.Company)
		if company == "" {
			return nil, model.NewRequiredFieldError("company")
		}
		job.Company = company
	}
	if p.Location != nil {
		job.Location = *p.Location
	}
	if p.JobType != nil {
		jobType, err := model.ParseJobType(*p.JobType)
		if err != nil {
			return nil, err
		}
		job.JobType = jobType
	}
	if p.Description != nil {
		job.Description = *p.Description
	}
	if p.OffersSponsorship != nil {
		job.OffersSponsorship = *p.OffersSponsorship
	}
	if p.OffersRelocation != nil {
		job.OffersRelocation = *p.OffersRelocation
	}

	job.Touch(time.Now())

	if err = s.repo.Update(ctx, job); err != nil {
		return nil, fmt.Errorf("求人の更新に失敗しました: %w", err)
	}

	slog.Info("求人を更新しました",
		slog.Int64("job_id", job.ID),
		slog.String("owner_id", ownerID),
	)

	return job, nil
}

// Delete は求人を削除する。
// 従属する応募・ノートはストアの外部キー制約によりカスケード削除される。
func (s *Service) Delete(ctx context.Context, ownerID string, jobID int64) (err error) {
	start := time.Now()
	defer func() { s.observe("delete", start, err) }()

	job, err := s.findOwned(ctx, ownerID, jobID)
	if err != nil {
		return err
	}

	if err = s.repo.Remove(ctx, job); err != nil {
		return fmt.Errorf("求人の削除に失敗しました: %w", err)
	}

	slog.Info("求人を削除しました",
		slog.Int64("job_id", jobID),
		slog.String("owner_id", ownerID),
	)

	return nil
}

// GetByID は指定IDの求人を返す。
func (s *Service) GetByID(ctx context.Context, ownerID string, jobID int64) (*model.Job, error) {
	return s.findOwned(ctx, ownerID, jobID)
}

// ListByOwner は指定オーナーの求人一覧を返す。
func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]*model.Job, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, model.NewEmptyOwnerError()
	}

	jobs, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("求人一覧の取得に失敗しました: %w", err)
	}
	return jobs, nil
}

// findOwned はID・オーナーを検証して求人を取得する。
// 他オーナーの求人は存在しないものとして扱う。
func (s *Service) findOwned(ctx context.Context, ownerID string, jobID int64) (*model.Job, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, model.NewEmptyOwnerError()
	}
	if jobID <= 0 {
		return nil, model.NewInvalidIDError("job_id", jobID)
	}

	job, err := s.repo.FindByID(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("求人の取得に失敗しました: %w", err)
	}
	if job == nil || job.OwnerID != ownerID {
		return nil, model.NewJobNotFoundError(jobID)
	}
	return job, nil
}

func (s *Service) observe(operation string, start time.Time, err error) {
	if s.recorder == nil {
		return
	}
	if err != nil {
		if kind := model.CategoryOf(err); kind != "" {
			s.recorder.RecordDomainError(kind)
		}
		return
	}
	s.recorder.RecordOperation(aggregate, operation)
	s.recorder.RecordOperationDuration(aggregate, operation, time.Since(start))
}
