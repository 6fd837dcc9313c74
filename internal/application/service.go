// Package application は応募管理のドメインロジックを提供する。
package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hitoshi/jobtrack/internal/metrics"
	"github.com/hitoshi/jobtrack/internal/model"
	"github.com/hitoshi/jobtrack/internal/repository"
)

const aggregate = "application"

// Service は応募管理のサービス層。
// 応募の作成・状態更新・削除・取得のビジネスルールを所有する。
type Service struct {
	repo     repository.ApplicationRepository
	recorder metrics.Recorder
}

// NewService はServiceの新しいインスタンスを生成する。recorderはnilでもよい。
func NewService(repo repository.ApplicationRepository, recorder metrics.Recorder) *Service {
	return &Service{
		repo:     repo,
		recorder: recorder,
	}
}

// Create は指定求人への応募を作成する。
// 状態はAppliedに固定され、作成日時・最終更新日時はともに現在時刻に設定される。
// 親求人の存在確認と挿入は同一トランザクションで行われる。
func (s *Service) Create(ctx context.Context, ownerID string, jobID int64) (app *model.JobApplication, err error) {
	start := time.Now()
	defer func() { s.observe("create", start, err) }()

	if strings.TrimSpace(ownerID) == "" {
		return nil, model.NewEmptyOwnerError()
	}
	if jobID <= 0 {
		return nil, model.NewInvalidIDError("job_id", jobID)
	}

	now := time.Now()
	app = &model.JobApplication{
		Entity: model.Entity{
			OwnerID:   ownerID,
			CreatedAt: now,
			UpdatedAt: &now,
		},
		JobID:  jobID,
		Status: model.StatusApplied,
	}

	if err = s.repo.CreateWithJobCheck(ctx, app); err != nil {
		if errors.Is(err, repository.ErrParentNotFound) {
			return nil, model.NewJobNotFoundError(jobID)
		}
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, model.NewDuplicateApplicationError(jobID)
		}
		return nil, fmt.Errorf("応募の作成に失敗しました: %w", err)
	}

	slog.Info("応募を作成しました",
		slog.Int64("application_id", app.ID),
		slog.Int64("job_id", jobID),
		slog.String("owner_id", ownerID),
	)

	return app, nil
}

// UpdateStatus は応募の状態を更新し、最終更新日時を進める。
// 遷移元の状態による制約はなく、任意の状態から任意の状態へ無条件に上書きされる。
func (s *Service) UpdateStatus(ctx context.Context, ownerID string, applicationID int64, status string) (app *model.JobApplication, err error) {
	start := time.Now()
	defer func() { s.observe("update_status", start, err) }()

	newStatus, err := model.ParseApplicationStatus(status)
	if err != nil {
		return nil, err
	}

	app, err = s.findOwned(ctx, ownerID, applicationID)
	if err != nil {
		return nil, err
	}

	app.Status = newStatus
	app.Touch(time.Now())

	if err = s.repo.Update(ctx, app); err != nil {
		return nil, fmt.Errorf("応募状態の更新に失敗しました: %w", err)
	}

	slog.Info("応募状態を更新しました",
		slog.Int64("application_id", app.ID),
		slog.String("status", string(newStatus)),
		slog.String("owner_id", ownerID),
	)

	return app, nil
}

// Delete は応募を削除する。従属するノートはストアの外部キー制約によりカスケード削除される。
func (s *Service) Delete(ctx context.Context, ownerID string, applicationID int64) (err error) {
	start := time.Now()
	defer func() { s.observe("delete", start, err) }()

	app, err := s.findOwned(ctx, ownerID, applicationID)
	if err != nil {
		return err
	}

	if err = s.repo.Remove(ctx, app); err != nil {
		return fmt.Errorf("応募の削除に失敗しました: %w", err)
	}

	slog.Info("応募を削除しました",
		slog.Int64("application_id", applicationID),
		slog.String("owner_id", ownerID),
	)

	return nil
}

// GetByID は指定IDの応募を返す。
func (s *Service) GetByID(ctx context.Context, ownerID string, applicationID int64) (*model.JobApplication, error) {
	return s.findOwned(ctx, ownerID, applicationID)
}

// ListByOwner は指定オーナーの応募一覧を返す。
func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]*model.JobApplication, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, model.NewEmptyOwnerError()
	}

	apps, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("応募一覧の取得に失敗しました: %w", err)
	}
	return apps, nil
}

// ListByJob は指定求人への応募一覧を返す。
func (s *Service) ListByJob(ctx context.Context, ownerID string, jobID int64) ([]*model.JobApplication, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, model.NewEmptyOwnerError()
	}
	if jobID <= 0 {
		return nil, model.NewInvalidIDError("job_id", jobID)
	}

	apps, err := s.repo.ListByJob(ctx, ownerID, jobID)
	if err != nil {
		return nil, fmt.Errorf("応募一覧の取得に失敗しました: %w", err)
	}
	return apps, nil
}

// findOwned はID・オーナーを検証して応募を取得する。
// 他オーナーの応募は存在しないものとして扱う。
func (s *Service) findOwned(ctx context.Context, ownerID string, applicationID int64) (*model.JobApplication, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, model.NewEmptyOwnerError()
	}
	if applicationID <= 0 {
		return nil, model.NewInvalidIDError("application_id", applicationID)
	}

	app, err := s.repo.FindByID(ctx, applicationID)
	if err != nil {
		return nil, fmt.Errorf("応募の取得に失敗しました: %w", err)
	}
	if app == nil || app.OwnerID != ownerID {
		return nil, model.NewApplicationNotFoundError(applicationID)
	}
	return app, nil
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
