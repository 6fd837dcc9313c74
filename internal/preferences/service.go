// Package preferences は求職条件管理のドメインロジックを提供する。
package preferences

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

const aggregate = "preferences"

// Service は求職条件管理のサービス層。
// 求職条件の作成・更新・削除・取得のビジネスルールを所有する。
type Service struct {
	repo     repository.PreferencesRepository
	recorder metrics.Recorder
}

// NewService はServiceの新しいインスタンスを生成する。recorderはnilでもよい。
func NewService(repo repository.PreferencesRepository, recorder metrics.Recorder) *Service {
	return &Service{
		repo:     repo,
		recorder: recorder,
	}
}

// CreateParams は求職条件作成の入力。
type CreateParams struct {
	MinSalary        int64
	MaxSalary        int64
	JobType          string
	NeedsSponsorship bool
	NeedsRelocation  bool
}

// UpdateParams は求職条件の部分更新の入力。nilのフィールドは変更されない。
// 給与レンジは既存値と上書き値を合成した結果に対して再検証される。
type UpdateParams struct {
	MinSalary        *int64
	MaxSalary        *int64
	JobType          *string
	NeedsSponsorship *bool
	NeedsRelocation  *bool
}

// Create は求職条件を検証して作成する。
func (s *Service) Create(ctx context.Context, ownerID string, p CreateParams) (prefs *model.Preferences, err error) {
	start := time.Now()
	defer func() { s.observe("create", start, err) }()

	if strings.TrimSpace(ownerID) == "" {
		return nil, model.NewEmptyOwnerError()
	}

	salary, err := model.NewSalaryRange(p.MinSalary, p.MaxSalary)
	if err != nil {
		return nil, err
	}

	jobType, err := model.ParseJobType(p.JobType)
	if err != nil {
		return nil, err
	}

	prefs = &model.Preferences{
		Entity: model.Entity{
			OwnerID:   ownerID,
			CreatedAt: time.Now(),
		},
		Salary:           salary,
		JobType:          jobType,
		NeedsSponsorship: p.NeedsSponsorship,
		NeedsRelocation:  p.NeedsRelocation,
	}

	if err = s.repo.Add(ctx, prefs); err != nil {
		return nil, fmt.Errorf("求職条件の作成に失敗しました: %w", err)
	}

	slog.Info("求職条件を作成しました",
		slog.Int64("preferences_id", prefs.ID),
		slog.String("owner_id", ownerID),
	)

	return prefs, nil
}

// Update は求職条件を部分更新する。
func (s *Service) Update(ctx context.Context, ownerID string, preferencesID int64, p UpdateParams) (prefs *model.Preferences, err error) {
	start := time.Now()
	defer func() { s.observe("update", start, err) }()

	prefs, err = s.findOwned(ctx, ownerID, preferencesID)
	if err != nil {
		return nil, err
	}

	min := prefs.Salary.Min
	max := prefs.Salary.Max
	if p.MinSalary != nil {
		min = *p.MinSalary
	}
	if p.MaxSalary != nil {
		max = *p.MaxSalary
	}
	salary, err := model.NewSalaryRange(min, max)
	if err != nil {
		return nil, err
	}
	prefs.Salary = salary

	if p.JobType != nil {
		jobType, err := model.ParseJobType(*p.JobType)
		if err != nil {
			return nil, err
		}
		prefs.JobType = jobType
	}
	if p.NeedsSponsorship != nil {
		prefs.NeedsSponsorship = *p.NeedsSponsorship
	}
	if p.NeedsRelocation != nil {
		prefs.NeedsRelocation = *p.NeedsRelocation
	}

	prefs.Touch(time.Now())

	if err = s.repo.Update(ctx, prefs); err != nil {
		return nil, fmt.Errorf("求職条件の更新に失敗しました: %w", err)
	}

	slog.Info("求職条件を更新しました",
		slog.Int64("preferences_id", prefs.ID),
		slog.String("owner_id", ownerID),
	)

	return prefs, nil
}

// Delete は求職条件を削除する。
func (s *Service) Delete(ctx context.Context, ownerID string, preferencesID int64) (err error) {
	start := time.Now()
	defer func() { s.observe("delete", start, err) }()

	prefs, err := s.findOwned(ctx, ownerID, preferencesID)
	if err != nil {
		return err
	}

	if err = s.repo.Remove(ctx, prefs); err != nil {
		return fmt.Errorf("求職条件の削除に失敗しました: %w", err)
	}

	slog.Info("求職条件を削除しました",
		slog.Int64("preferences_id", preferencesID),
		slog.String("owner_id", ownerID),
	)

	return nil
}

// GetByOwner は指定オーナーの求職条件を返す。
// 複数存在する場合はID最小の1件のみを返し、未登録の場合は未検出エラーを返す。
func (s *Service) GetByOwner(ctx context.Context, ownerID string) (*model.Preferences, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, model.NewEmptyOwnerError()
	}

	prefs, err := s.repo.FindFirstByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("求職条件の取得に失敗しました: %w", err)
	}
	if prefs == nil {
		return nil, model.NewPreferencesNotFoundForOwnerError()
	}
	return prefs, nil
}

// findOwned はID・オーナーを検証して求職条件を取得する。
// 他オーナーの求職条件は存在しないものとして扱う。
func (s *Service) findOwned(ctx context.Context, ownerID string, preferencesID int64) (*model.Preferences, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, model.NewEmptyOwnerError()
	}
	if preferencesID <= 0 {
		return nil, model.NewInvalidIDError("preferences_id", preferencesID)
	}

	prefs, err := s.repo.FindByID(ctx, preferencesID)
	if err != nil {
		return nil, fmt.Errorf("求職条件の取得に失敗しました: %w", err)
	}
	if prefs == nil || prefs.OwnerID != ownerID {
		return nil, model.NewPreferencesNotFoundError(preferencesID)
	}
	return prefs, nil
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
