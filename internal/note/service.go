// Package note は応募ノート管理のドメインロジックを提供する。
package note

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

const aggregate = "note"

// Service は応募ノート管理のサービス層。
// ノートの作成・本文更新・削除・取得のビジネスルールを所有する。
type Service struct {
	repo     repository.NoteRepository
	recorder metrics.Recorder
}

// NewService はServiceの新しいインスタンスを生成する。recorderはnilでもよい。
func NewService(repo repository.NoteRepository, recorder metrics.Recorder) *Service {
	return &Service{
		repo:     repo,
		recorder: recorder,
	}
}

// Create は指定応募にノートを作成する。
// 本文は前後の空白を除去したうえで必須。親応募の存在確認と挿入は
// 同一トランザクションで行われる。
func (s *Service) Create(ctx context.Context, ownerID string, applicationID int64, text string) (note *model.ApplicationNote, err error) {
	start := time.Now()
	defer func() { s.observe("create", start, err) }()

	if strings.TrimSpace(ownerID) == "" {
		return nil, model.NewEmptyOwnerError()
	}
	if applicationID <= 0 {
		return nil, model.NewInvalidIDError("application_id", applicationID)
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, model.NewRequiredFieldError("text")
	}

	note = &model.ApplicationNote{
		Entity: model.Entity{
			OwnerID:   ownerID,
			CreatedAt: time.Now(),
		},
		ApplicationID: applicationID,
		Text:          trimmed,
	}

	if err = s.repo.CreateWithApplicationCheck(ctx, note); err != nil {
		if errors.Is(err, repository.ErrParentNotFound) {
			return nil, model.NewApplicationNotFoundError(applicationID)
		}
		return nil, fmt.Errorf("ノートの作成に失敗しました: %w", err)
	}

	slog.Info("ノートを作成しました",
		slog.Int64("note_id", note.ID),
		slog.Int64("application_id", applicationID),
		slog.String("owner_id", ownerID),
	)

	return note, nil
}

// Update はノートの本文を丸ごと置き換え、最終更新日時を進める。
func (s *Service) Update(ctx context.Context, ownerID string, noteID int64, text string) (note *model.ApplicationNote, err error) {
	start := time.Now()
	defer func() { s.observe("update", start, err) }()

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, model.NewRequiredFieldError("text")
	}

	note, err = s.findOwned(ctx, ownerID, noteID)
	if err != nil {
		return nil, err
	}

	note.Text = trimmed
	note.Touch(time.Now())

	if err = s.repo.Update(ctx, note); err != nil {
		return nil, fmt.Errorf("ノートの更新に失敗しました: %w", err)
	}

	slog.Info("ノートを更新しました",
		slog.Int64("note_id", note.ID),
		slog.String("owner_id", ownerID),
	)

	return note, nil
}

// Delete はノートを削除する。
func (s *Service) Delete(ctx context.Context, ownerID string, noteID int64) (err error) {
	start := time.Now()
	defer func() { s.observe("delete", start, err) }()

	note, err := s.findOwned(ctx, ownerID, noteID)
	if err != nil {
		return err
	}

	if err = s.repo.Remove(ctx, note); err != nil {
		return fmt.Errorf("ノートの削除に失敗しました: %w", err)
	}

	slog.Info("ノートを削除しました",
		slog.Int64("note_id", noteID),
		slog.String("owner_id", ownerID),
	)

	return nil
}

// GetByID は指定IDのノートを返す。
func (s *Service) GetByID(ctx context.Context, ownerID string, noteID int64) (*model.ApplicationNote, error) {
	return s.findOwned(ctx, ownerID, noteID)
}

// ListByApplication は指定応募のノート一覧を返す。
func (s *Service) ListByApplication(ctx context.Context, ownerID string, applicationID int64) ([]*model.ApplicationNote, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, model.NewEmptyOwnerError()
	}
	if applicationID <= 0 {
		return nil, model.NewInvalidIDError("application_id", applicationID)
	}

	notes, err := s.repo.ListByApplication(ctx, ownerID, applicationID)
	if err != nil {
		return nil, fmt.Errorf("ノート一覧の取得に失敗しました: %w", err)
	}
	return notes, nil
}

// findOwned はID・オーナーを検証してノートを取得する。
// 他オーナーのノートは存在しないものとして扱う。
func (s *Service) findOwned(ctx context.Context, ownerID string, noteID int64) (*model.ApplicationNote, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, model.NewEmptyOwnerError()
	}
	if noteID <= 0 {
		return nil, model.NewInvalidIDError("note_id", noteID)
	}

	note, err := s.repo.FindByID(ctx, noteID)
	if err != nil {
		return nil, fmt.Errorf("ノートの取得に失敗しました: %w", err)
	}
	if note == nil || note.OwnerID != ownerID {
		return nil, model.NewNoteNotFoundError(noteID)
	}
	return note, nil
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
