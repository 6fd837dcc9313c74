// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"
	"errors"

	"github.com/hitoshi/jobtrack/internal/model"
)

// リポジトリ層のセンチネルエラー。サービス層がドメインエラーへ変換する。
var (
	// ErrParentNotFound は参照先の親エンティティが存在しない（またはオーナーが一致しない）ことを示す。
	ErrParentNotFound = errors.New("参照先の親エンティティが存在しません")
	// ErrDuplicate はストアの一意制約に違反したことを示す。
	ErrDuplicate = errors.New("一意制約に違反しています")
)

// Repository は集約型Tに対する汎用データアクセス契約。
// 集約ごとに1度だけPostgreSQL実装が提供される。
type Repository[T any] interface {
	// Add はエンティティを1件永続化し、採番されたIDをエンティティに書き戻す。
	Add(ctx context.Context, entity *T) error

	// AddRange は複数エンティティを同一トランザクションで永続化する。
	AddRange(ctx context.Context, entities []*T) error

	// Remove はエンティティを1件削除する。
	Remove(ctx context.Context, entity *T) error

	// RemoveRange は複数エンティティを同一トランザクションで削除する。
	RemoveRange(ctx context.Context, entities []*T) error

	// FindByID は指定IDのエンティティを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id int64) (*T, error)

	// ListAll は全エンティティをID昇順で返す。
	ListAll(ctx context.Context) ([]*T, error)

	// Find は述語を満たすエンティティを返す。
	// 単純なフィルタ関数として表現され、クエリビルダーは提供しない。
	Find(ctx context.Context, pred func(*T) bool) ([]*T, error)

	// Update はエンティティのインプレース変更を永続化する。
	Update(ctx context.Context, entity *T) error
}

// JobRepository は求人データの永続化インターフェース。
type JobRepository interface {
	Repository[model.Job]

	// ListByOwner は指定オーナーの求人一覧を返す。
	// オーナーによる絞り込みはSQLレベルで行われる。
	ListByOwner(ctx context.Context, ownerID string) ([]*model.Job, error)
}

// ApplicationRepository は応募データの永続化インターフェース。
type ApplicationRepository interface {
	Repository[model.JobApplication]

	// CreateWithJobCheck は親求人の存在確認と応募の作成を同一トランザクションで行う。
	// 親求人が存在しない（またはオーナーが一致しない）場合はErrParentNotFound、
	// 同一求人に応募が既に存在する場合はErrDuplicateを返す。
	CreateWithJobCheck(ctx context.Context, application *model.JobApplication) error

	// ListByOwner は指定オーナーの応募一覧を返す。
	ListByOwner(ctx context.Context, ownerID string) ([]*model.JobApplication, error)

	// ListByJob は指定オーナー・指定求人の応募一覧を返す。
	ListByJob(ctx context.Context, ownerID string, jobID int64) ([]*model.JobApplication, error)
}

// NoteRepository は応募ノートデータの永続化インターフェース。
type NoteRepository interface {
	Repository[model.ApplicationNote]

	// CreateWithApplicationCheck は親応募の存在確認とノートの作成を同一トランザクションで行う。
	// 親応募が存在しない（またはオーナーが一致しない）場合はErrParentNotFoundを返す。
	CreateWithApplicationCheck(ctx context.Context, note *model.ApplicationNote) error

	// ListByApplication は指定オーナー・指定応募のノート一覧を返す。
	ListByApplication(ctx context.Context, ownerID string, applicationID int64) ([]*model.ApplicationNote, error)
}

// PreferencesRepository は求職条件データの永続化インターフェース。
type PreferencesRepository interface {
	Repository[model.Preferences]

	// FindFirstByOwner は指定オーナーの求職条件のうちID最小の1件を返す。
	// 見つからない場合はnilを返す。オーナーにつき1件という規約は制約では強制されないため、
	// 複数存在する場合は最初の1件のみが返る。
	FindFirstByOwner(ctx context.Context, ownerID string) (*model.Preferences, error)
}
