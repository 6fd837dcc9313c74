// Package model はドメインモデルを定義する。
package model

import (
	"errors"
	"fmt"
)

// DomainError は統一エラーフォーマットを表す。
// Categoryは失敗種別を示し、呼び出し側（除外されたエンドポイント層）が
// レスポンス区分にマッピングするために使用する。
type DomainError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // 失敗種別: validation, not_found, conflict
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *DomainError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 失敗種別
const (
	CategoryValidation = "validation"
	CategoryNotFound   = "not_found"
	CategoryConflict   = "conflict"
)

// 定義済みエラーコード
const (
	ErrCodeRequiredField        = "REQUIRED_FIELD"
	ErrCodeInvalidID            = "INVALID_ID"
	ErrCodeEmptyOwner           = "EMPTY_OWNER"
	ErrCodeInvalidSalaryRange   = "INVALID_SALARY_RANGE"
	ErrCodeInvalidJobType       = "INVALID_JOB_TYPE"
	ErrCodeInvalidStatus        = "INVALID_STATUS"
	ErrCodeJobNotFound          = "JOB_NOT_FOUND"
	ErrCodeApplicationNotFound  = "APPLICATION_NOT_FOUND"
	ErrCodeNoteNotFound         = "NOTE_NOT_FOUND"
	ErrCodePreferencesNotFound  = "PREFERENCES_NOT_FOUND"
	ErrCodeDuplicateApplication = "DUPLICATE_APPLICATION"
)

// IsValidation はバリデーション失敗かどうかを判定する。
func IsValidation(err error) bool {
	return hasCategory(err, CategoryValidation)
}

// IsNotFound は対象未検出の失敗かどうかを判定する。
func IsNotFound(err error) bool {
	return hasCategory(err, CategoryNotFound)
}

// IsConflict は重複による競合の失敗かどうかを判定する。
func IsConflict(err error) bool {
	return hasCategory(err, CategoryConflict)
}

func hasCategory(err error, category string) bool {
	return CategoryOf(err) == category
}

// CategoryOf はエラーの失敗種別を返す。ドメインエラーでない場合は空文字列を返す。
func CategoryOf(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Category
	}
	return ""
}

// NewRequiredFieldError は必須フィールド未入力エラーを生成する。
func NewRequiredFieldError(field string) *DomainError {
	return &DomainError{
		Code:     ErrCodeRequiredField,
		Message:  fmt.Sprintf("必須フィールドが入力されていません: %s", field),
		Category: CategoryValidation,
		Action:   fmt.Sprintf("%s に空白以外の値を指定してください。", field),
	}
}

// NewInvalidIDError は不正なIDエラーを生成する。IDは正の整数でなければならない。
func NewInvalidIDError(field string, id int64) *DomainError {
	return &DomainError{
		Code:     ErrCodeInvalidID,
		Message:  fmt.Sprintf("不正なIDです: %s = %d", field, id),
		Category: CategoryValidation,
		Action:   fmt.Sprintf("%s には正の整数を指定してください。", field),
	}
}

// NewEmptyOwnerError はオーナー識別子未指定エラーを生成する。
func NewEmptyOwnerError() *DomainError {
	return &DomainError{
		Code:     ErrCodeEmptyOwner,
		Message:  "オーナー識別子が指定されていません。",
		Category: CategoryValidation,
		Action:   "認証済みプリンシパルの識別子を指定してください。",
	}
}

// NewInvalidSalaryRangeError は不正な給与レンジエラーを生成する。
func NewInvalidSalaryRangeError(min, max int64) *DomainError {
	return &DomainError{
		Code:     ErrCodeInvalidSalaryRange,
		Message:  fmt.Sprintf("不正な給与レンジです: min=%d, max=%d", min, max),
		Category: CategoryValidation,
		Action:   "最小額・最大額ともに0以上で、最小額が最大額を超えないように指定してください。",
	}
}

// NewInvalidJobTypeError は未知の雇用形態エラーを生成する。
func NewInvalidJobTypeError(value string) *DomainError {
	return &DomainError{
		Code:     ErrCodeInvalidJobType,
		Message:  fmt.Sprintf("未知の雇用形態です: %s", value),
		Category: CategoryValidation,
		Action:   "FullTime、PartTime、Contract、Freelance、Internship、Temporary のいずれかを指定してください。",
	}
}

// NewInvalidStatusError は未知の応募状態エラーを生成する。
func NewInvalidStatusError(value string) *DomainError {
	return &DomainError{
		Code:     ErrCodeInvalidStatus,
		Message:  fmt.Sprintf("未知の応募状態です: %s", value),
		Category: CategoryValidation,
		Action:   "NotApplied、Applied、InProcess、WaitingFeedback、WaitingJobOffer、Failed のいずれかを指定してください。",
	}
}

// NewJobNotFoundError は求人未検出エラーを生成する。
func NewJobNotFoundError(jobID int64) *DomainError {
	return &DomainError{
		Code:     ErrCodeJobNotFound,
		Message:  fmt.Sprintf("指定された求人が見つかりません: %d", jobID),
		Category: CategoryNotFound,
		Action:   "求人IDを確認してください。",
	}
}

// NewApplicationNotFoundError は応募未検出エラーを生成する。
func NewApplicationNotFoundError(applicationID int64) *DomainError {
	return &DomainError{
		Code:     ErrCodeApplicationNotFound,
		Message:  fmt.Sprintf("指定された応募が見つかりません: %d", applicationID),
		Category: CategoryNotFound,
		Action:   "応募IDを確認してください。",
	}
}

// NewNoteNotFoundError はノート未検出エラーを生成する。
func NewNoteNotFoundError(noteID int64) *DomainError {
	return &DomainError{
		Code:     ErrCodeNoteNotFound,
		Message:  fmt.Sprintf("指定されたノートが見つかりません: %d", noteID),
		Category: CategoryNotFound,
		Action:   "ノートIDを確認してください。",
	}
}

// NewPreferencesNotFoundError は求職条件未検出エラーを生成する。
func NewPreferencesNotFoundError(preferencesID int64) *DomainError {
	return &DomainError{
		Code:     ErrCodePreferencesNotFound,
		Message:  fmt.Sprintf("指定された求職条件が見つかりません: %d", preferencesID),
		Category: CategoryNotFound,
		Action:   "求職条件IDを確認してください。",
	}
}

// NewPreferencesNotFoundForOwnerError はオーナーに求職条件が未登録の場合のエラーを生成する。
func NewPreferencesNotFoundForOwnerError() *DomainError {
	return &DomainError{
		Code:     ErrCodePreferencesNotFound,
		Message:  "求職条件が登録されていません。",
		Category: CategoryNotFound,
		Action:   "先に求職条件を作成してください。",
	}
}

// NewDuplicateApplicationError は同一求人への重複応募エラーを生成する。
func NewDuplicateApplicationError(jobID int64) *DomainError {
	return &DomainError{
		Code:     ErrCodeDuplicateApplication,
		Message:  fmt.Sprintf("この求人には既に応募が存在します: %d", jobID),
		Category: CategoryConflict,
		Action:   "既存の応募の状態を更新するか、先に削除してください。",
	}
}
