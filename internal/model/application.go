// Package model はドメインモデルを定義する。
package model

// JobApplication は求人への応募を表す。1つの求人につき応募は最大1件で、
// 一意性はストアの制約で保証される。
type JobApplication struct {
	Entity
	JobID  int64
	Status ApplicationStatus
}

// ApplicationStatus は応募の進行状態を表す。
// 状態遷移に制約はなく、任意の状態から任意の状態へ移行できる。
type ApplicationStatus string

const (
	// StatusNotApplied は未応募。列挙値としては存在するが、作成時に割り当てられることはない。
	StatusNotApplied ApplicationStatus = "NotApplied"
	// StatusApplied は応募済み。作成時の初期状態。
	StatusApplied ApplicationStatus = "Applied"
	// StatusInProcess は選考進行中。
	StatusInProcess ApplicationStatus = "InProcess"
	// StatusWaitingFeedback はフィードバック待ち。
	StatusWaitingFeedback ApplicationStatus = "WaitingFeedback"
	// StatusWaitingJobOffer は内定通知待ち。
	StatusWaitingJobOffer ApplicationStatus = "WaitingJobOffer"
	// StatusFailed は不採用。
	StatusFailed ApplicationStatus = "Failed"
)

// ParseApplicationStatus は文字列をApplicationStatusに変換する。
// 未知の値の場合はバリデーションエラーを返す。
func ParseApplicationStatus(s string) (ApplicationStatus, error) {
	switch ApplicationStatus(s) {
	case StatusNotApplied, StatusApplied, StatusInProcess,
		StatusWaitingFeedback, StatusWaitingJobOffer, StatusFailed:
		return ApplicationStatus(s), nil
	}
	return "", NewInvalidStatusError(s)
}
