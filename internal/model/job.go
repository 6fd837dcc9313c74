// Package model はドメインモデルを定義する。
package model

// Job は求人情報を表す。
type Job struct {
	Entity
	Title             string
	Company           string
	Location          string
	JobType           JobType
	Description       string
	OffersSponsorship bool
	OffersRelocation  bool
}

// JobType は雇用形態を表す。
type JobType string

const (
	// JobTypeFullTime は正社員（フルタイム）。
	JobTypeFullTime JobType = "FullTime"
	// JobTypePartTime はパートタイム。
	JobTypePartTime JobType = "PartTime"
	// JobTypeContract は契約社員。
	JobTypeContract JobType = "Contract"
	// JobTypeFreelance はフリーランス。
	JobTypeFreelance JobType = "Freelance"
	// JobTypeInternship はインターンシップ。
	JobTypeInternship JobType = "Internship"
	// JobTypeTemporary は臨時雇用。
	JobTypeTemporary JobType = "Temporary"
)

// ParseJobType は文字列をJobTypeに変換する。未知の値の場合はバリデーションエラーを返す。
func ParseJobType(s string) (JobType, error) {
	switch JobType(s) {
	case JobTypeFullTime, JobTypePartTime, JobTypeContract,
		JobTypeFreelance, JobTypeInternship, JobTypeTemporary:
		return JobType(s), nil
	}
	return "", NewInvalidJobTypeError(s)
}
