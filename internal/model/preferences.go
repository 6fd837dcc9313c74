// Package model はドメインモデルを定義する。
package model

// SalaryRange は希望給与レンジの値オブジェクト。Min・Maxともに非負で、Min ≤ Maxを満たす。
type SalaryRange struct {
	Min int64
	Max int64
}

// NewSalaryRange は給与レンジを検証して生成する。
// 負の値、またはMin > Maxの場合はバリデーションエラーを返す。
func NewSalaryRange(min, max int64) (SalaryRange, error) {
	if min < 0 || max < 0 || min > max {
		return SalaryRange{}, NewInvalidSalaryRangeError(min, max)
	}
	return SalaryRange{Min: min, Max: max}, nil
}

// Preferences はオーナーごとの求職条件を表す。
// オーナーにつき1件が想定されるが、一意性は運用上の規約であり制約では強制されない。
type Preferences struct {
	Entity
	Salary           SalaryRange
	JobType          JobType
	NeedsSponsorship bool
	NeedsRelocation  bool
}
