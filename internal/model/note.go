// Package model はドメインモデルを定義する。
package model

// ApplicationNote は応募に紐づく面接メモなどの自由記述ノートを表す。
// 親となるJobApplicationが存在しなければ作成できない。
type ApplicationNote struct {
	Entity
	ApplicationID int64
	Text          string
}
