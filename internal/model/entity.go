// Package model はドメインモデルを定義する。
package model

import "time"

// Entity は全集約が共有する基本フィールド。
// IDはストアが採番する。OwnerIDは認証済みプリンシパルの不透明な識別子で、
// テナント分離の唯一の境界となる。永続化済みエンティティで空になることはない。
type Entity struct {
	ID        int64
	OwnerID   string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// Touch は最終更新日時を指定時刻に設定する。更新系操作の度に呼び出される。
func (e *Entity) Touch(now time.Time) {
	e.UpdatedAt = &now
}
