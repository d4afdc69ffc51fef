package types

import (
	"context"
	"time"
)

// BaseModel carries the timestamps every persisted row has. Changes here need
// a matching migration.
type BaseModel struct {
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

func GetDefaultBaseModel(_ context.Context) BaseModel {
	now := time.Now().UTC()
	return BaseModel{
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (m *BaseModel) Touch() {
	m.UpdatedAt = time.Now().UTC()
}
