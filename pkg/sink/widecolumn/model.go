package widecolumn

import (
	"time"

	"github.com/batchline/batchline/pkg/constraints"
)

const (
	IDColumn        = "id"
	CreatedAtColumn = "created_at"
	UpdatedAtColumn = "updated_at"
)

type BaseModel[ID constraints.ID] struct {
	ID        ID        `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Touch stamps the model timestamps. CreatedAt is only set once.
func (b *BaseModel[ID]) Touch(now time.Time) {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
}

type Model interface {
	TableName() string
	ColumnNames() []string
	ColumnValues() []any
}

// Timestamped is implemented by models that want the writer to stamp them
// just before the batch mutation is built.
type Timestamped interface {
	Touch(now time.Time)
}
