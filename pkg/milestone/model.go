package milestone

import (
	"github.com/batchline/batchline/pkg/sink/widecolumn"
)

// Tweet is the wire shape of one ingested record. CreatedAt carries the
// Twitter timestamp format, e.g. "Wed Oct 10 20:19:24 +0000 2018".
type Tweet struct {
	Hashtag   string `json:"hashtag" validate:"required"`
	CreatedAt string `json:"created_at" validate:"required"`
}

// Milestone is one hashtag occurrence bucketed by hour. Month is 1-based.
type Milestone struct {
	widecolumn.BaseModel[int64]

	Count   int64  `json:"count"`
	Hour    int    `json:"hour"`
	Day     int    `json:"day"`
	Month   int    `json:"month"`
	Year    int    `json:"year"`
	Hashtag string `json:"hashtag"`
}

var (
	_ widecolumn.Model       = (*Milestone)(nil)
	_ widecolumn.Timestamped = (*Milestone)(nil)
)

func (m *Milestone) TableName() string {
	return "milestones"
}

func (m *Milestone) ColumnNames() []string {
	return []string{
		widecolumn.IDColumn,
		"count", "hour", "day", "month", "year", "hashtag",
		widecolumn.CreatedAtColumn,
		widecolumn.UpdatedAtColumn,
	}
}

func (m *Milestone) ColumnValues() []any {
	return []any{
		m.ID,
		m.Count, m.Hour, m.Day, m.Month, m.Year, m.Hashtag,
		m.CreatedAt,
		m.UpdatedAt,
	}
}

// RedisKey implements the cache writer's key contract.
func (m *Milestone) RedisKey() string {
	return "milestone:" + m.Hashtag
}
