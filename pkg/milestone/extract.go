package milestone

import (
	"time"

	"github.com/pkg/errors"

	"github.com/batchline/batchline/pkg/sink/widecolumn"
	"github.com/batchline/batchline/pkg/unique"
)

// createdAtLayout matches the Twitter timestamp format.
const createdAtLayout = time.RubyDate

// Extractor turns tweets into hour-bucketed milestone rows.
type Extractor struct {
	ids *unique.SnowflakeNode
}

// NewExtractor creates an extractor. IDs for the produced rows come from
// the given snowflake node.
func NewExtractor(ids *unique.SnowflakeNode) *Extractor {
	return &Extractor{ids: ids}
}

// Extract parses the tweet timestamp and buckets the hashtag occurrence.
func (e *Extractor) Extract(tweet Tweet) (*Milestone, error) {
	created, err := time.Parse(createdAtLayout, tweet.CreatedAt)
	if err != nil {
		return nil, errors.Wrapf(err, "parse created_at %q", tweet.CreatedAt)
	}

	return &Milestone{
		BaseModel: widecolumn.BaseModel[int64]{ID: e.ids.Generate()},
		Count:     1,
		Hour:      created.Hour(),
		Day:       created.Day(),
		Month:     int(created.Month()),
		Year:      created.Year(),
		Hashtag:   tweet.Hashtag,
	}, nil
}
