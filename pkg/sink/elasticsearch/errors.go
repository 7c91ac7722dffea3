package elasticsearch

import "errors"

var (
	ErrConnectFailed     = errors.New("failed to connect to elasticsearch")
	ErrMarshalFailed     = errors.New("failed to marshal document")
	ErrBulkRequestFailed = errors.New("bulk request failed")
)
