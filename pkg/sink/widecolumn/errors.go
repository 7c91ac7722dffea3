package widecolumn

import "errors"

var (
	ErrConnectFailed = errors.New("failed to connect to database")
)
