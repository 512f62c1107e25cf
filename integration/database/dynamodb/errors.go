package dynamodb

import "errors"

var (
	ErrEmptyTableName    = errors.New("dynamodb: empty table name, use TABLE_NAME env var")
	ErrFailedToConnect   = errors.New("dynamodb: failed to load aws config")
	ErrHealthcheckFailed = errors.New("dynamodb: healthcheck failed")
	ErrTableNotFound     = errors.New("dynamodb: table not found")
)
