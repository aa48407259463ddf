package types

const (
	ContextUserKey      = "user"
	ContextRequestIDKey = "request_id"
	ContextLoggerKey    = "logger"
)

const RequestIDHeader = "X-Request-ID"
