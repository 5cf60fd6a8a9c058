package interfaces

// -----------------------------------------------------------------------------
// ILogger is the logging sink used by the aggregation pipeline.
// logger.Logger satisfies it.
// -----------------------------------------------------------------------------

type ILogger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warning(format string, args ...interface{})
	Error(format string, args ...interface{})
}
