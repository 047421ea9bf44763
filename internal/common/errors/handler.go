package errors

// Reporter forwards engine errors to telemetry with consistent structure.
// The orchestration service logs through it before re-raising; it never
// swallows the underlying error.
type Reporter struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
}

func NewReporter(logger Logger) *Reporter {
	return &Reporter{logger: logger}
}

// Report normalizes and logs an error, returning the normalized form so the
// caller can re-raise it.
func (r *Reporter) Report(operation string, err error) *StandardError {
	stdErr := AsStandardError(err)

	fields := map[string]interface{}{
		"operation": operation,
		"errorCode": string(stdErr.Code),
		"details":   stdErr.Details,
		"retryable": stdErr.Retryable,
		"category":  GetErrorCategory(stdErr.Code),
	}

	if stdErr.Retryable {
		r.logger.Warn(stdErr.Message, fields)
	} else {
		r.logger.Error(stdErr.Message, fields)
	}

	return stdErr
}
