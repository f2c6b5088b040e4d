// Package logger builds slog loggers and the attribute helpers used across
// the module.
//
// New creates a JSON or text logger from options. WithEnvironment picks the
// defaults for development, staging or production, and NewFromConfig reads
// them from APP_ENV, APP_NAME, LOG_LEVEL and LOG_FORMAT. Context extractors
// add request-scoped attributes at log time:
//
//	log := logger.New(
//		logger.WithEnvironment(logger.EnvProduction, "flashtoast"),
//		logger.WithRequestID(middleware.GetReqID),
//	)
//	log.InfoContext(r.Context(), "toasts kept across redirect",
//		logger.Component("toast"),
//		logger.Status(http.StatusSeeOther),
//	)
//
// The attribute helpers keep key names consistent. Error and Errors return
// an empty attribute for nil errors, so they can be passed unconditionally.
package logger
