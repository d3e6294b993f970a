// Package logger builds slog loggers and provides attribute helpers with
// consistent keys for form processing.
//
// New returns a JSON or text logger wrapped in a handler that copies values
// from the record's context (a request id, for example) into every record:
//
//	log := logger.New(
//	    logger.WithService("formkit"),
//	    logger.WithContextValue("request_id", middleware.RequestIDKey),
//	)
//	log.InfoContext(ctx, "form validated", logger.Form("contact"), logger.Field("email"))
//
// Parse builds the same logger from textual settings such as FORMKIT_LOG_LEVEL
// and FORMKIT_LOG_FORMAT.
//
// The attribute helpers (Form, Field, GroupPath, Rule, Filter, ErrorKind)
// keep key names uniform across packages. Error and Errors return an empty
// attribute for nil errors, which slog drops.
package logger
