// Package preview serves a form definition over HTTP for local development.
//
// Handler exposes three routes on a chi router:
//
//	GET  /         render tree of a fresh form as JSON
//	POST /         bind, CSRF check, validate; responds with a Submission
//	GET  /healthz  READY when the form factory succeeds
//
// Submissions may be url-encoded or multipart forms using the bracket names
// of the rendered fields, or JSON objects. With WithCSRF the token is read
// from the form field named by the provider, the X-CSRF-Token header or a
// top level JSON field. The request language is negotiated with
// i18n.Middleware and passed to the FormFactory through the context.
//
// WithThrottle limits POST / per client address (see ClientIP) with a token
// bucket; refused submissions get 429 and a Retry-After header.
//
// Server runs the handler with graceful shutdown on context cancellation,
// SIGINT or SIGTERM:
//
//	h, err := preview.NewHandler(factory, preview.WithCSRF(tokens))
//	if err != nil {
//		return err
//	}
//	return preview.NewServer(preview.WithAddr(":8080")).Run(ctx, h.Routes())
package preview
