package preview

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/formkit/pkg/binder"
	"github.com/dmitrymomot/formkit/pkg/csrf"
	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/i18n"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/render"
)

// CSRFHeader carries the token of JSON submissions.
const CSRFHeader = "X-CSRF-Token"

// FormFactory builds a fresh form for one request. The request language is
// available through i18n.Language(ctx).
type FormFactory func(ctx context.Context) (*form.Form, error)

// Option configures a Handler.
type Option func(*Handler)

// WithCSRF requires a valid token on every submission and adds a token field
// to every rendered document.
func WithCSRF(p *csrf.Provider) Option {
	return func(h *Handler) { h.tokens = p }
}

// WithLayout sets the document layout. Defaults to fieldsets.
func WithLayout(layout render.Layout) Option {
	return func(h *Handler) {
		if layout != "" {
			h.layout = layout
		}
	}
}

// WithThrottle limits submissions per client.
func WithThrottle(t *Throttle) Option {
	return func(h *Handler) { h.throttle = t }
}

// WithValidationGroup restricts validation to one group.
func WithValidationGroup(group string) Option {
	return func(h *Handler) { h.group = group }
}

// WithLangExtractor sets how the request language is detected.
func WithLangExtractor(extr i18n.LangExtractor) Option {
	return func(h *Handler) { h.langs = extr }
}

// WithLogger sets the handler logger.
func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

// Handler serves a form definition over HTTP: GET renders it, POST binds,
// verifies and validates a submission.
type Handler struct {
	newForm  FormFactory
	tokens   *csrf.Provider
	throttle *Throttle
	layout   render.Layout
	group    string
	langs    i18n.LangExtractor
	logger   *slog.Logger
}

// Submission is the response to a POST.
type Submission struct {
	Valid  bool             `json:"valid"`
	Errors []form.Error     `json:"errors"`
	Data   form.Data        `json:"data,omitempty"`
	Form   *render.Document `json:"form"`
}

// NewHandler creates a handler around newForm.
func NewHandler(newForm FormFactory, opts ...Option) (*Handler, error) {
	if newForm == nil {
		return nil, ErrNilFactory
	}
	h := &Handler{
		newForm: newForm,
		layout:  render.LayoutFieldsets,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.logger = h.logger.With(logger.Component("preview"))
	return h, nil
}

// Routes returns the router: GET / and POST / for the form, GET /healthz
// for readiness.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(RequestID, middleware.Recoverer, i18n.Middleware(h.langs))

	r.Get("/", h.show)
	if h.throttle != nil {
		r.With(h.throttle.Middleware).Post("/", h.submit)
	} else {
		r.Post("/", h.submit)
	}
	r.Get("/healthz", h.health)
	return r
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	f, err := h.newForm(r.Context())
	if err != nil {
		h.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	doc, err := h.document(f)
	if err != nil {
		h.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	f, err := h.newForm(ctx)
	if err != nil {
		h.fail(w, r, http.StatusInternalServerError, err)
		return
	}

	data, token, err := h.bind(r, f.Option("control"))
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, binder.ErrUnsupportedMediaType) || errors.Is(err, binder.ErrMissingContentType) {
			status = http.StatusUnsupportedMediaType
		}
		h.fail(w, r, status, err)
		return
	}

	if h.tokens != nil {
		if err := h.tokens.Verify(token, ""); err != nil {
			h.fail(w, r, http.StatusForbidden, err)
			return
		}
	}

	f.Bind(data)
	// Errors from Validate and Filter are definition problems, not user input.
	valid, err := f.Validate(form.Data(data), h.group)
	if err != nil {
		h.fail(w, r, http.StatusInternalServerError, err)
		return
	}

	out := Submission{Valid: valid, Errors: f.Errors()}
	if valid {
		if out.Data, err = f.Filter(form.Data(data), h.group); err != nil {
			h.fail(w, r, http.StatusInternalServerError, err)
			return
		}
	}
	if out.Form, err = h.document(f); err != nil {
		h.fail(w, r, http.StatusInternalServerError, err)
		return
	}

	h.logger.DebugContext(ctx, "submission validated",
		logger.Form(f.Name()),
		logger.ClientIP(ClientIP(r)),
		slog.Bool("valid", valid),
		slog.Int("errors", len(out.Errors)),
	)

	status := http.StatusOK
	if !valid {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, out)
}

// bind decodes the body and extracts the CSRF token: a form field for
// form posts, the CSRF header or a top level field for JSON.
func (h *Handler) bind(r *http.Request, control string) (map[string]any, string, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		data, err := binder.BindJSON(r, control)
		if err != nil {
			return nil, "", err
		}
		token := r.Header.Get(CSRFHeader)
		if h.tokens != nil {
			if v, ok := data[h.tokens.FieldName()].(string); ok {
				delete(data, h.tokens.FieldName())
				if token == "" {
					token = v
				}
			}
		}
		return data, token, nil
	}

	data, err := binder.BindForm(r, control, binder.WithLogger(h.logger))
	if err != nil {
		return nil, "", err
	}
	if h.tokens == nil {
		return data, "", nil
	}
	return data, r.PostForm.Get(h.tokens.FieldName()), nil
}

func (h *Handler) document(f *form.Form) (*render.Document, error) {
	opts := []render.Option{render.WithLogger(h.logger)}
	if h.tokens != nil {
		opts = append(opts, render.WithTokenProvider(h.tokens))
	}
	return render.New(f, opts...).Document(h.layout)
}

// health reports READY when a form can be built.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := h.newForm(r.Context()); err != nil {
		h.logger.ErrorContext(r.Context(), "readiness check failed", logger.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("NOT_READY"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("READY"))
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, status int, err error) {
	if status >= http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "request failed", logger.Error(err))
	} else {
		h.logger.DebugContext(r.Context(), "request rejected", slog.Int("status", status), logger.Error(err))
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
