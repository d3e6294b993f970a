package form

import (
	"io"
	"log/slog"
)

// Layouts understood by Option.
const (
	LayoutVertical   = "vertical"
	LayoutHorizontal = "horizontal"
	LayoutInline     = "inline"
)

// Default option values.
const (
	DefaultControl   = "csForm"
	DefaultLabelCols = "col-sm-3"
	DefaultFieldCols = "col-sm-9"
)

// Config holds form defaults read from the environment.
type Config struct {
	Control   string `env:"FORM_CONTROL" envDefault:"csForm"`
	Layout    string `env:"FORM_LAYOUT" envDefault:"vertical"`
	LabelCols string `env:"FORM_LABEL_COLS" envDefault:"col-sm-3"`
	FieldCols string `env:"FORM_FIELD_COLS" envDefault:"col-sm-9"`
	Buttons   string `env:"FORM_BUTTONS"`
	Update    bool   `env:"FORM_UPDATE" envDefault:"false"`
}

type options struct {
	control   string
	layout    string
	labelCols string
	fieldCols string
	buttons   string
	update    bool

	fields     *FieldRegistry
	rules      *RuleRegistry
	filters    *FilterEngine
	translator Translator
	dates      DateFormatter
	logger     *slog.Logger
}

func defaultOptions() options {
	return options{
		control:   DefaultControl,
		layout:    LayoutVertical,
		labelCols: DefaultLabelCols,
		fieldCols: DefaultFieldCols,
	}
}

// Option configures a Form.
type Option func(*options)

// WithControl sets the input control namespace used in names and ids.
// An empty control yields names without a namespace.
func WithControl(control string) Option {
	return func(o *options) { o.control = control }
}

// WithLayout sets the layout: vertical, horizontal or inline.
func WithLayout(layout string) Option {
	return func(o *options) {
		if layout != "" {
			o.layout = layout
		}
	}
}

// WithLabelCols sets the label column classes of the horizontal layout.
func WithLabelCols(cols string) Option {
	return func(o *options) { o.labelCols = cols }
}

// WithFieldCols sets the field column classes of the horizontal layout.
func WithFieldCols(cols string) Option {
	return func(o *options) { o.fieldCols = cols }
}

// WithButtons sets the button list rendered with the form.
func WithButtons(buttons string) Option {
	return func(o *options) { o.buttons = buttons }
}

// WithUpdate marks the form as editing an existing record.
func WithUpdate(update bool) Option {
	return func(o *options) { o.update = update }
}

// WithFieldRegistry replaces the field type registry.
func WithFieldRegistry(r *FieldRegistry) Option {
	return func(o *options) {
		if r != nil {
			o.fields = r
		}
	}
}

// WithRuleRegistry replaces the rule registry.
func WithRuleRegistry(r *RuleRegistry) Option {
	return func(o *options) {
		if r != nil {
			o.rules = r
		}
	}
}

// WithFilterEngine replaces the filter engine.
func WithFilterEngine(e *FilterEngine) Option {
	return func(o *options) {
		if e != nil {
			o.filters = e
		}
	}
}

// WithTranslator sets the translator used for labels and messages.
func WithTranslator(tr Translator) Option {
	return func(o *options) { o.translator = tr }
}

// WithDateFormatter sets the formatter used by the server_utc filter.
func WithDateFormatter(df DateFormatter) Option {
	return func(o *options) { o.dates = df }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// ConfigOptions maps a Config onto options.
func ConfigOptions(cfg Config) []Option {
	return []Option{
		WithControl(cfg.Control),
		WithLayout(cfg.Layout),
		WithLabelCols(cfg.LabelCols),
		WithFieldCols(cfg.FieldCols),
		WithButtons(cfg.Buttons),
		WithUpdate(cfg.Update),
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
