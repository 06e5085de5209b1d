package engine

import (
	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/yaroher/glyph-suffixer/config"
	"github.com/yaroher/glyph-suffixer/logger"
	"github.com/yaroher/glyph-suffixer/presets"
	"github.com/yaroher/glyph-suffixer/rename"
	"github.com/yaroher/glyph-suffixer/suffix"
)

var ErrEmptyScope = errors.New("no glyphs in scope")

// Font is what the engine needs from a font: its glyph table, the user's
// selection and its feature code.
type Font interface {
	rename.Font
	rename.FeatureSource
	Names() []string
	SelectedNames() []string
}

// Request is one suffix operation as the user entered it.
type Request struct {
	Scope           config.Scope
	Mode            suffix.Mode
	OldSuffix       string
	NewSuffix       string
	RewriteFeatures bool
}

func (r Request) suffixRequest() suffix.Request {
	return suffix.Request{Mode: r.Mode, OldSuffix: r.OldSuffix, NewSuffix: r.NewSuffix}
}

type Result struct {
	Mapping           *suffix.Mapping
	Applied           []suffix.Pair
	Collisions        []rename.Collision
	Diagnostics       []rename.Diagnostic
	FeaturesRewritten bool
	PresetsUpdated    bool
}

// Engine runs suffix operations against one font. It is created once by the
// host and is not safe for concurrent use.
type Engine struct {
	font         Font
	presetsFile  string
	presets      []string
	maxCopyIndex int
	log          *zap.Logger
}

type Option func(*Engine) error

// WithPresetsFile loads the suffix presets from path and saves them back
// after each successful run.
func WithPresetsFile(path string) Option {
	return func(e *Engine) error {
		list, err := presets.Load(path)
		if err != nil {
			return err
		}
		e.presetsFile = path
		e.presets = list
		return nil
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) error {
		if l == nil {
			return errors.New("nil logger")
		}
		e.log = l
		return nil
	}
}

func WithMaxCopyIndex(n int) Option {
	return func(e *Engine) error {
		if n < 1 {
			return errors.Errorf("max copy index must be positive, got %d", n)
		}
		e.maxCopyIndex = n
		return nil
	}
}

func New(f Font, opts ...Option) (*Engine, error) {
	if f == nil {
		return nil, errors.New("nil font")
	}
	e := &Engine{
		font:         f,
		presets:      append([]string(nil), presets.Defaults...),
		maxCopyIndex: rename.DefaultMaxCopyIndex,
		log:          logger.Logger.Named("engine"),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func (e *Engine) Presets() []string {
	return append([]string(nil), e.presets...)
}

// ExistingSuffixes lists the suffixes found in the font, the candidates for
// replacement.
func (e *Engine) ExistingSuffixes() []string {
	return suffix.Existing(e.font.Names())
}

// CurrentSuffix is the suffix of the first selected glyph that has one.
func (e *Engine) CurrentSuffix() (string, bool) {
	return suffix.Current(e.font.SelectedNames())
}

// Scope returns the names an operation with scope s may rename.
func (e *Engine) Scope(s config.Scope) ([]string, error) {
	var names []string
	switch s {
	case config.ScopeAll:
		names = e.font.Names()
	case config.ScopeSelected, "":
		names = e.font.SelectedNames()
	default:
		return nil, errors.Errorf("unknown scope %q", s)
	}
	if len(names) == 0 {
		return nil, errors.Wrapf(ErrEmptyScope, "scope %s", s)
	}
	return names, nil
}

// Plan builds the mapping for req without touching the font.
func (e *Engine) Plan(req Request) (*suffix.Mapping, error) {
	if err := req.suffixRequest().Validate(); err != nil {
		return nil, err
	}
	scope, err := e.Scope(req.Scope)
	if err != nil {
		return nil, err
	}
	return suffix.BuildMapping(scope, req.suffixRequest())
}

// Run plans and applies req. Validation errors come back before anything is
// changed. When some entries fail the result still describes what was
// applied, and the presets are left alone.
func (e *Engine) Run(req Request) (*Result, error) {
	m, err := e.Plan(req)
	if err != nil {
		e.log.Warn("request rejected", zap.Error(err))
		return nil, err
	}
	e.log.Info("renaming glyphs",
		zap.String("mode", string(req.Mode)),
		zap.String("scope", string(req.Scope)),
		zap.Int("renames", m.Len()),
	)

	applied, err := rename.Apply(e.font, e.font, m, rename.Options{
		RewriteFeatures: req.RewriteFeatures,
		MaxCopyIndex:    e.maxCopyIndex,
		Logger:          e.log.Named("rename"),
	})
	res := &Result{Mapping: m}
	if applied != nil {
		res.Applied = applied.Applied
		res.Collisions = applied.Collisions
		res.Diagnostics = applied.Diagnostics
		res.FeaturesRewritten = applied.FeaturesRewritten
	}
	if err != nil {
		return res, err
	}

	updated, err := e.rememberSuffix(req.NewSuffix)
	if err != nil {
		return res, err
	}
	res.PresetsUpdated = updated
	return res, nil
}

func (e *Engine) rememberSuffix(entered string) (bool, error) {
	list, changed := presets.Merge(e.presets, entered)
	if !changed {
		return false, nil
	}
	e.presets = list
	if e.presetsFile == "" {
		return true, nil
	}
	if err := presets.Save(e.presetsFile, list); err != nil {
		return false, err
	}
	e.log.Debug("presets saved", zap.String("path", e.presetsFile), zap.String("added", entered))
	return true, nil
}
