package rename

import (
	"strings"

	"github.com/go-faster/errors"
	"github.com/samber/lo"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/yaroher/glyph-suffixer/fea"
	"github.com/yaroher/glyph-suffixer/font"
	"github.com/yaroher/glyph-suffixer/logger"
	"github.com/yaroher/glyph-suffixer/suffix"
)

const (
	DefaultUndoLabel    = "Change Suffix"
	DefaultMaxCopyIndex = 10000
)

// Font is the glyph table being renamed.
type Font interface {
	Has(name string) bool
	Rename(old, new string, opts font.RenameOptions) error
	SetUnicodes(name string, unicodes []rune) error
	AutoUnicodes(name string) ([]rune, error)
	MarkChanged()
	ScopedUndo(glyph, label string) (release func(), err error)
}

// FeatureSource is the feature code attached to the font.
type FeatureSource interface {
	HasSource() bool
	Parse() (*fea.Document, error)
	SetSourceText(text string)
}

// componentIndex is implemented by fonts that can tell which composites use a
// glyph. It is only used for reporting.
type componentIndex interface {
	ComponentUsers(name string) []string
}

type Options struct {
	RewriteFeatures bool
	// MaxCopyIndex bounds the n in "<name>.copy_<n>".
	MaxCopyIndex int
	UndoLabel    string
	Logger       *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.MaxCopyIndex <= 0 {
		o.MaxCopyIndex = DefaultMaxCopyIndex
	}
	if o.UndoLabel == "" {
		o.UndoLabel = DefaultUndoLabel
	}
	if o.Logger == nil {
		o.Logger = logger.Logger.Named("rename")
	}
	return o
}

// Collision records a glyph moved out of the way of a rename.
type Collision struct {
	Name     string // the contested name
	MovedTo  string
	Incoming string // the glyph that took Name
}

type Result struct {
	Applied           []suffix.Pair
	Collisions        []Collision
	Diagnostics       []Diagnostic
	FeaturesRewritten bool
}

func (r *Result) HasErrors() bool {
	return hasErrors(r.Diagnostics)
}

// Apply renames the glyphs of m in f. The feature code is rewritten first,
// while the font still uses the names m was computed from. A failing entry
// does not stop the others; all failures come back combined in the error and
// the returned Result lists what was applied.
func Apply(f Font, src FeatureSource, m *suffix.Mapping, opts Options) (*Result, error) {
	if f == nil {
		return nil, errors.New("nil font")
	}
	opts = opts.withDefaults()
	l := opts.Logger
	res := &Result{}

	if opts.RewriteFeatures && src != nil && src.HasSource() {
		doc, err := src.Parse()
		if err != nil {
			return res, &DocumentParseError{Err: err}
		}
		src.SetSourceText(doc.Serialize(m.Resolve))
		res.FeaturesRewritten = true
		l.Info("feature code rewritten", zap.Int("renames", m.Len()))
	}

	a := &applier{
		font:    f,
		opts:    opts,
		log:     l,
		res:     res,
		current: make(map[string]string, m.Len()),
		targets: make(map[string]struct{}, m.Len()),
	}
	order := applyOrder(m.Pairs())
	for _, p := range order {
		a.current[p.Old] = p.Old
		a.targets[p.New] = struct{}{}
	}

	var errs error
	for _, p := range order {
		if err := a.apply(p); err != nil {
			errs = multierr.Append(errs, &EntryError{Pair: p, Err: err})
			res.Diagnostics = append(res.Diagnostics, Diagnostic{Level: DiagError, Message: err.Error(), Subject: p.Old})
			l.Error("rename failed", zap.String("old", p.Old), zap.String("new", p.New), zap.Error(err))
			continue
		}
		res.Applied = append(res.Applied, p)
	}

	f.MarkChanged()
	sortDiagnostics(res.Diagnostics)
	return res, errs
}

type applier struct {
	font Font
	opts Options
	log  *zap.Logger
	res  *Result

	// current tracks where a not yet renamed source glyph lives; it only
	// differs from the key when the glyph was moved aside by a collision.
	current map[string]string
	// targets holds the new names of entries not applied yet.
	targets map[string]struct{}
}

func (a *applier) apply(p suffix.Pair) error {
	from := a.current[p.Old]
	delete(a.current, p.Old)
	delete(a.targets, p.New)

	if !a.font.Has(from) {
		return errors.Wrapf(font.ErrGlyphNotFound, "source glyph %s", from)
	}
	a.log.Info("changing glyph name", zap.String("old", from), zap.String("new", p.New))

	if p.New != from && a.font.Has(p.New) {
		if err := a.moveAside(p.New, p.Old); err != nil {
			return err
		}
	}

	release, err := a.font.ScopedUndo(from, a.opts.UndoLabel)
	if err != nil {
		return err
	}
	defer release()

	if err := a.font.Rename(from, p.New, font.RenameAll); err != nil {
		return err
	}
	unicodes, err := a.font.AutoUnicodes(p.New)
	if err != nil {
		return err
	}
	if len(unicodes) > 0 {
		labels := lo.Map(unicodes, func(r rune, _ int) string { return font.CodepointLabel(r) })
		a.res.Diagnostics = append(a.res.Diagnostics, Diagnostic{
			Level:   DiagInfo,
			Message: p.New + " is now encoded as " + strings.Join(labels, ", "),
			Subject: p.New,
		})
	}
	return nil
}

// moveAside renames the glyph occupying name to the first free
// "<name>.copy_<n>" and clears its codepoints.
func (a *applier) moveAside(name, incoming string) error {
	copyName, err := a.copyName(name)
	if err != nil {
		return err
	}

	release, err := a.font.ScopedUndo(name, a.opts.UndoLabel)
	if err != nil {
		return err
	}
	defer release()

	if err := a.font.Rename(name, copyName, font.RenameAll); err != nil {
		return err
	}
	if err := a.font.SetUnicodes(copyName, nil); err != nil {
		return err
	}

	// A source glyph that has not been renamed yet is followed to its new place.
	for src, cur := range a.current {
		if cur == name {
			a.current[src] = copyName
		}
	}

	a.res.Collisions = append(a.res.Collisions, Collision{Name: name, MovedTo: copyName, Incoming: incoming})
	a.res.Diagnostics = append(a.res.Diagnostics, Diagnostic{
		Level:   DiagWarn,
		Message: "a glyph named " + name + " was already present; it has been renamed to " + copyName,
		Subject: name,
	})
	a.log.Warn("glyph name already present, moved aside", zap.String("name", name), zap.String("moved_to", copyName))

	if ci, ok := a.font.(componentIndex); ok {
		if users := ci.ComponentUsers(copyName); len(users) > 0 {
			a.res.Diagnostics = append(a.res.Diagnostics, Diagnostic{
				Level:   DiagWarn,
				Message: "composites now refer to " + copyName + " instead of " + name,
				Subject: name,
			})
			a.log.Warn("composites follow the moved glyph", zap.String("moved_to", copyName), zap.Strings("composites", users))
		}
	}
	return nil
}

func (a *applier) copyName(name string) (string, error) {
	for n := 1; n <= a.opts.MaxCopyIndex; n++ {
		candidate := copyCandidate(name, n)
		if a.font.Has(candidate) {
			continue
		}
		if _, reserved := a.targets[candidate]; reserved {
			continue
		}
		return candidate, nil
	}
	return "", &CollisionResolutionError{Name: name, Limit: a.opts.MaxCopyIndex}
}
