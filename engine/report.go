package engine

import (
	"github.com/go-faster/jx"

	"github.com/yaroher/glyph-suffixer/suffix"
)

// MarshalJX writes the result as a JSON report.
func (r *Result) MarshalJX(e *jx.Encoder) {
	if r == nil {
		e.Null()
		return
	}
	e.ObjStart()

	e.FieldStart("applied")
	encodePairs(e, r.Applied)

	e.FieldStart("skipped")
	encodePairs(e, r.skipped())

	e.FieldStart("collisions")
	e.ArrStart()
	for _, c := range r.Collisions {
		e.ObjStart()
		e.FieldStart("name")
		e.Str(c.Name)
		e.FieldStart("moved_to")
		e.Str(c.MovedTo)
		e.FieldStart("incoming")
		e.Str(c.Incoming)
		e.ObjEnd()
	}
	e.ArrEnd()

	e.FieldStart("diagnostics")
	e.ArrStart()
	for _, d := range r.Diagnostics {
		e.ObjStart()
		e.FieldStart("level")
		e.Str(string(d.Level))
		e.FieldStart("message")
		e.Str(d.Message)
		if d.Subject != "" {
			e.FieldStart("subject")
			e.Str(d.Subject)
		}
		e.ObjEnd()
	}
	e.ArrEnd()

	e.FieldStart("features_rewritten")
	e.Bool(r.FeaturesRewritten)
	e.FieldStart("presets_updated")
	e.Bool(r.PresetsUpdated)

	e.ObjEnd()
}

// JSON returns the report as indented JSON.
func (r *Result) JSON() []byte {
	var e jx.Encoder
	e.SetIdent(2)
	r.MarshalJX(&e)
	return e.Bytes()
}

// skipped lists planned renames that were not applied.
func (r *Result) skipped() []suffix.Pair {
	done := make(map[string]struct{}, len(r.Applied))
	for _, p := range r.Applied {
		done[p.Old] = struct{}{}
	}
	var out []suffix.Pair
	for _, p := range r.Mapping.Pairs() {
		if _, ok := done[p.Old]; !ok {
			out = append(out, p)
		}
	}
	return out
}

func encodePairs(e *jx.Encoder, pairs []suffix.Pair) {
	e.ArrStart()
	for _, p := range pairs {
		e.ObjStart()
		e.FieldStart("old")
		e.Str(p.Old)
		e.FieldStart("new")
		e.Str(p.New)
		e.ObjEnd()
	}
	e.ArrEnd()
}
