package fea

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "# comment with a.sc\n"

const body = `languagesystem DFLT dflt;

@SC = [a.sc b.sc];

lookup SMCP_LOOKUP {
    sub a by a.sc;
} SMCP_LOOKUP;

feature smcp {
    lookup SMCP_LOOKUP;
    sub [b c] by [b.sc c.sc];
    sub d' lookup SMCP_LOOKUP e;
} smcp;

feature kern {
    pos a.sc b.sc -20;
    pos @SC <0 0 10 0>;
} kern;
`

func TestParse_RoundTrip(t *testing.T) {
	src := header + body
	doc, err := Parse(src)
	require.NoError(t, err)
	assert.Equal(t, src, doc.String())
	assert.Equal(t, src, doc.Serialize(nil))
}

func TestParse_GlyphNames(t *testing.T) {
	doc, err := Parse(header + body)
	require.NoError(t, err)

	names := make([]string, 0)
	for _, g := range doc.Glyphs() {
		names = append(names, g.Name)
	}
	assert.Equal(t, []string{
		"a.sc", "b.sc",
		"a", "a.sc",
		"b", "c", "b.sc", "c.sc",
		"d", "e",
		"a.sc", "b.sc",
	}, names)
	assert.Equal(t, []string{"a.sc", "b.sc", "a", "b", "c", "c.sc", "d", "e"}, doc.GlyphNames())
}

func TestParse_Structure(t *testing.T) {
	doc, err := Parse(body)
	require.NoError(t, err)
	require.Len(t, doc.Statements, 5)

	assert.Equal(t, StatementOther, doc.Statements[0].Kind)
	assert.Equal(t, StatementClassDef, doc.Statements[1].Kind)
	assert.Equal(t, "@SC", doc.Statements[1].Name)

	lookup := doc.Statements[2]
	assert.Equal(t, StatementBlock, lookup.Kind)
	assert.Equal(t, "lookup", lookup.Keyword)
	assert.Equal(t, "SMCP_LOOKUP", lookup.Name)
	require.Len(t, lookup.Body, 1)
	assert.Equal(t, StatementSubstitution, lookup.Body[0].Kind)

	smcp := doc.Statements[3]
	assert.Equal(t, "smcp", smcp.Name)
	require.Len(t, smcp.Body, 3)
	assert.Equal(t, StatementOther, smcp.Body[0].Kind)
	assert.Empty(t, smcp.Body[0].Glyphs)

	kern := doc.Statements[4]
	require.Len(t, kern.Body, 2)
	assert.Equal(t, StatementPosition, kern.Body[0].Kind)
	assert.Empty(t, kern.Body[1].Glyphs)
}

func TestSerialize_Rename(t *testing.T) {
	doc, err := Parse(header + body)
	require.NoError(t, err)

	out := doc.Serialize(MapResolver(map[string]string{"a.sc": "a.smcp"}))
	assert.Equal(t, header+strings.ReplaceAll(body, "a.sc", "a.smcp"), out)
	assert.Contains(t, out, "# comment with a.sc")

	// The document itself is untouched.
	assert.Equal(t, header+body, doc.String())
}

func TestSerialize_Escaped(t *testing.T) {
	doc, err := Parse(`sub \a.sc by \a \123;`)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.sc", "a"}, doc.GlyphNames())

	out := doc.Serialize(MapResolver(map[string]string{"a.sc": "a.smcp", "a": "a.alt"}))
	assert.Equal(t, `sub \a.smcp by \a.alt \123;`, out)
}

func TestParse_Ranges(t *testing.T) {
	src := "@R = [a.sc-z.sc];\n@S = [a.sc - z.sc];\n"

	doc, err := Parse(src)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.sc-z.sc", "a.sc", "z.sc"}, doc.GlyphNames())

	doc, err = Parse(src, WithGlyphNames([]string{"a.sc", "z.sc"}))
	require.NoError(t, err)
	assert.Equal(t, []string{"a.sc", "z.sc"}, doc.GlyphNames())
	out := doc.Serialize(MapResolver(map[string]string{"a.sc": "a.smcp", "z.sc": "z.smcp"}))
	assert.Equal(t, "@R = [a.smcp-z.smcp];\n@S = [a.smcp - z.smcp];\n", out)

	doc, err = Parse("@H = [a-b];", WithGlyphNames([]string{"a", "b", "a-b"}))
	require.NoError(t, err)
	assert.Equal(t, []string{"a-b"}, doc.GlyphNames())
}

func TestParse_OtherStatements(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected []string
	}{
		{"lookupflag filtering set", "lookupflag UseMarkFilteringSet [acute grave];", []string{"acute", "grave"}},
		{"lookupflag plain", "lookupflag RightToLeft IgnoreMarks;", nil},
		{"mark class", "markClass [acute] <anchor 300 500> @TOP;", []string{"acute"}},
		{"mark to base", "pos base [a e] <anchor 250 450> mark @TOP;", []string{"a", "e"}},
		{"gdef", "table GDEF { GlyphClassDef [a], [f_i], [acute], ; } GDEF;", []string{"a", "f_i", "acute"}},
		{"ligature caret", "table GDEF { LigatureCaretByPos f_i 400; } GDEF;", []string{"f_i"}},
		{"ignore", "ignore sub a' b;", []string{"a", "b"}},
		{"null", "sub a by NULL;", []string{"a"}},
		{"alternate", "sub a from [a.alt a.sc];", []string{"a", "a.alt", "a.sc"}},
		{"table tag with slash", "table OS/2 { FSType 0; } OS/2;", nil},
		{"include", "include(features/kern.fea);", nil},
		{"name table", `table name { nameid 9 "a.sc"; } name;`, nil},
		{"feature names", `feature ss01 { featureNames { name "a.sc"; }; sub a by a.ss01; } ss01;`, []string{"a", "a.ss01"}},
		{"anonymous", "anon sbit {\n  72 % { weird }\n} sbit;\nsub a by b;", []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse(tt.src)
			require.NoError(t, err)
			if tt.expected == nil {
				assert.Empty(t, doc.GlyphNames())
			} else {
				assert.Equal(t, tt.expected, doc.GlyphNames())
			}
			assert.Equal(t, tt.src, doc.String())
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line int
		msg  string
	}{
		{"missing semicolon", "sub a by b", 1, "missing ';'"},
		{"unclosed block", "feature smcp {\n  sub a by b;\n", 1, "never closed"},
		{"mismatched tag", "feature smcp {\n  sub a by b;\n} liga;", 3, "closed as"},
		{"stray brace", "sub a by b;\n}", 2, "unexpected '}'"},
		{"unterminated string", "table name {\n nameid 9 \"x;\n} name;", 2, "unterminated string"},
		{"open bracket", "sub [a b by c;", 1, "inside brackets"},
		{"unbalanced bracket", "sub a] by c;", 1, "unbalanced"},
		{"missing end semicolon", "feature smcp { sub a by b; } smcp", 1, "expected ';' after end"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.src, WithPath("features.fea"))
			require.Error(t, err)
			var se *SyntaxError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.line, se.Line)
			assert.Equal(t, "features.fea", se.Path)
			assert.Contains(t, se.Error(), tt.msg)
		})
	}
}

func TestTokenKind_String(t *testing.T) {
	assert.Equal(t, "escaped_name", TokenEscapedName.String())
	assert.Equal(t, "unknown(99)", TokenKind(99).String())
	assert.Equal(t, "class_def", StatementClassDef.String())
}
