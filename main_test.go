package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaroher/glyph-suffixer/font"
)

func writeFixture(t *testing.T, names ...string) (fontPath, configPath string) {
	t.Helper()
	dir := t.TempDir()
	f := font.New()
	for _, n := range names {
		require.NoError(t, f.AddGlyph(font.Glyph{Name: n, Width: 500}))
	}
	f.Features = "feature ss01 {\n    sub a by a.alt;\n} ss01;\n"
	fontPath = filepath.Join(dir, "font.json")
	require.NoError(t, os.WriteFile(fontPath, f.Encode(), 0644))

	configPath = filepath.Join(dir, "suffixer.yaml")
	conf := "presets_file: " + filepath.Join(dir, "presets") + "\nlog_level: error\n"
	require.NoError(t, os.WriteFile(configPath, []byte(conf), 0644))
	return fontPath, configPath
}

func TestParseFlags(t *testing.T) {
	o, err := parseFlags([]string{"-p", "new=ss01", "-select", "a,b", "-json", "font.json"})
	require.NoError(t, err)
	assert.Equal(t, "new=ss01", o.params)
	assert.Equal(t, "a,b", o.selection)
	assert.True(t, o.json)
	assert.Equal(t, "font.json", o.fontPath)

	_, err = parseFlags([]string{"-p", "new=ss01"})
	assert.ErrorContains(t, err, "expected one font file")
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b.alt"}, splitList(" a, ,b.alt,"))
	assert.Nil(t, splitList(""))
}

func TestRun_ReplaceAll(t *testing.T) {
	fontPath, configPath := writeFixture(t, "a", "a.alt", "b.alt")

	err := run(options{
		configPath: configPath,
		params:     "old=alt,new=salt,scope=all,features=true",
		fontPath:   fontPath,
	})
	require.NoError(t, err)

	f, err := font.Load(fontPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "a.salt", "b.salt"}, f.Names())
	assert.Equal(t, "feature ss01 {\n    sub a by a.salt;\n} ss01;\n", f.Features)
}

func TestRun_DryRunAndList(t *testing.T) {
	fontPath, configPath := writeFixture(t, "a", "b")

	require.NoError(t, run(options{configPath: configPath, params: "new=ss02", selection: "a", dryRun: true, fontPath: fontPath}))
	require.NoError(t, run(options{configPath: configPath, list: true, fontPath: fontPath}))

	f, err := font.Load(fontPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, f.Names())
}

func TestRun_Errors(t *testing.T) {
	fontPath, configPath := writeFixture(t, "a")

	err := run(options{configPath: configPath, params: "new=ss01", selection: "missing", fontPath: fontPath})
	assert.ErrorIs(t, err, font.ErrGlyphNotFound)

	err = run(options{configPath: configPath, params: "mode=replace,old=x,new=x", selection: "a", fontPath: fontPath})
	assert.ErrorContains(t, err, "no-op-replace")

	err = run(options{configPath: configPath, params: "new=ss01", fontPath: filepath.Join(t.TempDir(), "none.json")})
	assert.Error(t, err)
}
