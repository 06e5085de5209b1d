// Command glyph-suffixer appends, replaces or strips dot suffixes on the
// glyphs of a font stored as JSON, optionally rewriting its feature code.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/yaroher/glyph-suffixer/config"
	"github.com/yaroher/glyph-suffixer/engine"
	"github.com/yaroher/glyph-suffixer/font"
	"github.com/yaroher/glyph-suffixer/logger"
)

type options struct {
	configPath string
	params     string
	selection  string
	list       bool
	json       bool
	dryRun     bool
	fontPath   string
}

func parseFlags(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("glyph-suffixer", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: glyph-suffixer [flags] font.json")
		fs.PrintDefaults()
	}
	fs.StringVar(&o.configPath, "config", "", "YAML config file")
	fs.StringVar(&o.params, "p", "", "operation: mode=append|replace,old=SUFFIX,new=SUFFIX,scope=selected|all,features=true")
	fs.StringVar(&o.selection, "select", "", "comma separated glyphs to select before running")
	fs.BoolVar(&o.list, "list", false, "list the suffixes found in the font and the presets, then exit")
	fs.BoolVar(&o.json, "json", false, "print the report as JSON")
	fs.BoolVar(&o.dryRun, "dry-run", false, "print the planned renames without changing the font")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return o, errors.Errorf("expected one font file, got %d", fs.NArg())
	}
	o.fontPath = fs.Arg(0)
	return o, nil
}

func run(o options) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	logger.SetLevel(cfg.LogLevel)
	defer func() { _ = logger.Logger.Sync() }()

	f, err := font.Load(o.fontPath)
	if err != nil {
		return err
	}
	if o.selection != "" {
		if err := f.Select(splitList(o.selection)...); err != nil {
			return err
		}
	}

	e, err := engine.New(f,
		engine.WithPresetsFile(cfg.PresetsFile),
		engine.WithMaxCopyIndex(cfg.MaxCopyIndex),
	)
	if err != nil {
		return err
	}

	if o.list {
		printList(e)
		return nil
	}

	req, err := engine.ParseParams(o.params, cfg)
	if err != nil {
		return err
	}

	if o.dryRun {
		m, err := e.Plan(req)
		if err != nil {
			return err
		}
		for _, p := range m.Pairs() {
			fmt.Println(p)
		}
		return nil
	}

	res, err := e.Run(req)
	if res != nil {
		printResult(res, o.json)
	}
	if res != nil && len(res.Applied) > 0 {
		if saveErr := f.Save(); saveErr != nil {
			return saveErr
		}
		logger.Info("font saved", zap.String("path", o.fontPath), zap.Int("renamed", len(res.Applied)))
	}
	return err
}

func printList(e *engine.Engine) {
	fmt.Println("existing:", strings.Join(e.ExistingSuffixes(), " "))
	if cur, ok := e.CurrentSuffix(); ok {
		fmt.Println("current:", cur)
	}
	fmt.Println("presets:", strings.Join(e.Presets(), " "))
}

func printResult(res *engine.Result, asJSON bool) {
	if asJSON {
		fmt.Println(string(res.JSON()))
		return
	}
	for _, p := range res.Applied {
		fmt.Println(p)
	}
	for _, d := range res.Diagnostics {
		fmt.Printf("%s: %s\n", d.Level, d.Message)
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func main() {
	o, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "glyph-suffixer: %v\n", err)
		os.Exit(2)
	}
	if err := run(o); err != nil {
		fmt.Fprintf(os.Stderr, "glyph-suffixer: %v\n", err)
		os.Exit(1)
	}
}
