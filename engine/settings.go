package engine

import (
	"strings"

	"github.com/go-faster/errors"

	"github.com/yaroher/glyph-suffixer/config"
	"github.com/yaroher/glyph-suffixer/internal/help"
	"github.com/yaroher/glyph-suffixer/suffix"
)

func mapGetOrDefault(paramsMap map[string]string, key string, defaultValue string) string {
	if val, ok := paramsMap[key]; ok {
		return val
	}
	return defaultValue
}

var paramAliases = map[string]string{
	"old":              "old_suffix",
	"new":              "new_suffix",
	"suffix":           "new_suffix",
	"rewrite_features": "features",
}

var knownParams = map[string]bool{
	"mode": true, "scope": true, "old_suffix": true, "new_suffix": true, "features": true,
}

// ParseParams reads a request from "key=value,key=value". Keys are matched
// in any case style (oldSuffix, old-suffix, old_suffix). Values missing from
// params come from cfg. Without an explicit mode, giving old_suffix selects
// replace and anything else append.
func ParseParams(params string, cfg config.Config) (Request, error) {
	paramsMap := make(map[string]string)
	for _, param := range strings.Split(params, ",") {
		paramSplit := strings.SplitN(param, "=", 2)
		if len(paramSplit) != 2 {
			continue
		}
		key := help.NormalizeKey(paramSplit[0])
		if alias, ok := paramAliases[key]; ok {
			key = alias
		}
		if !knownParams[key] {
			return Request{}, errors.Errorf("unknown parameter %q", paramSplit[0])
		}
		paramsMap[key] = strings.TrimSpace(paramSplit[1])
	}

	req := Request{
		OldSuffix:       mapGetOrDefault(paramsMap, "old_suffix", ""),
		NewSuffix:       mapGetOrDefault(paramsMap, "new_suffix", ""),
		RewriteFeatures: help.ParseBool(mapGetOrDefault(paramsMap, "features", ""), cfg.RewriteFeatures),
	}

	scope, err := config.ParseScope(help.StringOrDefault(paramsMap["scope"], string(cfg.Scope)))
	if err != nil {
		return Request{}, err
	}
	req.Scope = scope

	defaultMode := string(suffix.ModeAppend)
	if req.OldSuffix != "" {
		defaultMode = string(suffix.ModeReplace)
	}
	mode, err := suffix.ParseMode(help.StringOrDefault(paramsMap["mode"], defaultMode))
	if err != nil {
		return Request{}, err
	}
	req.Mode = mode
	return req, nil
}
