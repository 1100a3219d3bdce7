package audit

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// CoverageRange is one instrumented byte span with its execution count,
// as reported by the profiler.
type CoverageRange struct {
	StartOffset uint64 `json:"startOffset"`
	EndOffset   uint64 `json:"endOffset"`
	Count       uint64 `json:"count"`
}

// ScriptFunction is one function of a script with its coverage ranges.
// Ranges within a single function never overlap each other.
type ScriptFunction struct {
	Name   string          `json:"functionName"`
	Ranges []CoverageRange `json:"ranges"`
}

// Script is the full coverage record of one script resource.
type Script struct {
	URL       string           `json:"url"`
	Functions []ScriptFunction `json:"functions"`
}

// ParseCoverage decodes a precise-coverage dump as produced by the DevTools
// profiler, either the full `{"result": [...]}` envelope or a bare array of
// script records. Records without a URL (eval'd or injected code that was
// never delivered as a resource) are skipped.
func ParseCoverage(data []byte) ([]Script, error) {
	var dump struct {
		Result []Script `json:"result"`
	}
	if err := json.Unmarshal(data, &dump); err != nil {
		var bare []Script
		if err2 := json.Unmarshal(data, &bare); err2 != nil {
			return nil, errors.Wrap(err, "failed to unmarshal coverage dump")
		}
		dump.Result = bare
	}

	scripts := make([]Script, 0, len(dump.Result))
	for _, s := range dump.Result {
		if s.URL == "" {
			continue
		}
		scripts = append(scripts, s)
	}
	return scripts, nil
}
