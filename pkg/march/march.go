// Package march selects the effective microarchitecture tuning level
// (e.g. v2, v3, v4) for a single invocation.
package march

import (
	"log/slog"

	"github.com/machlab/marchexec/pkg/bootparam"
)

// Key is the boot parameter consulted for the system-wide march selection.
const Key = "march"

// Origin identifies where the effective march tag came from.
type Origin string

const (
	OriginFlag    Origin = "flag"
	OriginConfig  Origin = "config"
	OriginCmdline Origin = "cmdline"
	OriginNone    Origin = ""
)

// Selection is the effective march tag together with its provenance. A
// Selection is computed once per invocation and never mutated afterward.
type Selection struct {
	Tag    string
	Origin Origin
}

// Select applies the precedence order: explicit -m flag, configuration-file
// default, kernel command line. An unreadable boot-parameter source is
// advisory only: it logs a warning and yields no discovered tag.
func Select(flagTag, configTag string, src *bootparam.Source) Selection {
	if flagTag != "" {
		return Selection{Tag: flagTag, Origin: OriginFlag}
	}
	if configTag != "" {
		return Selection{Tag: configTag, Origin: OriginConfig}
	}

	val, ok, err := src.Lookup(Key)
	if err != nil {
		slog.Warn("cannot read boot parameters, no march discovered", "error", err)
		return Selection{}
	}
	if !ok || val == "" {
		return Selection{}
	}
	return Selection{Tag: val, Origin: OriginCmdline}
}
