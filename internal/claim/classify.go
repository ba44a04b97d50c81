package claim

import (
	"fmt"
	"strings"

	mferr "github.com/0x1723/mfbldr/pkg/errors"
)

// Markers for extracting a revert reason from verbose provider output.
const (
	reasonStart = `(reason="`
	reasonEnd   = `", method=`
)

// classifyRule pairs a substring with the error it maps to.
type classifyRule struct {
	needle string
	build  func(c classifyContext) error
}

// classifyContext carries what the rules need to phrase their messages.
type classifyContext struct {
	label    string
	parent   string
	multiple bool
}

// Rules are checked in order and the first match wins: a failure text
// mentioning more than one condition classifies as the earliest rule.
var classifyRules = []classifyRule{
	{
		needle: "Not authorised",
		build: func(classifyContext) error {
			return mferr.ErrNotOwner
		},
	},
	{
		needle: "sub-domain already exists",
		build: func(c classifyContext) error {
			return mferr.WithMessage(mferr.ErrLabelTaken,
				fmt.Sprintf("%s.%s already exists", c.label, c.parent))
		},
	},
	{
		needle: "user rejected transaction",
		build: func(classifyContext) error {
			return mferr.ErrUserRejected
		},
	},
	{
		needle: "Token has already been set",
		build: func(c classifyContext) error {
			if c.multiple {
				return mferr.WithMessage(mferr.ErrAssetAlreadyClaimed,
					"a name has already been claimed with this token")
			}
			return mferr.WithMessage(mferr.ErrAssetAlreadyClaimed,
				"a name has already been claimed with your MFBLDR token")
		},
	},
}

// Classify maps raw provider failure text onto a structured claim error.
// Unrecognized text falls back to the revert reason embedded in verbose
// provider output, and failing that to a generic registration error
// carrying the raw text.
func Classify(raw, label, parent string, multiple bool) error {
	c := classifyContext{label: label, parent: parent, multiple: multiple}

	for _, rule := range classifyRules {
		if strings.Contains(raw, rule.needle) {
			return rule.build(c)
		}
	}

	if reason, ok := extractReason(raw); ok {
		return mferr.WithMessage(mferr.ErrClaimFailed, reason)
	}

	return mferr.WithDetails(mferr.ErrClaimFailed, map[string]string{
		"raw": truncate(raw, 256),
	})
}

// extractReason pulls the revert reason out of verbose provider output
// of the form `... (reason="...", method=...)`.
func extractReason(raw string) (string, bool) {
	start := strings.Index(raw, reasonStart)
	if start < 0 {
		return "", false
	}
	rest := raw[start+len(reasonStart):]

	end := strings.Index(rest, reasonEnd)
	if end < 0 {
		return "", false
	}
	return rest[:end], true
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
