// Package agent contains the conversational pipeline of the Dubai real estate
// assistant: language detection, topic guarding, preference extraction,
// prompt composition, response formatting and the deterministic fallbacks.
package agent

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Language is a resolved response language. English, Arabic and Tamil are
// supported; an explicit override may carry any other tag.
type Language string

const (
	English Language = "english"
	Arabic  Language = "arabic"
	Tamil   Language = "tamil"
)

// AutoLanguage asks the detector to infer the language from the message.
const AutoLanguage = "auto"

// Supported reports whether l is one of the languages with authored content.
func (l Language) Supported() bool {
	switch l {
	case English, Arabic, Tamil:
		return true
	}
	return false
}

// Detector resolves the language a reply should be written in.
type Detector interface {
	Detect(message, requested string) Language
}

// ScriptRule maps a Unicode script to a language.
type ScriptRule struct {
	Script   *unicode.RangeTable
	Language Language
}

// DefaultScriptRules is the detection order used by NewScriptDetector.
// Arabic is checked before Tamil.
var DefaultScriptRules = []ScriptRule{
	{Script: unicode.Arabic, Language: Arabic},
	{Script: unicode.Tamil, Language: Tamil},
}

// ScriptDetector picks a language from the scripts present in the message.
type ScriptDetector struct {
	rules []ScriptRule
}

// NewScriptDetector creates a detector evaluating rules in order. With no
// rules it uses DefaultScriptRules.
func NewScriptDetector(rules ...ScriptRule) *ScriptDetector {
	if len(rules) == 0 {
		rules = DefaultScriptRules
	}
	return &ScriptDetector{rules: rules}
}

// Detect returns the requested language when it is set and not "auto",
// otherwise the language of the first rule whose script occurs anywhere in the
// message. Everything else is english.
func (d *ScriptDetector) Detect(message, requested string) (lang Language) {
	defer func() {
		if r := recover(); r != nil {
			lang = English
		}
	}()

	requested = strings.TrimSpace(requested)
	if requested != "" && !strings.EqualFold(requested, AutoLanguage) {
		return Language(lower(requested))
	}

	if strings.TrimSpace(message) == "" {
		return English
	}

	for _, rule := range d.rules {
		if containsScript(message, rule.Script) {
			return rule.Language
		}
	}

	return English
}

// lower folds s with a fresh Caser; Casers keep state and are not safe to share.
func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

func containsScript(s string, table *unicode.RangeTable) bool {
	for _, r := range s {
		if unicode.Is(table, r) {
			return true
		}
	}
	return false
}
