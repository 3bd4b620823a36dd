package agent

import (
	"strings"
	"unicode"
)

// GuardRule names the step of the decision chain that settled a message.
type GuardRule string

const (
	RuleDenied       GuardRule = "denied"
	RuleAllowed      GuardRule = "allowed"
	RuleShortMessage GuardRule = "short_message"
	RuleNoMatch      GuardRule = "no_match"
)

// shortMessageWords is the longest message accepted without any allow-list hit.
const shortMessageWords = 3

// Verdict is the outcome of a topic check.
type Verdict struct {
	InScope bool
	Rule    GuardRule
	Allow   string // first allow-list term found, if any
	Deny    string // first deny-list term found, if any
}

// TopicGuard decides whether a message belongs to the real estate domain
// before any model call is made.
type TopicGuard struct {
	allow termSet
	deny  termSet
}

// NewTopicGuard builds a guard over the given term lists. Nil lists use the
// built-in vocabularies.
func NewTopicGuard(allow, deny []string) *TopicGuard {
	if allow == nil {
		allow = AllowTerms
	}
	if deny == nil {
		deny = DenyTerms
	}
	return &TopicGuard{
		allow: newTermSet(allow),
		deny:  newTermSet(deny),
	}
}

// InScope reports whether the assistant should answer message.
func (g *TopicGuard) InScope(message string) bool {
	return g.Classify(message).InScope
}

// Classify runs the decision chain:
//  1. a deny-list hit without an allow-list hit is out of scope
//  2. an allow-list hit is in scope
//  3. messages of at most three words are in scope
//  4. anything else is out of scope
func (g *TopicGuard) Classify(message string) Verdict {
	words := tokenize(message)
	allowHit := g.allow.find(words)
	denyHit := g.deny.find(words)

	v := Verdict{Allow: allowHit, Deny: denyHit}
	switch {
	case denyHit != "" && allowHit == "":
		v.Rule = RuleDenied
	case allowHit != "":
		v.InScope, v.Rule = true, RuleAllowed
	case len(strings.Fields(message)) <= shortMessageWords:
		v.InScope, v.Rule = true, RuleShortMessage
	default:
		v.Rule = RuleNoMatch
	}
	return v
}

// termSet indexes single words for lookup and keeps phrases for sequence
// matching against the token stream.
type termSet struct {
	words   map[string]string
	phrases [][]string
}

func newTermSet(terms []string) termSet {
	ts := termSet{words: make(map[string]string)}
	for _, term := range terms {
		tokens := tokenize(term)
		switch len(tokens) {
		case 0:
		case 1:
			ts.words[tokens[0]] = term
		default:
			ts.phrases = append(ts.phrases, tokens)
		}
	}
	return ts
}

// find returns the first term present in words, or "".
func (ts termSet) find(words []string) string {
	for _, w := range words {
		for _, candidate := range singularForms(w) {
			if term, ok := ts.words[candidate]; ok {
				return term
			}
		}
	}

	for _, phrase := range ts.phrases {
		if containsPhrase(words, phrase) {
			return strings.Join(phrase, " ")
		}
	}

	return ""
}

// singularForms returns w plus the stems obtained by dropping a plural "s"
// or "es", so "villas" and "taxes" match "villa" and "tax".
func singularForms(w string) []string {
	forms := []string{w}
	if len(w) > 3 && strings.HasSuffix(w, "es") {
		forms = append(forms, strings.TrimSuffix(w, "es"))
	}
	if len(w) > 2 && strings.HasSuffix(w, "s") {
		forms = append(forms, strings.TrimSuffix(w, "s"))
	}
	return forms
}

func containsPhrase(words, phrase []string) bool {
	for i := 0; i+len(phrase) <= len(words); i++ {
		match := true
		for j, p := range phrase {
			w := words[i+j]
			if w != p && (j != len(phrase)-1 || !isPluralOf(w, p)) {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

func isPluralOf(w, base string) bool {
	return w == base+"s" || w == base+"es"
}

// tokenize lower-cases s and splits it into runs of letters, digits and
// combining marks. Marks are kept so Arabic and Tamil words stay whole.
func tokenize(s string) []string {
	return strings.FieldsFunc(lower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsMark(r)
	})
}
