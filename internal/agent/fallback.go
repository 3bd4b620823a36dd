package agent

// Brief identifies one of the canned fallback answers.
type Brief string

const (
	BriefDevelopers   Brief = "developers"
	BriefRequirements Brief = "requirements"
	BriefWelcome      Brief = "welcome"
)

// FallbackResponder produces the pre-authored replies used when the model
// cannot be called or its answer is unusable, and when a message is off topic.
type FallbackResponder struct{}

// NewFallbackResponder creates a FallbackResponder.
func NewFallbackResponder() *FallbackResponder {
	return &FallbackResponder{}
}

// Choose picks the brief matching message.
func (f *FallbackResponder) Choose(message string) Brief {
	lowered := lower(message)
	switch {
	case containsAny(lowered, developerKeywords):
		return BriefDevelopers
	case containsAny(lowered, propertyKeywords):
		return BriefRequirements
	default:
		return BriefWelcome
	}
}

// Respond returns the brief for message in lang, using english when lang has
// no authored text.
func (f *FallbackResponder) Respond(lang Language, message string) string {
	return briefs[contentLanguage(lang)][f.Choose(message)]
}

// Redirect returns the off-topic redirection for lang.
func (f *FallbackResponder) Redirect(lang Language) string {
	return redirects[contentLanguage(lang)]
}

// Briefs lists every brief authored for lang.
func (f *FallbackResponder) Briefs(lang Language) []string {
	set := briefs[contentLanguage(lang)]
	return []string{set[BriefDevelopers], set[BriefRequirements], set[BriefWelcome]}
}

func contentLanguage(lang Language) Language {
	if lang.Supported() {
		return lang
	}
	return English
}
