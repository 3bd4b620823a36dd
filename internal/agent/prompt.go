package agent

import (
	"fmt"
	"strconv"
	"strings"

	"realestate-agent/internal/session"
)

// Content filter categories and thresholds understood by the model providers.
const (
	HarmCategoryHarassment       = "HARM_CATEGORY_HARASSMENT"
	HarmCategoryHateSpeech       = "HARM_CATEGORY_HATE_SPEECH"
	HarmCategorySexuallyExplicit = "HARM_CATEGORY_SEXUALLY_EXPLICIT"
	HarmCategoryDangerousContent = "HARM_CATEGORY_DANGEROUS_CONTENT"

	BlockNone = "BLOCK_NONE"
)

// Prompt limits.
const (
	MaxPromptListings = 5
	MaxPromptHistory  = 5
)

// Listing is the part of a property the prompt shows the model. Missing
// values render as placeholders.
type Listing struct {
	Title        string
	Location     string
	Bedrooms     *int
	Price        *float64
	PropertyType string
}

// SafetySetting is one provider content filter threshold.
type SafetySetting struct {
	Category  string
	Threshold string
}

// GenerationParams are the sampling settings sent with every prompt.
type GenerationParams struct {
	Temperature     float64
	TopP            float64
	TopK            int
	MaxOutputTokens int
	SafetySettings  []SafetySetting
}

// DefaultGenerationParams returns the stock sampling settings. Provider
// filters are fully relaxed because the topic guard does domain filtering.
func DefaultGenerationParams() GenerationParams {
	return GenerationParams{
		Temperature:     0.7,
		TopP:            0.8,
		TopK:            40,
		MaxOutputTokens: 1024,
		SafetySettings: []SafetySetting{
			{Category: HarmCategoryHarassment, Threshold: BlockNone},
			{Category: HarmCategoryHateSpeech, Threshold: BlockNone},
			{Category: HarmCategorySexuallyExplicit, Threshold: BlockNone},
			{Category: HarmCategoryDangerousContent, Threshold: BlockNone},
		},
	}
}

// Prompt is the request handed to a Generator: a system instruction, the
// user turn content, and sampling parameters.
type Prompt struct {
	System  string
	Content string
	Params  GenerationParams
}

// Composer builds prompts.
type Composer struct {
	params GenerationParams
}

// NewComposer creates a composer attaching params to every prompt.
func NewComposer(params GenerationParams) *Composer {
	return &Composer{params: params}
}

// Compose assembles the prompt for one turn. Only the first five listings and
// the last five exchanges are used.
func (c *Composer) Compose(lang Language, listings []Listing, history []session.Exchange, message string) Prompt {
	var content strings.Builder

	content.WriteString("Current available properties:\n")
	content.WriteString(renderListings(listings))
	content.WriteString("\n\nConversation history (last 5 exchanges):\n")
	content.WriteString(renderHistory(history))
	content.WriteString("\n\nUser's current message:\n")
	content.WriteString(message)

	params := c.params
	params.SafetySettings = append([]SafetySetting(nil), c.params.SafetySettings...)

	return Prompt{
		System:  systemInstruction(lang),
		Content: content.String(),
		Params:  params,
	}
}

func renderListings(listings []Listing) string {
	if len(listings) == 0 {
		return "No properties available"
	}
	if len(listings) > MaxPromptListings {
		listings = listings[:MaxPromptListings]
	}

	lines := make([]string, 0, len(listings))
	for i, l := range listings {
		lines = append(lines, fmt.Sprintf("Property %d: %s in %s, %sBR, AED %s, %s",
			i+1,
			orDefault(l.Title, "No title"),
			orDefault(l.Location, "Unknown location"),
			formatBedrooms(l.Bedrooms),
			formatPrice(l.Price),
			orDefault(l.PropertyType, "Unknown type"),
		))
	}
	return strings.Join(lines, "\n")
}

func renderHistory(history []session.Exchange) string {
	recent := session.Last(history, MaxPromptHistory)
	if len(recent) == 0 {
		return "No previous conversation"
	}

	turns := make([]string, 0, len(recent))
	for _, ex := range recent {
		turns = append(turns, "User: "+ex.User+"\nAssistant: "+ex.Assistant)
	}
	return strings.Join(turns, "\n")
}

func orDefault(v, placeholder string) string {
	if strings.TrimSpace(v) == "" {
		return placeholder
	}
	return v
}

func formatBedrooms(n *int) string {
	if n == nil {
		return "N/A"
	}
	return strconv.Itoa(*n)
}

func formatPrice(p *float64) string {
	if p == nil {
		return "N/A"
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}

func systemInstruction(lang Language) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are a professional real estate agent in Dubai. You speak %s fluently.\n", lang)
	b.WriteString("Your role is to help users find properties, answer real estate questions and provide Dubai market insights.\n\n")

	b.WriteString("Domain policy:\n")
	b.WriteString("- Only discuss Dubai real estate: buying, renting, selling, investing, neighbourhoods, developers, regulations and the listed properties.\n")
	b.WriteString("- Never discuss these topics: vehicles, financial markets, politics or religion, technology, travel or tourism (except property viewing), food, sports or entertainment.\n")
	b.WriteString("- If the user asks about a prohibited topic, do not refuse silently. Briefly say it is outside your expertise and steer the conversation back to Dubai property.\n")
	b.WriteString("- If the user is looking for properties, suggest relevant ones from the available properties. If none match exactly, suggest similar alternatives.\n")
	b.WriteString("- Ask clarifying questions about budget, location, property type and bedrooms when they are missing.\n\n")

	b.WriteString("Formatting rules:\n")
	fmt.Fprintf(&b, "- Write the entire response in %s. Do not mix in other languages.\n", lang)
	b.WriteString("- Use numbered lists (1. 2. 3.) for main items.\n")
	b.WriteString("- Use bullet points (•) for details under a main item.\n")
	b.WriteString("- Leave exactly one blank line between sections.\n")
	b.WriteString("- Write section headers as plain text lines ending with a colon.\n")
	b.WriteString("- Keep paragraphs to two or three sentences.\n")
	b.WriteString("- Do not use markdown: no asterisks, underscores, pound signs or backticks.\n\n")

	b.WriteString("Language notes:\n")
	b.WriteString(languageNotes(lang))

	return b.String()
}

func languageNotes(lang Language) string {
	switch lang {
	case Arabic:
		return "- Use formal Modern Standard Arabic suitable for a professional agent.\n" +
			"- Text is read right to left; keep numbers and AED amounts in Western digits.\n" +
			"- Use Arabic punctuation (، ؛ ؟) and write area names in Arabic with the English name in parentheses when helpful.\n"
	case Tamil:
		return "- Use polite, respectful Tamil (நீங்கள் form).\n" +
			"- Text is read left to right; keep prices in AED with Western digits.\n" +
			"- Common real estate terms such as apartment or villa may be kept in English when there is no natural Tamil word.\n"
	case English:
		return "- Use clear, professional British English.\n" +
			"- Write prices as AED followed by the amount with thousands separators.\n" +
			"- Use standard English punctuation.\n"
	default:
		return fmt.Sprintf("- Respond in %s using a professional, polite register.\n", lang)
	}
}
