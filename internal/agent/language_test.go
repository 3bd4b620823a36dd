package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScriptDetector_Detect(t *testing.T) {
	d := NewScriptDetector()

	tests := []struct {
		name      string
		message   string
		requested string
		want      Language
	}{
		{name: "latin only", message: "Looking for a villa in Jumeirah", want: English},
		{name: "empty", message: "", want: English},
		{name: "whitespace", message: "  \t\n", want: English},
		{name: "arabic", message: "أريد شقة في دبي مارينا", want: Arabic},
		{name: "arabic mixed with latin", message: "Hello مرحبا", want: Arabic},
		{name: "tamil", message: "வணக்கம் friend", want: Tamil},
		{name: "arabic wins over earlier tamil", message: "வணக்கம் مرحبا", want: Arabic},
		{name: "digits and punctuation", message: "2BR, AED 90,000?", want: English},
		{name: "explicit override", message: "Hello", requested: "Tamil", want: Tamil},
		{name: "override beats script", message: "مرحبا", requested: "english", want: English},
		{name: "auto detects", message: "مرحبا", requested: "auto", want: Arabic},
		{name: "auto is case insensitive", message: "வணக்கம்", requested: "AUTO", want: Tamil},
		{name: "blank override detects", message: "مرحبا", requested: "  ", want: Arabic},
		{name: "unsupported override kept", message: "Bonjour", requested: "French", want: Language("french")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.Detect(tt.message, tt.requested))
		})
	}
}

func TestScriptDetector_CustomRules(t *testing.T) {
	d := NewScriptDetector(ScriptRule{Script: DefaultScriptRules[1].Script, Language: Tamil})

	assert.Equal(t, English, d.Detect("مرحبا", ""))
	assert.Equal(t, Tamil, d.Detect("வணக்கம்", ""))
}

func TestLanguage_Supported(t *testing.T) {
	assert.True(t, English.Supported())
	assert.True(t, Arabic.Supported())
	assert.True(t, Tamil.Supported())
	assert.False(t, Language("french").Supported())
	assert.False(t, Language("").Supported())
}
