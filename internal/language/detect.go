package language

import (
	"strings"

	"github.com/pemistahl/lingua-go"
)

// Detector guesses the language of texts among a fixed set of languages
type Detector struct {
	detector lingua.LanguageDetector
	single   string
}

// NewDetector returns a detector choosing among the languages with the given ISO 639-1 codes.
// Unknown codes are ignored.
func NewDetector(codes []string) *Detector {
	var languages []lingua.Language
	for _, code := range codes {
		lang := lingua.GetLanguageFromIsoCode639_1(lingua.GetIsoCode639_1FromValue(code))
		if lang != lingua.Unknown {
			languages = append(languages, lang)
		}
	}

	d := &Detector{}
	switch len(languages) {
	case 0:
	case 1:
		d.single = strings.ToLower(languages[0].IsoCode639_1().String())
	default:
		d.detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(languages...).
			Build()
	}
	return d
}

// Detect returns the ISO 639-1 code of the language of text, or an empty string if it
// cannot be told
func (d *Detector) Detect(text string) string {
	if d.detector == nil || strings.TrimSpace(text) == "" {
		return d.single
	}
	if language, exists := d.detector.DetectLanguageOf(text); exists {
		return strings.ToLower(language.IsoCode639_1().String())
	}
	return ""
}
