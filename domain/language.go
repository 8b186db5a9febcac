package domain

const DefaultLanguage = "en"

var supportedLanguages = map[string]string{
	"en": "English",
	"pl": "Polish",
	"es": "Spanish",
	"fr": "French",
	"de": "German",
	"it": "Italian",
	"pt": "Portuguese",
	"nl": "Dutch",
	"ja": "Japanese",
	"zh": "Chinese",
	"ko": "Korean",
}

// ResolveLanguage maps a request language tag onto the supported set,
// silently falling back to the default for anything it does not recognize.
func ResolveLanguage(tag string) string {
	if _, ok := supportedLanguages[tag]; ok {
		return tag
	}
	return DefaultLanguage
}

// LanguageName returns the English name of a resolved tag, used when
// prompting the generation provider.
func LanguageName(tag string) string {
	return supportedLanguages[ResolveLanguage(tag)]
}
