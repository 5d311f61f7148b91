package prettify

import (
	"path/filepath"
	"strings"
)

var extLanguage = map[string]Language{
	".json":        LangJSON,
	".geojson":     LangJSON,
	".har":         LangJSON,
	".webmanifest": LangJSON,

	".xml":    LangXML,
	".svg":    LangXML,
	".xsd":    LangXML,
	".xsl":    LangXML,
	".xslt":   LangXML,
	".rss":    LangXML,
	".atom":   LangXML,
	".plist":  LangXML,
	".xhtml":  LangXML,
	".csproj": LangXML,
	".pom":    LangXML,
}

// LanguageForExt returns the language registered for the extension of
// filename, if there is one.
func LanguageForExt(filename string) (Language, bool) {
	lang, ok := extLanguage[strings.ToLower(filepath.Ext(filename))]
	return lang, ok
}

// DetectLanguage guesses the language of a file. A known extension wins;
// otherwise text that starts with '<' after any whitespace or byte order
// mark is XML and everything else is JSON.
func DetectLanguage(filename, text string) Language {
	if lang, ok := LanguageForExt(filename); ok {
		return lang
	}
	text = strings.TrimPrefix(text, "\uFEFF")
	text = strings.TrimLeft(text, " \t\r\n")
	if strings.HasPrefix(text, "<") {
		return LangXML
	}
	return LangJSON
}
