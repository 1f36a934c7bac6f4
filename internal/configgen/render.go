package configgen

import (
	"regexp"
	"strings"
)

var tokenPattern = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_.\-]+)\s*\}\}`)

// Render replaces every {{key.path}} token in content with its value in
// vars. Unknown keys render as "". Substituted text is not scanned again.
func Render(content string, vars map[string]string) string {
	return tokenPattern.ReplaceAllStringFunc(content, func(tok string) string {
		m := tokenPattern.FindStringSubmatch(tok)
		return vars[m[1]]
	})
}

// setFor maps a language and package manager to a config set name.
var setFor = map[string]string{
	"typescript-pnpm": "typescript-pnpm",
	"typescript-npm":  "typescript-pnpm",
	"typescript-yarn": "typescript-pnpm",
	"javascript-pnpm": "typescript-pnpm",
	"javascript-npm":  "typescript-pnpm",
	"go-go":           "go",
	"go":              "go",
	"cpp-xmake":       "cpp-xmake",
	"c-xmake":         "cpp-xmake",
	"cpp":             "cpp-xmake",
	"c":               "cpp-xmake",
	"react-native":    "react-native-typescript",
}

// SetName returns the config set for language and packageManager, trying
// "<language>-<packageManager>" first and then "<language>".
func SetName(language, packageManager string) (string, bool) {
	language = strings.ToLower(language)
	key := language + "-" + strings.ToLower(packageManager)
	if name, ok := setFor[key]; ok {
		return name, true
	}
	name, ok := setFor[language]
	return name, ok
}
