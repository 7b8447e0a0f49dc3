// internal/middleware/i18n.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/shoplist-backend/internal/i18n"
)

// I18nMiddleware stores the caller's preferred supported language as "lang".
func I18nMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("lang", parseLanguage(c.GetHeader("Accept-Language")))
		c.Next()
	}
}

// Script subtags that name a loaded locale.
var languageAliases = map[string]string{
	"zh_Hant": "zh_TW",
}

// parseLanguage picks the first preference of the header, e.g.
// "zh-TW,zh;q=0.9,en;q=0.8", and matches it against the loaded locales,
// falling back from region to base language and then to English.
func parseLanguage(header string) string {
	first := strings.TrimSpace(strings.Split(strings.Split(header, ",")[0], ";")[0])
	if first == "" {
		return "en"
	}

	tag := strings.ReplaceAll(first, "-", "_")
	if alias, ok := languageAliases[tag]; ok {
		tag = alias
	}

	supported := make(map[string]bool)
	for _, lang := range i18n.GetSupportedLanguages() {
		supported[lang] = true
	}

	if supported[tag] {
		return tag
	}
	if base := strings.SplitN(tag, "_", 2)[0]; supported[base] {
		return base
	}
	return "en"
}
