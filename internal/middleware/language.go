package middleware

import (
	"context"

	"github.com/SscSPs/purchase_settlement_app/internal/apperrors"
	"github.com/gin-gonic/gin"
)

const languageCtxKey = contextKey("language")

// LanguageMiddleware resolves the response language from Accept-Language,
// falling back to defaultLanguage.
func LanguageMiddleware(defaultLanguage string) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := defaultLanguage
		if header := c.GetHeader("Accept-Language"); header != "" {
			lang = apperrors.MatchLanguage(header)
		}
		c.Request = c.Request.WithContext(WithLanguage(c.Request.Context(), lang))
		c.Next()
	}
}

// WithLanguage returns a copy of ctx carrying lang.
func WithLanguage(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, languageCtxKey, lang)
}

// GetLanguageFromCtx returns the request language or the catalogue default.
func GetLanguageFromCtx(ctx context.Context) string {
	if lang, ok := ctx.Value(languageCtxKey).(string); ok && lang != "" {
		return lang
	}
	return apperrors.DefaultLanguage
}
