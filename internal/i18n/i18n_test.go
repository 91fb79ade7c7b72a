package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectLanguage(t *testing.T) {
	assert.Equal(t, "ar", DetectLanguage("ar-DZ,ar;q=0.9"))
	assert.Equal(t, "ar", DetectLanguage("AR"))
	assert.Equal(t, "fr", DetectLanguage("fr-FR,fr;q=0.8"))
	assert.Equal(t, "fr", DetectLanguage("en-US,ar;q=0.5"))
	assert.Equal(t, "fr", DetectLanguage(""))
}

func TestTranslations(t *testing.T) {
	assert.Equal(t, "Identifiants invalides.", T("fr", "auth.invalid"))
	assert.Equal(t, "بيانات الاعتماد غير صحيحة.", T("ar", "auth.invalid"))
	assert.Equal(t, "Identifiants invalides.", T("es", "auth.invalid"))
	assert.Equal(t, "__nope__", T("ar", "__nope__"))
}

func TestEveryCodeTranslated(t *testing.T) {
	for code := range messages["fr"] {
		_, ok := messages["ar"][code]
		assert.True(t, ok, "missing ar translation for %s", code)
	}
}
