package utils

// Minimal server-side i18n for fixed keys.
// Page copy lives in the frontend; the server only provides essentials.

var translations = map[string]map[string]string{
	"az": {
		"health.ok":          "hazır",
		"question.submitted": "Sualınız göndərildi! Tezliklə sizinlə əlaqə saxlayacağıq.",
	},
	"en": {
		"health.ok":          "ok",
		"question.submitted": "Your question has been submitted! We'll get back to you soon.",
	},
	"ru": {
		"health.ok":          "готово",
		"question.submitted": "Ваш вопрос отправлен! Мы скоро свяжемся с вами.",
	},
}

// T returns the translated string for key in locale; falls back to Azerbaijani.
func T(locale, key string) string {
	if m, ok := translations[locale]; ok {
		if v, ok := m[key]; ok {
			return v
		}
	}
	if v, ok := translations["az"][key]; ok {
		return v
	}
	return key
}
