// Package i18n holds the user-facing messages in French and Arabic.
package i18n

import "strings"

const DefaultLang = "fr"

var messages = map[string]map[string]string{
	"fr": {
		"auth.invalid":      "Identifiants invalides.",
		"auth.confirm":      "Compte créé ! Connectez-vous avec admin@auto.com ou confirmez votre email.",
		"auth.required":     "Connexion requise.",
		"auth.forbidden":    "Accès réservé à l'administrateur.",
		"language.invalid":  "Langue non prise en charge.",
		"request.invalid":   "Requête invalide.",
		"not_found":         "Élément introuvable.",
		"backup.invalid":    "Fichier de sauvegarde invalide.",
		"cart.out_of_stock": "Produit en rupture de stock.",
		"cart.empty":        "Le panier est vide.",
		"storage.failed":    "Erreur de communication avec le serveur de données.",
	},
	"ar": {
		"auth.invalid":      "بيانات الاعتماد غير صحيحة.",
		"auth.confirm":      "تم إنشاء الحساب! سجّل الدخول باستخدام admin@auto.com أو أكّد بريدك الإلكتروني.",
		"auth.required":     "يجب تسجيل الدخول.",
		"auth.forbidden":    "الوصول مخصص للمسؤول.",
		"language.invalid":  "اللغة غير مدعومة.",
		"request.invalid":   "طلب غير صالح.",
		"not_found":         "العنصر غير موجود.",
		"backup.invalid":    "ملف النسخ الاحتياطي غير صالح.",
		"cart.out_of_stock": "المنتج غير متوفر في المخزون.",
		"cart.empty":        "السلة فارغة.",
		"storage.failed":    "خطأ في الاتصال بخادم البيانات.",
	},
}

// T returns the message for code in lang, falling back to French, then to the code itself.
func T(lang, code string) string {
	if m, ok := messages[lang]; ok {
		if s, ok := m[code]; ok {
			return s
		}
	}
	if s, ok := messages[DefaultLang][code]; ok {
		return s
	}
	return code
}

// DetectLanguage picks ar or fr from an Accept-Language header. Defaults to fr.
func DetectLanguage(header string) string {
	h := strings.ToLower(strings.TrimSpace(header))
	if h == "" {
		return DefaultLang
	}
	primary := strings.SplitN(h, ",", 2)[0]
	primary = strings.SplitN(primary, ";", 2)[0]
	if strings.HasPrefix(primary, "ar") {
		return "ar"
	}
	return DefaultLang
}
