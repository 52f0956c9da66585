// Package i18n localizes API error messages. The original intake form spoke
// Turkish to donors; admin tooling prefers English. Only API text is
// localized here, page-level UI translation is out of scope.
package i18n

import (
	"golang.org/x/text/language"
)

var supported = []language.Tag{
	language.Turkish, // default
	language.English,
}

var matcher = language.NewMatcher(supported)

// MatchLocale picks the best supported locale for the request, considering an
// explicit X-Locale override first and the Accept-Language header second.
func MatchLocale(override, acceptLanguage, fallback string) string {
	if override != "" {
		acceptLanguage = override
	}
	if acceptLanguage == "" {
		acceptLanguage = fallback
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		tags = []language.Tag{language.Make(fallback)}
	}
	_, idx, _ := matcher.Match(tags...)
	base, _ := supported[idx].Base()
	return base.String()
}

var catalog = map[string]map[string]string{
	"tr": {
		"full_name.min_length":      "Ad Soyad en az 2 karakter olmalıdır",
		"phone.min_length":          "Telefon numarası en az 10 karakter olmalıdır",
		"privacy_policy.required":   "Gizlilik politikasını kabul etmelisiniz",
		"status.invalid":            "Geçersiz durum değeri",
		"admin_notes.max_length":    "Yönetici notları en fazla 1000 karakter olabilir",
		"help_options.invalid":      "Geçersiz yardım seçeneği",
		"device_type.invalid":       "Geçersiz cihaz türü",
		"device_condition.invalid":  "Geçersiz cihaz durumu",
		"estimated_value.invalid":   "Geçersiz tahmini değer aralığı",
		"device_age.invalid":        "Geçersiz cihaz yaşı aralığı",
		"username.required":         "Kullanıcı adı gereklidir",
		"password.required":         "Şifre gereklidir",
		"email.required":            "E-posta gereklidir",
		"password.min_length":       "Şifre en az 8 karakter olmalıdır",
		"password.upper_required":   "Şifre en az bir büyük harf içermelidir",
		"password.lower_required":   "Şifre en az bir küçük harf içermelidir",
		"password.digit_required":   "Şifre en az bir rakam içermelidir",
		"password.special_required": "Şifre en az bir özel karakter içermelidir",
	},
	"en": {
		"full_name.min_length":      "Full name must be at least 2 characters",
		"phone.min_length":          "Phone number must be at least 10 characters",
		"privacy_policy.required":   "You must accept the privacy policy",
		"status.invalid":            "Invalid status value",
		"admin_notes.max_length":    "Admin notes may be at most 1000 characters",
		"help_options.invalid":      "Invalid help option",
		"device_type.invalid":       "Invalid device type",
		"device_condition.invalid":  "Invalid device condition",
		"estimated_value.invalid":   "Invalid estimated value bracket",
		"device_age.invalid":        "Invalid device age bracket",
		"username.required":         "Username is required",
		"password.required":         "Password is required",
		"email.required":            "Email is required",
		"password.min_length":       "Password must be at least 8 characters",
		"password.upper_required":   "Password must contain an upper-case letter",
		"password.lower_required":   "Password must contain a lower-case letter",
		"password.digit_required":   "Password must contain a digit",
		"password.special_required": "Password must contain a special character",
	},
}

// Message resolves the localized text for a field/rule pair. Unknown keys
// fall back to English, then to the raw key so nothing is silently dropped.
func Message(locale, field, rule string) string {
	key := field + "." + rule
	if msgs, ok := catalog[locale]; ok {
		if msg, ok := msgs[key]; ok {
			return msg
		}
	}
	if msg, ok := catalog["en"][key]; ok {
		return msg
	}
	return key
}
