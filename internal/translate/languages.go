package translate

// Language is a translation target offered to users.
type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// SupportedLanguages are the accepted targets, in display order.
var SupportedLanguages = []Language{
	{"ar", "Arabic"},
	{"en", "English"},
	{"fr", "French"},
	{"de", "German"},
	{"es", "Spanish"},
	{"it", "Italian"},
	{"pt", "Portuguese"},
	{"ru", "Russian"},
	{"ja", "Japanese"},
	{"zh", "Chinese"},
}

// Supported reports whether code is a supported target.
func Supported(code string) bool {
	for _, l := range SupportedLanguages {
		if l.Code == code {
			return true
		}
	}
	return false
}

// Name returns the display name for code, or code itself.
func Name(code string) string {
	for _, l := range SupportedLanguages {
		if l.Code == code {
			return l.Name
		}
	}
	return code
}
