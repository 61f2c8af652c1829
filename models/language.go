package models

import "fmt"

// Language представляет язык игры, соответствующий ENUM в БД.
type Language string

const (
	LanguageEN Language = "EN"
	LanguageES Language = "ES"
	LanguageFR Language = "FR"
	LanguageDE Language = "DE"
	LanguageIT Language = "IT"
	LanguagePT Language = "PT"
)

var knownLanguages = map[Language]struct{}{
	LanguageEN: {},
	LanguageES: {},
	LanguageFR: {},
	LanguageDE: {},
	LanguageIT: {},
	LanguagePT: {},
}

// ParseLanguage валидирует строковое значение языка на границе запроса.
func ParseLanguage(s string) (Language, error) {
	l := Language(s)
	if _, ok := knownLanguages[l]; !ok {
		return "", fmt.Errorf("unknown language %q", s)
	}
	return l, nil
}

func (l Language) Valid() bool {
	_, ok := knownLanguages[l]
	return ok
}
