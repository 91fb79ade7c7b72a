package models

type Language string

const (
	LangFR Language = "fr"
	LangAR Language = "ar"
)

func (l Language) Valid() bool {
	return l == LangFR || l == LangAR
}
