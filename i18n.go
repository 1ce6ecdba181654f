package fileoutput

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys for the built-in UI strings.
const (
	MsgNoFile            = "No file uploaded"
	MsgDownloadFile      = "Download File"
	MsgDelete            = "Delete"
	MsgDeleteFileHeading = "Delete file?"
	MsgFilePreview       = "File preview"
)

var translations = map[language.Tag]map[string]string{
	language.German: {
		MsgNoFile:            "Keine Datei hochgeladen",
		MsgDownloadFile:      "Datei herunterladen",
		MsgDelete:            "Löschen",
		MsgDeleteFileHeading: "Datei löschen?",
		MsgFilePreview:       "Dateivorschau",
	},
	language.Spanish: {
		MsgNoFile:            "No se ha subido ningún archivo",
		MsgDownloadFile:      "Descargar archivo",
		MsgDelete:            "Eliminar",
		MsgDeleteFileHeading: "¿Eliminar archivo?",
		MsgFilePreview:       "Vista previa del archivo",
	},
	language.Russian: {
		MsgNoFile:            "Файл не загружен",
		MsgDownloadFile:      "Скачать файл",
		MsgDelete:            "Удалить",
		MsgDeleteFileHeading: "Удалить файл?",
		MsgFilePreview:       "Предпросмотр файла",
	},
}

var messages = newCatalog()

func newCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for _, key := range []string{MsgNoFile, MsgDownloadFile, MsgDelete, MsgDeleteFileHeading, MsgFilePreview} {
		_ = b.SetString(language.English, key, key)
	}
	for tag, set := range translations {
		for key, text := range set {
			_ = b.SetString(tag, key, text)
		}
	}
	return b
}

var matcher = language.NewMatcher(messages.Languages())

// MatchLanguage picks the best supported language for an Accept-Language header.
func MatchLanguage(acceptLanguage string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return language.English
	}
	tag, _, _ := matcher.Match(tags...)
	base, _ := tag.Base()
	return language.Make(base.String())
}

func translate(tag language.Tag, key string) string {
	if tag == language.Und {
		tag = language.English
	}
	return message.NewPrinter(tag, message.Catalog(messages)).Sprintf(key)
}
