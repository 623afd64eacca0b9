// Package i18n translates client-facing messages for the combination service.
package i18n

import (
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultLocale is used when the client asks for nothing we support.
	DefaultLocale = "en"
	// AcceptLanguageHeader carries the client's language preference.
	AcceptLanguageHeader = "Accept-Language"
)

var (
	defaultTranslator *Translator
	translatorOnce    sync.Once
)

// Translator maps message keys to text per locale.
type Translator struct {
	messages map[string]map[string]string
}

// NewTranslator creates a translator with the built-in catalog.
func NewTranslator() *Translator {
	return &Translator{messages: catalog}
}

// GetTranslator returns the shared translator.
func GetTranslator() *Translator {
	translatorOnce.Do(func() {
		defaultTranslator = NewTranslator()
	})
	return defaultTranslator
}

// Translate returns the message for key in locale, falling back to
// DefaultLocale and finally to key itself. Text that is not a known key
// therefore passes through unchanged.
func (t *Translator) Translate(key, locale string) string {
	if msg, ok := t.messages[locale][key]; ok {
		return msg
	}
	if msg, ok := t.messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Supports reports whether locale has a catalog.
func (t *Translator) Supports(locale string) bool {
	_, ok := t.messages[locale]
	return ok
}

// GetLocale picks the first supported language from Accept-Language
// (e.g. "pt-BR,pt;q=0.9,en;q=0.8" gives "pt").
func GetLocale(c *gin.Context) string {
	header := c.GetHeader(AcceptLanguageHeader)
	if header == "" {
		return DefaultLocale
	}

	t := GetTranslator()
	for _, part := range strings.Split(header, ",") {
		lang := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if idx := strings.IndexByte(lang, '-'); idx > 0 {
			lang = lang[:idx]
		}
		lang = strings.ToLower(lang)
		if t.Supports(lang) {
			return lang
		}
	}
	return DefaultLocale
}

// Message translates key for the locale requested by c.
func Message(c *gin.Context, key string) string {
	return GetTranslator().Translate(key, GetLocale(c))
}

var catalog = map[string]map[string]string{
	"en": {
		ErrKeyInvalidRequestBody:      "Invalid request body",
		ErrKeyInternalError:           "An unexpected error occurred",
		ErrKeyAPIKeyRequired:          "API key is required",
		ErrKeyInvalidAPIKey:           "Invalid API key",
		ErrKeyRateLimitExceeded:       "Rate limit exceeded, retry later",
		ErrKeyTimeout:                 "Request timed out",
		ErrKeyEnumerationTimeout:      "Enumeration did not finish in time",
		ErrKeyNoActiveSet:             "No active denomination set",
		ErrKeyInvalidSetID:            "Invalid denomination set ID",
		ErrKeySetNotFound:             "Denomination set not found",
		ErrKeyDenominationStorage:     "Denomination storage is unavailable",
		ErrKeyLogStorage:              "Log storage is unavailable",
		ErrKeyInvalidStartTime:        "Invalid start time",
		ErrKeyInvalidEndTime:          "Invalid end time",
		ErrKeyNonPositiveDenomination: "Denominations must be positive integers",
		ErrKeyTargetTooLarge:          "Target exceeds the configured maximum",
	},
	"pt": {
		ErrKeyInvalidRequestBody:      "Corpo da requisição inválido",
		ErrKeyInternalError:           "Ocorreu um erro inesperado",
		ErrKeyAPIKeyRequired:          "Chave de API é obrigatória",
		ErrKeyInvalidAPIKey:           "Chave de API inválida",
		ErrKeyRateLimitExceeded:       "Muitas requisições, tente novamente mais tarde",
		ErrKeyTimeout:                 "A requisição excedeu o tempo limite",
		ErrKeyEnumerationTimeout:      "A enumeração não terminou a tempo",
		ErrKeyNoActiveSet:             "Nenhum conjunto de denominações ativo",
		ErrKeyInvalidSetID:            "ID de conjunto de denominações inválido",
		ErrKeySetNotFound:             "Conjunto de denominações não encontrado",
		ErrKeyDenominationStorage:     "Armazenamento de denominações indisponível",
		ErrKeyLogStorage:              "Armazenamento de logs indisponível",
		ErrKeyInvalidStartTime:        "Data inicial inválida",
		ErrKeyInvalidEndTime:          "Data final inválida",
		ErrKeyNonPositiveDenomination: "As denominações devem ser inteiros positivos",
		ErrKeyTargetTooLarge:          "O alvo excede o máximo configurado",
	},
	"nl": {
		ErrKeyInvalidRequestBody:      "Ongeldige aanvraag body",
		ErrKeyInternalError:           "Er is een onverwachte fout opgetreden",
		ErrKeyAPIKeyRequired:          "API-sleutel is vereist",
		ErrKeyInvalidAPIKey:           "Ongeldige API-sleutel",
		ErrKeyRateLimitExceeded:       "Te veel verzoeken, probeer het later opnieuw",
		ErrKeyTimeout:                 "Het verzoek duurde te lang",
		ErrKeyEnumerationTimeout:      "De opsomming is niet op tijd voltooid",
		ErrKeyNoActiveSet:             "Geen actieve set denominaties",
		ErrKeyInvalidSetID:            "Ongeldige ID van denominatieset",
		ErrKeySetNotFound:             "Denominatieset niet gevonden",
		ErrKeyDenominationStorage:     "Opslag van denominaties is niet beschikbaar",
		ErrKeyLogStorage:              "Logopslag is niet beschikbaar",
		ErrKeyInvalidStartTime:        "Ongeldige starttijd",
		ErrKeyInvalidEndTime:          "Ongeldige eindtijd",
		ErrKeyNonPositiveDenomination: "Denominaties moeten positieve gehele getallen zijn",
		ErrKeyTargetTooLarge:          "Het doel overschrijdt het ingestelde maximum",
	},
}
