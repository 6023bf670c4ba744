// Package reply turns a classified message into the assistant's answer.
// Two strategies implement Producer: LocalProducer renders fixed
// templates, CompletionProducer asks an external LLM.
package reply

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Rrens/shopchat/internal/intent"
	"github.com/Rrens/shopchat/internal/quote"
	"github.com/Rrens/shopchat/internal/shopinfo"
)

// Known modes
const (
	ModeSeller    = "vendedor"
	ModeQuoter    = "cotizador"
	ModeTechnical = "técnico"
)

// offTopicLength is the message length above which an unclassified
// message that never mentions the shop is treated as off topic.
const offTopicLength = 50

// Greeting returns the persona greeting for mode. Unknown modes use the
// seller greeting.
func Greeting(mode string, info shopinfo.Info) string {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case ModeQuoter:
		return "Soy el cotizador. En base a tu solicitud, aquí tienes la estimación."
	case ModeTechnical, "tecnico":
		return "Soy el asistente técnico. ¿En qué proyecto podemos ayudarte?"
	default:
		return fmt.Sprintf("¡Hola! Soy tu asistente en %s.", info.Nombre)
	}
}

// Respond renders the reply for a classified message. It performs no I/O.
func Respond(label intent.Label, raw, mode, quoteText string, info shopinfo.Info) string {
	greet := Greeting(mode, info)

	switch label {
	case intent.Greeting:
		return greet + " ¿En qué te puedo ayudar hoy?"

	case intent.QuoteRequest:
		if quote.IsFallback(quoteText) {
			return greet + " Para darte una estimación necesito más detalles: ¿qué funcionalidades y alcance tiene tu proyecto?"
		}
		return fmt.Sprintf("%s %s ¿Quieres más detalles sobre alguno de nuestros servicios?", greet, quoteText)

	case intent.SoftwareService:
		return fmt.Sprintf("Nos especializamos en Software, incluyendo: %s. ¿Podrías detallar el proyecto?", info.SoftwareList())

	case intent.ElectronicsService:
		return fmt.Sprintf("Nuestros servicios de Electrónica incluyen: %s. ¿Qué tipo de prototipo o sistema necesitas?", info.ElectronicsList())

	case intent.GeneralService:
		return fmt.Sprintf("En %s trabajamos en dos áreas: Software (%s) y Electrónica (%s). ¿Cuál te interesa?",
			info.Nombre, info.SoftwareList(), info.ElectronicsList())

	case intent.ContactInfo:
		return fmt.Sprintf("Puedes contactarnos por email: %s o teléfono: %s.", info.Contacto.Email, info.Contacto.Telefono)

	default:
		if isOffTopic(raw) {
			return fmt.Sprintf("Solo puedo responder preguntas relacionadas con los servicios de %s.", info.Nombre)
		}
		return "No estoy seguro de la intención. ¿Buscas un servicio de software, electrónica o una cotización?"
	}
}

func isOffTopic(raw string) bool {
	return utf8.RuneCountInString(raw) > offTopicLength && !strings.Contains(strings.ToLower(raw), "tienda")
}
