// Package intent assigns a label to an inbound chat message using an
// ordered table of keyword and phrase rules.
package intent

import (
	"strings"
	"unicode"
)

// Label identifies what the customer is asking for
type Label string

const (
	Greeting           Label = "greeting"
	QuoteRequest       Label = "quote_request"
	SoftwareService    Label = "software_service"
	ElectronicsService Label = "electronics_service"
	GeneralService     Label = "general_service"
	ContactInfo        Label = "contact_info"
	General            Label = "general"
)

// Rule maps a set of phrases to a label. A phrase with several words
// matches only as a contiguous run of tokens.
type Rule struct {
	Label   Label    `json:"label"`
	Phrases []string `json:"phrases"`
}

// rules are evaluated in order; the first rule with a matching phrase wins.
var rules = []Rule{
	{Greeting, []string{"hola", "buenas", "buenos días", "buenas tardes", "buenas noches", "saludos", "ayuda"}},
	{QuoteRequest, []string{"precio", "precios", "cotizar", "cotización", "cotizacion", "costo", "cuánto vale", "cuanto vale", "cuánto cuesta", "cuanto cuesta", "presupuesto"}},
	{SoftwareService, []string{"software", "aplicación", "aplicacion", "app", "web", "móvil", "movil", "python", "javascript"}},
	{ElectronicsService, []string{"electrónica", "electronica", "arduino", "sensor", "sensores", "iot", "microcontrolador", "esp32"}},
	{GeneralService, []string{"servicio", "servicios", "ofrecen", "hacen"}},
	{ContactInfo, []string{"contacto", "email", "correo", "teléfono", "telefono"}},
}

var compiled = compile(rules)

type matcher struct {
	label   Label
	phrases [][]string
}

func compile(rs []Rule) []matcher {
	out := make([]matcher, 0, len(rs))
	for _, r := range rs {
		m := matcher{label: r.Label}
		for _, p := range r.Phrases {
			m.phrases = append(m.phrases, Tokenize(p))
		}
		out = append(out, m)
	}
	return out
}

// Classify returns the label of the first rule matching message, or General.
func Classify(message string) Label {
	tokens := Tokenize(message)
	if len(tokens) == 0 {
		return General
	}

	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}

	for _, m := range compiled {
		for _, phrase := range m.phrases {
			if matches(tokens, set, phrase) {
				return m.label
			}
		}
	}
	return General
}

func matches(tokens []string, set map[string]struct{}, phrase []string) bool {
	switch len(phrase) {
	case 0:
		return false
	case 1:
		_, ok := set[phrase[0]]
		return ok
	}

	for i := 0; i+len(phrase) <= len(tokens); i++ {
		hit := true
		for j, word := range phrase {
			if tokens[i+j] != word {
				hit = false
				break
			}
		}
		if hit {
			return true
		}
	}
	return false
}

// Tokenize lower-cases s and splits it into runs of letters, digits and '+'.
func Tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '+'
	})
}

// Rules returns a copy of the rule table in evaluation order
func Rules() []Rule {
	out := make([]Rule, len(rules))
	for i, r := range rules {
		out[i] = Rule{Label: r.Label, Phrases: append([]string(nil), r.Phrases...)}
	}
	return out
}
