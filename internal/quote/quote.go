// Package quote maps a free-text project description to a price range.
package quote

import "strings"

// Fallback is returned when no category keyword is present
const Fallback = "Necesito más detalles para estimar. Describe funcionalidades y alcance."

// Category is one row of the price table
type Category struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
	Estimate string   `json:"estimate"`
}

// table is evaluated top to bottom; the first row with a matching keyword wins.
var table = []Category{
	{
		Name:     "web",
		Keywords: []string{"web"},
		Estimate: "Una web básica: 150-300 USD. Web avanzada: 300-800 USD.",
	},
	{
		Name:     "mobile",
		Keywords: []string{"móvil", "android", "ios"},
		Estimate: "App móvil simple: 300-600 USD. Compleja: 600-1500 USD.",
	},
	{
		Name:     "software",
		Keywords: []string{"c++", "python"},
		Estimate: "Software de escritorio/backend: 200-800 USD (según alcance).",
	},
	{
		Name:     "microcontroller",
		Keywords: []string{"microcontrolador", "arduino", "esp32"},
		Estimate: "Proyecto con microcontrolador: 80-400 USD.",
	},
	{
		Name:     "sensors",
		Keywords: []string{"sensor"},
		Estimate: "Sistema de sensores: 50-250 USD.",
	},
	{
		Name:     "iot",
		Keywords: []string{"iot"},
		Estimate: "Proyecto IoT: 150-600 USD.",
	},
}

// Estimate returns the price range of the first category whose keyword
// appears in the description, or Fallback.
func Estimate(description string) string {
	text := strings.ToLower(description)
	for _, c := range table {
		for _, kw := range c.Keywords {
			if strings.Contains(text, kw) {
				return c.Estimate
			}
		}
	}
	return Fallback
}

// IsFallback reports whether an estimate is the "need more detail" message
func IsFallback(estimate string) bool {
	return estimate == Fallback
}

// Categories returns a copy of the price table in evaluation order
func Categories() []Category {
	out := make([]Category, len(table))
	for i, c := range table {
		out[i] = Category{
			Name:     c.Name,
			Keywords: append([]string(nil), c.Keywords...),
			Estimate: c.Estimate,
		}
	}
	return out
}
