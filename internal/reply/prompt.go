package reply

import (
	"encoding/json"
	"fmt"

	"github.com/Rrens/shopchat/internal/llm"
	"github.com/Rrens/shopchat/internal/session"
	"github.com/Rrens/shopchat/internal/shopinfo"
)

// SystemRules is the fixed instruction sent first in every completion
func SystemRules(info shopinfo.Info) string {
	return fmt.Sprintf(`Eres el asistente oficial de %[1]s, especialista en servicios de desarrollo de software y electrónica.
Reglas:
- RESPONDER SOLO sobre los servicios de %[1]s.
- Clasificar solicitudes y usar un formato claro.
- Si la consulta está fuera de tema, responder: "Solo puedo responder preguntas relacionadas con los servicios de %[1]s."
- Siempre en español.`, info.Nombre)
}

// ModePrompt tells the model which persona the session selected
func ModePrompt(mode string) string {
	return fmt.Sprintf("Modo actual: %s. Actúa según ese rol (vendedor/técnico/soporte/cotizador). Clasifica la solicitud y ofrece preguntas para clarificar si hace falta.", mode)
}

// InfoPrompt serializes the shop dictionary as model context
func InfoPrompt(info shopinfo.Info) string {
	data, err := json.Marshal(info)
	if err != nil {
		data = []byte("{}")
	}
	return "Información interna: " + string(data)
}

// BuildMessages assembles the completion prompt: the system rules, the
// mode, the shop info and then the remembered conversation. The current
// message is appended when the history does not already end with it.
func BuildMessages(in Input, info shopinfo.Info) []llm.Message {
	msgs := make([]llm.Message, 0, len(in.History)+4)
	msgs = append(msgs,
		llm.Message{Role: llm.RoleSystem, Content: SystemRules(info)},
		llm.Message{Role: llm.RoleSystem, Content: ModePrompt(in.Mode)},
		llm.Message{Role: llm.RoleSystem, Content: InfoPrompt(info)},
	)

	for _, t := range in.History {
		if !t.Role.Valid() {
			continue
		}
		msgs = append(msgs, llm.Message{Role: string(t.Role), Content: t.Content})
	}

	if !endsWithMessage(in.History, in.Message) {
		msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: in.Message})
	}
	return msgs
}

func endsWithMessage(history []session.Turn, message string) bool {
	if len(history) == 0 {
		return false
	}
	last := history[len(history)-1]
	return string(last.Role) == llm.RoleUser && last.Content == message
}
