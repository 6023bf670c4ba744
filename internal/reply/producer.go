package reply

import (
	"context"

	"github.com/Rrens/shopchat/internal/intent"
	"github.com/Rrens/shopchat/internal/session"
	"github.com/Rrens/shopchat/internal/shopinfo"
)

// Input is everything a Producer may use to answer one chat turn
type Input struct {
	Message string
	Mode    string
	Quote   string
	// History holds the remembered turns, ending with the current message
	History []session.Turn
}

// Output is a produced reply. Intent is set only by strategies that
// classify; Degraded marks a substitute text for a failed upstream call.
type Output struct {
	Text     string
	Intent   intent.Label
	Provider string
	Degraded bool
}

// Producer generates the assistant reply for a chat turn
type Producer interface {
	Name() string
	Produce(ctx context.Context, in Input) (Output, error)
}

// LocalProducer answers with the keyword classifier and fixed templates
type LocalProducer struct {
	info shopinfo.Info
}

func NewLocalProducer(info shopinfo.Info) *LocalProducer {
	return &LocalProducer{info: info}
}

func (p *LocalProducer) Name() string {
	return "local"
}

func (p *LocalProducer) Produce(_ context.Context, in Input) (Output, error) {
	label := intent.Classify(in.Message)
	return Output{
		Text:     Respond(label, in.Message, in.Mode, in.Quote, p.info),
		Intent:   label,
		Provider: p.Name(),
	}, nil
}

var _ Producer = (*LocalProducer)(nil)
