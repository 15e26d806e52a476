package game

import "github.com/mcoot/tictacgo/internal/model"

// Publisher receives game events, typically to fan them out to displays
type Publisher interface {
	Publish(event model.Event)
}

// PublisherFunc adapts a function to a Publisher
type PublisherFunc func(event model.Event)

func (f PublisherFunc) Publish(event model.Event) {
	f(event)
}

type nopPublisher struct{}

func (nopPublisher) Publish(model.Event) {}
