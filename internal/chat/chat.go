// Package chat abstracts the message transport the bot listens on.
//
// The pipeline only sees a stream of (sender, text) pairs and a way to send
// text back; connection management lives entirely behind the Bus.
package chat

// Message is one inbound chat line.
type Message struct {
	Sender string
	Text   string
}

// Bus is a bidirectional chat attachment.
type Bus interface {
	// Messages streams inbound messages. The channel closes when the
	// transport shuts down.
	Messages() <-chan Message
	// Send delivers text to the configured channel. Errors indicate the
	// transport is unreachable; callers decide whether that matters.
	Send(text string) error
}
