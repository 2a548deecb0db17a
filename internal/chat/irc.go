package chat

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/ergochat/irc-go/ircevent"
	"github.com/ergochat/irc-go/ircmsg"
)

// IRCConfig carries the connection identity. TLS and SASL are deliberately
// out of scope; the bot speaks plain IRC like any other channel member.
type IRCConfig struct {
	Server   string
	Port     int
	Channel  string
	Nickname string
	Password string
}

// IRCBus implements Bus over a single IRC connection. The library owns
// reconnects, keep-alive pings, and nick-collision suffixing.
type IRCBus struct {
	conn     *ircevent.Connection
	channel  string
	messages chan Message
}

// NewIRC builds the bus. Connect/Loop must be called to start it.
func NewIRC(cfg IRCConfig) *IRCBus {
	conn := &ircevent.Connection{
		Server:        fmt.Sprintf("%s:%d", cfg.Server, cfg.Port),
		Nick:          cfg.Nickname,
		Password:      cfg.Password,
		ReconnectFreq: 30 * time.Second,
		KeepAlive:     4 * time.Minute,
	}

	b := &IRCBus{
		conn:     conn,
		channel:  cfg.Channel,
		messages: make(chan Message, 64),
	}

	conn.AddConnectCallback(func(e ircmsg.Message) {
		slog.Info("Connected to server, joining channel", "server", cfg.Server, "channel", cfg.Channel)
		if err := conn.Join(cfg.Channel); err != nil {
			slog.Error("failed to join channel", "channel", cfg.Channel, "error", err)
		}
	})

	// Channel and private messages both feed the same stream; the URL
	// extractor doesn't care where a link was pasted.
	conn.AddCallback("PRIVMSG", func(e ircmsg.Message) {
		if len(e.Params) < 2 {
			return
		}
		sender := ""
		if nuh, err := ircmsg.ParseNUH(e.Source); err == nil {
			sender = nuh.Name
		}

		select {
		case b.messages <- Message{Sender: sender, Text: e.Params[1]}:
		default:
			// Ingestion stalled; dropping a chat line beats blocking the
			// IRC read loop.
			slog.Warn("dropping inbound message, ingest backlog full", "sender", sender)
		}
	})

	return b
}

// Connect dials the server. It returns once registration is underway;
// Loop drives the connection afterwards.
func (b *IRCBus) Connect() error {
	return b.conn.Connect()
}

// Loop services the connection until Quit, reconnecting as needed.
// It blocks and is meant to run in its own goroutine; it closes the message
// stream on exit.
func (b *IRCBus) Loop() {
	defer close(b.messages)
	b.conn.Loop()
}

// Quit disconnects and ends Loop.
func (b *IRCBus) Quit() {
	b.conn.Quit()
}

// Messages implements Bus.
func (b *IRCBus) Messages() <-chan Message {
	return b.messages
}

// Send implements Bus, delivering text to the configured channel.
func (b *IRCBus) Send(text string) error {
	return b.conn.Privmsg(b.channel, text)
}
