// Package link is the websocket client for the radio-link server. It owns
// the connection and a read loop; every inbound envelope is handed to a
// single handler, and writes are serialized through Emit.
package link

import (
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/curbz/groundstation/pkg/util"
)

// Handler receives every event the server pushes. It is called from the
// client's single read goroutine, so one event is processed at a time.
type Handler func(event string, data json.RawMessage)

type Client struct {
	conn    *websocket.Conn
	handler Handler

	writeMu sync.Mutex
	done    chan struct{}
	closing sync.Once
}

// Dial connects to the link server and starts the read loop.
func Dial(serverURL string, handler Handler) (*Client, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, fmt.Errorf("error parsing link server URL: %w", err)
	}

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("could not connect to link server at %s: %w", serverURL, err)
	}

	c := &Client{
		conn:    conn,
		handler: handler,
		done:    make(chan struct{}),
	}

	go c.readLoop()

	return c, nil
}

func (c *Client) readLoop() {
	defer close(c.done)
	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Println("Link connection closed.")
				return
			}
			log.Println("Link read error:", err)
			return
		}
		c.processMessage(message)
	}
}

func (c *Client) processMessage(message []byte) {
	var env Envelope
	if err := json.Unmarshal(message, &env); err != nil {
		log.Printf("Error unmarshaling envelope: %v. Raw: %s", err, string(message))
		return
	}
	if env.Event == "" {
		log.Printf("Dropping envelope without event name: %s", string(message))
		return
	}
	c.handler(env.Event, env.Data)
}

// Emit sends one named event to the server. A nil payload produces a bare
// envelope. Safe for concurrent use.
func (c *Client) Emit(event string, payload interface{}) error {
	var data json.RawMessage
	if payload != nil {
		var err error
		data, err = json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("error marshaling %s payload: %w", event, err)
		}
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return util.SendJSON(c.conn, Envelope{Event: event, Data: data})
}

// Done is closed when the read loop exits, whether by Close or by a
// transport failure.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Close performs a graceful websocket shutdown.
func (c *Client) Close() error {
	var err error
	c.closing.Do(func() {
		c.conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		err = c.conn.Close()
	})
	return err
}
