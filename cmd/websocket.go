package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"homeservBack/internal/services"
)

const (
	wsReadLimit          = 1 << 20
	wsReadDeadline       = 120 * time.Second
	wsWriteDeadline      = 5 * time.Second
	wsPingInterval       = 15 * time.Second
	wsFirstHelloDeadline = 30 * time.Second
)

type wsNotification struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type wsClient struct {
	key    string
	socket *websocket.Conn
}

type wsDirect struct {
	key string
	msg wsNotification
}

type wsUnreg struct {
	key  string
	conn *websocket.Conn
}

// WebSocketManager pushes notifications to connected browsers. Connections
// are keyed by "role:id" so a customer and a professional sharing a numeric
// id never collide. It satisfies services.Notifier.
type WebSocketManager struct {
	clients    map[string]*websocket.Conn
	direct     chan wsDirect
	register   chan wsClient
	unregister chan wsUnreg
}

func NewWebSocketManager() *WebSocketManager {
	return &WebSocketManager{
		clients:    make(map[string]*websocket.Conn),
		direct:     make(chan wsDirect),
		register:   make(chan wsClient),
		unregister: make(chan wsUnreg),
	}
}

func wsKey(role string, userID int) string {
	return fmt.Sprintf("%s:%d", role, userID)
}

// All access to clients happens on this goroutine.
func (ws *WebSocketManager) Run() {
	for {
		select {
		case client := <-ws.register:
			if old, ok := ws.clients[client.key]; ok && old != nil && old != client.socket {
				_ = old.Close()
			}
			ws.clients[client.key] = client.socket
			log.Printf("WS register %s", client.key)

		case u := <-ws.unregister:
			if cur, ok := ws.clients[u.key]; ok && cur == u.conn {
				_ = cur.Close()
				delete(ws.clients, u.key)
				log.Printf("WS unregister %s", u.key)
			}

		case d := <-ws.direct:
			conn, ok := ws.clients[d.key]
			if !ok {
				continue
			}
			conn.SetWriteDeadline(time.Now().Add(wsWriteDeadline))
			if err := conn.WriteJSON(d.msg); err != nil {
				// Drop the dead connection inline; sending to unregister
				// from this goroutine would block forever.
				log.Printf("WS send %s: %v", d.key, err)
				_ = conn.Close()
				delete(ws.clients, d.key)
			}
		}
	}
}

// Notify delivers to the user's open socket, if any. A user without an open
// socket is not an error; other channels cover them.
func (ws *WebSocketManager) Notify(ctx context.Context, to services.Recipient, subject, body string) error {
	select {
	case ws.direct <- wsDirect{
		key: wsKey(to.Role, to.UserID),
		msg: wsNotification{Subject: subject, Body: body},
	}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type wsHello struct {
	UserID int    `json:"user_id"`
	Role   string `json:"role"`
}

// ServeWS upgrades the connection and waits for the first hello frame
// identifying the user, then keeps the socket alive with pings until the
// peer goes away.
func (app *application) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		app.errorLog.Printf("ws upgrade: %v", err)
		return
	}

	conn.SetReadLimit(wsReadLimit)
	conn.SetReadDeadline(time.Now().Add(wsFirstHelloDeadline))

	var hello wsHello
	if err := conn.ReadJSON(&hello); err != nil || hello.UserID == 0 || hello.Role == "" {
		conn.Close()
		return
	}

	key := wsKey(hello.Role, hello.UserID)
	app.wsManager.register <- wsClient{key: key, socket: conn}

	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(wsReadDeadline))
		return nil
	})
	conn.SetReadDeadline(time.Now().Add(wsReadDeadline))

	go func() {
		ticker := time.NewTicker(wsPingInterval)
		defer ticker.Stop()
		for range ticker.C {
			conn.SetWriteDeadline(time.Now().Add(wsWriteDeadline))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			app.wsManager.unregister <- wsUnreg{key: key, conn: conn}
			return
		}
	}
}
