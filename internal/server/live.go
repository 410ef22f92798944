package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/ayusman/formsight/internal/analysis"
	"github.com/ayusman/formsight/internal/app"
	"github.com/ayusman/formsight/internal/pose"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// liveMessage is a client-to-server message on the live analysis socket.
type liveMessage struct {
	Type     string      `json:"type"` // "start", "frame" or "stop"
	Exercise string      `json:"exercise,omitempty"`
	Frame    *pose.Frame `json:"frame,omitempty"`
	Save     bool        `json:"save,omitempty"`
}

// liveResponse is a server-to-client message on the live analysis socket.
type liveResponse struct {
	Type       string           `json:"type"` // "ack", "report" or "error"
	FrameCount int              `json:"frame_count,omitempty"`
	Report     *analysis.Report `json:"report,omitempty"`
	Error      string           `json:"error,omitempty"`
}

// LiveHandler runs a live analysis session over a WebSocket connection. The
// client starts a session for an exercise, streams pose frames, and receives
// the report when it stops.
type LiveHandler struct {
	app *app.App
}

// NewLiveHandler creates a new LiveHandler backed by the given app.
func NewLiveHandler(a *app.App) *LiveHandler {
	return &LiveHandler{app: a}
}

// ServeHTTP handles WebSocket upgrade requests and runs the session loop.
func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	var session *app.Session

	for {
		var msg liveMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}

		switch msg.Type {
		case "start":
			session, err = h.app.NewSession(msg.Exercise)
			if err != nil {
				writeLive(conn, liveResponse{Type: "error", Error: err.Error()})
				continue
			}
			writeLive(conn, liveResponse{Type: "ack"})

		case "frame":
			if session == nil {
				writeLive(conn, liveResponse{Type: "error", Error: "no active session"})
				continue
			}
			if msg.Frame == nil {
				writeLive(conn, liveResponse{Type: "error", Error: "frame is required"})
				continue
			}
			if err := session.AddFrame(*msg.Frame); err != nil {
				writeLive(conn, liveResponse{Type: "error", Error: err.Error()})
				continue
			}
			writeLive(conn, liveResponse{Type: "ack", FrameCount: session.FrameCount()})

		case "stop":
			if session == nil {
				writeLive(conn, liveResponse{Type: "error", Error: "no active session"})
				continue
			}
			report, err := session.Finish(msg.Save)
			session = nil
			if err != nil {
				writeLive(conn, liveResponse{Type: "error", Error: err.Error()})
				continue
			}
			writeLive(conn, liveResponse{Type: "report", Report: report})

		default:
			writeLive(conn, liveResponse{Type: "error", Error: "unknown message type"})
		}
	}
}

func writeLive(conn *websocket.Conn, resp liveResponse) {
	msg, err := json.Marshal(resp)
	if err != nil {
		return
	}
	conn.WriteMessage(websocket.TextMessage, msg)
}
