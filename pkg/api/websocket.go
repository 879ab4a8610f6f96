package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/yourusername/pacoengine/pkg/engine"
	"github.com/yourusername/pacoengine/pkg/puzzle"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins - configure properly in production
	},
}

// WSMessage is a generic WebSocket message.
type WSMessage struct {
	Type    string          `json:"type"`    // Message type: "moves", "execute", "sako", "analyze", "ping"
	ID      string          `json:"id"`      // Request ID for correlating responses
	Payload json.RawMessage `json:"payload"` // Type-specific payload
}

// WSResponse is a generic WebSocket response.
type WSResponse struct {
	Type    string      `json:"type"`              // Response type: "result", "error", "pong"
	ID      string      `json:"id,omitempty"`      // Request ID
	Payload interface{} `json:"payload,omitempty"` // Response data
	Error   string      `json:"error,omitempty"`   // Error message if any
}

// WSClient represents a connected WebSocket client.
type WSClient struct {
	conn     *websocket.Conn
	handlers *Handlers
	sendChan chan WSResponse
	mu       sync.Mutex
}

// WebSocket handles WebSocket connections for real-time game analysis.
func (h *Handlers) WebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}
	client := &WSClient{conn: conn, handlers: h, sendChan: make(chan WSResponse, 256)}
	go client.writePump()
	client.readPump()
}

func (c *WSClient) writePump() {
	defer c.conn.Close()
	for msg := range c.sendChan {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}

func (c *WSClient) readPump() {
	defer func() { close(c.sendChan); c.conn.Close() }()
	for {
		var msg WSMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}
		c.handleMessage(msg)
	}
}

func (c *WSClient) handleMessage(msg WSMessage) {
	switch msg.Type {
	case "moves":
		c.handleMoves(msg)
	case "execute":
		c.handleExecute(msg)
	case "sako":
		c.handleSako(msg)
	case "analyze":
		c.handleAnalyze(msg)
	case "ping":
		c.sendChan <- WSResponse{Type: "pong", ID: msg.ID}
	default:
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: "unknown message type"}
	}
}

func (c *WSClient) handleMoves(msg WSMessage) {
	var req PositionRequest
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: "invalid payload"}
		return
	}
	board, err := engine.ParseFEN(req.FEN)
	if err != nil {
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: "invalid fen"}
		return
	}
	actions, err := board.Actions()
	if err != nil {
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: "move generation failed"}
		return
	}
	c.sendChan <- WSResponse{Type: "result", ID: msg.ID, Payload: MovesResponse{
		FEN:     engine.WriteFEN(board),
		Player:  playerName(board.ControllingPlayer),
		Actions: formatActionList(actions),
	}}
}

func (c *WSClient) handleExecute(msg WSMessage) {
	var req ExecuteRequest
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: "invalid payload"}
		return
	}
	start, err := engine.ParseFEN(req.FEN)
	if err != nil {
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: "invalid fen"}
		return
	}
	actions, err := parseActionList(req.Actions)
	if err != nil {
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: err.Error()}
		return
	}
	board := start.Clone()
	for i, action := range actions {
		if err := board.Execute(action); err != nil {
			c.sendChan <- WSResponse{Type: "error", ID: msg.ID,
				Error: fmt.Sprintf("action %d (%v): %v", i, action, err)}
			return
		}
	}
	notation, err := engine.FormatSequence(start, start.ControllingPlayer, actions)
	if err != nil {
		notation = ""
	}
	c.sendChan <- WSResponse{Type: "result", ID: msg.ID, Payload: ExecuteResponse{
		FEN:      engine.WriteFEN(board),
		Player:   playerName(board.ControllingPlayer),
		Victory:  board.Victory.String(),
		GameOver: board.Victory.IsOver(),
		Notation: notation,
	}}
}

func (c *WSClient) handleSako(msg WSMessage) {
	var req SakoRequest
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: "invalid payload"}
		return
	}
	board, err := engine.ParseFEN(req.FEN)
	if err != nil {
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: "invalid fen"}
		return
	}
	attacker := board.ControllingPlayer
	if req.Player != "" {
		attacker, err = parsePlayer(req.Player)
		if err != nil {
			c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: err.Error()}
			return
		}
	}
	sequences, err := c.handlers.sakoSequences(board, attacker)
	if err != nil {
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: "search failed"}
		return
	}
	rendered, err := sequenceResponses(board, attacker, sequences)
	if err != nil {
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: "search failed"}
		return
	}
	c.sendChan <- WSResponse{Type: "result", ID: msg.ID, Payload: SakoResponse{
		FEN:       engine.WriteFEN(board),
		Player:    playerName(attacker),
		Sako:      len(sequences) > 0,
		Sequences: rendered,
	}}
}

func (c *WSClient) handleAnalyze(msg WSMessage) {
	var req AnalyzeRequest
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: "invalid payload"}
		return
	}
	history, err := parseActionList(req.Actions)
	if err != nil {
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: err.Error()}
		return
	}
	report, err := puzzle.Analyze(req.FEN, history)
	if err != nil {
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: err.Error()}
		return
	}
	board, err := engine.ParseFEN(req.FEN)
	if err != nil {
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: "invalid fen"}
		return
	}
	for _, action := range history {
		if err := board.Execute(action); err != nil {
			c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: "analysis failed"}
			return
		}
	}
	white, err := sequenceResponses(board, engine.White, report.WhiteSequences)
	if err != nil {
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: "analysis failed"}
		return
	}
	black, err := sequenceResponses(board, engine.Black, report.BlackSequences)
	if err != nil {
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: "analysis failed"}
		return
	}
	c.sendChan <- WSResponse{Type: "result", ID: msg.ID, Payload: AnalyzeResponse{
		FEN:         engine.WriteFEN(board),
		TextSummary: report.TextSummary,
		White:       white,
		Black:       black,
	}}
}
