package ai

import (
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/yourusername/pacoengine/pkg/engine"
)

// EvaluatorClient talks to an external neural evaluator over a WebSocket. The
// engine side owns only the encoding contract: 38 position indices go out,
// a value estimate plus one prior per policy slot come back.
type EvaluatorClient struct {
	conn *websocket.Conn
	log  zerolog.Logger
	mu   sync.Mutex
}

// evaluateRequest is the wire form of one evaluation request.
type evaluateRequest struct {
	Type    string   `json:"type"`
	Indices []uint32 `json:"indices"`
}

// Evaluation is the evaluator's answer for one position.
type Evaluation struct {
	// Value estimates the position for the controlling player, in [-1, 1].
	Value float32
	// Policy holds one prior per action slot, addressed by ActionIndex - 1.
	Policy [PolicyLength]float32
}

// DialEvaluator connects to an evaluator service at the given WebSocket URL.
func DialEvaluator(url string, log zerolog.Logger) (*EvaluatorClient, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial evaluator %s: %w", url, err)
	}
	log.Info().Str("url", url).Msg("connected to evaluator")
	return &EvaluatorClient{conn: conn, log: log}, nil
}

// Evaluate sends the board to the evaluator and decodes its answer. Requests
// are serialized; the protocol has no correlation ids.
func (c *EvaluatorClient) Evaluate(board *engine.Board) (*Evaluation, error) {
	repr := IndexRepresentation(board)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.conn.WriteJSON(evaluateRequest{Type: "evaluate", Indices: repr[:]}); err != nil {
		return nil, fmt.Errorf("send evaluation request: %w", err)
	}
	var response []float32
	if err := c.conn.ReadJSON(&response); err != nil {
		return nil, fmt.Errorf("read evaluation response: %w", err)
	}
	if len(response) != 1+PolicyLength {
		return nil, fmt.Errorf("evaluator sent %d floats, want %d", len(response), 1+PolicyLength)
	}

	eval := &Evaluation{Value: response[0]}
	copy(eval.Policy[:], response[1:])
	return eval, nil
}

// Priors looks up the prior of each action from the viewpoint of the board's
// controlling player, in the order the actions were given.
func (e *Evaluation) Priors(board *engine.Board, actions []engine.Action) []float32 {
	priors := make([]float32, len(actions))
	for i, action := range actions {
		slot := ActionIndex(action, board.ControllingPlayer)
		priors[i] = e.Policy[slot-1]
	}
	return priors
}

// Close shuts down the connection.
func (c *EvaluatorClient) Close() error {
	return c.conn.Close()
}
