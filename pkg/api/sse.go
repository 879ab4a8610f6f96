package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/yourusername/pacoengine/pkg/engine"
	"github.com/yourusername/pacoengine/pkg/puzzle"
)

// SSEEvent represents a Server-Sent Event.
type SSEEvent struct {
	Event string      `json:"event"` // Event type: "report", "done", "error"
	Data  interface{} `json:"data"`  // Event data
}

// SSEAnalyzeReport is the payload of one streamed analysis report.
type SSEAnalyzeReport struct {
	HalfMove    int    `json:"half_move"`    // Turns completed before this position
	FEN         string `json:"fen"`          // Position analyzed
	TextSummary string `json:"text_summary"` // Findings at this position
}

// AnalyzeSSE streams the analysis of a whole game as Server-Sent Events, one
// report per settled position.
// GET /api/analyze/stream?fen=...&actions=Lift+e2,Place+e4,...
func (h *Handlers) AnalyzeSSE(w http.ResponseWriter, r *http.Request) {
	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeSSEError(w, "streaming not supported")
		return
	}

	query := r.URL.Query()

	board := engine.NewBoard()
	if fen := query.Get("fen"); fen != "" {
		parsed, err := engine.ParseFEN(fen)
		if err != nil {
			writeSSEError(w, "invalid fen: "+err.Error())
			return
		}
		board = parsed
	}

	var history []engine.Action
	if raw := query.Get("actions"); raw != "" {
		for i, text := range strings.Split(raw, ",") {
			action, err := engine.ParseAction(strings.TrimSpace(text))
			if err != nil {
				writeSSEError(w, fmt.Sprintf("action %d: %v", i, err))
				return
			}
			history = append(history, action)
		}
	}

	// One report per settled position: the start, then every completed turn.
	halfMove := 0
	report := func() bool {
		analysis, err := puzzle.AnalyzeBoard(board)
		if err != nil {
			writeSSEError(w, "analysis failed: "+err.Error())
			return false
		}
		writeSSEEvent(w, "report", SSEAnalyzeReport{
			HalfMove:    halfMove,
			FEN:         engine.WriteFEN(board),
			TextSummary: analysis.TextSummary,
		})
		flusher.Flush()
		return true
	}

	if !report() {
		return
	}
	lastPlayer := board.ControllingPlayer
	for i, action := range history {
		if err := board.Execute(action); err != nil {
			writeSSEError(w, fmt.Sprintf("action %d (%v): %v", i, action, err))
			return
		}
		if board.Victory.IsOver() {
			break
		}
		if board.ControllingPlayer != lastPlayer {
			halfMove++
			lastPlayer = board.ControllingPlayer
			if !report() {
				return
			}
		}
	}

	// Send done event to signal completion
	writeSSEEvent(w, "done", map[string]string{"victory": board.Victory.String()})
	flusher.Flush()
}

// writeSSEEvent writes a Server-Sent Event to the response.
func writeSSEEvent(w http.ResponseWriter, event string, data interface{}) {
	fmt.Fprintf(w, "event: %s\n", event)
	if data != nil {
		jsonData, _ := json.Marshal(data)
		fmt.Fprintf(w, "data: %s\n", jsonData)
	}
	fmt.Fprintf(w, "\n")
}

// writeSSEError writes an error event and closes the stream.
func writeSSEError(w http.ResponseWriter, message string) {
	writeSSEEvent(w, "error", map[string]string{"error": message})
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
}
