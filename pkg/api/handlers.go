package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/yourusername/pacoengine/pkg/engine"
	"github.com/yourusername/pacoengine/pkg/puzzle"
)

// Handlers holds the HTTP handlers and their shared state.
type Handlers struct {
	version string
	pool    *WorkerPool
	cache   *engine.SakoCache
}

// NewHandlers creates a new Handlers instance without a worker pool.
func NewHandlers(version string) *Handlers {
	return &Handlers{
		version: version,
		pool:    nil,
		cache:   engine.NewSakoCache(engine.DefaultCacheSize),
	}
}

// NewHandlersWithPool creates a new Handlers instance with a worker pool.
func NewHandlersWithPool(version string, pool *WorkerPool) *Handlers {
	h := NewHandlers(version)
	h.pool = pool
	return h
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, msg string, code string) {
	writeJSON(w, status, ErrorResponse{
		Error: msg,
		Code:  code,
	})
}

// parsePlayer reads "white" or "black", case insensitive.
func parsePlayer(text string) (engine.PlayerColor, error) {
	switch strings.ToLower(text) {
	case "white":
		return engine.White, nil
	case "black":
		return engine.Black, nil
	default:
		return engine.White, fmt.Errorf("player must be \"white\" or \"black\", got %q", text)
	}
}

// parseActionList converts textual actions like "Lift d2" into engine actions.
func parseActionList(texts []string) ([]engine.Action, error) {
	actions := make([]engine.Action, len(texts))
	for i, text := range texts {
		action, err := engine.ParseAction(text)
		if err != nil {
			return nil, fmt.Errorf("action %d: %w", i, err)
		}
		actions[i] = action
	}
	return actions, nil
}

func formatActionList(actions []engine.Action) []string {
	texts := make([]string, len(actions))
	for i, action := range actions {
		texts[i] = action.String()
	}
	return texts
}

func playerName(color engine.PlayerColor) string {
	return strings.ToLower(color.String())
}

// sequenceResponses renders winning lines with both their raw actions and
// their compact notation. Notation failures cannot happen for sequences the
// search produced, but are reported rather than swallowed.
func sequenceResponses(board *engine.Board, attacker engine.PlayerColor, sequences [][]engine.Action) ([]SakoSequence, error) {
	result := make([]SakoSequence, len(sequences))
	for i, sequence := range sequences {
		notation, err := engine.FormatSequence(board, attacker, sequence)
		if err != nil {
			return nil, err
		}
		result[i] = SakoSequence{
			Actions:  formatActionList(sequence),
			Notation: notation,
		}
	}
	return result, nil
}

// sakoSequences runs the forced Ŝako search through the result cache.
func (h *Handlers) sakoSequences(board *engine.Board, attacker engine.PlayerColor) ([][]engine.Action, error) {
	hash := board.Hash()
	if cached, ok := h.cache.Lookup(hash, attacker); ok {
		return cached, nil
	}
	sequences, err := engine.FindSakoSequences(board, attacker)
	if err != nil {
		return nil, err
	}
	h.cache.Add(hash, attacker, sequences)
	return sequences, nil
}

// Health handles GET /api/health
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:  "ok",
		Version: h.version,
	}

	// Include pool stats if available
	if h.pool != nil {
		stats := h.pool.Stats()
		resp.Pool = &stats
	}

	lookups, hits, _ := h.cache.Stats()
	resp.Cache = &CacheInfo{
		Lookups: lookups,
		Hits:    hits,
		HitRate: h.cache.HitRate(),
	}

	writeJSON(w, http.StatusOK, resp)
}

// Moves handles POST /api/moves
func (h *Handlers) Moves(w http.ResponseWriter, r *http.Request) {
	// Acquire fast worker slot if pool is configured
	if h.pool != nil {
		if err := h.pool.AcquireFast(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "server busy", "SERVER_BUSY")
			return
		}
		defer h.pool.ReleaseFast()
	}

	var req PositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON", "INVALID_JSON")
		return
	}

	if req.FEN == "" {
		writeError(w, http.StatusBadRequest, "fen is required", "MISSING_FEN")
		return
	}

	board, err := engine.ParseFEN(req.FEN)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "INVALID_FEN")
		return
	}

	actions, err := board.Actions()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error(), "MOVES_ERROR")
		return
	}

	writeJSON(w, http.StatusOK, MovesResponse{
		FEN:     engine.WriteFEN(board),
		Player:  playerName(board.ControllingPlayer),
		Actions: formatActionList(actions),
	})
}

// Execute handles POST /api/execute
func (h *Handlers) Execute(w http.ResponseWriter, r *http.Request) {
	// Acquire fast worker slot if pool is configured
	if h.pool != nil {
		if err := h.pool.AcquireFast(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "server busy", "SERVER_BUSY")
			return
		}
		defer h.pool.ReleaseFast()
	}

	var req ExecuteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON", "INVALID_JSON")
		return
	}

	if req.FEN == "" {
		writeError(w, http.StatusBadRequest, "fen is required", "MISSING_FEN")
		return
	}
	if len(req.Actions) == 0 {
		writeError(w, http.StatusBadRequest, "actions are required", "MISSING_ACTIONS")
		return
	}

	start, err := engine.ParseFEN(req.FEN)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "INVALID_FEN")
		return
	}

	actions, err := parseActionList(req.Actions)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "INVALID_ACTION")
		return
	}

	board := start.Clone()
	for i, action := range actions {
		if err := board.Execute(action); err != nil {
			writeError(w, http.StatusBadRequest,
				fmt.Sprintf("action %d (%v): %v", i, action, err), "ILLEGAL_ACTION")
			return
		}
	}

	// Notation covers only sequences within a single turn, so render it best
	// effort and leave it out when the actions cross a turn boundary.
	notation, err := engine.FormatSequence(start, start.ControllingPlayer, actions)
	if err != nil {
		notation = ""
	}

	writeJSON(w, http.StatusOK, ExecuteResponse{
		FEN:      engine.WriteFEN(board),
		Player:   playerName(board.ControllingPlayer),
		Victory:  board.Victory.String(),
		GameOver: board.Victory.IsOver(),
		Notation: notation,
	})
}

// Sako handles POST /api/sako
func (h *Handlers) Sako(w http.ResponseWriter, r *http.Request) {
	// Acquire slow worker slot if pool is configured
	if h.pool != nil {
		if err := h.pool.AcquireSlow(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "server busy", "SERVER_BUSY")
			return
		}
		defer h.pool.ReleaseSlow()
	}

	var req SakoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON", "INVALID_JSON")
		return
	}

	if req.FEN == "" {
		writeError(w, http.StatusBadRequest, "fen is required", "MISSING_FEN")
		return
	}

	board, err := engine.ParseFEN(req.FEN)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "INVALID_FEN")
		return
	}

	attacker := board.ControllingPlayer
	if req.Player != "" {
		attacker, err = parsePlayer(req.Player)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error(), "INVALID_PLAYER")
			return
		}
	}

	sequences, err := h.sakoSequences(board, attacker)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error(), "SEARCH_ERROR")
		return
	}

	rendered, err := sequenceResponses(board, attacker, sequences)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error(), "SEARCH_ERROR")
		return
	}

	writeJSON(w, http.StatusOK, SakoResponse{
		FEN:       engine.WriteFEN(board),
		Player:    playerName(attacker),
		Sako:      len(sequences) > 0,
		Sequences: rendered,
	})
}

// Analyze handles POST /api/analyze
func (h *Handlers) Analyze(w http.ResponseWriter, r *http.Request) {
	// Acquire slow worker slot if pool is configured
	if h.pool != nil {
		if err := h.pool.AcquireSlow(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "server busy", "SERVER_BUSY")
			return
		}
		defer h.pool.ReleaseSlow()
	}

	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON", "INVALID_JSON")
		return
	}

	if req.FEN == "" {
		writeError(w, http.StatusBadRequest, "fen is required", "MISSING_FEN")
		return
	}

	history, err := parseActionList(req.Actions)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "INVALID_ACTION")
		return
	}

	report, err := puzzle.Analyze(req.FEN, history)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "ANALYSIS_ERROR")
		return
	}

	// Replay the history again to render the analyzed position. Analyze
	// already validated both the FEN and the history.
	board, _ := engine.ParseFEN(req.FEN)
	for _, action := range history {
		if err := board.Execute(action); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error(), "ANALYSIS_ERROR")
			return
		}
	}

	white, err := sequenceResponses(board, engine.White, report.WhiteSequences)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error(), "ANALYSIS_ERROR")
		return
	}
	black, err := sequenceResponses(board, engine.Black, report.BlackSequences)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error(), "ANALYSIS_ERROR")
		return
	}

	writeJSON(w, http.StatusOK, AnalyzeResponse{
		FEN:         engine.WriteFEN(board),
		TextSummary: report.TextSummary,
		White:       white,
		Black:       black,
	})
}
