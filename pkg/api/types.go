// Package api provides the HTTP/JSON API of the Paco Ŝako engine.
package api

// ============================================================================
// Request Types
// ============================================================================

// PositionRequest is the request body for endpoints that only need a position.
type PositionRequest struct {
	FEN string `json:"fen"` // Position in the Paco Ŝako FEN extension
}

// ExecuteRequest is the request body for applying actions to a position.
type ExecuteRequest struct {
	FEN     string   `json:"fen"`     // Starting position
	Actions []string `json:"actions"` // Actions like "Lift d2", "Place d4"
}

// SakoRequest is the request body for the forced Ŝako search.
type SakoRequest struct {
	FEN    string `json:"fen"`              // Position to search
	Player string `json:"player,omitempty"` // Attacking player, defaults to the controlling player
}

// AnalyzeRequest is the request body for full position analysis.
type AnalyzeRequest struct {
	FEN     string   `json:"fen"`               // Starting position
	Actions []string `json:"actions,omitempty"` // Optional history to replay first
}

// ============================================================================
// Response Types
// ============================================================================

// MovesResponse lists the legal actions in a position.
type MovesResponse struct {
	FEN     string   `json:"fen"`     // Position evaluated
	Player  string   `json:"player"`  // Controlling player
	Actions []string `json:"actions"` // Legal actions in textual form
}

// ExecuteResponse is the position after applying actions.
type ExecuteResponse struct {
	FEN      string `json:"fen"`                // Resulting position
	Player   string `json:"player"`             // Player to act next
	Victory  string `json:"victory"`            // Game state, "Running" while undecided
	GameOver bool   `json:"game_over"`          // Whether the game is decided
	Notation string `json:"notation,omitempty"` // Move notation of the applied actions
}

// SakoSequence is one forced winning line.
type SakoSequence struct {
	Actions  []string `json:"actions"`  // Actions in execution order
	Notation string   `json:"notation"` // Compact move notation
}

// SakoResponse is the result of the forced Ŝako search.
type SakoResponse struct {
	FEN       string         `json:"fen"`       // Position searched
	Player    string         `json:"player"`    // Attacking player
	Sako      bool           `json:"sako"`      // Whether any sequence exists
	Sequences []SakoSequence `json:"sequences"` // Every shortest winning line
}

// AnalyzeResponse is the result of full position analysis.
type AnalyzeResponse struct {
	FEN         string         `json:"fen"`          // Position analyzed
	TextSummary string         `json:"text_summary"` // Human readable findings
	White       []SakoSequence `json:"white"`        // White's winning lines
	Black       []SakoSequence `json:"black"`        // Black's winning lines
}

// ErrorResponse is returned when an error occurs.
type ErrorResponse struct {
	Error   string `json:"error"`             // Error message
	Code    string `json:"code,omitempty"`    // Error code
	Details string `json:"details,omitempty"` // Additional details
}

// HealthResponse is the response for health check.
type HealthResponse struct {
	Status  string     `json:"status"`         // "ok" or "error"
	Version string     `json:"version"`        // Engine version
	Pool    *PoolStats `json:"pool,omitempty"` // Worker pool statistics
	Cache   *CacheInfo `json:"cache,omitempty"`
}

// CacheInfo reports the Ŝako cache effectiveness.
type CacheInfo struct {
	Lookups uint64  `json:"lookups"`
	Hits    uint64  `json:"hits"`
	HitRate float64 `json:"hit_rate"`
}
