// Package match provides game record import/export for Paco Ŝako games.
// Records are stored as JSON with the full action history, so a game can be
// replayed, analyzed, or resumed from the record alone.
package match

// Record represents a complete game record.
type Record struct {
	// Game metadata
	White     string `json:"white,omitempty"`     // Name of the white player
	Black     string `json:"black,omitempty"`     // Name of the black player
	Event     string `json:"event,omitempty"`     // Event name
	Site      string `json:"site,omitempty"`      // Location
	Date      string `json:"date,omitempty"`      // Game date (YYYY-MM-DD format)
	Annotator string `json:"annotator,omitempty"` // Who analyzed the game
	Comment   string `json:"comment,omitempty"`   // General game comments

	// StartFEN is the starting position. Empty means the regular setup.
	StartFEN string `json:"start_fen,omitempty"`
	// Actions is the game history in textual form, like "Lift e2".
	Actions []string `json:"actions"`
	// Result is the final state as reported by the replay, for example
	// "White wins" or "Running" for an unfinished game.
	Result string `json:"result,omitempty"`
}

// Move is one completed turn of a replayed game.
type Move struct {
	Number   int    // Turn number, counting from 1
	Player   string // "White" or "Black"
	Notation string // Compact move notation, like "e2>e4"
}
