package match

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/yourusername/pacoengine/pkg/engine"
)

// Parse reads a game record from JSON. The action history is validated
// syntactically; use Replay to check it against the rules.
func Parse(data []byte) (*Record, error) {
	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("parsing game record: %w", err)
	}
	if _, err := record.History(); err != nil {
		return nil, err
	}
	return &record, nil
}

// Write serializes the record as indented JSON.
func (r *Record) Write() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// LoadFile reads a game record from a JSON file.
func LoadFile(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// SaveFile writes the record to a JSON file.
func (r *Record) SaveFile(path string) error {
	data, err := r.Write()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// History parses the textual action list into engine actions.
func (r *Record) History() ([]engine.Action, error) {
	actions := make([]engine.Action, len(r.Actions))
	for i, text := range r.Actions {
		action, err := engine.ParseAction(text)
		if err != nil {
			return nil, fmt.Errorf("action %d: %w", i, err)
		}
		actions[i] = action
	}
	return actions, nil
}

// startBoard builds the starting position of the record.
func (r *Record) startBoard() (*engine.Board, error) {
	if r.StartFEN == "" {
		return engine.NewBoard(), nil
	}
	return engine.ParseFEN(r.StartFEN)
}

// Replay applies the full history and returns the final board. The replay is
// strict: the first illegal action fails with its index.
func (r *Record) Replay() (*engine.Board, error) {
	board, err := r.startBoard()
	if err != nil {
		return nil, err
	}
	history, err := r.History()
	if err != nil {
		return nil, err
	}
	for i, action := range history {
		if err := board.Execute(action); err != nil {
			return nil, fmt.Errorf("action %d (%v): %w", i, action, err)
		}
	}
	return board, nil
}

// Moves replays the record and renders one notation entry per completed
// turn. Actions of a still-open final turn are left out.
func (r *Record) Moves() ([]Move, error) {
	board, err := r.startBoard()
	if err != nil {
		return nil, err
	}
	history, err := r.History()
	if err != nil {
		return nil, err
	}

	var moves []Move
	turnStart := board.Clone()
	player := board.ControllingPlayer
	var turn []engine.Action

	for i, action := range history {
		turn = append(turn, action)
		if err := board.Execute(action); err != nil {
			return nil, fmt.Errorf("action %d (%v): %w", i, action, err)
		}
		if board.ControllingPlayer == player && !board.Victory.IsOver() {
			continue
		}

		notation, err := engine.FormatSequence(turnStart, player, turn)
		if err != nil {
			return nil, err
		}
		moves = append(moves, Move{
			Number:   len(moves) + 1,
			Player:   player.String(),
			Notation: notation,
		})
		if board.Victory.IsOver() {
			break
		}
		turnStart = board.Clone()
		player = board.ControllingPlayer
		turn = nil
	}
	return moves, nil
}

// OpenTurnIndex returns the index just after the last completed turn.
// Actions from that index on belong to the still-open turn and may be rolled
// back. A decided game can not be rolled back at all.
func (r *Record) OpenTurnIndex() (int, error) {
	history, err := r.History()
	if err != nil {
		return 0, err
	}
	if r.StartFEN == "" {
		return engine.FindLastCheckpointIndex(history)
	}

	board, err := r.startBoard()
	if err != nil {
		return 0, err
	}
	lastCheckpoint := 0
	lastPlayer := board.ControllingPlayer
	for i, action := range history {
		if err := board.Execute(action); err != nil {
			return 0, fmt.Errorf("action %d (%v): %w", i, action, err)
		}
		if board.ControllingPlayer != lastPlayer {
			lastCheckpoint = i + 1
			lastPlayer = board.ControllingPlayer
		}
	}
	if board.Victory.IsOver() {
		return len(history), nil
	}
	return lastCheckpoint, nil
}

// FromHistory builds a record from a played game. The result field is filled
// from the replayed final position.
func FromHistory(startFEN string, history []engine.Action) (*Record, error) {
	record := &Record{
		StartFEN: startFEN,
		Actions:  make([]string, len(history)),
	}
	for i, action := range history {
		record.Actions[i] = action.String()
	}
	board, err := record.Replay()
	if err != nil {
		return nil, err
	}
	record.Result = board.Victory.String()
	return record, nil
}
