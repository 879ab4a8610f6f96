// Package book implements the opening book: a precomputed map from position
// FEN strings to evaluated move suggestions, produced offline by the AI with
// a high search depth and consulted at play time to skip searching well-known
// openings.
package book

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/yourusername/pacoengine/pkg/ai"
	"github.com/yourusername/pacoengine/pkg/engine"
)

// Book maps a position FEN to the precomputed data for that position.
type Book map[string]*PositionData

// PositionData is the book entry for one position.
type PositionData struct {
	// PositionValue is the AI's value estimate for the side to move.
	PositionValue float32
	// SuggestedMoves lists evaluated moves, each a full turn of actions.
	SuggestedMoves []MoveData
}

// MoveData is one evaluated move suggestion.
type MoveData struct {
	MoveValue float32
	Actions   []engine.Action
}

// BestMove returns the suggestion with the highest value, or nil when the
// entry has none.
func (p *PositionData) BestMove() *MoveData {
	var best *MoveData
	for i := range p.SuggestedMoves {
		if best == nil || p.SuggestedMoves[i].MoveValue > best.MoveValue {
			best = &p.SuggestedMoves[i]
		}
	}
	return best
}

// Deduplicate drops suggestions whose action sequence already appeared
// earlier in the list. Running the connection finder twice then leaves the
// book unchanged.
func (p *PositionData) Deduplicate() {
	seen := make(map[string]struct{}, len(p.SuggestedMoves))
	kept := p.SuggestedMoves[:0]
	for _, move := range p.SuggestedMoves {
		key := actionsKey(move.Actions)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		kept = append(kept, move)
	}
	p.SuggestedMoves = kept
}

func actionsKey(actions []engine.Action) string {
	var sb strings.Builder
	sb.Grow(3 * len(actions))
	for _, a := range actions {
		sb.WriteByte(byte(a.Kind))
		sb.WriteByte(byte(a.Target))
		sb.WriteByte(byte(a.Piece))
	}
	return sb.String()
}

// On disk the book is a compact JSON object. Actions are stored as policy
// slot numbers relative to the side to move of the entry's FEN key:
//
//	{"<fen>": [<position value>, [[<move value>, [<slot>, ...]], ...]], ...}

type rawBook map[string]rawPosition

type rawPosition struct {
	value float32
	moves []rawMove
}

type rawMove struct {
	value float32
	slots []uint16
}

func (r *rawPosition) UnmarshalJSON(data []byte) error {
	tuple := []any{&r.value, &r.moves}
	if err := json.Unmarshal(data, &tuple); err != nil {
		return err
	}
	if len(tuple) != 2 {
		return fmt.Errorf("position entry has %d fields, want 2", len(tuple))
	}
	return nil
}

func (r rawPosition) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{r.value, r.moves})
}

func (r *rawMove) UnmarshalJSON(data []byte) error {
	tuple := []any{&r.value, &r.slots}
	if err := json.Unmarshal(data, &tuple); err != nil {
		return err
	}
	if len(tuple) != 2 {
		return fmt.Errorf("move entry has %d fields, want 2", len(tuple))
	}
	return nil
}

func (r rawMove) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{r.value, r.slots})
}

// Parse decodes a book from its JSON form.
func Parse(data []byte) (Book, error) {
	var raw rawBook
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse opening book: %w", err)
	}

	result := make(Book, len(raw))
	for fen, position := range raw {
		viewpoint, err := fenViewpointColor(fen)
		if err != nil {
			return nil, err
		}
		entry := &PositionData{
			PositionValue:  position.value,
			SuggestedMoves: make([]MoveData, 0, len(position.moves)),
		}
		for _, move := range position.moves {
			actions := make([]engine.Action, 0, len(move.slots))
			for _, slot := range move.slots {
				if slot > 255 {
					return nil, fmt.Errorf("%w: policy slot %d in book entry %q", engine.ErrInvalidAction, slot, fen)
				}
				action, err := ai.ActionFromIndex(uint8(slot), viewpoint)
				if err != nil {
					return nil, fmt.Errorf("book entry %q: %w", fen, err)
				}
				actions = append(actions, action)
			}
			entry.SuggestedMoves = append(entry.SuggestedMoves, MoveData{
				MoveValue: move.value,
				Actions:   actions,
			})
		}
		result[fen] = entry
	}
	return result, nil
}

// Write encodes the book back into its JSON form.
func (b Book) Write() ([]byte, error) {
	raw := make(rawBook, len(b))
	for fen, entry := range b {
		viewpoint, err := fenViewpointColor(fen)
		if err != nil {
			return nil, err
		}
		position := rawPosition{
			value: entry.PositionValue,
			moves: make([]rawMove, 0, len(entry.SuggestedMoves)),
		}
		for _, move := range entry.SuggestedMoves {
			slots := make([]uint16, 0, len(move.Actions))
			for _, action := range move.Actions {
				slots = append(slots, uint16(ai.ActionIndex(action, viewpoint)))
			}
			position.moves = append(position.moves, rawMove{value: move.MoveValue, slots: slots})
		}
		raw[fen] = position
	}
	return json.Marshal(raw)
}

// fenViewpointColor reads the side to move out of a FEN key. The stored
// action slots are relative to that color.
func fenViewpointColor(fen string) (engine.PlayerColor, error) {
	fields := strings.SplitN(fen, " ", 3)
	if len(fields) >= 2 {
		switch fields[1] {
		case "w":
			return engine.White, nil
		case "b":
			return engine.Black, nil
		}
	}
	return engine.White, fmt.Errorf("%w: no side to move in book key %q", engine.ErrInvalidFEN, fen)
}

// LoadFile reads a book from a JSON file.
func LoadFile(path string) (Book, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// SaveFile writes the book to a JSON file.
func (b Book) SaveFile(path string) error {
	data, err := b.Write()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
