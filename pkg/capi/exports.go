// Package main provides C-compatible functions for building a shared library.
// Build with: go build -buildmode=c-shared -o libpacoengine.so ./pkg/capi
package main

/*
#include <stdlib.h>
#include <stdint.h>
*/
import "C"
import (
	"encoding/json"
	"sync"
	"unsafe"

	"golang.org/x/exp/rand"

	"github.com/yourusername/pacoengine/pkg/engine"
	"github.com/yourusername/pacoengine/pkg/puzzle"
)

var (
	lastError  string
	errorMutex sync.Mutex
)

// setError stores an error message for later retrieval.
func setError(err error) {
	errorMutex.Lock()
	defer errorMutex.Unlock()
	if err != nil {
		lastError = err.Error()
	} else {
		lastError = ""
	}
}

// replayPosition parses a FEN string and applies a JSON array of textual
// actions like ["Lift e2","Place e4"] on top of it.
func replayPosition(fen string, actionsJSON string) (*engine.Board, error) {
	board, err := engine.ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	if actionsJSON == "" {
		return board, nil
	}

	var texts []string
	if err := json.Unmarshal([]byte(actionsJSON), &texts); err != nil {
		return nil, err
	}
	for _, text := range texts {
		action, err := engine.ParseAction(text)
		if err != nil {
			return nil, err
		}
		if err := board.Execute(action); err != nil {
			return nil, err
		}
	}
	return board, nil
}

//export pacoengine_version
func pacoengine_version() *C.char {
	return C.CString("0.1.0")
}

//export pacoengine_last_error
func pacoengine_last_error() *C.char {
	errorMutex.Lock()
	defer errorMutex.Unlock()
	if lastError == "" {
		return nil
	}
	return C.CString(lastError)
}

//export pacoengine_initial_fen
func pacoengine_initial_fen() *C.char {
	return C.CString(engine.WriteFEN(engine.NewBoard()))
}

//export pacoengine_fischer_fen
func pacoengine_fischer_fen(seed C.uint64_t) *C.char {
	rng := rand.New(rand.NewSource(uint64(seed)))
	return C.CString(engine.WriteFEN(engine.FischerRandomBoard(rng)))
}

//export pacoengine_legal_actions
func pacoengine_legal_actions(fen, actionsJSON *C.char, resultJSON **C.char) C.int {
	board, err := replayPosition(C.GoString(fen), C.GoString(actionsJSON))
	if err != nil {
		setError(err)
		*resultJSON = C.CString(`{"error": "invalid position"}`)
		return -1
	}

	actions, err := board.Actions()
	if err != nil {
		setError(err)
		*resultJSON = C.CString(`{"error": "move generation failed"}`)
		return -1
	}

	texts := make([]string, len(actions))
	for i, action := range actions {
		texts[i] = action.String()
	}
	result := map[string]interface{}{
		"legal_actions": texts,
	}

	jsonBytes, _ := json.Marshal(result)
	*resultJSON = C.CString(string(jsonBytes))
	setError(nil)
	return 0
}

//export pacoengine_execute
func pacoengine_execute(fen, actionsJSON *C.char, resultJSON **C.char) C.int {
	board, err := replayPosition(C.GoString(fen), C.GoString(actionsJSON))
	if err != nil {
		setError(err)
		*resultJSON = C.CString(`{"error": "invalid position"}`)
		return -1
	}

	result := map[string]interface{}{
		"fen":       engine.WriteFEN(board),
		"player":    board.ControllingPlayer.String(),
		"victory":   board.Victory.String(),
		"game_over": board.Victory.IsOver(),
	}

	jsonBytes, _ := json.Marshal(result)
	*resultJSON = C.CString(string(jsonBytes))
	setError(nil)
	return 0
}

//export pacoengine_analyze
func pacoengine_analyze(fen, actionsJSON *C.char, resultJSON **C.char) C.int {
	board, err := replayPosition(C.GoString(fen), C.GoString(actionsJSON))
	if err != nil {
		setError(err)
		*resultJSON = C.CString(`{"error": "invalid position"}`)
		return -1
	}

	report, err := puzzle.AnalyzeBoard(board)
	if err != nil {
		setError(err)
		*resultJSON = C.CString(`{"error": "analysis failed"}`)
		return -1
	}

	jsonBytes, _ := json.Marshal(report)
	*resultJSON = C.CString(string(jsonBytes))
	setError(nil)
	return 0
}

//export pacoengine_free_string
func pacoengine_free_string(s *C.char) {
	if s != nil {
		C.free(unsafe.Pointer(s))
	}
}

func main() {}
