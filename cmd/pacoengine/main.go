// pacoengine - A rule engine and analysis tool for the Paco Ŝako chess variant
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/exp/rand"

	"github.com/yourusername/pacoengine/pkg/engine"
	"github.com/yourusername/pacoengine/pkg/match"
	"github.com/yourusername/pacoengine/pkg/puzzle"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "moves":
		cmdMoves(args)
	case "play":
		cmdPlay(args)
	case "sako":
		cmdSako(args)
	case "analyze":
		cmdAnalyze(args)
	case "record":
		cmdRecord(args)
	case "fischer":
		cmdFischer(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`pacoengine - Paco Ŝako Rule Engine

Usage: pacoengine <command> [options]

Commands:
  moves     List the legal actions in a position
  play      Apply an action sequence to a position
  sako      Find all forced Ŝako sequences for one player
  analyze   Full position analysis for both players
  record    Replay a game record file and print its notation
  fischer   Print a randomized starting position

Use "pacoengine <command> -h" for command-specific help.

Position Format:
  Positions use the Paco Ŝako FEN extension.
  Example: "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w 0 AHah - -"
  Actions are written as "Lift d2", "Place d4" or "Promote Queen".`)
}

func parsePosition(fen string) (*engine.Board, error) {
	if fen == "" || fen == "initial" {
		return engine.NewBoard(), nil
	}
	return engine.ParseFEN(fen)
}

func parseActions(text string) ([]engine.Action, error) {
	var actions []engine.Action
	for _, part := range strings.Split(text, ",") {
		action, err := engine.ParseAction(part)
		if err != nil {
			return nil, err
		}
		actions = append(actions, action)
	}
	return actions, nil
}

func cmdMoves(args []string) {
	fs := flag.NewFlagSet("moves", flag.ExitOnError)
	fenFlag := fs.String("position", "initial", "Position FEN")
	fs.Parse(args)

	board, err := parsePosition(*fenFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	actions, err := board.Actions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing actions: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%v to act, %d legal actions:\n", board.ControllingPlayer, len(actions))
	for _, action := range actions {
		fmt.Printf("  %v\n", action)
	}
}

func cmdPlay(args []string) {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	fenFlag := fs.String("position", "initial", "Position FEN")
	actionsFlag := fs.String("actions", "", "Comma separated actions, e.g. 'Lift d2, Place d4'")
	fs.Parse(args)

	if *actionsFlag == "" {
		fmt.Fprintln(os.Stderr, "Error: actions required")
		fmt.Fprintln(os.Stderr, "Usage: pacoengine play -position <fen> -actions <actions>")
		os.Exit(1)
	}

	board, err := parsePosition(*fenFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	actions, err := parseActions(*actionsFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	result, err := engine.ExecuteSequence(board, actions, board.ControllingPlayer)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(engine.WriteFEN(result))
	if result.Victory.IsOver() {
		fmt.Printf("Game over: %v\n", result.Victory)
	}
}

func cmdSako(args []string) {
	fs := flag.NewFlagSet("sako", flag.ExitOnError)
	fenFlag := fs.String("position", "", "Position FEN")
	playerFlag := fs.String("player", "white", "Attacking player (white or black)")
	fs.Parse(args)

	if *fenFlag == "" {
		fmt.Fprintln(os.Stderr, "Error: position required")
		fmt.Fprintln(os.Stderr, "Usage: pacoengine sako -position <fen> [-player white|black]")
		os.Exit(1)
	}

	attacker := engine.White
	if strings.EqualFold(*playerFlag, "black") {
		attacker = engine.Black
	}

	board, err := parsePosition(*fenFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	start := time.Now()
	sequences, err := engine.FindSakoSequences(board, attacker)
	elapsed := time.Since(start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error searching: %v\n", err)
		os.Exit(1)
	}

	if len(sequences) == 0 {
		fmt.Printf("No Ŝako for %v (%.2fs)\n", attacker, elapsed.Seconds())
		return
	}
	fmt.Printf("%d Ŝako sequences for %v (%.2fs):\n", len(sequences), attacker, elapsed.Seconds())
	for _, sequence := range sequences {
		notation, err := engine.FormatSequence(board, attacker, sequence)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error formatting sequence: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("  %s\n", notation)
	}
}

func cmdAnalyze(args []string) {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	fenFlag := fs.String("position", "", "Position FEN")
	actionsFlag := fs.String("actions", "", "Optional comma separated actions to replay first")
	fs.Parse(args)

	if *fenFlag == "" {
		fmt.Fprintln(os.Stderr, "Error: position required")
		fmt.Fprintln(os.Stderr, "Usage: pacoengine analyze -position <fen> [-actions <actions>]")
		os.Exit(1)
	}

	var history []engine.Action
	if *actionsFlag != "" {
		var err error
		history, err = parseActions(*actionsFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	report, err := puzzle.Analyze(*fenFlag, history)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error analyzing position: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(report.TextSummary)
}

func cmdRecord(args []string) {
	fs := flag.NewFlagSet("record", flag.ExitOnError)
	fileFlag := fs.String("file", "", "Game record JSON file")
	fs.Parse(args)

	if *fileFlag == "" {
		fmt.Fprintln(os.Stderr, "Error: file required")
		fmt.Fprintln(os.Stderr, "Usage: pacoengine record -file <game.json>")
		os.Exit(1)
	}

	record, err := match.LoadFile(*fileFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if record.White != "" || record.Black != "" {
		fmt.Printf("%s vs %s\n", record.White, record.Black)
	}

	moves, err := record.Moves()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error replaying record: %v\n", err)
		os.Exit(1)
	}
	for _, move := range moves {
		fmt.Printf("%3d. %-6s %s\n", move.Number, move.Player, move.Notation)
	}

	board, err := record.Replay()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error replaying record: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(engine.WriteFEN(board))
	fmt.Printf("Result: %v\n", board.Victory)
}

func cmdFischer(args []string) {
	fs := flag.NewFlagSet("fischer", flag.ExitOnError)
	seed := fs.Uint64("seed", 0, "Random seed (0 = time based)")
	fs.Parse(args)

	s := *seed
	if s == 0 {
		s = uint64(time.Now().UnixNano())
	}
	board := engine.FischerRandomBoard(rand.New(rand.NewSource(s)))
	fmt.Println(engine.WriteFEN(board))
}
