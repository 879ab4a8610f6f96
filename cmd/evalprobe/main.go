// Command evalprobe checks that an external evaluator is reachable and sane:
// it sends a position over the websocket and prints the returned value and
// the prior of every legal action.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/rs/zerolog"

	"github.com/yourusername/pacoengine/pkg/ai"
	"github.com/yourusername/pacoengine/pkg/engine"
)

func main() {
	url := flag.String("url", "ws://localhost:8001", "Evaluator websocket URL")
	fen := flag.String("fen", "", "Position to evaluate, defaults to the starting position")
	verbose := flag.Bool("v", false, "Verbose logging")
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).With().Timestamp().Logger()

	board := engine.NewBoard()
	if *fen != "" {
		parsed, err := engine.ParseFEN(*fen)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid fen")
		}
		board = parsed
	}

	client, err := ai.DialEvaluator(*url, log)
	if err != nil {
		log.Fatal().Err(err).Str("url", *url).Msg("connecting to evaluator")
	}
	defer client.Close()

	evaluation, err := client.Evaluate(board)
	if err != nil {
		log.Fatal().Err(err).Msg("evaluation failed")
	}

	actions, err := board.Actions()
	if err != nil {
		log.Fatal().Err(err).Msg("move generation failed")
	}
	priors := evaluation.Priors(board, actions)

	fmt.Printf("Position: %s\n", engine.WriteFEN(board))
	fmt.Printf("Value: %+.4f\n", evaluation.Value)
	fmt.Printf("Priors:\n")

	order := make([]int, len(actions))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return priors[order[a]] > priors[order[b]]
	})
	for _, i := range order {
		fmt.Printf("  %-14v %.4f\n", actions[i], priors[i])
	}
}
