// bookfinder - Enriches an opening book with connections between its positions
package main

import (
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/yourusername/pacoengine/pkg/book"
)

func main() {
	bookPath := flag.String("book", "", "Path of the opening book JSON file")
	outPath := flag.String("out", "", "Output path (defaults to overwriting the input)")
	verbose := flag.Bool("v", false, "Verbose logging")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if !*verbose {
		log = log.Level(zerolog.InfoLevel)
	}

	if *bookPath == "" {
		log.Fatal().Msg("missing -book <file.json>")
	}
	if *outPath == "" {
		*outPath = *bookPath
	}

	b, err := book.LoadFile(*bookPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *bookPath).Msg("could not load opening book")
	}
	log.Info().Int("positions", len(b)).Str("path", *bookPath).Msg("opening book loaded")

	start := time.Now()
	found, err := book.FindConnections(b, log)
	if err != nil {
		log.Fatal().Err(err).Msg("connection search failed")
	}
	log.Info().
		Int("connections", found).
		Dur("elapsed", time.Since(start)).
		Msg("connection search finished")

	if err := b.SaveFile(*outPath); err != nil {
		log.Fatal().Err(err).Str("path", *outPath).Msg("could not write opening book")
	}
	log.Info().Str("path", *outPath).Msg("opening book written")
}
