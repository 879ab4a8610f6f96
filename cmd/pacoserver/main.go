// Command pacoserver runs the Paco Ŝako REST API server.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/yourusername/pacoengine/pkg/api"
)

const version = "0.1.0"

func main() {
	// Command line flags
	host := flag.String("host", "localhost", "Host to bind to (use 0.0.0.0 for all interfaces)")
	port := flag.Int("port", 8080, "Port to listen on")
	readTimeout := flag.Duration("read-timeout", 30*time.Second, "HTTP read timeout")
	writeTimeout := flag.Duration("write-timeout", 30*time.Second, "HTTP write timeout")
	fastWorkers := flag.Int("fast-workers", 100, "Max concurrent move and execute requests")
	slowWorkers := flag.Int("slow-workers", 4, "Max concurrent search and analysis requests")
	showVersion := flag.Bool("version", false, "Show version and exit")

	flag.Parse()

	if *showVersion {
		fmt.Printf("Paco Ŝako API Server v%s\n", version)
		os.Exit(0)
	}

	// Create server config
	config := api.ServerConfig{
		Host:           *host,
		Port:           *port,
		ReadTimeout:    *readTimeout,
		WriteTimeout:   *writeTimeout,
		IdleTimeout:    60 * time.Second,
		MaxFastWorkers: *fastWorkers,
		MaxSlowWorkers: *slowWorkers,
	}

	// Create and start server
	server := api.NewServer(config, version)

	if err := server.ListenAndServeWithGracefulShutdown(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
