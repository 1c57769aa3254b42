package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/ironsheep/blur-gate/internal/blur"
	"github.com/ironsheep/blur-gate/internal/imaging"
	"github.com/ironsheep/blur-gate/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("blur-gate %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printHelp()
			return
		case "score":
			setupLogging()
			os.Exit(runScore(os.Args[2:]))
		}
	}

	setupLogging()
	os.Exit(runServer(os.Args[1:], os.Stdin, os.Stdout))
}

// runServer serves MCP requests from in to out and returns the exit status.
// The pipeline worker is stopped on every return path.
func runServer(args []string, in io.Reader, out io.Writer) int {
	fs := flag.NewFlagSet("blur-gate", flag.ContinueOnError)
	configPath := fs.String("config", "", "TOML file overriding the scoring constants")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Printf("Config error: %v", err)
		return 2
	}

	if os.Getenv("BLUR_GATE_LOG_LEVEL") == "debug" {
		log.Printf("Blur Gate MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	srv := server.New(cfg)
	defer srv.Close()
	if err := srv.RunIO(in, out); err != nil {
		log.Printf("Server error: %v", err)
		return 1
	}
	return 0
}

func printHelp() {
	fmt.Println("blur-gate - blur scoring for camera captures")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  blur-gate [--config file]                 Run the MCP server on stdin/stdout")
	fmt.Println("  blur-gate score [options] image...        Score image files and print JSON")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println("  --config FILE    TOML file overriding the scoring constants")
	fmt.Println()
	fmt.Println("Score options:")
	fmt.Println("  --threshold N    Policy threshold; images scoring above it are blurry (default 1.0)")
	fmt.Println("  --concurrency N  Files scored at once (default 4)")
	fmt.Println()
	fmt.Println("score exits 1 when any image is blurry or cannot be read.")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  BLUR_GATE_LOG_LEVEL=debug    Enable debug logging")
	fmt.Println("  BLUR_GATE_CONFIG=FILE        Config file used when --config is not given")
}

// setupLogging sends log output to stderr; stdout carries MCP traffic or
// score results.
func setupLogging() {
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	level := slog.LevelWarn
	if os.Getenv("BLUR_GATE_LOG_LEVEL") == "debug" {
		level = slog.LevelDebug
	}
	imaging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func loadConfig(path string) (blur.Config, error) {
	if path == "" {
		path = os.Getenv("BLUR_GATE_CONFIG")
	}
	if path == "" {
		return blur.DefaultConfig(), nil
	}
	return blur.LoadConfig(path)
}

type scoreLine struct {
	Path    string        `json:"path"`
	Verdict *blur.Verdict `json:"verdict,omitempty"`
	Error   string        `json:"error,omitempty"`
}

// runScore implements the score subcommand and returns the exit status.
func runScore(args []string) int {
	fs := flag.NewFlagSet("score", flag.ContinueOnError)
	configPath := fs.String("config", "", "TOML file overriding the scoring constants")
	threshold := fs.Float64("threshold", blur.DefaultThreshold, "images scoring above this are blurry")
	concurrency := fs.Int("concurrency", 4, "files scored at once")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "score: no image files given")
		return 2
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "score: %v\n", err)
		return 2
	}

	results, err := blur.MeasureFiles(context.Background(), fs.Args(), cfg, *concurrency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "score: %v\n", err)
		return 2
	}

	status := 0
	enc := json.NewEncoder(os.Stdout)
	for _, r := range results {
		line := scoreLine{Path: r.Path, Error: r.Error}
		if r.Score != nil {
			v := blur.Check(*r.Score, *threshold)
			line.Verdict = &v
			if v.Blurry {
				status = 1
			}
		} else {
			status = 1
		}
		if err := enc.Encode(line); err != nil {
			log.Printf("Failed to encode result: %v", err)
			return 2
		}
	}
	return status
}
