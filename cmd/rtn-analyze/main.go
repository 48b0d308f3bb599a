// rtn-analyze screens one recording for response-to-name behavior and
// prints the structured analysis record as JSON on stdout.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/kidsense/go-rtn/internal/config"
	"github.com/kidsense/go-rtn/internal/log"
	"github.com/kidsense/go-rtn/pkg/analysis"
)

func main() {
	videoPath := flag.String("video", "", "Path to the recording to analyze")
	childName := flag.String("child", "", "Child display name (optional hint)")
	configPath := flag.String("config", "", "YAML threshold overrides (optional)")
	pretty := flag.Bool("pretty", false, "Indent the JSON output")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	// Local .env is optional; flags and the environment win.
	_ = godotenv.Load()

	if *videoPath == "" {
		if env := os.Getenv("RTN_VIDEO"); env != "" {
			*videoPath = env
		}
	}
	if *videoPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: rtn-analyze -video recording.mp4 [-child NAME] [-config tuning.yaml]")
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	if *debug {
		cfg.LogLevel = "debug"
	}
	log.Init(cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	result := analysis.New(cfg).AnalyzeVideo(ctx, *videoPath, *childName)

	enc := json.NewEncoder(os.Stdout)
	if *pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(result); err != nil {
		fmt.Fprintf(os.Stderr, "Error: encode result: %v\n", err)
		os.Exit(1)
	}

	if result.Error != "" {
		os.Exit(1)
	}
}
