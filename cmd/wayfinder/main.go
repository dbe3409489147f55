package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/codefionn/wayfinder/internal/agent"
	"github.com/codefionn/wayfinder/internal/config"
	"github.com/codefionn/wayfinder/internal/llm"
	"github.com/codefionn/wayfinder/internal/logger"
	"github.com/codefionn/wayfinder/internal/tools"
	"github.com/codefionn/wayfinder/internal/venues"
)

const systemInstruction = `You are a venue wayfinding assistant. You help visitors find places inside the venue, get walking directions between them, and learn details about them.

Use the available tools to answer questions: search_places to find places by name or category, get_directions for routes, get_place_details for descriptions and exact locations. Ground every answer in tool results; if a lookup fails or finds nothing, say so and ask the visitor for more detail instead of guessing. Keep answers short and concrete.`

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", config.DefaultPath(), "path to config file")
	providerName := flag.String("provider", "", "LLM provider (google, anthropic, openai)")
	model := flag.String("model", "", "model ID, defaults per provider")
	venueFile := flag.String("venue", "", "path to venue JSON file (built-in demo venue when empty)")
	logLevel := flag.String("log-level", "", "log level (debug, info, warn, error)")
	maxIterations := flag.Int("max-iterations", 0, "tool-use iterations per turn before the assistant must answer")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *providerName != "" {
		cfg.Provider = *providerName
	}
	if *model != "" {
		cfg.Model = *model
	}
	if *venueFile != "" {
		cfg.VenueFile = *venueFile
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *maxIterations > 0 {
		cfg.MaxIterations = *maxIterations
	}

	if err := logger.Init(logger.ParseLevel(cfg.LogLevel), cfg.LogPath); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	log := logger.Global()
	defer log.Close()

	// Route SDK logging through our logger.
	slog.SetDefault(slog.New(logger.NewSlogHandler(log)))

	ctx := context.Background()

	provider, err := llm.New(ctx, cfg, log)
	if err != nil {
		return err
	}

	places, err := loadVenue(cfg.VenueFile)
	if err != nil {
		return err
	}
	index := venues.NewIndex(places)
	nav := venues.NewStraightLineNavigator()

	registry := agent.NewRegistry()
	if err := tools.RegisterAll(registry, index, nav); err != nil {
		return err
	}

	assistant := agent.New(provider, registry,
		agent.WithInstruction(systemInstruction),
		agent.WithCeiling(cfg.MaxIterations),
		agent.WithLogger(log),
	)

	log.Info("wayfinder started: provider=%s model=%s places=%d", provider.Name(), cfg.Model, len(places))
	fmt.Printf("wayfinder (%s) - ask about places in the venue, 'exit' to quit\n", provider.Name())
	return repl(ctx, assistant, log)
}

func repl(ctx context.Context, assistant *agent.Agent, log *logger.Logger) error {
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Println()
				return nil
			}
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return nil
		}

		result, err := assistant.HandleTurn(ctx, line)
		if err != nil {
			log.Error("turn failed: %v", err)
			fmt.Println("Sorry, something went wrong. Please try again.")
			continue
		}
		fmt.Println(result.FinalText)
	}
}

// loadVenue reads the venue file, or falls back to a small demo venue so
// the assistant works out of the box.
func loadVenue(path string) ([]venues.Place, error) {
	if path != "" {
		return venues.LoadPlaces(path)
	}
	return demoVenue(), nil
}

func demoVenue() []venues.Place {
	return []venues.Place{
		{
			ID: "gate-a1", Name: "Gate A1", Categories: []string{"gate"}, Floor: 2,
			Location:    venues.Coordinate{Lat: 47.4502, Lng: 8.5621},
			Description: "Departure gate A1, concourse A.",
		},
		{
			ID: "gate-b4", Name: "Gate B4", Categories: []string{"gate"}, Floor: 2,
			Location:    venues.Coordinate{Lat: 47.4511, Lng: 8.5639},
			Description: "Departure gate B4, concourse B.",
		},
		{
			ID: "cafe-central", Name: "Central Cafe", Categories: []string{"food", "coffee"}, Floor: 1,
			Location:    venues.Coordinate{Lat: 47.4506, Lng: 8.5628},
			Description: "Coffee, sandwiches and pastries. Open 6:00-22:00.",
		},
		{
			ID: "restrooms-main", Name: "Main Hall Restrooms", Categories: []string{"restroom"}, Floor: 1,
			Location:    venues.Coordinate{Lat: 47.4504, Lng: 8.5625},
			Description: "Restrooms near the main hall, with accessible stalls.",
		},
		{
			ID: "info-desk", Name: "Information Desk", Categories: []string{"service"}, Floor: 1,
			Location:    venues.Coordinate{Lat: 47.4505, Lng: 8.5626},
			Description: "Staffed information desk in the main hall.",
		},
		{
			ID: "pharmacy", Name: "Airport Pharmacy", Categories: []string{"shop", "health"}, Floor: 1,
			Location:    venues.Coordinate{Lat: 47.4508, Lng: 8.5632},
			Description: "Pharmacy and travel health supplies. Open 7:00-21:00.",
		},
	}
}
