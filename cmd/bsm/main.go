package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	bsm "github.com/jwaldner/greekmap/bsm_lib"
	"github.com/jwaldner/greekmap/internal/config"
	"github.com/jwaldner/greekmap/internal/export"
	"github.com/jwaldner/greekmap/internal/logger"
	"github.com/jwaldner/greekmap/internal/render"
	"github.com/jwaldner/greekmap/internal/surface"
)

// Prices one point and optionally exports greek surfaces
func main() {
	cfg := config.Load()
	defaults := cfg.Params()
	defX, defY, err := cfg.Axes()
	if err != nil {
		log.Fatalf("invalid surface configuration: %v", err)
	}

	spot := flag.Float64("spot", defaults.Spot, "asset spot price")
	strike := flag.Float64("strike", defaults.Strike, "asset strike price")
	rate := flag.Float64("rate", defaults.Rate, "risk-free interest rate")
	maturity := flag.Float64("maturity", defaults.Maturity, "time to maturity in years")
	vol := flag.Float64("vol", defaults.Volatility, "annualized volatility")
	strict := flag.Bool("strict", cfg.Engine.StrictValidation, "reject out-of-domain inputs instead of propagating NaN/Inf")
	greeks := flag.String("greeks", strings.Join(cfg.Surface.Greeks, ","), "comma-separated greeks to sweep")
	xFlag := flag.String("x", "", "x sweep as param:min:max[:points] (default from config)")
	yFlag := flag.String("y", "", "y sweep as param:min:max[:points] (default from config)")
	csvDir := flag.String("csv", "", "write one CSV per greek surface into this directory")
	pngDir := flag.String("png", "", "write one heatmap PNG per greek surface into this directory")
	level := flag.String("log", "error", "log level (error, warn, info, debug, verbose)")
	flag.Parse()

	if err := logger.InitWithConfig(*level, ""); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}

	p := bsm.Params{Spot: *spot, Strike: *strike, Rate: *rate, Maturity: *maturity, Volatility: *vol}
	if *strict {
		if err := p.Validate(); err != nil {
			log.Fatalf("%v", err)
		}
	}

	result := p.Evaluate()
	fmt.Printf("Parameters: %v\n", p)
	for _, c := range render.PriceCards(result) {
		fmt.Printf("%-10s %s\n", c.Label, c.Display)
	}
	fmt.Println()
	fmt.Printf("%-6s %12s %12s\n", "Greek", "Call", "Put")
	for _, row := range render.GreekTable(result) {
		fmt.Printf("%-6s %12s %12s\n", row.Name, row.Call, row.Put)
	}

	if *csvDir == "" && *pngDir == "" {
		return
	}

	x, y := defX, defY
	if *xFlag != "" {
		if x, err = surface.ParseAxis(*xFlag, cfg.Surface.Points); err != nil {
			log.Fatalf("-x: %v", err)
		}
	}
	if *yFlag != "" {
		if y, err = surface.ParseAxis(*yFlag, cfg.Surface.Points); err != nil {
			log.Fatalf("-y: %v", err)
		}
	}

	now := time.Now()
	for _, name := range strings.Split(*greeks, ",") {
		g, err := bsm.ParseGreek(name)
		if err != nil {
			log.Fatalf("-greeks: %v", err)
		}
		s, err := surface.Build(context.Background(), p, x, y, g, *strict)
		if err != nil {
			log.Fatalf("%s surface: %v", g, err)
		}

		if *csvDir != "" {
			path := filepath.Join(*csvDir, export.FormatFilename(cfg.CSV.FilenameFormat, s, now))
			if err := writeFile(path, func(f *os.File) error { return export.WriteSurfaceCSV(f, s) }); err != nil {
				log.Fatalf("%s csv: %v", g, err)
			}
			fmt.Printf("wrote %s\n", path)
		}
		if *pngDir != "" {
			path := filepath.Join(*pngDir, fmt.Sprintf("%s_%s_%s.png", g, x.Param, y.Param))
			err := writeFile(path, func(f *os.File) error {
				return render.HeatmapPNG(f, s, render.DefaultHeatmapOptions)
			})
			if err != nil {
				// NaN-only panes are reported, not fatal
				logger.Error.Printf("%s heatmap: %v", g, err)
				continue
			}
			fmt.Printf("wrote %s\n", path)
		}
	}
}

func writeFile(path string, write func(*os.File) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}
