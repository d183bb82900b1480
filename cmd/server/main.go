package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/jwaldner/greekmap/internal/config"
	"github.com/jwaldner/greekmap/internal/handlers"
	"github.com/jwaldner/greekmap/internal/logger"
)

func main() {
	cfg := config.Load()

	// Initialize logging with config level and file path
	if err := logger.InitWithConfig(cfg.Logging.LogLevel, cfg.Logging.LogFile); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	logger.Always.Printf("Greekmap dashboard starting - Port: %s", cfg.Port)

	if cfg.Logging.LogLevel == "verbose" {
		fmt.Printf("VERBOSE LOGGING ENABLED - every request will be logged to %s\n", cfg.Logging.LogFile)
	}

	// Fail fast on a sweep the home page could never render
	x, y, err := cfg.Axes()
	if err == nil {
		if err = x.ValidateLimit(cfg.Surface.MaxPoints); err == nil {
			err = y.ValidateLimit(cfg.Surface.MaxPoints)
		}
	}
	if err != nil {
		log.Fatalf("Invalid surface configuration: %v", err)
	}
	if len(cfg.SurfaceGreeks()) == 0 {
		logger.Warn.Printf("No valid greeks configured under surface.greeks - home page will show no heatmaps")
	}

	mode := "permissive (NaN/Inf propagate)"
	if cfg.Engine.StrictValidation {
		mode = "strict (out-of-domain inputs rejected)"
	}
	logger.Always.Printf("Engine validation: %s", mode)
	logger.Info.Printf("Default point: %v", cfg.Params())

	r := handlers.NewRouter(handlers.NewDashboardHandler(cfg))

	// Start server
	fmt.Printf("Server starting on http://localhost:%s\n", cfg.Port)
	logger.Always.Printf("Server starting on http://localhost:%s", cfg.Port)

	if err := http.ListenAndServe("0.0.0.0:"+cfg.Port, logRequests(r)); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Verbose.Printf("%s %s", r.Method, r.URL.RequestURI())
		next.ServeHTTP(w, r)
	})
}
