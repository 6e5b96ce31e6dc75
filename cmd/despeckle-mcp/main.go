package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/despeckle-mcp/internal/config"
	"github.com/ironsheep/despeckle-mcp/internal/rest"
	"github.com/ironsheep/despeckle-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	httpMode := false

	// Handle --version, --help and --http flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("despeckle-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printHelp()
			return
		case "--http":
			httpMode = true
		default:
			fmt.Fprintf(os.Stderr, "unknown option: %s\n", os.Args[1])
			os.Exit(2)
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	if len(os.Args) > 2 && httpMode {
		cfg.HTTPAddr = os.Args[2]
	}

	if cfg.Debug() {
		log.Printf("Despeckle MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
		log.Printf("Defaults: passes=%d threshold=%d min_area=%d variant=%s polarity=%s",
			cfg.Defaults.Passes, cfg.Defaults.Threshold, cfg.Defaults.MinArea,
			cfg.Defaults.Variant, cfg.Defaults.Polarity)
	}

	server.Version = Version
	srv := server.New(cfg)

	if httpMode {
		log.Printf("Serving REST API on %s", cfg.HTTPAddr)
		if err := rest.Serve(cfg.HTTPAddr, srv.Toolbox()); err != nil {
			log.Fatalf("HTTP server error: %v", err)
		}
		return
	}

	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func printHelp() {
	fmt.Println("despeckle-mcp - MCP server for speckle and dot-noise removal")
	fmt.Println()
	fmt.Println("Usage: despeckle-mcp [options]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println("  --http [addr]    Serve the REST API instead of MCP (default :8080)")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  DESPECKLE_MCP_LOG_LEVEL=debug    Enable debug logging")
	fmt.Println("  DESPECKLE_HTTP_ADDR=:8080        REST listen address")
	fmt.Println("  DESPECKLE_PASSES=5               Default Crimmins passes")
	fmt.Println("  DESPECKLE_THRESHOLD=1            Default Crimmins threshold")
	fmt.Println("  DESPECKLE_MIN_AREA=2             Default minimum component area")
	fmt.Println("  DESPECKLE_VARIANT=both           Default cleanup variant")
	fmt.Println("  DESPECKLE_POLARITY=dark_on_light Default foreground polarity")
	fmt.Println()
	fmt.Println("Without --http the server communicates via MCP protocol over stdin/stdout.")
}
