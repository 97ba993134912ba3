// Package main is the composition root for gong-mcp.
// All dependencies are wired here — no service locator, no global state.
// This is the only place that knows about all layers simultaneously.
package main

import (
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	callapp "github.com/ebeckman/gong-mcp/internal/application/call"
	speakerapp "github.com/ebeckman/gong-mcp/internal/application/speaker"
	transcriptapp "github.com/ebeckman/gong-mcp/internal/application/transcript"
	userapp "github.com/ebeckman/gong-mcp/internal/application/user"
	calldomain "github.com/ebeckman/gong-mcp/internal/domain/call"
	"github.com/ebeckman/gong-mcp/internal/infrastructure/cache"
	"github.com/ebeckman/gong-mcp/internal/infrastructure/config"
	"github.com/ebeckman/gong-mcp/internal/infrastructure/directory"
	"github.com/ebeckman/gong-mcp/internal/infrastructure/gong"
	"github.com/ebeckman/gong-mcp/internal/infrastructure/logging"
	"github.com/ebeckman/gong-mcp/internal/infrastructure/resilience"
	"github.com/ebeckman/gong-mcp/internal/interfaces/cli"
	mcpiface "github.com/ebeckman/gong-mcp/internal/interfaces/mcp"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Set version info for the CLI
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	// Load configuration (file defaults + env overrides)
	cfg := config.Load()
	logger := logging.New(cfg.Log.Level)

	// --- Infrastructure Layer ---

	// HTTP client for the Gong API
	httpClient := &http.Client{Timeout: cfg.Resilience.Timeout}

	// Gong API client (anti-corruption layer)
	gongClient := gong.NewClient(cfg.Gong.BaseURL, httpClient, cfg.Gong.AccessKey, cfg.Gong.AccessSecret)

	// Repository: Gong API → call.Repository
	gongRepo := gong.NewRepository(gongClient, logger)

	// Resilience decorator (timeout, bounded retry)
	resilientRepo := resilience.NewResilientRepository(gongRepo, resilience.Config{
		Timeout:       cfg.Resilience.Timeout,
		MaxRetries:    cfg.Resilience.MaxRetries,
		RetryDelay:    cfg.Resilience.RetryDelay,
		RetryMaxDelay: cfg.Resilience.RetryMaxDelay,
	})

	// Cache decorator (SQLite local cache for call records)
	var repo calldomain.Repository = resilientRepo
	if cfg.Cache.Enabled {
		if err := os.MkdirAll(cfg.Cache.Dir, 0o700); err != nil {
			logger.Warn().Err(err).Msg("cannot create cache dir, caching disabled")
		} else {
			dbPath := filepath.Join(cfg.Cache.Dir, "cache.db")
			db, err := sql.Open("sqlite3", dbPath)
			if err == nil {
				cachedRepo, cacheErr := cache.NewCachedRepository(resilientRepo, db, cfg.Cache.TTL)
				if cacheErr == nil {
					repo = cachedRepo
					defer func() { _ = db.Close() }()
				}
			}
		}
	}

	// User directory: paginated source behind the TTL snapshot cache
	userSource := gong.NewUserSource(gongClient, logger)
	dir := directory.New(userSource, cfg.Directory.TTL, logger)

	// --- Application Layer (Use Cases) ---

	resolver := speakerapp.NewResolver(repo, dir, logger)
	formatter := transcriptapp.NewFormatter(repo, resolver)
	listCalls := callapp.NewListCalls(repo)
	getCall := callapp.NewGetCall(repo, formatter, logger)
	findUsers := userapp.NewFindUsers(dir)
	refreshDirectory := userapp.NewRefreshDirectory(dir)

	// --- Interfaces Layer ---

	mcpServer := mcpiface.NewServer(cfg.MCP.ServerName, version, logger, mcpiface.ServerOptions{
		ListCalls: listCalls,
		GetCall:   getCall,
		FindUsers: findUsers,
	})

	deps := &cli.Dependencies{
		ListCalls:        listCalls,
		GetCall:          getCall,
		FindUsers:        findUsers,
		RefreshDirectory: refreshDirectory,
		MCPServer:        mcpServer,
		Out:              os.Stdout,
	}

	// Execute CLI
	if err := cli.NewRootCmd(deps).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
