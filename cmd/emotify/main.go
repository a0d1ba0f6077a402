// Command emotify runs the Emotify song emotion web application.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/justestif/emotify/internal/analysis"
	"github.com/justestif/emotify/internal/config"
	"github.com/justestif/emotify/internal/errmsg"
	"github.com/justestif/emotify/internal/gemini"
	"github.com/justestif/emotify/internal/genius"
	"github.com/justestif/emotify/internal/lexicon"
	"github.com/justestif/emotify/internal/report"
	"github.com/justestif/emotify/internal/song"
	"github.com/justestif/emotify/internal/spotify"
	"github.com/justestif/emotify/internal/web"
	webfs "github.com/justestif/emotify/web"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpLoadConfig, err))
	}

	lex, err := loadLexicon(cfg.Lexicon.Path)
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpLoadLexicon, err))
	}
	log.Printf("Lexicon loaded: %d words", lex.Len())

	// Missing secrets keep the server up with analysis disabled.
	var (
		searcher song.Searcher
		analyzer report.Analyzer
	)
	configErr := cfg.Validate()
	if configErr != nil {
		log.Printf("Warning: %v", configErr)
	} else {
		searcher, err = newSearcher(cfg)
		if err != nil {
			return fmt.Errorf("creating search client: %w", err)
		}
		analyzer, err = newAnalyzer(cfg)
		if err != nil {
			return fmt.Errorf("creating analysis client: %w", err)
		}
	}

	svc := report.New(searcher, analyzer, lex, report.WithConfigError(configErr))

	// Create sub-filesystems for templates and static files
	templates, err := fs.Sub(webfs.TemplatesFS, "templates")
	if err != nil {
		return fmt.Errorf("creating templates filesystem: %w", err)
	}

	static, err := fs.Sub(webfs.StaticFS, "static")
	if err != nil {
		return fmt.Errorf("creating static filesystem: %w", err)
	}

	server, err := web.NewServer(web.ServerConfig{
		Addr:   cfg.Addr,
		Runner: svc,
		Status: web.APIStatus{
			SearchProvider: cfg.Search.Provider,
			SearchReady:    cfg.SearchConfigured(),
			GeminiReady:    cfg.GeminiConfigured(),
		},
		TemplatesFS: templates,
		StaticFS:    static,
		// search and analysis each get one client timeout
		WriteTimeout: 2*cfg.HTTP.Timeout + 30*time.Second,
	})
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	return server.Run()
}

func loadLexicon(path string) (*lexicon.Lexicon, error) {
	if path == "" {
		return lexicon.Default(), nil
	}
	return lexicon.LoadFile(path)
}

func newSearcher(cfg *config.Config) (song.Searcher, error) {
	switch cfg.Search.Provider {
	case config.ProviderSpotify:
		return spotify.NewWithClientCredentials(context.Background(),
			cfg.Spotify.ClientID, cfg.Spotify.ClientSecret, cfg.HTTP.Timeout)
	default:
		return genius.NewClient(cfg.Genius.APIKey,
			genius.WithBaseURL(cfg.Genius.BaseURL),
			genius.WithTimeout(cfg.HTTP.Timeout),
		), nil
	}
}

func newAnalyzer(cfg *config.Config) (report.Analyzer, error) {
	client, err := gemini.NewClient(cfg.Gemini.APIKey,
		gemini.WithBaseURL(cfg.Gemini.BaseURL),
		gemini.WithModel(cfg.Gemini.Model),
		gemini.WithTimeout(cfg.HTTP.Timeout),
	)
	if err != nil {
		return nil, err
	}
	return analysis.NewAnalyzer(client, analysis.WithProviderName("gemini ("+client.Model()+")")), nil
}
