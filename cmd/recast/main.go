package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"recast/internal/config"
	"recast/internal/engine"
	"recast/internal/fetch"
	"recast/internal/logging"
	"recast/internal/pipeline"
	"recast/internal/store"
)

func main() {
	var params pipeline.Params
	flag.StringVar(&params.Source, "source", pipeline.SourceCollection, "content source: collection or topic")
	flag.StringVar(&params.Name, "name", "", "collection name or topic string (required)")
	flag.StringVar(&params.ContentType, "type", "blog_post", "output format: blog_post, script, social_post, thread, newsletter")
	flag.StringVar(&params.Tone, "tone", "professional", "tone: professional, casual, humorous, educational, inspirational")
	flag.StringVar(&params.Length, "length", "medium", "length: short, medium, long")
	flag.IntVar(&params.Limit, "limit", 5, "number of posts or articles to fetch")
	flag.StringVar(&params.TimeFilter, "time-filter", "day", "time window for collection runs: day, week, month, year, all")
	flag.BoolVar(&params.IncludeRelated, "related", true, "fetch related articles for topic runs")
	flag.Parse()

	cfg := config.Load()
	log := logging.New(cfg.LogLevel)

	if params.Name == "" {
		fmt.Fprintln(os.Stderr, "usage: recast -name <collection-or-topic> [flags]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	// Social fetcher, optionally with link-post extraction.
	socialOpts := []fetch.SocialOption{
		fetch.WithSocialBaseURL(cfg.SocialBaseURL),
		fetch.WithSocialHTTPClient(httpClient),
		fetch.WithUserAgent(cfg.UserAgent),
	}
	if cfg.FetchLinkedContent {
		socialOpts = append(socialOpts, fetch.WithLinkExtractor(fetch.NewReadabilityExtractor()))
	}
	social := fetch.NewSocialClient(socialOpts...)

	wiki := fetch.NewWikiClient(
		fetch.WithWikiBaseURL(cfg.WikiBaseURL),
		fetch.WithWikiHTTPClient(httpClient),
		fetch.WithPacingDelay(cfg.PacingDelay),
	)

	var modelClient engine.ModelClient
	switch {
	case cfg.UseStubs():
		log.Warn("no API key configured, using stub model client")
		modelClient = &engine.StubModelClient{}
	case cfg.LLMProvider == "openai":
		modelClient = engine.NewOpenAIClient(cfg.OpenAIKey, engine.WithModel(cfg.OpenAIModel))
	default:
		modelClient = engine.NewGeminiClient(cfg.GeminiKey, engine.WithGeminiModel(cfg.GeminiModel))
	}

	var recorder pipeline.RunRecorder
	db, err := store.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Warn("open run history db", "path", cfg.DBPath, "error", err)
	} else {
		defer db.Close()
		s, err := store.New(db)
		if err != nil {
			log.Warn("init run history store", "error", err)
		} else {
			recorder = s
		}
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		log.Error("create output dir", "dir", cfg.OutputDir, "error", err)
		os.Exit(1)
	}

	p := pipeline.New(social, wiki, modelClient, recorder, log)

	result, err := p.Run(context.Background(), params)
	if err != nil {
		log.Error("run failed", "error", err)
		errPath := filepath.Join(cfg.OutputDir, "error.txt")
		if werr := os.WriteFile(errPath, []byte(err.Error()+"\n"), 0o644); werr != nil {
			log.Error("write error file", "path", errPath, "error", werr)
		}
		os.Exit(1)
	}

	outPath := filepath.Join(cfg.OutputDir, fmt.Sprintf("result-%s.txt", result.RunID))
	if err := os.WriteFile(outPath, []byte(result.Output), 0o644); err != nil {
		log.Error("write result", "path", outPath, "error", err)
		os.Exit(1)
	}
	log.Info("run complete", "run", result.RunID, "output", outPath)
	fmt.Println(outPath)
}
