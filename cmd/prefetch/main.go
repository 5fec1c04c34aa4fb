// Command prefetch warms the example cache for a list of words so that quiz
// sessions over them never wait on the word-examples API.
//
// Words come from the arguments or, with --file, one per line (commas are
// accepted too). Lines starting with # are ignored.
//
// Flags:
//
//	--file      path to a word list
//	--timeout   overall deadline (default 10m)
//
// Exit codes: 0 = success, 1 = error, 2 = some words failed.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/heartmarshall/quizmaker-backend/internal/adapter/provider/wordnik"
	"github.com/heartmarshall/quizmaker-backend/internal/app"
	"github.com/heartmarshall/quizmaker-backend/internal/config"
	"github.com/heartmarshall/quizmaker-backend/internal/domain"
	"github.com/heartmarshall/quizmaker-backend/internal/service/quizbuilder"
)

func main() {
	fileFlag := flag.String("file", "", "path to a word list, one word per line")
	timeoutFlag := flag.Duration("timeout", 10*time.Minute, "overall deadline")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	words := flag.Args()
	if *fileFlag != "" {
		fromFile, err := readWordList(*fileFlag)
		if err != nil {
			logger.Error("read word list", slog.String("error", err.Error()))
			os.Exit(1)
		}
		words = append(words, fromFile...)
	}
	if len(words) == 0 {
		logger.Error("no words given")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeoutFlag)
	defer cancel()

	store, closeStore, err := app.OpenStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("open store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStore()

	provider := wordnik.NewProvider(wordnik.Options{
		BaseURL: cfg.Provider.BaseURL,
		APIKey:  cfg.Provider.APIKey,
		Limit:   cfg.Provider.Limit,
		Timeout: cfg.Provider.Timeout,
	}, logger)

	builder := quizbuilder.NewBuilder(logger, store, provider, quizbuilder.Options{
		ProviderTimeout: cfg.Provider.Timeout,
		StoreTimeout:    cfg.Store.OpTimeout,
	})

	report, err := builder.Prefetch(ctx, words)
	if len(report.Missing) > 0 {
		logger.Warn("words without examples", slog.Any("words", report.Missing))
	}
	if err != nil {
		logger.Error("prefetch incomplete",
			slog.Any("failed", report.Failed),
			slog.String("error", err.Error()),
		)
		closeStore()
		os.Exit(2)
	}
}

func readWordList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var words []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, domain.SplitWords(line)...)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan %s: %w", path, err)
	}
	return words, nil
}
