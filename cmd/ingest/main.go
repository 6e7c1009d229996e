// Command ingest loads a level-structured word-list PDF into the vocabulary
// corpus. Each page opens with a level heading ("LEVEL 1", "LEVEL 2", ...);
// every following row holds numbered English words. Numbering is stripped,
// heading rows are skipped, and the remaining words are bulk-inserted under
// the page's level. Re-running on the same PDF is safe: duplicates are
// ignored by the insert.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"
	"unicode"

	"github.com/joho/godotenv"
	"github.com/ledongthuc/pdf"

	"github.com/vocaquiz/backend/internal/adapter/postgres"
	corpusrepo "github.com/vocaquiz/backend/internal/adapter/postgres/corpus"
	"github.com/vocaquiz/backend/internal/app"
	"github.com/vocaquiz/backend/internal/config"
	"github.com/vocaquiz/backend/internal/domain"
)

func main() {
	pdfFlag := flag.String("pdf", "", "path to the word-list PDF (required)")
	dryRunFlag := flag.Bool("dry-run", false, "parse the PDF without writing to the database")
	flag.Parse()

	if *pdfFlag == "" {
		log.Fatal("missing required -pdf flag")
	}

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	entries, err := parseWordList(*pdfFlag)
	if err != nil {
		logger.Error("parse pdf", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("parsed word list",
		slog.String("path", *pdfFlag),
		slog.Int("words", len(entries)),
	)

	if *dryRunFlag {
		for _, e := range entries {
			fmt.Printf("%s\t%s\n", e.Level, e.Word)
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	inserted, err := corpusrepo.New(pool).BulkInsert(ctx, entries)
	if err != nil {
		logger.Error("bulk insert", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("corpus ingest completed",
		slog.Int("parsed", len(entries)),
		slog.Int("inserted", inserted),
	)
}

// parseWordList extracts (word, level) pairs from the PDF. The level of a
// page carries over from its most recent heading row, so multi-page levels
// work without repeating the heading.
func parseWordList(path string) ([]domain.CorpusEntry, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var (
		entries []domain.CorpusEntry
		level   string
		seen    = make(map[string]struct{})
	)

	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		rows, err := page.GetTextByRow()
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", pageNum, err)
		}

		for _, row := range rows {
			text := rowText(row)
			if text == "" {
				continue
			}
			if name, ok := levelHeading(text); ok {
				level = name
				continue
			}
			if level == "" {
				continue // Preamble before the first heading.
			}

			for _, word := range rowWords(text) {
				key := level + "\x00" + word
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
				entries = append(entries, domain.CorpusEntry{Word: word, Level: level})
			}
		}
	}

	return entries, nil
}

func rowText(row *pdf.Row) string {
	var sb strings.Builder
	for _, t := range row.Content {
		sb.WriteString(t.S)
	}
	return strings.TrimSpace(sb.String())
}

// levelHeading recognizes "LEVEL <n>" rows and canonicalizes them to
// "Level <n>".
func levelHeading(text string) (string, bool) {
	fields := strings.Fields(text)
	if len(fields) != 2 || !strings.EqualFold(fields[0], "level") {
		return "", false
	}
	for _, r := range fields[1] {
		if !unicode.IsDigit(r) {
			return "", false
		}
	}
	return "Level " + fields[1], true
}

// rowWords splits a content row into normalized words, dropping the item
// numbers that prefix each word in the source PDF.
func rowWords(text string) []string {
	var words []string
	for _, field := range strings.Fields(text) {
		cleaned := strings.Map(func(r rune) rune {
			if unicode.IsDigit(r) || r == '.' || r == ')' {
				return -1
			}
			return r
		}, field)

		word := domain.NormalizeWord(cleaned)
		if word == "" {
			continue
		}
		words = append(words, word)
	}
	return words
}
