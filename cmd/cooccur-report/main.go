package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/cognicore/cooccur/internal/htmltable"
	"github.com/cognicore/cooccur/internal/pairsfile"
	"github.com/cognicore/cooccur/pkg/cooccur"
	"github.com/cognicore/cooccur/pkg/cooccur/config"
	"github.com/cognicore/cooccur/pkg/cooccur/store"
	"github.com/cognicore/cooccur/pkg/cooccur/store/memstore"
	"github.com/cognicore/cooccur/pkg/cooccur/store/sqlite"
)

func main() {
	var (
		input    = flag.String("input", "", "Path to JSONL pair file")
		htmlPath = flag.String("html", "", "Path to an HTML file with a pair table (alternative to --input)")
		xVocab   = flag.String("x-vocab", "", "Optional: YAML vocabulary for the X variable")
		yVocab   = flag.String("y-vocab", "", "Optional: YAML vocabulary for the Y variable")
		settings = flag.String("settings", "", "Optional: YAML engine settings")
		dbPath   = flag.String("db", "", "Optional: SQLite database to persist corpus and report")
		corpus   = flag.String("corpus", "default", "Corpus name for persistence")
		topK     = flag.Int("top", 10, "Associations to keep in the report")
	)
	flag.Parse()

	if *input == "" && *htmlPath == "" {
		log.Fatal("--input or --html required")
	}

	ctx := context.Background()

	pairs, err := loadPairs(*input, *htmlPath)
	if err != nil {
		log.Fatalf("load pairs: %v", err)
	}

	loader := config.Loader{
		XVocabPath:   *xVocab,
		YVocabPath:   *yVocab,
		SettingsPath: *settings,
	}
	components, err := loader.Load()
	if err != nil {
		log.Fatalf("load configs: %v", err)
	}
	if components.Settings.TopK > 0 {
		*topK = components.Settings.TopK
	}

	st, err := openStore(ctx, *dbPath)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}

	engine := cooccur.New(cooccur.Options{
		Store:  st,
		TopK:   *topK,
		XVocab: components.XVocab,
		YVocab: components.YVocab,
	})
	defer engine.Close()

	if err := engine.Observe(ctx, *corpus, pairs); err != nil {
		log.Fatalf("observe: %v", err)
	}

	rep, err := engine.Analyze(ctx, *corpus)
	if err != nil {
		log.Fatalf("analyze: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		log.Fatalf("encode report: %v", err)
	}
}

func loadPairs(input, htmlPath string) ([]cooccur.Pair, error) {
	if input != "" {
		records, err := pairsfile.LoadFromJSONL(input)
		if err != nil {
			return nil, err
		}
		pairs := make([]cooccur.Pair, len(records))
		for i, r := range records {
			pairs[i] = cooccur.Pair{X: r.X, Y: r.Y}
		}
		return pairs, nil
	}

	f, err := os.Open(htmlPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	raw, err := htmltable.ExtractPairs(f)
	if err != nil {
		return nil, fmt.Errorf("extract pairs from %s: %w", htmlPath, err)
	}
	pairs := make([]cooccur.Pair, len(raw))
	for i, p := range raw {
		pairs[i] = cooccur.Pair{X: p[0], Y: p[1]}
	}
	return pairs, nil
}

func openStore(ctx context.Context, dbPath string) (store.Store, error) {
	if dbPath == "" {
		return memstore.New(), nil
	}
	return sqlite.OpenSQLite(ctx, dbPath)
}
