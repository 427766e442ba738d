// Command vocab-inspect dumps learned vocabularies and the recent verdict
// log from a structscore database.
package main

// #region imports
import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"structeval/internal/scorelog"
	"structeval/internal/vocabstore"
)

// #endregion

// #region main

func main() {
	dbPath := flag.String("db", "", "path to the learned-vocab database")
	key := flag.String("key", "", "show a single question's vocabulary")
	last := flag.Int("last", 20, "show N most recent verdicts")
	jsonOut := flag.Bool("json", false, "output as JSON instead of text")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: vocab-inspect --db path/to/structscore.db [--key question] [--last N] [--json]")
		os.Exit(2)
	}

	store, err := vocabstore.NewStore(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := run(store, *key, *last, *jsonOut); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region run

type vocabRow struct {
	QuestionKey      string   `json:"question_key"`
	KeywordCount     int      `json:"keyword_count"`
	AnswerCount      int      `json:"answer_count"`
	SeededFromPrompt bool     `json:"from_prompt"`
	Keywords         []string `json:"keywords,omitempty"`
}

func run(store *vocabstore.Store, key string, last int, jsonOut bool) error {
	keys := []string{key}
	if key == "" {
		var err error
		keys, err = store.ListKeys()
		if err != nil {
			return err
		}
	}

	var rows []vocabRow
	for _, k := range keys {
		lv, _, err := store.Get(k)
		if err != nil {
			return err
		}
		row := vocabRow{
			QuestionKey:      k,
			KeywordCount:     len(lv.DomainKeywords),
			AnswerCount:      lv.AnswerCount,
			SeededFromPrompt: lv.SeededFromPrompt,
		}
		if key != "" {
			row.Keywords = lv.DomainKeywords
		}
		rows = append(rows, row)
	}

	verdicts, err := scorelog.Recent(store.DB(), key, last)
	if err != nil {
		return err
	}

	if jsonOut {
		out, err := json.MarshalIndent(map[string]any{
			"vocabularies": rows,
			"verdicts":     verdicts,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Printf("%-32s %8s %8s %8s\n", "QUESTION", "KEYWORDS", "ANSWERS", "SEEDED")
	for _, r := range rows {
		fmt.Printf("%-32s %8d %8d %8t\n", r.QuestionKey, r.KeywordCount, r.AnswerCount, r.SeededFromPrompt)
		if len(r.Keywords) > 0 {
			fmt.Printf("  %s\n", strings.Join(r.Keywords, ", "))
		}
	}

	if len(verdicts) > 0 {
		fmt.Printf("\n%-32s %-10s %7s %-14s %s\n", "QUESTION", "MODE", "SCORE", "BAND", "AT")
		for _, v := range verdicts {
			fmt.Printf("%-32s %-10s %7.4f %-14s %s\n",
				v.QuestionKey, v.Mode, v.Score, v.Band, v.CreatedAt.Format("2006-01-02T15:04:05Z"))
		}
	}
	return nil
}

// #endregion run
