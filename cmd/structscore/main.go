// Command structscore scores answers against a question, either one-shot
// (-answer given, JSON verdict on stdout) or interactively (type answers,
// each one scored and optionally learned into the vocabulary store).
package main

// #region imports
import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/peterbourgon/ff/v3"

	"structeval"
	"structeval/internal/scorelog"
	"structeval/internal/vocabstore"
)

// #endregion

// #region main
func main() {
	fs := flag.NewFlagSet("structscore", flag.ExitOnError)
	var (
		vocabPath    = fs.String("vocab", "structural_vocab.yaml", "path to the vocabulary YAML")
		dbPath       = fs.String("db", "", "path to the learned-vocab database (optional)")
		mode         = fs.String("mode", "alignment", "scoring mode: alignment or legacy")
		question     = fs.String("question", "", "question text")
		answer       = fs.String("answer", "", "answer text; empty starts interactive mode")
		questionKey  = fs.String("key", "", "question key for learned vocabulary (default: none)")
		minWords     = fs.Int("min-words", 100, "legacy mode: target word count")
		minSentences = fs.Int("min-sentences", 3, "legacy mode: target sentence count")
		learn        = fs.Bool("learn", false, "merge each answer's keywords into the store")
	)
	if err := ff.Parse(fs, os.Args[1:], ff.WithEnvVarPrefix("STRUCTSCORE")); err != nil {
		log.Fatalf("parse flags: %v", err)
	}

	if *question == "" {
		fmt.Fprintln(os.Stderr, "usage: structscore -question TEXT [-answer TEXT] [-mode alignment|legacy] [-vocab FILE] [-db FILE -key KEY -learn]")
		os.Exit(2)
	}
	if *mode != "alignment" && *mode != "legacy" {
		log.Fatalf("unknown mode %q", *mode)
	}
	if *learn && *dbPath == "" {
		log.Fatal("-learn requires -db")
	}
	if *dbPath != "" && *questionKey == "" {
		log.Fatal("-key is required when using the vocabulary store")
	}

	var cfg *structeval.Config
	if *mode == "alignment" {
		var err error
		cfg, err = structeval.LoadVocabulary(*vocabPath)
		if err != nil {
			log.Fatalf("load vocabulary: %v", err)
		}
	}

	var store *vocabstore.Store
	if *dbPath != "" {
		var err error
		store, err = vocabstore.NewStore(*dbPath)
		if err != nil {
			log.Fatalf("open store: %v", err)
		}
		defer store.Close()

		// Seed from the prompt so a brand-new question starts with its own
		// vocabulary rather than an empty overlay.
		if _, err := store.Seed(*questionKey, *question); err != nil {
			log.Fatalf("seed vocabulary: %v", err)
		}
	}

	s := scorer{
		cfg:          cfg,
		store:        store,
		mode:         *mode,
		question:     *question,
		questionKey:  *questionKey,
		minWords:     *minWords,
		minSentences: *minSentences,
		learn:        *learn,
	}

	if *answer != "" {
		if err := s.scoreOne(*answer); err != nil {
			log.Fatalf("score: %v", err)
		}
		return
	}

	fmt.Println("structscore interactive mode.")
	fmt.Printf("  mode: %s | question: %s\n", s.mode, s.question)
	fmt.Println("Type an answer (or 'quit' to exit):")

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if text == "quit" || text == "exit" {
			break
		}
		if err := s.scoreOne(text); err != nil {
			log.Printf("score error: %v", err)
		}
	}
}

// #endregion main

// #region scorer

type scorer struct {
	cfg          *structeval.Config
	store        *vocabstore.Store
	mode         string
	question     string
	questionKey  string
	minWords     int
	minSentences int
	learn        bool
}

func (s *scorer) scoreOne(answer string) error {
	var (
		payload   any
		score     float64
		band      string
		flagsJSON string
		notes     string
	)

	switch s.mode {
	case "legacy":
		v, err := structeval.ScoreLegacy(s.question, answer, s.minWords, s.minSentences)
		if err != nil {
			return err
		}
		payload = v
		score = float64(v.Score) / 100.0
		band = string(v.Band)
		notes = strings.Join(v.Notes, " ")
	default:
		learned := s.loadLearned()
		v, err := structeval.ScoreAlignment(s.question, answer, s.cfg, learned, s.questionKey, nil)
		if err != nil {
			return err
		}
		payload = v
		score = v.StructuralScore
		fj, _ := json.Marshal(v.Flags)
		flagsJSON = string(fj)
		notes = strings.Join(v.Explain, " ")
	}

	out, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal verdict: %w", err)
	}
	fmt.Println(string(out))

	if s.store == nil {
		return nil
	}
	if s.learn {
		if _, err := s.store.RecordAnswer(s.questionKey, answer); err != nil {
			return fmt.Errorf("record answer: %w", err)
		}
	}
	entry := scorelog.Entry{
		QuestionKey: s.questionKey,
		Mode:        s.mode,
		Score:       score,
		Band:        band,
		FlagsJSON:   flagsJSON,
		Notes:       notes,
	}
	if err := scorelog.LogVerdict(s.store.DB(), entry); err != nil {
		return fmt.Errorf("log verdict: %w", err)
	}
	return nil
}

// loadLearned reads the stored vocabulary, if any. A missing row is not an
// error — scoring just runs on the base vocabulary.
func (s *scorer) loadLearned() *structeval.LearnedVocabulary {
	if s.store == nil || s.questionKey == "" {
		return nil
	}
	lv, _, err := s.store.Get(s.questionKey)
	if err != nil {
		return nil
	}
	return &lv
}

// #endregion scorer
