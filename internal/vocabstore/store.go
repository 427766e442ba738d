// Package vocabstore persists per-question learned vocabularies in SQLite.
//
// Concurrent answer submissions for the same question race to
// read-merge-write the vocabulary. Losing one answer's keyword contribution
// under contention is tolerable; an unguarded overwrite that drops the
// whole set is not. Every row therefore carries a generation marker that
// changes on each write, and updates are conditional on the generation read
// — a conflict re-reads and re-merges.
package vocabstore

// #region imports
import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"structeval/internal/learner"
)

// #endregion

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS learned_vocab (
	question_key TEXT PRIMARY KEY,
	vocab_json   TEXT NOT NULL,
	generation   TEXT NOT NULL,
	updated_at   TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS verdict_log (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	question_key TEXT NOT NULL,
	mode         TEXT NOT NULL,
	score        REAL NOT NULL,
	band         TEXT,
	flags_json   TEXT,
	notes        TEXT,
	created_at   TEXT NOT NULL
);
`

// #endregion schema

// #region errors

// ErrNotFound reports a question key with no stored vocabulary.
var ErrNotFound = errors.New("vocabstore: question not found")

// ErrConflict reports that the update loop exhausted its retries without a
// clean read-merge-write window.
var ErrConflict = errors.New("vocabstore: too many concurrent updates")

// maxUpdateAttempts bounds the optimistic retry loop.
const maxUpdateAttempts = 25

// #endregion

// #region store-struct

// Store manages learned vocabularies in SQLite.
type Store struct {
	db *sql.DB
}

// #endregion store-struct

// #region constructor

// NewStore opens a SQLite database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// A single connection serializes writers; the generation marker still
	// guards the read-merge-write window across processes.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// #endregion constructor

// #region close

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// #endregion close

// #region db-accessor

// DB returns the underlying *sql.DB for use by other packages (e.g. the
// verdict log).
func (s *Store) DB() *sql.DB {
	return s.db
}

// #endregion db-accessor

// #region get

// Get reads the learned vocabulary and generation marker for a question.
func (s *Store) Get(questionKey string) (learner.LearnedVocabulary, string, error) {
	var vocabJSON, generation string
	err := s.db.QueryRow(
		`SELECT vocab_json, generation FROM learned_vocab WHERE question_key = ?`,
		questionKey,
	).Scan(&vocabJSON, &generation)
	if errors.Is(err, sql.ErrNoRows) {
		return learner.LearnedVocabulary{}, "", ErrNotFound
	}
	if err != nil {
		return learner.LearnedVocabulary{}, "", fmt.Errorf("get vocab %s: %w", questionKey, err)
	}

	var lv learner.LearnedVocabulary
	if err := json.Unmarshal([]byte(vocabJSON), &lv); err != nil {
		return learner.LearnedVocabulary{}, "", fmt.Errorf("unmarshal vocab %s: %w", questionKey, err)
	}
	return lv, generation, nil
}

// #endregion get

// #region seed

// Seed bootstraps a question's vocabulary from its own prompt. An existing
// row is left untouched, so re-seeding can never clobber learned keywords.
func (s *Store) Seed(questionKey, prompt string) (learner.LearnedVocabulary, error) {
	lv := learner.Bootstrap(prompt)
	data, err := json.Marshal(lv)
	if err != nil {
		return learner.LearnedVocabulary{}, fmt.Errorf("marshal vocab: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO learned_vocab (question_key, vocab_json, generation, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(question_key) DO NOTHING`,
		questionKey, string(data), uuid.New().String(), time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return learner.LearnedVocabulary{}, fmt.Errorf("seed vocab %s: %w", questionKey, err)
	}

	stored, _, err := s.Get(questionKey)
	if err != nil {
		return learner.LearnedVocabulary{}, err
	}
	return stored, nil
}

// #endregion seed

// #region record-answer

// RecordAnswer merges the keywords of a new answer into the question's
// vocabulary under an optimistic-concurrency loop: read the current row and
// its generation, merge, then write conditionally on the generation still
// matching. A lost race re-reads and re-merges; the merge is a pure set
// union, so retries converge.
func (s *Store) RecordAnswer(questionKey, answerText string) (learner.LearnedVocabulary, error) {
	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		current, generation, err := s.Get(questionKey)
		switch {
		case errors.Is(err, ErrNotFound):
			merged := learner.Merge(nil, answerText)
			ok, insErr := s.tryInsert(questionKey, merged)
			if insErr != nil {
				return learner.LearnedVocabulary{}, insErr
			}
			if ok {
				return merged, nil
			}
			// Someone else created the row first; merge into theirs.
			continue
		case err != nil:
			return learner.LearnedVocabulary{}, err
		}

		merged := learner.Merge(&current, answerText)
		ok, updErr := s.tryUpdate(questionKey, generation, merged)
		if updErr != nil {
			return learner.LearnedVocabulary{}, updErr
		}
		if ok {
			return merged, nil
		}
	}
	return learner.LearnedVocabulary{}, ErrConflict
}

func (s *Store) tryInsert(questionKey string, lv learner.LearnedVocabulary) (bool, error) {
	data, err := json.Marshal(lv)
	if err != nil {
		return false, fmt.Errorf("marshal vocab: %w", err)
	}
	res, err := s.db.Exec(
		`INSERT INTO learned_vocab (question_key, vocab_json, generation, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(question_key) DO NOTHING`,
		questionKey, string(data), uuid.New().String(), time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return false, fmt.Errorf("insert vocab %s: %w", questionKey, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert vocab %s: %w", questionKey, err)
	}
	return n == 1, nil
}

func (s *Store) tryUpdate(questionKey, expectedGeneration string, lv learner.LearnedVocabulary) (bool, error) {
	data, err := json.Marshal(lv)
	if err != nil {
		return false, fmt.Errorf("marshal vocab: %w", err)
	}
	res, err := s.db.Exec(
		`UPDATE learned_vocab
		 SET vocab_json = ?, generation = ?, updated_at = ?
		 WHERE question_key = ? AND generation = ?`,
		string(data), uuid.New().String(), time.Now().UTC().Format(time.RFC3339Nano),
		questionKey, expectedGeneration,
	)
	if err != nil {
		return false, fmt.Errorf("update vocab %s: %w", questionKey, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update vocab %s: %w", questionKey, err)
	}
	return n == 1, nil
}

// #endregion record-answer

// #region list

// ListKeys returns all question keys with stored vocabulary.
func (s *Store) ListKeys() ([]string, error) {
	rows, err := s.db.Query(`SELECT question_key FROM learned_vocab ORDER BY question_key`)
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scan key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// #endregion list

// #region delete

// Delete removes a question's vocabulary. Deleting the question itself is
// the only way a learned vocabulary ever shrinks.
func (s *Store) Delete(questionKey string) error {
	if _, err := s.db.Exec(`DELETE FROM learned_vocab WHERE question_key = ?`, questionKey); err != nil {
		return fmt.Errorf("delete vocab %s: %w", questionKey, err)
	}
	return nil
}

// #endregion delete
