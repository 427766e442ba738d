// Package scorelog appends scoring verdicts to the verdict_log table, so a
// question's scoring history stays inspectable after the fact. Logging is
// opt-in for callers; the scoring core never writes here.
package scorelog

// #region imports
import (
	"database/sql"
	"fmt"
	"time"
)

// #endregion

// #region entry

// Entry is one recorded verdict.
type Entry struct {
	QuestionKey string
	Mode        string
	Score       float64
	Band        string
	FlagsJSON   string
	Notes       string
	CreatedAt   time.Time
}

// #endregion

// #region log-verdict

// LogVerdict writes a verdict entry to the verdict_log table.
func LogVerdict(db *sql.DB, entry Entry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	_, err := db.Exec(
		`INSERT INTO verdict_log (question_key, mode, score, band, flags_json, notes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.QuestionKey,
		entry.Mode,
		entry.Score,
		nullIfEmpty(entry.Band),
		nullIfEmpty(entry.FlagsJSON),
		nullIfEmpty(entry.Notes),
		entry.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("log verdict: %w", err)
	}
	return nil
}

// #endregion log-verdict

// #region recent

// Recent returns the most recent verdicts, newest first, optionally
// filtered to one question key.
func Recent(db *sql.DB, questionKey string, limit int) ([]Entry, error) {
	query := `SELECT question_key, mode, score, band, flags_json, notes, created_at
		 FROM verdict_log`
	args := []any{}
	if questionKey != "" {
		query += ` WHERE question_key = ?`
		args = append(args, questionKey)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("recent verdicts: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var band, flagsJSON, notes sql.NullString
		var createdStr string
		if err := rows.Scan(&e.QuestionKey, &e.Mode, &e.Score, &band, &flagsJSON, &notes, &createdStr); err != nil {
			return nil, fmt.Errorf("scan verdict: %w", err)
		}
		e.Band = band.String
		e.FlagsJSON = flagsJSON.String
		e.Notes = notes.String
		e.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// #endregion recent

// #region helpers
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// #endregion helpers
