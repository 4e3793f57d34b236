// Package history manages the query history file.
package history

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ferraz/discovery-go/pkg/models"
	"github.com/google/uuid"
)

// Writer handles writing history entries.
type Writer struct {
	path string
}

// NewWriter creates a new history writer.
func NewWriter(path string) (*Writer, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}
	return &Writer{path: path}, nil
}

// Append adds a new entry to the history file.
func (w *Writer) Append(entry models.HistoryEntry) error {
	file, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open history file: %w", err)
	}
	defer file.Close()

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal history entry: %w", err)
	}

	if _, err := file.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write history entry: %w", err)
	}

	return nil
}

// Reader handles reading history entries.
type Reader struct {
	path string
}

// NewReader creates a new history reader.
func NewReader(path string) *Reader {
	return &Reader{path: path}
}

// ReadAll reads all history entries. Malformed lines are skipped.
func (r *Reader) ReadAll() ([]models.HistoryEntry, error) {
	file, err := os.Open(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []models.HistoryEntry{}, nil
		}
		return nil, fmt.Errorf("failed to open history file: %w", err)
	}
	defer file.Close()

	var entries []models.HistoryEntry
	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		var entry models.HistoryEntry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading history: %w", err)
	}

	return entries, nil
}

// ReadLast reads the last n entries.
func (r *Reader) ReadLast(n int) ([]models.HistoryEntry, error) {
	entries, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(entries) <= n {
		return entries, nil
	}
	return entries[len(entries)-n:], nil
}

// Clear removes all history entries.
func (r *Reader) Clear() error {
	err := os.Truncate(r.path, 0)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Search finds entries whose query contains the term (case-insensitive).
func (r *Reader) Search(term string) ([]models.HistoryEntry, error) {
	entries, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	var results []models.HistoryEntry
	for _, entry := range entries {
		if strings.Contains(strings.ToLower(entry.Query), strings.ToLower(term)) {
			results = append(results, entry)
		}
	}
	return results, nil
}
