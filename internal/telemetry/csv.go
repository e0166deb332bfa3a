// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package telemetry

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

// DefaultCSVPath is where the decision log lives unless configured.
const DefaultCSVPath = "output/optimizer_log.csv"

// CSVHeader is the fixed column order of the decision log. Rows written
// before query_id was added carry only the first ten columns.
var CSVHeader = []string{
	"timestamp",
	"question",
	"question_length",
	"initial_model",
	"final_model",
	"escalated",
	"quality_score",
	"latency_ms",
	"estimated_cost_usd",
	"answer_preview",
	"query_id",
}

// legacyColumns is the width of rows that predate query_id.
const legacyColumns = 10

// legacyTimestamp is the naive ISO-8601 layout found in older logs.
const legacyTimestamp = "2006-01-02T15:04:05.999999"

// CSVStore appends decision records to a CSV file.
type CSVStore struct {
	mu   sync.Mutex
	path string
}

// NewCSVStore returns a store writing to path. The file and its parent
// directory are created on first append.
func NewCSVStore(path string) *CSVStore {
	if path == "" {
		path = DefaultCSVPath
	}
	return &CSVStore{path: path}
}

// Path returns the backing file path.
func (s *CSVStore) Path() string {
	return s.path
}

// Append writes one row, emitting the header only when the file is new.
func (s *CSVStore) Append(ctx context.Context, rec DecisionRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}

	writeHeader := false
	if info, err := os.Stat(s.path); errors.Is(err, os.ErrNotExist) || (err == nil && info.Size() == 0) {
		writeHeader = true
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open decision log: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(CSVHeader); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	if err := w.Write(encodeRow(rec)); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush decision log: %w", err)
	}
	return nil
}

// Records reads every row. A missing file yields no records.
func (s *CSVStore) Records(ctx context.Context) ([]DecisionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open decision log: %w", err)
	}
	defer f.Close()

	return readCSV(f)
}

func readCSV(r io.Reader) ([]DecisionRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	var records []DecisionRecord
	line := 0
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read decision log: %w", err)
		}
		line++
		if line == 1 && len(row) > 0 && row[0] == CSVHeader[0] {
			continue
		}
		rec, err := decodeRow(row)
		if err != nil {
			return nil, fmt.Errorf("decision log row %d: %w", line, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func encodeRow(rec DecisionRecord) []string {
	escalated := "No"
	if rec.Escalated {
		escalated = "Yes"
	}
	return []string{
		rec.Timestamp.Format(time.RFC3339Nano),
		rec.Question,
		strconv.Itoa(rec.QuestionLength),
		rec.InitialTier,
		rec.FinalTier,
		escalated,
		strconv.FormatFloat(rec.QualityScore, 'f', 2, 64),
		strconv.FormatFloat(rec.LatencyMs, 'f', 0, 64),
		strconv.FormatFloat(rec.CostUSD, 'f', 6, 64),
		rec.AnswerPreview,
		rec.QueryID,
	}
}

func decodeRow(row []string) (DecisionRecord, error) {
	if len(row) != len(CSVHeader) && len(row) != legacyColumns {
		return DecisionRecord{}, fmt.Errorf("expected %d columns, got %d", len(CSVHeader), len(row))
	}

	ts, err := parseTimestamp(row[0])
	if err != nil {
		return DecisionRecord{}, err
	}
	length, err := strconv.Atoi(row[2])
	if err != nil {
		return DecisionRecord{}, fmt.Errorf("question_length: %w", err)
	}
	quality, err := strconv.ParseFloat(row[6], 64)
	if err != nil {
		return DecisionRecord{}, fmt.Errorf("quality_score: %w", err)
	}
	latency, err := strconv.ParseFloat(row[7], 64)
	if err != nil {
		return DecisionRecord{}, fmt.Errorf("latency_ms: %w", err)
	}
	cost, err := strconv.ParseFloat(row[8], 64)
	if err != nil {
		return DecisionRecord{}, fmt.Errorf("estimated_cost_usd: %w", err)
	}

	rec := DecisionRecord{
		Timestamp:      ts,
		Question:       row[1],
		QuestionLength: length,
		InitialTier:    row[3],
		FinalTier:      row[4],
		Escalated:      strings.EqualFold(row[5], "yes"),
		QualityScore:   quality,
		LatencyMs:      latency,
		CostUSD:        cost,
		AnswerPreview:  row[9],
	}
	if len(row) > legacyColumns {
		rec.QueryID = row[10]
	}
	return rec, nil
}

func parseTimestamp(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return ts, nil
	}
	ts, err := time.ParseInLocation(legacyTimestamp, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("timestamp %q: %w", s, err)
	}
	return ts, nil
}
