package storage

import (
	"encoding/json"
	"os"
	"time"
)

// GenerationRecord is the persisted outcome of one generation.
type GenerationRecord struct {
	Generation int       `json:"generation"`
	Dim        int       `json:"dim"`
	Min        float64   `json:"min,omitempty"`
	Max        float64   `json:"max,omitempty"`
	Files      []string  `json:"files,omitempty"`
	Elapsed    float64   `json:"elapsed_seconds"`
	Error      string    `json:"error,omitempty"`
	Skipped    []string  `json:"skipped,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// Summary describes a complete run.
type Summary struct {
	Generations int                `json:"generations"`
	Solver      string             `json:"solver"`
	Started     time.Time          `json:"started"`
	Finished    time.Time          `json:"finished"`
	Records     []GenerationRecord `json:"records"`
}

// Failed returns the number of generations that ended with an error.
func (s *Summary) Failed() int {
	n := 0
	for _, r := range s.Records {
		if r.Error != "" {
			n++
		}
	}
	return n
}

func SaveSummary(path string, s *Summary) (err error) {
	file, err := create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = &ExportError{Path: path, Op: "close", Err: cerr}
		}
	}()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return &ExportError{Path: path, Op: "write", Err: err}
	}
	return nil
}

func LoadSummary(path string) (*Summary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ExportError{Path: path, Op: "open", Err: err}
	}

	var s Summary
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, &ExportError{Path: path, Op: "decode", Err: err}
	}
	return &s, nil
}
