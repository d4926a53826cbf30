package pairsfile

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
)

// Record is one observed symbol pair
type Record struct {
	X string `json:"x"`
	Y string `json:"y"`
}

// LoadFromJSONL loads pair records from a JSONL file with proper error handling
func LoadFromJSONL(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}

	var records []Record
	lines := strings.Split(string(data), "\n")

	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var rec Record
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			log.Printf("Warning: skipping malformed JSON at line %d in %s: %v", i+1, path, err)
			continue
		}
		if rec.X == "" || rec.Y == "" {
			log.Printf("Warning: skipping incomplete pair at line %d in %s", i+1, path)
			continue
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("no valid pairs found in %s", path)
	}

	return records, nil
}
