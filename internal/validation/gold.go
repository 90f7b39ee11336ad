package validation

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kontolab/konto-ingest/internal/core/domain"
	"github.com/kontolab/konto-ingest/internal/logger"
)

// maxGoldLine bounds a single JSONL line when scanning Gold files.
const maxGoldLine = 1 << 20

// Gold validates every JSONL file under the Gold split directories:
// each line must parse as a training sample, pass the sample contract,
// and carry metadata matching its split directory.
func Gold(goldDir string) (*Report, error) {
	report := &Report{Tier: "gold"}

	for _, split := range []string{"train", "val"} {
		dir := filepath.Join(goldDir, split)
		paths, err := filepath.Glob(filepath.Join(dir, "*.jsonl"))
		if err != nil {
			return nil, fmt.Errorf("listing %s: %w", dir, err)
		}
		for _, path := range paths {
			result, err := validateJSONL(path, split)
			if err != nil {
				return nil, err
			}
			report.Results = append(report.Results, *result)
		}
	}

	logger.Info("gold validation: %d files, %d errors",
		len(report.Results), report.TotalErrors())
	return report, nil
}

func validateJSONL(path, split string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	result := &Result{File: filepath.Join(split, filepath.Base(path))}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxGoldLine)
	line := 0
	for scanner.Scan() {
		var sample domain.TrainingSample
		if err := json.Unmarshal(scanner.Bytes(), &sample); err != nil {
			result.AddError(line, "record", fmt.Sprintf("invalid JSON: %v", err))
			line++
			continue
		}
		if err := sample.Validate(); err != nil {
			result.AddError(line, "record", err.Error())
		}
		if sample.Metadata.Split != split {
			result.AddError(line, "metadata.split",
				fmt.Sprintf("split %q does not match directory %q", sample.Metadata.Split, split))
		}
		if sample.Metadata.FamilyKey == "" {
			result.AddWarning(line, "metadata.family_key", "missing family key")
		}
		line++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	result.Records = line
	if line == 0 {
		result.AddWarning(-1, "record", "file contains no samples")
	}
	return result, nil
}
