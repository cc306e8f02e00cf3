package pricetrack

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
)

// Artifact names, without the .json extension.
const (
	SummaryArtifact = "summary"
	ChartsArtifact  = "charts"
)

// Publish writes the report artifacts into folder: one file per ranking, the
// summary and the charts.
//
// Every file is written to a temporary file first and then renamed, so that a
// reader never sees a partially written artifact.
func Publish(folder string, r *Report) error {
	if err := os.MkdirAll(folder, 0755); err != nil {
		return fmt.Errorf("persist error: cannot create folder %q: %w", folder, err)
	}
	for _, ranking := range r.Rankings {
		if err := writeArtifact(folder, ranking.Name, ranking.Items); err != nil {
			return err
		}
	}
	if err := writeArtifact(folder, SummaryArtifact, r.Summary); err != nil {
		return err
	}
	return writeArtifact(folder, ChartsArtifact, r.Charts)
}

// writeArtifact atomically replaces folder/name.json with v in indented JSON.
func writeArtifact(folder, name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("persist error: cannot marshal %s: %w", name, err)
	}
	filename := filepath.Join(folder, name+".json")
	if err := renameio.WriteFile(filename, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("persist error: cannot write file %q: %w", filename, err)
	}
	slog.Info("write-artifact", "name", filename, "bytes", len(data)+1)
	return nil
}
