package publish

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/yourusername/hoops-edge/internal/models"
)

// Output formats
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// FileSink writes each report to <dir>/<prop type>_<prop date>.<format>, replacing
// any earlier report for the same date.
type FileSink struct {
	dir    string
	format string
}

// NewFileSink creates a file sink for format.
func NewFileSink(dir, format string) (*FileSink, error) {
	if format != FormatJSON && format != FormatCSV {
		return nil, fmt.Errorf("unsupported report format %q", format)
	}
	return &FileSink{dir: dir, format: format}, nil
}

// Name returns the sink name.
func (s *FileSink) Name() string {
	return "file:" + s.format
}

// Path returns the file a report is written to.
func (s *FileSink) Path(report *models.Report) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s_%s.%s", report.PropType, report.PropDate, s.format))
}

// Publish writes the report through a temp file and renames it into place.
func (s *FileSink) Publish(_ context.Context, report *models.Report) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, ".report-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	switch s.format {
	case FormatJSON:
		enc := json.NewEncoder(tmp)
		enc.SetIndent("", "  ")
		err = enc.Encode(report)
	case FormatCSV:
		err = writeCSV(csv.NewWriter(tmp), report)
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("failed to write %s report: %w", s.format, err)
	}
	return os.Rename(tmp.Name(), s.Path(report))
}

var csvHeader = []string{
	"team", "spread", "player", "opponent", "prop", "line", "over_odds",
	"projection", "hit_rate", "class", "probability", "edge", "confident",
}

// writeCSV writes one line per row. Alternate lines become a class and probability
// column pair per line, taken from the first row.
func writeCSV(w *csv.Writer, report *models.Report) error {
	var alts []float64
	for _, team := range report.Teams {
		if len(team.Rows) > 0 {
			for _, alt := range team.Rows[0].AltLines {
				alts = append(alts, alt.Line)
			}
			break
		}
	}

	header := append([]string(nil), csvHeader...)
	for _, line := range alts {
		l := formatFloat(line)
		header = append(header, "alt_"+l+"_class", "alt_"+l+"_probability")
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, team := range report.Teams {
		for _, row := range team.Rows {
			record := []string{
				team.TeamName,
				formatFloat(team.Spread),
				row.PlayerName,
				row.OpponentName,
				row.PropType,
				formatFloat(row.Line),
				row.OverOdds,
				row.Projection,
				row.HitRate,
				row.Class,
				row.Probability,
				row.Edge,
				strconv.FormatBool(row.Confident),
			}
			for i := range alts {
				if i < len(row.AltLines) {
					record = append(record, row.AltLines[i].Class, row.AltLines[i].Probability)
				} else {
					record = append(record, "", "")
				}
			}
			if err := w.Write(record); err != nil {
				return err
			}
		}
	}
	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
