// Package report renders the violation set produced by an audit run as a
// dated CSV file in the operator's reporting timezone.
package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"time"

	"streamaudit/internal/audit"
	dErrors "streamaudit/pkg/domain-errors"
)

const (
	fileTimestampLayout = "2006-01-02_150405"
	rowTimestampLayout  = "2006-01-02 15:04:05 MST"
)

// utf8BOM keeps non-ASCII display names intact when the file is opened by
// common spreadsheet tooling.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var header = []string{"Room Name", "Date Created", "Room Created By", "Ext Counterparty Name"}

// Writer serializes violation records. One fresh file per run, named
// result_<local timestamp>.csv; nothing is ever appended.
type Writer struct {
	dir string
	loc *time.Location
	now func() time.Time
}

// NewWriter prepares a Writer targeting dir, with timestamps localized to the
// named reporting timezone.
func NewWriter(dir, timezone string) (*Writer, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeValidation, "load reporting timezone")
	}
	return &Writer{dir: dir, loc: loc, now: time.Now}, nil
}

// Write renders violations in order and returns the path of the created
// file. MIM streams are labeled with the literal "MIM" since they have no
// room name.
func (w *Writer) Write(violations []audit.ViolationRecord) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "create output directory")
	}

	name := "result_" + w.now().In(w.loc).Format(fileTimestampLayout) + ".csv"
	path := filepath.Join(w.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "create report file")
	}
	defer f.Close()

	if _, err := f.Write(utf8BOM); err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "write report")
	}

	cw := csv.NewWriter(f)
	if err := cw.Write(header); err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "write report header")
	}
	for _, v := range violations {
		if err := cw.Write(w.row(v)); err != nil {
			return "", dErrors.Wrap(err, dErrors.CodeInternal, "write report row")
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "flush report")
	}
	if err := f.Close(); err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "close report")
	}

	return path, nil
}

func (w *Writer) row(v audit.ViolationRecord) []string {
	roomName := v.Stream.Attributes.RoomName
	if v.Stream.Type == audit.StreamTypeMIM {
		roomName = string(audit.StreamTypeMIM)
	}

	created := time.UnixMilli(v.Stream.Attributes.CreatedDate).UTC().
		In(w.loc).Format(rowTimestampLayout)

	return []string{
		roomName,
		created,
		v.Classification.Creator,
		v.Classification.Counterparty,
	}
}
