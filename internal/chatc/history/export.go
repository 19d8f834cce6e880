package history

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/longkey1/chatc/internal/chatc"
)

// ExportTimeLayout is the timestamp layout used in exported documents
const ExportTimeLayout = "1/2/2006, 3:04:05 PM"

var exportDivider = strings.Repeat("-", 50)

// Export writes the whole history as plain text. Each message becomes a block
// "[TYPE] timestamp" followed by its text; blocks are separated by a divider.
// Timestamps are shown in loc (time.Local when nil).
func (s *Store) Export(w io.Writer, loc *time.Location) error {
	return WriteExport(w, s.messages, loc)
}

// WriteExport writes messages in the export format
func WriteExport(w io.Writer, messages []chatc.Message, loc *time.Location) error {
	if loc == nil {
		loc = time.Local
	}
	for i, msg := range messages {
		if i > 0 {
			if _, err := fmt.Fprintf(w, "\n%s\n\n", exportDivider); err != nil {
				return fmt.Errorf("failed to write export: %w", err)
			}
		}
		if _, err := fmt.Fprintf(w, "[%s] %s\n%s\n", strings.ToUpper(string(msg.Type)), exportTimestamp(msg, loc), msg.Text); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
	}
	return nil
}

// ExportFilename returns the file name for an export created at now
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("chat-history-%s.txt", now.Format("20060102-150405"))
}

func exportTimestamp(msg chatc.Message, loc *time.Location) string {
	t := msg.Time()
	if t.IsZero() {
		// keep whatever was stored rather than printing year 1
		return msg.Timestamp
	}
	return t.In(loc).Format(ExportTimeLayout)
}
