package compare

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/KaramelBytes/tabloom-cli/internal/table"
)

// Fingerprint derives a stable identity digest for a table from its source
// name, schema, and cell contents.
func Fingerprint(t *table.Table) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%d|%s\n", t.Source, t.RowCount(), strings.Join(t.ColumnNames(), ","))
	for _, col := range t.Columns {
		for _, c := range col.Cells {
			h.Write([]byte(c.Raw))
			h.Write([]byte{0})
		}
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}

func sideInfo(t *table.Table) SideInfo {
	return SideInfo{
		SourceName:  t.Source,
		Fingerprint: Fingerprint(t),
		RowCount:    t.RowCount(),
		ColumnCount: len(t.Columns),
	}
}
