package format

import (
	"fmt"
	"time"
)

// FormatExecutionDuration formats a duration for result tables: microseconds
// below a millisecond, milliseconds below a second, Duration.String otherwise.
func FormatExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}
