package timer

import "fmt"

// FormatRemaining renders seconds as zero-padded MM:SS. Minutes are not
// wrapped at 60.
func FormatRemaining(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
