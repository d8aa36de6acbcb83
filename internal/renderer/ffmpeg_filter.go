package renderer

import (
	"fmt"
)

// GenerateDebugFilter creates an FFmpeg drawtext filter that burns the
// presentation timestamp into the top-right corner of the output.
func GenerateDebugFilter(width, height int) string {
	fontSize := height / 30
	if w := width / 40; w < fontSize {
		fontSize = w
	}
	if fontSize < 12 {
		fontSize = 12
	}
	return fmt.Sprintf("drawtext=text='%%{pts\\:hms}':x=w-tw-10:y=10:fontsize=%d:fontcolor=yellow:box=1:boxcolor=black@0.5", fontSize)
}
