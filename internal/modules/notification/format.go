package notification

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var placeholderPattern = regexp.MustCompile(`%\((\w+)\)s`)

// interpolate substitutes %(name)s placeholders with the stringified
// context values. Unknown placeholders are left as-is rather than
// erroring, matching how display templates tolerate sparse context.
func interpolate(format string, ctx map[string]any) string {
	return placeholderPattern.ReplaceAllStringFunc(format, func(m string) string {
		key := placeholderPattern.FindStringSubmatch(m)[1]
		v, ok := ctx[key]
		if !ok {
			return m
		}
		return fmt.Sprint(v)
	})
}

type timeChunk struct {
	seconds  int64
	singular string
	plural   string
}

var timeChunks = []timeChunk{
	{60 * 60 * 24 * 365, "year", "years"},
	{60 * 60 * 24 * 30, "month", "months"},
	{60 * 60 * 24 * 7, "week", "weeks"},
	{60 * 60 * 24, "day", "days"},
	{60 * 60, "hour", "hours"},
	{60, "minute", "minutes"},
}

// timesince renders the elapsed time between then and now in at most
// two adjacent units, e.g. "2 hours" or "1 week, 3 days". Sub-minute
// gaps (and timestamps in the future) come out as "0 minutes".
func timesince(then, now time.Time) string {
	secs := int64(now.Sub(then).Seconds())
	if secs < 0 {
		secs = 0
	}

	for i, chunk := range timeChunks {
		count := secs / chunk.seconds
		if count == 0 {
			continue
		}

		var parts []string
		parts = append(parts, chunkLabel(count, chunk))

		if i+1 < len(timeChunks) {
			next := timeChunks[i+1]
			if rest := (secs - count*chunk.seconds) / next.seconds; rest > 0 {
				parts = append(parts, chunkLabel(rest, next))
			}
		}
		return strings.Join(parts, ", ")
	}

	return "0 minutes"
}

func chunkLabel(count int64, chunk timeChunk) string {
	if count == 1 {
		return fmt.Sprintf("1 %s", chunk.singular)
	}
	return fmt.Sprintf("%d %s", count, chunk.plural)
}
