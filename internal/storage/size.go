package storage

import (
	"math"
	"strconv"
	"strings"
)

var sizeUnits = [...]string{"B", "KB", "MB", "GB"}

// HumanSize renders a byte count using base-1024 units, rounded to two
// decimal places, picking the largest unit whose integer part is at least 1.
func HumanSize(sizeBytes int64) string {
	if sizeBytes == 0 {
		return "0 B"
	}
	i := int(math.Floor(math.Log(float64(sizeBytes)) / math.Log(1024)))
	if i >= len(sizeUnits) {
		i = len(sizeUnits) - 1
	}
	v := float64(sizeBytes) / math.Pow(1024, float64(i))
	v = math.Round(v*100) / 100

	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s + " " + sizeUnits[i]
}
