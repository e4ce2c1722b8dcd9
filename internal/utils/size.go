package utils

import (
	"strconv"
	"strings"
)

var sizeUnitLabels = [...]string{"b", "kb", "mb", "gb", "tb", "pb"}

// FormatFileSize renders a byte count with lower-case units. Values under ten
// units keep one decimal place, with a trailing .0 trimmed.
func FormatFileSize(byteCount int64) string {
	if byteCount < 0 {
		byteCount = 0
	}
	scaledValue := float64(byteCount)
	unitIndex := 0
	for scaledValue >= 1024 && unitIndex < len(sizeUnitLabels)-1 {
		scaledValue /= 1024
		unitIndex++
	}
	switch {
	case unitIndex == 0:
		return strconv.FormatInt(byteCount, 10) + sizeUnitLabels[0]
	case scaledValue < 10:
		return strings.TrimSuffix(strconv.FormatFloat(scaledValue, 'f', 1, 64), ".0") + sizeUnitLabels[unitIndex]
	default:
		return strconv.FormatFloat(scaledValue, 'f', 0, 64) + sizeUnitLabels[unitIndex]
	}
}
