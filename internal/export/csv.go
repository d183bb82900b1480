package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jwaldner/greekmap/internal/surface"
)

// WriteSurfaceCSV writes s in long form, one row per cell:
// x parameter, y parameter, call measure, put measure.
// Non-finite values are written as NaN, +Inf or -Inf.
func WriteSurfaceCSV(w io.Writer, s *surface.Surface) error {
	cw := csv.NewWriter(w)

	callM, putM := s.Greek.Pair()
	header := []string{string(s.X.Param), string(s.Y.Param), "call_" + string(s.Greek), "put_" + string(s.Greek)}
	if callM == putM {
		header[2], header[3] = string(callM), string(putM)
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for i := range s.YValues {
		for j := range s.XValues {
			x, y, call, put := s.Cell(i, j)
			record := []string{formatFloat(x), formatFloat(y), formatFloat(call), formatFloat(put)}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// FormatFilename expands {greek}, {x}, {y} and {time} in format.
func FormatFilename(format string, s *surface.Surface, at time.Time) string {
	result := format
	result = strings.ReplaceAll(result, "{greek}", string(s.Greek))
	result = strings.ReplaceAll(result, "{x}", string(s.X.Param))
	result = strings.ReplaceAll(result, "{y}", string(s.Y.Param))
	result = strings.ReplaceAll(result, "{time}", at.Format("20060102_150405"))
	return result
}
