package readings

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// ParseReport summarizes one CSV ingest.
type ParseReport struct {
	Total    int `json:"total_rows"`
	Accepted int `json:"accepted"`
	Rejected int `json:"rejected"`
}

// Timestamp layouts accepted in addition to RFC 3339. Layouts without an
// offset are interpreted in the configured ordinance timezone.
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseCSV reads sensor rows from r. The header must name timestamp,
// temperature and humidity columns (any order, any case); a radiator column
// is optional. Malformed rows are counted and skipped rather than failing the
// whole upload. An empty body parses to zero rows.
func ParseCSV(r io.Reader, loc *time.Location) ([]Raw, ParseReport, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var rep ParseReport

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return []Raw{}, rep, nil
	}
	if err != nil {
		return nil, rep, fmt.Errorf("read csv header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"timestamp", "temperature", "humidity"} {
		if _, ok := cols[required]; !ok {
			return nil, rep, fmt.Errorf("csv header missing %q column", required)
		}
	}
	tsCol, tempCol, humCol := cols["timestamp"], cols["temperature"], cols["humidity"]
	radCol, hasRad := cols["radiator"]

	raws := []Raw{}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				rep.Total++
				rep.Rejected++
				continue
			}
			return nil, rep, fmt.Errorf("read csv row: %w", err)
		}

		rep.Total++
		raw, ok := parseRow(rec, tsCol, tempCol, humCol, radCol, hasRad, loc)
		if !ok {
			rep.Rejected++
			continue
		}
		rep.Accepted++
		raws = append(raws, raw)
	}
	return raws, rep, nil
}

func parseRow(rec []string, tsCol, tempCol, humCol, radCol int, hasRad bool, loc *time.Location) (Raw, bool) {
	need := tsCol
	for _, c := range []int{tempCol, humCol} {
		if c > need {
			need = c
		}
	}
	if len(rec) <= need {
		return Raw{}, false
	}

	ts, err := parseTimestamp(rec[tsCol], loc)
	if err != nil {
		return Raw{}, false
	}
	temp, err := strconv.ParseFloat(strings.TrimSpace(rec[tempCol]), 64)
	if err != nil {
		return Raw{}, false
	}
	hum, err := strconv.ParseFloat(strings.TrimSpace(rec[humCol]), 64)
	if err != nil {
		return Raw{}, false
	}

	raw := Raw{Timestamp: ts, IndoorF: temp, Humidity: hum}
	if hasRad && radCol < len(rec) {
		if s := strings.TrimSpace(rec[radCol]); s != "" {
			rad, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return Raw{}, false
			}
			raw.RadiatorF = &rad
		}
	}
	return raw, true
}

func parseTimestamp(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts.In(loc), nil
	}
	for _, layout := range timeLayouts {
		if ts, err := time.ParseInLocation(layout, s, loc); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
