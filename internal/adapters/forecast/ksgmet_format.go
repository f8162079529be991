package forecast

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"wind-route-service/internal/domain"
)

// parseMetadata reads a current.nfo grid description: one "key=value" or
// "key: value" pair per line, "#" starting a comment. Unknown keys are
// ignored; every grid key is required.
func parseMetadata(r io.Reader) (domain.GridMapping, error) {
	values := make(map[string]string)

	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		text := strings.TrimSpace(sc.Text())
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = strings.TrimSpace(text[:i])
		}
		if text == "" {
			continue
		}

		i := strings.IndexAny(text, "=:")
		if i <= 0 {
			return domain.GridMapping{}, fmt.Errorf("metadata line %d: expected key=value, got %q", line, text)
		}
		key := strings.ToLower(strings.TrimSpace(text[:i]))
		values[key] = strings.TrimSpace(text[i+1:])
	}
	if err := sc.Err(); err != nil {
		return domain.GridMapping{}, fmt.Errorf("metadata: %w", err)
	}

	floatOf := func(key string) (float64, error) {
		v, ok := values[strings.ToLower(key)]
		if !ok {
			return 0, fmt.Errorf("metadata: missing %s", key)
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("metadata: %s: %w", key, err)
		}
		return f, nil
	}
	intOf := func(key string) (int, error) {
		v, ok := values[strings.ToLower(key)]
		if !ok {
			return 0, fmt.Errorf("metadata: missing %s", key)
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("metadata: %s: %w", key, err)
		}
		return n, nil
	}

	var (
		m   domain.GridMapping
		err error
	)
	if m.Origin.Lat, err = floatOf("lat0"); err != nil {
		return domain.GridMapping{}, err
	}
	if m.Origin.Lon, err = floatOf("lon0"); err != nil {
		return domain.GridMapping{}, err
	}
	if m.LatStep, err = floatOf("latStep"); err != nil {
		return domain.GridMapping{}, err
	}
	if m.LonStep, err = floatOf("lonStep"); err != nil {
		return domain.GridMapping{}, err
	}
	if m.LatCount, err = intOf("latCount"); err != nil {
		return domain.GridMapping{}, err
	}
	if m.LonCount, err = intOf("lonCount"); err != nil {
		return domain.GridMapping{}, err
	}

	if err := m.Validate(); err != nil {
		return domain.GridMapping{}, fmt.Errorf("metadata: %w", err)
	}
	return m, nil
}

// parseComponent reads one wind component CSV: latCount rows of lonCount
// numbers, separated by "," or ";". A trailing separator on a row is allowed.
func parseComponent(r io.Reader, latCount, lonCount int) ([][]float64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read component: %w", err)
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = ','
	if firstLine, _, _ := bytes.Cut(data, []byte("\n")); bytes.IndexByte(firstLine, ';') >= 0 {
		cr.Comma = ';'
	}
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	rows := make([][]float64, 0, latCount)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse component: %w", err)
		}
		if n := len(rec); n > 0 && strings.TrimSpace(rec[n-1]) == "" {
			rec = rec[:n-1]
		}
		if len(rec) == 0 {
			continue
		}
		if len(rows) == latCount {
			return nil, fmt.Errorf("parse component: more than %d rows", latCount)
		}
		if len(rec) != lonCount {
			return nil, fmt.Errorf("parse component: row %d has %d values, want %d", len(rows)+1, len(rec), lonCount)
		}

		row := make([]float64, lonCount)
		for j, field := range rec {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("parse component: row %d col %d: %w", len(rows)+1, j+1, err)
			}
			row[j] = v
		}
		rows = append(rows, row)
	}

	if len(rows) != latCount {
		return nil, fmt.Errorf("parse component: got %d rows, want %d", len(rows), latCount)
	}
	return rows, nil
}
