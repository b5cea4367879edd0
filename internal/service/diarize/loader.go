package diarize

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"meeting-minutes-pipeline/internal/models"
)

func isRTTM(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".rttm")
}

// LoadTurnsJSON reads a JSON array of {start, end, speaker} objects. Missing
// file is models.ErrNotFound; missing fields or end < start is
// models.ErrMalformedInput. Zero turns is a valid degenerate case.
func LoadTurnsJSON(path string) ([]models.DiarizationTurn, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: diarization turns %s", models.ErrNotFound, path)
		}
		return nil, fmt.Errorf("read diarization turns: %w", err)
	}

	var turns []models.DiarizationTurn
	if err := json.Unmarshal(data, &turns); err != nil {
		return nil, fmt.Errorf("%w: diarization turns %s: %v", models.ErrMalformedInput, path, err)
	}
	for i, t := range turns {
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("turn %d: %w", i, err)
		}
	}
	return turns, nil
}

// LoadRTTM parses the SPEAKER lines of an RTTM file, the interchange format
// most diarization toolkits emit:
//
//	SPEAKER <file> <chan> <tbeg> <tdur> <NA> <NA> <label> <NA> <NA>
//
// Other line types are ignored.
func LoadRTTM(path string) ([]models.DiarizationTurn, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: RTTM %s", models.ErrNotFound, path)
		}
		return nil, fmt.Errorf("open RTTM: %w", err)
	}
	defer f.Close()

	var turns []models.DiarizationTurn
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}
		fields := strings.Fields(line)
		if fields[0] != "SPEAKER" {
			continue
		}
		if len(fields) < 8 {
			return nil, fmt.Errorf("%w: RTTM line %d has %d fields", models.ErrMalformedInput, lineNo, len(fields))
		}
		tbeg, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: RTTM line %d: bad onset %q", models.ErrMalformedInput, lineNo, fields[3])
		}
		tdur, err := strconv.ParseFloat(fields[4], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: RTTM line %d: bad duration %q", models.ErrMalformedInput, lineNo, fields[4])
		}
		turn := models.DiarizationTurn{Start: tbeg, End: tbeg + tdur, Speaker: fields[7]}
		if err := turn.Validate(); err != nil {
			return nil, fmt.Errorf("RTTM line %d: %w", lineNo, err)
		}
		turns = append(turns, turn)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read RTTM: %w", err)
	}
	return turns, nil
}
