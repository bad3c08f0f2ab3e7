package sheets

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/aliskhannn/stepquiz-bot/internal/domain/entities"
)

var ErrInvalidLink = errors.New("invalid sheets values link")

// Catalog columns.
const (
	colCode   = "코드"
	colSource = "출발어"
	colTarget = "도착어"
	colLink   = "링크"
)

// Course columns.
const (
	colUnit                = "단원"
	colStep                = "단계"
	colKind                = "유형"
	colExplanation         = "설명"
	colTerm                = "단어"
	colMeaning             = "뜻"
	colSourceText          = "출발 문장"
	colTargetText          = "도착 문장"
	colSourceTextBlanked   = "출발 빈칸"
	colTargetTextBlanked   = "도착 빈칸"
	colSourceDecomposition = "출발 조각"
	colTargetDecomposition = "도착 조각"
)

var kindNames = map[string]entities.EntryKind{
	"단어": entities.KindWord,
	"문장": entities.KindSentence,
	"설명": entities.KindExplanation,
}

// record maps header names to cell values.
type record map[string]string

// toRecords turns a values grid into header-keyed records.
// The first row is the header; missing trailing cells read as empty.
func toRecords(values [][]any) []record {
	if len(values) == 0 {
		return nil
	}

	header := make([]string, len(values[0]))
	for i, h := range values[0] {
		header[i] = strings.TrimSpace(fmt.Sprint(h))
	}

	records := make([]record, 0, len(values)-1)
	for _, row := range values[1:] {
		r := make(record, len(header))
		for i, cell := range row {
			if i >= len(header) {
				break
			}
			r[header[i]] = fmt.Sprint(cell)
		}
		records = append(records, r)
	}

	return records
}

// parseCatalog converts catalog records into courses. Rows without a code are skipped.
func parseCatalog(records []record) []entities.Course {
	courses := make([]entities.Course, 0, len(records))
	for _, r := range records {
		code := strings.TrimSpace(r[colCode])
		if code == "" {
			continue
		}

		ui := make(entities.UIStrings)
		for _, key := range entities.PromptKeys {
			if s := strings.TrimSpace(r[string(key)]); s != "" {
				ui[key] = s
			}
		}

		courses = append(courses, entities.Course{
			Code:           code,
			SourceLanguage: strings.TrimSpace(r[colSource]),
			TargetLanguage: strings.TrimSpace(r[colTarget]),
			Link:           strings.TrimSpace(r[colLink]),
			UIStrings:      ui,
		})
	}

	return courses
}

// parseCourse converts course records into entries, keeping their order.
// Rows of an unknown type are skipped.
func parseCourse(records []record) []entities.CourseEntry {
	entries := make([]entities.CourseEntry, 0, len(records))
	for _, r := range records {
		kind, ok := kindNames[strings.TrimSpace(r[colKind])]
		if !ok {
			continue
		}

		entries = append(entries, entities.CourseEntry{
			Unit:                strings.TrimSpace(r[colUnit]),
			Step:                strings.TrimSpace(r[colStep]),
			Kind:                kind,
			Term:                r[colTerm],
			Meaning:             r[colMeaning],
			SourceText:          r[colSourceText],
			TargetText:          r[colTargetText],
			SourceTextBlanked:   r[colSourceTextBlanked],
			TargetTextBlanked:   r[colTargetTextBlanked],
			SourceDecomposition: r[colSourceDecomposition],
			TargetDecomposition: r[colTargetDecomposition],
			Explanation:         r[colExplanation],
		})
	}

	return entries
}

// parseValuesLink extracts the spreadsheet ID and A1 range from a link of the form
// https://sheets.googleapis.com/v4/spreadsheets/{id}/values/{range}.
func parseValuesLink(link string) (spreadsheetID, readRange string, err error) {
	u, err := url.Parse(link)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidLink, err)
	}

	parts := strings.Split(strings.Trim(u.EscapedPath(), "/"), "/")
	for i := 0; i+3 < len(parts); i++ {
		if parts[i] != "spreadsheets" || parts[i+2] != "values" {
			continue
		}
		readRange, err = url.PathUnescape(parts[i+3])
		if err != nil {
			return "", "", fmt.Errorf("%w: %v", ErrInvalidLink, err)
		}
		if parts[i+1] == "" || readRange == "" {
			break
		}
		return parts[i+1], readRange, nil
	}

	return "", "", fmt.Errorf("%w: %q", ErrInvalidLink, link)
}
