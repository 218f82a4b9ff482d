// Package sheet превращает CSV-выгрузку опубликованной таблицы в список ссылок.
package sheet

import (
	"regexp"
	"strings"
)

// DefaultURL выгрузка опубликованной таблицы в CSV
const DefaultURL = "https://docs.google.com/spreadsheets/d/1mj5HP-67nI9I7JEYTnPEPBOaAavZYFLlbjLyYD-VlMI/export?format=csv&gid=0"

const (
	ReasonTooFewFields     = "fewer than two fields"
	ReasonEmptyDescription = "empty description"
	ReasonEmptyURL         = "empty url"
)

// поле в кавычках может содержать запятые
var fieldPattern = regexp.MustCompile(`(".*?"|[^,]+)(?:,|$)`)

// Link строка таблицы: описание и адрес сайта
type Link struct {
	Description string `json:"description"`
	URL         string `json:"url"`
}

// SkippedRow строка, которая не попала в результат
type SkippedRow struct {
	Line   int    // номер строки в исходном тексте, с единицы
	Raw    string // строка как есть
	Reason string
}

// Result итог разбора: ссылки в исходном порядке и отброшенные строки
type Result struct {
	Links   []Link
	Skipped []SkippedRow
}

// Parse разбирает CSV текст. Первая непустая строка считается заголовком.
func Parse(text string) Result {
	res := Result{Links: make([]Link, 0)}
	header := true
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if header {
			header = false
			continue
		}
		link, reason := parseRow(line)
		if reason != "" {
			res.Skipped = append(res.Skipped, SkippedRow{Line: i + 1, Raw: line, Reason: reason})
			continue
		}
		res.Links = append(res.Links, link)
	}
	return res
}

func parseRow(row string) (Link, string) {
	fields := fieldPattern.FindAllString(row, -1)
	if len(fields) < 2 {
		return Link{}, ReasonTooFewFields
	}
	l := Link{
		Description: cleanField(fields[0]),
		URL:         cleanField(fields[1]),
	}
	switch {
	case l.Description == "":
		return Link{}, ReasonEmptyDescription
	case l.URL == "":
		return Link{}, ReasonEmptyURL
	}
	return l, ""
}

// cleanField убирает хвостовую запятую, обрамляющие кавычки и пробелы
func cleanField(f string) string {
	f = strings.TrimSuffix(f, ",")
	f = strings.TrimSpace(f)
	f = strings.TrimPrefix(f, `"`)
	f = strings.TrimSuffix(f, `"`)
	return strings.TrimSpace(f)
}
