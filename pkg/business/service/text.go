package service

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"
)

type ITextService interface {
	RemoveTags(input string) string
	RemoveControlChars(input string) string
	CollapseSpaces(input string) string
	Encode(input string) string
	ReduceToLength(input string, length int) string
	RemoveLinks(input string) string
	ClearAndReduce(input string, length int) string
}

type TextService struct{}

func NewTextService() *TextService {
	return &TextService{}
}

var (
	tagsRe   = regexp.MustCompile(`<[^>]*>`)
	linksRe  = regexp.MustCompile(`https?://[^\s]+`)
	spacesRe = regexp.MustCompile(`\s+`)
)

func (ts *TextService) RemoveTags(input string) string {
	return tagsRe.ReplaceAllString(html.UnescapeString(input), "")
}

// RemoveControlChars удаляет управляющие ASCII-символы, пробел остаётся.
func (ts *TextService) RemoveControlChars(input string) string {
	var builder strings.Builder
	builder.Grow(len(input))
	for _, r := range input {
		if r < 0x20 || r == 0x7f {
			continue
		}
		builder.WriteRune(r)
	}
	return builder.String()
}

func (ts *TextService) CollapseSpaces(input string) string {
	return strings.TrimSpace(spacesRe.ReplaceAllString(input, " "))
}

// Encode - очистка от скрытых символов и HTML-экранирование для вставки в описание.
func (ts *TextService) Encode(input string) string {
	return html.EscapeString(ts.RemoveControlChars(input))
}

func (ts *TextService) RemoveLinks(input string) string {
	return linksRe.ReplaceAllString(input, "")
}

// ReduceToLength отбрасывает слова с конца, пока строка длиннее length символов.
// Последнее слово не отбрасывается никогда, а режется посимвольно.
func (ts *TextService) ReduceToLength(input string, length int) string {
	words := strings.Fields(input)
	if len(words) == 0 {
		return input
	}

	joined := strings.Join(words, " ")
	for utf8.RuneCountInString(joined) > length && len(words) > 1 {
		words = words[:len(words)-1]
		joined = strings.Join(words, " ")
	}

	if utf8.RuneCountInString(joined) > length {
		joined = string([]rune(joined)[:length])
	}
	return joined
}

// ClearAndReduce убирает теги и ссылки, схлопывает пробелы и укорачивает до length символов.
func (ts *TextService) ClearAndReduce(input string, length int) string {
	cleaned := ts.RemoveLinks(ts.RemoveTags(input))
	return ts.ReduceToLength(ts.CollapseSpaces(ts.RemoveControlChars(cleaned)), length)
}
