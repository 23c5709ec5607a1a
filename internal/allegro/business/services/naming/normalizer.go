package naming

import (
	"allegro_sync/pkg/business/service"
	"golang.org/x/text/cases"
	"regexp"
	"strings"
)

const (
	MaxNameLength = 75
	// FillerWord дописывается к слишком коротким названиям, когда нет имени поставщика.
	FillerWord   = "a"
	minNameWords = 3
)

var (
	// внутренние коды поставщика вида JAG123-45ABC
	jagRe = regexp.MustCompile(`JAG[\d-]+\w*`)
	// каталожный номер внутри слова: буквы/цифры/./-, хотя бы одна цифра
	codeRe = regexp.MustCompile(`[\p{L}\d./-]*\d[\p{L}\d./-]*`)
	// остаток слова после выреза кода, в котором нет ни букв, ни цифр
	punctRe = regexp.MustCompile(`^[^\p{L}\d]*$`)
)

type Normalizer struct {
	text service.ITextService
}

func NewNormalizer() *Normalizer {
	return &Normalizer{text: service.NewTextService()}
}

// Normalize приводит название поставщика к виду, пригодному для оферты (не длиннее 75 символов).
// Пустое название возвращается как есть.
// Канонический код не дописывается, если такое слово уже есть в названии (без учёта регистра),
// поэтому в этом случае не дописывается и заполнитель: "Pompa F-001" с кодом "F-001" не меняется.
func (n *Normalizer) Normalize(rawName, code, fallbackSupplierName string, rootBrands []string) string {
	if strings.TrimSpace(rawName) == "" {
		return rawName
	}

	stripped := jagRe.ReplaceAllString(rawName, " ")
	jagRemoved := stripped != rawName

	extracted, rest := splitCode(strings.Fields(n.text.CollapseSpaces(stripped)))

	code = strings.TrimSpace(code)
	appendCode := code != "" && (jagRemoved || len(rest) < minNameWords) && !containsWord(withWord(rest, extracted), code)

	rest = appendBrands(rest, extracted, rootBrands)

	words := rest
	if extracted != "" {
		words = append(words, extracted)
	}
	if appendCode {
		words = append(words, code)
		if len(words) < minNameWords {
			if fallback := strings.TrimSpace(fallbackSupplierName); fallback != "" {
				words = append(words, fallback)
			} else {
				words = append(words, FillerWord)
			}
		}
	}

	if len(words) == 0 {
		return n.text.ReduceToLength(n.text.CollapseSpaces(rawName), MaxNameLength)
	}
	return n.text.ReduceToLength(strings.Join(words, " "), MaxNameLength)
}

// splitCode вынимает первый код из слов, сохраняя порядок остальных.
// Остаток слова ("(", ",") остаётся на месте, если в нём есть буквы или цифры.
func splitCode(words []string) (string, []string) {
	for i, w := range words {
		loc := codeRe.FindStringIndex(w)
		if loc == nil {
			continue
		}
		rest := make([]string, 0, len(words))
		rest = append(rest, words[:i]...)
		if remainder := w[:loc[0]] + w[loc[1]:]; !punctRe.MatchString(remainder) {
			rest = append(rest, remainder)
		}
		rest = append(rest, words[i+1:]...)
		return w[loc[0]:loc[1]], rest
	}
	return "", words
}

func appendBrands(rest []string, extracted string, brands []string) []string {
	for _, brand := range brands {
		brand = strings.TrimSpace(brand)
		if brand == "" {
			continue
		}
		current := fold(strings.Join(withWord(rest, extracted), " "))
		if strings.Contains(current, fold(brand)) {
			continue
		}
		rest = append(rest, strings.Fields(brand)...)
	}
	return rest
}

func withWord(words []string, word string) []string {
	out := make([]string, 0, len(words)+1)
	out = append(out, words...)
	if word != "" {
		out = append(out, word)
	}
	return out
}

func containsWord(words []string, word string) bool {
	target := fold(word)
	for _, w := range words {
		if w != "" && fold(w) == target {
			return true
		}
	}
	return false
}

func fold(s string) string {
	return cases.Fold().String(s)
}
