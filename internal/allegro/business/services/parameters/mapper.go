package parameters

import (
	"allegro_sync/internal/allegro/business/models"
	"allegro_sync/internal/allegro/business/models/dto/request"
	"allegro_sync/pkg/business/service"
	"golang.org/x/text/cases"
	"regexp"
	"strings"
)

const (
	EANParameter               = "EAN (GTIN)"
	SafetyInformationParameter = "Informacje o bezpieczeństwie"

	DefaultMaxMultiValues = 15
)

var (
	DefaultMultiValueParameters = []string{"numery katalogowe zamienników", "marka"}

	excluded = []string{EANParameter, SafetyInformationParameter}
	splitRe  = regexp.MustCompile(`[,\s]+`)
)

// Mapper превращает параметры товара в параметры оферты.
type Mapper struct {
	multiValue map[string]struct{}
	maxValues  int
	text       service.ITextService
}

func NewMapper(multiValueNames []string, maxValues int) *Mapper {
	if multiValueNames == nil {
		multiValueNames = DefaultMultiValueParameters
	}
	if maxValues <= 0 {
		maxValues = DefaultMaxMultiValues
	}

	set := make(map[string]struct{}, len(multiValueNames))
	for _, name := range multiValueNames {
		set[fold(strings.TrimSpace(name))] = struct{}{}
	}
	return &Mapper{multiValue: set, maxValues: maxValues, text: service.NewTextService()}
}

// BuildParameters отбирает параметры нужного уровня (товар в комплекте или оферта целиком).
func (m *Mapper) BuildParameters(params []models.ProductParameter, isForProductSet bool) []request.Parameter {
	var out []request.Parameter
	for _, p := range params {
		if p.IsForProduct != isForProductSet || isExcluded(p.Name()) {
			continue
		}
		if strings.TrimSpace(p.Value) == "" {
			continue
		}

		cleaned := strings.TrimSpace(m.text.RemoveControlChars(p.Value))
		var values []string
		if m.isMultiValue(p.Name()) {
			values = m.splitValues(cleaned)
		} else if cleaned != "" {
			values = []string{cleaned}
		}
		if len(values) == 0 {
			continue
		}

		out = append(out, shape(p.Definition, values))
	}
	return out
}

// SafetyInformation достаёт текст «Informacje o bezpieczeństwie», который идёт не в параметры.
func (m *Mapper) SafetyInformation(params []models.ProductParameter) (string, bool) {
	for _, p := range params {
		if fold(p.Name()) != fold(SafetyInformationParameter) {
			continue
		}
		if text := strings.TrimSpace(m.text.RemoveControlChars(p.Value)); text != "" {
			return text, true
		}
	}
	return "", false
}

func (m *Mapper) isMultiValue(name string) bool {
	_, ok := m.multiValue[fold(strings.TrimSpace(name))]
	return ok
}

func (m *Mapper) splitValues(value string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, token := range splitRe.Split(value, -1) {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		key := fold(token)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, token)
		if len(out) == m.maxValues {
			break
		}
	}
	return out
}

// shape применяет правила типа параметра.
func shape(def models.CategoryParameter, values []string) request.Parameter {
	param := request.Parameter{ID: def.ExternalID, Name: def.Name}

	switch def.Type {
	case models.ParameterDictionary:
		for _, v := range values {
			if id, ok := dictionaryID(def.Dictionary, v); ok {
				param.ValuesIDs = append(param.ValuesIDs, id)
			} else {
				param.Values = append(param.Values, v)
			}
		}
	case models.ParameterFloat:
		for _, v := range values {
			param.Values = append(param.Values, strings.ReplaceAll(v, ",", "."))
		}
	case models.ParameterInteger:
		// min/max у числовых параметров - границы значения, а не длина; проверяет Allegro
		param.Values = append(param.Values, values...)
	default:
		// у строковых параметров max - допустимая длина
		for _, v := range values {
			param.Values = append(param.Values, truncate(v, int(def.Max)))
		}
	}
	return param
}

func dictionaryID(dictionary []models.DictionaryValue, value string) (string, bool) {
	key := fold(value)
	for _, d := range dictionary {
		if fold(d.Value) == key {
			return d.ID, true
		}
	}
	return "", false
}

func truncate(value string, max int) string {
	if max <= 0 {
		return value
	}
	runes := []rune(value)
	if len(runes) <= max {
		return value
	}
	return strings.TrimSpace(string(runes[:max]))
}

func isExcluded(name string) bool {
	key := fold(strings.TrimSpace(name))
	for _, e := range excluded {
		if key == fold(e) {
			return true
		}
	}
	return false
}

func fold(s string) string {
	return cases.Fold().String(s)
}
