package models

import "strings"

type ParameterType string

const (
	ParameterString     ParameterType = "string"
	ParameterDictionary ParameterType = "dictionary"
	ParameterFloat      ParameterType = "float"
	ParameterInteger    ParameterType = "integer"
)

// ParseParameterType - неизвестный тип трактуется как строковый.
func ParseParameterType(s string) ParameterType {
	switch ParameterType(strings.ToLower(strings.TrimSpace(s))) {
	case ParameterDictionary:
		return ParameterDictionary
	case ParameterFloat:
		return ParameterFloat
	case ParameterInteger:
		return ParameterInteger
	default:
		return ParameterString
	}
}

type DictionaryValue struct {
	ID    string
	Value string
}

// CategoryParameter - описание параметра категории Allegro.
type CategoryParameter struct {
	ID                 int
	ExternalID         string
	Name               string
	Type               ParameterType
	Required           bool
	RequiredForProduct bool
	Min                float64
	Max                float64
	Dictionary         []DictionaryValue
}

type ProductParameter struct {
	ProductID           int
	CategoryParameterID int
	Value               string
	IsForProduct        bool
	Definition          CategoryParameter
}

func (p ProductParameter) Name() string {
	return p.Definition.Name
}
