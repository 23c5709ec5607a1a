package description

import "strings"

// формы: 1, 2-4 (кроме 12-14), остальные
var unitForms = map[string][3]string{
	"szt":  {"sztuka", "sztuki", "sztuk"},
	"kpl":  {"komplet", "komplety", "kompletów"},
	"para": {"para", "pary", "par"},
	"mb":   {"metr bieżący", "metry bieżące", "metrów bieżących"},
	"m":    {"metr", "metry", "metrów"},
	"kg":   {"kilogram", "kilogramy", "kilogramów"},
	"l":    {"litr", "litry", "litrów"},
}

// Conjugate подбирает польскую форму единицы измерения для количества.
// Неизвестная единица возвращается без изменений.
func Conjugate(quantity int, unit string) string {
	key := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(unit)), ".")
	forms, ok := unitForms[key]
	if !ok {
		return unit
	}

	n := quantity
	if n < 0 {
		n = -n
	}
	switch {
	case n == 1:
		return forms[0]
	case n%10 >= 2 && n%10 <= 4 && (n%100 < 12 || n%100 > 14):
		return forms[1]
	default:
		return forms[2]
	}
}
