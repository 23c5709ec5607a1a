package update

import (
	"allegro_sync/internal/allegro/business/models"
	"allegro_sync/internal/allegro/business/models/dto/response"
	"allegro_sync/internal/allegro/business/services/tree"
	"context"
	"regexp"
	"strings"
)

const (
	CodeCategoryMismatch  = "CategoryMismatch"
	CodeParameterMismatch = "ParameterMismatch"
)

type CorrectionKind int

const (
	CorrectCategory CorrectionKind = iota + 1
	CorrectParameter
)

// Correction - исправление, извлечённое из ответа маркетплейса с ошибкой валидации.
type Correction struct {
	Kind        CorrectionKind
	CategoryID  string
	ParameterID string
	Value       string
}

// CorrectionStore сохраняет исправления, чтобы следующий прогон их уже учитывал.
type CorrectionStore interface {
	SaveCategory(ctx context.Context, productID, categoryID int) error
	SaveParameterValue(ctx context.Context, productID, categoryParameterID int, value string) error
}

var (
	categoryIDRe = regexp.MustCompile(`\d+`)
	// parameters[11323], parameters.11323, parameters/11323
	parameterPathRe = regexp.MustCompile(`parameters[\[./]([^\]./]+)`)
)

// ParseCorrection берёт первую ошибку, из которой можно извлечь исправление.
func ParseCorrection(resp response.ErrorResponse) (Correction, bool) {
	for _, detail := range resp.Errors {
		switch detail.Code {
		case CodeCategoryMismatch:
			if id := categoryIDRe.FindString(deref(detail.Details)); id != "" {
				return Correction{Kind: CorrectCategory, CategoryID: id}, true
			}
			if id := categoryIDRe.FindString(detail.UserMessage); id != "" {
				return Correction{Kind: CorrectCategory, CategoryID: id}, true
			}
		case CodeParameterMismatch:
			m := parameterPathRe.FindStringSubmatch(deref(detail.Path))
			value := strings.TrimSpace(deref(detail.Details))
			if m != nil && value != "" {
				return Correction{Kind: CorrectParameter, ParameterID: m[1], Value: value}, true
			}
		}
	}
	return Correction{}, false
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// applyCorrection возвращает копию элемента с исправлением; исходный товар не меняется.
func applyCorrection(item Item, c Correction, categories *tree.CategoryTree) (Item, bool) {
	product := item.product()
	if product == nil {
		return item, false
	}
	fixed := *product

	switch c.Kind {
	case CorrectCategory:
		if categories == nil {
			return item, false
		}
		category, ok := categories.GetByExternalID(c.CategoryID)
		if !ok || category.ID == product.CategoryID {
			return item, false
		}
		fixed.CategoryID = category.ID
	case CorrectParameter:
		fixed.Parameters = append([]models.ProductParameter(nil), product.Parameters...)
		found := false
		for i := range fixed.Parameters {
			if fixed.Parameters[i].Definition.ExternalID == c.ParameterID {
				if fixed.Parameters[i].Value == c.Value {
					return item, false
				}
				fixed.Parameters[i].Value = c.Value
				found = true
				break
			}
		}
		if !found {
			return item, false
		}
	default:
		return item, false
	}

	if item.Offer != nil {
		offer := *item.Offer
		offer.Product = &fixed
		if c.Kind == CorrectCategory {
			offer.CategoryID = c.CategoryID
		}
		return Item{Offer: &offer}, true
	}
	return Item{Product: &fixed}, true
}

func persistCorrection(ctx context.Context, store CorrectionStore, item Item, c Correction) error {
	if store == nil {
		return nil
	}
	product := item.product()
	switch c.Kind {
	case CorrectCategory:
		return store.SaveCategory(ctx, product.ID, product.CategoryID)
	case CorrectParameter:
		for _, p := range product.Parameters {
			if p.Definition.ExternalID == c.ParameterID {
				return store.SaveParameterValue(ctx, product.ID, p.CategoryParameterID, p.Value)
			}
		}
	}
	return nil
}
