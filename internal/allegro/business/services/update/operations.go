package update

import (
	"allegro_sync/internal/allegro/business/models"
	"allegro_sync/internal/allegro/business/models/dto/request"
	"allegro_sync/internal/allegro/business/models/dto/response"
	"allegro_sync/internal/allegro/business/services/tree"
	"context"
	"fmt"
	"strconv"
)

// Item - единица работы: товар без оферты (создание) или существующая оферта (обновление).
type Item struct {
	Product *models.Product
	Offer   *models.Offer
}

// Key - ключ дедупликации внутри одного прогона.
func (i Item) Key() string {
	switch {
	case i.Offer != nil:
		return "offer:" + i.Offer.ID
	case i.Product != nil:
		return "product:" + strconv.Itoa(i.Product.ID)
	}
	return ""
}

func (i Item) product() *models.Product {
	if i.Offer != nil && i.Offer.Product != nil {
		return i.Offer.Product
	}
	return i.Product
}

type OfferOperation interface {
	Name() string
	// Validate проверяет, подходит ли элемент для операции.
	Validate(item Item) bool
	// Process строит тело запроса для элемента.
	Process(ctx context.Context, item Item) (request.Model, error)
	// Upload отправляет тело запроса в маркетплейс.
	Upload(ctx context.Context, client OfferClient, item Item, model request.Model) (*response.OfferResponse, error)
	// Categories - дерево, по которому применяются исправления категории.
	Categories() *tree.CategoryTree
}

type OfferClient interface {
	CreateOffer(ctx context.Context, payload request.Model) (*response.OfferResponse, error)
	UpdateOffer(ctx context.Context, offerID string, payload request.Model) (*response.OfferResponse, error)
}

type PayloadFactory interface {
	BuildCreatePayload(product *models.Product, categories *tree.CategoryTree) (*request.OfferPayload, error)
	BuildUpdatePayload(offer *models.Offer, categories *tree.CategoryTree) (*request.OfferPayload, error)
}

type OfferSaver interface {
	SaveOffer(ctx context.Context, offer models.Offer) error
}

type CreateOperation struct {
	factory    PayloadFactory
	categories *tree.CategoryTree
	offers     OfferSaver
}

// NewCreateOperation - offers может быть nil, тогда созданная оферта не сохраняется.
func NewCreateOperation(factory PayloadFactory, categories *tree.CategoryTree, offers OfferSaver) *CreateOperation {
	return &CreateOperation{factory: factory, categories: categories, offers: offers}
}

func (o *CreateOperation) Name() string {
	return "create"
}

func (o *CreateOperation) Validate(item Item) bool {
	return item.Offer == nil && item.Product != nil && item.Product.CategoryID != 0
}

func (o *CreateOperation) Process(_ context.Context, item Item) (request.Model, error) {
	payload, err := o.factory.BuildCreatePayload(item.Product, o.categories)
	if err != nil {
		return nil, err
	}
	return payload, nil
}

func (o *CreateOperation) Upload(ctx context.Context, client OfferClient, item Item, model request.Model) (*response.OfferResponse, error) {
	resp, err := client.CreateOffer(ctx, model)
	if err != nil {
		return nil, err
	}
	if o.offers == nil {
		return resp, nil
	}

	offer := models.Offer{ID: resp.ID, ProductID: item.Product.ID}
	if payload, ok := model.(*request.OfferPayload); ok && payload.Category != nil {
		offer.CategoryID = payload.Category.ID
	}
	if err := o.offers.SaveOffer(ctx, offer); err != nil {
		return resp, fmt.Errorf("offer %s created but not saved: %w", resp.ID, err)
	}
	return resp, nil
}

func (o *CreateOperation) Categories() *tree.CategoryTree {
	return o.categories
}

type UpdateOperation struct {
	factory    PayloadFactory
	categories *tree.CategoryTree
}

func NewUpdateOperation(factory PayloadFactory, categories *tree.CategoryTree) *UpdateOperation {
	return &UpdateOperation{factory: factory, categories: categories}
}

func (o *UpdateOperation) Name() string {
	return "update"
}

func (o *UpdateOperation) Validate(item Item) bool {
	return item.Offer != nil && item.Offer.ID != "" && item.Offer.Product != nil
}

func (o *UpdateOperation) Process(_ context.Context, item Item) (request.Model, error) {
	payload, err := o.factory.BuildUpdatePayload(item.Offer, o.categories)
	if err != nil {
		return nil, err
	}
	return payload, nil
}

func (o *UpdateOperation) Upload(ctx context.Context, client OfferClient, item Item, model request.Model) (*response.OfferResponse, error) {
	return client.UpdateOffer(ctx, item.Offer.ID, model)
}

func (o *UpdateOperation) Categories() *tree.CategoryTree {
	return o.categories
}
