package clients

import (
	"allegro_sync/internal/allegro/business/models/dto/request"
	"allegro_sync/internal/allegro/business/models/dto/response"
	"allegro_sync/pkg/logger"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const offersEndpoint = "/sale/product-offers"

// AllegroClient отправляет оферты в API Allegro.
type AllegroClient struct {
	*BaseClient
}

func NewAllegroClient(apiURL string, auth AuthEngine, log logger.Logger, timeout time.Duration, maxRetries int) *AllegroClient {
	return &AllegroClient{BaseClient: NewBaseClient(apiURL, auth, log, timeout, maxRetries)}
}

func (c *AllegroClient) CreateOffer(ctx context.Context, payload request.Model) (*response.OfferResponse, error) {
	var out response.OfferResponse
	if err := c.doRequest(ctx, http.MethodPost, offersEndpoint, payload, &out); err != nil {
		return nil, fmt.Errorf("create offer: %w", err)
	}
	return &out, nil
}

func (c *AllegroClient) UpdateOffer(ctx context.Context, offerID string, payload request.Model) (*response.OfferResponse, error) {
	var out response.OfferResponse
	endpoint := offersEndpoint + "/" + url.PathEscape(offerID)
	if err := c.doRequest(ctx, http.MethodPatch, endpoint, payload, &out); err != nil {
		return nil, fmt.Errorf("update offer %s: %w", offerID, err)
	}
	if out.ID == "" {
		out.ID = offerID
	}
	return &out, nil
}
