package app

import (
	"allegro_sync/config"
	"allegro_sync/internal/allegro/business/services/builder"
	"allegro_sync/internal/allegro/business/services/compatibility"
	"allegro_sync/internal/allegro/business/services/tree"
	"allegro_sync/internal/allegro/business/services/update"
	"allegro_sync/internal/allegro/pkg/clients"
	"allegro_sync/internal/allegro/storage"
	"allegro_sync/pkg/dbconnect"
	"allegro_sync/pkg/logger"
	"context"
	"fmt"
	"golang.org/x/time/rate"
	"io"
	"time"
)

const categoryCacheTTL = time.Hour

type AllegroServer struct {
	dbconnect.Database
	cfg *config.AppConfig
	log *logger.BaseLogger
}

func NewAllegroServer(connector dbconnect.Database, cfg *config.AppConfig, writer io.Writer) *AllegroServer {
	return &AllegroServer{
		Database: connector,
		cfg:      cfg,
		log:      logger.NewLogger(writer, "[AllegroServer]"),
	}
}

// Run выставляет оферты для новых товаров, затем обновляет существующие.
func (s *AllegroServer) Run(ctx context.Context) error {
	db, err := s.Connect(ctx)
	if err != nil {
		return fmt.Errorf("error connecting to PostgreSQL: %w", err)
	}
	defer s.Close()

	products := storage.NewProductRepository(db)
	offers := storage.NewOfferRepository(db, products)
	categoryRepo := storage.NewCachedCategoryRepository(storage.NewCategoryRepository(db), categoryCacheTTL)

	categories, err := s.loadCategoryTree(ctx, categoryRepo)
	if err != nil {
		return err
	}

	compatible, err := storage.NewCompatibleProductRepository(db).GetCompatibleProducts(ctx)
	if err != nil {
		return err
	}
	index := compatibility.NewProductIndex(compatible)
	s.log.Log("Loaded %d categories, %d compatible products", categories.Len(), index.Len())

	factory := builder.NewOfferFactory(builder.Config{Margin: s.cfg.Margin, Offer: s.cfg.Offer}, index)
	client := clients.NewAllegroClient(
		s.cfg.Allegro.ApiURL,
		clients.NewBearerAuth(s.cfg.Allegro.Token),
		s.log.WithPrefix("[AllegroClient]"),
		s.cfg.Allegro.Timeout,
		s.cfg.Allegro.MaxRetries,
	)
	limiter := rate.NewLimiter(rate.Limit(s.cfg.Allegro.RateLimit), 1)

	if err := s.createOffers(ctx, products, offers, factory, client, limiter, categoryRepo, categories); err != nil {
		return err
	}

	// CategoryMismatch при создании сбрасывает кэш, тогда дерево перечитывается из базы
	categories, err = s.loadCategoryTree(ctx, categoryRepo)
	if err != nil {
		return err
	}
	return s.updateOffers(ctx, offers, factory, client, limiter, categoryRepo, categories)
}

func (s *AllegroServer) loadCategoryTree(ctx context.Context, repo storage.CategorySource) (*tree.CategoryTree, error) {
	categories, err := repo.GetCategories(ctx)
	if err != nil {
		return nil, err
	}
	return tree.NewCategoryTree(categories), nil
}

func (s *AllegroServer) createOffers(
	ctx context.Context,
	products *storage.ProductRepository,
	offers *storage.OfferRepository,
	factory update.PayloadFactory,
	client update.OfferClient,
	limiter *rate.Limiter,
	categoryCache update.CategoryCache,
	categories *tree.CategoryTree,
) error {
	ids, err := products.GetProductIDsWithoutOffers(ctx)
	if err != nil {
		return err
	}
	items, err := products.GetProducts(ctx, ids)
	if err != nil {
		return err
	}
	s.log.Log("Products without offers: %d", len(items))

	service := update.NewUpdateService(
		update.NewCreateOperation(factory, categories, offers),
		client,
		offers,
		limiter,
		s.cfg.Allegro.WorkerCount,
		s.log.WithPrefix("[ Offer Creator ]"),
	).WithCategoryCache(categoryCache)

	itemChan := make(chan update.Item)
	go func() {
		defer close(itemChan)
		for i := range items {
			select {
			case itemChan <- update.Item{Product: &items[i]}:
			case <-ctx.Done():
				return
			}
		}
	}()

	created, err := service.Run(ctx, itemChan)
	s.report("Создано оферт", created, service)
	return err
}

func (s *AllegroServer) updateOffers(
	ctx context.Context,
	offers *storage.OfferRepository,
	factory update.PayloadFactory,
	client update.OfferClient,
	limiter *rate.Limiter,
	categoryCache update.CategoryCache,
	categories *tree.CategoryTree,
) error {
	existing, err := offers.GetOffers(ctx)
	if err != nil {
		return err
	}
	s.log.Log("Existing offers: %d", len(existing))

	service := update.NewUpdateService(
		update.NewUpdateOperation(factory, categories),
		client,
		offers,
		limiter,
		s.cfg.Allegro.WorkerCount,
		s.log.WithPrefix("[ Offer Updater ]"),
	).WithCategoryCache(categoryCache)

	itemChan := make(chan update.Item)
	go func() {
		defer close(itemChan)
		for i := range existing {
			select {
			case itemChan <- update.Item{Offer: &existing[i]}:
			case <-ctx.Done():
				return
			}
		}
	}()

	updated, err := service.Run(ctx, itemChan)
	s.report("Обновлено оферт", updated, service)
	return err
}

func (s *AllegroServer) report(what string, count int, service *update.Service) {
	m := service.Metrics()
	s.log.Log("%s: %d", what, count)
	s.log.Log("Обработано: %d, с ошибками: %d, исправлено: %d",
		m.ProcessedCount.Load(), m.ErroredCount.Load(), m.CorrectedCount.Load())
}

var (
	_ update.CorrectionStore                = (*storage.OfferRepository)(nil)
	_ update.OfferSaver                     = (*storage.OfferRepository)(nil)
	_ update.PayloadFactory                 = (*builder.OfferFactory)(nil)
	_ update.OfferClient                    = (*clients.AllegroClient)(nil)
	_ update.CategoryCache                  = (*storage.CachedCategoryRepository)(nil)
	_ compatibility.CompatibleProductLookup = (*compatibility.ProductIndex)(nil)
)
