package update

import (
	"allegro_sync/internal/allegro/business/models/dto/request"
	"allegro_sync/internal/allegro/pkg/clients"
	"allegro_sync/metrics"
	"allegro_sync/pkg/logger"
	"context"
	"errors"
	"fmt"
	"golang.org/x/time/rate"
	"sync"
)

type Service struct {
	operation     OfferOperation
	client        OfferClient
	corrections   CorrectionStore
	categoryCache CategoryCache
	rateLimiter   *rate.Limiter
	workerCount   int
	metrics       *metrics.UpdateMetrics
	log           logger.Logger
}

// CategoryCache - кэш дерева категорий, который устаревает, когда маркетплейс указывает другую категорию.
type CategoryCache interface {
	Invalidate()
}

type uploadJob struct {
	item  Item
	model request.Model
}

// NewUpdateService создает сервис с указанной операцией; corrections может быть nil.
func NewUpdateService(
	operation OfferOperation,
	client OfferClient,
	corrections CorrectionStore,
	rateLimiter *rate.Limiter,
	workerCount int,
	log logger.Logger,
) *Service {
	if workerCount < 1 {
		workerCount = 1
	}
	return &Service{
		operation:   operation,
		client:      client,
		corrections: corrections,
		rateLimiter: rateLimiter,
		workerCount: workerCount,
		metrics:     &metrics.UpdateMetrics{},
		log:         log,
	}
}

// WithCategoryCache подключает кэш категорий, сбрасываемый при CategoryMismatch.
func (s *Service) WithCategoryCache(cache CategoryCache) *Service {
	s.categoryCache = cache
	return s
}

// Run обрабатывает элементы из канала, пока он не закрыт, и возвращает число отправленных оферт.
func (s *Service) Run(ctx context.Context, items <-chan Item) (int, error) {
	processedItems := &sync.Map{}
	uploadChan := make(chan uploadJob)

	var processWg sync.WaitGroup
	for i := 0; i < s.workerCount; i++ {
		processWg.Add(1)
		go func(workerID int) {
			defer processWg.Done()
			for item := range items {
				if _, loaded := processedItems.LoadOrStore(item.Key(), true); loaded {
					continue
				}

				if !s.operation.Validate(item) {
					s.log.Log("Worker %d: %s не прошёл валидацию", workerID, item.Key())
					s.fail("invalid")
					continue
				}

				model, err := s.operation.Process(ctx, item)
				if err != nil {
					s.log.Error("Worker %d: ошибка обработки %s: %s", workerID, item.Key(), err)
					s.fail("invalid")
					continue
				}
				s.metrics.ProcessedCount.Add(1)

				select {
				case uploadChan <- uploadJob{item: item, model: model}:
				case <-ctx.Done():
					return
				}
			}
		}(i)
	}

	var uploadWg sync.WaitGroup
	uploadWg.Add(1)
	go func() {
		defer uploadWg.Done()
		s.uploadWorker(ctx, uploadChan)
	}()

	processWg.Wait()
	close(uploadChan)
	uploadWg.Wait()

	uploaded := int(s.metrics.UploadedCount.Load())
	if err := ctx.Err(); err != nil {
		return uploaded, err
	}
	return uploaded, nil
}

// uploadWorker отправляет модели по одной с учетом rate limiter'а.
func (s *Service) uploadWorker(ctx context.Context, uploadChan <-chan uploadJob) {
	for job := range uploadChan {
		if err := s.rateLimiter.Wait(ctx); err != nil {
			s.log.Error("Limiter error: %s", err)
			s.fail("failed")
			continue
		}
		if err := s.processAndUpload(ctx, job, true); err != nil {
			s.log.Error("Error during upload of %s: %s", job.item.Key(), err)
			s.fail("failed")
			continue
		}
		s.metrics.UploadedCount.Add(1)
		metrics.RecordOffer(s.operation.Name(), "uploaded")
	}
}

// processAndUpload при отказе маркетплейса пытается исправить категорию или параметр и повторяет один раз.
func (s *Service) processAndUpload(ctx context.Context, job uploadJob, allowCorrection bool) error {
	resp, err := s.operation.Upload(ctx, s.client, job.item, job.model)
	if err == nil {
		s.log.Log("%s %s: offer %s", s.operation.Name(), job.item.Key(), resp.ID)
		return nil
	}

	var apiErr *clients.APIError
	if !allowCorrection || !errors.As(err, &apiErr) {
		return err
	}

	correction, ok := ParseCorrection(apiErr.Response)
	if !ok {
		return err
	}
	if correction.Kind == CorrectCategory && s.categoryCache != nil {
		s.categoryCache.Invalidate()
	}
	fixed, ok := applyCorrection(job.item, correction, s.operation.Categories())
	if !ok {
		return err
	}
	s.log.Log("Trying to fix %s (Status=%d)...", job.item.Key(), apiErr.StatusCode)

	if perr := persistCorrection(ctx, s.corrections, fixed, correction); perr != nil {
		s.log.Error("Failed to save correction for %s: %s", job.item.Key(), perr)
	}

	model, perr := s.operation.Process(ctx, fixed)
	if perr != nil {
		return fmt.Errorf("rebuild after correction: %w", perr)
	}
	s.metrics.CorrectedCount.Add(1)
	metrics.RecordOffer(s.operation.Name(), "corrected")

	if err := s.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("limiter: %w", err)
	}
	return s.processAndUpload(ctx, uploadJob{item: fixed, model: model}, false)
}

func (s *Service) fail(status string) {
	s.metrics.ErroredCount.Add(1)
	metrics.RecordOffer(s.operation.Name(), status)
}

func (s *Service) Metrics() *metrics.UpdateMetrics {
	return s.metrics
}
