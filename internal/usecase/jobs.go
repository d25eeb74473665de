package usecase

import (
	"context"

	"LiskPredict/internal/domain/models"
	drepo "LiskPredict/internal/domain/repository"
	applogger "LiskPredict/pkg/logger"
	"LiskPredict/pkg/queue"
)

// StorePredictionJob persists generated predictions for the history API.
type StorePredictionJob struct {
	store  drepo.PredictionStore
	logger *applogger.Logger
}

func NewStorePredictionJob(store drepo.PredictionStore, l *applogger.Logger) *StorePredictionJob {
	return &StorePredictionJob{store: store, logger: l}
}

func (j *StorePredictionJob) Name() string { return "store_prediction" }
func (j *StorePredictionJob) Type() string { return MsgPredictionCreated }

func (j *StorePredictionJob) Handle(ctx context.Context, payload interface{}) error {
	p, err := queue.ParsePayload[models.Prediction](payload)
	if err != nil {
		return err
	}
	if err := j.store.Store(ctx, p); err != nil {
		return err
	}
	j.logger.Debug("prediction stored", applogger.String("symbol", p.Symbol))
	return nil
}

// PublishPredictionJob emits generated predictions to the broker for
// downstream consumers.
type PublishPredictionJob struct {
	publisher drepo.Publisher
	logger    *applogger.Logger
}

func NewPublishPredictionJob(pub drepo.Publisher, l *applogger.Logger) *PublishPredictionJob {
	return &PublishPredictionJob{publisher: pub, logger: l}
}

func (j *PublishPredictionJob) Name() string { return "publish_prediction" }
func (j *PublishPredictionJob) Type() string { return MsgPredictionCreated }

func (j *PublishPredictionJob) Handle(ctx context.Context, payload interface{}) error {
	p, err := queue.ParsePayload[models.Prediction](payload)
	if err != nil {
		return err
	}
	if err := j.publisher.Publish(ctx, p); err != nil {
		return err
	}
	j.logger.Debug("prediction published", applogger.String("symbol", p.Symbol))
	return nil
}

var (
	_ queue.Job = (*StorePredictionJob)(nil)
	_ queue.Job = (*PublishPredictionJob)(nil)
)
