package main

import (
	"context"
	"encoding/json"
	"log"

	"github.com/segmentio/kafka-go"

	"github.com/minhvu/folio/adapters/event"
	"github.com/minhvu/folio/adapters/persistence"
	postUC "github.com/minhvu/folio/internal/application/usecase/post"
	"github.com/minhvu/folio/internal/config"
	"github.com/minhvu/folio/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)

	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot connect Postgres", err)
	}
	defer dbPool.Close()

	postRepo := persistence.NewPostgresPostRepo(dbPool, appLogger)
	processUC := postUC.NewProcessContentEventUseCase(postRepo, appLogger)

	consumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    event.TopicContentEvents,
		GroupID:  "content-processor-group",
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	defer consumer.Close()

	appLogger.Info("Worker listening on topic '" + event.TopicContentEvents + "'")

	ctx := context.Background()
	for {
		msg, err := consumer.FetchMessage(ctx)
		if err != nil {
			appLogger.Error("Failed to read message from Kafka", err)
			continue
		}

		var payload event.ContentEvent
		if err := json.Unmarshal(msg.Value, &payload); err != nil {
			appLogger.Error("Failed to unmarshal content event, skipping", err)
			commitMessage(consumer, msg, appLogger)
			continue
		}

		if err := processUC.Execute(ctx, payload); err != nil {
			// Left uncommitted; the event is retried on the next fetch.
			appLogger.Error("Failed to process content event", err)
			continue
		}

		commitMessage(consumer, msg, appLogger)
	}
}

func commitMessage(consumer *kafka.Reader, msg kafka.Message, log logger.Logger) {
	if err := consumer.CommitMessages(context.Background(), msg); err != nil {
		log.Error("Failed to commit message", err)
	}
}
