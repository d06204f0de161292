package clients

import (
	"context"
	"fmt"
	"time"

	config "github.com/basketwise/recommender/internal/cfg"
	"github.com/basketwise/recommender/pkg/e"
	"github.com/basketwise/recommender/pkg/jitter"
	"github.com/jimlawless/whereami"
	"github.com/qdrant/go-client/qdrant"
)

type QdrantClient struct {
	Client *qdrant.Client
	cfg    *config.QdrantCfg
}

func NewQdrantClient(cfg *config.QdrantCfg) (*QdrantClient, error) {
	qdrantClient, err := qdrant.NewClient(&qdrant.Config{
		Host:   cfg.Host,
		Port:   cfg.Port,
		APIKey: cfg.ApiKey,
		UseTLS: cfg.UseTLS,
	})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &QdrantClient{
		Client: qdrantClient,
		cfg:    cfg,
	}, nil
}

// WaitReady ждёт ответа Qdrant на health check с экспоненциальной паузой.
func (q *QdrantClient) WaitReady(ctx context.Context, attempts int) error {
	err := jitter.Retry(ctx, attempts, 500*time.Millisecond, 5*time.Second, func(ctx context.Context) error {
		_, err := q.Client.HealthCheck(ctx)
		return err
	})
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (q *QdrantClient) Close() error {
	return q.Client.Close()
}

// EnsureCollection создаёт коллекцию товаров и индекс по полю цены, если коллекции ещё нет.
// Индекс нужен для серверного фильтра по цене.
func EnsureCollection(ctx context.Context, client *QdrantClient) error {
	exists, err := client.Client.CollectionExists(ctx, client.cfg.QdrantCollectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection existence: %w", err)
	}

	if exists {
		return nil
	}

	if err := client.Client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: client.cfg.QdrantCollectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     client.cfg.VectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	}); err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	if _, err := client.Client.CreateFieldIndex(ctx, &qdrant.CreateFieldIndexCollection{
		CollectionName: client.cfg.QdrantCollectionName,
		FieldName:      client.cfg.PriceField,
		FieldType:      qdrant.FieldType_FieldTypeFloat.Enum(),
	}); err != nil {
		return fmt.Errorf("failed to create price index: %w", err)
	}

	return nil
}
