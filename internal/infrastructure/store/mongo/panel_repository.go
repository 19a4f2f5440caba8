package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/yonyossef/yiftach-sign/internal/core/domain"
)

const (
	panelCollection = "sign_state"
	panelDocID      = "panels"
)

// Config carries the connection settings for the MongoDB panel store.
type Config struct {
	URI      string
	Database string
	// PingTimeout bounds both the dial and the connectivity check in
	// NewPanelRepository.
	PingTimeout time.Duration
}

func (c Config) pingTimeout() time.Duration {
	if c.PingTimeout > 0 {
		return c.PingTimeout
	}
	return 10 * time.Second
}

// PanelRepository keeps the entire panel collection in one MongoDB document,
// preserving the flat-file contract: load degrades to empty, save is a
// full-document replacement (ReplaceOne with upsert).
type PanelRepository struct {
	client *mongo.Client
	coll   *mongo.Collection
	log    zerolog.Logger
}

// NewPanelRepository dials MongoDB, verifies connectivity, and binds to the
// sign_state collection. The caller owns the repository and must Close it on
// shutdown.
func NewPanelRepository(ctx context.Context, cfg Config, log zerolog.Logger) (*PanelRepository, error) {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.pingTimeout())
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return &PanelRepository{
		client: client,
		coll:   client.Database(cfg.Database).Collection(panelCollection),
		log:    log,
	}, nil
}

// Ping reports whether the backend is still reachable. Used by the readiness
// endpoint.
func (r *PanelRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, nil)
}

func (r *PanelRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

type panelDoc struct {
	ID     string         `bson:"_id"`
	Panels []domain.Panel `bson:"panels"`
}

func (r *PanelRepository) Load(ctx context.Context) (domain.Collection, error) {
	var doc panelDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": panelDocID}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return domain.Collection{Panels: []domain.Panel{}}, nil
		}
		return domain.Collection{Panels: []domain.Panel{}}, fmt.Errorf("find panels: %w", err)
	}
	if doc.Panels == nil {
		doc.Panels = []domain.Panel{}
	}
	return domain.Collection{Panels: doc.Panels}, nil
}

func (r *PanelRepository) Save(ctx context.Context, c domain.Collection) error {
	doc := panelDoc{ID: panelDocID, Panels: c.Panels}
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": panelDocID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("replace panels: %w", err)
	}
	return nil
}
