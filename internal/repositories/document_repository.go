package repositories

import (
	"context"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"tripmate/internal/infra"
	"tripmate/internal/models/db_models"
)

type IDocumentRepository interface {
	CreateDocuments(ctx context.Context, docs []db_models.TravelDocument) error
	SearchByVector(ctx context.Context, vector pgvector.Vector, k int, minSimilarity float64) ([]db_models.DocumentMatch, error)
	CountDocuments(ctx context.Context) (int64, error)
}

type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) IDocumentRepository {
	return &DocumentRepository{
		db: db,
	}
}

// CreateDocuments stores all chunks of one source atomically.
func (d *DocumentRepository) CreateDocuments(ctx context.Context, docs []db_models.TravelDocument) (err error) {
	tx := infra.StartTransaction(d.db.WithContext(ctx))
	if tx.Error != nil {
		return tx.Error
	}
	defer func() {
		err = infra.ReleaseTransaction(tx, err)
	}()

	return tx.CreateInBatches(&docs, 100).Error
}

func (d *DocumentRepository) SearchByVector(ctx context.Context, vector pgvector.Vector, k int, minSimilarity float64) ([]db_models.DocumentMatch, error) {
	var results []db_models.DocumentMatch

	query := `
        SELECT *, (1 - (embedding <=> ?)) AS similarity
        FROM travel_documents
        WHERE deleted_at IS NULL AND (1 - (embedding <=> ?)) > ?
        ORDER BY embedding <=> ?  -- cosine distance, closer to 0 is better
        LIMIT ?
    `

	err := d.db.WithContext(ctx).Raw(query, vector, vector, minSimilarity, vector, k).Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (d *DocumentRepository) CountDocuments(ctx context.Context) (int64, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&db_models.TravelDocument{}).Count(&count).Error
	return count, err
}
