package db_models

import (
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

// TravelDocument is one chunk of an ingested travel guide with its embedding.
type TravelDocument struct {
	BaseModel
	Source     string `gorm:"index"`
	ChunkIndex int
	Content    string          `gorm:"type:text"`
	Tags       pq.StringArray  `gorm:"type:text[]"`
	Embedding  pgvector.Vector `gorm:"type:vector"`
}

// DocumentMatch is a TravelDocument returned by a similarity search.
type DocumentMatch struct {
	TravelDocument
	Similarity float64
}
