// Package sqlite DocumentStore sobre un archivo SQLite local (gorm). Es el backend por defecto:
// un solo proceso, un solo origen, sin servidor de base de datos.
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jhoicas/Ferreteria-api/internal/domain/repository"
)

var _ repository.AtomicDocumentStore = (*DocumentStore)(nil)

// documentRecord fila de la tabla documents: una colección JSON por clave.
type documentRecord struct {
	Key       string `gorm:"column:doc_key;primaryKey"`
	Body      []byte `gorm:"column:body;not null"`
	UpdatedAt time.Time
}

func (documentRecord) TableName() string { return "documents" }

// DocumentStore implementación del puerto DocumentStore sobre gorm.
type DocumentStore struct {
	db *gorm.DB
}

// Open abre (o crea) la base SQLite en path y migra la tabla de documentos.
func Open(path string) (*DocumentStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite %s: %w", path, err)
	}
	return NewDocumentStore(db)
}

// NewDocumentStore construye el adaptador sobre una conexión gorm existente y migra el esquema.
func NewDocumentStore(db *gorm.DB) (*DocumentStore, error) {
	if err := db.AutoMigrate(&documentRecord{}); err != nil {
		return nil, fmt.Errorf("migrar documents: %w", err)
	}
	return &DocumentStore{db: db}, nil
}

// Get obtiene el documento de key.
func (s *DocumentStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return get(s.db.WithContext(ctx), key)
}

// Put inserta o reemplaza el documento de key.
func (s *DocumentStore) Put(ctx context.Context, key string, doc []byte) error {
	return put(s.db.WithContext(ctx), key, doc)
}

// Modify lee y reescribe key dentro de una transacción.
func (s *DocumentStore) Modify(ctx context.Context, key string, fn func(current []byte, found bool) ([]byte, error)) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, found, err := get(tx, key)
		if err != nil {
			return err
		}
		next, err := fn(current, found)
		if err != nil {
			return err
		}
		return put(tx, key, next)
	})
}

// Close cierra la conexión subyacente.
func (s *DocumentStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func get(db *gorm.DB, key string) ([]byte, bool, error) {
	var rec documentRecord
	err := db.Where("doc_key = ?", key).Take(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get document %s: %w", key, err)
	}
	return rec.Body, true, nil
}

func put(db *gorm.DB, key string, doc []byte) error {
	rec := documentRecord{Key: key, Body: doc, UpdatedAt: time.Now()}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "doc_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"body", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("put document %s: %w", key, err)
	}
	return nil
}
