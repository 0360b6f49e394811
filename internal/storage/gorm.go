package storage

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"palauncher/internal/domain"
)

type UpdateRecord struct {
	ID        string `gorm:"primaryKey"`
	ZipURL    string
	Commit    string
	Date      string
	Result    string
	CreatedAt time.Time
}

// GormStore keeps the launcher's update history in a local sqlite database.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(path string) (*GormStore, error) {
	newLogger := gormlogger.New(
		log.New(os.Stdout, "", log.LstdFlags),
		gormlogger.Config{
			IgnoreRecordNotFoundError: true,
			LogLevel:                  gormlogger.Error,
		},
	)

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: newLogger})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&UpdateRecord{}); err != nil {
		return nil, fmt.Errorf("error migrating database: %w", err)
	}

	return &GormStore{db: db}, nil
}

func (s *GormStore) SaveUpdate(rec *domain.UpdateRecord) error {
	return s.db.Create(&UpdateRecord{
		ID:        rec.ID,
		ZipURL:    rec.ZipURL,
		Commit:    rec.Commit,
		Date:      rec.Date,
		Result:    rec.Result,
		CreatedAt: rec.CreatedAt,
	}).Error
}

func (s *GormStore) ListUpdates() ([]domain.UpdateRecord, error) {
	var rows []UpdateRecord
	if err := s.db.Order("created_at desc").Find(&rows).Error; err != nil {
		return nil, err
	}

	var records []domain.UpdateRecord
	for _, row := range rows {
		records = append(records, domain.UpdateRecord{
			ID:        row.ID,
			ZipURL:    row.ZipURL,
			Commit:    row.Commit,
			Date:      row.Date,
			Result:    row.Result,
			CreatedAt: row.CreatedAt,
		})
	}
	return records, nil
}
