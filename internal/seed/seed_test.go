package seed

import (
	"context"
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/nurpe/dealflow/internal/model"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&model.Client{}, &model.SalesRepresentative{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestLoadFallsBackAndCaches(t *testing.T) {
	data := Load("/does/not/exist.json")
	if data == nil {
		t.Fatal("expected fallback data")
	}
	if len(data.Clients) != 5 || len(data.SalesReps) != 5 {
		t.Errorf("unexpected fallback size: %d clients, %d reps", len(data.Clients), len(data.SalesReps))
	}
	// second call hits the cache regardless of path
	if again := Load("also/missing.json"); again != data {
		t.Error("expected cached pointer on repeat load")
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	data := fallbackData()

	for i := 0; i < 2; i++ {
		if err := Apply(context.Background(), db, data); err != nil {
			t.Fatalf("apply #%d: %v", i+1, err)
		}
	}

	var clientCount, repCount int64
	db.Model(&model.Client{}).Count(&clientCount)
	db.Model(&model.SalesRepresentative{}).Count(&repCount)
	if clientCount != int64(len(data.Clients)) {
		t.Errorf("expected %d clients, got %d", len(data.Clients), clientCount)
	}
	if repCount != int64(len(data.SalesReps)) {
		t.Errorf("expected %d reps, got %d", len(data.SalesReps), repCount)
	}
}

func TestApplyKeepsExistingRows(t *testing.T) {
	db := setupTestDB(t)
	existing := model.Client{Name: "Renamed Acme", Email: "contact@acmecorp.com"}
	if err := db.Create(&existing).Error; err != nil {
		t.Fatalf("pre-create: %v", err)
	}

	if err := Apply(context.Background(), db, fallbackData()); err != nil {
		t.Fatalf("apply: %v", err)
	}

	var got model.Client
	if err := db.First(&got, "email = ?", "contact@acmecorp.com").Error; err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if got.Name != "Renamed Acme" {
		t.Errorf("existing row was overwritten: %q", got.Name)
	}
}
