package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/timmy/imagen/internal/domain"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&domain.ImageRecord{}, &domain.ClassifiedImageRecord{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func testImageRecord(t *testing.T, id, description string) *domain.ImageRecord {
	t.Helper()
	desc, err := domain.NewImageDescription(description)
	if err != nil {
		t.Fatalf("invalid description: %v", err)
	}
	data, err := domain.NewBase64Data("aGVsbG8=")
	if err != nil {
		t.Fatalf("invalid data: %v", err)
	}
	platform, err := domain.NewPlatform("public")
	if err != nil {
		t.Fatalf("invalid platform: %v", err)
	}
	return domain.NewImageRecord(id, desc, data, platform, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
}

func TestImageRepositoryUpsertIsIdempotent(t *testing.T) {
	repo := NewImageRepository(newTestDB(t))
	ctx := context.Background()

	rec := testImageRecord(t, "img-1", "a cat")
	for i := 0; i < 3; i++ {
		if err := repo.Upsert(ctx, rec); err != nil {
			t.Fatalf("upsert %d failed: %v", i, err)
		}
	}

	got, err := repo.GetByID(ctx, "img-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Description != "a cat" || got.PlatformUsed != "Public" {
		t.Errorf("unexpected row: %+v", got)
	}

	var count int64
	if err := repo.db.Model(&domain.ImageRecord{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 row after repeated upserts, got %d", count)
	}
}

func TestImageRepositoryUpsertReplacesRow(t *testing.T) {
	repo := NewImageRepository(newTestDB(t))
	ctx := context.Background()

	if err := repo.Upsert(ctx, testImageRecord(t, "img-1", "first")); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if err := repo.Upsert(ctx, testImageRecord(t, "img-1", "second")); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	got, err := repo.GetByID(ctx, "img-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Description != "second" {
		t.Errorf("expected replaced description, got %q", got.Description)
	}
}

func TestImageRepositoryGetByIDNotFound(t *testing.T) {
	repo := NewImageRepository(newTestDB(t))

	_, err := repo.GetByID(context.Background(), "nope")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestClassifiedImageRepositoryRoundTrip(t *testing.T) {
	repo := NewClassifiedImageRepository(newTestDB(t))
	ctx := context.Background()

	urlVO, err := domain.NewImageURL("https://example.com/cat.png")
	if err != nil {
		t.Fatalf("invalid url: %v", err)
	}
	data, err := domain.NewBase64Data("aGVsbG8=")
	if err != nil {
		t.Fatalf("invalid data: %v", err)
	}
	result, err := domain.NewClassificationResult("person, food")
	if err != nil {
		t.Fatalf("invalid result: %v", err)
	}
	rec := domain.NewClassifiedImageRecord("cls-1", urlVO, data, result, time.Now().UTC())

	if err := repo.Upsert(ctx, rec); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	got, err := repo.GetByID(ctx, "cls-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ClassificationResult != "Food, Person" {
		t.Errorf("expected normalized result, got %q", got.ClassificationResult)
	}

	_, err = repo.GetByID(ctx, "cls-2")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
