package repository

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fixtureRecord struct {
	ID   int64  `gorm:"column:id;primaryKey"`
	Name string `gorm:"column:name"`
}

func (fixtureRecord) TableName() string { return "fixture_records" }

func openStore(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&fixtureRecord{}))
	return db
}

func TestBatchCreateAndCount(t *testing.T) {
	repo := ProvideStore[fixtureRecord](openStore(t))
	ctx := context.Background()

	records := make([]fixtureRecord, 0, 1200)
	for i := int64(1); i <= 1200; i++ {
		records = append(records, fixtureRecord{ID: i, Name: "r"})
	}
	assert.NoError(t, repo.BatchCreate(ctx, records))

	count, err := repo.Count(ctx, &fixtureRecord{})
	assert.NoError(t, err)
	assert.Equal(t, int64(1200), count)
}

func TestBatchCreateEmptyIsNoop(t *testing.T) {
	repo := ProvideStore[fixtureRecord](openStore(t))
	assert.NoError(t, repo.BatchCreate(context.Background(), nil))
}

func TestFindOneMissingReturnsNil(t *testing.T) {
	repo := ProvideStore[fixtureRecord](openStore(t))

	got, err := repo.FindOne(context.Background(), &fixtureRecord{ID: 99})
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestWithTrxRollsBack(t *testing.T) {
	db := openStore(t)
	repo := ProvideStore[fixtureRecord](db)
	ctx := context.Background()

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := repo.WithTrx(tx).Create(ctx, &fixtureRecord{ID: 1, Name: "a"}); err != nil {
			return err
		}
		return assert.AnError
	})
	assert.Error(t, err)

	count, err := repo.Count(ctx, &fixtureRecord{})
	assert.NoError(t, err)
	assert.Zero(t, count)
}

func TestCreateDuplicateKeyTranslated(t *testing.T) {
	repo := ProvideStore[fixtureRecord](openStore(t))
	ctx := context.Background()

	assert.NoError(t, repo.Create(ctx, &fixtureRecord{ID: 1, Name: "a"}))
	err := repo.Create(ctx, &fixtureRecord{ID: 1, Name: "b"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}
