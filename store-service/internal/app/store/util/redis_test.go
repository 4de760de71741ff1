package util

import (
	"context"
	"testing"
	"time"

	"smarttech/store-service/internal/app/store/entity"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisClient(t *testing.T) (*RedisClient, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client, err := NewRedisClient(mr.Addr(), "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	return client, mr
}

func TestRedisClient_CategoriesRoundTrip(t *testing.T) {
	client, _ := newTestRedisClient(t)
	ctx := context.Background()

	categories := []entity.Category{
		{ID: uuid.New(), Name: "Смартфоны"},
		{ID: uuid.New(), Name: "Ноутбуки"},
	}

	err := client.SetCategories(ctx, categories, time.Hour)
	assert.NoError(t, err)

	got, err := client.GetCategories(ctx)
	assert.NoError(t, err)
	assert.Equal(t, categories, got)
}

func TestRedisClient_GetCategoriesMissReturnsNil(t *testing.T) {
	client, _ := newTestRedisClient(t)

	got, err := client.GetCategories(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisClient_DeleteCategories(t *testing.T) {
	client, _ := newTestRedisClient(t)
	ctx := context.Background()

	categories := []entity.Category{{ID: uuid.New(), Name: "Аксессуары"}}
	require.NoError(t, client.SetCategories(ctx, categories, time.Hour))

	err := client.DeleteCategories(ctx)
	assert.NoError(t, err)

	got, err := client.GetCategories(ctx)
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisClient_CategoriesExpire(t *testing.T) {
	client, mr := newTestRedisClient(t)
	ctx := context.Background()

	categories := []entity.Category{{ID: uuid.New(), Name: "Планшеты"}}
	require.NoError(t, client.SetCategories(ctx, categories, time.Minute))

	// miniredis позволяет промотать время вперед
	mr.FastForward(2 * time.Minute)

	got, err := client.GetCategories(ctx)
	assert.NoError(t, err)
	assert.Nil(t, got)
}
