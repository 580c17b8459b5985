package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sbilibin2017/todo-api/internal/models"
	"github.com/sbilibin2017/todo-api/internal/services"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

func newTodoServiceMocks(t *testing.T) (*services.MockTodoReader, *services.MockTodoWriter, *services.MockTodoCache, *services.MockKafkaWriter, *services.TodoService) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	reader := services.NewMockTodoReader(ctrl)
	writer := services.NewMockTodoWriter(ctrl)
	cache := services.NewMockTodoCache(ctrl)
	kafkaWriter := services.NewMockKafkaWriter(ctrl)

	svc := services.NewTodoService(reader, writer, cache, kafkaWriter)
	return reader, writer, cache, kafkaWriter, svc
}

func TestTodoService_List(t *testing.T) {
	ctx := context.Background()
	userID := int64(42)
	todos := []models.TodoDB{
		{ID: 1, Title: "Buy milk", UserID: userID, CreatedAt: time.Now().UTC()},
		{ID: 2, Title: "Walk the dog", UserID: userID, CreatedAt: time.Now().UTC()},
	}

	t.Run("cache hit", func(t *testing.T) {
		_, _, cache, _, svc := newTodoServiceMocks(t)

		cache.EXPECT().GetByUserID(gomock.Any(), userID).Return(todos, nil)

		got, err := svc.List(ctx, userID)
		assert.NoError(t, err)
		assert.Equal(t, todos, got)
	})

	t.Run("cache miss reads store and fills cache", func(t *testing.T) {
		reader, _, cache, _, svc := newTodoServiceMocks(t)

		cache.EXPECT().GetByUserID(gomock.Any(), userID).Return(nil, nil)
		reader.EXPECT().ListByUserID(gomock.Any(), userID).Return(todos, nil)
		cache.EXPECT().SetByUserID(gomock.Any(), userID, todos).Return(nil)

		got, err := svc.List(ctx, userID)
		assert.NoError(t, err)
		assert.Equal(t, todos, got)
	})

	t.Run("cache failure falls back to store", func(t *testing.T) {
		reader, _, cache, _, svc := newTodoServiceMocks(t)

		cache.EXPECT().GetByUserID(gomock.Any(), userID).Return(nil, errors.New("redis down"))
		reader.EXPECT().ListByUserID(gomock.Any(), userID).Return(todos, nil)
		cache.EXPECT().SetByUserID(gomock.Any(), userID, todos).Return(errors.New("redis down"))

		got, err := svc.List(ctx, userID)
		assert.NoError(t, err)
		assert.Equal(t, todos, got)
	})

	t.Run("store error", func(t *testing.T) {
		reader, _, cache, _, svc := newTodoServiceMocks(t)

		cache.EXPECT().GetByUserID(gomock.Any(), userID).Return(nil, nil)
		reader.EXPECT().ListByUserID(gomock.Any(), userID).Return(nil, errors.New("db error"))

		got, err := svc.List(ctx, userID)
		assert.Error(t, err)
		assert.Nil(t, got)
	})
}

func TestTodoService_GetByID(t *testing.T) {
	ctx := context.Background()
	userID := int64(42)
	todo := &models.TodoDB{ID: 1, Title: "Buy milk", UserID: userID}

	t.Run("found", func(t *testing.T) {
		reader, _, _, _, svc := newTodoServiceMocks(t)

		reader.EXPECT().GetByID(gomock.Any(), int64(1), userID).Return(todo, nil)

		got, err := svc.GetByID(ctx, 1, userID)
		assert.NoError(t, err)
		assert.Equal(t, todo, got)
	})

	t.Run("not found", func(t *testing.T) {
		reader, _, _, _, svc := newTodoServiceMocks(t)

		reader.EXPECT().GetByID(gomock.Any(), int64(99), userID).Return(nil, nil)

		got, err := svc.GetByID(ctx, 99, userID)
		assert.ErrorIs(t, err, services.ErrTodoNotFound)
		assert.Nil(t, got)
	})

	t.Run("store error", func(t *testing.T) {
		reader, _, _, _, svc := newTodoServiceMocks(t)

		reader.EXPECT().GetByID(gomock.Any(), int64(1), userID).Return(nil, errors.New("db error"))

		got, err := svc.GetByID(ctx, 1, userID)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, services.ErrTodoNotFound)
		assert.Nil(t, got)
	})
}

func TestTodoService_Create(t *testing.T) {
	ctx := context.Background()
	userID := int64(42)
	created := &models.TodoDB{ID: 1, Title: "Buy milk", Description: "2L", UserID: userID, CreatedAt: time.Now().UTC()}

	t.Run("success publishes event and invalidates cache", func(t *testing.T) {
		_, writer, cache, kafkaWriter, svc := newTodoServiceMocks(t)

		writer.EXPECT().
			Save(gomock.Any(), userID, "Buy milk", "2L", false).
			Return(created, nil)
		cache.EXPECT().DeleteByUserID(gomock.Any(), userID).Return(nil)
		kafkaWriter.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(nil)

		got, err := svc.Create(ctx, userID, "Buy milk", "2L", false)
		assert.NoError(t, err)
		assert.Equal(t, created, got)
	})

	t.Run("store error", func(t *testing.T) {
		_, writer, _, _, svc := newTodoServiceMocks(t)

		writer.EXPECT().
			Save(gomock.Any(), userID, "Buy milk", "2L", false).
			Return(nil, errors.New("db error"))

		got, err := svc.Create(ctx, userID, "Buy milk", "2L", false)
		assert.Error(t, err)
		assert.Nil(t, got)
	})

	t.Run("publish failure does not fail the request", func(t *testing.T) {
		_, writer, cache, kafkaWriter, svc := newTodoServiceMocks(t)

		writer.EXPECT().
			Save(gomock.Any(), userID, "Buy milk", "2L", false).
			Return(created, nil)
		cache.EXPECT().DeleteByUserID(gomock.Any(), userID).Return(nil)
		kafkaWriter.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(errors.New("kafka down"))

		got, err := svc.Create(ctx, userID, "Buy milk", "2L", false)
		assert.NoError(t, err)
		assert.Equal(t, created, got)
	})
}

func TestTodoService_Update(t *testing.T) {
	ctx := context.Background()
	userID := int64(42)
	existing := &models.TodoDB{ID: 1, Title: "Buy milk", UserID: userID}
	now := time.Now().UTC()
	updated := &models.TodoDB{ID: 1, Title: "Buy bread", Description: "rye", IsCompleted: true, UserID: userID, UpdatedAt: &now}

	t.Run("success", func(t *testing.T) {
		reader, writer, cache, kafkaWriter, svc := newTodoServiceMocks(t)

		reader.EXPECT().GetByID(gomock.Any(), int64(1), userID).Return(existing, nil)
		writer.EXPECT().
			Update(gomock.Any(), int64(1), userID, "Buy bread", "rye", true).
			Return(updated, nil)
		cache.EXPECT().DeleteByUserID(gomock.Any(), userID).Return(nil)
		kafkaWriter.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(nil)

		got, err := svc.Update(ctx, 1, userID, "Buy bread", "rye", true)
		assert.NoError(t, err)
		assert.Equal(t, updated, got)
	})

	t.Run("not found", func(t *testing.T) {
		reader, _, _, _, svc := newTodoServiceMocks(t)

		reader.EXPECT().GetByID(gomock.Any(), int64(99), userID).Return(nil, nil)

		got, err := svc.Update(ctx, 99, userID, "Buy bread", "rye", true)
		assert.ErrorIs(t, err, services.ErrTodoNotFound)
		assert.Nil(t, got)
	})

	t.Run("row vanished between lookup and update", func(t *testing.T) {
		reader, writer, _, _, svc := newTodoServiceMocks(t)

		reader.EXPECT().GetByID(gomock.Any(), int64(1), userID).Return(existing, nil)
		writer.EXPECT().
			Update(gomock.Any(), int64(1), userID, "Buy bread", "rye", true).
			Return(nil, nil)

		got, err := svc.Update(ctx, 1, userID, "Buy bread", "rye", true)
		assert.ErrorIs(t, err, services.ErrTodoNotFound)
		assert.Nil(t, got)
	})

	t.Run("store error", func(t *testing.T) {
		reader, writer, _, _, svc := newTodoServiceMocks(t)

		reader.EXPECT().GetByID(gomock.Any(), int64(1), userID).Return(existing, nil)
		writer.EXPECT().
			Update(gomock.Any(), int64(1), userID, "Buy bread", "rye", true).
			Return(nil, errors.New("db error"))

		got, err := svc.Update(ctx, 1, userID, "Buy bread", "rye", true)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, services.ErrTodoNotFound)
		assert.Nil(t, got)
	})
}

func TestTodoService_Delete(t *testing.T) {
	ctx := context.Background()
	userID := int64(42)
	existing := &models.TodoDB{ID: 1, Title: "Buy milk", UserID: userID}

	t.Run("success", func(t *testing.T) {
		reader, writer, cache, kafkaWriter, svc := newTodoServiceMocks(t)

		reader.EXPECT().GetByID(gomock.Any(), int64(1), userID).Return(existing, nil)
		writer.EXPECT().Delete(gomock.Any(), int64(1), userID).Return(true, nil)
		cache.EXPECT().DeleteByUserID(gomock.Any(), userID).Return(nil)
		kafkaWriter.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(nil)

		err := svc.Delete(ctx, 1, userID)
		assert.NoError(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		reader, _, _, _, svc := newTodoServiceMocks(t)

		reader.EXPECT().GetByID(gomock.Any(), int64(99), userID).Return(nil, nil)

		err := svc.Delete(ctx, 99, userID)
		assert.ErrorIs(t, err, services.ErrTodoNotFound)
	})

	t.Run("row vanished between lookup and delete", func(t *testing.T) {
		reader, writer, _, _, svc := newTodoServiceMocks(t)

		reader.EXPECT().GetByID(gomock.Any(), int64(1), userID).Return(existing, nil)
		writer.EXPECT().Delete(gomock.Any(), int64(1), userID).Return(false, nil)

		err := svc.Delete(ctx, 1, userID)
		assert.ErrorIs(t, err, services.ErrTodoNotFound)
	})

	t.Run("store error", func(t *testing.T) {
		reader, writer, _, _, svc := newTodoServiceMocks(t)

		reader.EXPECT().GetByID(gomock.Any(), int64(1), userID).Return(existing, nil)
		writer.EXPECT().Delete(gomock.Any(), int64(1), userID).Return(false, errors.New("db error"))

		err := svc.Delete(ctx, 1, userID)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, services.ErrTodoNotFound)
	})
}
