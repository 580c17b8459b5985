package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/todo-api/internal/logger"
	"github.com/sbilibin2017/todo-api/internal/models"
	"github.com/segmentio/kafka-go"
)

var (
	// ErrTodoNotFound is returned when a todo does not exist or belongs to another user.
	ErrTodoNotFound = errors.New("todo item not found")
)

// TodoReader defines read operations for todos.
type TodoReader interface {
	ListByUserID(ctx context.Context, userID int64) ([]models.TodoDB, error) // Returns all todos of a user
	GetByID(ctx context.Context, id, userID int64) (*models.TodoDB, error)   // Returns one todo scoped to a user
}

// TodoWriter defines write operations for todos.
type TodoWriter interface {
	Save(ctx context.Context, userID int64, title, description string, isCompleted bool) (*models.TodoDB, error)       // Inserts a todo
	Update(ctx context.Context, id, userID int64, title, description string, isCompleted bool) (*models.TodoDB, error) // Overwrites a todo
	Delete(ctx context.Context, id, userID int64) (bool, error)                                                        // Removes a todo
}

// TodoCache caches per-user todo lists.
type TodoCache interface {
	GetByUserID(ctx context.Context, userID int64) ([]models.TodoDB, error)     // Returns cached list or nil on miss
	SetByUserID(ctx context.Context, userID int64, todos []models.TodoDB) error // Stores the list
	DeleteByUserID(ctx context.Context, userID int64) error                     // Invalidates the list
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// TodoService handles todo CRUD, list caching and Kafka event publishing.
type TodoService struct {
	readRepo    TodoReader
	writeRepo   TodoWriter
	cacheRepo   TodoCache
	kafkaWriter KafkaWriter
}

// NewTodoService creates a new TodoService.
func NewTodoService(
	readRepo TodoReader,
	writeRepo TodoWriter,
	cacheRepo TodoCache,
	kafkaWriter KafkaWriter,
) *TodoService {
	return &TodoService{
		readRepo:    readRepo,
		writeRepo:   writeRepo,
		cacheRepo:   cacheRepo,
		kafkaWriter: kafkaWriter,
	}
}

// publishEvent publishes a todo change event to Kafka.
func (s *TodoService) publishEvent(ctx context.Context, operation string, todoID, userID int64) {
	if s.kafkaWriter == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping publishing", "operation", operation, "todo_id", todoID)
		return
	}

	event := models.TodoEvent{
		EventID:   uuid.NewString(),
		Timestamp: time.Now().Unix(),
		Operation: operation,
		TodoID:    todoID,
		UserID:    userID,
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("Failed to marshal todo event for Kafka", "event_id", event.EventID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.EventID),
		Value: data,
	}

	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish todo event to Kafka", "event_id", event.EventID, "error", err)
	} else {
		logger.Log.Infow("Todo event published to Kafka", "event_id", event.EventID, "operation", operation)
	}
}

// invalidateCache drops the cached list for a user. Best effort only.
func (s *TodoService) invalidateCache(ctx context.Context, userID int64) {
	if s.cacheRepo == nil {
		return
	}
	if err := s.cacheRepo.DeleteByUserID(ctx, userID); err != nil {
		logger.Log.Errorw("failed to invalidate todo cache", "userID", userID, "error", err)
	}
}

// List returns all todos owned by the user, reading through the cache.
func (s *TodoService) List(ctx context.Context, userID int64) ([]models.TodoDB, error) {
	if s.cacheRepo != nil {
		cached, err := s.cacheRepo.GetByUserID(ctx, userID)
		if err != nil {
			logger.Log.Errorw("failed to read todo cache", "userID", userID, "error", err)
		}
		if cached != nil {
			return cached, nil
		}
	}

	todos, err := s.readRepo.ListByUserID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to list todos", "userID", userID, "error", err)
		return nil, err
	}

	if s.cacheRepo != nil {
		if err := s.cacheRepo.SetByUserID(ctx, userID, todos); err != nil {
			logger.Log.Errorw("failed to write todo cache", "userID", userID, "error", err)
		}
	}

	return todos, nil
}

// GetByID returns one todo owned by the user.
func (s *TodoService) GetByID(ctx context.Context, id, userID int64) (*models.TodoDB, error) {
	todo, err := s.readRepo.GetByID(ctx, id, userID)
	if err != nil {
		logger.Log.Errorw("failed to get todo", "id", id, "userID", userID, "error", err)
		return nil, err
	}
	if todo == nil {
		return nil, ErrTodoNotFound
	}
	return todo, nil
}

// Create inserts a new todo owned by the user and publishes a "created" event.
func (s *TodoService) Create(ctx context.Context, userID int64, title, description string, isCompleted bool) (*models.TodoDB, error) {
	todo, err := s.writeRepo.Save(ctx, userID, title, description, isCompleted)
	if err != nil {
		logger.Log.Errorw("failed to create todo", "userID", userID, "error", err)
		return nil, err
	}

	s.invalidateCache(ctx, userID)
	s.publishEvent(ctx, "created", todo.ID, userID)

	return todo, nil
}

// Update overwrites the todo fields and publishes an "updated" event.
// The lookup and the mutation are two separate statements with no lock in
// between; a concurrent delete can void the update after the lookup passed.
func (s *TodoService) Update(ctx context.Context, id, userID int64, title, description string, isCompleted bool) (*models.TodoDB, error) {
	existing, err := s.readRepo.GetByID(ctx, id, userID)
	if err != nil {
		logger.Log.Errorw("failed to get todo before update", "id", id, "userID", userID, "error", err)
		return nil, err
	}
	if existing == nil {
		return nil, ErrTodoNotFound
	}

	todo, err := s.writeRepo.Update(ctx, id, userID, title, description, isCompleted)
	if err != nil {
		logger.Log.Errorw("failed to update todo", "id", id, "userID", userID, "error", err)
		return nil, err
	}
	if todo == nil {
		// Row vanished between the lookup and the update.
		return nil, ErrTodoNotFound
	}

	s.invalidateCache(ctx, userID)
	s.publishEvent(ctx, "updated", todo.ID, userID)

	return todo, nil
}

// Delete removes the todo and publishes a "deleted" event.
func (s *TodoService) Delete(ctx context.Context, id, userID int64) error {
	existing, err := s.readRepo.GetByID(ctx, id, userID)
	if err != nil {
		logger.Log.Errorw("failed to get todo before delete", "id", id, "userID", userID, "error", err)
		return err
	}
	if existing == nil {
		return ErrTodoNotFound
	}

	deleted, err := s.writeRepo.Delete(ctx, id, userID)
	if err != nil {
		logger.Log.Errorw("failed to delete todo", "id", id, "userID", userID, "error", err)
		return err
	}
	if !deleted {
		return ErrTodoNotFound
	}

	s.invalidateCache(ctx, userID)
	s.publishEvent(ctx, "deleted", id, userID)

	return nil
}
