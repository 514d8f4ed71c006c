package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"todoapi/internal/db"
	"todoapi/internal/models"
)

// TodoStore persists todo documents. Ids are ObjectID hex strings; a
// malformed id is reported as ErrNotFound so callers cannot tell it apart
// from a missing document.
type TodoStore struct {
	todos *mongo.Collection
}

func NewTodoStore(m *db.Mongo) *TodoStore {
	return &TodoStore{todos: m.Todos}
}

func (s *TodoStore) Create(ctx context.Context, text string) (*models.Todo, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	todo := &models.Todo{
		ID:   primitive.NewObjectID(),
		Text: text,
	}

	if _, err := s.todos.InsertOne(ctx, todo); err != nil {
		return nil, fmt.Errorf("store: insert todo: %w", err)
	}

	return todo, nil
}

func (s *TodoStore) FindAll(ctx context.Context) ([]models.Todo, error) {
	cursor, err := s.todos.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("store: query todos: %w", err)
	}

	todos := []models.Todo{}
	if err := cursor.All(ctx, &todos); err != nil {
		return nil, fmt.Errorf("store: decode todos: %w", err)
	}

	return todos, nil
}

func (s *TodoStore) FindByID(ctx context.Context, id string) (*models.Todo, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var todo models.Todo
	if err := s.todos.FindOne(ctx, bson.M{"_id": oid}).Decode(&todo); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("store: find todo: %w", err)
	}

	return &todo, nil
}

// DeleteByID removes a todo and returns the deleted document.
func (s *TodoStore) DeleteByID(ctx context.Context, id string) (*models.Todo, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var todo models.Todo
	if err := s.todos.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&todo); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("store: delete todo: %w", err)
	}

	return &todo, nil
}

// UpdateByID applies a sanitized patch and returns the updated document.
func (s *TodoStore) UpdateByID(ctx context.Context, id string, patch TodoPatch) (*models.Todo, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	set := bson.M{
		"completed":   patch.Completed,
		"completedAt": patch.CompletedAt,
	}
	if patch.Text != nil {
		set["text"] = *patch.Text
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var todo models.Todo
	err = s.todos.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&todo)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("store: update todo: %w", err)
	}

	return &todo, nil
}
