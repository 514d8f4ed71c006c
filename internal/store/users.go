package store

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"todoapi/internal/auth"
	"todoapi/internal/db"
	"todoapi/internal/models"
)

// UserStore persists user records and their live token lists. The token
// codec is injected at construction; the store never reads process-wide
// state.
type UserStore struct {
	users *mongo.Collection
	codec *auth.TokenCodec
}

func NewUserStore(m *db.Mongo, codec *auth.TokenCodec) *UserStore {
	return &UserStore{users: m.Users, codec: codec}
}

// Create validates the registration input, hashes the password and inserts
// the user. Email uniqueness is enforced by the collection's unique index
// and surfaced as ErrEmailTaken.
func (s *UserStore) Create(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, ErrInvalidEmail
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}
	if len(strings.TrimSpace(password)) < 6 {
		return nil, ErrPasswordTooShort
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("store: hash password: %w", err)
	}

	user := &models.User{
		ID:           primitive.NewObjectID(),
		Email:        email,
		PasswordHash: hash,
		Tokens:       []models.UserToken{},
	}

	if _, err := s.users.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("store: insert user: %w", err)
	}

	return user, nil
}

// FindByCredentials looks a user up by email and checks the password.
// A missing email and a wrong password fail identically.
func (s *UserStore) FindByCredentials(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	err := s.users.FindOne(ctx, bson.M{"email": strings.TrimSpace(email)}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("store: find user by email: %w", err)
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

// FindByToken resolves a raw token to its user. The token must verify
// cryptographically AND still be present in the user's token list with the
// "auth" scope; a valid signature on an already-revoked token is not enough.
// Every failure mode collapses to ErrNotFound.
func (s *UserStore) FindByToken(ctx context.Context, token string) (*models.User, error) {
	subject, access, err := s.codec.Verify(token)
	if err != nil || access != auth.AccessAuth {
		return nil, ErrNotFound
	}

	oid, err := primitive.ObjectIDFromHex(subject)
	if err != nil {
		return nil, ErrNotFound
	}

	filter := bson.M{
		"_id":           oid,
		"tokens.token":  token,
		"tokens.access": auth.AccessAuth,
	}

	var user models.User
	if err := s.users.FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, ErrNotFound
	}

	return &user, nil
}

// IssueToken signs a fresh token for the user, appends it to the stored
// token list and returns it.
func (s *UserStore) IssueToken(ctx context.Context, user *models.User) (string, error) {
	token, err := s.codec.Issue(user.ID.Hex())
	if err != nil {
		return "", fmt.Errorf("store: sign token: %w", err)
	}

	entry := models.UserToken{Access: auth.AccessAuth, Token: token}
	update := bson.M{"$push": bson.M{"tokens": entry}}
	if _, err := s.users.UpdateByID(ctx, user.ID, update); err != nil {
		return "", fmt.Errorf("store: persist token: %w", err)
	}

	user.Tokens = append(user.Tokens, entry)
	return token, nil
}

// RevokeToken removes every entry matching the token from the user's token
// list. Revoking a token that is already gone is a no-op success.
func (s *UserStore) RevokeToken(ctx context.Context, user *models.User, token string) error {
	update := bson.M{"$pull": bson.M{"tokens": bson.M{"token": token}}}
	if _, err := s.users.UpdateByID(ctx, user.ID, update); err != nil {
		return fmt.Errorf("store: revoke token: %w", err)
	}

	kept := user.Tokens[:0]
	for _, entry := range user.Tokens {
		if entry.Token != token {
			kept = append(kept, entry)
		}
	}
	user.Tokens = kept

	return nil
}
