package storage

import (
	"context"

	"github.com/ButyrinIA/blog/internal/models"
)

// PostFilter ограничивает выборку постов
type PostFilter struct {
	Author *int64
}

// CommentFilter ограничивает выборку комментариев
type CommentFilter struct {
	Post *int64
}

// Списки columns содержат имена полей GraphQL; пустой список означает "все колонки".
// FindByID возвращает (nil, nil), если запись не найдена.

type UserRepository interface {
	FindAll(ctx context.Context, limit, offset int, columns []string) ([]*models.User, error)
	FindByID(ctx context.Context, id int64, columns []string) (*models.User, error)
	FindByIDs(ctx context.Context, ids []int64, columns []string) ([]*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User, columns ...string) error
	Delete(ctx context.Context, id int64) (bool, error)
}

type PostRepository interface {
	FindAll(ctx context.Context, filter PostFilter, limit, offset int, columns []string) ([]*models.Post, error)
	FindByID(ctx context.Context, id int64, columns []string) (*models.Post, error)
	Create(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, post *models.Post, columns ...string) error
	Delete(ctx context.Context, id int64) (bool, error)
}

type CommentRepository interface {
	FindAll(ctx context.Context, filter CommentFilter, limit, offset int, columns []string) ([]*models.Comment, error)
	FindByID(ctx context.Context, id int64, columns []string) (*models.Comment, error)
	Create(ctx context.Context, comment *models.Comment) error
	Update(ctx context.Context, comment *models.Comment, columns ...string) error
	Delete(ctx context.Context, id int64) (bool, error)
}

type Storage interface {
	Users() UserRepository
	Posts() PostRepository
	Comments() CommentRepository

	// InTx выполняет fn в одной транзакции; ошибка fn откатывает все изменения
	InTx(ctx context.Context, fn func(tx Storage) error) error
	Close() error
}
