package bunstore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/extra/bundebug"

	"github.com/ButyrinIA/blog/internal/models"
	"github.com/ButyrinIA/blog/internal/storage"
)

// Соответствие имен полей GraphQL колонкам таблиц. Неизвестные имена
// (поля-связи, служебные поля) отбрасываются; password недоступен намеренно.
var (
	userColumns = map[string]string{
		"id":        "id",
		"name":      "name",
		"email":     "email",
		"photo":     "photo",
		"createdAt": "created_at",
		"updatedAt": "updated_at",
	}
	postColumns = map[string]string{
		"id":        "id",
		"title":     "title",
		"content":   "content",
		"photo":     "photo",
		"author":    "author_id",
		"createdAt": "created_at",
		"updatedAt": "updated_at",
	}
	commentColumns = map[string]string{
		"id":        "id",
		"comment":   "comment",
		"user":      "user_id",
		"post":      "post_id",
		"createdAt": "created_at",
		"updatedAt": "updated_at",
	}
)

func mapColumns(names []string, allowed map[string]string) []string {
	var cols []string
	for _, name := range names {
		if col, ok := allowed[name]; ok {
			cols = append(cols, col)
		}
	}
	return cols
}

// Store реализует storage.Storage поверх bun; db может быть как *bun.DB,
// так и bun.Tx внутри транзакции
type Store struct {
	db bun.IDB
}

var _ storage.Storage = (*Store)(nil)

func New(db *bun.DB) *Store {
	db.AddQueryHook(bundebug.NewQueryHook(bundebug.FromEnv("BUNDEBUG")))
	return &Store{db: db}
}

func (s *Store) Users() storage.UserRepository       { return &userRepo{db: s.db} }
func (s *Store) Posts() storage.PostRepository       { return &postRepo{db: s.db} }
func (s *Store) Comments() storage.CommentRepository { return &commentRepo{db: s.db} }

func (s *Store) InTx(ctx context.Context, fn func(tx storage.Storage) error) error {
	db, ok := s.db.(*bun.DB)
	if !ok {
		// уже внутри транзакции
		return fn(s)
	}
	return db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		return fn(&Store{db: tx})
	})
}

func (s *Store) Close() error {
	if db, ok := s.db.(*bun.DB); ok {
		return db.Close()
	}
	return nil
}

type userRepo struct {
	db bun.IDB
}

func (r *userRepo) FindAll(ctx context.Context, limit, offset int, columns []string) ([]*models.User, error) {
	users := make([]*models.User, 0)
	q := r.db.NewSelect().Model(&users).Order("u.id ASC").Limit(limit).Offset(offset)
	if cols := mapColumns(columns, userColumns); len(cols) > 0 {
		q = q.Column(cols...)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepo) FindByID(ctx context.Context, id int64, columns []string) (*models.User, error) {
	user := new(models.User)
	q := r.db.NewSelect().Model(user).Where("u.id = ?", id)
	if cols := mapColumns(columns, userColumns); len(cols) > 0 {
		q = q.Column(cols...)
	}
	if err := q.Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func (r *userRepo) FindByIDs(ctx context.Context, ids []int64, columns []string) ([]*models.User, error) {
	users := make([]*models.User, 0, len(ids))
	q := r.db.NewSelect().Model(&users).Where("u.id IN (?)", bun.In(ids))
	if cols := mapColumns(columns, userColumns); len(cols) > 0 {
		q = q.Column(cols...)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, err
	}
	return users, nil
}

// FindByEmail читает все колонки, включая хэш пароля: он нужен для выпуска токена
func (r *userRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	user := new(models.User)
	err := r.db.NewSelect().Model(user).Where("u.email = ?", email).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func (r *userRepo) Create(ctx context.Context, user *models.User) error {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	_, err := r.db.NewInsert().Model(user).Returning("*").Exec(ctx)
	return err
}

func (r *userRepo) Update(ctx context.Context, user *models.User, columns ...string) error {
	user.UpdatedAt = time.Now()
	q := r.db.NewUpdate().Model(user).WherePK().Returning("*")
	if len(columns) > 0 {
		q = q.Column(append(columns, "updated_at")...)
	}
	_, err := q.Exec(ctx)
	return err
}

func (r *userRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.NewDelete().Model((*models.User)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

type postRepo struct {
	db bun.IDB
}

func (r *postRepo) FindAll(ctx context.Context, filter storage.PostFilter, limit, offset int, columns []string) ([]*models.Post, error) {
	posts := make([]*models.Post, 0)
	q := r.db.NewSelect().Model(&posts).Order("p.id ASC").Limit(limit).Offset(offset)
	if filter.Author != nil {
		q = q.Where("p.author_id = ?", *filter.Author)
	}
	if cols := mapColumns(columns, postColumns); len(cols) > 0 {
		q = q.Column(cols...)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepo) FindByID(ctx context.Context, id int64, columns []string) (*models.Post, error) {
	post := new(models.Post)
	q := r.db.NewSelect().Model(post).Where("p.id = ?", id)
	if cols := mapColumns(columns, postColumns); len(cols) > 0 {
		q = q.Column(cols...)
	}
	if err := q.Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return post, nil
}

func (r *postRepo) Create(ctx context.Context, post *models.Post) error {
	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now
	_, err := r.db.NewInsert().Model(post).Returning("*").Exec(ctx)
	return err
}

func (r *postRepo) Update(ctx context.Context, post *models.Post, columns ...string) error {
	post.UpdatedAt = time.Now()
	q := r.db.NewUpdate().Model(post).WherePK().Returning("*")
	if len(columns) > 0 {
		q = q.Column(append(columns, "updated_at")...)
	}
	_, err := q.Exec(ctx)
	return err
}

func (r *postRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.NewDelete().Model((*models.Post)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

type commentRepo struct {
	db bun.IDB
}

func (r *commentRepo) FindAll(ctx context.Context, filter storage.CommentFilter, limit, offset int, columns []string) ([]*models.Comment, error) {
	comments := make([]*models.Comment, 0)
	q := r.db.NewSelect().Model(&comments).Order("c.id ASC").Limit(limit).Offset(offset)
	if filter.Post != nil {
		q = q.Where("c.post_id = ?", *filter.Post)
	}
	if cols := mapColumns(columns, commentColumns); len(cols) > 0 {
		q = q.Column(cols...)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepo) FindByID(ctx context.Context, id int64, columns []string) (*models.Comment, error) {
	comment := new(models.Comment)
	q := r.db.NewSelect().Model(comment).Where("c.id = ?", id)
	if cols := mapColumns(columns, commentColumns); len(cols) > 0 {
		q = q.Column(cols...)
	}
	if err := q.Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return comment, nil
}

func (r *commentRepo) Create(ctx context.Context, comment *models.Comment) error {
	now := time.Now()
	comment.CreatedAt = now
	comment.UpdatedAt = now
	_, err := r.db.NewInsert().Model(comment).Returning("*").Exec(ctx)
	return err
}

func (r *commentRepo) Update(ctx context.Context, comment *models.Comment, columns ...string) error {
	comment.UpdatedAt = time.Now()
	q := r.db.NewUpdate().Model(comment).WherePK().Returning("*")
	if len(columns) > 0 {
		q = q.Column(append(columns, "updated_at")...)
	}
	_, err := q.Exec(ctx)
	return err
}

func (r *commentRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.NewDelete().Model((*models.Comment)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
