package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ButyrinIA/blog/internal/models"
	"github.com/ButyrinIA/blog/internal/storage"
)

func newTestStore(t *testing.T) storage.Storage {
	t.Helper()
	store, err := New(":memory:")
	if err != nil {
		t.Fatalf("не удалось открыть sqlite: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func createUser(t *testing.T, store storage.Storage, name, email string) *models.User {
	t.Helper()
	user := &models.User{Name: name, Email: email, Password: "hash"}
	if err := store.Users().Create(context.Background(), user); err != nil {
		t.Fatalf("не удалось создать пользователя: %v", err)
	}
	return user
}

func createPost(t *testing.T, store storage.Storage, author int64, title string) *models.Post {
	t.Helper()
	post := &models.Post{Title: title, Content: "Текст поста", Author: author}
	if err := store.Posts().Create(context.Background(), post); err != nil {
		t.Fatalf("не удалось создать пост: %v", err)
	}
	return post
}

func TestUserCRUD(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := createUser(t, store, "Ana", "ana@mail.com")
	assert.NotZero(t, user.ID)
	assert.False(t, user.CreatedAt.IsZero())

	found, err := store.Users().FindByID(ctx, user.ID, nil)
	assert.NoError(t, err)
	assert.Equal(t, "Ana", found.Name)
	assert.Equal(t, "ana@mail.com", found.Email)

	found.Name = "Анна"
	err = store.Users().Update(ctx, found, "name")
	assert.NoError(t, err)

	found, err = store.Users().FindByID(ctx, user.ID, nil)
	assert.NoError(t, err)
	assert.Equal(t, "Анна", found.Name)

	deleted, err := store.Users().Delete(ctx, user.ID)
	assert.NoError(t, err)
	assert.True(t, deleted)

	found, err = store.Users().FindByID(ctx, user.ID, nil)
	assert.NoError(t, err)
	assert.Nil(t, found)
}

func TestFindByID_Missing(t *testing.T) {
	store := newTestStore(t)

	user, err := store.Users().FindByID(context.Background(), 404, nil)
	assert.NoError(t, err)
	assert.Nil(t, user)

	post, err := store.Posts().FindByID(context.Background(), 404, nil)
	assert.NoError(t, err)
	assert.Nil(t, post)
}

func TestProjection_SelectsOnlyRequestedColumns(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := createUser(t, store, "Ana", "ana@mail.com")

	found, err := store.Users().FindByID(ctx, user.ID, []string{"id", "name"})
	assert.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
	assert.Equal(t, "Ana", found.Name)
	// невыбранные колонки остаются нулевыми
	assert.Empty(t, found.Email)
	assert.Empty(t, found.Password)
	assert.True(t, found.CreatedAt.IsZero())
}

func TestProjection_PasswordNeverSelectable(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := createUser(t, store, "Ana", "ana@mail.com")

	// имя password не входит в карту колонок и отбрасывается
	found, err := store.Users().FindByID(ctx, user.ID, []string{"id", "password"})
	assert.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
	assert.Empty(t, found.Password)

	// хэш доступен только точечному запросу по email для проверки пароля
	byEmail, err := store.Users().FindByEmail(ctx, "ana@mail.com")
	assert.NoError(t, err)
	assert.Equal(t, "hash", byEmail.Password)
}

func TestProjection_GraphQLNamesMapToColumns(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := createUser(t, store, "Ana", "ana@mail.com")
	post := createPost(t, store, user.ID, "Первый пост")

	found, err := store.Posts().FindByID(ctx, post.ID, []string{"id", "author", "createdAt"})
	assert.NoError(t, err)
	assert.Equal(t, user.ID, found.Author)
	assert.False(t, found.CreatedAt.IsZero())
	assert.Empty(t, found.Title)
}

func TestPostPagination_OrderedByID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := createUser(t, store, "Ana", "ana@mail.com")
	for _, title := range []string{"Первый", "Второй", "Третий", "Четвертый"} {
		createPost(t, store, user.ID, title)
	}

	posts, err := store.Posts().FindAll(ctx, storage.PostFilter{}, 2, 1, nil)
	assert.NoError(t, err)
	assert.Len(t, posts, 2)
	assert.Equal(t, "Второй", posts[0].Title)
	assert.Equal(t, "Третий", posts[1].Title)
}

func TestPostFilter_ByAuthor(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	ana := createUser(t, store, "Ana", "ana@mail.com")
	ivan := createUser(t, store, "Иван", "ivan@mail.com")
	createPost(t, store, ana.ID, "Пост Аны")
	createPost(t, store, ivan.ID, "Пост Ивана")

	posts, err := store.Posts().FindAll(ctx, storage.PostFilter{Author: &ana.ID}, 10, 0, nil)
	assert.NoError(t, err)
	assert.Len(t, posts, 1)
	assert.Equal(t, "Пост Аны", posts[0].Title)
}

func TestCommentFilter_ByPost(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := createUser(t, store, "Ana", "ana@mail.com")
	first := createPost(t, store, user.ID, "Первый")
	second := createPost(t, store, user.ID, "Второй")

	for _, post := range []*models.Post{first, first, second} {
		comment := &models.Comment{Comment: "отлично", User: user.ID, Post: post.ID}
		assert.NoError(t, store.Comments().Create(ctx, comment))
	}

	comments, err := store.Comments().FindAll(ctx, storage.CommentFilter{Post: &first.ID}, 10, 0, nil)
	assert.NoError(t, err)
	assert.Len(t, comments, 2)
	for _, comment := range comments {
		assert.Equal(t, first.ID, comment.Post)
	}
}

func TestFindByIDs(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	ana := createUser(t, store, "Ana", "ana@mail.com")
	ivan := createUser(t, store, "Иван", "ivan@mail.com")

	users, err := store.Users().FindByIDs(ctx, []int64{ana.ID, ivan.ID, 404}, []string{"id", "name"})
	assert.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestPartialUpdate_LeavesOtherColumnsIntact(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := createUser(t, store, "Ana", "ana@mail.com")
	post := createPost(t, store, user.ID, "Первый пост")

	post.Title = "Новый заголовок"
	post.Content = "это не должно сохраниться"
	err := store.Posts().Update(ctx, post, "title")
	assert.NoError(t, err)

	found, err := store.Posts().FindByID(ctx, post.ID, nil)
	assert.NoError(t, err)
	assert.Equal(t, "Новый заголовок", found.Title)
	assert.Equal(t, "Текст поста", found.Content)
	assert.False(t, found.UpdatedAt.Before(found.CreatedAt))
}

func TestDelete_SecondCallReturnsFalse(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := createUser(t, store, "Ana", "ana@mail.com")
	post := createPost(t, store, user.ID, "Первый пост")

	deleted, err := store.Posts().Delete(ctx, post.ID)
	assert.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = store.Posts().Delete(ctx, post.ID)
	assert.NoError(t, err)
	assert.False(t, deleted)
}

func TestInTx_RollbackOnError(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	boom := errors.New("что-то пошло не так")
	err := store.InTx(ctx, func(tx storage.Storage) error {
		user := &models.User{Name: "Ana", Email: "ana@mail.com", Password: "hash"}
		if err := tx.Users().Create(ctx, user); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	users, err := store.Users().FindAll(ctx, 10, 0, nil)
	assert.NoError(t, err)
	assert.Empty(t, users)
}

func TestInTx_Commit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.InTx(ctx, func(tx storage.Storage) error {
		user := &models.User{Name: "Ana", Email: "ana@mail.com", Password: "hash"}
		if err := tx.Users().Create(ctx, user); err != nil {
			return err
		}
		post := &models.Post{Title: "Первый пост", Content: "Текст", Author: user.ID}
		return tx.Posts().Create(ctx, post)
	})
	assert.NoError(t, err)

	posts, err := store.Posts().FindAll(ctx, storage.PostFilter{}, 10, 0, nil)
	assert.NoError(t, err)
	assert.Len(t, posts, 1)
}

func TestInTx_Nested(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.InTx(ctx, func(tx storage.Storage) error {
		return tx.InTx(ctx, func(inner storage.Storage) error {
			user := &models.User{Name: "Ana", Email: "ana@mail.com", Password: "hash"}
			return inner.Users().Create(ctx, user)
		})
	})
	assert.NoError(t, err)

	users, err := store.Users().FindAll(ctx, 10, 0, nil)
	assert.NoError(t, err)
	assert.Len(t, users, 1)
}
