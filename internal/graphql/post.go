package graphql

import (
	"github.com/graphql-go/graphql"

	"github.com/ButyrinIA/blog/internal/models"
	"github.com/ButyrinIA/blog/internal/storage"
)

// postFields: comments — поле-связь; author остается, это FK-колонка,
// без которой вложенный резолвер автора не получит ключ
func postFields(info graphql.ResolveInfo) []string {
	return projectFields(info, []string{"id"}, []string{"comments"})
}

func (r *Resolver) resolvePosts(p graphql.ResolveParams) (interface{}, error) {
	first, offset := pagination(p.Args)
	return r.Storage.Posts().FindAll(p.Context, storage.PostFilter{}, first, offset, postFields(p.Info))
}

func (r *Resolver) resolvePost(p graphql.ResolveParams) (interface{}, error) {
	id, err := parseID(p.Args["id"])
	if err != nil {
		return nil, err
	}
	post, err := r.Storage.Posts().FindByID(p.Context, id, postFields(p.Info))
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, &NotFoundError{Entity: "Post", ID: id}
	}
	return post, nil
}

func (r *Resolver) resolvePostAuthor(p graphql.ResolveParams) (interface{}, error) {
	post, ok := p.Source.(*models.Post)
	if !ok {
		return nil, &BadInputError{Message: "author can only be resolved on a post"}
	}
	return r.loadUser(p.Context, post.Author)
}

func (r *Resolver) resolvePostComments(p graphql.ResolveParams) (interface{}, error) {
	post, ok := p.Source.(*models.Post)
	if !ok {
		return nil, &BadInputError{Message: "comments can only be resolved on a post"}
	}
	first, offset := pagination(p.Args)
	filter := storage.CommentFilter{Post: &post.ID}
	return r.Storage.Comments().FindAll(p.Context, filter, first, offset, commentFields(p.Info))
}

func (r *Resolver) mutateCreatePost(p graphql.ResolveParams) (interface{}, error) {
	authUser, err := requireAuthUser(p.Context)
	if err != nil {
		return nil, err
	}
	input, err := inputArg(p)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:   stringField(input, "title"),
		Content: stringField(input, "content"),
		Photo:   optionalStringField(input, "photo"),
		Author:  authUser.ID,
	}
	err = r.Storage.InTx(p.Context, func(tx storage.Storage) error {
		return tx.Posts().Create(p.Context, post)
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

func (r *Resolver) mutateUpdatePost(p graphql.ResolveParams) (interface{}, error) {
	authUser, err := requireAuthUser(p.Context)
	if err != nil {
		return nil, err
	}
	id, err := parseID(p.Args["id"])
	if err != nil {
		return nil, err
	}
	input, err := inputArg(p)
	if err != nil {
		return nil, err
	}

	var post *models.Post
	err = r.Storage.InTx(p.Context, func(tx storage.Storage) error {
		post, err = tx.Posts().FindByID(p.Context, id, nil)
		if err != nil {
			return err
		}
		if post == nil {
			return &NotFoundError{Entity: "Post", ID: id}
		}
		if post.Author != authUser.ID {
			return &AuthorizationError{Message: "Unauthorized! You can only update your own posts"}
		}

		post.Title = stringField(input, "title")
		post.Content = stringField(input, "content")
		columns := []string{"title", "content"}
		if photo := optionalStringField(input, "photo"); photo != nil {
			post.Photo = photo
			columns = append(columns, "photo")
		}
		return tx.Posts().Update(p.Context, post, columns...)
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

func (r *Resolver) mutateDeletePost(p graphql.ResolveParams) (interface{}, error) {
	authUser, err := requireAuthUser(p.Context)
	if err != nil {
		return nil, err
	}
	id, err := parseID(p.Args["id"])
	if err != nil {
		return nil, err
	}

	var deleted bool
	err = r.Storage.InTx(p.Context, func(tx storage.Storage) error {
		post, err := tx.Posts().FindByID(p.Context, id, []string{"id", "author"})
		if err != nil {
			return err
		}
		if post == nil {
			return &NotFoundError{Entity: "Post", ID: id}
		}
		if post.Author != authUser.ID {
			return &AuthorizationError{Message: "Unauthorized! You can only remove your own posts"}
		}
		deleted, err = tx.Posts().Delete(p.Context, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}
