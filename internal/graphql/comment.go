package graphql

import (
	"github.com/graphql-go/graphql"

	"github.com/ButyrinIA/blog/internal/models"
	"github.com/ButyrinIA/blog/internal/storage"
)

// commentFields: user и post — FK-колонки, нужны вложенным резолверам
func commentFields(info graphql.ResolveInfo) []string {
	return projectFields(info, []string{"id"}, nil)
}

func (r *Resolver) resolveCommentsByPost(p graphql.ResolveParams) (interface{}, error) {
	postID, err := parseID(p.Args["postId"])
	if err != nil {
		return nil, err
	}
	first, offset := pagination(p.Args)
	filter := storage.CommentFilter{Post: &postID}
	return r.Storage.Comments().FindAll(p.Context, filter, first, offset, commentFields(p.Info))
}

func (r *Resolver) resolveCommentUser(p graphql.ResolveParams) (interface{}, error) {
	comment, ok := p.Source.(*models.Comment)
	if !ok {
		return nil, &BadInputError{Message: "user can only be resolved on a comment"}
	}
	return r.loadUser(p.Context, comment.User)
}

func (r *Resolver) resolveCommentPost(p graphql.ResolveParams) (interface{}, error) {
	comment, ok := p.Source.(*models.Comment)
	if !ok {
		return nil, &BadInputError{Message: "post can only be resolved on a comment"}
	}
	post, err := r.Storage.Posts().FindByID(p.Context, comment.Post, postFields(p.Info))
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, &NotFoundError{Entity: "Post", ID: comment.Post}
	}
	return post, nil
}

func (r *Resolver) mutateCreateComment(p graphql.ResolveParams) (interface{}, error) {
	authUser, err := requireAuthUser(p.Context)
	if err != nil {
		return nil, err
	}
	input, err := inputArg(p)
	if err != nil {
		return nil, err
	}
	postID, err := parseID(input["post"])
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Comment: stringField(input, "comment"),
		User:    authUser.ID,
		Post:    postID,
	}
	err = r.Storage.InTx(p.Context, func(tx storage.Storage) error {
		post, err := tx.Posts().FindByID(p.Context, postID, []string{"id"})
		if err != nil {
			return err
		}
		if post == nil {
			return &NotFoundError{Entity: "Post", ID: postID}
		}
		return tx.Comments().Create(p.Context, comment)
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

func (r *Resolver) mutateUpdateComment(p graphql.ResolveParams) (interface{}, error) {
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
	postID, err := parseID(input["post"])
	if err != nil {
		return nil, err
	}

	var comment *models.Comment
	err = r.Storage.InTx(p.Context, func(tx storage.Storage) error {
		comment, err = tx.Comments().FindByID(p.Context, id, nil)
		if err != nil {
			return err
		}
		if comment == nil {
			return &NotFoundError{Entity: "Comment", ID: id}
		}
		if comment.User != authUser.ID {
			return &AuthorizationError{Message: "Unauthorized! You can only edit your own comments"}
		}

		if postID != comment.Post {
			post, err := tx.Posts().FindByID(p.Context, postID, []string{"id"})
			if err != nil {
				return err
			}
			if post == nil {
				return &NotFoundError{Entity: "Post", ID: postID}
			}
		}
		comment.Comment = stringField(input, "comment")
		comment.Post = postID
		return tx.Comments().Update(p.Context, comment, "comment", "post_id")
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

func (r *Resolver) mutateDeleteComment(p graphql.ResolveParams) (interface{}, error) {
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
		comment, err := tx.Comments().FindByID(p.Context, id, []string{"id", "user"})
		if err != nil {
			return err
		}
		if comment == nil {
			return &NotFoundError{Entity: "Comment", ID: id}
		}
		if comment.User != authUser.ID {
			return &AuthorizationError{Message: "Unauthorized! You can only remove your own comments"}
		}
		deleted, err = tx.Comments().Delete(p.Context, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}
