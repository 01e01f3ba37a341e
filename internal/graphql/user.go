package graphql

import (
	"github.com/graphql-go/graphql"

	"github.com/ButyrinIA/blog/internal/auth"
	"github.com/ButyrinIA/blog/internal/models"
	"github.com/ButyrinIA/blog/internal/storage"
)

// userFields: id нужен вложенным резолверам всегда, posts — поле-связь,
// а не колонка
func userFields(info graphql.ResolveInfo) []string {
	return projectFields(info, []string{"id"}, []string{"posts"})
}

func (r *Resolver) resolveUsers(p graphql.ResolveParams) (interface{}, error) {
	first, offset := pagination(p.Args)
	return r.Storage.Users().FindAll(p.Context, first, offset, userFields(p.Info))
}

func (r *Resolver) resolveUser(p graphql.ResolveParams) (interface{}, error) {
	id, err := parseID(p.Args["id"])
	if err != nil {
		return nil, err
	}
	user, err := r.Storage.Users().FindByID(p.Context, id, userFields(p.Info))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, &NotFoundError{Entity: "User", ID: id}
	}
	return user, nil
}

func (r *Resolver) resolveCurrentUser(p graphql.ResolveParams) (interface{}, error) {
	authUser, ok := authUserFromContext(p.Context)
	if !ok {
		return nil, &AuthenticationError{Message: "Unauthorized! Token not provided!"}
	}
	user, err := r.Storage.Users().FindByID(p.Context, authUser.ID, userFields(p.Info))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, &NotFoundError{Entity: "User", ID: authUser.ID}
	}
	return user, nil
}

func (r *Resolver) resolveUserPosts(p graphql.ResolveParams) (interface{}, error) {
	user, ok := p.Source.(*models.User)
	if !ok {
		return nil, &BadInputError{Message: "posts can only be resolved on a user"}
	}
	first, offset := pagination(p.Args)
	filter := storage.PostFilter{Author: &user.ID}
	return r.Storage.Posts().FindAll(p.Context, filter, first, offset, postFields(p.Info))
}

func (r *Resolver) mutateCreateUser(p graphql.ResolveParams) (interface{}, error) {
	input, err := inputArg(p)
	if err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(stringField(input, "password"))
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     stringField(input, "name"),
		Email:    stringField(input, "email"),
		Password: hash,
	}
	err = r.Storage.InTx(p.Context, func(tx storage.Storage) error {
		return tx.Users().Create(p.Context, user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *Resolver) mutateUpdateUser(p graphql.ResolveParams) (interface{}, error) {
	authUser, err := requireAuthUser(p.Context)
	if err != nil {
		return nil, err
	}
	input, err := inputArg(p)
	if err != nil {
		return nil, err
	}

	var user *models.User
	err = r.Storage.InTx(p.Context, func(tx storage.Storage) error {
		user, err = tx.Users().FindByID(p.Context, authUser.ID, nil)
		if err != nil {
			return err
		}
		if user == nil {
			return &NotFoundError{Entity: "User", ID: authUser.ID}
		}

		user.Name = stringField(input, "name")
		user.Email = stringField(input, "email")
		columns := []string{"name", "email"}
		if photo := optionalStringField(input, "photo"); photo != nil {
			user.Photo = photo
			columns = append(columns, "photo")
		}
		return tx.Users().Update(p.Context, user, columns...)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *Resolver) mutateUpdateUserPassword(p graphql.ResolveParams) (interface{}, error) {
	authUser, err := requireAuthUser(p.Context)
	if err != nil {
		return nil, err
	}
	input, err := inputArg(p)
	if err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(stringField(input, "password"))
	if err != nil {
		return nil, err
	}

	err = r.Storage.InTx(p.Context, func(tx storage.Storage) error {
		user, err := tx.Users().FindByID(p.Context, authUser.ID, nil)
		if err != nil {
			return err
		}
		if user == nil {
			return &NotFoundError{Entity: "User", ID: authUser.ID}
		}
		user.Password = hash
		return tx.Users().Update(p.Context, user, "password")
	})
	if err != nil {
		return nil, err
	}
	return true, nil
}

func (r *Resolver) mutateDeleteUser(p graphql.ResolveParams) (interface{}, error) {
	authUser, err := requireAuthUser(p.Context)
	if err != nil {
		return nil, err
	}

	var deleted bool
	err = r.Storage.InTx(p.Context, func(tx storage.Storage) error {
		user, err := tx.Users().FindByID(p.Context, authUser.ID, []string{"id"})
		if err != nil {
			return err
		}
		if user == nil {
			return &NotFoundError{Entity: "User", ID: authUser.ID}
		}
		deleted, err = tx.Users().Delete(p.Context, authUser.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

func (r *Resolver) mutateCreateToken(p graphql.ResolveParams) (interface{}, error) {
	email, _ := p.Args["email"].(string)
	password, _ := p.Args["password"].(string)

	user, err := r.Storage.Users().FindByEmail(p.Context, email)
	if err != nil {
		return nil, err
	}
	if user == nil || auth.CheckPassword(user.Password, password) != nil {
		return nil, &AuthenticationError{Message: "Unauthorized, wrong email or password!"}
	}

	token, err := r.Auth.GenerateToken(user.ID)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"token": token}, nil
}
