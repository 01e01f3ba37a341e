package graphql

import (
	"github.com/graphql-go/graphql"
)

func paginationArgs() graphql.FieldConfigArgument {
	return graphql.FieldConfigArgument{
		"first": &graphql.ArgumentConfig{
			Type:         graphql.Int,
			DefaultValue: 10,
		},
		"offset": &graphql.ArgumentConfig{
			Type:         graphql.Int,
			DefaultValue: 0,
		},
	}
}

// Schema собирает исполняемую схему; скалярные поля разрешаются по json-тегам
// моделей, поля-связи — явными резолверами
func (r *Resolver) Schema() (graphql.Schema, error) {
	userType := graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"name":      &graphql.Field{Type: graphql.String},
			"email":     &graphql.Field{Type: graphql.String},
			"photo":     &graphql.Field{Type: graphql.String},
			"createdAt": &graphql.Field{Type: graphql.DateTime},
			"updatedAt": &graphql.Field{Type: graphql.DateTime},
		},
	})

	postType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Post",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"title":     &graphql.Field{Type: graphql.String},
			"content":   &graphql.Field{Type: graphql.String},
			"photo":     &graphql.Field{Type: graphql.String},
			"createdAt": &graphql.Field{Type: graphql.DateTime},
			"updatedAt": &graphql.Field{Type: graphql.DateTime},
		},
	})

	commentType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Comment",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"comment":   &graphql.Field{Type: graphql.String},
			"createdAt": &graphql.Field{Type: graphql.DateTime},
			"updatedAt": &graphql.Field{Type: graphql.DateTime},
		},
	})

	// поля-связи добавляются после объявления всех типов из-за взаимных ссылок
	userType.AddFieldConfig("posts", &graphql.Field{
		Type:    graphql.NewList(graphql.NewNonNull(postType)),
		Args:    paginationArgs(),
		Resolve: handleErrors(r.resolveUserPosts),
	})
	postType.AddFieldConfig("author", &graphql.Field{
		Type:    userType,
		Resolve: handleErrors(r.resolvePostAuthor),
	})
	postType.AddFieldConfig("comments", &graphql.Field{
		Type:    graphql.NewList(graphql.NewNonNull(commentType)),
		Args:    paginationArgs(),
		Resolve: handleErrors(r.resolvePostComments),
	})
	commentType.AddFieldConfig("user", &graphql.Field{
		Type:    userType,
		Resolve: handleErrors(r.resolveCommentUser),
	})
	commentType.AddFieldConfig("post", &graphql.Field{
		Type:    postType,
		Resolve: handleErrors(r.resolveCommentPost),
	})

	tokenType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Token",
		Fields: graphql.Fields{
			"token": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	userCreateInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UserCreateInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"email":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"password": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})
	userUpdateInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UserUpdateInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"email": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"photo": &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})
	userPasswordInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UserPasswordInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"password": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})
	postInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "PostInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"title":   &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"content": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"photo":   &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})
	commentInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CommentInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"comment": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"post":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
		},
	})

	guarded := compose(r.authResolvers()...)

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"users": &graphql.Field{
				Type:    graphql.NewList(graphql.NewNonNull(userType)),
				Args:    paginationArgs(),
				Resolve: handleErrors(r.resolveUsers),
			},
			"user": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: handleErrors(r.resolveUser),
			},
			"currentUser": &graphql.Field{
				Type:    userType,
				Resolve: handleErrors(guarded(r.resolveCurrentUser)),
			},
			"posts": &graphql.Field{
				Type:    graphql.NewList(graphql.NewNonNull(postType)),
				Args:    paginationArgs(),
				Resolve: handleErrors(r.resolvePosts),
			},
			"post": &graphql.Field{
				Type: postType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: handleErrors(r.resolvePost),
			},
			"commentsByPost": &graphql.Field{
				Type: graphql.NewList(graphql.NewNonNull(commentType)),
				Args: mergeArgs(graphql.FieldConfigArgument{
					"postId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				}, paginationArgs()),
				Resolve: handleErrors(r.resolveCommentsByPost),
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createUser": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(userCreateInput)},
				},
				Resolve: handleErrors(r.mutateCreateUser),
			},
			"updateUser": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(userUpdateInput)},
				},
				Resolve: handleErrors(guarded(r.mutateUpdateUser)),
			},
			"updateUserPassword": &graphql.Field{
				Type: graphql.Boolean,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(userPasswordInput)},
				},
				Resolve: handleErrors(guarded(r.mutateUpdateUserPassword)),
			},
			"deleteUser": &graphql.Field{
				Type:    graphql.Boolean,
				Resolve: handleErrors(guarded(r.mutateDeleteUser)),
			},
			"createToken": &graphql.Field{
				Type: tokenType,
				Args: graphql.FieldConfigArgument{
					"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: handleErrors(r.mutateCreateToken),
			},
			"createPost": &graphql.Field{
				Type: postType,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(postInput)},
				},
				Resolve: handleErrors(guarded(r.mutateCreatePost)),
			},
			"updatePost": &graphql.Field{
				Type: postType,
				Args: graphql.FieldConfigArgument{
					"id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(postInput)},
				},
				Resolve: handleErrors(guarded(r.mutateUpdatePost)),
			},
			"deletePost": &graphql.Field{
				Type: graphql.Boolean,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: handleErrors(guarded(r.mutateDeletePost)),
			},
			"createComment": &graphql.Field{
				Type: commentType,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(commentInput)},
				},
				Resolve: handleErrors(guarded(r.mutateCreateComment)),
			},
			"updateComment": &graphql.Field{
				Type: commentType,
				Args: graphql.FieldConfigArgument{
					"id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(commentInput)},
				},
				Resolve: handleErrors(guarded(r.mutateUpdateComment)),
			},
			"deleteComment": &graphql.Field{
				Type: graphql.Boolean,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: handleErrors(guarded(r.mutateDeleteComment)),
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    query,
		Mutation: mutation,
	})
}

func mergeArgs(args ...graphql.FieldConfigArgument) graphql.FieldConfigArgument {
	merged := graphql.FieldConfigArgument{}
	for _, group := range args {
		for name, arg := range group {
			merged[name] = arg
		}
	}
	return merged
}
