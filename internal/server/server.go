package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/graphql-go/graphql"

	"github.com/ButyrinIA/blog/internal/auth"
	"github.com/ButyrinIA/blog/internal/config"
	gql "github.com/ButyrinIA/blog/internal/graphql"
	"github.com/ButyrinIA/blog/internal/storage"
)

type Server struct {
	cfg      *config.Config
	resolver *gql.Resolver
	schema   graphql.Schema
	handler  http.Handler
}

func New(cfg *config.Config, store storage.Storage) (*Server, error) {
	resolver := gql.NewResolver(store, auth.New(cfg.Auth.Secret, time.Duration(cfg.Auth.TokenTTL)))
	schema, err := resolver.Schema()
	if err != nil {
		return nil, err
	}

	s := &Server{cfg: cfg, resolver: resolver, schema: schema}

	mux := http.NewServeMux()
	mux.HandleFunc("/graphql", s.handleGraphQL)
	mux.HandleFunc("/", s.handlePlayground)
	s.handler = mux

	return s, nil
}

// Handler отдает корневой http.Handler; используется тестами
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) Run() error {
	return http.ListenAndServe(":"+s.cfg.Server.Port, s.handler)
}

type graphqlRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

func (s *Server) handleGraphQL(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req graphqlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	if token := bearerToken(r); token != "" {
		ctx = gql.WithToken(ctx, token)
	}
	// loader-ы живут ровно один запрос
	ctx = s.resolver.WithLoaders(ctx)

	result := graphql.Do(graphql.Params{
		Schema:         s.schema,
		RequestString:  req.Query,
		OperationName:  req.OperationName,
		VariableValues: req.Variables,
		Context:        ctx,
	})

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if strings.HasPrefix(header, prefix) {
		return strings.TrimPrefix(header, prefix)
	}
	return ""
}

const playgroundHTML = `<!DOCTYPE html>
<html>
<head>
  <title>GraphQL playground</title>
  <link rel="stylesheet" href="https://unpkg.com/graphiql/graphiql.min.css" />
</head>
<body style="margin:0">
  <div id="graphiql" style="height:100vh"></div>
  <script src="https://unpkg.com/react/umd/react.production.min.js"></script>
  <script src="https://unpkg.com/react-dom/umd/react-dom.production.min.js"></script>
  <script src="https://unpkg.com/graphiql/graphiql.min.js"></script>
  <script>
    ReactDOM.render(
      React.createElement(GraphiQL, {
        fetcher: GraphiQL.createFetcher({ url: '/graphql' }),
      }),
      document.getElementById('graphiql'),
    );
  </script>
</body>
</html>`

func (s *Server) handlePlayground(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(playgroundHTML))
}
