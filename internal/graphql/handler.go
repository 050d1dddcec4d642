package graphql

import (
	"mime"
	"net/http"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/handler"
)

// NewHandler serves the schema over POST with a JSON body only. A cross-site
// form or navigation cannot produce such a request without a CORS preflight,
// so the session cookie never reaches a mutation from another origin. With
// graphiQL enabled a plain GET without a query string renders the explorer.
func NewHandler(schema graphql.Schema, graphiQL bool) http.Handler {
	h := handler.New(&handler.Config{
		Schema:   &schema,
		Pretty:   true,
		GraphiQL: graphiQL,
	})

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if graphiQL && r.Method == http.MethodGet && r.URL.RawQuery == "" {
			h.ServeHTTP(w, r)
			return
		}

		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil || mediaType != "application/json" {
			http.Error(w, http.StatusText(http.StatusUnsupportedMediaType), http.StatusUnsupportedMediaType)
			return
		}

		h.ServeHTTP(w, r)
	})
}
