package middleware

import (
	"context"
	"net/http"

	"github.com/hugh/birthday-reminder/internal/api/dto"
	"github.com/hugh/birthday-reminder/internal/api/query"
	"github.com/hugh/birthday-reminder/internal/api/validation"
)

// ParseQuery validates the list query string and stores the parsed
// query.Params for the handler.
func ParseQuery(cfg query.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			values := r.URL.Query()

			if fe := validation.Struct(dto.ListQuery{Search: values.Get("search")}); fe != nil {
				writeError(w, http.StatusBadRequest, dto.InvalidFields(fe.Message))
				return
			}

			ctx := context.WithValue(r.Context(), QueryParamsKey, query.Parse(cfg, values))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetQueryParams returns the params stored by ParseQuery, or defaults for cfg
// when the middleware did not run.
func GetQueryParams(ctx context.Context, cfg query.Config) query.Params {
	if p, ok := ctx.Value(QueryParamsKey).(query.Params); ok {
		return p
	}
	return query.Parse(cfg, nil)
}
