package router

import (
	"context"
	"net/http"

	"github.com/luckyspin-lab/backend/config"
	"github.com/luckyspin-lab/backend/pkg/logger"
	"github.com/luckyspin-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// HandlerFunc is the signature of domain endpoints. The request is bound from
// the query string for GET and from the JSON body for POST.
type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before (or after) the handler and may derive a new
// context. Returning an error skips the handler and surfaces the error.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc always runs once the handler and all middlewares finished, even
// when they failed.
type CloserFunc func(ctx context.Context)

type Router struct {
	mux    *http.ServeMux
	cfg    config.Configs
	logger logger.Logger
	db     *gorm.DB

	befores []MiddlewareFunc
	afters  []MiddlewareFunc
	closers []CloserFunc
}

func New(db *gorm.DB, cfg config.Configs, logger logger.Logger) *Router {
	r := &Router{
		mux:    http.NewServeMux(),
		cfg:    cfg,
		logger: logger,
		db:     db,
	}
	r.AddCloser(handleResponse())

	return r
}

// Branch derives a router sharing the same mux but with an independent
// middleware chain, so route groups can stack their own Before/After.
func (r *Router) Branch() *Router {
	clone := &Router{
		mux:    r.mux,
		cfg:    r.cfg,
		logger: r.logger,
		db:     r.db,
	}
	clone.befores = append(clone.befores, r.befores...)
	clone.afters = append(clone.afters, r.afters...)
	clone.closers = append(clone.closers, r.closers...)

	return clone
}

func (r *Router) Before(m MiddlewareFunc) {
	r.befores = append(r.befores, m)
}

func (r *Router) After(m MiddlewareFunc) {
	r.afters = append(r.afters, m)
}

func (r *Router) AddCloser(c CloserFunc) {
	r.closers = append(r.closers, c)
}

func (r *Router) Handler() http.Handler {
	return r.mux
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	registerHandler(r, http.MethodGet, pattern, handler)
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	registerHandler(r, http.MethodPost, pattern, handler)
}

func registerHandler[Request, Response any](
	r *Router, method, pattern string, handler HandlerFunc[Request, Response],
) {
	befores := r.befores
	afters := r.afters
	closers := r.closers

	r.mux.HandleFunc(pattern, func(w http.ResponseWriter, req *http.Request) {
		if req.Method != method {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		ctx := req.Context()
		ctx = xcontext.WithHTTPRequest(ctx, req)
		ctx = xcontext.WithHTTPWriter(ctx, w)
		ctx = xcontext.WithConfigs(ctx, r.cfg)
		ctx = xcontext.WithLogger(ctx, r.logger)
		ctx = xcontext.WithDB(ctx, r.db)
		ctx = xcontext.WithErrorHolder(ctx)
		ctx = xcontext.WithResponseHolder(ctx)

		func() {
			var err error
			for _, m := range befores {
				if ctx, err = m(ctx); err != nil {
					xcontext.SetError(ctx, err)
					return
				}
			}

			var request Request
			if method == http.MethodGet {
				err = bindQuery(req, &request)
			} else {
				err = bindBody(req, &request)
			}
			if err != nil {
				xcontext.Logger(ctx).Debugf("Cannot bind the request: %v", err)
				xcontext.SetError(ctx, errBadRequest)
				return
			}

			resp, err := handler(ctx, &request)
			if err != nil {
				xcontext.SetError(ctx, err)
				return
			}
			xcontext.SetResponse(ctx, resp)

			for _, m := range afters {
				if ctx, err = m(ctx); err != nil {
					xcontext.SetError(ctx, err)
					return
				}
			}
		}()

		for _, c := range closers {
			c(ctx)
		}
	})
}
