package xcontext

import (
	"context"
	"net/http"
	"time"

	"github.com/luckyspin-lab/backend/config"
	"github.com/luckyspin-lab/backend/pkg/logger"
	"gorm.io/gorm"
)

type (
	dbKey          struct{}
	txKey          struct{}
	loggerKey      struct{}
	configsKey     struct{}
	httpRequestKey struct{}
	httpWriterKey  struct{}
	startTimeKey   struct{}
	errorKey       struct{}
	responseKey    struct{}
)

func WithDB(ctx context.Context, db *gorm.DB) context.Context {
	return context.WithValue(ctx, dbKey{}, db)
}

// DB returns the database handle carried by ctx. If a transaction was opened
// with WithDBTransaction and is still pending, the transaction is returned
// instead of the root handle.
func DB(ctx context.Context) *gorm.DB {
	if holder, ok := ctx.Value(txKey{}).(*txHolder); ok && holder.tx != nil {
		return holder.tx
	}

	db, ok := ctx.Value(dbKey{}).(*gorm.DB)
	if !ok {
		panic("no database in context")
	}

	return db
}

type txHolder struct {
	tx *gorm.DB
}

// WithDBTransaction begins a transaction on the context database. Until
// WithCommitDBTransaction or WithRollbackDBTransaction is called on the
// returned context, DB returns the transaction. The transaction inherits the
// deadline of ctx, so a timed-out spin aborts instead of holding its row
// locks.
func WithDBTransaction(ctx context.Context) context.Context {
	return context.WithValue(ctx, txKey{}, &txHolder{tx: DB(ctx).WithContext(ctx).Begin()})
}

// WithCommitDBTransaction commits the pending transaction, if any.
func WithCommitDBTransaction(ctx context.Context) context.Context {
	if holder, ok := ctx.Value(txKey{}).(*txHolder); ok && holder.tx != nil {
		holder.tx.Commit()
		holder.tx = nil
	}

	return ctx
}

// WithRollbackDBTransaction rollbacks the pending transaction. It is a no-op
// after WithCommitDBTransaction, so it is safe to defer right after the
// transaction begins.
func WithRollbackDBTransaction(ctx context.Context) context.Context {
	if holder, ok := ctx.Value(txKey{}).(*txHolder); ok && holder.tx != nil {
		holder.tx.Rollback()
		holder.tx = nil
	}

	return ctx
}

func WithLogger(ctx context.Context, l logger.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

func Logger(ctx context.Context) logger.Logger {
	if l, ok := ctx.Value(loggerKey{}).(logger.Logger); ok {
		return l
	}

	return logger.NewLogger(logger.INFO)
}

func WithConfigs(ctx context.Context, cfg config.Configs) context.Context {
	return context.WithValue(ctx, configsKey{}, cfg)
}

func Configs(ctx context.Context) config.Configs {
	cfg, ok := ctx.Value(configsKey{}).(config.Configs)
	if !ok {
		panic("no configs in context")
	}

	return cfg
}

func WithHTTPRequest(ctx context.Context, r *http.Request) context.Context {
	return context.WithValue(ctx, httpRequestKey{}, r)
}

func HTTPRequest(ctx context.Context) *http.Request {
	r, ok := ctx.Value(httpRequestKey{}).(*http.Request)
	if !ok {
		return nil
	}

	return r
}

func WithHTTPWriter(ctx context.Context, w http.ResponseWriter) context.Context {
	return context.WithValue(ctx, httpWriterKey{}, w)
}

func HTTPWriter(ctx context.Context) http.ResponseWriter {
	w, ok := ctx.Value(httpWriterKey{}).(http.ResponseWriter)
	if !ok {
		return nil
	}

	return w
}

func WithStartTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, startTimeKey{}, t)
}

func StartTime(ctx context.Context) time.Time {
	if t, ok := ctx.Value(startTimeKey{}).(time.Time); ok {
		return t
	}

	return time.Time{}
}

type errorHolder struct{ err error }
type responseHolder struct{ resp any }

// WithErrorHolder prepares ctx to carry an error set later by SetError. The
// router installs one holder per request so closers can observe handler
// failures.
func WithErrorHolder(ctx context.Context) context.Context {
	return context.WithValue(ctx, errorKey{}, &errorHolder{})
}

func SetError(ctx context.Context, err error) {
	if holder, ok := ctx.Value(errorKey{}).(*errorHolder); ok {
		holder.err = err
	}
}

func Error(ctx context.Context) error {
	if holder, ok := ctx.Value(errorKey{}).(*errorHolder); ok {
		return holder.err
	}

	return nil
}

// WithResponseHolder prepares ctx to carry a response set later by
// SetResponse.
func WithResponseHolder(ctx context.Context) context.Context {
	return context.WithValue(ctx, responseKey{}, &responseHolder{})
}

func SetResponse(ctx context.Context, resp any) {
	if holder, ok := ctx.Value(responseKey{}).(*responseHolder); ok {
		holder.resp = resp
	}
}

func Response(ctx context.Context) any {
	if holder, ok := ctx.Value(responseKey{}).(*responseHolder); ok {
		return holder.resp
	}

	return nil
}
