// Package storage - шлюз к реляционному хранилищу (sqlite или postgres).
//
// Gateway открывается один раз при старте, передается во все репозитории
// по ссылке и закрывается при остановке сервера. Транзакция кладется в
// context, поэтому репозитории не знают, работают ли они внутри нее.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"golang.org/x/exp/slog"
)

type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

// ErrNoRows - GetOne не нашел строку
var ErrNoRows = errors.New("storage: no rows in result set")

// Row - то, что умеет сканировать одну строку результата
type Row interface {
	Scan(dest ...any) error
}

// Result - метаданные мутации
type Result struct {
	InsertedID   int64
	RowsAffected int64
}

type runner interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type txKey struct{}

type Gateway struct {
	db      *sql.DB
	dialect Dialect
	builder sq.StatementBuilderType
	log     *slog.Logger
}

func New(db *sql.DB, dialect Dialect, log *slog.Logger) *Gateway {
	builder := sq.StatementBuilder.PlaceholderFormat(sq.Question)
	if dialect == Postgres {
		builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return &Gateway{
		db:      db,
		dialect: dialect,
		builder: builder,
		log:     log.With(slog.String("component", "storage")),
	}
}

// Builder возвращает squirrel-билдер с плейсхолдерами нужного диалекта
func (g *Gateway) Builder() sq.StatementBuilderType {
	return g.builder
}

func (g *Gateway) Dialect() Dialect {
	return g.dialect
}

func (g *Gateway) DB() *sql.DB {
	return g.db
}

func (g *Gateway) Close() error {
	return g.db.Close()
}

func (g *Gateway) Ping(ctx context.Context) error {
	return g.db.PingContext(ctx)
}

func (g *Gateway) runner(ctx context.Context) runner {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return g.db
}

// InTransaction сообщает, выполняется ли ctx внутри Transaction
func InTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(txKey{}).(*sql.Tx)
	return ok
}

// GetOne выполняет запрос и сканирует первую строку в dest.
// Если строк нет, возвращает ErrNoRows.
func (g *Gateway) GetOne(ctx context.Context, q sq.Sqlizer, dest ...any) error {
	query, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	err = g.runner(ctx).QueryRowContext(ctx, query, args...).Scan(dest...)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNoRows
	}
	if err != nil {
		return fmt.Errorf("get one: %w", err)
	}
	return nil
}

// GetMany вызывает scan для каждой строки результата
func (g *Gateway) GetMany(ctx context.Context, q sq.Sqlizer, scan func(Row) error) error {
	query, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	rows, err := g.runner(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("get many: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return fmt.Errorf("scan row: %w", err)
		}
	}
	return rows.Err()
}

// Run выполняет мутацию. InsertedID заполняется только для sqlite,
// для получения id в обоих диалектах используйте InsertReturningID.
func (g *Gateway) Run(ctx context.Context, q sq.Sqlizer) (Result, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return Result{}, fmt.Errorf("build query: %w", err)
	}

	res, err := g.runner(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return Result{}, fmt.Errorf("run: %w", err)
	}

	var out Result
	if out.RowsAffected, err = res.RowsAffected(); err != nil {
		return Result{}, fmt.Errorf("rows affected: %w", err)
	}
	if g.dialect == SQLite {
		out.InsertedID, _ = res.LastInsertId()
	}
	return out, nil
}

// InsertReturningID выполняет INSERT ... RETURNING id
func (g *Gateway) InsertReturningID(ctx context.Context, q sq.InsertBuilder) (int64, error) {
	var id int64
	if err := g.GetOne(ctx, q.Suffix("RETURNING id"), &id); err != nil {
		return 0, fmt.Errorf("insert: %w", err)
	}
	return id, nil
}

// Transaction выполняет fn в одной транзакции. Вложенный вызов
// переиспользует уже открытую транзакцию. Любая ошибка fn (или паника)
// откатывает все изменения строк.
func (g *Gateway) Transaction(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if InTransaction(ctx) {
		return fn(ctx)
	}

	tx, err := g.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				g.log.Error("rollback failed", slog.String("error", rbErr.Error()))
			}
		}
	}()

	if err = fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
