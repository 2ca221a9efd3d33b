package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/budget-pacing-api/internal/config"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Queryer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type Conn interface {
	Queryer
	Builder() squirrel.StatementBuilderType
	Close() error
	Ping(context.Context) error
	RunInTransaction(context.Context, func(*sql.Tx) error) error
}

// Connection envolve o *sql.DB e sabe qual placeholder o driver espera
type Connection struct {
	*sql.DB
	Driver string
}

func NewConnection(ctx context.Context, cfg config.Database) (*Connection, error) {
	var (
		db  *sql.DB
		err error
	)

	switch cfg.Driver {
	case "", DriverPostgres:
		db, err = openPostgres(cfg)
	case DriverSQLite:
		db, err = openSQLite(cfg)
	default:
		return nil, fmt.Errorf("driver de banco não suportado: %s", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	driver := cfg.Driver
	if driver == "" {
		driver = DriverPostgres
	}

	return &Connection{DB: db, Driver: driver}, nil
}

// Builder retorna o StatementBuilder do squirrel com o placeholder do driver
func (c *Connection) Builder() squirrel.StatementBuilderType {
	if c.Driver == DriverSQLite {
		return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)
	}
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (c *Connection) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

// RunInTransaction executa fn dentro de uma transação, com rollback em erro ou panic
func (c *Connection) RunInTransaction(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err := recover(); err != nil {
			_ = tx.Rollback()
			panic(err)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback: %v)", err, rbErr)
		}
		return err
	}

	return tx.Commit()
}
