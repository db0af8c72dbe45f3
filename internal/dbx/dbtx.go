// Package dbx holds the small database plumbing shared by every
// repository: the DBTX interface that lets a repository run against either
// a plain connection or an open transaction, and WithTx for wrapping
// multi-statement writes.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is the slice of database/sql that repositories need. *sql.DB and
// *sql.Tx both satisfy it, so a repository constructed over a transaction
// joins that transaction transparently.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx opens a transaction, hands the transactional handle to fn, and
// commits when fn returns nil. Any error, or a panic inside fn, rolls the
// transaction back; panics are re-raised after the rollback.
//
//	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
//	    created, err := m.Users(tx).Create(ctx, user)
//	    ...
//	})
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	err = fn(ctx, tx)
	return err
}
