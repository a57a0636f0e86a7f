package repository

import (
	"context"

	"github.com/jackc/pgx/v4"
)

// Tx is an opaque transaction/executor handle threaded through repository
// calls. nil means "use the pool directly".
type Tx any

// NoTX is passed where a call deliberately runs outside any transaction.
var NoTX Tx = nil

// TransactionManager runs fn inside a database transaction, committing when
// fn returns nil and rolling back otherwise.
type TransactionManager interface {
	WithTx(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx Tx) error) error
}
