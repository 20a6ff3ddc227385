package mocks

import (
	"context"
	"hospicore/infras/postgres"

	"github.com/jmoiron/sqlx"
)

type transactorImpl struct {
}

// WithinTransaction implements postgres.Transactor. The unit of work runs with a nil
// transaction; repository mocks ignore the tx argument.
func (t *transactorImpl) WithinTransaction(_ context.Context, fn func(tx *sqlx.Tx) error) error {
	return fn(nil)
}

func NewTransactor() postgres.Transactor {
	return &transactorImpl{}
}
