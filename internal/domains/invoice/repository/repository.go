package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hospicore/infras/otel"
	"hospicore/infras/postgres"
	"hospicore/internal/domains/invoice/model"
	"hospicore/shared/constant"
	gDto "hospicore/shared/dto"
	"hospicore/shared/logger"
	gRepo "hospicore/shared/repository"

	"github.com/jmoiron/sqlx"
)

// nextSequenceQuery hands out one per-day sequence number atomically. Concurrent
// creators serialize on the counter row, so numbers never collide.
const nextSequenceQuery = `INSERT INTO invoice_counters (day, seq) VALUES ($1, 1)
ON CONFLICT (day) DO UPDATE SET seq = invoice_counters.seq + 1
RETURNING seq`

type Invoice interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Invoice, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Invoice, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Invoice) error
	GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) (model.Invoice, error)
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	NextSequenceTx(ctx context.Context, sqltx *sqlx.Tx, day string) (int, error)
	InsertLinesTx(ctx context.Context, sqltx *sqlx.Tx, lines []model.InvoiceLine) error
	GetLines(ctx context.Context, invoiceID string) ([]model.InvoiceLine, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Invoice]
	lines gRepo.Repository[model.InvoiceLine]
	db    *postgres.Connection
	otel  otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Invoice {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Invoice](model.EntityName, model.TableName, model.FieldID, db, otel),
		lines:      gRepo.NewRepository[model.InvoiceLine](model.LineEntityName, model.LineTableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (repo *repositoryImpl) NextSequenceTx(ctx context.Context, sqltx *sqlx.Tx, day string) (int, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".invoice.NextSequenceTx")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, nextSequenceQuery)

	var seq int

	err := sqltx.GetContext(ctx, &seq, nextSequenceQuery, day)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to get next invoice sequence: %w", err)
	}

	return seq, nil
}

func (repo *repositoryImpl) InsertLinesTx(ctx context.Context, sqltx *sqlx.Tx, lines []model.InvoiceLine) error {
	return repo.lines.InsertBulkTx(ctx, sqltx, lines) //nolint:wrapcheck
}

func (repo *repositoryImpl) GetLines(ctx context.Context, invoiceID string) ([]model.InvoiceLine, error) {
	params := gDto.QueryParams{
		SortBy:  model.FieldLinePosition,
		SortDir: "ASC",
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldLineInvoiceID,
				Operator: gDto.FilterOperatorEq,
				Value:    invoiceID,
				Table:    model.LineTableName,
			},
		},
	}

	return repo.lines.GetAll(ctx, params, filter) //nolint:wrapcheck
}
