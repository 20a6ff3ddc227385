package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"hospicore/infras/otel"
	"hospicore/infras/postgres"
	"hospicore/internal/domains/drug/model"
	gDto "hospicore/shared/dto"
	gRepo "hospicore/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Drug interface {
	Insert(ctx context.Context, model model.Drug) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Drug, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Drug, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) (model.Drug, error)
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Drug]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Drug {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Drug](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
