package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=./mocks/repository_mock.go -package=mocks

import (
	"context"
	"smartpark/infras/otel"
	"smartpark/infras/postgres"
	"smartpark/internal/domains/session/model"
	gDto "smartpark/shared/dto"
	gRepo "smartpark/shared/repository"
)

// Session is the append-only event log. There is no update or delete.
type Session interface {
	Insert(ctx context.Context, session model.Session) error
	InsertIgnore(ctx context.Context, session model.Session) (bool, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Session, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Session]
}

func New(db *postgres.Connection, otel otel.Otel) Session {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Session](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
