package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=./mocks/repository_mock.go -package=mocks

import (
	"context"
	"smartpark/infras/otel"
	"smartpark/infras/postgres"
	"smartpark/internal/domains/audit/model"
	gRepo "smartpark/shared/repository"
)

type Audit interface {
	Insert(ctx context.Context, log model.Log) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Log]
}

func New(db *postgres.Connection, otel otel.Otel) Audit {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Log](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
