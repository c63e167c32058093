package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=./mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"smartpark/infras/otel"
	"smartpark/infras/postgres"
	"smartpark/internal/domains/slot/model"
	"smartpark/shared"
	"smartpark/shared/constant"
	gDto "smartpark/shared/dto"
	gRepo "smartpark/shared/repository"

	sq "github.com/Masterminds/squirrel"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Slot is the slot store. Infrastructure failures are returned wrapped in model.ErrStoreUnavailable.
type Slot interface {
	Get(ctx context.Context, id string) (model.Slot, error)
	Find(ctx context.Context, query model.Query) ([]model.Slot, error)
	FindByStatus(ctx context.Context, status model.Status, area, floor *int) ([]model.Slot, error)
	FindOccupiedByVehicle(ctx context.Context, vehicleID string) ([]model.Slot, error)
	// ConditionalUpdate writes change only if cond still holds on the stored row.
	// It reports false, with a nil error, when the condition was rejected.
	ConditionalUpdate(ctx context.Context, id string, change model.Change, cond model.Condition) (bool, error)
	GetAll(ctx context.Context) ([]model.Slot, error)
}

type repositoryImpl struct {
	base gRepo.Repository[model.Slot]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Slot {
	return &repositoryImpl{
		base: gRepo.NewRepository[model.Slot](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:   db,
		otel: otel,
	}
}

func (r *repositoryImpl) Get(ctx context.Context, id string) (model.Slot, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".slot.Get")
	defer scope.End()

	scope.SetAttribute(constant.OtelSlotAttributeKey, id)

	slot, found, err := r.base.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		scope.TraceError(err)

		return model.Slot{}, model.StoreUnavailable(err)
	}

	if !found {
		return model.Slot{}, fmt.Errorf("%w: %s", model.ErrSlotNotFound, id)
	}

	return slot, nil
}

// Find reads from the write pool so the engines see their own conditional updates.
func (r *repositoryImpl) Find(ctx context.Context, query model.Query) ([]model.Slot, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".slot.Find")
	defer scope.End()

	where := sq.Eq{}

	if query.Status != nil {
		where[model.FieldStatus] = *query.Status
	}

	if query.Area != nil {
		where[model.FieldArea] = *query.Area
	}

	if query.Floor != nil {
		where[model.FieldFloor] = *query.Floor
	}

	if query.VehicleID != nil {
		where[model.FieldVehicleID] = *query.VehicleID
	}

	builder := psql.Select(r.base.Columns()...).
		From(model.TableName).
		OrderBy(model.FieldFloor, model.FieldNumber, model.FieldID)

	if len(where) > 0 {
		builder = builder.Where(where)
	}

	statement, args, err := builder.ToSql()
	if err != nil {
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to build slot query: %w", err)
	}

	scope.SetAttribute(constant.OtelQueryAttributeKey, statement)

	slots := []model.Slot{}
	if err = r.db.Write.SelectContext(ctx, &slots, statement, args...); err != nil {
		scope.TraceError(err)

		return nil, model.StoreUnavailable(fmt.Errorf("failed to query slots: %w", err))
	}

	return slots, nil
}

func (r *repositoryImpl) FindByStatus(ctx context.Context, status model.Status, area, floor *int) ([]model.Slot, error) {
	return r.Find(ctx, model.Query{Status: &status, Area: area, Floor: floor})
}

func (r *repositoryImpl) FindOccupiedByVehicle(ctx context.Context, vehicleID string) ([]model.Slot, error) {
	status := model.StatusOccupied

	return r.Find(ctx, model.Query{Status: &status, VehicleID: &vehicleID})
}

func (r *repositoryImpl) ConditionalUpdate(ctx context.Context, id string, change model.Change, cond model.Condition) (bool, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".slot.ConditionalUpdate")
	defer scope.End()

	scope.SetAttributes(map[string]any{
		constant.OtelSlotAttributeKey: id,
		"slot.status.from":            cond.Status,
		"slot.status.to":              change.Status,
	})

	set := map[string]any{
		model.FieldStatus:           change.Status,
		model.FieldModifiedAt:       change.ModifiedAt,
		model.FieldVehicleID:        nil,
		model.FieldHolderContact:    nil,
		model.FieldEntryTime:        nil,
		model.FieldExpectedExitTime: nil,
	}

	if occ := change.Occupancy; occ != nil {
		set[model.FieldVehicleID] = occ.VehicleID
		set[model.FieldHolderContact] = occ.HolderContact
		set[model.FieldEntryTime] = occ.EntryTime
		set[model.FieldExpectedExitTime] = occ.ExpectedExitTime
	}

	where := sq.Eq{
		model.FieldID:     id,
		model.FieldStatus: cond.Status,
	}

	if cond.VehicleID != nil {
		where[model.FieldVehicleID] = *cond.VehicleID
	}

	statement, args, err := psql.Update(model.TableName).SetMap(set).Where(where).ToSql()
	if err != nil {
		scope.TraceError(err)

		return false, fmt.Errorf("failed to build slot update: %w", err)
	}

	scope.SetAttribute(constant.OtelQueryAttributeKey, statement)

	result, err := r.db.Write.ExecContext(ctx, statement, args...)
	if err != nil {
		scope.TraceError(err)

		return false, model.StoreUnavailable(fmt.Errorf("failed to update slot %s: %w", id, err))
	}

	affected, err := result.RowsAffected()
	if err != nil {
		scope.TraceError(err)

		return false, model.StoreUnavailable(fmt.Errorf("failed to read affected rows for slot %s: %w", id, err))
	}

	scope.SetAttribute("slot.update.applied", affected == 1)

	return affected == 1, nil
}

func (r *repositoryImpl) GetAll(ctx context.Context) ([]model.Slot, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".slot.GetAll")
	defer scope.End()

	slots, err := r.base.GetAll(ctx, gDto.QueryParams{SortBy: model.FieldID, SortDir: gDto.SortDirAsc}, gDto.FilterGroup{})
	if err != nil {
		scope.TraceError(err)

		return nil, model.StoreUnavailable(err)
	}

	return slots, nil
}
