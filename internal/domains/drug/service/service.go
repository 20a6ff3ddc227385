package service

import (
	"context"
	"fmt"

	"hospicore/config"
	"hospicore/infras/otel"
	"hospicore/internal/domains/drug/model"
	"hospicore/internal/domains/drug/model/dto"
	"hospicore/internal/domains/drug/repository"
	prescriptionModel "hospicore/internal/domains/prescription/model"
	prescriptionRepo "hospicore/internal/domains/prescription/repository"
	"hospicore/shared"
	"hospicore/shared/cache"
	"hospicore/shared/constant"
	gDto "hospicore/shared/dto"
	"hospicore/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetDrug    = "drug:get"
	cacheGetAllDrug = "drug:gets"
	cacheCountDrug  = "drug:count"
)

type Drug interface {
	Create(ctx context.Context, req dto.CreateDrugRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetDrugsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.DrugResponse, error)
	Update(ctx context.Context, req dto.UpdateDrugRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo             repository.Drug
	prescriptionRepo prescriptionRepo.Prescription
	cfg              *config.Config
	cache            cache.RedisCache
	otel             otel.Otel
}

func New(repo repository.Drug, prescriptionRepo prescriptionRepo.Prescription, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Drug {
	return &serviceImpl{
		repo:             repo,
		prescriptionRepo: prescriptionRepo,
		cfg:              cfg,
		cache:            cache,
		otel:             otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateDrugRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	drug, err := req.ToModel(user)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse drug request")

		return failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, drug); err != nil {
		log.Error().Err(err).Msg("failed to create drug")

		if shared.IsUniqueViolation(err) {
			return failure.DuplicateKey("drug code already exists") // nolint:wrapcheck
		}

		return fmt.Errorf("failed to create drug: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllDrug)
		shared.InvalidateCaches(c, s.cache, cacheCountDrug)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetDrugsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllDrug, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for drugs")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count drugs")

		return res, fmt.Errorf("failed to count drugs: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get drugs")

		return res, fmt.Errorf("failed to get drugs: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save drugs to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountDrug, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count drugs")

		return res, fmt.Errorf("failed to count drugs: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save drug count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.DrugResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetDrug, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	drug, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get drug")

		return res, fmt.Errorf("failed to get drug: %w", err)
	}

	if drug.ID == constant.Empty {
		return res, failure.NotFound("drug not found") // nolint:wrapcheck
	}

	res.FromModel(drug)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save drug to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateDrugRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateDrugRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if drug exists")

		return fmt.Errorf("failed to check if drug exists: %w", err)
	}

	if !exist {
		return failure.NotFound("drug not found") // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)
	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update drug")

		return fmt.Errorf("failed to update drug: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	exist, err := s.repo.Exist(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if drug exists")

		return fmt.Errorf("failed to check if drug exists: %w", err)
	}

	if !exist {
		return failure.NotFound("drug not found") // nolint:wrapcheck
	}

	pendingFilter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    prescriptionModel.FieldDrugID,
				Operator: gDto.FilterOperatorEq,
				Value:    id,
				Table:    prescriptionModel.TableName,
			},
			gDto.Filter{
				Field:    prescriptionModel.FieldStatus,
				Operator: gDto.FilterOperatorEq,
				Value:    prescriptionModel.StatusPending,
				Table:    prescriptionModel.TableName,
			},
		},
	}

	pending, err := s.prescriptionRepo.Exist(ctx, pendingFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check pending prescriptions")

		return fmt.Errorf("failed to check pending prescriptions: %w", err)
	}

	if pending {
		return failure.Conflict("drug has pending prescriptions") // nolint:wrapcheck
	}

	if err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete drug")

		return fmt.Errorf("failed to delete drug: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetDrug, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete drug from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllDrug)
		shared.InvalidateCaches(c, s.cache, cacheCountDrug)
	}()
}
