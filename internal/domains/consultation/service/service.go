package service

import (
	"context"
	"fmt"

	"hospicore/config"
	"hospicore/infras/otel"
	"hospicore/internal/domains/consultation/model"
	"hospicore/internal/domains/consultation/model/dto"
	"hospicore/internal/domains/consultation/repository"
	patientModel "hospicore/internal/domains/patient/model"
	patientRepo "hospicore/internal/domains/patient/repository"
	staffModel "hospicore/internal/domains/staff/model"
	staffRepo "hospicore/internal/domains/staff/repository"
	"hospicore/shared"
	"hospicore/shared/cache"
	"hospicore/shared/constant"
	gDto "hospicore/shared/dto"
	"hospicore/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetConsultation    = "consultation:get"
	cacheGetAllConsultation = "consultation:gets"
	cacheCountConsultation  = "consultation:count"
)

type Consultation interface {
	Create(ctx context.Context, req dto.CreateConsultationRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetConsultationsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.ConsultationResponse, error)
	Update(ctx context.Context, req dto.UpdateConsultationRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo        repository.Consultation
	patientRepo patientRepo.Patient
	staffRepo   staffRepo.Staff
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(
	repo repository.Consultation,
	patientRepo patientRepo.Patient,
	staffRepo staffRepo.Staff,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Consultation {
	return &serviceImpl{
		repo:        repo,
		patientRepo: patientRepo,
		staffRepo:   staffRepo,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateConsultationRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	patientExists, err := s.patientRepo.Exist(ctx, shared.FilterByID(req.PatientID, patientModel.FieldID, patientModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if patient exists")

		return fmt.Errorf("failed to check if patient exists: %w", err)
	}

	if !patientExists {
		return failure.NotFound("patient not found") // nolint:wrapcheck
	}

	staffExists, err := s.staffRepo.Exist(ctx, shared.FilterByID(req.StaffID, staffModel.FieldID, staffModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if staff exists")

		return fmt.Errorf("failed to check if staff exists: %w", err)
	}

	if !staffExists {
		return failure.NotFound("staff not found") // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, req.ToModel(user)); err != nil {
		log.Error().Err(err).Msg("failed to create consultation")

		return fmt.Errorf("failed to create consultation: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllConsultation)
		shared.InvalidateCaches(c, s.cache, cacheCountConsultation)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetConsultationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllConsultation, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count consultations")

		return res, fmt.Errorf("failed to count consultations: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get consultations")

		return res, fmt.Errorf("failed to get consultations: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save consultations to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountConsultation, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count consultations")

		return res, fmt.Errorf("failed to count consultations: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save consultation count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ConsultationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(nil)

	cacheKey := shared.BuildCacheKey(cacheGetConsultation, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	consultation, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get consultation")

		return res, fmt.Errorf("failed to get consultation: %w", err)
	}

	if consultation.ID == constant.Empty {
		return res, failure.NotFound("consultation not found") // nolint:wrapcheck
	}

	res.FromModel(consultation)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save consultation to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateConsultationRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateConsultationRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if consultation exists")

		return fmt.Errorf("failed to check if consultation exists: %w", err)
	}

	if !exist {
		return failure.NotFound("consultation not found") // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)
	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update consultation")

		return fmt.Errorf("failed to update consultation: %w", err)
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
		log.Error().Err(err).Msg("failed to check if consultation exists")

		return fmt.Errorf("failed to check if consultation exists: %w", err)
	}

	if !exist {
		return failure.NotFound("consultation not found") // nolint:wrapcheck
	}

	if err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete consultation")

		return fmt.Errorf("failed to delete consultation: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetConsultation, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete consultation from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllConsultation)
		shared.InvalidateCaches(c, s.cache, cacheCountConsultation)
	}()
}
