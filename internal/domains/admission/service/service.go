package service

import (
	"context"
	"fmt"
	"time"

	"hospicore/config"
	"hospicore/infras/otel"
	"hospicore/infras/postgres"
	"hospicore/internal/domains/admission/model"
	"hospicore/internal/domains/admission/model/dto"
	"hospicore/internal/domains/admission/repository"
	patientModel "hospicore/internal/domains/patient/model"
	patientRepo "hospicore/internal/domains/patient/repository"
	roomModel "hospicore/internal/domains/room/model"
	roomRepo "hospicore/internal/domains/room/repository"
	"hospicore/shared"
	"hospicore/shared/cache"
	"hospicore/shared/constant"
	gDto "hospicore/shared/dto"
	"hospicore/shared/failure"
	"hospicore/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetAdmission    = "admission:get"
	cacheGetAllAdmission = "admission:gets"
	cacheCountAdmission  = "admission:count"
	cacheGetRoom         = "room:get"
	cacheGetAllRoom      = "room:gets"
)

type Admission interface {
	Admit(ctx context.Context, req dto.AdmitPatientRequest) (dto.AdmissionResponse, error)
	Discharge(ctx context.Context, id string) (dto.AdmissionResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetAdmissionsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.AdmissionResponse, error)
}

type serviceImpl struct {
	repo        repository.Admission
	roomRepo    roomRepo.Room
	patientRepo patientRepo.Patient
	transactor  postgres.Transactor
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(
	repo repository.Admission,
	roomRepo roomRepo.Room,
	patientRepo patientRepo.Patient,
	transactor postgres.Transactor,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Admission {
	return &serviceImpl{
		repo:        repo,
		roomRepo:    roomRepo,
		patientRepo: patientRepo,
		transactor:  transactor,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

// Admit places a patient into a free room. The room row is locked for the duration of
// the transaction so two concurrent admissions cannot claim the same room.
func (s *serviceImpl) Admit(ctx context.Context, req dto.AdmitPatientRequest) (res dto.AdmissionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Admit")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	patientExists, err := s.patientRepo.Exist(ctx, shared.FilterByID(req.PatientID, patientModel.FieldID, patientModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if patient exists")

		return res, fmt.Errorf("failed to check if patient exists: %w", err)
	}

	if !patientExists {
		return res, failure.NotFound("patient not found") // nolint:wrapcheck
	}

	admission := req.ToModel(user)

	err = s.transactor.WithinTransaction(ctx, func(tx *sqlx.Tx) error {
		room, err := s.roomRepo.GetForUpdateTx(ctx, tx, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName))
		if err != nil {
			return fmt.Errorf("failed to get room: %w", err)
		}

		if room.ID == constant.Empty {
			return failure.NotFound("room not found") // nolint:wrapcheck
		}

		if room.Status != roomModel.StatusFree {
			return failure.RoomUnavailableError // nolint:wrapcheck
		}

		if err := s.repo.InsertTx(ctx, tx, admission); err != nil {
			return fmt.Errorf("failed to insert admission: %w", err)
		}

		roomFields := shared.TransformFields(struct {
			Status string `db:"status"`
		}{Status: roomModel.StatusOccupied}, user)

		return s.roomRepo.UpdateTx(ctx, tx, roomFields, shared.FilterByID(room.ID, roomModel.FieldID, roomModel.TableName))
	})
	if err != nil {
		log.Error().Err(err).Str("room_id", req.RoomID).Msg("failed to admit patient")

		return res, err
	}

	res.FromModel(admission)

	s.invalidate(ctx, admission.ID, req.RoomID)

	return res, nil
}

// Discharge closes an admission and frees its room. Discharging twice is rejected, the
// first discharge wins.
func (s *serviceImpl) Discharge(ctx context.Context, id string) (res dto.AdmissionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Discharge")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	var (
		admission    model.Admission
		dischargedAt time.Time
	)

	err = s.transactor.WithinTransaction(ctx, func(tx *sqlx.Tx) error {
		admission, err = s.repo.GetForUpdateTx(ctx, tx, shared.FilterByID(id, model.FieldID, model.TableName))
		if err != nil {
			return fmt.Errorf("failed to get admission: %w", err)
		}

		if admission.ID == constant.Empty {
			return failure.NotFound("admission not found") // nolint:wrapcheck
		}

		if admission.Status != model.StatusAdmitted {
			return failure.AlreadyDischargedError // nolint:wrapcheck
		}

		dischargedAt = timezone.Now()

		admissionFields := shared.TransformFields(struct {
			Status       string     `db:"status"`
			DischargedAt *time.Time `db:"discharged_at"`
		}{Status: model.StatusDischarged, DischargedAt: &dischargedAt}, user)

		if err := s.repo.UpdateTx(ctx, tx, admissionFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
			return fmt.Errorf("failed to update admission: %w", err)
		}

		roomFields := shared.TransformFields(struct {
			Status string `db:"status"`
		}{Status: roomModel.StatusFree}, user)

		return s.roomRepo.UpdateTx(ctx, tx, roomFields, shared.FilterByID(admission.RoomID, roomModel.FieldID, roomModel.TableName))
	})
	if err != nil {
		log.Error().Err(err).Str("admission_id", id).Msg("failed to discharge patient")

		return res, err
	}

	admission.Status = model.StatusDischarged
	admission.DischargedAt = &dischargedAt
	admission.ModifiedAt = timezone.Now()
	admission.ModifiedBy = user

	res.FromModel(admission)

	s.invalidate(ctx, id, admission.RoomID)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetAdmissionsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllAdmission, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count admissions")

		return res, fmt.Errorf("failed to count admissions: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get admissions")

		return res, fmt.Errorf("failed to get admissions: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save admissions to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountAdmission, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count admissions")

		return res, fmt.Errorf("failed to count admissions: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save admission count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.AdmissionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetAdmission, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	admission, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get admission")

		return res, fmt.Errorf("failed to get admission: %w", err)
	}

	if admission.ID == constant.Empty {
		return res, failure.NotFound("admission not found") // nolint:wrapcheck
	}

	res.FromModel(admission)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save admission to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id, roomID string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetAdmission, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete admission from cache")
		}

		if roomID != constant.Empty {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetRoom, roomID)); err != nil {
				log.Error().Err(err).Msg("failed to delete room from cache")
			}

			shared.InvalidateCaches(c, s.cache, cacheGetAllRoom)
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllAdmission)
		shared.InvalidateCaches(c, s.cache, cacheCountAdmission)
	}()
}
