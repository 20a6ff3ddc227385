package service

import (
	"context"
	"fmt"

	"hospicore/config"
	"hospicore/infras/kafka"
	"hospicore/infras/otel"
	"hospicore/infras/postgres"
	drugModel "hospicore/internal/domains/drug/model"
	drugRepo "hospicore/internal/domains/drug/repository"
	patientModel "hospicore/internal/domains/patient/model"
	patientRepo "hospicore/internal/domains/patient/repository"
	"hospicore/internal/domains/prescription/model"
	"hospicore/internal/domains/prescription/model/dto"
	"hospicore/internal/domains/prescription/repository"
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
	cacheGetPrescription    = "prescription:get"
	cacheGetAllPrescription = "prescription:gets"
	cacheCountPrescription  = "prescription:count"
	cacheGetDrug            = "drug:get"
	cacheGetAllDrug         = "drug:gets"
)

// StockAlert is the advisory message published when a fulfillment draws a drug below
// its reorder threshold.
type StockAlert struct {
	DrugID           string `json:"drug_id"`
	Code             string `json:"code"`
	Name             string `json:"name"`
	QuantityOnHand   int    `json:"quantity_on_hand"`
	ReorderThreshold int    `json:"reorder_threshold"`
}

type Prescription interface {
	Create(ctx context.Context, req dto.CreatePrescriptionRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetPrescriptionsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.PrescriptionResponse, error)
	Fulfill(ctx context.Context, id string) (dto.FulfillPrescriptionResponse, error)
	Cancel(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo        repository.Prescription
	drugRepo    drugRepo.Drug
	patientRepo patientRepo.Patient
	transactor  postgres.Transactor
	cfg         *config.Config
	cache       cache.RedisCache
	kafka       kafka.Client
	otel        otel.Otel
}

func New(
	repo repository.Prescription,
	drugRepo drugRepo.Drug,
	patientRepo patientRepo.Patient,
	transactor postgres.Transactor,
	cfg *config.Config,
	cache cache.RedisCache,
	kafkaClient kafka.Client,
	otel otel.Otel,
) Prescription {
	return &serviceImpl{
		repo:        repo,
		drugRepo:    drugRepo,
		patientRepo: patientRepo,
		transactor:  transactor,
		cfg:         cfg,
		cache:       cache,
		kafka:       kafkaClient,
		otel:        otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreatePrescriptionRequest) (err error) {
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

	drugExists, err := s.drugRepo.Exist(ctx, shared.FilterByID(req.DrugID, drugModel.FieldID, drugModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if drug exists")

		return fmt.Errorf("failed to check if drug exists: %w", err)
	}

	if !drugExists {
		return failure.NotFound("drug not found") // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, req.ToModel(user)); err != nil {
		log.Error().Err(err).Msg("failed to create prescription")

		return fmt.Errorf("failed to create prescription: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllPrescription)
		shared.InvalidateCaches(c, s.cache, cacheCountPrescription)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetPrescriptionsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllPrescription, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count prescriptions")

		return res, fmt.Errorf("failed to count prescriptions: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get prescriptions")

		return res, fmt.Errorf("failed to get prescriptions: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save prescriptions to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountPrescription, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count prescriptions")

		return res, fmt.Errorf("failed to count prescriptions: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save prescription count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.PrescriptionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetPrescription, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	prescription, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get prescription")

		return res, fmt.Errorf("failed to get prescription: %w", err)
	}

	if prescription.ID == constant.Empty {
		return res, failure.NotFound("prescription not found") // nolint:wrapcheck
	}

	res.FromModel(prescription)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save prescription to cache")
		}
	}()

	return res, nil
}

// Fulfill dispenses a pending prescription: the drug row is locked, the quantity on
// hand is drawn down and the prescription becomes fulfilled, all in one transaction.
// Insufficient stock leaves both rows untouched.
func (s *serviceImpl) Fulfill(ctx context.Context, id string) (res dto.FulfillPrescriptionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Fulfill")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	var (
		prescription model.Prescription
		drug         drugModel.Drug
		remaining    int
	)

	err = s.transactor.WithinTransaction(ctx, func(tx *sqlx.Tx) error {
		prescription, err = s.repo.GetForUpdateTx(ctx, tx, shared.FilterByID(id, model.FieldID, model.TableName))
		if err != nil {
			return fmt.Errorf("failed to get prescription: %w", err)
		}

		if prescription.ID == constant.Empty {
			return failure.NotFound("prescription not found") // nolint:wrapcheck
		}

		if prescription.Terminal() {
			return failure.Conflict(fmt.Sprintf("prescription is already %s", prescription.Status)) // nolint:wrapcheck
		}

		drug, err = s.drugRepo.GetForUpdateTx(ctx, tx, shared.FilterByID(prescription.DrugID, drugModel.FieldID, drugModel.TableName))
		if err != nil {
			return fmt.Errorf("failed to get drug: %w", err)
		}

		if drug.ID == constant.Empty {
			return failure.NotFound("drug not found") // nolint:wrapcheck
		}

		if drug.QuantityOnHand < prescription.Quantity {
			return failure.InsufficientStockError // nolint:wrapcheck
		}

		remaining = drug.QuantityOnHand - prescription.Quantity

		drugFields := shared.TransformFields(struct {
			QuantityOnHand *int `db:"quantity_on_hand"`
		}{QuantityOnHand: &remaining}, user)

		if err := s.drugRepo.UpdateTx(ctx, tx, drugFields, shared.FilterByID(drug.ID, drugModel.FieldID, drugModel.TableName)); err != nil {
			return fmt.Errorf("failed to draw down stock: %w", err)
		}

		prescriptionFields := shared.TransformFields(struct {
			Status string `db:"status"`
		}{Status: model.StatusFulfilled}, user)

		if err := s.repo.UpdateTx(ctx, tx, prescriptionFields, shared.FilterByID(prescription.ID, model.FieldID, model.TableName)); err != nil {
			return fmt.Errorf("failed to update prescription: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("prescription_id", id).Msg("failed to fulfill prescription")

		return res, err
	}

	prescription.Status = model.StatusFulfilled
	prescription.ModifiedAt = timezone.Now()
	prescription.ModifiedBy = user

	res.Prescription.FromModel(prescription)
	res.QuantityOnHand = remaining
	res.LowStock = remaining < drug.ReorderThreshold

	if res.LowStock {
		s.publishStockAlert(ctx, drug, remaining)
	}

	s.invalidate(ctx, id, prescription.DrugID)

	return res, nil
}

// Cancel marks a pending prescription as cancelled. Terminal prescriptions stay as
// they are.
func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	err = s.transactor.WithinTransaction(ctx, func(tx *sqlx.Tx) error {
		prescription, err := s.repo.GetForUpdateTx(ctx, tx, shared.FilterByID(id, model.FieldID, model.TableName))
		if err != nil {
			return fmt.Errorf("failed to get prescription: %w", err)
		}

		if prescription.ID == constant.Empty {
			return failure.NotFound("prescription not found") // nolint:wrapcheck
		}

		if prescription.Terminal() {
			return failure.Conflict(fmt.Sprintf("prescription is already %s", prescription.Status)) // nolint:wrapcheck
		}

		fields := shared.TransformFields(struct {
			Status string `db:"status"`
		}{Status: model.StatusCancelled}, user)

		return s.repo.UpdateTx(ctx, tx, fields, shared.FilterByID(id, model.FieldID, model.TableName))
	})
	if err != nil {
		log.Error().Err(err).Str("prescription_id", id).Msg("failed to cancel prescription")

		return err
	}

	s.invalidate(ctx, id, constant.Empty)

	return nil
}

func (s *serviceImpl) publishStockAlert(ctx context.Context, drug drugModel.Drug, remaining int) {
	if s.kafka == nil || !s.cfg.Kafka.Enable {
		return
	}

	go func() {
		c := context.WithoutCancel(ctx)

		alert := StockAlert{
			DrugID:           drug.ID,
			Code:             drug.Code,
			Name:             drug.Name,
			QuantityOnHand:   remaining,
			ReorderThreshold: drug.ReorderThreshold,
		}

		if err := s.kafka.SendMessages(c, constant.KafkaTopicStockAlert, kafka.Message{Key: drug.Code, Value: alert}); err != nil {
			log.Error().Err(err).Str("drug_code", drug.Code).Msg("failed to publish stock alert")
		}
	}()
}

func (s *serviceImpl) invalidate(ctx context.Context, id, drugID string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetPrescription, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete prescription from cache")
		}

		if drugID != constant.Empty {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetDrug, drugID)); err != nil {
				log.Error().Err(err).Msg("failed to delete drug from cache")
			}

			shared.InvalidateCaches(c, s.cache, cacheGetAllDrug)
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllPrescription)
		shared.InvalidateCaches(c, s.cache, cacheCountPrescription)
	}()
}
