package service

import (
	"context"
	"fmt"

	"hospicore/config"
	"hospicore/infras/otel"
	"hospicore/infras/postgres"
	admissionModel "hospicore/internal/domains/admission/model"
	admissionRepo "hospicore/internal/domains/admission/repository"
	"hospicore/internal/domains/invoice/model"
	"hospicore/internal/domains/invoice/model/dto"
	"hospicore/internal/domains/invoice/repository"
	patientModel "hospicore/internal/domains/patient/model"
	patientRepo "hospicore/internal/domains/patient/repository"
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
	cacheGetInvoice    = "invoice:get"
	cacheGetAllInvoice = "invoice:gets"
	cacheCountInvoice  = "invoice:count"
)

type Invoice interface {
	Create(ctx context.Context, req dto.CreateInvoiceRequest) (dto.InvoiceResponse, error)
	RecordPayment(ctx context.Context, id string, req dto.RecordPaymentRequest) (dto.InvoiceResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetInvoicesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.InvoiceResponse, error)
}

type serviceImpl struct {
	repo          repository.Invoice
	patientRepo   patientRepo.Patient
	admissionRepo admissionRepo.Admission
	transactor    postgres.Transactor
	cfg           *config.Config
	cache         cache.RedisCache
	otel          otel.Otel
}

func New(
	repo repository.Invoice,
	patientRepo patientRepo.Patient,
	admissionRepo admissionRepo.Admission,
	transactor postgres.Transactor,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Invoice {
	return &serviceImpl{
		repo:          repo,
		patientRepo:   patientRepo,
		admissionRepo: admissionRepo,
		transactor:    transactor,
		cfg:           cfg,
		cache:         cache,
		otel:          otel,
	}
}

// Create issues a new invoice. The invoice number takes a per-day sequence from the
// counter table inside the same transaction as the insert, so numbers are unique and
// gap-free under concurrency.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateInvoiceRequest) (res dto.InvoiceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	for i, line := range req.Lines {
		if line.Quantity < 1 {
			return res, failure.InvalidLineItem(fmt.Sprintf("line %d: quantity must be at least 1", i+1)) // nolint:wrapcheck
		}

		if line.UnitPrice < 0 {
			return res, failure.InvalidLineItem(fmt.Sprintf("line %d: unit price cannot be negative", i+1)) // nolint:wrapcheck
		}
	}

	patientExists, err := s.patientRepo.Exist(ctx, shared.FilterByID(req.PatientID, patientModel.FieldID, patientModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if patient exists")

		return res, fmt.Errorf("failed to check if patient exists: %w", err)
	}

	if !patientExists {
		return res, failure.NotFound("patient not found") // nolint:wrapcheck
	}

	if req.AdmissionID != constant.Empty {
		admissionExists, err := s.admissionRepo.Exist(ctx, shared.FilterByID(req.AdmissionID, admissionModel.FieldID, admissionModel.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to check if admission exists")

			return res, fmt.Errorf("failed to check if admission exists: %w", err)
		}

		if !admissionExists {
			return res, failure.NotFound("admission not found") // nolint:wrapcheck
		}
	}

	invoice, lines, err := req.ToModel(user, constant.Empty)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse invoice request")

		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) // nolint:wrapcheck
	}

	err = s.transactor.WithinTransaction(ctx, func(tx *sqlx.Tx) error {
		seq, err := s.repo.NextSequenceTx(ctx, tx, timezone.Format(invoice.IssueDate, constant.DateOnlyFormat))
		if err != nil {
			return fmt.Errorf("failed to get invoice sequence: %w", err)
		}

		invoice.Number = fmt.Sprintf("%s-%s-%04d", s.cfg.Billing.InvoicePrefix, timezone.Format(invoice.IssueDate, constant.CompactDateFormat), seq)

		if err := s.repo.InsertTx(ctx, tx, invoice); err != nil {
			return fmt.Errorf("failed to insert invoice: %w", err)
		}

		return s.repo.InsertLinesTx(ctx, tx, lines)
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create invoice")

		return res, err
	}

	res.FromModel(invoice)
	res.WithLines(lines)

	s.invalidate(ctx, invoice.ID)

	return res, nil
}

// RecordPayment applies a payment to an invoice and recomputes its status from the
// amounts. Overpayment is recorded as-is.
func (s *serviceImpl) RecordPayment(ctx context.Context, id string, req dto.RecordPaymentRequest) (res dto.InvoiceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RecordPayment")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.Amount <= 0 {
		return res, failure.InvalidAmount("payment amount must be greater than zero") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	var invoice model.Invoice

	err = s.transactor.WithinTransaction(ctx, func(tx *sqlx.Tx) error {
		invoice, err = s.repo.GetForUpdateTx(ctx, tx, shared.FilterByID(id, model.FieldID, model.TableName))
		if err != nil {
			return fmt.Errorf("failed to get invoice: %w", err)
		}

		if invoice.ID == constant.Empty {
			return failure.NotFound("invoice not found") // nolint:wrapcheck
		}

		if invoice.Status == model.StatusCancelled {
			return failure.Conflict("invoice is cancelled") // nolint:wrapcheck
		}

		invoice.Paid += req.Amount
		invoice.Status = model.DeriveStatus(invoice.Paid, invoice.Total)

		fields := shared.TransformFields(struct {
			Paid   *float64 `db:"paid"`
			Status string   `db:"status"`
		}{Paid: &invoice.Paid, Status: invoice.Status}, user)

		return s.repo.UpdateTx(ctx, tx, fields, shared.FilterByID(id, model.FieldID, model.TableName))
	})
	if err != nil {
		log.Error().Err(err).Str("invoice_id", id).Msg("failed to record payment")

		return res, err
	}

	invoice.ModifiedAt = timezone.Now()
	invoice.ModifiedBy = user

	res.FromModel(invoice)

	s.invalidate(ctx, id)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetInvoicesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllInvoice, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count invoices")

		return res, fmt.Errorf("failed to count invoices: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get invoices")

		return res, fmt.Errorf("failed to get invoices: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save invoices to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountInvoice, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count invoices")

		return res, fmt.Errorf("failed to count invoices: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save invoice count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.InvoiceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetInvoice, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	invoice, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get invoice")

		return res, fmt.Errorf("failed to get invoice: %w", err)
	}

	if invoice.ID == constant.Empty {
		return res, failure.NotFound("invoice not found") // nolint:wrapcheck
	}

	lines, err := s.repo.GetLines(ctx, invoice.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get invoice lines")

		return res, fmt.Errorf("failed to get invoice lines: %w", err)
	}

	res.FromModel(invoice)
	res.WithLines(lines)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save invoice to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetInvoice, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete invoice from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllInvoice)
		shared.InvalidateCaches(c, s.cache, cacheCountInvoice)
	}()
}
