package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"hospicore/config"
	"hospicore/infras/otel/mocks"
	pgMocks "hospicore/infras/postgres/mocks"
	admissionMocks "hospicore/internal/domains/admission/mocks"
	invoiceMocks "hospicore/internal/domains/invoice/mocks"
	"hospicore/internal/domains/invoice/model"
	"hospicore/internal/domains/invoice/model/dto"
	"hospicore/internal/domains/invoice/service"
	patientMocks "hospicore/internal/domains/patient/mocks"
	cacheMocks "hospicore/shared/cache/mocks"
	"hospicore/shared/constant"
	"hospicore/shared/failure"
	"hospicore/shared/timezone"
)

type serviceMocks struct {
	repo          *invoiceMocks.MockInvoice
	patientRepo   *patientMocks.MockPatient
	admissionRepo *admissionMocks.MockAdmission
	cache         *cacheMocks.MockRedisCache
}

func newService(t *testing.T) (service.Invoice, serviceMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)

	m := serviceMocks{
		repo:          invoiceMocks.NewMockInvoice(ctrl),
		patientRepo:   patientMocks.NewMockPatient(ctrl),
		admissionRepo: admissionMocks.NewMockAdmission(ctrl),
		cache:         cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Billing.InvoicePrefix = "FLEM"

	svc := service.New(m.repo, m.patientRepo, m.admissionRepo, pgMocks.NewTransactor(), cfg, m.cache, mocks.NewOtel())

	return svc, m
}

func allowInvalidation(m serviceMocks) {
	m.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func TestInvoiceService_Create(t *testing.T) {
	validReq := dto.CreateInvoiceRequest{
		PatientID: "6f1f6f4a-9f7c-4f8a-8f8e-0d8b2f4a3c21",
		Kind:      model.KindConsultation,
		Lines: []dto.InvoiceLineRequest{
			{Description: "General consultation", Quantity: 1, UnitPrice: 150, Category: model.LineCategoryConsultation},
			{Description: "Amoxicillin 500mg", Quantity: 2, UnitPrice: 12.5, Category: model.LineCategoryDrug},
		},
	}

	withAdmission := validReq
	withAdmission.AdmissionID = "0b0c9e34-4b9f-49e9-9a25-6f3f0d1f6a77"
	withAdmission.Kind = model.KindAdmission

	zeroQuantity := validReq
	zeroQuantity.Lines = []dto.InvoiceLineRequest{
		{Description: "General consultation", Quantity: 0, UnitPrice: 150, Category: model.LineCategoryConsultation},
	}

	negativePrice := validReq
	negativePrice.Lines = []dto.InvoiceLineRequest{
		{Description: "General consultation", Quantity: 1, UnitPrice: -5, Category: model.LineCategoryConsultation},
	}

	tests := []struct {
		name      string
		req       dto.CreateInvoiceRequest
		setupMock func(m serviceMocks)
		wantErr   error
		wantTotal float64
	}{
		{
			name: "successful creation",
			req:  validReq,
			setupMock: func(m serviceMocks) {
				m.patientRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				m.repo.EXPECT().NextSequenceTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(7, nil)
				m.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				m.repo.EXPECT().InsertLinesTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				allowInvalidation(m)
			},
			wantTotal: 175,
		},
		{
			name: "successful creation tied to admission",
			req:  withAdmission,
			setupMock: func(m serviceMocks) {
				m.patientRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				m.admissionRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				m.repo.EXPECT().NextSequenceTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(1, nil)
				m.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				m.repo.EXPECT().InsertLinesTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				allowInvalidation(m)
			},
			wantTotal: 175,
		},
		{
			name:      "zero quantity line rejected",
			req:       zeroQuantity,
			setupMock: func(m serviceMocks) {},
			wantErr:   failure.InvalidLineItem("line 1: quantity must be at least 1"),
		},
		{
			name:      "negative unit price rejected",
			req:       negativePrice,
			setupMock: func(m serviceMocks) {},
			wantErr:   failure.InvalidLineItem("line 1: unit price cannot be negative"),
		},
		{
			name: "patient not found",
			req:  validReq,
			setupMock: func(m serviceMocks) {
				m.patientRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantErr: failure.NotFound("patient not found"),
		},
		{
			name: "admission not found",
			req:  withAdmission,
			setupMock: func(m serviceMocks) {
				m.patientRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				m.admissionRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantErr: failure.NotFound("admission not found"),
		},
		{
			name: "sequence error rolls back",
			req:  validReq,
			setupMock: func(m serviceMocks) {
				m.patientRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				m.repo.EXPECT().NextSequenceTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(0, errors.New("database error"))
			},
			wantErr: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newService(t)
			tt.setupMock(m)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			res, err := svc.Create(ctx, tt.req)

			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr.Error())

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantTotal, res.Total)
			assert.Equal(t, model.StatusPending, res.Status)
			assert.Len(t, res.Lines, len(tt.req.Lines))
		})
	}
}

func TestInvoiceService_Create_NumberFormat(t *testing.T) {
	svc, m := newService(t)

	m.patientRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
	m.repo.EXPECT().NextSequenceTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(42, nil)
	m.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	m.repo.EXPECT().InsertLinesTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	allowInvalidation(m)

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
	res, err := svc.Create(ctx, dto.CreateInvoiceRequest{
		PatientID: "6f1f6f4a-9f7c-4f8a-8f8e-0d8b2f4a3c21",
		Kind:      model.KindPharmacy,
		Lines: []dto.InvoiceLineRequest{
			{Description: "Ibuprofen 400mg", Quantity: 1, UnitPrice: 8, Category: model.LineCategoryDrug},
		},
	})

	assert.NoError(t, err)

	day := timezone.Format(timezone.Now(), constant.CompactDateFormat)
	assert.Equal(t, fmt.Sprintf("FLEM-%s-0042", day), res.Number)
}

func TestInvoiceService_RecordPayment(t *testing.T) {
	pending := model.Invoice{
		ID:     "invoice-id",
		Number: "FLEM-20260830-0001",
		Total:  200,
		Paid:   0,
		Status: model.StatusPending,
	}

	partial := pending
	partial.Paid = 50
	partial.Status = model.StatusPartial

	cancelled := pending
	cancelled.Status = model.StatusCancelled

	tests := []struct {
		name       string
		amount     float64
		setupMock  func(m serviceMocks)
		wantErr    error
		wantPaid   float64
		wantStatus string
	}{
		{
			name:   "partial payment",
			amount: 50,
			setupMock: func(m serviceMocks) {
				m.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(pending, nil)
				m.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				allowInvalidation(m)
			},
			wantPaid:   50,
			wantStatus: model.StatusPartial,
		},
		{
			name:   "payment settles the invoice",
			amount: 150,
			setupMock: func(m serviceMocks) {
				m.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(partial, nil)
				m.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				allowInvalidation(m)
			},
			wantPaid:   200,
			wantStatus: model.StatusPaid,
		},
		{
			name:   "overpayment recorded as is",
			amount: 500,
			setupMock: func(m serviceMocks) {
				m.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(pending, nil)
				m.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				allowInvalidation(m)
			},
			wantPaid:   500,
			wantStatus: model.StatusPaid,
		},
		{
			name:      "zero amount rejected",
			amount:    0,
			setupMock: func(m serviceMocks) {},
			wantErr:   failure.InvalidAmount("payment amount must be greater than zero"),
		},
		{
			name:      "negative amount rejected",
			amount:    -10,
			setupMock: func(m serviceMocks) {},
			wantErr:   failure.InvalidAmount("payment amount must be greater than zero"),
		},
		{
			name:   "invoice not found",
			amount: 50,
			setupMock: func(m serviceMocks) {
				m.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Invoice{}, nil)
			},
			wantErr: failure.NotFound("invoice not found"),
		},
		{
			name:   "cancelled invoice rejected",
			amount: 50,
			setupMock: func(m serviceMocks) {
				m.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(cancelled, nil)
			},
			wantErr: failure.Conflict("invoice is cancelled"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newService(t)
			tt.setupMock(m)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			res, err := svc.RecordPayment(ctx, "invoice-id", dto.RecordPaymentRequest{Amount: tt.amount})

			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr.Error())

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantPaid, res.Paid)
			assert.Equal(t, tt.wantStatus, res.Status)
		})
	}
}

func TestInvoiceService_Get(t *testing.T) {
	invoice := model.Invoice{
		ID:     "invoice-id",
		Number: "FLEM-20260830-0001",
		Total:  200,
		Status: model.StatusPending,
	}

	lines := []model.InvoiceLine{
		{ID: "line-id", InvoiceID: "invoice-id", Description: "General consultation", Quantity: 1, UnitPrice: 200, Amount: 200, Position: 1},
	}

	tests := []struct {
		name      string
		setupMock func(m serviceMocks)
		wantErr   bool
		wantLines int
	}{
		{
			name: "cache hit",
			setupMock: func(m serviceMocks) {
				m.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "cache miss, fetched with lines",
			setupMock: func(m serviceMocks) {
				m.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(invoice, nil)
				m.repo.EXPECT().GetLines(gomock.Any(), "invoice-id").Return(lines, nil)
				m.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
			wantLines: 1,
		},
		{
			name: "invoice not found",
			setupMock: func(m serviceMocks) {
				m.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Invoice{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newService(t)
			tt.setupMock(m)

			res, err := svc.Get(context.Background(), "invoice-id")

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Len(t, res.Lines, tt.wantLines)
		})
	}
}

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name  string
		paid  float64
		total float64
		want  string
	}{
		{name: "nothing paid", paid: 0, total: 100, want: model.StatusPending},
		{name: "partially paid", paid: 40, total: 100, want: model.StatusPartial},
		{name: "exactly paid", paid: 100, total: 100, want: model.StatusPaid},
		{name: "overpaid", paid: 150, total: 100, want: model.StatusPaid},
		{name: "zero total", paid: 0, total: 0, want: model.StatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, model.DeriveStatus(tt.paid, tt.total))
		})
	}
}
