package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"hospicore/config"
	"hospicore/infras/otel/mocks"
	drugMocks "hospicore/internal/domains/drug/mocks"
	"hospicore/internal/domains/drug/model"
	"hospicore/internal/domains/drug/model/dto"
	"hospicore/internal/domains/drug/service"
	prescriptionMocks "hospicore/internal/domains/prescription/mocks"
	cacheMocks "hospicore/shared/cache/mocks"
	"hospicore/shared/constant"
	"hospicore/shared/failure"
)

func newService(t *testing.T) (service.Drug, *drugMocks.MockDrug, *prescriptionMocks.MockPrescription, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := drugMocks.NewMockDrug(ctrl)
	mockPrescriptionRepo := prescriptionMocks.NewMockPrescription(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockPrescriptionRepo, cfg, mockCache, mocks.NewOtel())

	return svc, mockRepo, mockPrescriptionRepo, mockCache
}

func allowInvalidation(mockCache *cacheMocks.MockRedisCache) {
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func TestDrugService_Create(t *testing.T) {
	req := dto.CreateDrugRequest{
		Code:             "AMOX-500",
		Name:             "Amoxicillin 500mg",
		UnitPrice:        12.5,
		QuantityOnHand:   100,
		ReorderThreshold: 20,
		Supplier:         "PharmaDist",
	}

	withExpiry := req
	withExpiry.ExpiresAt = "2027-06-30"

	badExpiry := req
	badExpiry.ExpiresAt = "30/06/2027"

	tests := []struct {
		name      string
		req       dto.CreateDrugRequest
		setupMock func(repo *drugMocks.MockDrug, cache *cacheMocks.MockRedisCache)
		wantErr   error
	}{
		{
			name: "successful creation",
			req:  req,
			setupMock: func(repo *drugMocks.MockDrug, cache *cacheMocks.MockRedisCache) {
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
				allowInvalidation(cache)
			},
		},
		{
			name: "successful creation with expiry date",
			req:  withExpiry,
			setupMock: func(repo *drugMocks.MockDrug, cache *cacheMocks.MockRedisCache) {
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
				allowInvalidation(cache)
			},
		},
		{
			name:      "malformed expiry date rejected",
			req:       badExpiry,
			setupMock: func(repo *drugMocks.MockDrug, cache *cacheMocks.MockRedisCache) {},
			wantErr:   errors.New("invalid date format"),
		},
		{
			name: "duplicate drug code",
			req:  req,
			setupMock: func(repo *drugMocks.MockDrug, cache *cacheMocks.MockRedisCache) {
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: "23505"})
			},
			wantErr: failure.DuplicateKey("drug code already exists"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _, cache := newService(t)
			tt.setupMock(repo, cache)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			err := svc.Create(ctx, tt.req)

			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr.Error())

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestDrugService_Delete(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(repo *drugMocks.MockDrug, prescriptionRepo *prescriptionMocks.MockPrescription, cache *cacheMocks.MockRedisCache)
		wantErr   error
	}{
		{
			name: "successful deletion",
			setupMock: func(repo *drugMocks.MockDrug, prescriptionRepo *prescriptionMocks.MockPrescription, cache *cacheMocks.MockRedisCache) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				prescriptionRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
				allowInvalidation(cache)
			},
		},
		{
			name: "drug not found",
			setupMock: func(repo *drugMocks.MockDrug, prescriptionRepo *prescriptionMocks.MockPrescription, cache *cacheMocks.MockRedisCache) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantErr: failure.NotFound("drug not found"),
		},
		{
			name: "pending prescriptions block deletion",
			setupMock: func(repo *drugMocks.MockDrug, prescriptionRepo *prescriptionMocks.MockPrescription, cache *cacheMocks.MockRedisCache) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				prescriptionRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantErr: failure.Conflict("drug has pending prescriptions"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, prescriptionRepo, cache := newService(t)
			tt.setupMock(repo, prescriptionRepo, cache)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			err := svc.Delete(ctx, "drug-id")

			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr.Error())

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestDrugService_Update(t *testing.T) {
	threshold := 30
	req := dto.UpdateDrugRequest{ReorderThreshold: &threshold}

	tests := []struct {
		name      string
		req       dto.UpdateDrugRequest
		setupMock func(repo *drugMocks.MockDrug, cache *cacheMocks.MockRedisCache)
		wantErr   bool
	}{
		{
			name: "successful update",
			req:  req,
			setupMock: func(repo *drugMocks.MockDrug, cache *cacheMocks.MockRedisCache) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				allowInvalidation(cache)
			},
		},
		{
			name:      "empty update rejected",
			req:       dto.UpdateDrugRequest{},
			setupMock: func(repo *drugMocks.MockDrug, cache *cacheMocks.MockRedisCache) {},
			wantErr:   true,
		},
		{
			name: "drug not found",
			req:  req,
			setupMock: func(repo *drugMocks.MockDrug, cache *cacheMocks.MockRedisCache) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _, cache := newService(t)
			tt.setupMock(repo, cache)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			err := svc.Update(ctx, tt.req, "drug-id")

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestDrugService_Get(t *testing.T) {
	drug := model.Drug{
		ID:               "drug-id",
		Code:             "AMOX-500",
		Name:             "Amoxicillin 500mg",
		QuantityOnHand:   100,
		ReorderThreshold: 20,
	}

	tests := []struct {
		name      string
		setupMock func(repo *drugMocks.MockDrug, cache *cacheMocks.MockRedisCache)
		wantErr   bool
	}{
		{
			name: "cache hit",
			setupMock: func(repo *drugMocks.MockDrug, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "cache miss, fetched from db",
			setupMock: func(repo *drugMocks.MockDrug, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(drug, nil)
				cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
		},
		{
			name: "drug not found",
			setupMock: func(repo *drugMocks.MockDrug, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Drug{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _, cache := newService(t)
			tt.setupMock(repo, cache)

			_, err := svc.Get(context.Background(), "drug-id")

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
		})
	}
}
