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
	patientMocks "hospicore/internal/domains/patient/mocks"
	"hospicore/internal/domains/patient/model"
	"hospicore/internal/domains/patient/model/dto"
	"hospicore/internal/domains/patient/service"
	cacheMocks "hospicore/shared/cache/mocks"
	"hospicore/shared/constant"
	gDto "hospicore/shared/dto"
	"hospicore/shared/failure"
)

func newService(t *testing.T) (service.Patient, *patientMocks.MockPatient, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := patientMocks.NewMockPatient(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mocks.NewOtel())

	return svc, mockRepo, mockCache
}

func allowInvalidation(mockCache *cacheMocks.MockRedisCache) {
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func TestPatientService_Create(t *testing.T) {
	req := dto.CreatePatientRequest{
		LastName:             "Doe",
		FirstName:            "Jane",
		BirthDate:            "1985-04-12",
		Phone:                "+33612345678",
		Email:                "jane.doe@example.com",
		SocialSecurityNumber: "285047512345678",
	}

	badBirthDate := req
	badBirthDate.BirthDate = "12/04/1985"

	tests := []struct {
		name      string
		req       dto.CreatePatientRequest
		setupMock func(repo *patientMocks.MockPatient, cache *cacheMocks.MockRedisCache)
		wantErr   error
	}{
		{
			name: "successful creation",
			req:  req,
			setupMock: func(repo *patientMocks.MockPatient, cache *cacheMocks.MockRedisCache) {
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
				allowInvalidation(cache)
			},
		},
		{
			name:      "malformed birth date rejected",
			req:       badBirthDate,
			setupMock: func(repo *patientMocks.MockPatient, cache *cacheMocks.MockRedisCache) {},
			wantErr:   errors.New("invalid date format"),
		},
		{
			name: "duplicate social security number",
			req:  req,
			setupMock: func(repo *patientMocks.MockPatient, cache *cacheMocks.MockRedisCache) {
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: "23505"})
			},
			wantErr: failure.DuplicateKey("social security number already registered"),
		},
		{
			name: "insert error",
			req:  req,
			setupMock: func(repo *patientMocks.MockPatient, cache *cacheMocks.MockRedisCache) {
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantErr: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, cache := newService(t)
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

func TestPatientService_Update(t *testing.T) {
	req := dto.UpdatePatientRequest{Phone: "+33698765432"}

	tests := []struct {
		name      string
		req       dto.UpdatePatientRequest
		setupMock func(repo *patientMocks.MockPatient, cache *cacheMocks.MockRedisCache)
		wantErr   bool
	}{
		{
			name: "successful update",
			req:  req,
			setupMock: func(repo *patientMocks.MockPatient, cache *cacheMocks.MockRedisCache) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				allowInvalidation(cache)
			},
		},
		{
			name:      "empty update rejected",
			req:       dto.UpdatePatientRequest{},
			setupMock: func(repo *patientMocks.MockPatient, cache *cacheMocks.MockRedisCache) {},
			wantErr:   true,
		},
		{
			name: "patient not found",
			req:  req,
			setupMock: func(repo *patientMocks.MockPatient, cache *cacheMocks.MockRedisCache) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, cache := newService(t)
			tt.setupMock(repo, cache)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			err := svc.Update(ctx, tt.req, "patient-id")

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestPatientService_Delete(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(repo *patientMocks.MockPatient, cache *cacheMocks.MockRedisCache)
		wantErr   bool
	}{
		{
			name: "successful deletion",
			setupMock: func(repo *patientMocks.MockPatient, cache *cacheMocks.MockRedisCache) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
				allowInvalidation(cache)
			},
		},
		{
			name: "patient not found",
			setupMock: func(repo *patientMocks.MockPatient, cache *cacheMocks.MockRedisCache) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, cache := newService(t)
			tt.setupMock(repo, cache)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			err := svc.Delete(ctx, "patient-id")

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestPatientService_GetAll(t *testing.T) {
	svc, repo, cache := newService(t)

	cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
	repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)
	repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Patient{{ID: "a"}, {ID: "b"}}, nil)
	cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	res, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})

	assert.NoError(t, err)
	assert.Equal(t, 2, res.TotalData)
	assert.Len(t, res.Patients, 2)
}
