package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"hospicore/config"
	"hospicore/infras/otel/mocks"
	pgMocks "hospicore/infras/postgres/mocks"
	admissionMocks "hospicore/internal/domains/admission/mocks"
	"hospicore/internal/domains/admission/model"
	"hospicore/internal/domains/admission/model/dto"
	"hospicore/internal/domains/admission/service"
	patientMocks "hospicore/internal/domains/patient/mocks"
	roomMocks "hospicore/internal/domains/room/mocks"
	roomModel "hospicore/internal/domains/room/model"
	cacheMocks "hospicore/shared/cache/mocks"
	"hospicore/shared/constant"
	"hospicore/shared/failure"
	gDto "hospicore/shared/dto"
	gModel "hospicore/shared/model"
	"hospicore/shared/timezone"
)

func newService(t *testing.T) (service.Admission, *admissionMocks.MockAdmission, *roomMocks.MockRoom, *patientMocks.MockPatient, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := admissionMocks.NewMockAdmission(ctrl)
	mockRoomRepo := roomMocks.NewMockRoom(ctrl)
	mockPatientRepo := patientMocks.NewMockPatient(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockRoomRepo, mockPatientRepo, pgMocks.NewTransactor(), cfg, mockCache, mockOtel)

	return svc, mockRepo, mockRoomRepo, mockPatientRepo, mockCache
}

func allowInvalidation(mockCache *cacheMocks.MockRedisCache) {
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func TestAdmissionService_Admit(t *testing.T) {
	freeRoom := roomModel.Room{
		ID:     "room-id",
		Number: "101",
		Status: roomModel.StatusFree,
	}

	occupiedRoom := roomModel.Room{
		ID:     "room-id",
		Number: "101",
		Status: roomModel.StatusOccupied,
	}

	req := dto.AdmitPatientRequest{
		PatientID: "b2c7c6de-55a2-4f57-a1c4-302776f069a3",
		RoomID:    "room-id",
		Reason:    "pneumonia",
	}

	tests := []struct {
		name      string
		setupMock func(repo *admissionMocks.MockAdmission, roomRepo *roomMocks.MockRoom, patientRepo *patientMocks.MockPatient, cache *cacheMocks.MockRedisCache)
		wantErr   error
	}{
		{
			name: "successful admission",
			setupMock: func(repo *admissionMocks.MockAdmission, roomRepo *roomMocks.MockRoom, patientRepo *patientMocks.MockPatient, cache *cacheMocks.MockRedisCache) {
				patientRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				roomRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(freeRoom, nil)
				repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				roomRepo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				allowInvalidation(cache)
			},
		},
		{
			name: "patient not found",
			setupMock: func(repo *admissionMocks.MockAdmission, roomRepo *roomMocks.MockRoom, patientRepo *patientMocks.MockPatient, cache *cacheMocks.MockRedisCache) {
				patientRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantErr: failure.NotFound("patient not found"),
		},
		{
			name: "room not found",
			setupMock: func(repo *admissionMocks.MockAdmission, roomRepo *roomMocks.MockRoom, patientRepo *patientMocks.MockPatient, cache *cacheMocks.MockRedisCache) {
				patientRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				roomRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(roomModel.Room{}, nil)
			},
			wantErr: failure.NotFound("room not found"),
		},
		{
			name: "room occupied",
			setupMock: func(repo *admissionMocks.MockAdmission, roomRepo *roomMocks.MockRoom, patientRepo *patientMocks.MockPatient, cache *cacheMocks.MockRedisCache) {
				patientRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				roomRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(occupiedRoom, nil)
			},
			wantErr: failure.RoomUnavailableError,
		},
		{
			name: "insert error rolls back",
			setupMock: func(repo *admissionMocks.MockAdmission, roomRepo *roomMocks.MockRoom, patientRepo *patientMocks.MockPatient, cache *cacheMocks.MockRedisCache) {
				patientRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				roomRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(freeRoom, nil)
				repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantErr: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, roomRepo, patientRepo, cache := newService(t)
			tt.setupMock(repo, roomRepo, patientRepo, cache)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			res, err := svc.Admit(ctx, req)

			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr.Error())

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, req.PatientID, res.PatientID)
			assert.Equal(t, req.RoomID, res.RoomID)
			assert.Equal(t, model.StatusAdmitted, res.Status)
		})
	}
}

func TestAdmissionService_Discharge(t *testing.T) {
	admitted := model.Admission{
		ID:        "admission-id",
		PatientID: "patient-id",
		RoomID:    "room-id",
		Status:    model.StatusAdmitted,
		Reason:    "pneumonia",
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  "test-user-id",
			ModifiedBy: "test-user-id",
		},
	}

	dischargedAt := timezone.Now()
	discharged := admitted
	discharged.Status = model.StatusDischarged
	discharged.DischargedAt = &dischargedAt

	tests := []struct {
		name      string
		setupMock func(repo *admissionMocks.MockAdmission, roomRepo *roomMocks.MockRoom, cache *cacheMocks.MockRedisCache)
		wantErr   error
	}{
		{
			name: "successful discharge",
			setupMock: func(repo *admissionMocks.MockAdmission, roomRepo *roomMocks.MockRoom, cache *cacheMocks.MockRedisCache) {
				repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(admitted, nil)
				repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				roomRepo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				allowInvalidation(cache)
			},
		},
		{
			name: "admission not found",
			setupMock: func(repo *admissionMocks.MockAdmission, roomRepo *roomMocks.MockRoom, cache *cacheMocks.MockRedisCache) {
				repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Admission{}, nil)
			},
			wantErr: failure.NotFound("admission not found"),
		},
		{
			name: "already discharged",
			setupMock: func(repo *admissionMocks.MockAdmission, roomRepo *roomMocks.MockRoom, cache *cacheMocks.MockRedisCache) {
				repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(discharged, nil)
			},
			wantErr: failure.AlreadyDischargedError,
		},
		{
			name: "update error rolls back",
			setupMock: func(repo *admissionMocks.MockAdmission, roomRepo *roomMocks.MockRoom, cache *cacheMocks.MockRedisCache) {
				repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(admitted, nil)
				repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("update error"))
			},
			wantErr: errors.New("update error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, roomRepo, _, cache := newService(t)
			tt.setupMock(repo, roomRepo, cache)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			res, err := svc.Discharge(ctx, "admission-id")

			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr.Error())

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, model.StatusDischarged, res.Status)
			assert.NotEmpty(t, res.DischargedAt)
		})
	}
}

func TestAdmissionService_Get(t *testing.T) {
	admission := model.Admission{
		ID:        "admission-id",
		PatientID: "patient-id",
		RoomID:    "room-id",
		Status:    model.StatusAdmitted,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  "test-user-id",
			ModifiedBy: "test-user-id",
		},
	}

	tests := []struct {
		name      string
		setupMock func(repo *admissionMocks.MockAdmission, cache *cacheMocks.MockRedisCache)
		wantErr   bool
		wantID    string
	}{
		{
			name: "cache hit",
			setupMock: func(repo *admissionMocks.MockAdmission, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "cache miss, fetched from db",
			setupMock: func(repo *admissionMocks.MockAdmission, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(admission, nil)
				cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
			wantID: "admission-id",
		},
		{
			name: "admission not found",
			setupMock: func(repo *admissionMocks.MockAdmission, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Admission{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _, _, cache := newService(t)
			tt.setupMock(repo, cache)

			res, err := svc.Get(context.Background(), "admission-id")

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)

			if tt.wantID != "" {
				assert.Equal(t, tt.wantID, res.ID)
			}
		})
	}
}

func TestAdmissionService_GetAll(t *testing.T) {
	svc, repo, _, _, cache := newService(t)

	cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
	repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
	repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Admission{{ID: "admission-id", Status: model.StatusAdmitted}}, nil)
	cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	res, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})

	assert.NoError(t, err)
	assert.Equal(t, 1, res.TotalData)
	assert.Len(t, res.Admissions, 1)
}
