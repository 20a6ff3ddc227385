package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"hospicore/config"
	"hospicore/infras/jwt"
	jwtMocks "hospicore/infras/jwt/mocks"
	"hospicore/infras/otel/mocks"
	"hospicore/internal/domains/auth/model/dto"
	"hospicore/internal/domains/auth/service"
	userMocks "hospicore/internal/domains/user/mocks"
	userModel "hospicore/internal/domains/user/model"
	"hospicore/shared/constant"
	"hospicore/shared/password"
)

func newService(t *testing.T) (service.Auth, *userMocks.MockUser, *jwtMocks.MockJWT) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)

	svc := service.New(mockUserRepo, &config.Config{}, mocks.NewOtel(), mockJWT)

	return svc, mockUserRepo, mockJWT
}

func activeUser(t *testing.T, plainPassword string) userModel.User {
	t.Helper()

	hashed, err := password.Hash(plainPassword)
	assert.NoError(t, err)

	return userModel.User{
		ID:       "user-id",
		Username: "jdoe",
		Email:    "jdoe@hospital.test",
		Password: hashed,
		Role:     constant.RoleClinician,
		Active:   true,
	}
}

func TestAuthService_Register(t *testing.T) {
	req := dto.RegisterRequest{
		Username: "jdoe",
		Email:    "jdoe@hospital.test",
		Password: "s3cret-pass",
		Role:     constant.RoleClinician,
	}

	tests := []struct {
		name      string
		setupMock func(userRepo *userMocks.MockUser)
		wantErr   error
	}{
		{
			name: "successful registration",
			setupMock: func(userRepo *userMocks.MockUser) {
				userRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				userRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "email already registered",
			setupMock: func(userRepo *userMocks.MockUser) {
				userRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantErr: errors.New("email already registered"),
		},
		{
			name: "insert error",
			setupMock: func(userRepo *userMocks.MockUser) {
				userRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				userRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantErr: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, userRepo, _ := newService(t)
			tt.setupMock(userRepo)

			err := svc.Register(context.Background(), req)

			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr.Error())

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	user := activeUser(t, "s3cret-pass")

	inactive := user
	inactive.Active = false

	tokenPair := &jwt.TokenPair{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		ExpiresIn:    900,
	}

	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func(userRepo *userMocks.MockUser, jwtService *jwtMocks.MockJWT)
		wantErr   error
	}{
		{
			name: "successful login",
			req:  dto.LoginRequest{Email: user.Email, Password: "s3cret-pass"},
			setupMock: func(userRepo *userMocks.MockUser, jwtService *jwtMocks.MockJWT) {
				userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
				jwtService.EXPECT().GenerateTokenPair(user.ID, user.Email, user.Role).Return(tokenPair, nil)
				userRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "unknown email",
			req:  dto.LoginRequest{Email: "nobody@hospital.test", Password: "s3cret-pass"},
			setupMock: func(userRepo *userMocks.MockUser, jwtService *jwtMocks.MockJWT) {
				userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantErr: errors.New("invalid email or password"),
		},
		{
			name: "wrong password",
			req:  dto.LoginRequest{Email: user.Email, Password: "wrong-pass"},
			setupMock: func(userRepo *userMocks.MockUser, jwtService *jwtMocks.MockJWT) {
				userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
			},
			wantErr: errors.New("invalid email or password"),
		},
		{
			name: "deactivated account",
			req:  dto.LoginRequest{Email: user.Email, Password: "s3cret-pass"},
			setupMock: func(userRepo *userMocks.MockUser, jwtService *jwtMocks.MockJWT) {
				userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(inactive, nil)
			},
			wantErr: errors.New("user account is deactivated"),
		},
		{
			name: "token generation error",
			req:  dto.LoginRequest{Email: user.Email, Password: "s3cret-pass"},
			setupMock: func(userRepo *userMocks.MockUser, jwtService *jwtMocks.MockJWT) {
				userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
				jwtService.EXPECT().GenerateTokenPair(user.ID, user.Email, user.Role).Return(nil, errors.New("signing error"))
			},
			wantErr: errors.New("failed to generate tokens"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, userRepo, jwtService := newService(t)
			tt.setupMock(userRepo, jwtService)

			res, err := svc.Login(context.Background(), tt.req)

			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr.Error())

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tokenPair.AccessToken, res.AccessToken)
			assert.Equal(t, tokenPair.RefreshToken, res.RefreshToken)
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "new-access-token",
		RefreshToken: "new-refresh-token",
		ExpiresIn:    900,
	}

	tests := []struct {
		name      string
		setupMock func(jwtService *jwtMocks.MockJWT)
		wantErr   bool
	}{
		{
			name: "successful refresh",
			setupMock: func(jwtService *jwtMocks.MockJWT) {
				jwtService.EXPECT().RefreshTokens("refresh-token").Return(tokenPair, nil)
			},
		},
		{
			name: "invalid refresh token",
			setupMock: func(jwtService *jwtMocks.MockJWT) {
				jwtService.EXPECT().RefreshTokens("refresh-token").Return(nil, jwt.ErrInvalidToken)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, jwtService := newService(t)
			tt.setupMock(jwtService)

			res, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "refresh-token"})

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tokenPair.AccessToken, res.AccessToken)
		})
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	user := activeUser(t, "current-pass")

	req := dto.ChangePasswordRequest{
		CurrentPassword: "current-pass",
		NewPassword:     "brand-new-pass",
	}

	tests := []struct {
		name      string
		req       dto.ChangePasswordRequest
		setupMock func(userRepo *userMocks.MockUser)
		wantErr   error
	}{
		{
			name: "successful change",
			req:  req,
			setupMock: func(userRepo *userMocks.MockUser) {
				userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
				userRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "user not found",
			req:  req,
			setupMock: func(userRepo *userMocks.MockUser) {
				userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantErr: errors.New("user not found"),
		},
		{
			name: "wrong current password",
			req:  dto.ChangePasswordRequest{CurrentPassword: "wrong-pass", NewPassword: "brand-new-pass"},
			setupMock: func(userRepo *userMocks.MockUser) {
				userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
			},
			wantErr: errors.New("current password is incorrect"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, userRepo, _ := newService(t)
			tt.setupMock(userRepo)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			err := svc.ChangePassword(ctx, tt.req, user.ID)

			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr.Error())

				return
			}

			assert.NoError(t, err)
		})
	}
}
