package middlewares

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/okuznetsov/storefront-api/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestAuthenticator_Authenticate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	user := &models.UserDB{ID: 1, Username: "alice"}

	tests := []struct {
		name             string
		mockSetup        func(tok *MockTokener, users *MockUserFinder)
		expectedStatus   int
		expectedMessage  string
		expectNextCalled bool
	}{
		{
			name: "NoToken",
			mockSetup: func(tok *MockTokener, users *MockUserFinder) {
				tok.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).
					Return("", errors.New("authorization header missing"))
			},
			expectedStatus:  http.StatusForbidden,
			expectedMessage: "Token is missing!",
		},
		{
			name: "InvalidToken",
			mockSetup: func(tok *MockTokener, users *MockUserFinder) {
				tok.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).
					Return("sometoken", nil)
				tok.EXPECT().GetUserID(gomock.Any(), "sometoken").
					Return(int64(0), errors.New("token is expired"))
			},
			expectedStatus:  http.StatusForbidden,
			expectedMessage: "Token is invalid!",
		},
		{
			name: "UserLoadError",
			mockSetup: func(tok *MockTokener, users *MockUserFinder) {
				tok.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).
					Return("validtoken", nil)
				tok.EXPECT().GetUserID(gomock.Any(), "validtoken").
					Return(int64(1), nil)
				users.EXPECT().GetByID(gomock.Any(), int64(1)).
					Return(nil, errors.New("db error"))
			},
			expectedStatus:  http.StatusForbidden,
			expectedMessage: "Token is invalid!",
		},
		{
			name: "DeletedUser",
			mockSetup: func(tok *MockTokener, users *MockUserFinder) {
				tok.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).
					Return("validtoken", nil)
				tok.EXPECT().GetUserID(gomock.Any(), "validtoken").
					Return(int64(99), nil)
				users.EXPECT().GetByID(gomock.Any(), int64(99)).
					Return(nil, nil)
			},
			expectedStatus:  http.StatusForbidden,
			expectedMessage: "Token is invalid!",
		},
		{
			name: "ValidToken",
			mockSetup: func(tok *MockTokener, users *MockUserFinder) {
				tok.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).
					Return("validtoken", nil)
				tok.EXPECT().GetUserID(gomock.Any(), "validtoken").
					Return(int64(1), nil)
				users.EXPECT().GetByID(gomock.Any(), int64(1)).
					Return(user, nil)
			},
			expectedStatus:   http.StatusOK,
			expectNextCalled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockTokener := NewMockTokener(ctrl)
			mockUsers := NewMockUserFinder(ctrl)
			tt.mockSetup(mockTokener, mockUsers)

			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				assert.Equal(t, user, GetUserFromContext(r.Context()))
				w.WriteHeader(http.StatusOK)
			})

			handler := NewAuthenticator(mockTokener, mockUsers).Authenticate(next)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Equal(t, tt.expectNextCalled, nextCalled)

			if tt.expectedMessage != "" {
				var resp map[string]string
				assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, tt.expectedMessage, resp["message"])
			}
		})
	}
}

func TestAuthenticator_RequireAdmin(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name             string
		user             *models.UserDB
		expectedStatus   int
		expectedMessage  string
		expectNextCalled bool
	}{
		{
			name:             "NonAdminUser",
			user:             &models.UserDB{ID: 2, Username: "bob", IsAdmin: false},
			expectedStatus:   http.StatusForbidden,
			expectedMessage:  "Admin privileges required!",
			expectNextCalled: false,
		},
		{
			name:             "AdminUser",
			user:             &models.UserDB{ID: 3, Username: "root", IsAdmin: true},
			expectedStatus:   http.StatusOK,
			expectNextCalled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockTokener := NewMockTokener(ctrl)
			mockUsers := NewMockUserFinder(ctrl)

			mockTokener.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).
				Return("validtoken", nil)
			mockTokener.EXPECT().GetUserID(gomock.Any(), "validtoken").
				Return(tt.user.ID, nil)
			mockUsers.EXPECT().GetByID(gomock.Any(), tt.user.ID).
				Return(tt.user, nil)

			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				w.WriteHeader(http.StatusOK)
			})

			handler := NewAuthenticator(mockTokener, mockUsers).RequireAdmin(next)

			req := httptest.NewRequest(http.MethodPost, "/", nil)
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Equal(t, tt.expectNextCalled, nextCalled)

			if tt.expectedMessage != "" {
				var resp map[string]string
				assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, tt.expectedMessage, resp["message"])
			}
		})
	}
}

func TestRequireAdmin_NoToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTokener := NewMockTokener(ctrl)
	mockUsers := NewMockUserFinder(ctrl)

	mockTokener.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).
		Return("", errors.New("authorization header missing"))

	handler := NewAuthenticator(mockTokener, mockUsers).RequireAdmin(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("next handler must not be called")
		}),
	)

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestGetUserFromContext_Empty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Nil(t, GetUserFromContext(req.Context()))
}
