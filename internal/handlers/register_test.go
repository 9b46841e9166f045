package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/okuznetsov/storefront-api/internal/models"
	"github.com/okuznetsov/storefront-api/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestRegisterHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	createdUser := &models.UserDB{ID: 1, Email: "john@example.com", Username: "john"}

	tests := []struct {
		name            string
		body            string
		mockSetup       func(m *MockRegisterer)
		expectedCode    int
		expectedMessage string
	}{
		{
			name: "success",
			body: `{"email":"john@example.com","username":"john","password":"secret"}`,
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().
					Register(gomock.Any(), "john@example.com", "john", "secret", false).
					Return(createdUser, "signed-token", nil)
			},
			expectedCode:    http.StatusCreated,
			expectedMessage: "User registered successfully",
		},
		{
			name: "admin flag passed through",
			body: `{"email":"root@example.com","username":"root","password":"secret","is_admin":true}`,
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().
					Register(gomock.Any(), "root@example.com", "root", "secret", true).
					Return(&models.UserDB{ID: 2, Email: "root@example.com", Username: "root", IsAdmin: true}, "signed-token", nil)
			},
			expectedCode:    http.StatusCreated,
			expectedMessage: "User registered successfully",
		},
		{
			name: "email already registered",
			body: `{"email":"john@example.com","username":"john2","password":"secret"}`,
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().
					Register(gomock.Any(), "john@example.com", "john2", "secret", false).
					Return(nil, "", services.ErrEmailAlreadyRegistered)
			},
			expectedCode:    http.StatusBadRequest,
			expectedMessage: "Email already registered",
		},
		{
			name: "username already taken",
			body: `{"email":"john2@example.com","username":"john","password":"secret"}`,
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().
					Register(gomock.Any(), "john2@example.com", "john", "secret", false).
					Return(nil, "", services.ErrUsernameAlreadyTaken)
			},
			expectedCode:    http.StatusBadRequest,
			expectedMessage: "Username already taken",
		},
		{
			name:            "missing fields",
			body:            `{"email":"john@example.com"}`,
			expectedCode:    http.StatusBadRequest,
			expectedMessage: "Email, username and password are required",
		},
		{
			name:            "invalid json",
			body:            `{invalid json}`,
			expectedCode:    http.StatusBadRequest,
			expectedMessage: "Invalid request body",
		},
		{
			name: "internal server error",
			body: `{"email":"bob@example.com","username":"bob","password":"secret"}`,
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().
					Register(gomock.Any(), "bob@example.com", "bob", "secret", false).
					Return(nil, "", errors.New("database failure"))
			},
			expectedCode:    http.StatusInternalServerError,
			expectedMessage: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockRegisterer(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			handler := NewRegisterHandler(mockSvc)

			req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()
			handler(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			var resp map[string]any
			assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tt.expectedMessage, resp["message"])

			if tt.expectedCode == http.StatusCreated {
				assert.NotEmpty(t, resp["token"])
				user, ok := resp["user"].(map[string]any)
				assert.True(t, ok)
				assert.NotEmpty(t, user["username"])
			}
		})
	}
}
