package controllers

import (
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/DevotionHub/models"
)

func resetTokenRows(userID int, token string, expiresAt time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"token_id", "user_id", "token", "expires_at", "used", "created_at"}).
		AddRow(1, userID, token, expiresAt, false, time.Now())
}

func TestForgotPassword(t *testing.T) {
	tests := []struct {
		name            string
		payload         interface{}
		userExists      bool
		expectedStatus  int
		expectedMessage string
	}{
		{
			name:            "known email stores a token and responds generically",
			payload:         models.ForgotPasswordRequest{Email: "learner@example.com"},
			userExists:      true,
			expectedStatus:  http.StatusOK,
			expectedMessage: "If this email exists in our system, a password reset link has been sent.",
		},
		{
			name:            "unknown email gets the same response",
			payload:         models.ForgotPasswordRequest{Email: "nobody@example.com"},
			userExists:      false,
			expectedStatus:  http.StatusOK,
			expectedMessage: "If this email exists in our system, a password reset link has been sent.",
		},
		{
			name:           "invalid email",
			payload:        gin.H{"email": "not-an-email"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing email",
			payload:        gin.H{},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()

			if tt.expectedStatus == http.StatusOK {
				if tt.userExists {
					mock.ExpectQuery("SELECT").WillReturnRows(userRows(MockLearner()))
					mock.ExpectExec("INSERT").WillReturnResult(sqlmock.NewResult(1, 1))
				} else {
					mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"user_id"}))
				}
			}

			c, w := SetupTestContext()
			c.Request = jsonRequest(t, "POST", "/users/forgot-password", tt.payload)

			ForgotPassword(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedMessage != "" {
				assert.Contains(t, w.Body.String(), tt.expectedMessage)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestResetPassword(t *testing.T) {
	tests := []struct {
		name           string
		token          string
		payload        interface{}
		tokenValid     bool
		expectedStatus int
	}{
		{
			name:           "valid token resets the password",
			token:          "good-token",
			payload:        models.ResetPasswordRequest{NewPassword: "newSecret1"},
			tokenValid:     true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "unknown or expired token",
			token:          "stale-token",
			payload:        models.ResetPasswordRequest{NewPassword: "newSecret1"},
			tokenValid:     false,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "password too short",
			token:          "good-token",
			payload:        gin.H{"newPassword": "abc"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()

			if tt.expectedStatus != http.StatusBadRequest {
				if tt.tokenValid {
					mock.ExpectQuery("SELECT").
						WillReturnRows(resetTokenRows(1, tt.token, time.Now().Add(10*time.Minute)))
					mock.ExpectExec("UPDATE").WillReturnResult(sqlmock.NewResult(0, 1))
					mock.ExpectExec("UPDATE").WillReturnResult(sqlmock.NewResult(0, 1))
				} else {
					mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"token_id"}))
				}
			}

			c, w := SetupTestContext()
			c.Request = jsonRequest(t, "POST", "/users/reset-password/"+tt.token, tt.payload)
			c.Params = append(c.Params, gin.Param{Key: "token", Value: tt.token})

			ResetPassword(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGenerateResetToken(t *testing.T) {
	first, err := generateResetToken()
	assert.NoError(t, err)
	second, err := generateResetToken()
	assert.NoError(t, err)

	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second)
	// base64url of 32 bytes, including padding
	assert.Len(t, first, 44)
}
