package controllers

import (
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestSendContactMessage(t *testing.T) {
	tests := []struct {
		name           string
		payload        gin.H
		expectInsert   bool
		expectedStatus int
	}{
		{
			name: "successful submission",
			payload: gin.H{
				"firstName": "Hanna",
				"lastName":  "Tesfaye",
				"email":     "hanna@example.com",
				"message":   "Thank you for the daily readings.",
			},
			expectInsert:   true,
			expectedStatus: http.StatusOK,
		},
		{
			name: "missing message",
			payload: gin.H{
				"firstName": "Hanna",
				"lastName":  "Tesfaye",
				"email":     "hanna@example.com",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "invalid email",
			payload: gin.H{
				"firstName": "Hanna",
				"lastName":  "Tesfaye",
				"email":     "not-an-email",
				"message":   "Hello",
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()

			if tt.expectInsert {
				mock.ExpectExec("INSERT").WillReturnResult(sqlmock.NewResult(1, 1))
			}

			c, w := SetupTestContext()
			c.Request = jsonRequest(t, http.MethodPost, "/contact", tt.payload)

			SendContactMessage(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
