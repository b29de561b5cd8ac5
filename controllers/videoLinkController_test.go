package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/DevotionHub/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func videoLinkRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"video_link_id", "year", "quarter", "lesson", "video_url"}).
		AddRow(1, 2026, 3, 5, "https://videos.example.com/q3-l5")
}

func TestGetVideoLinks(t *testing.T) {
	t.Run("filtered by year and quarter", func(t *testing.T) {
		_, mock, cleanup := SetupTestDB(t)
		defer cleanup()

		mock.ExpectQuery("SELECT").WillReturnRows(videoLinkRows())

		c, w := SetupTestContext()
		c.Request = httptest.NewRequest(http.MethodGet, "/sslLinks?year=2026&quarter=3", nil)

		GetVideoLinks(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response []models.VideoLink
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Len(t, response, 1)
		assert.Equal(t, 5, response[0].Lesson)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalid quarter", func(t *testing.T) {
		_, mock, cleanup := SetupTestDB(t)
		defer cleanup()

		c, w := SetupTestContext()
		c.Request = httptest.NewRequest(http.MethodGet, "/sslLinks?quarter=abc", nil)

		GetVideoLinks(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpsertVideoLink(t *testing.T) {
	tests := []struct {
		name           string
		payload        gin.H
		expectWrite    bool
		expectedStatus int
	}{
		{
			name: "insert or replace",
			payload: gin.H{
				"year":     2026,
				"quarter":  3,
				"lesson":   5,
				"videoUrl": "https://videos.example.com/q3-l5",
			},
			expectWrite:    true,
			expectedStatus: http.StatusOK,
		},
		{
			name: "missing videoUrl",
			payload: gin.H{
				"year":    2026,
				"quarter": 3,
				"lesson":  5,
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "quarter out of range",
			payload: gin.H{
				"year":     2026,
				"quarter":  7,
				"lesson":   5,
				"videoUrl": "https://videos.example.com/q7-l5",
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()

			if tt.expectWrite {
				mock.ExpectQuery("INSERT").WillReturnRows(videoLinkRows())
			}

			c, w := SetupTestContext()
			SetAuthenticatedUser(c, MockAdmin(), true)
			c.Request = jsonRequest(t, http.MethodPost, "/sslLinks", tt.payload)

			UpsertVideoLink(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
