package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/DevotionHub/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func dailyDevotionRows(devotionID int, month, day string, year int) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"devotion_id", "month", "day", "year", "title", "chapter", "verse", "prayer", "image_url", "datetime_create", "datetime_update"}).
		AddRow(devotionID, month, day, year, "Daily Reading", "Psalm 23", "1", "Amen.", "", now, now)
}

func TestGetDevotions(t *testing.T) {
	t.Run("invalid limit", func(t *testing.T) {
		_, mock, cleanup := SetupTestDB(t)
		defer cleanup()

		c, w := SetupTestContext()
		c.Request = httptest.NewRequest(http.MethodGet, "/devotion?limit=bogus", nil)

		GetDevotions(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns devotions", func(t *testing.T) {
		_, mock, cleanup := SetupTestDB(t)
		defer cleanup()

		mock.ExpectQuery("SELECT").WillReturnRows(dailyDevotionRows(1, "መስከረም", "1", 2017))

		c, w := SetupTestContext()
		c.Request = httptest.NewRequest(http.MethodGet, "/devotion?limit=10", nil)

		GetDevotions(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response []models.Devotion
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Len(t, response, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetTodayDevotion(t *testing.T) {
	t.Run("found on first day", func(t *testing.T) {
		_, mock, cleanup := SetupTestDB(t)
		defer cleanup()

		mock.ExpectQuery("SELECT").WillReturnRows(dailyDevotionRows(1, "መስከረም", "1", 2017))

		c, w := SetupTestContext()
		GetTodayDevotion(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("falls back to an earlier day", func(t *testing.T) {
		_, mock, cleanup := SetupTestDB(t)
		defer cleanup()

		mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"devotion_id"}))
		mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"devotion_id"}))
		mock.ExpectQuery("SELECT").WillReturnRows(dailyDevotionRows(1, "መስከረም", "1", 2017))

		c, w := SetupTestContext()
		GetTodayDevotion(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nothing within the lookback window", func(t *testing.T) {
		_, mock, cleanup := SetupTestDB(t)
		defer cleanup()

		for i := 0; i <= todayLookback; i++ {
			mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"devotion_id"}))
		}

		c, w := SetupTestContext()
		GetTodayDevotion(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetDevotionsByYearAndMonth(t *testing.T) {
	t.Run("unknown month rejected", func(t *testing.T) {
		_, mock, cleanup := SetupTestDB(t)
		defer cleanup()

		c, w := SetupTestContext()
		c.Params = append(c.Params,
			gin.Param{Key: "year", Value: "2017"},
			gin.Param{Key: "month", Value: "January"})

		GetDevotionsByYearAndMonth(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("days sorted descending", func(t *testing.T) {
		_, mock, cleanup := SetupTestDB(t)
		defer cleanup()

		rows := dailyDevotionRows(1, "መስከረም", "3", 2017).
			AddRow(2, "መስከረም", "12", 2017, "Daily Reading", "Psalm 24", "1", "Amen.", "", time.Now(), time.Now()).
			AddRow(3, "መስከረም", "7", 2017, "Daily Reading", "Psalm 25", "1", "Amen.", "", time.Now(), time.Now())
		mock.ExpectQuery("SELECT").WillReturnRows(rows)

		c, w := SetupTestContext()
		c.Params = append(c.Params,
			gin.Param{Key: "year", Value: "2017"},
			gin.Param{Key: "month", Value: "መስከረም"})

		GetDevotionsByYearAndMonth(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response []models.Devotion
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Len(t, response, 3)
		assert.Equal(t, "12", response[0].Day)
		assert.Equal(t, "7", response[1].Day)
		assert.Equal(t, "3", response[2].Day)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestToggleLike(t *testing.T) {
	t.Run("first like inserts", func(t *testing.T) {
		_, mock, cleanup := SetupTestDB(t)
		defer cleanup()

		mock.ExpectQuery("SELECT").WillReturnRows(countRow(1))
		mock.ExpectQuery("SELECT").WillReturnRows(countRow(0))
		mock.ExpectExec("INSERT").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("SELECT").WillReturnRows(countRow(1))

		c, w := SetupTestContext()
		SetAuthenticatedUser(c, MockLearner(), false)
		c.Params = append(c.Params, gin.Param{Key: "id", Value: "1"})

		ToggleLike(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"liked":true`)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("second like removes", func(t *testing.T) {
		_, mock, cleanup := SetupTestDB(t)
		defer cleanup()

		mock.ExpectQuery("SELECT").WillReturnRows(countRow(1))
		mock.ExpectQuery("SELECT").WillReturnRows(countRow(1))
		mock.ExpectExec("DELETE").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("SELECT").WillReturnRows(countRow(0))

		c, w := SetupTestContext()
		SetAuthenticatedUser(c, MockLearner(), false)
		c.Params = append(c.Params, gin.Param{Key: "id", Value: "1"})

		ToggleLike(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"liked":false`)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing devotion", func(t *testing.T) {
		_, mock, cleanup := SetupTestDB(t)
		defer cleanup()

		mock.ExpectQuery("SELECT").WillReturnRows(countRow(0))

		c, w := SetupTestContext()
		SetAuthenticatedUser(c, MockLearner(), false)
		c.Params = append(c.Params, gin.Param{Key: "id", Value: "99"})

		ToggleLike(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetLikes(t *testing.T) {
	t.Run("anonymous caller", func(t *testing.T) {
		_, mock, cleanup := SetupTestDB(t)
		defer cleanup()

		mock.ExpectQuery("SELECT").WillReturnRows(countRow(4))

		c, w := SetupTestContext()
		c.Params = append(c.Params, gin.Param{Key: "id", Value: "1"})

		GetLikes(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"likedByMe":false`)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("authenticated caller who liked", func(t *testing.T) {
		_, mock, cleanup := SetupTestDB(t)
		defer cleanup()

		mock.ExpectQuery("SELECT").WillReturnRows(countRow(4))
		mock.ExpectQuery("SELECT").WillReturnRows(countRow(1))

		c, w := SetupTestContext()
		SetAuthenticatedUser(c, MockLearner(), false)
		c.Params = append(c.Params, gin.Param{Key: "id", Value: "1"})

		GetLikes(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"likedByMe":true`)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDeleteComment(t *testing.T) {
	commentRows := func(userID int) *sqlmock.Rows {
		return sqlmock.NewRows([]string{"comment_id", "devotion_id", "user_id", "body", "datetime_create"}).
			AddRow(7, 1, userID, "Blessed reading.", time.Now())
	}

	t.Run("own comment", func(t *testing.T) {
		_, mock, cleanup := SetupTestDB(t)
		defer cleanup()

		mock.ExpectQuery("SELECT").WillReturnRows(commentRows(1))
		mock.ExpectExec("DELETE").WillReturnResult(sqlmock.NewResult(0, 1))

		c, w := SetupTestContext()
		SetAuthenticatedUser(c, MockLearner(), false)
		c.Params = append(c.Params, gin.Param{Key: "commentId", Value: "7"})

		DeleteComment(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("someone else's comment", func(t *testing.T) {
		_, mock, cleanup := SetupTestDB(t)
		defer cleanup()

		mock.ExpectQuery("SELECT").WillReturnRows(commentRows(42))

		c, w := SetupTestContext()
		SetAuthenticatedUser(c, MockLearner(), false)
		c.Params = append(c.Params, gin.Param{Key: "commentId", Value: "7"})

		DeleteComment(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("admin may delete any comment", func(t *testing.T) {
		_, mock, cleanup := SetupTestDB(t)
		defer cleanup()

		mock.ExpectQuery("SELECT").WillReturnRows(commentRows(42))
		mock.ExpectExec("DELETE").WillReturnResult(sqlmock.NewResult(0, 1))

		c, w := SetupTestContext()
		SetAuthenticatedUser(c, MockAdmin(), true)
		c.Params = append(c.Params, gin.Param{Key: "commentId", Value: "7"})

		DeleteComment(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
