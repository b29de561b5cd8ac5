package controllers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DevotionHub/initializers"
	"github.com/DevotionHub/models"
	"github.com/doug-martin/goqu/v9"
)

func countRows(table string, conditions ...goqu.Expression) (int, error) {
	query := initializers.DB.From(table)
	if len(conditions) > 0 {
		query = query.Where(conditions...)
	}
	count, err := query.Count()
	return int(count), err
}

// GetAnalytics recomputes the dashboard counters over fixed windows and
// upserts the singleton snapshot row before returning it.
func GetAnalytics(c *gin.Context) {
	now := time.Now()
	dayAgo := now.Add(-24 * time.Hour)
	weekAgo := now.AddDate(0, 0, -7)
	monthAgo := now.AddDate(0, 0, -30)
	twoMonthsAgo := now.AddDate(0, 0, -60)

	snapshot := models.AnalyticsSnapshot{}
	var err error

	if snapshot.Total_Users, err = countRows("user_account"); err != nil {
		log.Println("Error counting users:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute analytics"})
		return
	}
	if snapshot.New_Users, err = countRows("user_account",
		goqu.C("datetime_create").Gte(monthAgo)); err != nil {
		log.Println("Error counting new users:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute analytics"})
		return
	}
	if snapshot.Total_Courses, err = countRows("course"); err != nil {
		log.Println("Error counting courses:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute analytics"})
		return
	}
	if snapshot.New_Courses, err = countRows("course",
		goqu.C("datetime_create").Gte(monthAgo)); err != nil {
		log.Println("Error counting new courses:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute analytics"})
		return
	}
	if snapshot.Accounts_Reached, err = countRows("user_account",
		goqu.C("last_login").Gte(monthAgo)); err != nil {
		log.Println("Error counting reached accounts:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute analytics"})
		return
	}
	if snapshot.Users_Left, err = countRows("user_account",
		goqu.C("last_login").Lt(twoMonthsAgo)); err != nil {
		log.Println("Error counting departed users:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute analytics"})
		return
	}
	if snapshot.Daily_Active_Users, err = countRows("user_account",
		goqu.C("last_login").Gte(dayAgo)); err != nil {
		log.Println("Error counting daily active users:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute analytics"})
		return
	}
	if snapshot.Weekly_Active_Users, err = countRows("user_account",
		goqu.C("last_login").Gte(weekAgo)); err != nil {
		log.Println("Error counting weekly active users:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute analytics"})
		return
	}
	if snapshot.Total_Devotions, err = countRows("devotion"); err != nil {
		log.Println("Error counting devotions:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute analytics"})
		return
	}
	if snapshot.New_Devotions, err = countRows("devotion",
		goqu.C("datetime_create").Gte(monthAgo)); err != nil {
		log.Println("Error counting new devotions:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute analytics"})
		return
	}

	record := goqu.Record{
		"new_users":           snapshot.New_Users,
		"total_users":         snapshot.Total_Users,
		"new_courses":         snapshot.New_Courses,
		"total_courses":       snapshot.Total_Courses,
		"accounts_reached":    snapshot.Accounts_Reached,
		"users_left":          snapshot.Users_Left,
		"daily_active_users":  snapshot.Daily_Active_Users,
		"weekly_active_users": snapshot.Weekly_Active_Users,
		"total_devotions":     snapshot.Total_Devotions,
		"new_devotions":       snapshot.New_Devotions,
		"datetime_update":     now,
	}

	var existing models.AnalyticsSnapshot
	found, err := initializers.DB.From("analytics").
		Select("*").
		Order(goqu.C("analytics_id").Asc()).
		Limit(1).
		ScanStruct(&existing)
	if err != nil {
		log.Println("Error loading analytics row:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute analytics"})
		return
	}

	var saved models.AnalyticsSnapshot
	if found {
		// Last writer wins when requests race; a dashboard metric does
		// not need stronger guarantees.
		_, err = initializers.DB.Update("analytics").
			Set(record).
			Where(goqu.C("analytics_id").Eq(existing.Analytics_ID)).
			Returning("*").
			Executor().ScanStruct(&saved)
	} else {
		_, err = initializers.DB.Insert("analytics").
			Rows(record).
			Returning("*").
			Executor().ScanStruct(&saved)
	}
	if err != nil {
		log.Println("Error saving analytics snapshot:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save analytics"})
		return
	}

	c.JSON(http.StatusOK, saved)
}
