package controllers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DevotionHub/initializers"
	"github.com/DevotionHub/models"
	"github.com/doug-martin/goqu/v9"
)

// GetVideoLinks lists lesson video links, defaulting to the current
// year. Quarter and lesson narrow the result when given.
func GetVideoLinks(c *gin.Context) {
	year := time.Now().Year()
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
			return
		}
		year = parsed
	}

	query := initializers.DB.From("video_link").
		Select("*").
		Where(goqu.C("year").Eq(year)).
		Order(goqu.C("quarter").Asc(), goqu.C("lesson").Asc())

	if raw := c.Query("quarter"); raw != "" {
		quarter, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quarter"})
			return
		}
		query = query.Where(goqu.C("quarter").Eq(quarter))
	}
	if raw := c.Query("lesson"); raw != "" {
		lesson, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lesson"})
			return
		}
		query = query.Where(goqu.C("lesson").Eq(lesson))
	}

	var links []models.VideoLink
	if err := query.ScanStructs(&links); err != nil {
		log.Println("Error listing video links:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch video links"})
		return
	}
	if links == nil {
		links = []models.VideoLink{}
	}
	c.JSON(http.StatusOK, links)
}

// UpsertVideoLink writes a link keyed on (year, quarter, lesson). An
// existing row for the triple gets its URL replaced instead of raising
// a uniqueness error.
func UpsertVideoLink(c *gin.Context) {
	var body models.VideoLinkUpsert
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if body.Year == 0 || body.Quarter == 0 || body.Lesson == 0 || body.Video_URL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year, quarter, lesson and videoUrl are required"})
		return
	}
	if body.Quarter < 1 || body.Quarter > 4 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quarter must be between 1 and 4"})
		return
	}

	var saved models.VideoLink
	_, err := initializers.DB.Insert("video_link").
		Rows(goqu.Record{
			"year":      body.Year,
			"quarter":   body.Quarter,
			"lesson":    body.Lesson,
			"video_url": body.Video_URL,
		}).
		OnConflict(goqu.DoUpdate("year, quarter, lesson",
			goqu.Record{"video_url": body.Video_URL})).
		Returning("*").
		Executor().ScanStruct(&saved)
	if err != nil {
		log.Println("Error upserting video link:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save video link"})
		return
	}

	c.JSON(http.StatusOK, saved)
}

func DeleteVideoLink(c *gin.Context) {
	linkID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid video link ID"})
		return
	}

	result, err := initializers.DB.Delete("video_link").
		Where(goqu.C("video_link_id").Eq(linkID)).
		Executor().Exec()
	if err != nil {
		log.Println("Error deleting video link:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete video link"})
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Video link not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Video link deleted successfully"})
}
