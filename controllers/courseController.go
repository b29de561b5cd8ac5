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

func GetCourses(c *gin.Context) {
	var courses []models.Course
	err := initializers.DB.From("course").
		Select("*").
		Order(goqu.C("datetime_create").Asc()).
		ScanStructs(&courses)
	if err != nil {
		log.Println("Error listing courses:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch courses"})
		return
	}
	if courses == nil {
		courses = []models.Course{}
	}
	c.JSON(http.StatusOK, courses)
}

func GetCourse(c *gin.Context) {
	courseID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid course ID"})
		return
	}

	var course models.Course
	found, err := initializers.DB.From("course").
		Select("*").
		Where(goqu.C("course_id").Eq(courseID)).
		ScanStruct(&course)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch course"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}

	c.JSON(http.StatusOK, course)
}

func CreateCourse(c *gin.Context) {
	var body models.CourseCreate
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(body.Elements) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "elements is required"})
		return
	}

	var created models.Course
	_, err := initializers.DB.Insert("course").
		Rows(goqu.Record{"elements": body.Elements}).
		Returning("*").
		Executor().ScanStruct(&created)
	if err != nil {
		log.Println("Error creating course:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create course"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

func UpdateCourse(c *gin.Context) {
	courseID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid course ID"})
		return
	}

	var body models.CourseCreate
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(body.Elements) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "elements is required"})
		return
	}

	var updated models.Course
	found, err := initializers.DB.Update("course").
		Set(goqu.Record{
			"elements":        body.Elements,
			"datetime_update": time.Now(),
		}).
		Where(goqu.C("course_id").Eq(courseID)).
		Returning("*").
		Executor().ScanStruct(&updated)
	if err != nil {
		log.Println("Error updating course:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update course"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

func DeleteCourse(c *gin.Context) {
	courseID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid course ID"})
		return
	}

	result, err := initializers.DB.Delete("course").
		Where(goqu.C("course_id").Eq(courseID)).
		Executor().Exec()
	if err != nil {
		log.Println("Error deleting course:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete course"})
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Course deleted successfully"})
}
