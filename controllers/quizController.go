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

func GetQuizzes(c *gin.Context) {
	var quizzes []models.Quiz
	err := initializers.DB.From("quiz").
		Select("*").
		Order(goqu.C("datetime_create").Asc()).
		ScanStructs(&quizzes)
	if err != nil {
		log.Println("Error listing quizzes:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch quizzes"})
		return
	}
	if quizzes == nil {
		quizzes = []models.Quiz{}
	}
	c.JSON(http.StatusOK, quizzes)
}

func GetQuiz(c *gin.Context) {
	quizID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quiz ID"})
		return
	}

	var quiz models.Quiz
	found, err := initializers.DB.From("quiz").
		Select("*").
		Where(goqu.C("quiz_id").Eq(quizID)).
		ScanStruct(&quiz)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch quiz"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Quiz not found"})
		return
	}

	c.JSON(http.StatusOK, quiz)
}

func CreateQuiz(c *gin.Context) {
	var body models.QuizCreate
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(body.Questions) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "questions is required"})
		return
	}

	var created models.Quiz
	_, err := initializers.DB.Insert("quiz").
		Rows(goqu.Record{"questions": body.Questions}).
		Returning("*").
		Executor().ScanStruct(&created)
	if err != nil {
		log.Println("Error creating quiz:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create quiz"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

func UpdateQuiz(c *gin.Context) {
	quizID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quiz ID"})
		return
	}

	var body models.QuizCreate
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(body.Questions) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "questions is required"})
		return
	}

	var updated models.Quiz
	found, err := initializers.DB.Update("quiz").
		Set(goqu.Record{
			"questions":       body.Questions,
			"datetime_update": time.Now(),
		}).
		Where(goqu.C("quiz_id").Eq(quizID)).
		Returning("*").
		Executor().ScanStruct(&updated)
	if err != nil {
		log.Println("Error updating quiz:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update quiz"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Quiz not found"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

func DeleteQuiz(c *gin.Context) {
	quizID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quiz ID"})
		return
	}

	result, err := initializers.DB.Delete("quiz").
		Where(goqu.C("quiz_id").Eq(quizID)).
		Executor().Exec()
	if err != nil {
		log.Println("Error deleting quiz:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete quiz"})
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Quiz not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Quiz deleted successfully"})
}
