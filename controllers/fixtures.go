package controllers

import (
	"time"

	"github.com/DevotionHub/models"
	"golang.org/x/crypto/bcrypt"
)

// Test fixture data for use in tests

// MockLearner creates a sample learner account for testing
func MockLearner() models.UserAccount {
	return models.UserAccount{
		User_ID:         1,
		First_Name:      "Test",
		Last_Name:       "Learner",
		Email:           "learner@example.com",
		Role:            models.RoleLearner,
		Datetime_Create: time.Now(),
		Datetime_Update: time.Now(),
	}
}

// MockAdmin creates a sample admin account for testing
func MockAdmin() models.UserAccount {
	admin := MockLearner()
	admin.User_ID = 2
	admin.Email = "admin@example.com"
	admin.Role = models.RoleAdmin
	return admin
}

// MockLearnerWithPassword creates a learner whose password is "password123"
func MockLearnerWithPassword() models.UserAccount {
	user := MockLearner()
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user.Password = string(hashed)
	return user
}

// MockPlan creates a sample devotion plan for testing
func MockPlan() models.DevotionPlan {
	published := true
	return models.DevotionPlan{
		Plan_ID:         1,
		Title:           "Thirty Days in the Psalms",
		Description:     "A month of morning readings",
		Published:       &published,
		Datetime_Create: time.Now(),
		Datetime_Update: time.Now(),
	}
}
