package controllers

import (
	"crypto/rand"
	"encoding/base64"
	"log"
	"net/http"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/DevotionHub/initializers"
	"github.com/DevotionHub/models"
	"github.com/DevotionHub/services"
)

const resetTokenTTL = 15 * time.Minute

// ForgotPassword starts the password reset flow. The response is the same
// whether or not the email exists, so the endpoint cannot be used to probe
// for registered accounts.
func ForgotPassword(c *gin.Context) {
	var req models.ForgotPasswordRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Valid email address is required", "details": err.Error()})
		return
	}

	genericResponse := gin.H{
		"message": "If this email exists in our system, a password reset link has been sent.",
	}

	var user models.UserAccount
	found, err := initializers.DB.From("user_account").
		Select("*").
		Where(goqu.C("email").Eq(req.Email)).
		ScanStruct(&user)

	if err != nil || !found {
		c.JSON(http.StatusOK, genericResponse)
		return
	}

	token, err := generateResetToken()
	if err != nil {
		log.Printf("Failed to generate password reset token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process password reset request"})
		return
	}

	resetToken := models.PasswordResetToken{
		User_ID:    user.User_ID,
		Token:      token,
		Expires_At: time.Now().Add(resetTokenTTL),
		Used:       false,
	}

	insert := initializers.DB.Insert("password_reset_token").Rows(resetToken).Executor()
	if _, err := insert.Exec(); err != nil {
		log.Printf("Failed to store password reset token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process password reset request"})
		return
	}

	// Delivery failures are logged but never surfaced, to keep the
	// response independent of whether the account exists.
	if emailService := services.GetEmailService(); emailService != nil {
		if err := emailService.SendPasswordResetEmail(user.Email, token, user.First_Name); err != nil {
			log.Printf("Failed to send password reset email to user %d: %v", user.User_ID, err)
		}
	} else {
		log.Println("Email service not initialized, skipping password reset email")
	}

	c.JSON(http.StatusOK, genericResponse)
}

// ResetPassword sets a new password for the user identified by the token
// in the URL, then invalidates all of that user's outstanding tokens.
func ResetPassword(c *gin.Context) {
	token := c.Param("token")

	var req models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 6 characters long", "details": err.Error()})
		return
	}

	var resetToken models.PasswordResetToken
	found, err := initializers.DB.From("password_reset_token").
		Select("*").
		Where(goqu.And(
			goqu.C("token").Eq(token),
			goqu.C("used").Eq(false),
			goqu.C("expires_at").Gt(time.Now()),
		)).
		ScanStruct(&resetToken)

	if err != nil || !found {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired reset token"})
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset password"})
		return
	}

	updatePassword := initializers.DB.Update("user_account").
		Set(goqu.Record{
			"password":        string(passwordHash),
			"datetime_update": time.Now(),
		}).
		Where(goqu.C("user_id").Eq(resetToken.User_ID)).
		Executor()

	if _, err := updatePassword.Exec(); err != nil {
		log.Printf("Failed to update password: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset password"})
		return
	}

	markUsed := initializers.DB.Update("password_reset_token").
		Set(goqu.Record{"used": true}).
		Where(goqu.C("user_id").Eq(resetToken.User_ID)).
		Executor()

	if _, err := markUsed.Exec(); err != nil {
		log.Printf("Failed to mark reset tokens as used: %v", err)
	}

	log.Printf("Password successfully reset for user %d", resetToken.User_ID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Password reset successfully. You can now login with your new password.",
	})
}

func generateResetToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(bytes), nil
}
