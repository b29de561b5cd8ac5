package controllers

import (
	"log"
	"net/http"
	"net/mail"

	"github.com/gin-gonic/gin"

	"github.com/DevotionHub/initializers"
	"github.com/DevotionHub/models"
	"github.com/DevotionHub/services"
)

// SendContactMessage validates and persists a contact form submission,
// then notifies the site owner. Notification failures do not fail the
// request.
func SendContactMessage(c *gin.Context) {
	var body models.ContactCreate
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if body.First_Name == "" || body.Last_Name == "" || body.Email == "" || body.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required."})
		return
	}
	if _, err := mail.ParseAddress(body.Email); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email address."})
		return
	}

	message := models.ContactMessage{
		First_Name: body.First_Name,
		Last_Name:  body.Last_Name,
		Email:      body.Email,
		Message:    body.Message,
	}

	if _, err := initializers.DB.Insert("contact_message").
		Rows(message).
		Executor().Exec(); err != nil {
		log.Println("Error saving contact message:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error saving contact message."})
		return
	}

	if emailService := services.GetEmailService(); emailService != nil {
		if err := emailService.SendContactNotification(
			body.First_Name, body.Last_Name, body.Email, body.Message); err != nil {
			log.Println("Contact notification failed:", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Contact message saved successfully."})
}
