package controllers

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"

	"github.com/DevotionHub/initializers"
	"github.com/DevotionHub/models"
	"github.com/DevotionHub/services"
	"github.com/doug-martin/goqu/v9"
	"golang.org/x/crypto/bcrypt"
)

func createToken(userID int) (string, error) {
	claims := jwt.MapClaims{
		"_id": userID,
		"exp": time.Now().Add(72 * time.Hour).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(os.Getenv("SECRET")))
}

// UserSignup handles multipart signup with an optional avatar image.
func UserSignup(c *gin.Context) {
	firstName := c.PostForm("firstName")
	lastName := c.PostForm("lastName")
	email := c.PostForm("email")
	password := c.PostForm("password")

	if firstName == "" || lastName == "" || email == "" || password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields must be filled"})
		return
	}

	existing, err := initializers.DB.From("user_account").
		Select("email").
		Where(goqu.C("email").Eq(email)).
		Count()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if existing > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email already in use"})
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	avatarURL := ""
	if file, err := c.FormFile("avatar"); err == nil {
		uploader := services.GetAssetService()
		if uploader == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Asset service unavailable"})
			return
		}
		avatarURL, err = uploader.UploadImage(c.Request.Context(), file, "Users")
		if err != nil {
			log.Println("Avatar upload failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload avatar"})
			return
		}
	}

	newUser := models.UserAccount{
		First_Name: firstName,
		Last_Name:  lastName,
		Email:      email,
		Password:   string(passwordHash),
		Role:       models.RoleLearner,
		Avatar_URL: avatarURL,
	}

	var created models.UserAccount
	insert := initializers.DB.Insert("user_account").
		Rows(newUser).
		Returning("*")
	if _, err := insert.Executor().ScanStruct(&created); err != nil {
		log.Println("Error creating user:", err)
		if avatarURL != "" {
			if uploader := services.GetAssetService(); uploader != nil {
				if derr := uploader.DeleteFile(c.Request.Context(), avatarURL); derr != nil {
					log.Println("Failed to clean up avatar after insert error:", derr)
				}
			}
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	token, err := createToken(created.User_ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User created successfully.",
		"token":   token,
		"user":    created,
	})
}

func UserLogin(c *gin.Context) {
	var login models.Login

	if err := c.ShouldBindJSON(&login); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var dbUser models.UserAccount
	found, err := initializers.DB.From("user_account").
		Select("*").
		Where(goqu.C("email").Eq(login.Email)).
		ScanStruct(&dbUser)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !found {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email not found"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(dbUser.Password), []byte(login.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid password"})
		return
	}

	if _, err := initializers.DB.Update("user_account").
		Set(goqu.Record{"last_login": time.Now()}).
		Where(goqu.C("user_id").Eq(dbUser.User_ID)).
		Executor().Exec(); err != nil {
		log.Println("Failed to record last login:", err)
	}

	token, err := createToken(dbUser.User_ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User logged in successfully.",
		"token":   token,
		"user":    dbUser,
	})
}

func GetUserProfile(c *gin.Context) {
	user, _ := c.Get("currentUser")

	c.JSON(http.StatusOK, gin.H{
		"user":  user,
		"admin": c.GetBool("admin"),
	})
}

func UpdateUserProfile(c *gin.Context) {
	currentUser := c.MustGet("currentUser").(models.UserAccount)

	var update models.UserAccountUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record := goqu.Record{"datetime_update": time.Now()}
	if update.First_Name != nil {
		record["first_name"] = *update.First_Name
	}
	if update.Last_Name != nil {
		record["last_name"] = *update.Last_Name
	}
	if update.Email != nil {
		record["email"] = *update.Email
	}

	var updated models.UserAccount
	_, err := initializers.DB.Update("user_account").
		Set(record).
		Where(goqu.C("user_id").Eq(currentUser.User_ID)).
		Returning("*").
		Executor().ScanStruct(&updated)
	if err != nil {
		log.Println("Error updating profile:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully.", "user": updated})
}

func ChangeUserPassword(c *gin.Context) {
	currentUser := c.MustGet("currentUser").(models.UserAccount)

	var body models.ChangePassword
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if body.New_Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "New password is required"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(currentUser.Password), []byte(body.Old_Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Current password is incorrect"})
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(body.New_Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	if _, err := initializers.DB.Update("user_account").
		Set(goqu.Record{"password": string(passwordHash), "datetime_update": time.Now()}).
		Where(goqu.C("user_id").Eq(currentUser.User_ID)).
		Executor().Exec(); err != nil {
		log.Println("Error changing password:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to change password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully."})
}

func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}
