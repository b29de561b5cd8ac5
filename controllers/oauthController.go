package controllers

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DevotionHub/initializers"
	"github.com/DevotionHub/models"
	"github.com/doug-martin/goqu/v9"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

const oauthStateCookie = "oauth_state"

func googleOAuthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		RedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint:     google.Endpoint,
	}
}

// GoogleLogin redirects the browser into the Google consent flow.
func GoogleLogin(c *gin.Context) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start OAuth flow"})
		return
	}
	state := hex.EncodeToString(buf)

	c.SetCookie(oauthStateCookie, state, int(10*time.Minute/time.Second), "/", "", false, true)
	c.Redirect(http.StatusTemporaryRedirect, googleOAuthConfig().AuthCodeURL(state))
}

// GoogleCallback exchanges the authorization code, verifies the ID
// token Google returned, and issues our own JWT.
func GoogleCallback(c *gin.Context) {
	state, err := c.Cookie(oauthStateCookie)
	if err != nil || state == "" || c.Query("state") != state {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid OAuth state"})
		return
	}

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing authorization code"})
		return
	}

	token, err := googleOAuthConfig().Exchange(c.Request.Context(), code)
	if err != nil {
		log.Println("OAuth code exchange failed:", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Failed to exchange authorization code"})
		return
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No ID token in OAuth response"})
		return
	}

	issueGoogleSession(c, rawIDToken)
}

// GoogleVerify accepts an ID token obtained client-side (mobile or SPA
// flows) and signs the user in.
func GoogleVerify(c *gin.Context) {
	var body models.GoogleVerify
	if err := c.ShouldBindJSON(&body); err != nil || body.ID_Token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "idToken is required"})
		return
	}

	issueGoogleSession(c, body.ID_Token)
}

func issueGoogleSession(c *gin.Context, rawIDToken string) {
	payload, err := idtoken.Validate(c.Request.Context(), rawIDToken, os.Getenv("GOOGLE_CLIENT_ID"))
	if err != nil {
		log.Println("Google ID token rejected:", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid Google ID token"})
		return
	}

	user, err := findOrCreateGoogleUser(payload)
	if err != nil {
		log.Println("Error resolving Google user:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign in with Google"})
		return
	}

	token, err := createToken(user.User_ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User logged in successfully.",
		"token":   token,
		"user":    user,
	})
}

func findOrCreateGoogleUser(payload *idtoken.Payload) (models.UserAccount, error) {
	googleID := payload.Subject
	email, _ := payload.Claims["email"].(string)
	firstName, _ := payload.Claims["given_name"].(string)
	lastName, _ := payload.Claims["family_name"].(string)
	picture, _ := payload.Claims["picture"].(string)

	var user models.UserAccount
	found, err := initializers.DB.From("user_account").
		Select("*").
		Where(goqu.C("google_id").Eq(googleID)).
		ScanStruct(&user)
	if err != nil {
		return user, err
	}
	if found {
		if _, err := initializers.DB.Update("user_account").
			Set(goqu.Record{"last_login": time.Now()}).
			Where(goqu.C("user_id").Eq(user.User_ID)).
			Executor().Exec(); err != nil {
			log.Println("Failed to record last login:", err)
		}
		return user, nil
	}

	// Accounts created through password signup adopt the Google identity
	// on first OAuth login instead of getting a duplicate row.
	found, err = initializers.DB.From("user_account").
		Select("*").
		Where(goqu.C("email").Eq(email)).
		ScanStruct(&user)
	if err != nil {
		return user, err
	}
	if found {
		_, err = initializers.DB.Update("user_account").
			Set(goqu.Record{"google_id": googleID, "last_login": time.Now()}).
			Where(goqu.C("user_id").Eq(user.User_ID)).
			Executor().Exec()
		return user, err
	}

	now := time.Now()
	newUser := models.UserAccount{
		First_Name: firstName,
		Last_Name:  lastName,
		Email:      email,
		Role:       models.RoleLearner,
		Google_ID:  &googleID,
		Avatar_URL: picture,
		Last_Login: &now,
	}

	var created models.UserAccount
	_, err = initializers.DB.Insert("user_account").
		Rows(newUser).
		Returning("*").
		Executor().ScanStruct(&created)
	return created, err
}
