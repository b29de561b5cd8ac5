package controllers

import (
	"log"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DevotionHub/initializers"
	"github.com/DevotionHub/models"
	"github.com/DevotionHub/services"
	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
)

// How many days back GetTodayDevotion searches before giving up.
const todayLookback = 7

func devotionFromForm(c *gin.Context) models.Devotion {
	year, _ := strconv.Atoi(c.PostForm("year"))
	return models.Devotion{
		Month:   c.PostForm("month"),
		Day:     c.PostForm("day"),
		Year:    year,
		Title:   c.PostForm("title"),
		Chapter: c.PostForm("chapter"),
		Verse:   c.PostForm("verse"),
		Body:    c.PostFormArray("body"),
		Prayer:  c.PostForm("prayer"),
	}
}

// CreateDevotion creates a standalone daily devotion from a multipart
// form. Paragraphs arrive as a repeated ordered "body" field.
func CreateDevotion(c *gin.Context) {
	devotion := devotionFromForm(c)
	if devotion.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}

	if file, err := c.FormFile("image"); err == nil {
		uploader := services.GetAssetService()
		if uploader == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Asset service unavailable"})
			return
		}
		imageURL, err := uploader.UploadImage(c.Request.Context(), file, "Devotion")
		if err != nil {
			log.Println("Devotion image upload failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
			return
		}
		devotion.Image_URL = imageURL
	}

	var created models.Devotion
	_, err := initializers.DB.Insert("devotion").
		Rows(devotion).
		Returning("*").
		Executor().ScanStruct(&created)
	if err != nil {
		log.Println("Error creating devotion:", err)
		if devotion.Image_URL != "" {
			if uploader := services.GetAssetService(); uploader != nil {
				if derr := uploader.DeleteFile(c.Request.Context(), devotion.Image_URL); derr != nil {
					log.Println("Failed to clean up devotion image:", derr)
				}
			}
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create devotion"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

func GetDevotions(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil || limit < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'limit' parameter"})
		return
	}

	order := goqu.C("datetime_create").Desc()
	if strings.EqualFold(c.DefaultQuery("sort", "desc"), "asc") {
		order = goqu.C("datetime_create").Asc()
	}

	query := initializers.DB.From("devotion").
		Select("*").
		Order(order)
	if limit > 0 {
		query = query.Limit(uint(limit))
	}

	var devotions []models.Devotion
	if err := query.ScanStructs(&devotions); err != nil {
		log.Println("Error fetching devotions:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch devotions"})
		return
	}
	if devotions == nil {
		devotions = []models.Devotion{}
	}
	c.JSON(http.StatusOK, devotions)
}

// GetTodayDevotion picks the devotion matching today's Ethiopian
// calendar date, falling back day by day when recent dates have no
// entry.
func GetTodayDevotion(c *gin.Context) {
	now := time.Now()

	for offset := 0; offset <= todayLookback; offset++ {
		eth := services.ToEthiopian(now.AddDate(0, 0, -offset))

		var devotion models.Devotion
		found, err := initializers.DB.From("devotion").
			Select("*").
			Where(
				goqu.C("month").Eq(eth.MonthName()),
				goqu.C("day").Eq(strconv.Itoa(eth.Day)),
			).
			Order(goqu.C("year").Desc()).
			ScanStruct(&devotion)
		if err != nil {
			log.Println("Error fetching today's devotion:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch today's devotion"})
			return
		}
		if found {
			c.JSON(http.StatusOK, devotion)
			return
		}
	}

	c.JSON(http.StatusNotFound, gin.H{"error": "No devotion found for today"})
}

func GetAvailableYears(c *gin.Context) {
	var years []int
	err := initializers.DB.From("devotion").
		SelectDistinct("year").
		Where(goqu.C("year").Gt(0)).
		Order(goqu.C("year").Desc()).
		ScanVals(&years)
	if err != nil {
		log.Println("Error fetching years:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch years"})
		return
	}
	if years == nil {
		years = []int{}
	}
	c.JSON(http.StatusOK, years)
}

func GetDevotionsByYear(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
		return
	}

	var devotions []models.Devotion
	err = initializers.DB.From("devotion").
		Select("*").
		Where(goqu.C("year").Eq(year)).
		ScanStructs(&devotions)
	if err != nil {
		log.Println("Error fetching devotions by year:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch devotions"})
		return
	}

	// Months ordered by calendar position, days descending within each,
	// matching the reading-plan presentation.
	byMonth := make(map[string][]models.Devotion)
	for _, d := range devotions {
		byMonth[d.Month] = append(byMonth[d.Month], d)
	}

	months := make([]string, 0, len(byMonth))
	for i := 1; i < len(services.EthiopianMonths); i++ {
		name := services.EthiopianMonths[i]
		if _, ok := byMonth[name]; ok {
			months = append(months, name)
		}
	}
	for _, group := range byMonth {
		sortDevotionsByDayDesc(group)
	}

	c.JSON(http.StatusOK, gin.H{"months": months, "devotions": byMonth})
}

func sortDevotionsByDayDesc(devotions []models.Devotion) {
	sort.Slice(devotions, func(i, j int) bool {
		a, _ := strconv.Atoi(devotions[i].Day)
		b, _ := strconv.Atoi(devotions[j].Day)
		return a > b
	})
}

func GetMonthsByYear(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
		return
	}

	var months []string
	err = initializers.DB.From("devotion").
		SelectDistinct("month").
		Where(goqu.C("year").Eq(year)).
		ScanVals(&months)
	if err != nil {
		log.Println("Error fetching months:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch months"})
		return
	}

	ordered := make([]string, 0, len(months))
	for i := 1; i < len(services.EthiopianMonths); i++ {
		for _, m := range months {
			if m == services.EthiopianMonths[i] {
				ordered = append(ordered, m)
				break
			}
		}
	}
	c.JSON(http.StatusOK, ordered)
}

func GetDevotionsByYearAndMonth(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
		return
	}
	month := c.Param("month")
	if services.MonthIndex(month) < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month"})
		return
	}

	var devotions []models.Devotion
	err = initializers.DB.From("devotion").
		Select("*").
		Where(goqu.C("year").Eq(year), goqu.C("month").Eq(month)).
		ScanStructs(&devotions)
	if err != nil {
		log.Println("Error fetching devotions by month:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch devotions"})
		return
	}
	sortDevotionsByDayDesc(devotions)
	if devotions == nil {
		devotions = []models.Devotion{}
	}
	c.JSON(http.StatusOK, devotions)
}

func UpdateDevotion(c *gin.Context) {
	devotionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid devotion ID"})
		return
	}

	record := goqu.Record{"datetime_update": time.Now()}
	for _, field := range []string{"month", "day", "title", "chapter", "verse", "prayer"} {
		if value, ok := c.GetPostForm(field); ok {
			record[field] = value
		}
	}
	if year, ok := c.GetPostForm("year"); ok {
		if y, err := strconv.Atoi(year); err == nil {
			record["year"] = y
		}
	}
	if body, ok := c.GetPostFormArray("body"); ok {
		record["body"] = pq.StringArray(body)
	}
	if file, err := c.FormFile("image"); err == nil {
		uploader := services.GetAssetService()
		if uploader == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Asset service unavailable"})
			return
		}
		imageURL, err := uploader.UploadImage(c.Request.Context(), file, "Devotion")
		if err != nil {
			log.Println("Devotion image upload failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
			return
		}
		record["image_url"] = imageURL
	}

	var updated models.Devotion
	found, err := initializers.DB.Update("devotion").
		Set(record).
		Where(goqu.C("devotion_id").Eq(devotionID)).
		Returning("*").
		Executor().ScanStruct(&updated)
	if err != nil {
		log.Println("Error updating devotion:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update devotion"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Devotion not found"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

func DeleteDevotion(c *gin.Context) {
	devotionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid devotion ID"})
		return
	}

	cleanups := []string{"user_devotion_plan_item", "devotion_like", "devotion_comment"}
	for _, table := range cleanups {
		if _, err := initializers.DB.Delete(table).
			Where(goqu.C("devotion_id").Eq(devotionID)).
			Executor().Exec(); err != nil {
			log.Println("Error cleaning up devotion references:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete devotion"})
			return
		}
	}

	result, err := initializers.DB.Delete("devotion").
		Where(goqu.C("devotion_id").Eq(devotionID)).
		Executor().Exec()
	if err != nil {
		log.Println("Error deleting devotion:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete devotion"})
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Devotion not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Devotion deleted successfully"})
}

// ToggleLike likes the devotion, or removes the like when it already
// exists.
func ToggleLike(c *gin.Context) {
	currentUser := c.MustGet("currentUser").(models.UserAccount)

	devotionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid devotion ID"})
		return
	}

	exists, err := initializers.DB.From("devotion").
		Where(goqu.C("devotion_id").Eq(devotionID)).
		Count()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle like"})
		return
	}
	if exists == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Devotion not found"})
		return
	}

	liked, err := initializers.DB.From("devotion_like").
		Where(goqu.C("devotion_id").Eq(devotionID), goqu.C("user_id").Eq(currentUser.User_ID)).
		Count()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle like"})
		return
	}

	if liked > 0 {
		_, err = initializers.DB.Delete("devotion_like").
			Where(goqu.C("devotion_id").Eq(devotionID), goqu.C("user_id").Eq(currentUser.User_ID)).
			Executor().Exec()
	} else {
		_, err = initializers.DB.Insert("devotion_like").
			Rows(goqu.Record{"devotion_id": devotionID, "user_id": currentUser.User_ID}).
			OnConflict(goqu.DoNothing()).
			Executor().Exec()
	}
	if err != nil {
		log.Println("Error toggling like:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle like"})
		return
	}

	count, err := initializers.DB.From("devotion_like").
		Where(goqu.C("devotion_id").Eq(devotionID)).
		Count()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle like"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"liked": liked == 0, "likes": count})
}

// GetLikes is public; likedByMe is only meaningful when a valid token
// accompanied the request.
func GetLikes(c *gin.Context) {
	devotionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid devotion ID"})
		return
	}

	count, err := initializers.DB.From("devotion_like").
		Where(goqu.C("devotion_id").Eq(devotionID)).
		Count()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch likes"})
		return
	}

	likedByMe := false
	if user, ok := c.Get("currentUser"); ok {
		mine, err := initializers.DB.From("devotion_like").
			Where(
				goqu.C("devotion_id").Eq(devotionID),
				goqu.C("user_id").Eq(user.(models.UserAccount).User_ID),
			).
			Count()
		if err == nil && mine > 0 {
			likedByMe = true
		}
	}

	c.JSON(http.StatusOK, gin.H{"likes": count, "likedByMe": likedByMe})
}

func AddComment(c *gin.Context) {
	currentUser := c.MustGet("currentUser").(models.UserAccount)

	devotionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid devotion ID"})
		return
	}

	var body models.DevotionCommentCreate
	if err := c.BindJSON(&body); err != nil || strings.TrimSpace(body.Body) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Comment body is required"})
		return
	}

	exists, err := initializers.DB.From("devotion").
		Where(goqu.C("devotion_id").Eq(devotionID)).
		Count()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add comment"})
		return
	}
	if exists == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Devotion not found"})
		return
	}

	comment := models.DevotionComment{
		Devotion_ID: devotionID,
		User_ID:     currentUser.User_ID,
		Body:        strings.TrimSpace(body.Body),
	}

	var created models.DevotionComment
	_, err = initializers.DB.Insert("devotion_comment").
		Rows(comment).
		Returning("*").
		Executor().ScanStruct(&created)
	if err != nil {
		log.Println("Error adding comment:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add comment"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

func GetComments(c *gin.Context) {
	devotionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid devotion ID"})
		return
	}

	var comments []models.DevotionCommentWithAuthor
	err = initializers.DB.From("devotion_comment").
		Select(
			goqu.I("devotion_comment.comment_id"),
			goqu.I("devotion_comment.devotion_id"),
			goqu.I("devotion_comment.user_id"),
			goqu.I("devotion_comment.body"),
			goqu.I("devotion_comment.datetime_create"),
			goqu.I("user_account.first_name"),
			goqu.I("user_account.last_name"),
		).
		InnerJoin(
			goqu.T("user_account"),
			goqu.On(goqu.Ex{"devotion_comment.user_id": goqu.I("user_account.user_id")}),
		).
		Where(goqu.I("devotion_comment.devotion_id").Eq(devotionID)).
		Order(goqu.I("devotion_comment.datetime_create").Desc()).
		ScanStructs(&comments)
	if err != nil {
		log.Println("Error fetching comments:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
		return
	}
	if comments == nil {
		comments = []models.DevotionCommentWithAuthor{}
	}
	c.JSON(http.StatusOK, comments)
}

// DeleteComment removes the caller's own comment; admins may remove
// anyone's.
func DeleteComment(c *gin.Context) {
	currentUser := c.MustGet("currentUser").(models.UserAccount)
	isAdmin := c.GetBool("admin")

	commentID, err := strconv.Atoi(c.Param("commentId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment ID"})
		return
	}

	var comment models.DevotionComment
	found, err := initializers.DB.From("devotion_comment").
		Select("*").
		Where(goqu.C("comment_id").Eq(commentID)).
		ScanStruct(&comment)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}
	if comment.User_ID != currentUser.User_ID && !isAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own comments"})
		return
	}

	if _, err := initializers.DB.Delete("devotion_comment").
		Where(goqu.C("comment_id").Eq(commentID)).
		Executor().Exec(); err != nil {
		log.Println("Error deleting comment:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}
