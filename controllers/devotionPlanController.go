package controllers

import (
	"log"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DevotionHub/initializers"
	"github.com/DevotionHub/models"
	"github.com/DevotionHub/services"
	"github.com/doug-martin/goqu/v9"
)

func progressPercent(completed, total int) int {
	if total <= 0 {
		return 0
	}
	p := int(math.Round(float64(completed) / float64(total) * 100))
	if p > 100 {
		p = 100
	}
	return p
}

func loadPlan(planID int) (models.DevotionPlan, bool, error) {
	var plan models.DevotionPlan
	found, err := initializers.DB.From("devotion_plan").
		Select("*").
		Where(goqu.C("plan_id").Eq(planID)).
		ScanStruct(&plan)
	return plan, found, err
}

func countPlanItems(planID int) (int, error) {
	total, err := initializers.DB.From("devotion").
		Where(goqu.C("plan_id").Eq(planID)).
		Count()
	return int(total), err
}

func countCompletedItems(userPlanID int) (int, error) {
	completed, err := initializers.DB.From("user_devotion_plan_item").
		Where(goqu.C("user_plan_id").Eq(userPlanID)).
		Count()
	return int(completed), err
}

// GetDevotionPlans lists published plans.
func GetDevotionPlans(c *gin.Context) {
	var plans []models.DevotionPlan
	err := initializers.DB.From("devotion_plan").
		Select("*").
		Where(goqu.C("published").IsTrue()).
		Order(goqu.C("datetime_create").Desc()).
		ScanStructs(&plans)
	if err != nil {
		log.Println("Error fetching devotion plans:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch devotion plans"})
		return
	}
	if plans == nil {
		plans = []models.DevotionPlan{}
	}
	c.JSON(http.StatusOK, plans)
}

func GetDevotionPlan(c *gin.Context) {
	planID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plan ID"})
		return
	}

	plan, found, err := loadPlan(planID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch devotion plan"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Devotion plan not found"})
		return
	}

	total, err := countPlanItems(planID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch devotion plan"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"plan": plan, "numItems": total})
}

// CreateDevotionPlan creates a plan from a multipart form with an
// optional cover image.
func CreateDevotionPlan(c *gin.Context) {
	title := c.PostForm("title")
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}

	published := c.DefaultPostForm("published", "true") == "true"

	imageURL := ""
	if file, err := c.FormFile("image"); err == nil {
		uploader := services.GetAssetService()
		if uploader == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Asset service unavailable"})
			return
		}
		imageURL, err = uploader.UploadImage(c.Request.Context(), file, "Plans")
		if err != nil {
			log.Println("Plan image upload failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
			return
		}
	}

	newPlan := models.DevotionPlan{
		Title:       title,
		Description: c.PostForm("description"),
		Image_URL:   imageURL,
		Published:   &published,
	}

	var created models.DevotionPlan
	_, err := initializers.DB.Insert("devotion_plan").
		Rows(newPlan).
		Returning("*").
		Executor().ScanStruct(&created)
	if err != nil {
		log.Println("Error creating devotion plan:", err)
		if imageURL != "" {
			if uploader := services.GetAssetService(); uploader != nil {
				if derr := uploader.DeleteFile(c.Request.Context(), imageURL); derr != nil {
					log.Println("Failed to clean up plan image:", derr)
				}
			}
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create devotion plan"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

func UpdateDevotionPlan(c *gin.Context) {
	planID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plan ID"})
		return
	}

	record := goqu.Record{"datetime_update": time.Now()}
	if title := c.PostForm("title"); title != "" {
		record["title"] = title
	}
	if _, ok := c.GetPostForm("description"); ok {
		record["description"] = c.PostForm("description")
	}
	if published, ok := c.GetPostForm("published"); ok {
		record["published"] = published == "true"
	}
	if file, err := c.FormFile("image"); err == nil {
		uploader := services.GetAssetService()
		if uploader == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Asset service unavailable"})
			return
		}
		imageURL, err := uploader.UploadImage(c.Request.Context(), file, "Plans")
		if err != nil {
			log.Println("Plan image upload failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
			return
		}
		record["image_url"] = imageURL
	}

	var updated models.DevotionPlan
	found, err := initializers.DB.Update("devotion_plan").
		Set(record).
		Where(goqu.C("plan_id").Eq(planID)).
		Returning("*").
		Executor().ScanStruct(&updated)
	if err != nil {
		log.Println("Error updating devotion plan:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update devotion plan"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Devotion plan not found"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteDevotionPlan removes a plan, its devotions, and every progress
// record that depended on it.
func DeleteDevotionPlan(c *gin.Context) {
	planID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plan ID"})
		return
	}

	_, found, err := loadPlan(planID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete devotion plan"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Devotion plan not found"})
		return
	}

	steps := []struct {
		table string
		where goqu.Expression
	}{
		{"user_devotion_plan_item", goqu.L("user_plan_id IN (SELECT user_plan_id FROM user_devotion_plan WHERE plan_id = ?)", planID)},
		{"user_devotion_plan", goqu.C("plan_id").Eq(planID)},
		{"devotion", goqu.C("plan_id").Eq(planID)},
		{"devotion_plan", goqu.C("plan_id").Eq(planID)},
	}
	for _, step := range steps {
		if _, err := initializers.DB.Delete(step.table).Where(step.where).Executor().Exec(); err != nil {
			log.Println("Error deleting devotion plan:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete devotion plan"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Devotion plan deleted successfully"})
}

// GetPlanDevotions returns the plan's items in display order.
func GetPlanDevotions(c *gin.Context) {
	planID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plan ID"})
		return
	}

	_, found, err := loadPlan(planID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch plan devotions"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Devotion plan not found"})
		return
	}

	var devotions []models.Devotion
	err = initializers.DB.From("devotion").
		Select("*").
		Where(goqu.C("plan_id").Eq(planID)).
		Order(goqu.C("display_order").Asc()).
		ScanStructs(&devotions)
	if err != nil {
		log.Println("Error fetching plan devotions:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch plan devotions"})
		return
	}
	if devotions == nil {
		devotions = []models.Devotion{}
	}
	c.JSON(http.StatusOK, devotions)
}

// CreatePlanDevotion appends a devotion to the plan with the next
// display order.
func CreatePlanDevotion(c *gin.Context) {
	planID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plan ID"})
		return
	}

	_, found, err := loadPlan(planID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create plan devotion"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Devotion plan not found"})
		return
	}

	title := c.PostForm("title")
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}

	var nextOrder int
	_, err = initializers.DB.From("devotion").
		Select(goqu.L("COALESCE(MAX(display_order), 0) + 1")).
		Where(goqu.C("plan_id").Eq(planID)).
		ScanVal(&nextOrder)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create plan devotion"})
		return
	}

	imageURL := ""
	if file, err := c.FormFile("image"); err == nil {
		uploader := services.GetAssetService()
		if uploader == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Asset service unavailable"})
			return
		}
		imageURL, err = uploader.UploadImage(c.Request.Context(), file, "Devotion")
		if err != nil {
			log.Println("Devotion image upload failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
			return
		}
	}

	devotion := models.Devotion{
		Plan_ID:       &planID,
		Display_Order: nextOrder,
		Title:         title,
		Chapter:       c.PostForm("chapter"),
		Verse:         c.PostForm("verse"),
		Body:          c.PostFormArray("body"),
		Prayer:        c.PostForm("prayer"),
		Image_URL:     imageURL,
	}

	var created models.Devotion
	_, err = initializers.DB.Insert("devotion").
		Rows(devotion).
		Returning("*").
		Executor().ScanStruct(&created)
	if err != nil {
		log.Println("Error creating plan devotion:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create plan devotion"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// ReorderPlanDevotion swaps the item's display order with its immediate
// neighbor. Already-first "up" and already-last "down" are no-ops.
func ReorderPlanDevotion(c *gin.Context) {
	planID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plan ID"})
		return
	}
	devotionID, err := strconv.Atoi(c.Param("devotionId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid devotion ID"})
		return
	}

	var body models.PlanDevotionReorder
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if body.Direction != "up" && body.Direction != "down" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "direction must be \"up\" or \"down\""})
		return
	}

	var target models.Devotion
	found, err := initializers.DB.From("devotion").
		Select("*").
		Where(goqu.C("devotion_id").Eq(devotionID), goqu.C("plan_id").Eq(planID)).
		ScanStruct(&target)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reorder devotion"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Devotion not found in plan"})
		return
	}

	neighborQuery := initializers.DB.From("devotion").
		Select("*").
		Where(goqu.C("plan_id").Eq(planID))
	if body.Direction == "up" {
		neighborQuery = neighborQuery.
			Where(goqu.C("display_order").Lt(target.Display_Order)).
			Order(goqu.C("display_order").Desc())
	} else {
		neighborQuery = neighborQuery.
			Where(goqu.C("display_order").Gt(target.Display_Order)).
			Order(goqu.C("display_order").Asc())
	}

	var neighbor models.Devotion
	found, err = neighborQuery.ScanStruct(&neighbor)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reorder devotion"})
		return
	}
	if !found {
		// Already at the boundary.
		c.JSON(http.StatusOK, gin.H{"message": "Order unchanged"})
		return
	}

	swaps := []struct {
		devotionID int
		order      int
	}{
		{neighbor.Devotion_ID, target.Display_Order},
		{target.Devotion_ID, neighbor.Display_Order},
	}
	for _, swap := range swaps {
		if _, err := initializers.DB.Update("devotion").
			Set(goqu.Record{"display_order": swap.order}).
			Where(goqu.C("devotion_id").Eq(swap.devotionID)).
			Executor().Exec(); err != nil {
			log.Println("Error reordering devotion:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reorder devotion"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Devotion reordered successfully"})
}

// DeletePlanDevotion removes the item from every progress record that
// referenced it, then deletes the devotion itself.
func DeletePlanDevotion(c *gin.Context) {
	planID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plan ID"})
		return
	}
	devotionID, err := strconv.Atoi(c.Param("devotionId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid devotion ID"})
		return
	}

	var target models.Devotion
	found, err := initializers.DB.From("devotion").
		Select("*").
		Where(goqu.C("devotion_id").Eq(devotionID), goqu.C("plan_id").Eq(planID)).
		ScanStruct(&target)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete devotion"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Devotion not found in plan"})
		return
	}

	if _, err := initializers.DB.Delete("user_devotion_plan_item").
		Where(goqu.C("devotion_id").Eq(devotionID)).
		Executor().Exec(); err != nil {
		log.Println("Error cleaning up progress items:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete devotion"})
		return
	}

	if _, err := initializers.DB.Delete("devotion").
		Where(goqu.C("devotion_id").Eq(devotionID)).
		Executor().Exec(); err != nil {
		log.Println("Error deleting devotion:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete devotion"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Devotion deleted successfully"})
}

/// StartPlan is idempotent: starting an already-started plan returns the
// existing progress record. The (user_id, plan_id) unique key makes the
// insert race-safe.
func StartPlan(c *gin.Context) {
	currentUser := c.MustGet("currentUser").(models.UserAccount)

	planID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plan ID"})
		return
	}

	_, found, err := loadPlan(planID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start plan"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Devotion plan not found"})
		return
	}

	record, created, err := findOrCreateProgress(currentUser.User_ID, planID)
	if err != nil {
		log.Println("Error starting plan:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start plan"})
		return
	}

	// Starting twice is a no-op; the existing record comes back with 200.
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, record)
}

func findOrCreateProgress(userID, planID int) (models.UserDevotionPlan, bool, error) {
	newRecord := models.UserDevotionPlan{
		User_ID:    userID,
		Plan_ID:    planID,
		Status:     models.PlanStatusInProgress,
		Started_At: time.Now(),
	}
	result, err := initializers.DB.Insert("user_devotion_plan").
		Rows(newRecord).
		OnConflict(goqu.DoNothing()).
		Executor().Exec()
	if err != nil {
		return models.UserDevotionPlan{}, false, err
	}
	inserted, _ := result.RowsAffected()

	var record models.UserDevotionPlan
	_, err = initializers.DB.From("user_devotion_plan").
		Select("*").
		Where(goqu.C("user_id").Eq(userID), goqu.C("plan_id").Eq(planID)).
		ScanStruct(&record)
	return record, inserted > 0, err
}

// RecordProgress marks one plan item completed. The item must belong to
// the plan; marking the same item twice is a no-op. The record is
// created lazily, so calling this without StartPlan works.
func RecordProgress(c *gin.Context) {
	currentUser := c.MustGet("currentUser").(models.UserAccount)

	planID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plan ID"})
		return
	}

	var body models.RecordProgress
	if err := c.BindJSON(&body); err != nil || body.Devotion_ID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "devotionId is required"})
		return
	}

	_, found, err := loadPlan(planID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record progress"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Devotion plan not found"})
		return
	}

	membership, err := initializers.DB.From("devotion").
		Where(goqu.C("devotion_id").Eq(body.Devotion_ID), goqu.C("plan_id").Eq(planID)).
		Count()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record progress"})
		return
	}
	if membership == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Devotion does not belong to this plan"})
		return
	}

	record, _, err := findOrCreateProgress(currentUser.User_ID, planID)
	if err != nil {
		log.Println("Error creating progress record:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record progress"})
		return
	}

	// Set-union semantics: the (user_plan_id, devotion_id) unique key
	// absorbs duplicate completions.
	if _, err := initializers.DB.Insert("user_devotion_plan_item").
		Rows(goqu.Record{
			"user_plan_id": record.User_Plan_ID,
			"devotion_id":  body.Devotion_ID,
		}).
		OnConflict(goqu.DoNothing()).
		Executor().Exec(); err != nil {
		log.Println("Error inserting progress item:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record progress"})
		return
	}

	total, err := countPlanItems(planID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record progress"})
		return
	}
	completed, err := countCompletedItems(record.User_Plan_ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record progress"})
		return
	}

	// A completed record never reopens; otherwise status follows item
	// coverage.
	if record.Status != models.PlanStatusCompleted {
		update := goqu.Record{"status": models.PlanStatusInProgress, "completed_at": nil, "datetime_update": time.Now()}
		if total > 0 && completed >= total {
			update["status"] = models.PlanStatusCompleted
			update["completed_at"] = time.Now()
		}
		var refreshed models.UserDevotionPlan
		if _, err := initializers.DB.Update("user_devotion_plan").
			Set(update).
			Where(goqu.C("user_plan_id").Eq(record.User_Plan_ID)).
			Returning("*").
			Executor().ScanStruct(&refreshed); err != nil {
			log.Println("Error updating progress status:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record progress"})
			return
		}
		record = refreshed
	}

	c.JSON(http.StatusOK, gin.H{
		"progress":  record,
		"completed": completed,
		"total":     total,
		"percent":   progressPercent(completed, total),
	})
}

// GetProgress returns the caller's progress against one plan.
func GetProgress(c *gin.Context) {
	currentUser := c.MustGet("currentUser").(models.UserAccount)

	planID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plan ID"})
		return
	}

	var record models.UserDevotionPlan
	found, err := initializers.DB.From("user_devotion_plan").
		Select("*").
		Where(goqu.C("user_id").Eq(currentUser.User_ID), goqu.C("plan_id").Eq(planID)).
		ScanStruct(&record)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch progress"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Progress not found"})
		return
	}

	plan, found, err := loadPlan(planID)
	if err != nil || !found {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch progress"})
		return
	}

	total, err := countPlanItems(planID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch progress"})
		return
	}
	completed, err := countCompletedItems(record.User_Plan_ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch progress"})
		return
	}

	c.JSON(http.StatusOK, models.PlanProgress{
		Plan: models.DevotionPlanSummary{
			Plan_ID:   plan.Plan_ID,
			Title:     plan.Title,
			Image_URL: plan.Image_URL,
			Num_Items: total,
		},
		Completed:    completed,
		Total:        total,
		Percent:      progressPercent(completed, total),
		Status:       record.Status,
		Started_At:   record.Started_At,
		Completed_At: record.Completed_At,
	})
}

// GetMyPlans lists every plan the caller has started, with progress,
// optionally filtered by ?status=.
func GetMyPlans(c *gin.Context) {
	currentUser := c.MustGet("currentUser").(models.UserAccount)

	status := c.Query("status")
	if status != "" && status != models.PlanStatusInProgress && status != models.PlanStatusCompleted {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status filter"})
		return
	}

	query := initializers.DB.From("user_devotion_plan").
		Select(
			goqu.I("user_devotion_plan.user_plan_id"),
			goqu.I("user_devotion_plan.plan_id"),
			goqu.I("user_devotion_plan.status"),
			goqu.I("user_devotion_plan.started_at"),
			goqu.I("user_devotion_plan.completed_at"),
			goqu.I("devotion_plan.title").As("title"),
			goqu.I("devotion_plan.image_url").As("image_url"),
			goqu.L("(SELECT COUNT(*) FROM devotion WHERE devotion.plan_id = user_devotion_plan.plan_id)").As("num_items"),
			goqu.L("(SELECT COUNT(*) FROM user_devotion_plan_item WHERE user_devotion_plan_item.user_plan_id = user_devotion_plan.user_plan_id)").As("num_completed"),
		).
		InnerJoin(
			goqu.T("devotion_plan"),
			goqu.On(goqu.Ex{"user_devotion_plan.plan_id": goqu.I("devotion_plan.plan_id")}),
		).
		Where(goqu.I("user_devotion_plan.user_id").Eq(currentUser.User_ID)).
		Order(goqu.I("user_devotion_plan.started_at").Desc())
	if status != "" {
		query = query.Where(goqu.I("user_devotion_plan.status").Eq(status))
	}

	var rows []models.UserPlanRow
	if err := query.ScanStructs(&rows); err != nil {
		log.Println("Error fetching user plans:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch plans"})
		return
	}

	result := make([]models.PlanProgress, 0, len(rows))
	for _, row := range rows {
		result = append(result, models.PlanProgress{
			Plan: models.DevotionPlanSummary{
				Plan_ID:   row.Plan_ID,
				Title:     row.Title,
				Image_URL: row.Image_URL,
				Num_Items: row.Num_Items,
			},
			Completed:    row.Num_Completed,
			Total:        row.Num_Items,
			Percent:      progressPercent(row.Num_Completed, row.Num_Items),
			Status:       row.Status,
			Started_At:   row.Started_At,
			Completed_At: row.Completed_At,
		})
	}

	c.JSON(http.StatusOK, result)
}

// CompletePlan force-completes regardless of item coverage. This is the
// explicit "mark done" action, distinct from automatic completion.
func CompletePlan(c *gin.Context) {
	currentUser := c.MustGet("currentUser").(models.UserAccount)

	planID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plan ID"})
		return
	}

	var updated models.UserDevotionPlan
	found, err := initializers.DB.Update("user_devotion_plan").
		Set(goqu.Record{
			"status":          models.PlanStatusCompleted,
			"completed_at":    time.Now(),
			"datetime_update": time.Now(),
		}).
		Where(goqu.C("user_id").Eq(currentUser.User_ID), goqu.C("plan_id").Eq(planID)).
		Returning("*").
		Executor().ScanStruct(&updated)
	if err != nil {
		log.Println("Error completing plan:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete plan"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Progress not found"})
		return
	}

	c.JSON(http.StatusOK, updated)
}
