package controllers

import (
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DevotionHub/initializers"
	"github.com/DevotionHub/models"
	"github.com/DevotionHub/services"
	"github.com/doug-martin/goqu/v9"
)

// detectFileType classifies an upload from its MIME type with the
// extension as fallback.
func detectFileType(mimeType, fileName string) string {
	lower := strings.ToLower(fileName)
	switch {
	case mimeType == "application/pdf" || strings.HasSuffix(lower, ".pdf"):
		return "pdf"
	case mimeType == "application/vnd.ms-powerpoint" || strings.HasSuffix(lower, ".ppt"):
		return "ppt"
	case mimeType == "application/vnd.openxmlformats-officedocument.presentationml.presentation" ||
		strings.HasSuffix(lower, ".pptx"):
		return "pptx"
	default:
		return "file"
	}
}

// ListExploreCategories is public and returns published categories only.
func ListExploreCategories(c *gin.Context) {
	var categories []models.ExploreCategory
	err := initializers.DB.From("explore_category").
		Select("*").
		Where(goqu.C("is_published").IsTrue()).
		Order(goqu.C("display_order").Asc(), goqu.C("datetime_create").Desc()).
		ScanStructs(&categories)
	if err != nil {
		log.Println("Error listing explore categories:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}
	if categories == nil {
		categories = []models.ExploreCategory{}
	}
	c.JSON(http.StatusOK, categories)
}

// ListExploreItems is public; categoryId is required and only published
// items are returned.
func ListExploreItems(c *gin.Context) {
	categoryID, err := strconv.Atoi(c.Query("categoryId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "categoryId is required"})
		return
	}

	var items []models.ExploreItem
	err = initializers.DB.From("explore_item").
		Select("*").
		Where(goqu.C("category_id").Eq(categoryID), goqu.C("is_published").IsTrue()).
		Order(goqu.C("display_order").Asc(), goqu.C("datetime_create").Desc()).
		ScanStructs(&items)
	if err != nil {
		log.Println("Error listing explore items:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch items"})
		return
	}
	if items == nil {
		items = []models.ExploreItem{}
	}
	c.JSON(http.StatusOK, items)
}

func GetExploreItem(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	var item models.ExploreItem
	found, err := initializers.DB.From("explore_item").
		Select("*").
		Where(goqu.C("item_id").Eq(itemID)).
		ScanStruct(&item)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch item"})
		return
	}
	if !found || item.Is_Published == nil || !*item.Is_Published {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}

	c.JSON(http.StatusOK, item)
}

// AdminListExploreCategories returns every category, published or not.
func AdminListExploreCategories(c *gin.Context) {
	var categories []models.ExploreCategory
	err := initializers.DB.From("explore_category").
		Select("*").
		Order(goqu.C("display_order").Asc(), goqu.C("datetime_create").Desc()).
		ScanStructs(&categories)
	if err != nil {
		log.Println("Error listing explore categories (admin):", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}
	if categories == nil {
		categories = []models.ExploreCategory{}
	}
	c.JSON(http.StatusOK, categories)
}

// AdminListExploreItems returns all items, optionally filtered by
// ?categoryId=.
func AdminListExploreItems(c *gin.Context) {
	query := initializers.DB.From("explore_item").
		Select("*").
		Order(goqu.C("display_order").Asc(), goqu.C("datetime_create").Desc())
	if raw := c.Query("categoryId"); raw != "" {
		categoryID, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid categoryId"})
			return
		}
		query = query.Where(goqu.C("category_id").Eq(categoryID))
	}

	var items []models.ExploreItem
	if err := query.ScanStructs(&items); err != nil {
		log.Println("Error listing explore items (admin):", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch items"})
		return
	}
	if items == nil {
		items = []models.ExploreItem{}
	}
	c.JSON(http.StatusOK, items)
}

func CreateExploreCategory(c *gin.Context) {
	var category models.ExploreCategory
	if err := c.ShouldBindJSON(&category); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if category.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}
	if category.Is_Published == nil {
		published := true
		category.Is_Published = &published
	}

	var created models.ExploreCategory
	_, err := initializers.DB.Insert("explore_category").
		Rows(category).
		Returning("*").
		Executor().ScanStruct(&created)
	if err != nil {
		log.Println("Error creating explore category:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

func UpdateExploreCategory(c *gin.Context) {
	categoryID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
		return
	}

	var update models.ExploreCategoryUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record := goqu.Record{"datetime_update": time.Now()}
	if update.Title != nil {
		record["title"] = *update.Title
	}
	if update.Description != nil {
		record["description"] = *update.Description
	}
	if update.Display_Order != nil {
		record["display_order"] = *update.Display_Order
	}
	if update.Is_Published != nil {
		record["is_published"] = *update.Is_Published
	}

	var updated models.ExploreCategory
	found, err := initializers.DB.Update("explore_category").
		Set(record).
		Where(goqu.C("category_id").Eq(categoryID)).
		Returning("*").
		Executor().ScanStruct(&updated)
	if err != nil {
		log.Println("Error updating explore category:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteExploreCategory deletes a category and all of its items.
func DeleteExploreCategory(c *gin.Context) {
	categoryID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
		return
	}

	if _, err := initializers.DB.Delete("explore_item").
		Where(goqu.C("category_id").Eq(categoryID)).
		Executor().Exec(); err != nil {
		log.Println("Error deleting category items:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
		return
	}

	result, err := initializers.DB.Delete("explore_category").
		Where(goqu.C("category_id").Eq(categoryID)).
		Executor().Exec()
	if err != nil {
		log.Println("Error deleting explore category:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}

// CreateExploreItem takes a multipart form with a required "file" and
// an optional thumbnail "image".
func CreateExploreItem(c *gin.Context) {
	categoryID, err := strconv.Atoi(c.PostForm("categoryId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "categoryId is required"})
		return
	}
	title := c.PostForm("title")
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	uploader := services.GetAssetService()
	if uploader == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Asset service unavailable"})
		return
	}

	fileURL, err := uploader.UploadFile(c.Request.Context(), file, "Explore")
	if err != nil {
		log.Println("Explore file upload failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload file"})
		return
	}

	imageURL := ""
	if image, err := c.FormFile("image"); err == nil {
		imageURL, err = uploader.UploadImage(c.Request.Context(), image, "Explore/Images")
		if err != nil {
			log.Println("Explore image upload failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
			return
		}
	}

	displayOrder, _ := strconv.Atoi(c.DefaultPostForm("displayOrder", "0"))
	published := c.DefaultPostForm("isPublished", "true") == "true"
	mimeType := file.Header.Get("Content-Type")

	item := models.ExploreItem{
		Category_ID:   categoryID,
		Title:         title,
		Description:   c.PostForm("description"),
		Image_URL:     imageURL,
		File_URL:      fileURL,
		File_Name:     file.Filename,
		Mime_Type:     mimeType,
		File_Type:     detectFileType(mimeType, file.Filename),
		Display_Order: displayOrder,
		Is_Published:  &published,
	}

	var created models.ExploreItem
	_, err = initializers.DB.Insert("explore_item").
		Rows(item).
		Returning("*").
		Executor().ScanStruct(&created)
	if err != nil {
		log.Println("Error creating explore item:", err)
		// Best-effort cleanup so the asset host does not accumulate
		// orphans when the insert fails.
		if derr := uploader.DeleteFile(c.Request.Context(), fileURL); derr != nil {
			log.Println("Failed to clean up uploaded file:", derr)
		}
		if imageURL != "" {
			if derr := uploader.DeleteFile(c.Request.Context(), imageURL); derr != nil {
				log.Println("Failed to clean up uploaded image:", derr)
			}
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create item"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

func UpdateExploreItem(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	record := goqu.Record{"datetime_update": time.Now()}
	if title, ok := c.GetPostForm("title"); ok {
		record["title"] = title
	}
	if description, ok := c.GetPostForm("description"); ok {
		record["description"] = description
	}
	if raw, ok := c.GetPostForm("displayOrder"); ok {
		order, _ := strconv.Atoi(raw)
		record["display_order"] = order
	}
	if raw, ok := c.GetPostForm("isPublished"); ok {
		record["is_published"] = raw == "true"
	}
	if raw, ok := c.GetPostForm("categoryId"); ok {
		categoryID, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid categoryId"})
			return
		}
		record["category_id"] = categoryID
	}
	if image, err := c.FormFile("image"); err == nil {
		uploader := services.GetAssetService()
		if uploader == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Asset service unavailable"})
			return
		}
		imageURL, err := uploader.UploadImage(c.Request.Context(), image, "Explore/Images")
		if err != nil {
			log.Println("Explore image upload failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
			return
		}
		record["image_url"] = imageURL
	}

	var updated models.ExploreItem
	found, err := initializers.DB.Update("explore_item").
		Set(record).
		Where(goqu.C("item_id").Eq(itemID)).
		Returning("*").
		Executor().ScanStruct(&updated)
	if err != nil {
		log.Println("Error updating explore item:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update item"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

func DeleteExploreItem(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	result, err := initializers.DB.Delete("explore_item").
		Where(goqu.C("item_id").Eq(itemID)).
		Executor().Exec()
	if err != nil {
		log.Println("Error deleting explore item:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item deleted successfully"})
}
