package models

import "time"

type ExploreCategory struct {
	Category_ID     int       `json:"categoryId" goqu:"skipinsert"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Display_Order   int       `json:"displayOrder"`
	Is_Published    *bool     `json:"isPublished"`
	Datetime_Create time.Time `json:"datetimeCreate" goqu:"skipinsert"`
	Datetime_Update time.Time `json:"datetimeUpdate" goqu:"skipinsert"`
}

type ExploreItem struct {
	Item_ID         int       `json:"itemId" goqu:"skipinsert"`
	Category_ID     int       `json:"categoryId"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Image_URL       string    `json:"imageUrl"`
	File_URL        string    `json:"fileUrl"`
	File_Name       string    `json:"fileName"`
	Mime_Type       string    `json:"mimeType"`
	File_Type       string    `json:"fileType"`
	Display_Order   int       `json:"displayOrder"`
	Is_Published    *bool     `json:"isPublished"`
	Datetime_Create time.Time `json:"datetimeCreate" goqu:"skipinsert"`
	Datetime_Update time.Time `json:"datetimeUpdate" goqu:"skipinsert"`
}

type ExploreCategoryUpdate struct {
	Title         *string `json:"title"`
	Description   *string `json:"description"`
	Display_Order *int    `json:"displayOrder"`
	Is_Published  *bool   `json:"isPublished"`
}
