package models

import "time"

type DevotionPlan struct {
	Plan_ID         int       `json:"planId" goqu:"skipinsert"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Image_URL       string    `json:"imageUrl"`
	Published       *bool     `json:"published"`
	Datetime_Create time.Time `json:"datetimeCreate" goqu:"skipinsert"`
	Datetime_Update time.Time `json:"datetimeUpdate" goqu:"skipinsert"`
}

// DevotionPlanSummary is the plan shape embedded in progress responses.
type DevotionPlanSummary struct {
	Plan_ID   int    `json:"planId" db:"plan_id"`
	Title     string `json:"title" db:"title"`
	Image_URL string `json:"imageUrl" db:"image_url"`
	Num_Items int    `json:"numItems" db:"num_items"`
}

type PlanDevotionReorder struct {
	Direction string `json:"direction"`
}
