package models

import "time"

const (
	PlanStatusInProgress = "in_progress"
	PlanStatusCompleted  = "completed"
)

// UserDevotionPlan is the per-(user, plan) progress record. The table
// carries a unique key on (user_id, plan_id) so a concurrent double
// start cannot create two rows.
type UserDevotionPlan struct {
	User_Plan_ID    int        `json:"userPlanId" goqu:"skipinsert"`
	User_ID         int        `json:"userId"`
	Plan_ID         int        `json:"planId"`
	Status          string     `json:"status"`
	Started_At      time.Time  `json:"startedAt"`
	Completed_At    *time.Time `json:"completedAt"`
	Datetime_Create time.Time  `json:"datetimeCreate" goqu:"skipinsert"`
	Datetime_Update time.Time  `json:"datetimeUpdate" goqu:"skipinsert"`
}

type RecordProgress struct {
	Devotion_ID int `json:"devotionId"`
}

// PlanProgress is the derived view returned by the progress endpoints.
type PlanProgress struct {
	Plan         DevotionPlanSummary `json:"plan"`
	Completed    int                 `json:"completed"`
	Total        int                 `json:"total"`
	Percent      int                 `json:"percent"`
	Status       string              `json:"status"`
	Started_At   time.Time           `json:"startedAt"`
	Completed_At *time.Time          `json:"completedAt"`
}

// UserPlanRow is the join row scanned for the my-plans listing.
type UserPlanRow struct {
	User_Plan_ID  int        `db:"user_plan_id"`
	Plan_ID       int        `db:"plan_id"`
	Status        string     `db:"status"`
	Started_At    time.Time  `db:"started_at"`
	Completed_At  *time.Time `db:"completed_at"`
	Title         string     `db:"title"`
	Image_URL     string     `db:"image_url"`
	Num_Items     int        `db:"num_items"`
	Num_Completed int        `db:"num_completed"`
}
