package models

import "time"

// AnalyticsSnapshot is the singleton dashboard row, recomputed on each
// request. Concurrent recomputations race on the upsert; last writer
// wins, which is acceptable for a dashboard metric.
type AnalyticsSnapshot struct {
	Analytics_ID        int       `json:"analyticsId" goqu:"skipinsert"`
	New_Users           int       `json:"newUsers"`
	Total_Users         int       `json:"totalUsers"`
	New_Courses         int       `json:"newCourses"`
	Total_Courses       int       `json:"totalCourses"`
	Accounts_Reached    int       `json:"accountsReached"`
	Users_Left          int       `json:"usersLeft"`
	Daily_Active_Users  int       `json:"dailyActiveUsers"`
	Weekly_Active_Users int       `json:"weeklyActiveUsers"`
	Total_Devotions     int       `json:"totalDevotions"`
	New_Devotions       int       `json:"newDevotions"`
	Datetime_Update     time.Time `json:"datetimeUpdate" goqu:"skipinsert"`
}
