package models

import (
	"time"

	"github.com/lib/pq"
)

type Devotion struct {
	Devotion_ID     int            `json:"devotionId" goqu:"skipinsert"`
	Plan_ID         *int           `json:"planId"`
	Display_Order   int            `json:"displayOrder"`
	Month           string         `json:"month"`
	Day             string         `json:"day"`
	Year            int            `json:"year"`
	Title           string         `json:"title"`
	Chapter         string         `json:"chapter"`
	Verse           string         `json:"verse"`
	Body            pq.StringArray `json:"body"`
	Prayer          string         `json:"prayer"`
	Image_URL       string         `json:"imageUrl"`
	Datetime_Create time.Time      `json:"datetimeCreate" goqu:"skipinsert"`
	Datetime_Update time.Time      `json:"datetimeUpdate" goqu:"skipinsert"`
}

type DevotionLike struct {
	Like_ID         int       `json:"likeId" goqu:"skipinsert"`
	Devotion_ID     int       `json:"devotionId"`
	User_ID         int       `json:"userId"`
	Datetime_Create time.Time `json:"datetimeCreate" goqu:"skipinsert"`
}

type DevotionComment struct {
	Comment_ID      int       `json:"commentId" goqu:"skipinsert"`
	Devotion_ID     int       `json:"devotionId"`
	User_ID         int       `json:"userId"`
	Body            string    `json:"body"`
	Datetime_Create time.Time `json:"datetimeCreate" goqu:"skipinsert"`
}

type DevotionCommentCreate struct {
	Body string `json:"body"`
}

// DevotionCommentWithAuthor carries the commenter's name for list views.
type DevotionCommentWithAuthor struct {
	Comment_ID      int       `json:"commentId" db:"comment_id"`
	Devotion_ID     int       `json:"devotionId" db:"devotion_id"`
	User_ID         int       `json:"userId" db:"user_id"`
	Body            string    `json:"body" db:"body"`
	First_Name      string    `json:"firstName" db:"first_name"`
	Last_Name       string    `json:"lastName" db:"last_name"`
	Datetime_Create time.Time `json:"datetimeCreate" db:"datetime_create"`
}
