package models

// VideoLink maps a Sabbath School lesson (year, quarter, lesson) to its
// video URL. The triple is unique; writes go through an upsert.
type VideoLink struct {
	Video_Link_ID int    `json:"videoLinkId" goqu:"skipinsert"`
	Year          int    `json:"year"`
	Quarter       int    `json:"quarter"`
	Lesson        int    `json:"lesson"`
	Video_URL     string `json:"videoUrl"`
}

type VideoLinkUpsert struct {
	Year      int    `json:"year"`
	Quarter   int    `json:"quarter"`
	Lesson    int    `json:"lesson"`
	Video_URL string `json:"videoUrl"`
}
