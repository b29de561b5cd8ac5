package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type CourseElement struct {
	Type  string  `json:"type"`
	ID    string  `json:"id"`
	Value string  `json:"value"`
	Img   *string `json:"img"`
}

// CourseElements is stored as a jsonb column.
type CourseElements []CourseElement

func (e CourseElements) Value() (driver.Value, error) {
	return json.Marshal(e)
}

func (e *CourseElements) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, e)
	case string:
		return json.Unmarshal([]byte(v), e)
	case nil:
		*e = nil
		return nil
	default:
		return fmt.Errorf("cannot scan %T into CourseElements", src)
	}
}

type Course struct {
	Course_ID       int            `json:"courseId" goqu:"skipinsert"`
	Elements        CourseElements `json:"elements"`
	Datetime_Create time.Time      `json:"datetimeCreate" goqu:"skipinsert"`
	Datetime_Update time.Time      `json:"datetimeUpdate" goqu:"skipinsert"`
}

type CourseCreate struct {
	Elements CourseElements `json:"elements"`
}
