package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type QuizOption struct {
	ID        int    `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

type QuizQuestion struct {
	Text    string       `json:"text"`
	Options []QuizOption `json:"options"`
}

// QuizQuestions is stored as a jsonb column.
type QuizQuestions []QuizQuestion

func (q QuizQuestions) Value() (driver.Value, error) {
	return json.Marshal(q)
}

func (q *QuizQuestions) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, q)
	case string:
		return json.Unmarshal([]byte(v), q)
	case nil:
		*q = nil
		return nil
	default:
		return fmt.Errorf("cannot scan %T into QuizQuestions", src)
	}
}

type Quiz struct {
	Quiz_ID         int           `json:"quizId" goqu:"skipinsert"`
	Questions       QuizQuestions `json:"questions"`
	Datetime_Create time.Time     `json:"datetimeCreate" goqu:"skipinsert"`
	Datetime_Update time.Time     `json:"datetimeUpdate" goqu:"skipinsert"`
}

type QuizCreate struct {
	Questions QuizQuestions `json:"questions"`
}
