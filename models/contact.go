package models

import "time"

type ContactMessage struct {
	Contact_ID      int       `json:"contactId" goqu:"skipinsert"`
	First_Name      string    `json:"firstName"`
	Last_Name       string    `json:"lastName"`
	Email           string    `json:"email"`
	Message         string    `json:"message"`
	Datetime_Create time.Time `json:"datetimeCreate" goqu:"skipinsert"`
}

type ContactCreate struct {
	First_Name string `json:"firstName"`
	Last_Name  string `json:"lastName"`
	Email      string `json:"email"`
	Message    string `json:"message"`
}
