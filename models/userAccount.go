package models

import "time"

const (
	RoleLearner    = "Learner"
	RoleAdmin      = "Admin"
	RoleInstructor = "Instructor"
)

type UserAccount struct {
	User_ID         int        `json:"userId" goqu:"skipinsert"`
	First_Name      string     `json:"firstName"`
	Last_Name       string     `json:"lastName"`
	Email           string     `json:"email"`
	Password        string     `json:"-"`
	Role            string     `json:"role"`
	Google_ID       *string    `json:"-"`
	Avatar_URL      string     `json:"avatarUrl"`
	Last_Login      *time.Time `json:"lastLogin"`
	Datetime_Create time.Time  `json:"datetimeCreate" goqu:"skipinsert"`
	Datetime_Update time.Time  `json:"datetimeUpdate" goqu:"skipinsert"`
}

type Login struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserAccountUpdate struct {
	First_Name *string `json:"firstName"`
	Last_Name  *string `json:"lastName"`
	Email      *string `json:"email"`
}

type ChangePassword struct {
	Old_Password string `json:"oldPassword"`
	New_Password string `json:"newPassword"`
}

type GoogleVerify struct {
	ID_Token string `json:"idToken"`
}
