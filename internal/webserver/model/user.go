package model

import (
	"net/mail"
	"regexp"
	"time"
)

const (
	RoleRegular = iota + 1
	RoleAdmin
)

const UsernamePattern = `^[A-Za-z0-9_\-.]+$`

var usernameRegexp = regexp.MustCompile(UsernamePattern)

type User struct {
	ID            uint          `gorm:"primarykey" json:"-"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
	Uuid          string        `gorm:"uniqueIndex" json:"uuid"`
	Name          string        `json:"name"`
	Username      string        `gorm:"type:text collate nocase; not null; default:''; unique" json:"username"`
	Email         string        `gorm:"uniqueIndex" json:"email"`
	Password      string        `json:"-"`
	Role          int           `json:"role"`
	SavedSearches []SavedSearch `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// Session holds the user data carried in the session token
type Session struct {
	ID       uint
	Uuid     string
	Name     string
	Username string
	Email    string
	Role     int
	Exp      float64
}

func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// Validate checks all user's fields to ensure they are in the required format
func (u User) Validate(minPasswordLength int) map[string]string {
	errs := map[string]string{}

	if u.Name == "" {
		errs["name"] = "Name cannot be empty"
	}

	if len(u.Name) > 50 {
		errs["name"] = "Name cannot be longer than 50 characters"
	}

	if u.Username == "" {
		errs["username"] = "Username cannot be empty"
	}

	if len(u.Username) > 20 {
		errs["username"] = "Username cannot be longer than 20 characters"
	}

	if u.Username != "" && !usernameRegexp.MatchString(u.Username) {
		errs["username"] = "Username can only have letters, numbers, _, - and ."
	}

	if _, err := mail.ParseAddress(u.Email); err != nil {
		errs["email"] = "Incorrect email address"
	}

	if len(u.Email) > 100 {
		errs["email"] = "Email cannot be longer than 100 characters"
	}

	if u.Role < RoleRegular || u.Role > RoleAdmin {
		errs["role"] = "Incorrect role"
	}

	return errs
}

// ValidatePassword checks the length of a new password and that it matches its confirmation
func ValidatePassword(password, confirmPassword string, minPasswordLength int, errs map[string]string) map[string]string {
	if len(password) < minPasswordLength {
		errs["password"] = "Password is too short"
	}

	if len(password) > 50 {
		errs["password"] = "Password cannot be longer than 50 characters"
	}

	if confirmPassword == "" {
		errs["confirmpassword"] = "Confirm password cannot be empty"
	}

	if password != confirmPassword {
		errs["confirmpassword"] = "Passwords do not match"
	}

	return errs
}
