package model

import (
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/docviewer/viewer/internal/result"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type UserRepository struct {
	DB     *gorm.DB
	Logger *zap.Logger
}

// List returns the users whose name, username or email contain filter, sorted by email
func (u *UserRepository) List(page int, resultsPerPage int, filter string) (result.Paginated[[]User], error) {
	users, err := paginated[User](u.filtered(filter), page, resultsPerPage, "email ASC")
	if err != nil {
		u.Logger.Error("error listing users", zap.Error(err))
	}
	return users, err
}

func (u *UserRepository) filtered(filter string) *gorm.DB {
	query := u.DB.Model(&User{})
	if filter != "" {
		like := "%" + filter + "%"
		query = query.Where("name LIKE ? OR email LIKE ? OR username LIKE ?", like, like, like)
	}
	return query
}

func (u *UserRepository) FindByUuid(uuid string) (*User, error) {
	return u.find("uuid", uuid)
}

func (u *UserRepository) FindByEmail(email string) (*User, error) {
	return u.find("email", email)
}

func (u *UserRepository) FindByUsername(username string) (*User, error) {
	return u.find("username", username)
}

func (u *UserRepository) Create(user *User) error {
	if result := u.DB.Create(user); result.Error != nil {
		u.Logger.Error("error creating user", zap.Error(result.Error))
		return result.Error
	}
	return nil
}

func (u *UserRepository) Update(user *User) error {
	if result := u.DB.Save(user); result.Error != nil {
		u.Logger.Error("error updating user", zap.Error(result.Error))
		return result.Error
	}
	return nil
}

func (u *UserRepository) Admins() int64 {
	var totalRows int64
	u.DB.Model(&User{}).Where("role = ?", RoleAdmin).Count(&totalRows)
	return totalRows
}

func (u *UserRepository) Delete(uuid string) error {
	result := u.DB.Where("uuid = ?", uuid).Delete(&User{})
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		u.Logger.Error("error deleting user", zap.Error(result.Error))
		return result.Error
	}
	return nil
}

func Hash(s string) string {
	h := sha256.New()
	h.Write([]byte(s))
	return string(h.Sum(nil))
}

func (u *UserRepository) find(field, value string) (*User, error) {
	var user User

	result := u.DB.Where(fmt.Sprintf("%s = ?", field), value).First(&user)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &user, result.Error
}
