package app

import (
	"errors"
	"strings"
	"time"

	"github.com/talkincode/toughstore/internal/domain"
	"github.com/talkincode/toughstore/internal/service"
	"github.com/talkincode/toughstore/pkg/common"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// checkSuper makes sure the default admin account exists and is usable.
func (a *Application) checkSuper() {
	const superUsername = "admin"
	const defaultPassword = "toughstore"

	var user domain.User
	err := a.gormDB.Where("username = ?", superUsername).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		hash, err := bcrypt.GenerateFromPassword([]byte(defaultPassword), bcrypt.DefaultCost)
		if err != nil {
			zap.L().Error("failed to hash default admin password", zap.Error(err))
			return
		}
		now := time.Now()
		if err := a.gormDB.Create(&domain.User{
			ID:        common.UUIDint64(),
			Username:  superUsername,
			Email:     "admin@toughstore.local",
			Password:  string(hash),
			FirstName: "Store",
			LastName:  "Administrator",
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		}).Error; err != nil {
			zap.L().Error("failed to create default admin", zap.Error(err))
		} else {
			zap.L().Info("initialized default admin account", zap.String("username", superUsername))
		}
		return
	case err != nil:
		zap.L().Error("failed to query admin account", zap.Error(err))
		return
	}

	if strings.TrimSpace(user.Password) != "" && user.IsActive {
		return
	}

	updates := map[string]interface{}{
		"updated_at": time.Now(),
		"is_active":  true,
	}
	if strings.TrimSpace(user.Password) == "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(defaultPassword), bcrypt.DefaultCost)
		if err != nil {
			zap.L().Error("failed to hash default admin password", zap.Error(err))
			return
		}
		updates["password"] = string(hash)
	}
	if err := a.gormDB.Model(&domain.User{}).Where("id = ?", user.ID).Updates(updates).Error; err != nil {
		zap.L().Error("failed to repair admin account", zap.Error(err))
		return
	}
	zap.L().Warn("repaired default admin account", zap.String("username", superUsername))
}

// checkRoles seeds the built-in roles and maps the admin user to Admin.
func (a *Application) checkRoles() {
	defaultRoles := []domain.Role{
		{Name: service.RoleAdmin, Remark: "Full catalog and order management"},
		{Name: service.RoleCustomer, Remark: "Default role for registered users"},
	}

	for _, role := range defaultRoles {
		var count int64
		a.gormDB.Model(&domain.Role{}).Where("name = ?", role.Name).Count(&count)
		if count == 0 {
			role.ID = common.UUIDint64()
			role.CreatedAt = time.Now()
			if err := a.gormDB.Create(&role).Error; err != nil {
				zap.L().Error("failed to create default role",
					zap.String("name", role.Name), zap.Error(err))
			} else {
				zap.L().Info("initialized default role", zap.String("name", role.Name))
			}
		}
	}

	var admin domain.User
	if err := a.gormDB.Where("username = ?", "admin").First(&admin).Error; err != nil {
		return
	}
	var adminRole domain.Role
	if err := a.gormDB.Where("name = ?", service.RoleAdmin).First(&adminRole).Error; err != nil {
		return
	}
	var count int64
	a.gormDB.Model(&domain.UserRole{}).
		Where("user_id = ? and role_id = ?", admin.ID, adminRole.ID).
		Count(&count)
	if count == 0 {
		a.gormDB.Create(&domain.UserRole{
			ID:     common.UUIDint64(),
			UserId: admin.ID,
			RoleId: adminRole.ID,
		})
	}
}

type settingSchema struct {
	Category    string
	Name        string
	Default     string
	Description string
}

var defaultSettings = []settingSchema{
	{"system", "SiteName", "ToughStore", "Store display name"},
	{"system", "Currency", "USD", "Currency code used in order totals"},
	{"cart", "PurgeDays", "30", "Days before an untouched cart line is purged"},
	{"order", "HistoryDays", "365", "Days of order history kept by maintenance jobs"},
}

// checkSettings initializes missing sys_config rows with defaults.
func (a *Application) checkSettings() {
	for sortid, schema := range defaultSettings {
		var count int64
		a.gormDB.Model(&domain.SysConfig{}).
			Where("type = ? and name = ?", schema.Category, schema.Name).
			Count(&count)
		if count == 0 {
			a.gormDB.Create(&domain.SysConfig{
				ID:     common.UUIDint64(),
				Sort:   sortid,
				Type:   schema.Category,
				Name:   schema.Name,
				Value:  schema.Default,
				Remark: schema.Description,
			})
			zap.L().Info("initialized config",
				zap.String("key", schema.Category+"."+schema.Name),
				zap.String("default", schema.Default))
		}
	}
}
