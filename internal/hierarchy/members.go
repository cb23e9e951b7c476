package hierarchy

import (
	"context"
	"strings"

	"github.com/dridley/gats/internal/models"
	"gorm.io/gorm"
)

// ListMembers returns every member ordered by id, whether or not they
// contribute to a project.
func (r *Repository) ListMembers(ctx context.Context) ([]models.Member, error) {
	members := []models.Member{}
	if err := r.db.WithContext(ctx).Order("MemberID ASC").Find(&members).Error; err != nil {
		return nil, &StoreError{Op: "load", Kind: KindMember, Err: err}
	}
	return members, nil
}

// CreateMember inserts a member and returns its id.
func (r *Repository) CreateMember(ctx context.Context, in MemberInput) (uint, error) {
	if err := in.Validate(); err != nil {
		return 0, err
	}
	member := models.Member{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     strings.TrimSpace(in.Email),
		Phone:     strings.TrimSpace(in.Phone),
	}
	err := r.withTx(ctx, "create", KindMember, 0, func(tx *gorm.DB) error {
		return tx.Create(&member).Error
	})
	if err != nil {
		return 0, err
	}
	return member.ID, nil
}

// UpdateMember replaces every field of a member.
func (r *Repository) UpdateMember(ctx context.Context, id uint, in MemberInput) error {
	if err := in.Validate(); err != nil {
		return err
	}
	return r.withTx(ctx, "update", KindMember, id, func(tx *gorm.DB) error {
		if err := mustExist(tx, &models.Member{}, "MemberID", KindMember, id); err != nil {
			return err
		}
		return tx.Model(&models.Member{}).Where("MemberID = ?", id).Updates(map[string]interface{}{
			"firstName": strings.TrimSpace(in.FirstName),
			"lastName":  strings.TrimSpace(in.LastName),
			"email":     strings.TrimSpace(in.Email),
			"phone":     strings.TrimSpace(in.Phone),
		}).Error
	})
}
