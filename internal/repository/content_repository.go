package repository

import (
	"reading_learning_backend/internal/model"

	"gorm.io/gorm"
)

type ContentRepository struct {
	DB *gorm.DB
}

func NewContentRepository(db *gorm.DB) *ContentRepository {
	return &ContentRepository{DB: db}
}

func (r *ContentRepository) Create(content *model.Content) error {
	return r.DB.Create(content).Error
}

func (r *ContentRepository) FindByID(id string) (*model.Content, error) {
	var content model.Content
	err := r.DB.First(&content, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &content, nil
}

func (r *ContentRepository) FindAll() ([]model.Content, error) {
	var contents []model.Content
	err := r.DB.Order("created_at desc").Find(&contents).Error
	return contents, err
}

func (r *ContentRepository) FindByGrade(grade string) ([]model.Content, error) {
	var contents []model.Content
	err := r.DB.Where("grade = ?", grade).Order("created_at desc").Find(&contents).Error
	return contents, err
}

func (r *ContentRepository) Update(content *model.Content) error {
	return r.DB.Save(content).Error
}

func (r *ContentRepository) Delete(id string) error {
	return r.DB.Delete(&model.Content{}, "id = ?", id).Error
}
