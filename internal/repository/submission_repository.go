package repository

import (
	"reading_learning_backend/internal/model"

	"gorm.io/gorm"
)

type SubmissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

func (r *SubmissionRepository) Create(submission *model.Submission) error {
	return r.DB.Create(submission).Error
}

func (r *SubmissionRepository) FindByID(id string) (*model.Submission, error) {
	var submission model.Submission
	err := r.DB.First(&submission, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *SubmissionRepository) FindByStudent(studentID uint) ([]model.Submission, error) {
	var submissions []model.Submission
	err := r.DB.Where("student_id = ?", studentID).
		Order("submitted_at desc").Find(&submissions).Error
	return submissions, err
}

func (r *SubmissionRepository) FindByContentAndStudent(contentID string, studentID uint) ([]model.Submission, error) {
	var submissions []model.Submission
	err := r.DB.Where("content_id = ? AND student_id = ?", contentID, studentID).
		Order("submitted_at desc").Find(&submissions).Error
	return submissions, err
}

// CountByContentAndStudent 次数账本：已用次数直接按留存的提交计数，不维护独立计数器
func (r *SubmissionRepository) CountByContentAndStudent(contentID string, studentID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Submission{}).
		Where("content_id = ? AND student_id = ?", contentID, studentID).
		Count(&count).Error
	return count, err
}

func (r *SubmissionRepository) CountByStudent(studentID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Submission{}).
		Where("student_id = ?", studentID).Count(&count).Error
	return count, err
}

func (r *SubmissionRepository) CountByContent(contentID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Submission{}).
		Where("content_id = ?", contentID).Count(&count).Error
	return count, err
}

func (r *SubmissionRepository) FindAll() ([]model.Submission, error) {
	var submissions []model.Submission
	err := r.DB.Order("submitted_at desc").Find(&submissions).Error
	return submissions, err
}

// UpdateReview 只允许人工复核字段被修改，评分时产生的字段保持不变
func (r *SubmissionRepository) UpdateReview(id string, score int, feedback string) error {
	return r.DB.Model(&model.Submission{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"score":                score,
			"admin_feedback":       feedback,
			"is_manually_reviewed": true,
		}).Error
}

// UpdateAnswers 逐题标记的显式修正入口，独立于总分复核
func (r *SubmissionRepository) UpdateAnswers(id string, answers model.AnswerList) error {
	return r.DB.Model(&model.Submission{}).Where("id = ?", id).
		Update("answers", answers).Error
}
