package service

import (
	"errors"

	"reading_learning_backend/internal/model"
	"reading_learning_backend/internal/util"

	"gorm.io/gorm"
)

// UserRepo 用户记录的持久化契约
type UserRepo interface {
	Create(user *model.User) error
	FindByID(id uint) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	FindAll() ([]model.User, error)
	Delete(id uint) error
	UpdateMaxAttempts(id uint, maxAttempts int) error
	UpdateLastLogin(id uint) error
}

type UserService struct {
	Repo        UserRepo
	Submissions SubmissionStore
}

func NewUserService(repo UserRepo, submissions SubmissionStore) *UserService {
	return &UserService{Repo: repo, Submissions: submissions}
}

func (s *UserService) GetByID(id uint) (*model.User, error) {
	user, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// Profile 用户资料，附带由提交记录推导出的总答题次数
type Profile struct {
	*model.User
	AttemptsUsed int `json:"attemptsUsed"`
}

func (s *UserService) GetProfile(id uint) (*Profile, error) {
	user, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	count, err := s.Submissions.CountByStudent(id)
	if err != nil {
		return nil, err
	}

	return &Profile{User: user, AttemptsUsed: int(count)}, nil
}

func (s *UserService) ListUsers() ([]model.User, error) {
	return s.Repo.FindAll()
}

// DeleteUser 删除用户不级联删除提交：历史提交带有学生姓名与邮箱快照，
// 删除后依然可以正常展示
func (s *UserService) DeleteUser(id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	return s.Repo.Delete(id)
}

// SetMaxAttempts 管理员设置答题次数上限。只改策略字段；
// 已发生的提交计数不回溯调整，上限低于已用次数时后续提交立即被拒
func (s *UserService) SetMaxAttempts(id uint, maxAttempts int) (*model.User, error) {
	if maxAttempts < model.MinMaxAttempts || maxAttempts > model.MaxMaxAttempts {
		return nil, util.ErrInvalidMaxAttempts
	}

	user, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.Repo.UpdateMaxAttempts(id, maxAttempts); err != nil {
		return nil, err
	}

	user.MaxAttempts = maxAttempts
	return user, nil
}
