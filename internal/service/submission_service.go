package service

import (
	"errors"
	"strconv"
	"sync"
	"time"

	"reading_learning_backend/internal/model"
	"reading_learning_backend/internal/util"

	"gorm.io/gorm"
)

// SubmissionStore 提交记录的持久化契约。写操作只有创建和两个受限的
// 复核更新入口，评分时产生的字段不提供通用修改途径。
type SubmissionStore interface {
	Create(submission *model.Submission) error
	FindByID(id string) (*model.Submission, error)
	FindByStudent(studentID uint) ([]model.Submission, error)
	FindByContentAndStudent(contentID string, studentID uint) ([]model.Submission, error)
	CountByContentAndStudent(contentID string, studentID uint) (int64, error)
	CountByStudent(studentID uint) (int64, error)
	FindAll() ([]model.Submission, error)
	UpdateReview(id string, score int, feedback string) error
	UpdateAnswers(id string, answers model.AnswerList) error
}

type ContentStore interface {
	FindByID(id string) (*model.Content, error)
}

type UserStore interface {
	FindByID(id uint) (*model.User, error)
}

// keyedMutex 按字符串键串行化临界区
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (k *keyedMutex) get(key string) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.locks == nil {
		k.locks = make(map[string]*sync.Mutex)
	}
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	return m
}

type SubmissionService struct {
	Submissions SubmissionStore
	Contents    ContentStore
	Users       UserStore

	// 同一 (学生, 内容) 的提交串行执行，封住"查次数-写提交"之间的竞争窗口；
	// 复核按提交ID串行，避免两个管理员互相覆盖时丢失更新
	locks keyedMutex
}

func NewSubmissionService(submissions SubmissionStore, contents ContentStore, users UserStore) *SubmissionService {
	return &SubmissionService{
		Submissions: submissions,
		Contents:    contents,
		Users:       users,
	}
}

// SubmitResult 提交成功后返回给客户端的评分结果
type SubmitResult struct {
	Submission   *model.Submission
	AttemptsLeft int
}

// AttemptsUsed 已用次数直接按留存的提交计数
func (s *SubmissionService) AttemptsUsed(studentID uint, contentID string) (int, error) {
	count, err := s.Submissions.CountByContentAndStudent(contentID, studentID)
	return int(count), err
}

// CanAttempt 上限取自学生的策略字段；上限被管理员调低到已用次数以下时
// 立即拒绝，不留宽限
func (s *SubmissionService) CanAttempt(studentID uint, contentID string, maxAttempts int) (bool, error) {
	used, err := s.AttemptsUsed(studentID, contentID)
	if err != nil {
		return false, err
	}
	return used < maxAttempts, nil
}

// SubmitQuiz 学生提交答卷：查次数、评分、落库，三步在同一临界区内完成
func (s *SubmissionService) SubmitQuiz(studentID uint, contentID string, answers []string) (*SubmitResult, error) {
	user, err := s.Users.FindByID(studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	content, err := s.Contents.FindByID(contentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrContentNotFound
		}
		return nil, err
	}
	NormalizeContent(content)

	mu := s.locks.get("submit:" + content.ID + ":" + strconv.FormatUint(uint64(studentID), 10))
	mu.Lock()
	defer mu.Unlock()

	used, err := s.AttemptsUsed(studentID, contentID)
	if err != nil {
		return nil, err
	}
	if used >= user.MaxAttempts {
		return nil, util.ErrAttemptLimitExceeded
	}

	result, err := GradeContent(content, answers)
	if err != nil {
		// 形状不合法，评分不发生，也不消耗次数
		return nil, err
	}

	submission := &model.Submission{
		StudentID:    studentID,
		ContentID:    content.ID,
		StudentName:  user.Name,
		StudentEmail: user.Email,
		MainTopic:    content.MainTopic,
		Subject:      content.Subject,
		Answers:      result.Review,
		Score:        result.Score,
		Total:        result.Total,
		SubmittedAt:  time.Now(),
	}

	if err := s.Submissions.Create(submission); err != nil {
		return nil, err
	}

	return &SubmitResult{
		Submission:   submission,
		AttemptsLeft: user.MaxAttempts - used - 1,
	}, nil
}

// GetStudentSubmissions 学生本人的历史提交，按提交时间倒序
func (s *SubmissionService) GetStudentSubmissions(studentID uint) ([]model.Submission, error) {
	submissions, err := s.Submissions.FindByStudent(studentID)
	if err != nil {
		return nil, err
	}
	for i := range submissions {
		NormalizeSubmission(&submissions[i])
	}
	return submissions, nil
}

// GetAllSubmissions 管理员视角的全部提交
func (s *SubmissionService) GetAllSubmissions() ([]model.Submission, error) {
	submissions, err := s.Submissions.FindAll()
	if err != nil {
		return nil, err
	}
	for i := range submissions {
		NormalizeSubmission(&submissions[i])
	}
	return submissions, nil
}

// ReviewSubmission 管理员人工复核：覆盖总分与评语并标记已复核。
// 逐题轨迹保持评分时的原样，作为覆盖前的证据留存；
// 重复复核直接替换上一次的结果。
func (s *SubmissionService) ReviewSubmission(id string, score int, feedback string) (*model.Submission, error) {
	mu := s.locks.get("review:" + id)
	mu.Lock()
	defer mu.Unlock()

	submission, err := s.Submissions.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSubmissionNotFound
		}
		return nil, err
	}

	if score < 0 || score > submission.Total {
		return nil, util.ErrInvalidScore
	}

	if err := s.Submissions.UpdateReview(id, score, feedback); err != nil {
		return nil, err
	}

	submission.Score = score
	submission.AdminFeedback = feedback
	submission.IsManuallyReviewed = true
	return NormalizeSubmission(submission), nil
}

// OverrideAnswerFlag 逐题对错标记的显式修正，按题目下标定位。
// 独立于总分复核：改标记不重算总分，改总分也不动标记。
func (s *SubmissionService) OverrideAnswerFlag(id string, questionIndex int, correct bool) (*model.Submission, error) {
	mu := s.locks.get("review:" + id)
	mu.Lock()
	defer mu.Unlock()

	submission, err := s.Submissions.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSubmissionNotFound
		}
		return nil, err
	}

	if questionIndex < 0 || questionIndex >= len(submission.Answers) {
		return nil, util.ErrInvalidAnswerIndex
	}

	submission.Answers[questionIndex].Correct = correct
	if err := s.Submissions.UpdateAnswers(id, submission.Answers); err != nil {
		return nil, err
	}

	return NormalizeSubmission(submission), nil
}
