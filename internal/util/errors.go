package util

import "errors"

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrEmailRegistered        = errors.New("该邮箱已被注册")
	ErrContentNotFound        = errors.New("content not found")
	ErrSubmissionNotFound     = errors.New("submission not found")
	ErrInvalidSubmissionShape = errors.New("answer count does not match question count")
	ErrAttemptLimitExceeded   = errors.New("attempt limit exceeded")
	ErrInvalidScore           = errors.New("score out of range")
	ErrInvalidAnswerIndex     = errors.New("answer index out of range")
	ErrContentInUse           = errors.New("content is referenced by existing submissions")
	ErrInvalidMaxAttempts     = errors.New("max attempts out of range")
)
