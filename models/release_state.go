package models

import "errors"

// ReleaseState định nghĩa interface cho các trạng thái release.
// Trạng thái chỉ đi một chiều: Draft → For Submission → Pending → Live →
// Taken Down. Admin có thể override qua SetStatusAdmin.
type ReleaseState interface {
	Submit(release *Release) error
	Approve(release *Release) error
	Publish(release *Release) error
	TakeDown(release *Release) error
}

// DraftState trạng thái nháp
type DraftState struct{}

func (s *DraftState) Submit(release *Release) error {
	release.Status = ReleaseStatusForSubmission
	return nil
}

func (s *DraftState) Approve(release *Release) error {
	return errors.New("cannot approve draft release")
}

func (s *DraftState) Publish(release *Release) error {
	return errors.New("cannot publish draft release")
}

func (s *DraftState) TakeDown(release *Release) error {
	return errors.New("cannot take down draft release")
}

// ForSubmissionState trạng thái chờ gửi duyệt
type ForSubmissionState struct{}

func (s *ForSubmissionState) Submit(release *Release) error {
	return errors.New("release already submitted")
}

func (s *ForSubmissionState) Approve(release *Release) error {
	release.Status = ReleaseStatusPending
	return nil
}

func (s *ForSubmissionState) Publish(release *Release) error {
	return errors.New("release not yet approved")
}

func (s *ForSubmissionState) TakeDown(release *Release) error {
	return errors.New("cannot take down unpublished release")
}

// PendingState trạng thái đang chờ phát hành
type PendingState struct{}

func (s *PendingState) Submit(release *Release) error {
	return errors.New("release already submitted")
}

func (s *PendingState) Approve(release *Release) error {
	return errors.New("release already approved")
}

func (s *PendingState) Publish(release *Release) error {
	release.Status = ReleaseStatusLive
	return nil
}

func (s *PendingState) TakeDown(release *Release) error {
	return errors.New("cannot take down unpublished release")
}

// LiveState trạng thái đã phát hành
type LiveState struct{}

func (s *LiveState) Submit(release *Release) error {
	return errors.New("release already live")
}

func (s *LiveState) Approve(release *Release) error {
	return errors.New("release already live")
}

func (s *LiveState) Publish(release *Release) error {
	return errors.New("release already live")
}

func (s *LiveState) TakeDown(release *Release) error {
	release.Status = ReleaseStatusTakenDown
	return nil
}

// TakenDownState trạng thái đã gỡ
type TakenDownState struct{}

func (s *TakenDownState) Submit(release *Release) error {
	return errors.New("release already taken down")
}

func (s *TakenDownState) Approve(release *Release) error {
	return errors.New("release already taken down")
}

func (s *TakenDownState) Publish(release *Release) error {
	return errors.New("release already taken down")
}

func (s *TakenDownState) TakeDown(release *Release) error {
	return errors.New("release already taken down")
}

// GetReleaseState trả về state tương ứng với trạng thái release
func GetReleaseState(status int) ReleaseState {
	switch status {
	case ReleaseStatusDraft:
		return &DraftState{}
	case ReleaseStatusForSubmission:
		return &ForSubmissionState{}
	case ReleaseStatusPending:
		return &PendingState{}
	case ReleaseStatusLive:
		return &LiveState{}
	case ReleaseStatusTakenDown:
		return &TakenDownState{}
	default:
		return &DraftState{}
	}
}

// Release status constants
const (
	ReleaseStatusDraft         = 0
	ReleaseStatusForSubmission = 1
	ReleaseStatusPending       = 2
	ReleaseStatusLive          = 3
	ReleaseStatusTakenDown     = 4
)
