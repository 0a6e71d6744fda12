package validator

import (
	"strings"
	"testing"

	"label/dto"
	"label/errors"

	"github.com/shopspring/decimal"
)

func split(artistID uint, streaming, sync, download, physical string) dto.RoyaltySplitInput {
	return dto.RoyaltySplitInput{
		ArtistID:            artistID,
		StreamingPercentage: decimal.RequireFromString(streaming),
		SyncPercentage:      decimal.RequireFromString(sync),
		DownloadPercentage:  decimal.RequireFromString(download),
		PhysicalPercentage:  decimal.RequireFromString(physical),
	}
}

func TestValidateRoyaltySplits(t *testing.T) {
	tests := []struct {
		name     string
		splits   []dto.RoyaltySplitInput
		wantCode errors.ErrorCode
	}{
		{
			name:   "danh sách rỗng hợp lệ",
			splits: nil,
		},
		{
			name: "hai nghệ sĩ 60/30",
			splits: []dto.RoyaltySplitInput{
				split(1, "60", "60", "60", "60"),
				split(2, "30", "30", "30", "30"),
			},
		},
		{
			name: "tổng đúng 100 hợp lệ",
			splits: []dto.RoyaltySplitInput{
				split(1, "70", "0", "0", "0"),
				split(2, "30", "0", "0", "0"),
			},
		},
		{
			name: "tổng 100.01 bị từ chối",
			splits: []dto.RoyaltySplitInput{
				split(1, "70", "0", "0", "0"),
				split(2, "30.01", "0", "0", "0"),
			},
			wantCode: errors.ErrCodeRoyaltyOverallocation,
		},
		{
			name: "nghệ sĩ trùng lặp",
			splits: []dto.RoyaltySplitInput{
				split(1, "40", "0", "0", "0"),
				split(1, "40", "0", "0", "0"),
			},
			wantCode: errors.ErrCodeDuplicateArtist,
		},
		{
			name: "tỷ lệ âm",
			splits: []dto.RoyaltySplitInput{
				split(1, "-1", "0", "0", "0"),
			},
			wantCode: errors.ErrCodeInvalidPercentage,
		},
		{
			name: "tỷ lệ trên 100",
			splits: []dto.RoyaltySplitInput{
				split(1, "100.5", "0", "0", "0"),
			},
			wantCode: errors.ErrCodeInvalidPercentage,
		},
		{
			name: "thiếu ID nghệ sĩ",
			splits: []dto.RoyaltySplitInput{
				split(0, "50", "0", "0", "0"),
			},
			wantCode: errors.ErrCodeRequiredField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRoyaltySplits(tt.splits)
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("mong đợi hợp lệ, nhận lỗi: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("mong đợi lỗi %s, nhận nil", tt.wantCode)
			}
			if !errors.HasCode(err, tt.wantCode) {
				t.Fatalf("mong đợi mã %s, nhận %v", tt.wantCode, err)
			}
		})
	}
}

func TestValidateRoyaltySplitsItemizesCategories(t *testing.T) {
	// Streaming và download cùng vượt trần, thông báo phải nêu cả hai
	splits := []dto.RoyaltySplitInput{
		split(1, "80", "50", "90", "0"),
		split(2, "30", "20", "20", "0"),
	}

	err := ValidateRoyaltySplits(splits)
	if err == nil {
		t.Fatal("mong đợi lỗi vượt trần")
	}
	appErr := errors.GetAppError(err)
	if appErr == nil {
		t.Fatalf("mong đợi AppError, nhận %T", err)
	}
	if !strings.Contains(appErr.Message, "streaming") {
		t.Errorf("thông báo thiếu streaming: %q", appErr.Message)
	}
	if !strings.Contains(appErr.Message, "download") {
		t.Errorf("thông báo thiếu download: %q", appErr.Message)
	}
	if strings.Contains(appErr.Message, "sync") {
		t.Errorf("sync không vượt trần nhưng lại xuất hiện: %q", appErr.Message)
	}
}

func TestLabelShare(t *testing.T) {
	splits := []dto.RoyaltySplitInput{
		split(1, "60", "100", "0", "25"),
		split(2, "30", "0", "0", "25"),
	}

	share := LabelShare(splits)

	if !share.Streaming.Equal(decimal.NewFromInt(10)) {
		t.Errorf("streaming = %s, mong đợi 10", share.Streaming)
	}
	if !share.Sync.Equal(decimal.Zero) {
		t.Errorf("sync = %s, mong đợi 0", share.Sync)
	}
	if !share.Download.Equal(decimal.NewFromInt(100)) {
		t.Errorf("download = %s, mong đợi 100", share.Download)
	}
	if !share.Physical.Equal(decimal.NewFromInt(50)) {
		t.Errorf("physical = %s, mong đợi 50", share.Physical)
	}
}

func TestLabelShareEmpty(t *testing.T) {
	share := LabelShare(nil)
	if !share.Streaming.Equal(decimal.NewFromInt(100)) {
		t.Errorf("danh sách rỗng thì nhãn giữ 100%%, nhận %s", share.Streaming)
	}
}
