package collector_test

import (
	"errors"
	"testing"

	"github.com/golang/mock/gomock"

	"github.com/wayming/fdc/cache"
	"github.com/wayming/fdc/config"

	. "github.com/wayming/fdc/collector"
)

func TestRequeueInvalidSymbols(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	cm := cache.NewMockICacheManager(mockCtrl)
	gomock.InOrder(
		cm.EXPECT().GetLength(config.CACHE_KEY_SYMBOLS_INVALID).Return(int64(3), nil),
		cm.EXPECT().MoveSet(config.CACHE_KEY_SYMBOLS_INVALID, config.CACHE_KEY_SYMBOLS).Return(nil),
	)

	count, err := RequeueInvalidSymbols(cm)
	if err != nil {
		t.Fatalf("RequeueInvalidSymbols() error = %v", err)
	}
	if count != 3 {
		t.Errorf("requeued = %d, want 3", count)
	}
}

func TestRequeueInvalidSymbols_EmptySet(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	// Nothing to move: MoveSet must not be called.
	cm := cache.NewMockICacheManager(mockCtrl)
	cm.EXPECT().GetLength(config.CACHE_KEY_SYMBOLS_INVALID).Return(int64(0), nil)

	count, err := RequeueInvalidSymbols(cm)
	if err != nil || count != 0 {
		t.Errorf("RequeueInvalidSymbols() = (%d, %v), want (0, nil)", count, err)
	}
}

func TestRequeueInvalidSymbols_LengthError(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	cm := cache.NewMockICacheManager(mockCtrl)
	cm.EXPECT().GetLength(config.CACHE_KEY_SYMBOLS_INVALID).
		Return(int64(0), errors.New("connection refused"))

	if _, err := RequeueInvalidSymbols(cm); err == nil {
		t.Error("RequeueInvalidSymbols() returned nil error after a failed length lookup")
	}
}
