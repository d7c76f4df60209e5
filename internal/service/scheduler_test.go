package service

import (
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestScheduler_StartInvalidSchedule(t *testing.T) {
	sp := &fakeSpotify{payload: testPayload()}
	store := &fakeStore{bucket: "spotify-etl-project-tasneem"}
	svc := newTestService(sp, store, nil, nil)

	scheduler := NewScheduler(svc, "not-a-cron-expression", time.Minute, zap.NewNop())

	if err := scheduler.Start(); err == nil {
		scheduler.Stop()
		t.Fatal("Expected error for invalid cron expression")
	}
}

func TestScheduler_DoubleStart(t *testing.T) {
	sp := &fakeSpotify{payload: testPayload()}
	store := &fakeStore{bucket: "spotify-etl-project-tasneem"}
	svc := newTestService(sp, store, nil, nil)

	scheduler := NewScheduler(svc, "0 */8 * * *", time.Minute, zap.NewNop())

	if err := scheduler.Start(); err != nil {
		t.Fatalf("First Start() failed: %v", err)
	}
	defer scheduler.Stop()

	if err := scheduler.Start(); err == nil {
		t.Fatal("Expected error on second Start()")
	}
}
