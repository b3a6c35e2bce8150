package schedule

import (
	"context"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	tests := []struct {
		expr    string
		wantErr bool
	}{
		{"0 9 * * *", false},
		{"*/15 * * * *", false},
		{"0 9 * * 1-5", false},
		{"", true},
		{"not a cron", true},
		{"0 9 * *", true},
	}

	for _, tt := range tests {
		_, err := Parse(tt.expr)
		if (err != nil) != tt.wantErr {
			t.Errorf("Parse(%q) error = %v, wantErr %v", tt.expr, err, tt.wantErr)
		}
	}
}

func TestNew_RejectsBadExpression(t *testing.T) {
	if _, err := New("banana", func(context.Context) {}); err == nil {
		t.Fatal("New accepted a bad expression")
	}
}

func TestNext_DailySchedule(t *testing.T) {
	job, err := New("0 9 * * *", func(context.Context) {})
	if err != nil {
		t.Fatal(err)
	}

	next := job.Next()
	if next.Hour() != 9 || next.Minute() != 0 {
		t.Errorf("Next() = %v, want a 09:00 slot", next)
	}
	if !next.After(time.Now()) {
		t.Errorf("Next() = %v, not in the future", next)
	}
}

func TestFire_SkipsOverlappingRun(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var runs int

	job, err := New("* * * * *", func(context.Context) {
		runs++
		close(started)
		<-release
	})
	if err != nil {
		t.Fatal(err)
	}

	go job.fire(context.Background())
	<-started

	// A fire while the first run is still going must be a no-op.
	job.fire(context.Background())
	close(release)

	time.Sleep(50 * time.Millisecond)
	if runs != 1 {
		t.Errorf("runs = %d, want 1", runs)
	}
}
