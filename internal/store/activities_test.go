package store

import (
	"context"
	"testing"
	"time"

	"github.com/theirongolddev/crmd/internal/model"
)

func TestCreateAndListActivities(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c := seedContact(t, s, "Ann")
	d := seedDeal(t, s, &c.ID, "Order", 100, model.StatusOpen)
	other := seedDeal(t, s, &c.ID, "Other order", 200, model.StatusOpen)

	_, err := s.CreateActivity(ctx, model.Activity{
		DealID:      &d.ID,
		ContactID:   &c.ID,
		Type:        strp("call"),
		Description: strp("Intro call"),
	})
	if err != nil {
		t.Fatalf("CreateActivity failed: %v", err)
	}
	if _, err := s.CreateActivity(ctx, model.Activity{DealID: &other.ID, Type: strp("email")}); err != nil {
		t.Fatalf("CreateActivity failed: %v", err)
	}

	all, err := s.ListActivities(ctx, nil)
	if err != nil {
		t.Fatalf("ListActivities failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("all activities = %d, want 2", len(all))
	}

	filtered, err := s.ListActivities(ctx, &d.ID)
	if err != nil {
		t.Fatalf("filtered ListActivities failed: %v", err)
	}
	if len(filtered) != 1 {
		t.Fatalf("filtered activities = %d, want 1", len(filtered))
	}
	if filtered[0].Description == nil || *filtered[0].Description != "Intro call" {
		t.Errorf("Description = %v, want Intro call", filtered[0].Description)
	}
}

func TestTasksDueBetween(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c := seedContact(t, s, "Ann")
	d := seedDeal(t, s, &c.ID, "Order", 100, model.StatusOpen)

	mk := func(due string) {
		_, err := s.CreateActivity(ctx, model.Activity{
			DealID:    &d.ID,
			ContactID: &c.ID,
			Type:      strp("follow-up"),
			DueDate:   strp(due),
		})
		if err != nil {
			t.Fatalf("CreateActivity failed: %v", err)
		}
	}

	mk("2026-08-24") // Monday, in range
	mk("2026-08-30") // Sunday, in range
	mk("2026-08-31") // next Monday, out of range
	if _, err := s.CreateActivity(ctx, model.Activity{DealID: &d.ID, Type: strp("note")}); err != nil {
		t.Fatalf("CreateActivity failed: %v", err) // no due date, never a task
	}

	tasks, err := s.TasksDueBetween(ctx, "2026-08-24", "2026-08-30")
	if err != nil {
		t.Fatalf("TasksDueBetween failed: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("tasks = %d, want 2", len(tasks))
	}
	if tasks[0].DueDate == nil || *tasks[0].DueDate != "2026-08-24" {
		t.Errorf("first task due = %v, want 2026-08-24 (soonest first)", tasks[0].DueDate)
	}
	if tasks[0].DealTitle == nil || *tasks[0].DealTitle != "Order" {
		t.Errorf("DealTitle = %v, want Order", tasks[0].DealTitle)
	}
	if tasks[0].ContactName == nil || *tasks[0].ContactName != "Ann" {
		t.Errorf("ContactName = %v, want Ann", tasks[0].ContactName)
	}
}

func TestWeekBounds(t *testing.T) {
	cases := []struct {
		day    string
		monday string
		sunday string
	}{
		{"2026-08-24", "2026-08-24", "2026-08-30"}, // Monday
		{"2026-08-26", "2026-08-24", "2026-08-30"}, // midweek
		{"2026-08-30", "2026-08-24", "2026-08-30"}, // Sunday
	}
	for _, tc := range cases {
		day, err := time.Parse("2006-01-02", tc.day)
		if err != nil {
			t.Fatalf("parsing %s: %v", tc.day, err)
		}
		mon, sun := WeekBounds(day)
		if mon != tc.monday || sun != tc.sunday {
			t.Errorf("WeekBounds(%s) = %s..%s, want %s..%s",
				tc.day, mon, sun, tc.monday, tc.sunday)
		}
	}
}
