package model

import (
	"time"

	"gorm.io/gorm"
)

// Query scopes mirroring the pure predicates on Task and Lead. Each scope must
// select exactly the rows for which the matching predicate returns true, so
// dashboard and list queries stay in lockstep with the in-memory rules.

// ScopePending selects tasks that still need work.
func ScopePending(db *gorm.DB) *gorm.DB {
	return db.Where("status NOT IN ?", []TaskStatus{TaskStatusCompleted, TaskStatusCancelled})
}

// ScopeOverdue selects pending tasks whose due date has passed.
func ScopeOverdue(now time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return ScopePending(db).Where("due_date IS NOT NULL AND due_date < ?", now)
	}
}

// ScopeDueToday selects pending tasks due on the same calendar day as now,
// in now's location.
func ScopeDueToday(now time.Time) func(*gorm.DB) *gorm.DB {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 0, 1)
	return func(db *gorm.DB) *gorm.DB {
		return ScopePending(db).Where("due_date IS NOT NULL AND due_date >= ? AND due_date < ?", start, end)
	}
}

// ScopeNeedsFollowUp selects active leads whose follow-up date has come due.
func ScopeNeedsFollowUp(now time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return ScopeActiveLeads(db).Where("follow_up_date IS NOT NULL AND follow_up_date <= ?", now)
	}
}

// ScopeActiveLeads selects leads that are neither lost nor converted.
func ScopeActiveLeads(db *gorm.DB) *gorm.DB {
	return db.Where("status NOT IN ?", []LeadStatus{LeadStatusLost, LeadStatusConverted})
}
