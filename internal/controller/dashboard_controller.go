package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/appdotbuilder/crm-manager/internal/model"
	"github.com/appdotbuilder/crm-manager/pkg/database"
)

type DashboardStats struct {
	Leads     LeadStats     `json:"leads"`
	Customers CustomerStats `json:"customers"`
	Projects  ProjectStats  `json:"projects"`
	Tasks     TaskStats     `json:"tasks"`
}

type LeadStats struct {
	Total     int64 `json:"total"`
	New       int64 `json:"new"`
	Qualified int64 `json:"qualified"`
	Converted int64 `json:"converted"`
}

type CustomerStats struct {
	Total  int64 `json:"total"`
	Active int64 `json:"active"`
}

type ProjectStats struct {
	Total     int64 `json:"total"`
	Active    int64 `json:"active"`
	Completed int64 `json:"completed"`
}

type TaskStats struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Overdue  int64 `json:"overdue"`
	DueToday int64 `json:"due_today"`
}

// GetDashboard aggregates the per-user counters and the recent/upcoming
// activity shown on the landing view.
func GetDashboard(c *fiber.Ctx) error {
	claims := currentUser(c)
	db := database.GetDB()
	now := time.Now()

	var stats DashboardStats

	counters := []struct {
		query *gorm.DB
		dest  *int64
	}{
		{db.Model(&model.Lead{}).Where("user_id = ?", claims.UserID), &stats.Leads.Total},
		{db.Model(&model.Lead{}).Where("user_id = ? AND status = ?", claims.UserID, model.LeadStatusNew), &stats.Leads.New},
		{db.Model(&model.Lead{}).Where("user_id = ? AND status = ?", claims.UserID, model.LeadStatusQualified), &stats.Leads.Qualified},
		{db.Model(&model.Lead{}).Where("user_id = ? AND status = ?", claims.UserID, model.LeadStatusConverted), &stats.Leads.Converted},
		{db.Model(&model.Customer{}).Where("user_id = ?", claims.UserID), &stats.Customers.Total},
		{db.Model(&model.Customer{}).Where("user_id = ? AND status = ?", claims.UserID, model.CustomerStatusActive), &stats.Customers.Active},
		{db.Model(&model.Project{}).Where("user_id = ?", claims.UserID), &stats.Projects.Total},
		{db.Model(&model.Project{}).Where("user_id = ? AND status = ?", claims.UserID, model.ProjectStatusActive), &stats.Projects.Active},
		{db.Model(&model.Project{}).Where("user_id = ? AND status = ?", claims.UserID, model.ProjectStatusCompleted), &stats.Projects.Completed},
		{db.Model(&model.Task{}).Where("user_id = ?", claims.UserID), &stats.Tasks.Total},
		{db.Model(&model.Task{}).Where("user_id = ? AND status = ?", claims.UserID, model.TaskStatusPending), &stats.Tasks.Pending},
		{db.Model(&model.Task{}).Where("user_id = ?", claims.UserID).Scopes(model.ScopeOverdue(now)), &stats.Tasks.Overdue},
		{db.Model(&model.Task{}).Where("user_id = ?", claims.UserID).Scopes(model.ScopeDueToday(now)), &stats.Tasks.DueToday},
	}
	for _, counter := range counters {
		if err := counter.query.Count(counter.dest).Error; err != nil {
			return err
		}
	}

	var recentLeads []model.Lead
	if err := db.Where("user_id = ?", claims.UserID).
		Order("created_at DESC").
		Limit(5).
		Find(&recentLeads).Error; err != nil {
		return err
	}

	var recentTasks []model.Task
	if err := db.Where("user_id = ?", claims.UserID).
		Preload("Project").Preload("Customer").Preload("Lead").
		Order("created_at DESC").
		Limit(5).
		Find(&recentTasks).Error; err != nil {
		return err
	}

	var upcomingTasks []model.Task
	if err := db.Where("user_id = ?", claims.UserID).
		Scopes(model.ScopePending).
		Where("due_date IS NOT NULL").
		Preload("Project").Preload("Customer").Preload("Lead").
		Order("due_date").
		Limit(5).
		Find(&upcomingTasks).Error; err != nil {
		return err
	}

	var followUpLeads []model.Lead
	if err := db.Where("user_id = ?", claims.UserID).
		Scopes(model.ScopeNeedsFollowUp(now)).
		Order("follow_up_date").
		Limit(5).
		Find(&followUpLeads).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"stats":           stats,
		"recent_leads":    recentLeads,
		"recent_tasks":    recentTasks,
		"upcoming_tasks":  upcomingTasks,
		"follow_up_leads": followUpLeads,
	})
}
