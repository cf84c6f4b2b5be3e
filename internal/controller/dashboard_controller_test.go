package controller_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appdotbuilder/crm-manager/internal/controller"
	"github.com/appdotbuilder/crm-manager/internal/model"
	"github.com/appdotbuilder/crm-manager/pkg/database"
)

func TestDashboardAggregates(t *testing.T) {
	app := setupApp(t)
	user, token := createTestUser(t, "owner@test.local")
	other, _ := createTestUser(t, "other@test.local")
	db := database.GetDB()

	now := time.Now().UTC()
	yesterday := now.Add(-24 * time.Hour)
	lastWeek := now.AddDate(0, 0, -7)
	soon := now.Add(time.Minute)
	nextWeek := now.AddDate(0, 0, 7)

	leads := []model.Lead{
		{UserID: user.ID, Name: "L1", Email: "d1@test.local", Status: model.LeadStatusNew, Priority: model.LeadPriorityLow},
		{UserID: user.ID, Name: "L2", Email: "d2@test.local", Status: model.LeadStatusNew, Priority: model.LeadPriorityLow},
		{UserID: user.ID, Name: "L3", Email: "d3@test.local", Status: model.LeadStatusQualified, Priority: model.LeadPriorityLow, FollowUpDate: &yesterday},
		{UserID: user.ID, Name: "L4", Email: "d4@test.local", Status: model.LeadStatusConverted, Priority: model.LeadPriorityLow, FollowUpDate: &lastWeek},
		{UserID: user.ID, Name: "L5", Email: "d5@test.local", Status: model.LeadStatusContacted, Priority: model.LeadPriorityLow, FollowUpDate: &lastWeek},
		{UserID: other.ID, Name: "Foreign", Email: "d6@test.local", Status: model.LeadStatusNew, Priority: model.LeadPriorityLow},
	}
	for i := range leads {
		require.NoError(t, db.Create(&leads[i]).Error)
	}

	customers := []model.Customer{
		{UserID: user.ID, Name: "C1", Email: "dc1@test.local", Status: model.CustomerStatusActive},
		{UserID: user.ID, Name: "C2", Email: "dc2@test.local", Status: model.CustomerStatusProspect},
	}
	for i := range customers {
		require.NoError(t, db.Create(&customers[i]).Error)
	}

	projects := []model.Project{
		{UserID: user.ID, Name: "P1", Status: model.ProjectStatusActive, Priority: model.ProjectPriorityLow},
		{UserID: user.ID, Name: "P2", Status: model.ProjectStatusCompleted, Priority: model.ProjectPriorityLow},
		{UserID: user.ID, Name: "P3", Status: model.ProjectStatusPlanning, Priority: model.ProjectPriorityLow},
	}
	for i := range projects {
		require.NoError(t, db.Create(&projects[i]).Error)
	}

	tasks := []model.Task{
		{UserID: user.ID, Title: "Overdue", Status: model.TaskStatusPending, Priority: model.TaskPriorityLow, DueDate: &yesterday},
		{UserID: user.ID, Title: "Due soon", Status: model.TaskStatusPending, Priority: model.TaskPriorityLow, DueDate: &soon},
		{UserID: user.ID, Title: "Future", Status: model.TaskStatusInProgress, Priority: model.TaskPriorityLow, DueDate: &nextWeek},
		{UserID: user.ID, Title: "Done", Status: model.TaskStatusCompleted, Priority: model.TaskPriorityLow, DueDate: &yesterday},
	}
	for i := range tasks {
		require.NoError(t, db.Create(&tasks[i]).Error)
	}

	resp := doRequest(t, app, http.MethodGet, "/api/dashboard", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Stats         controller.DashboardStats `json:"stats"`
		RecentLeads   []model.Lead              `json:"recent_leads"`
		RecentTasks   []model.Task              `json:"recent_tasks"`
		UpcomingTasks []model.Task              `json:"upcoming_tasks"`
		FollowUpLeads []model.Lead              `json:"follow_up_leads"`
	}
	decodeBody(t, resp, &body)

	assert.EqualValues(t, 5, body.Stats.Leads.Total, "foreign user's lead must not count")
	assert.EqualValues(t, 2, body.Stats.Leads.New)
	assert.EqualValues(t, 1, body.Stats.Leads.Qualified)
	assert.EqualValues(t, 1, body.Stats.Leads.Converted)

	assert.EqualValues(t, 2, body.Stats.Customers.Total)
	assert.EqualValues(t, 1, body.Stats.Customers.Active)

	assert.EqualValues(t, 3, body.Stats.Projects.Total)
	assert.EqualValues(t, 1, body.Stats.Projects.Active)
	assert.EqualValues(t, 1, body.Stats.Projects.Completed)

	assert.EqualValues(t, 4, body.Stats.Tasks.Total)
	assert.EqualValues(t, 2, body.Stats.Tasks.Pending)
	assert.EqualValues(t, 1, body.Stats.Tasks.Overdue)
	assert.EqualValues(t, 1, body.Stats.Tasks.DueToday)

	assert.Len(t, body.RecentLeads, 5)
	assert.Len(t, body.RecentTasks, 4)

	// Upcoming tasks are ordered by due date, nearest first.
	require.Len(t, body.UpcomingTasks, 3)
	assert.Equal(t, "Overdue", body.UpcomingTasks[0].Title)
	assert.Equal(t, "Due soon", body.UpcomingTasks[1].Title)
	assert.Equal(t, "Future", body.UpcomingTasks[2].Title)

	// Converted lead L4 never needs follow-up; oldest follow-up first.
	require.Len(t, body.FollowUpLeads, 2)
	assert.Equal(t, "L5", body.FollowUpLeads[0].Name)
	assert.Equal(t, "L3", body.FollowUpLeads[1].Name)
}

func TestDashboardSurfacesStoreErrors(t *testing.T) {
	app := setupApp(t)
	_, token := createTestUser(t, "owner@test.local")

	// A broken store must produce an error response, not zeroed stats.
	require.NoError(t, database.GetDB().Migrator().DropTable(&model.Lead{}))

	resp := doRequest(t, app, http.MethodGet, "/api/dashboard", token, nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	resp.Body.Close()
}
