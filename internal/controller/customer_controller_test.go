package controller_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appdotbuilder/crm-manager/internal/controller"
	"github.com/appdotbuilder/crm-manager/internal/model"
	"github.com/appdotbuilder/crm-manager/pkg/database"
)

func validCustomerInput(email string) controller.CustomerInput {
	return controller.CustomerInput{
		Name:   "Initech",
		Email:  email,
		Status: "active",
	}
}

func TestCustomerRoundTrip(t *testing.T) {
	app := setupApp(t)
	user, token := createTestUser(t, "owner@test.local")

	input := validCustomerInput("billing@initech.example")
	input.Company = "Initech LLC"
	input.Address = "123 Office Park"
	input.LifetimeValue = 48000
	input.LastContactDate = "2026-08-01"

	resp := doRequest(t, app, http.MethodPost, "/api/customers", token, input)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		Customer model.Customer `json:"customer"`
	}
	decodeBody(t, resp, &created)
	assert.Equal(t, user.ID, created.Customer.UserID)

	resp = doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/customers/%d", created.Customer.ID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var fetched struct {
		Customer model.Customer `json:"customer"`
	}
	decodeBody(t, resp, &fetched)
	assert.Equal(t, "Initech", fetched.Customer.Name)
	assert.Equal(t, "Initech LLC", fetched.Customer.Company)
	assert.Equal(t, model.CustomerStatusActive, fetched.Customer.Status)
	assert.InDelta(t, 48000, fetched.Customer.LifetimeValue, 0.001)
	if assert.NotNil(t, fetched.Customer.LastContactDate) {
		assert.Equal(t, "2026-08-01", fetched.Customer.LastContactDate.Format("2006-01-02"))
	}
}

func TestCustomerForeignRecordForbiddenNotHidden(t *testing.T) {
	app := setupApp(t)
	userA, _ := createTestUser(t, "a@test.local")
	_, tokenB := createTestUser(t, "b@test.local")

	customer := model.Customer{UserID: userA.ID, Name: "Private Co", Email: "private@test.local", Status: model.CustomerStatusActive}
	require.NoError(t, database.GetDB().Create(&customer).Error)

	resp := doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/customers/%d", customer.ID), tokenB, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode, "an existing record must yield 403, not 404")

	var body errorBody
	decodeBody(t, resp, &body)
	assert.Equal(t, "You don't have permission to access this customer", body.Error)

	resp = doRequest(t, app, http.MethodGet, "/api/customers/424242", tokenB, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	decodeBody(t, resp, &body)
	assert.Equal(t, "Customer not found", body.Error)
}

func TestCustomerDuplicateEmailConflict(t *testing.T) {
	app := setupApp(t)
	_, token := createTestUser(t, "owner@test.local")

	resp := doRequest(t, app, http.MethodPost, "/api/customers", token, validCustomerInput("dup@initech.example"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodPost, "/api/customers", token, validCustomerInput("dup@initech.example"))
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	var body errorBody
	decodeBody(t, resp, &body)
	assert.Equal(t, "This email is already registered as a customer.", body.Error)
}

func TestCustomerValidation(t *testing.T) {
	app := setupApp(t)
	_, token := createTestUser(t, "owner@test.local")

	input := controller.CustomerInput{Email: "bad", Status: "vip", LifetimeValue: -1}
	resp := doRequest(t, app, http.MethodPost, "/api/customers", token, input)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var body errorBody
	decodeBody(t, resp, &body)
	for _, field := range []string{"name", "email", "status", "lifetime_value"} {
		assert.Contains(t, body.Errors, field)
	}
}

func TestDeleteCustomerDetachesProjectsAndTasks(t *testing.T) {
	app := setupApp(t)
	user, token := createTestUser(t, "owner@test.local")
	db := database.GetDB()

	customer := model.Customer{UserID: user.ID, Name: "Departing", Email: "departing@test.local", Status: model.CustomerStatusActive}
	require.NoError(t, db.Create(&customer).Error)
	project := model.Project{UserID: user.ID, CustomerID: &customer.ID, Name: "Relaunch", Status: model.ProjectStatusActive, Priority: model.ProjectPriorityMedium}
	require.NoError(t, db.Create(&project).Error)
	task := model.Task{UserID: user.ID, CustomerID: &customer.ID, Title: "Send invoice", Status: model.TaskStatusPending, Priority: model.TaskPriorityMedium}
	require.NoError(t, db.Create(&task).Error)

	resp := doRequest(t, app, http.MethodDelete, fmt.Sprintf("/api/customers/%d", customer.ID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	var keptProject model.Project
	require.NoError(t, db.First(&keptProject, project.ID).Error)
	assert.Nil(t, keptProject.CustomerID, "project survives with the customer reference cleared")

	var keptTask model.Task
	require.NoError(t, db.First(&keptTask, task.ID).Error)
	assert.Nil(t, keptTask.CustomerID)

	// The detail endpoint reflects the cleared link too.
	resp = doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/projects/%d", project.ID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var detail struct {
		Project model.Project `json:"project"`
	}
	decodeBody(t, resp, &detail)
	assert.Nil(t, detail.Project.CustomerID)
	assert.Nil(t, detail.Project.Customer)
}

func TestDeleteCustomerFreesEmail(t *testing.T) {
	app := setupApp(t)
	_, token := createTestUser(t, "owner@test.local")

	resp := doRequest(t, app, http.MethodPost, "/api/customers", token, validCustomerInput("reuse@initech.example"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		Customer model.Customer `json:"customer"`
	}
	decodeBody(t, resp, &created)

	resp = doRequest(t, app, http.MethodDelete, fmt.Sprintf("/api/customers/%d", created.Customer.ID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodPost, "/api/customers", token, validCustomerInput("reuse@initech.example"))
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
}

func TestListCustomersSearch(t *testing.T) {
	app := setupApp(t)
	user, token := createTestUser(t, "owner@test.local")
	db := database.GetDB()

	for _, c := range []model.Customer{
		{UserID: user.ID, Name: "Globex", Email: "c1@test.local", Status: model.CustomerStatusActive},
		{UserID: user.ID, Name: "Hooli", Email: "c2@globex.example", Status: model.CustomerStatusProspect},
		{UserID: user.ID, Name: "Umbrella", Email: "c3@test.local", Status: model.CustomerStatusInactive},
	} {
		customer := c
		require.NoError(t, db.Create(&customer).Error)
	}

	resp := doRequest(t, app, http.MethodGet, "/api/customers?search=globex", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var page struct {
		Data []model.Customer `json:"data"`
	}
	decodeBody(t, resp, &page)

	var names []string
	for _, customer := range page.Data {
		names = append(names, customer.Name)
	}
	assert.ElementsMatch(t, []string{"Globex", "Hooli"}, names)
}
