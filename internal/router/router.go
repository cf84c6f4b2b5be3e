package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/appdotbuilder/crm-manager/internal/controller"
	"github.com/appdotbuilder/crm-manager/internal/middleware"
)

// Setup registers every route on the app. Kept apart from main so the tests
// exercise the exact production routing.
func Setup(app *fiber.App) {
	app.Get("/health-check", controller.HealthCheck)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", controller.Register)
	auth.Post("/login", controller.Login)

	protected := api.Group("/", middleware.AuthMiddleware())
	protected.Get("/me", controller.GetMe)
	protected.Get("/dashboard", controller.GetDashboard)

	leads := protected.Group("/leads")
	leads.Get("/", controller.ListLeads)
	leads.Get("/create", controller.NewLead)
	leads.Post("/", controller.CreateLead)
	leads.Get("/:id", controller.GetLead)
	leads.Get("/:id/edit", controller.EditLead)
	leads.Put("/:id", controller.UpdateLead)
	leads.Patch("/:id", controller.UpdateLead)
	leads.Delete("/:id", controller.DeleteLead)

	customers := protected.Group("/customers")
	customers.Get("/", controller.ListCustomers)
	customers.Get("/create", controller.NewCustomer)
	customers.Post("/", controller.CreateCustomer)
	customers.Get("/:id", controller.GetCustomer)
	customers.Get("/:id/edit", controller.EditCustomer)
	customers.Put("/:id", controller.UpdateCustomer)
	customers.Patch("/:id", controller.UpdateCustomer)
	customers.Delete("/:id", controller.DeleteCustomer)

	projects := protected.Group("/projects")
	projects.Get("/", controller.ListProjects)
	projects.Get("/create", controller.NewProject)
	projects.Post("/", controller.CreateProject)
	projects.Get("/:id", controller.GetProject)
	projects.Get("/:id/edit", controller.EditProject)
	projects.Put("/:id", controller.UpdateProject)
	projects.Patch("/:id", controller.UpdateProject)
	projects.Delete("/:id", controller.DeleteProject)

	tasks := protected.Group("/tasks")
	tasks.Get("/", controller.ListTasks)
	tasks.Get("/create", controller.NewTask)
	tasks.Post("/", controller.CreateTask)
	tasks.Get("/:id", controller.GetTask)
	tasks.Get("/:id/edit", controller.EditTask)
	tasks.Put("/:id", controller.UpdateTask)
	tasks.Patch("/:id", controller.UpdateTask)
	tasks.Delete("/:id", controller.DeleteTask)
}
