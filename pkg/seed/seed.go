package seed

import (
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/appdotbuilder/crm-manager/internal/model"
)

// Run creates a demo user with a small set of CRM records. Safe to call on
// every boot, existing rows are reused.
func Run(db *gorm.DB) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := model.User{
		Name:     "Demo User",
		Email:    "demo@crm-manager.local",
		Password: string(hashed),
	}
	if err := db.FirstOrCreate(&user, model.User{Email: user.Email}).Error; err != nil {
		return err
	}

	now := time.Now()
	yesterday := now.AddDate(0, 0, -1)
	nextWeek := now.AddDate(0, 0, 7)

	leadValue := 12500.00
	leads := []model.Lead{
		{
			UserID:       user.ID,
			Name:         "Alice Johnson",
			Email:        "alice@acme.example",
			Company:      "Acme Corp",
			Status:       model.LeadStatusQualified,
			Priority:     model.LeadPriorityHigh,
			Value:        &leadValue,
			FollowUpDate: &yesterday,
		},
		{
			UserID:   user.ID,
			Name:     "Bob Smith",
			Email:    "bob@globex.example",
			Company:  "Globex",
			Status:   model.LeadStatusNew,
			Priority: model.LeadPriorityMedium,
		},
	}
	for i := range leads {
		if err := db.FirstOrCreate(&leads[i], model.Lead{Email: leads[i].Email}).Error; err != nil {
			return err
		}
	}

	customer := model.Customer{
		UserID:        user.ID,
		Name:          "Initech",
		Email:         "billing@initech.example",
		Company:       "Initech",
		Status:        model.CustomerStatusActive,
		LifetimeValue: 48000.00,
	}
	if err := db.FirstOrCreate(&customer, model.Customer{Email: customer.Email}).Error; err != nil {
		return err
	}

	budget := 20000.00
	project := model.Project{
		UserID:     user.ID,
		CustomerID: &customer.ID,
		Name:       "Website Relaunch",
		Status:     model.ProjectStatusActive,
		Priority:   model.ProjectPriorityHigh,
		Budget:     &budget,
		StartDate:  &yesterday,
		Progress:   35,
	}
	if err := db.FirstOrCreate(&project, model.Project{UserID: user.ID, Name: project.Name}).Error; err != nil {
		return err
	}

	tasks := []model.Task{
		{
			UserID:    user.ID,
			ProjectID: &project.ID,
			Title:     "Review homepage draft",
			Status:    model.TaskStatusPending,
			Priority:  model.TaskPriorityHigh,
			DueDate:   &yesterday,
		},
		{
			UserID:     user.ID,
			CustomerID: &customer.ID,
			Title:      "Quarterly check-in call",
			Status:     model.TaskStatusPending,
			Priority:   model.TaskPriorityMedium,
			DueDate:    &nextWeek,
		},
	}
	for i := range tasks {
		if err := db.FirstOrCreate(&tasks[i], model.Task{UserID: user.ID, Title: tasks[i].Title}).Error; err != nil {
			return err
		}
	}

	log.Println("Demo data seeded successfully!")
	return nil
}
