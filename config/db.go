package config

import (
	"fmt"
	"os"
	"time"

	"assistant/domain"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var db *gorm.DB

// GetDatabaseURL builds the database connection string.
func GetDatabaseURL() string {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		os.Getenv("DB_HOST"), os.Getenv("DB_PORT"), os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"), os.Getenv("DB_DATABASE"))
	return dsn
}

// BootDB initializes the database connection and runs migrations.
func BootDB() (*gorm.DB, error) {
	url := GetDatabaseURL()
	var err error

	db, err = gorm.Open(postgres.Open(url), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := autoMigrate(db); err != nil {
		return db, err
	}

	fmt.Println("DB initialized")
	return db, nil
}

var enumDefinitions = map[string][]string{
	"user_role_enum":         {"admin", "teacher", "parent", "student"},
	"user_status_enum":       {"active", "inactive", "suspended"},
	"attendance_status_enum": {"present", "absent", "late", "excused"},
	"attendance_method_enum": {"qr", "location", "manual"},
	"submission_status_enum": {"pending", "in_progress", "submitted", "graded"},
	"reminder_channel_enum":  {"whatsapp", "email", "sms"},
	"delivery_status_enum":   {"sent", "delivered", "read", "failed"},
	"rsvp_status_enum":       {"invited", "confirmed", "declined", "attended", "no_show"},
	"campaign_status_enum":   {"draft", "scheduled", "sending", "sent", "failed"},
	"recipient_status_enum":  {"queued", "sent", "delivered", "read", "replied", "failed", "opted_out"},
	"autonomy_level_enum":    {"full", "assisted", "professional_required"},
	"task_status_enum":       {"pending", "in_progress", "completed", "escalated", "failed"},
	"decision_kind_enum":     {"autonomous", "find_professional", "escalate"},
}

func autoMigrate(db *gorm.DB) error {
	for name, values := range enumDefinitions {
		stmt := fmt.Sprintf(`DO $$ BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = '%s') THEN
			CREATE TYPE %s AS ENUM ('%s');
		END IF;
	END $$`, name, name, joinEnum(values))
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create %s: %w", name, err)
		}
	}

	// Tables without foreign keys first
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.FamilyMember{},
		&domain.BroadcastTemplate{},
		&domain.AIRole{},
	); err != nil {
		return fmt.Errorf("failed to migrate base tables: %w", err)
	}

	// Relational tables
	if err := db.AutoMigrate(
		&domain.Student{},
		&domain.AttendanceRecord{},
		&domain.AttendanceAudit{},
		&domain.HomeworkAssignment{},
		&domain.HomeworkSubmission{},
		&domain.FeeRecord{},
		&domain.FeeReminder{},
		&domain.SchoolEvent{},
		&domain.EventParticipation{},
		&domain.BroadcastCampaign{},
		&domain.CampaignRecipient{},
		&domain.Goal{},
		&domain.ActionableItem{},
		&domain.AICapability{},
		&domain.ProfessionalContact{},
		&domain.AITask{},
		&domain.AIDecision{},
	); err != nil {
		return fmt.Errorf("failed to migrate relational tables: %w", err)
	}

	var existingAdmin domain.User
	err := db.Where("role = 'admin' AND deleted_at IS NULL").First(&existingAdmin).Error
	if err != nil {
		fmt.Println("Creating default admin account....")
		adminName := os.Getenv("ADMIN_NAME")
		adminPhone := os.Getenv("ADMIN_PHONE")
		adminPassword := os.Getenv("ADMIN_PASSWORD")

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("could not hash password: %w", err)
		}

		now := time.Now()
		admin := domain.User{
			UserID:    uuid.NewString(),
			Name:      adminName,
			Phone:     adminPhone,
			Password:  string(hashedPassword),
			Role:      domain.RoleAdmin,
			Status:    domain.UserActive,
			CreatedAt: now,
			UpdatedAt: now,
		}

		err = db.Create(&admin).Error
		if err != nil {
			return err
		}
		fmt.Println("Admin account created")
	}

	return nil
}

func joinEnum(values []string) string {
	out := values[0]
	for _, v := range values[1:] {
		out += "', '" + v
	}
	return out
}
