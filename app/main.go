package main

import (
	"os"
	"os/signal"
	"sync"
	"time"

	"assistant/config"
	"assistant/services/assistant/delivery"
	"assistant/services/assistant/repository"
	"assistant/services/assistant/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var log *logrus.Logger
var wg sync.WaitGroup

const useCaseTimeout = 30 * time.Second

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Fatalf("Error loading .env file")
	}

	log = config.GetLogrusInstance()

	startHTTP()
}

func startHTTP() {
	log.Info("Starting HTTP")
	app := fiber.New(config.GetFiberConfig())

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	db, err := config.BootDB()
	if err != nil {
		log.Fatalf("Failed to boot DB: %v", err)
		return
	}

	meowClient, _, _, _, err := config.InitSender()
	if err != nil {
		log.Fatalf("Failed to initialize sender: %v", err)
		return
	}

	sender := repository.NewWhatsmeowSender(meowClient)

	authRepo := repository.NewAuthRepository(db)
	userRepo := repository.NewUserRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	homeworkRepo := repository.NewHomeworkRepository(db)
	feeRepo := repository.NewFeeRepository(db)
	eventRepo := repository.NewEventRepository(db)
	broadcastRepo := repository.NewBroadcastRepository(db)
	familyRepo := repository.NewFamilyRepository(db)
	aiRoleRepo := repository.NewAIRoleRepository(db)

	authUC := usecase.NewAuthUseCase(authRepo)
	userUC := usecase.NewUserUseCase(userRepo, useCaseTimeout)
	studentUC := usecase.NewStudentUseCase(studentRepo, useCaseTimeout)
	attendanceUC := usecase.NewAttendanceUseCase(attendanceRepo, useCaseTimeout)
	homeworkUC := usecase.NewHomeworkUseCase(homeworkRepo, useCaseTimeout)
	feeUC := usecase.NewFeeUseCase(feeRepo, sender, useCaseTimeout)
	eventUC := usecase.NewEventUseCase(eventRepo, useCaseTimeout)
	broadcastUC := usecase.NewBroadcastUseCase(broadcastRepo, sender, useCaseTimeout)
	familyUC := usecase.NewFamilyUseCase(familyRepo, useCaseTimeout)
	aiRoleUC := usecase.NewAIRoleUseCase(aiRoleRepo, useCaseTimeout)

	delivery.NewAuthDelivery(app, authUC)
	delivery.NewUserDelivery(app, userUC)
	delivery.NewStudentDelivery(app, studentUC)
	delivery.NewAttendanceDelivery(app, attendanceUC)
	delivery.NewHomeworkDelivery(app, homeworkUC)
	delivery.NewFeeDelivery(app, feeUC)
	delivery.NewEventDelivery(app, eventUC)
	delivery.NewBroadcastDelivery(app, broadcastUC)
	delivery.NewFamilyDelivery(app, familyUC)
	delivery.NewAIRoleDelivery(app, aiRoleUC)

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Infof("Starting HTTP server for Public on port %s", config.GetFiberHttpPort())
		if err := app.Listen(config.GetFiberListenAddress()); err != nil {
			log.Fatalf("Error starting server: %v", err)
		}
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, os.Kill)

	<-signalChan

	log.Info("Shutting down the server...")

	if err := app.Shutdown(); err != nil {
		log.Errorf("Error during server shutdown: %v", err)
	}

	// Interrupt running campaign dispatches; they stay resumable.
	broadcastUC.StopDispatches()

	meowClient.Disconnect()

	wg.Wait()
	log.Info("Server shut down gracefully")
}
