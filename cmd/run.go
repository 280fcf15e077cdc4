package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"oneaccord/config"
	"oneaccord/database"
	"oneaccord/events"
	"oneaccord/models"
	"oneaccord/repository"
	"oneaccord/server"
	"oneaccord/service"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Println("Starting oneaccord server...")

	// Load configuration
	cfg := config.Get()

	// Initialize database connection
	log.Println("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Println("Database connection established successfully")

	// Initialize event bus
	eventBus := events.NewBus()
	subscribeNotifiers(eventBus)

	// Initialize unit of work factory
	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)

	// Initialize services
	log.Println("Initializing services...")
	userService := service.NewUserService(uowFactory, cfg.StartingBalance)
	walletService := service.NewWalletService(uowFactory)
	transferService := service.NewTransferService(uowFactory)
	conversationService := service.NewConversationService(uowFactory, demoThreads(cfg))
	feedService := service.NewFeedService(uowFactory)
	log.Println("Services initialized successfully")

	// Initialize HTTP server
	handlers := server.NewHandlers(userService, walletService, transferService, conversationService, feedService)
	router := server.NewRouter(handlers, db)
	httpServer := server.New(cfg.HTTPAddr, router)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- httpServer.Start()
	}()

	log.Printf("Server is running in %s mode on %s...", cfg.Environment, cfg.HTTPAddr)

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("http server error: %w", err)
		}
	case <-ctx.Done():
	}

	// Cleanup resources
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error shutting down HTTP server: %v", err)
	}

	log.Println("Closing database connection...")
	db.Close()

	log.Println("Shutdown completed")
	return nil
}

// subscribeNotifiers attaches delivery hooks to the event bus. Actual push
// delivery is an external collaborator; here the hooks log what a notifier
// would send.
func subscribeNotifiers(bus *events.Bus) {
	bus.Subscribe(events.EventTypeTransferCreated, func(ctx context.Context, e events.Event) {
		if ev, ok := e.(events.TransferCreatedEvent); ok && ev.ToUserID != nil {
			log.Printf("notify user %s: incoming %s transfer %s", ev.ToUserID, ev.Status, ev.TransferID)
		}
	})
	bus.Subscribe(events.EventTypeTransferResolved, func(ctx context.Context, e events.Event) {
		if ev, ok := e.(events.TransferResolvedEvent); ok && ev.FromUserID != nil {
			verdict := "declined"
			if ev.Accepted {
				verdict = "accepted"
			}
			log.Printf("notify user %s: transfer %s was %s", ev.FromUserID, ev.TransferID, verdict)
		}
	})
}

// demoThreads builds the synthetic sample conversations merged into every
// inbox when DEMO_THREADS is enabled
func demoThreads(cfg *config.Config) []*models.Conversation {
	if !cfg.DemoThreads {
		return nil
	}

	return []*models.Conversation{
		{
			PartnerID: models.DemoKeyPrefix + "guide",
			Partner: models.UserProfile{
				Username:    "guide",
				DisplayName: "Welcome Guide",
				ActiveRole:  models.UserRoleEnvoy,
			},
			Preview: "Welcome! Send your first gift to get started.",
			LastAt:  time.Now().Add(-time.Hour),
			Demo:    true,
		},
	}
}
