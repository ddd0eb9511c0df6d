package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"immogest/config"
	"immogest/controllers"
	"immogest/database"
	"immogest/middleware"
	"immogest/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
)

// healthHandler répond aux sondes de disponibilité
func healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "ok")
}

// newFunctionsServer construit le serveur de fonctions planifiées,
// isolé du serveur principal sur son propre port
func newFunctionsServer(reminderController *controllers.ReminderController) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(middleware.Recovery())
	engine.Use(middleware.Logger())
	engine.Use(middleware.CORSMiddleware())
	engine.Use(middleware.RateLimit())

	engine.POST("/functions/send-payment-reminders", reminderController.SendPaymentReminders)
	engine.GET("/functions/metrics", reminderController.Metrics)

	return engine
}

func main() {
	// Charge le fichier .env s'il existe
	if err := godotenv.Load(); err != nil {
		log.Println("Aucun fichier .env trouvé, utilisation de l'environnement")
	}

	// Initialise la configuration
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Erreur de chargement de la configuration: %v", err)
	}

	// Initialise la connexion à la base de données
	db, err := database.NewDatabase(cfg)
	if err != nil {
		log.Fatalf("Erreur de connexion à la base de données: %v", err)
	}

	// Initialise les services transverses
	emailService := services.NewEmailService(cfg)
	storageService := services.NewStorageService(cfg.Storage.Path)
	notificationService := services.NewNotificationService(
		db.DB,
		emailService,
		cfg.Reminder.LookaheadDays,
		cfg.Reminder.BatchLimit,
	)

	// Lance le planificateur de rappels
	scheduler := services.NewReminderSchedulerService(
		notificationService,
		time.Duration(cfg.Reminder.IntervalHours)*time.Hour,
	)
	scheduler.Start()
	log.Println("Planificateur de rappels de paiement démarré")

	// Initialise les contrôleurs
	authController := controllers.NewAuthController(db, cfg)
	propertyController := controllers.NewPropertyController(db)
	tenantController := controllers.NewTenantController(db)
	contractController := controllers.NewContractController(db, storageService)
	paymentController := controllers.NewPaymentController(db)
	expenseController := controllers.NewExpenseController(db)
	reportController := controllers.NewReportController(db)
	reminderController := controllers.NewReminderController(notificationService)

	// Crée le routeur principal
	router := mux.NewRouter()
	router.HandleFunc("/health", healthHandler).Methods("GET")

	// Routes publiques d'authentification
	router.HandleFunc("/api/auth/signUp", authController.SignUp).Methods("POST")
	router.HandleFunc("/api/auth/signIn", authController.SignIn).Methods("POST")

	// Routes protégées
	protected := router.PathPrefix("/api").Subrouter()
	protected.Use(middleware.AuthMiddleware([]byte(authController.GetJWTKey())))
	protected.Use(middleware.LoggingMiddleware)

	// Propriétés
	protected.HandleFunc("/properties", propertyController.List).Methods("GET")
	protected.HandleFunc("/properties", propertyController.Create).Methods("POST")
	protected.HandleFunc("/properties/{id}", propertyController.Get).Methods("GET")
	protected.HandleFunc("/properties/{id}", propertyController.Update).Methods("PUT")
	protected.HandleFunc("/properties/{id}", propertyController.Delete).Methods("DELETE")

	// Locataires
	protected.HandleFunc("/tenants", tenantController.List).Methods("GET")
	protected.HandleFunc("/tenants", tenantController.Create).Methods("POST")
	protected.HandleFunc("/tenants/{id}", tenantController.Get).Methods("GET")
	protected.HandleFunc("/tenants/{id}", tenantController.Update).Methods("PUT")
	protected.HandleFunc("/tenants/{id}", tenantController.Delete).Methods("DELETE")

	// Contrats
	protected.HandleFunc("/contracts", contractController.List).Methods("GET")
	protected.HandleFunc("/contracts", contractController.Upload).Methods("POST")
	protected.HandleFunc("/contracts/{id}/download", contractController.Download).Methods("GET")
	protected.HandleFunc("/contracts/{id}", contractController.Delete).Methods("DELETE")

	// Paiements
	protected.HandleFunc("/payments", paymentController.List).Methods("GET")
	protected.HandleFunc("/payments", paymentController.Create).Methods("POST")
	protected.HandleFunc("/payments/{id}", paymentController.Get).Methods("GET")
	protected.HandleFunc("/payments/{id}", paymentController.Update).Methods("PUT")
	protected.HandleFunc("/payments/{id}", paymentController.Delete).Methods("DELETE")

	// Dépenses
	protected.HandleFunc("/expenses", expenseController.List).Methods("GET")
	protected.HandleFunc("/expenses", expenseController.Create).Methods("POST")
	protected.HandleFunc("/expenses/{id}", expenseController.Get).Methods("GET")
	protected.HandleFunc("/expenses/{id}", expenseController.Update).Methods("PUT")
	protected.HandleFunc("/expenses/{id}", expenseController.Delete).Methods("DELETE")

	// Rapports financiers
	protected.HandleFunc("/reports/summary", reportController.Summary).Methods("GET")
	protected.HandleFunc("/reports/export", reportController.Export).Methods("GET")

	// Lance le serveur de fonctions sur son propre port
	functionsServer := newFunctionsServer(reminderController)
	go func() {
		functionsPort := fmt.Sprintf(":%d", cfg.Server.FunctionsPort)
		log.Printf("Serveur de fonctions démarré sur le port %s", functionsPort)
		if err := functionsServer.Run(functionsPort); err != nil {
			log.Fatalf("Erreur du serveur de fonctions: %v", err)
		}
	}()

	// Lance le serveur principal
	port := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Serveur démarré sur le port %s", port)
	if err := http.ListenAndServe(port, router); err != nil {
		log.Fatalf("Erreur de démarrage du serveur: %v", err)
	}
}
