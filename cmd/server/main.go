// cmd/server/main.go
package main

import (
    "fmt"
    "log"
    "net/http"

    "github.com/go-chi/chi/v5"
    "github.com/go-chi/cors"
    "github.com/joho/godotenv"
    "github.com/redis/go-redis/v9"

    "github.com/farmacliq/crm-backend/internal/ai"
    "github.com/farmacliq/crm-backend/internal/auth"
    "github.com/farmacliq/crm-backend/internal/config"
    "github.com/farmacliq/crm-backend/internal/controller"
    "github.com/farmacliq/crm-backend/internal/db"
    "github.com/farmacliq/crm-backend/internal/lock"
    "github.com/farmacliq/crm-backend/internal/provider"
    "github.com/farmacliq/crm-backend/internal/repository"
    "github.com/farmacliq/crm-backend/internal/service"
    "github.com/farmacliq/crm-backend/internal/ws"
)

func main() {
    // Load .env
    if err := godotenv.Load(); err != nil {
        log.Println("⚠️ No .env file found, relying on OS environment variables")
    }

    cfg, err := config.Load()
    if err != nil {
        log.Fatal("invalid configuration: ", err)
    }

    // Init DB
    db.Init(&cfg.DB)

    messageRepo := &repository.MessageRepository{DB: db.DB}
    campaignRepo := &repository.CampaignRepository{DB: db.DB}
    clientRepo := &repository.ClientRepository{DB: db.DB}

    // One channel provider per process, chosen at startup.
    chatProvider, err := provider.FromConfig(cfg)
    if err != nil {
        log.Fatal("failed to build channel provider: ", err)
    }
    log.Println("✅ Channel provider:", cfg.WhatsApp.Provider)

    var dispatchLock lock.DispatchLock
    if cfg.Lock.Backend == "redis" {
        redisClient := redis.NewClient(&redis.Options{Addr: cfg.Lock.RedisAddr})
        dispatchLock = lock.NewRedisLock(redisClient, cfg.Lock.TTL)
        log.Println("✅ Dispatch lock backend: redis")
    } else {
        dispatchLock = lock.NewMemoryLock(cfg.Lock.TTL)
        log.Println("✅ Dispatch lock backend: memory")
    }

    messageService := &service.MessageService{
        MessageRepo: messageRepo,
        Provider:    chatProvider,
    }

    hub := ws.NewHub(messageService, ws.NewDirectoryAuthorizer(clientRepo))
    messageService.Relay = hub

    campaignService := &service.CampaignService{
        CampaignRepo: campaignRepo,
        ClientRepo:   clientRepo,
        Messages:     messageService,
        Locks:        dispatchLock,
    }

    var generator ai.Generator
    if cfg.AI.APIKey != "" {
        generator = ai.NewOpenAIGenerator(cfg.AI.APIKey, cfg.AI.BaseURL, cfg.AI.Model)
    } else {
        generator = ai.MockGenerator{}
    }
    suggester := &ai.Suggester{Generator: generator, Messages: messageService}

    messageController := &controller.MessageController{
        MessageService: messageService,
        Suggester:      suggester,
    }
    campaignController := &controller.CampaignController{
        CampaignService: campaignService,
    }

    r := chi.NewRouter()
    r.Use(cors.Handler(cors.Options{
        AllowedOrigins:   cfg.App.AllowedOrigins,
        AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
        AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-User-Id", "X-Company-Id"},
        AllowCredentials: true,
    }))
    r.Use(auth.Middleware)

    // Message routes
    r.Post("/messages", messageController.CreateMessage)
    r.Get("/messages", messageController.ListMessages)
    r.Get("/messages/{id}", messageController.GetMessage)
    r.Patch("/messages/{id}", messageController.UpdateMessage)
    r.Delete("/messages/{id}", messageController.DeleteMessage)
    r.Post("/conversations/{clientId}/suggest", messageController.SuggestReply)

    // Campaign routes
    r.Post("/campaigns", campaignController.CreateCampaign)
    r.Get("/campaigns", campaignController.ListCampaigns)
    r.Get("/campaigns/{id}", campaignController.GetCampaign)
    r.Patch("/campaigns/{id}", campaignController.UpdateCampaign)
    r.Delete("/campaigns/{id}", campaignController.DeleteCampaign)
    r.Post("/campaigns/{id}/dispatch", campaignController.DispatchCampaign)

    // Realtime relay
    r.Get("/ws", hub.ServeWS)

    addr := fmt.Sprintf(":%d", cfg.App.Port)
    log.Println("🚀 Server running on", addr)
    log.Fatal(http.ListenAndServe(addr, r))
}
