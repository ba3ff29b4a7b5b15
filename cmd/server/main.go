package main

import (
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/khoirulmuhlisin/unitproduksi/internal/database"
	routerpkg "github.com/khoirulmuhlisin/unitproduksi/internal/router"
	"github.com/khoirulmuhlisin/unitproduksi/internal/store"
	"github.com/khoirulmuhlisin/unitproduksi/pkg/utils"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	utils.InitLogger()
	utils.InitJWT(os.Getenv("JWT_SECRET"))

	recordStore, err := buildStore()
	if err != nil {
		utils.LogError(err, "Failed to initialize record store")
		log.Fatalf("Failed to initialize record store: %v", err)
	}
	if closer, ok := recordStore.(io.Closer); ok {
		defer closer.Close()
	}

	engine := gin.Default()
	engine.Use(utils.GinLogger())

	// CORS configuration for the SPA frontend.
	corsAllowedOriginsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	var allowedOrigins []string
	if corsAllowedOriginsEnv != "" {
		allowedOrigins = strings.Split(corsAllowedOriginsEnv, ",")
	} else {
		allowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}

	config := cors.DefaultConfig()
	config.AllowOrigins = allowedOrigins
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.AllowCredentials = true
	engine.Use(cors.New(config))

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	if err := routerpkg.Setup(engine, recordStore); err != nil {
		utils.LogError(err, "Failed to set up routes")
		log.Fatalf("Failed to set up routes: %v", err)
	}

	port := utils.Getenv("PORT", "8080")
	utils.LogInfo("Server starting", map[string]interface{}{"port": port})

	if err := engine.Run(":" + port); err != nil {
		utils.LogError(err, "Failed to start server")
		log.Fatalf("Failed to start server: %v", err)
	}
}

// buildStore selects the record store backend. Postgres is the default;
// the memory backend is for demos and local hacking.
func buildStore() (store.RecordStore, error) {
	backend := utils.Getenv("STORE_BACKEND", "postgres")
	if backend == "memory" {
		utils.LogInfo("Using in-memory record store; data will not survive a restart")
		return store.NewMemStore(), nil
	}

	connStr := database.ConnString(
		utils.Getenv("DB_HOST", "localhost"),
		utils.Getenv("DB_PORT", "5432"),
		utils.Getenv("DB_USER", "unitproduksi"),
		utils.Getenv("DB_PASSWORD", "unitproduksi"),
		utils.Getenv("DB_NAME", "unitproduksi_db"),
		utils.Getenv("DB_SSLMODE", "disable"),
	)
	database.InitDB(connStr)
	utils.LogInfo("Database initialized", map[string]interface{}{"configured_from_env": true})

	pgStore, err := store.NewPGStore(database.GetDB())
	if err != nil {
		return nil, err
	}
	if err := pgStore.Listen(connStr); err != nil {
		return nil, err
	}
	return pgStore, nil
}
