package main

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"kataserver/arena"            // inti permainan: registry, ronde, validasi
	"kataserver/arena/registry"   //indeks room aktif + record durable
	"kataserver/arena/rounds"     //penjadwal ronde
	"kataserver/arena/validation" //cache validasi + leksikon
	"kataserver/database"         //inisialisasi PostgreSQL dan Redis
	"kataserver/models"           //definisi model
	"kataserver/screens"          //endpoint HTTP untuk layar klien
	"kataserver/utils"            //logger dan cron sweeper

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"
)

func main() {
	logger, err := utils.InitLogger() // inisialisasi logger
	if err != nil {
		panic(err) // berhenti jika gagal
	}
	defer logger.Sync()

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	// Inisialisasi PostgreSQL dan Redis secara asinkron
	var config models.Config
	var db *gorm.DB
	var rdb *redis.Client
	done := make(chan bool)

	go func() {
		var err error // err lokal, tidak berbagi dengan goroutine Redis
		config, err = database.LoadConfig("config.json")
		if err != nil {
			logger.Fatal("Gagal membaca file konfigurasi", zap.Error(err))
		}
		db, err = database.InitPostgreSQL(config, logger)
		if err != nil {
			logger.Fatal("Gagal menginisialisasi PostgreSQL", zap.Error(err))
		}
		done <- true
	}()

	go func() {
		var err error
		rdb, err = database.InitRedis(logger)
		if err != nil {
			logger.Fatal("Failed to initialize Redis", zap.Error(err))
		}
		done <- true
	}()

	// Tunggu kedua inisialisasi selesai
	<-done
	<-done

	if err := database.AutoMigrate(db, logger); err != nil {
		logger.Fatal("Gagal menjalankan migrasi", zap.Error(err))
	}
	if err := database.SeedLexicon(db, config.LexiconFile, logger); err != nil {
		logger.Fatal("Gagal mengisi leksikon", zap.Error(err))
	}

	// Rakit inti permainan
	reg := registry.NewRegistry(registry.NewGormStore(db), logger)
	if err := reg.EnsureDefaultRoom(context.Background(), config.DefaultRoomID); err != nil {
		logger.Fatal("Gagal menyiapkan room default", zap.Error(err))
	}
	engine := validation.NewEngine(
		validation.NewLexiconStore(db),
		validation.NewRedisCache(rdb, logger),
		logger,
	)
	sched := rounds.NewScheduler(reg, logger)

	// Sapu room menganggur setiap 5 menit (jendela 30 menit)
	go utils.CronSweeper(reg, 30*time.Minute, logger)

	router := gin.Default()
	router.Use(gin.Recovery(), utils.RequestLogger(logger))

	// Kebijakan CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://192.168.1.1:8080"}, //IP server deploy diisi di sini
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Routing tiap request HTTP
	router.POST("/auth/guest", func(c *gin.Context) {
		screens.GuestTokenHandler(c, logger)
	})
	router.GET("/room/info", func(c *gin.Context) {
		screens.RoomInfoHandler(c, reg, logger)
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/ws", func(c *gin.Context) {
		arena.HandleConnections(c.Request.Context(), c.Writer, c.Request, reg, engine, sched, rdb, logger, upgrader)
	})

	// Saat pengujian dijalankan sebagai HTTP biasa. Port default ":8080"
	router.Run()

	// // Di produksi jalankan sebagai HTTPS
	// err = router.RunTLS(":443", "path/to/cert.pem", "path/to/key.pem")
	// if err != nil {
	// 	logger.Fatal("Failed to run HTTPS server: ", zap.Error(err))
	// }
}
