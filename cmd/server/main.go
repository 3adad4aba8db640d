package main

import (
	"net/http"

	"go.uber.org/zap"

	"WebStarter/internal/config"
	"WebStarter/internal/filestore"
	"WebStarter/internal/handlers"
	"WebStarter/internal/middleware"
	"WebStarter/internal/repo"
	"WebStarter/internal/service"
)

func main() {
	cfg := config.NewConfig()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	sugar := logger.Sugar()
	middleware.SetLogger(sugar)
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	store, err := filestore.New(cfg.UploadDir)
	if err != nil {
		sugar.Fatalw("failed to create upload directory", "dir", cfg.UploadDir, "error", err)
	}

	userRepo := repo.NewUserRepository(gormDB)
	categoryRepo := repo.NewCategoryRepository(gormDB)
	itemRepo := repo.NewItemRepository(gormDB)

	userService := service.NewUserService(userRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	itemService := service.NewItemService(itemRepo, categoryRepo)

	h := handlers.NewHandler(userService, categoryService, itemService, store, sugar, cfg)

	sugar.Infow("Starting server",
		"addr", cfg.RunAddr,
		"DatabaseDSN", cfg.DatabaseDSN,
		"UploadDir", cfg.UploadDir,
		"BaseURL", cfg.BaseURL,
		"UnsafeUpload", cfg.EnableUnsafeUpload,
	)

	if err := http.ListenAndServe(cfg.RunAddr, h.Router); err != nil {
		sugar.Fatalw("Server failed", "error", err)
	}
}
