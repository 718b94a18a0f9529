package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"

	"huffpress/internal/config"
	"huffpress/internal/handler"
	"huffpress/internal/repo"
	"huffpress/internal/router"
	"huffpress/internal/service"
	"huffpress/internal/storage"
	"huffpress/pkg/logger"
)

func main() {
	// 설정/로거 초기화
	cfg := config.Load()
	logg := logger.New()

	// 의존성 생성
	blobs, err := storage.NewBlobStore(cfg.DataDir)
	if err != nil {
		log.Fatal(err)
	}
	defer blobs.Close()

	var jobs repo.JobRepo
	if cfg.DatabaseURL != "" {
		ctx := context.Background()
		pool, err := repo.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer pool.Close()
		if err := repo.Migrate(ctx, pool); err != nil {
			log.Fatal(err)
		}
		jobs = repo.NewJobRepoPostgres(pool)
	} else {
		jobs = repo.NewJobRepoInMemory()
	}

	svc := service.NewCompressService(jobs, blobs, logg)
	h := handler.NewCompressHandler(svc, logg)

	// Gin 라우터 생성 및 라우팅 구성
	r := gin.Default()
	router.Register(r, router.Dependencies{
		CompressHandler: h,
		MaxUploadBytes:  cfg.MaxUploadBytes,
	})

	addr := ":" + cfg.Port
	log.Printf("starting server at %s\n", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
