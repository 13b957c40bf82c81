package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"sessioncart/internal/config"
	"sessioncart/internal/handler"
	"sessioncart/internal/infra/db"
	"sessioncart/internal/infra/redisx"
	infraRepo "sessioncart/internal/infra/repository"
	"sessioncart/internal/logger"
	"sessioncart/internal/middleware"
	"sessioncart/internal/server"
	"sessioncart/internal/usecase"
	auth "sessioncart/internal/usecase/auth_usecase"
	"sessioncart/internal/validator"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

func main() {
	// .envは任意（無ければ環境変数だけ）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		boot := zerolog.New(os.Stderr)
		boot.Fatal().Err(err).Msg("load config")
	}
	log := logger.New(cfg)

	//DB接続
	gormDB, err := db.Open(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DBDriver).Msg("open db")
	}
	defer func() {
		if err := db.Close(gormDB); err != nil {
			log.Error().Err(err).Msg("close db")
		}
	}()
	if err := db.Migrate(gormDB); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}

	//Redis（セッション）
	rdb := redisx.New(cfg.RedisAddr)
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("close redis")
		}
	}()
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
	err = redisx.Ping(pingCtx, rdb)
	cancelPing()
	if err != nil {
		log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("ping redis")
	}
	sessionStore := redisx.NewSessionStore(rdb, cfg.SessionTTL)

	//Repository（GORM実装）生成
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	txm := infraRepo.NewTxManagerGorm(gormDB)

	//usecaseに渡す部品
	idGen := &uuidGenerator{}
	clock := &realClock{}

	//Usecase生成
	cartUC := usecase.NewCartUsecase(cartRepo, cartRepo, productRepo, clock, log)
	mergeUC := usecase.NewMergeUsecase(txm, log)
	authValidator := validator.NewAuthValidator()
	registerUC := auth.NewRegisterUserUsecase(userRepo, authValidator, auth.NewBcryptPasswordHasher(10), clock, log)
	loginUC := auth.NewLoginUsecase(userRepo, authValidator, auth.NewBcryptPasswordVerifier(), mergeUC, log)

	//セッション
	signer := middleware.NewSessionSigner(cfg.SessionSecret, cfg.SessionTTL)
	sessions := middleware.NewSessionManager(sessionStore, signer, idGen, clock, cfg.SessionTTL, cfg.CookieSecure, log)

	//Handler生成
	authH := handler.NewAuthHandler(registerUC, loginUC, sessions, log)
	cartH := handler.NewCartHandler(cartUC, sessions, log)

	e := server.New(log, sessions, authH, cartH)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	//Server起動
	if err := server.Start(ctx, e, ":"+cfg.Port, log); err != nil {
		log.Error().Err(err).Msg("http server stopped")
	}
	log.Info().Msg("bye")
}
