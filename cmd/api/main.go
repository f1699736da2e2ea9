package main

import (
	"shop/internal/config"
	"shop/internal/domain/model"
	"shop/internal/handler"
	"shop/internal/infra/cache"
	"shop/internal/infra/db"
	"shop/internal/infra/payment"
	infraRepo "shop/internal/infra/repository"
	"shop/internal/server"
	"shop/internal/usecase"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	//.envは無くても起動できる（本番は環境変数で渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		panic(err)
	}
	if err := gormDB.AutoMigrate(
		&model.CartRecord{},
	); err != nil {
		panic(err)
	}

	//カタログキャッシュ用Redis
	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})

	//決済プロバイダのクライアント
	stripeAPI := payment.NewStripeClient(cfg.StripeSecretKey)

	//Repository / Gateway生成
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	catalogGW := payment.NewStripeCatalogGateway(stripeAPI)
	checkoutGW := payment.NewStripeCheckoutGateway(stripeAPI, cfg.AppURL)
	catalogCache := cache.NewRedisCatalogCache(redisClient, cfg.CatalogRevalidate)

	//Usecase生成
	catalogUC := usecase.NewCatalogUsecase(catalogGW, catalogCache)
	cartUC := usecase.NewCartUsecase(cartRepo, catalogGW)
	checkoutUC := usecase.NewCheckoutUsecase(cartRepo, checkoutGW)

	//Handler生成
	h := server.Handlers{
		Products: handler.NewProductHandler(catalogUC),
		Cart:     handler.NewCartHandler(cartUC),
		Checkout: handler.NewCheckoutHandler(checkoutUC),
	}

	//Server起動
	addr := ":" + cfg.Port
	if err := server.Start(addr, cfg, h); err != nil {
		panic(err)
	}
}
