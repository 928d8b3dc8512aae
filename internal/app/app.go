package app

import (
	"log/slog"

	"github.com/pdrhp/matchmovie/internal/config"
	http_init "github.com/pdrhp/matchmovie/internal/delivery/http/init"
	http_movies "github.com/pdrhp/matchmovie/internal/delivery/http/movies"
	infra_catalog_cache "github.com/pdrhp/matchmovie/internal/infra/redis/catalog"
	infra_redis_init "github.com/pdrhp/matchmovie/internal/infra/redis/init"
	"github.com/pdrhp/matchmovie/internal/infra/tmdb"
	usecase_acquire "github.com/pdrhp/matchmovie/internal/usecase/acquire"
)

// Go runs the movie facade: the HTTP surface clients use to acquire
// candidate pools without holding a TMDB token themselves.
func Go(cfg *config.Config) {
	var cache *infra_catalog_cache.Driver
	if cfg.Redis.Enabled {
		redisConn := infra_redis_init.MustEstablishConn(cfg.Redis)
		cache = infra_catalog_cache.New(redisConn, "catalog_cache")
	}

	catalog := tmdb.NewClient(cfg.TMDB.Token, cfg.TMDB.BaseURL)
	acquireUC := usecase_acquire.New(catalog, cache, slog.Default())

	controllerPool := http_init.NewControllerPool()
	controllerPool.Add(http_movies.New(acquireUC))

	controllerPool.Register()
	controllerPool.RunAll(cfg.HTTP.Port)
}
