package config

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

type HTTPServer struct {
	Host string
	Port string
}

type Hub struct {
	URL string
}

type TMDB struct {
	Token   string
	BaseURL string
}

type RedisCache struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
}

type Config struct {
	HTTP  HTTPServer
	Hub   Hub
	TMDB  TMDB
	Redis RedisCache
}

const logtag = "[config]"

func Load() *Config {
	configPath := flag.String("config", "", "path env file")
	flag.Parse()

	if *configPath != "" {
		if err := godotenv.Load(*configPath); err != nil {
			log.Fatalf("%s err loading env from file : %v", logtag, err)
		}
		log.Printf("%s using env from : %s", logtag, *configPath)
	} else {
		log.Printf("%s using env from .env", logtag)
		_ = godotenv.Load()
	}

	cfg := &Config{
		HTTP:  *newHTTP(),
		Hub:   *newHub(),
		TMDB:  *newTMDB(),
		Redis: *newRedis(),
	}

	return cfg
}

func newHTTP() *HTTPServer {
	return &HTTPServer{
		Port: getenv("HTTP_PORT", "8080"),
		Host: getenv("HTTP_HOST", "localhost"),
	}
}

func newHub() *Hub {
	return &Hub{
		URL: getenv("HUB_URL", "ws://localhost:5000/hub"),
	}
}

func newTMDB() *TMDB {
	return &TMDB{
		Token:   getenv("TMDB_TOKEN", ""),
		BaseURL: getenv("TMDB_BASE_URL", "https://api.themoviedb.org/3"),
	}
}

func newRedis() *RedisCache {
	return &RedisCache{
		Enabled:  os.Getenv("REDIS_HOST") != "",
		Host:     getenv("REDIS_HOST", ""),
		Port:     getenv("REDIS_PORT", "6379"),
		Password: getenv("REDIS_PASSWORD", ""),
	}
}

func getenv(key, defaultValue string) string {
	val := os.Getenv(key)
	if val == "" {
		fmt.Printf("%s %s undefined. Using default value %s\n", logtag, key, defaultValue)
		return defaultValue
	}
	return val
}
