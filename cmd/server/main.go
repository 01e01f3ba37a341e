package main

import (
	"flag"
	"log"

	"github.com/ButyrinIA/blog/internal/config"
	"github.com/ButyrinIA/blog/internal/server"
	"github.com/ButyrinIA/blog/internal/storage"
	"github.com/ButyrinIA/blog/internal/storage/postgres"
	"github.com/ButyrinIA/blog/internal/storage/sqlite"
)

func main() {
	configPath := flag.String("config", "config.yaml", "путь к файлу конфигурации")
	storageType := flag.String("storage", "sqlite", "тип хранилища: sqlite или postgres")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Не удалось загрузить конфигурацию: %v", err)
	}

	var store storage.Storage
	switch *storageType {
	case "postgres":
		log.Println("Инициализация хранилища PostgreSQL")
		store, err = postgres.New(cfg.Postgres.DSN)
		if err != nil {
			log.Fatalf("Не удалось инициализировать PostgreSQL: %v", err)
		}
	case "sqlite":
		log.Println("Инициализация хранилища SQLite")
		store, err = sqlite.New(cfg.SQLite.Path)
		if err != nil {
			log.Fatalf("Не удалось инициализировать SQLite: %v", err)
		}
	default:
		log.Fatalf("Неизвестный тип хранилища: %s", *storageType)
	}
	defer store.Close()

	srv, err := server.New(cfg, store)
	if err != nil {
		log.Fatalf("Не удалось создать сервер: %v", err)
	}
	log.Println("Запуск сервера")
	if err := srv.Run(); err != nil {
		log.Fatalf("Не удалось запустить сервер: %v", err)
	}
}
