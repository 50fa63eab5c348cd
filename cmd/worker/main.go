// The worker drains the import queue: each message is an ImportJob id whose
// file was stored by the API. Run it next to the server whenever AMQP_URL is
// configured.
package main

import (
	"log"

	"forecast-backend/internal/config"
	"forecast-backend/internal/database"
	"forecast-backend/internal/importer"
	"forecast-backend/internal/queue"
)

func main() {
	cfg := config.Load()
	if cfg.AMQPURL == "" {
		log.Fatal("[FATAL] AMQP_URL is required for the import worker")
	}

	database.Init(cfg)

	client, err := queue.Dial(cfg.AMQPURL, cfg.ImportQueue)
	if err != nil {
		log.Fatalf("import queue: %v", err)
	}
	defer client.Close()

	log.Println("import worker consuming from queue", cfg.ImportQueue)
	if err := client.Consume(importer.ExecuteJob); err != nil {
		log.Fatal(err)
	}
}
