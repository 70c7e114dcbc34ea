package config

import (
	"log"

	"github.com/elastic/go-elasticsearch/v8"
)

// InitElasticsearch initializes the Elasticsearch client backing the college
// search index and verifies connectivity once at boot.
func InitElasticsearch() *elasticsearch.Client {
	cfg := elasticsearch.Config{
		Addresses: []string{
			GetEnvOrDefault("ELASTICSEARCH_ADDRESS", "http://localhost:9200"),
		},
		Username: GetEnv("ELASTICSEARCH_USERNAME"),
		Password: GetEnv("ELASTICSEARCH_PASSWORD"),
	}

	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		log.Fatalf("Error initializing Elasticsearch: %s", err)
	}

	// Test the connection using the Info API
	res, err := client.Info()
	if err != nil {
		log.Fatalf("Error connecting to Elasticsearch: %s", err)
	}
	defer res.Body.Close()

	log.Println("Elasticsearch is up and running")
	return client
}
