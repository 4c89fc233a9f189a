package main

import (
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/df07/go-tile-pathtracer/pkg/output"
	"github.com/df07/go-tile-pathtracer/pkg/renderer"
	"github.com/df07/go-tile-pathtracer/web/server"
)

// Helper to get environment variables with a default value.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func main() {
	_ = godotenv.Load()

	// Parse command line flags
	port := flag.Int("port", 8080, "Port to serve on")
	scenesDir := flag.String("scenes", getEnv("PATHTRACER_SCENES_DIR", "scenes"), "Directory searched for JSON scenes")
	flag.Parse()

	var uploader *output.Uploader
	s3Config := output.S3Config{
		AccessKey: os.Getenv("S3_ACCESS_KEY"),
		SecretKey: os.Getenv("S3_SECRET_KEY"),
		Endpoint:  os.Getenv("S3_ENDPOINT"),
		Region:    getEnv("S3_REGION", "us-east-1"),
		Bucket:    os.Getenv("S3_BUCKET"),
	}
	if s3Config.Enabled() {
		var err error
		uploader, err = output.NewUploader(s3Config, renderer.NewDefaultLogger())
		if err != nil {
			log.Fatalf("Failed to create S3 uploader: %v", err)
		}
		log.Printf("Uploads enabled to bucket %s", s3Config.Bucket)
	}

	// Create and start web server
	webServer := server.NewServer(*port, *scenesDir, uploader)

	log.Printf("Tile Path Tracer Web Server")
	log.Printf("Try http://localhost:%d/api/render?scene=default", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
