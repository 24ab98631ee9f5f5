// seed_catalog.go — standalone script to load a restaurant JSON file and seed the catalog via the Forkcast API.
//
// Usage:
//
//	go run scripts/seed_catalog.go -file restaurants.json -api http://localhost:8700 -user system
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
)

type restaurantRecord struct {
	ID                string   `json:"id,omitempty"`
	Name              string   `json:"name"`
	Address           string   `json:"address,omitempty"`
	Lat               float64  `json:"lat"`
	Lng               float64  `json:"lng"`
	CuisineTypes      []string `json:"cuisine_types,omitempty"`
	PriceMin          int      `json:"price_min"`
	PriceMax          int      `json:"price_max"`
	Quietness         *float64 `json:"quietness,omitempty"`
	ServiceSpeed      string   `json:"service_speed,omitempty"`
	Atmosphere        string   `json:"atmosphere,omitempty"`
	PrivateBooths     bool     `json:"private_booths,omitempty"`
	WalkableDistance  bool     `json:"walkable_distance,omitempty"`
	IdealMeetingTypes []string `json:"ideal_meeting_types,omitempty"`
	RatingAverage     float64  `json:"rating_average,omitempty"`
	RatingCount       int      `json:"rating_count,omitempty"`
}

func main() {
	filePath := flag.String("file", "restaurants.json", "path to restaurant JSON file")
	apiURL := flag.String("api", "http://localhost:8700", "Forkcast API base URL")
	userID := flag.String("user", "system", "X-User-ID header value")
	dryRun := flag.Bool("dry-run", false, "print records without posting")
	flag.Parse()

	data, err := os.ReadFile(*filePath)
	if err != nil {
		log.Fatalf("read %s: %v", *filePath, err)
	}

	var records []restaurantRecord
	if err := json.Unmarshal(data, &records); err != nil {
		log.Fatalf("parse %s: %v", *filePath, err)
	}

	log.Printf("parsed %d records from %s", len(records), *filePath)

	if *dryRun {
		for i, rec := range records {
			fmt.Printf("[%d] %s (cuisines=%v, price=%d-%d, rating=%.1f)\n",
				i+1, rec.Name, rec.CuisineTypes, rec.PriceMin, rec.PriceMax, rec.RatingAverage)
		}
		return
	}

	client := &http.Client{}
	created, skipped := 0, 0
	for _, rec := range records {
		body, _ := json.Marshal(rec)
		req, err := http.NewRequest("POST", *apiURL+"/api/v1/restaurants", bytes.NewReader(body))
		if err != nil {
			log.Printf("skip %q: %v", rec.Name, err)
			skipped++
			continue
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-User-ID", *userID)

		resp, err := client.Do(req)
		if err != nil {
			log.Printf("skip %q: %v", rec.Name, err)
			skipped++
			continue
		}
		resp.Body.Close()

		if resp.StatusCode == http.StatusCreated {
			created++
		} else {
			log.Printf("skip %q: status %d", rec.Name, resp.StatusCode)
			skipped++
		}
	}

	log.Printf("done: %d created, %d skipped", created, skipped)
}
