// Linkstash Analysis Service Example
//
// This is a minimal example of a content analysis service that
// Linkstash can be pointed at via ANALYSIS_SERVICE_URL. It accepts
// the saved link as JSON and returns it enriched with derived fields.
//
// Usage:
//   go run main.go
//
// Then start Linkstash with ANALYSIS_SERVICE_URL=http://localhost:9100/analyze

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
)

// LinkItem mirrors the payload Linkstash posts for analysis.
type LinkItem struct {
	ID          string `json:"id"`
	Owner       string `json:"owner"`
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	WordCount   int    `json:"word_count"`
	ReadingTime int    `json:"reading_time"`
	Summary     string `json:"summary"`
	Label       string `json:"label"`
}

const wordsPerMinute = 200

func main() {
	http.HandleFunc("/analyze", analyzeHandler)

	addr := ":9100"
	log.Printf("analysis service listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, nil))
}

func analyzeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		http.Error(w, "read body", http.StatusBadRequest)
		return
	}

	var item LinkItem
	if err := json.Unmarshal(body, &item); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	if item.URL == "" {
		http.Error(w, "url is required", http.StatusUnprocessableEntity)
		return
	}

	// A real service would fetch and analyze the page content.
	// This example derives toy values from the title and description.
	text := item.Title + " " + item.Description
	item.WordCount = len(strings.Fields(text))
	item.ReadingTime = item.WordCount/wordsPerMinute + 1
	item.Summary = summarize(item.Description)
	item.Label = label(item.URL)

	log.Printf("analyzed link %s (%s) for %s", item.ID, item.URL, item.Owner)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(item); err != nil {
		log.Printf("encode response: %v", err)
	}
}

func summarize(description string) string {
	const max = 120
	if len(description) <= max {
		return description
	}
	return fmt.Sprintf("%s...", description[:max])
}

func label(url string) string {
	switch {
	case strings.Contains(url, "github.com"):
		return "code"
	case strings.Contains(url, "youtube.com"):
		return "video"
	default:
		return "article"
	}
}
