package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

// Config
const (
	API_URL  = "http://localhost:8080/api/v1"
	REGION   = "MA"
	PLATFORM = "android"
)

// sampleCSV is used when no file is given on the command line. Labels use
// the short "Free/Paid/Grossing" vintage on purpose.
const sampleCSV = `Category,Game Name,Rating,Position
Free,Desert Racer,4.4,1
Free,Souk Merchant,4.1,2
Free,Atlas Climb,3.8,3
Free,Medina Match,4.6,4
Free,Falcon Quest,4.4,5
Paid,Sahara Tactics,4.7,1
Paid,Oasis Builder,4.2,2
Grossing,Kingdom Clash,4.5,1
Grossing,Pearl Diver,4.0,2
`

type uploadResponse struct {
	UploadID string `json:"upload_id"`
	Rows     int    `json:"rows"`
	Messages []struct {
		Level string `json:"level"`
		Text  string `json:"text"`
	} `json:"messages"`
}

type dashboardView struct {
	Title    string `json:"title"`
	Valid    bool   `json:"valid"`
	TopN     int    `json:"top_n"`
	Messages []struct {
		Level string `json:"level"`
		Text  string `json:"text"`
	} `json:"messages"`
	Panels []struct {
		Key      string `json:"key"`
		ChartURL string `json:"chart_url"`
		Warning  string `json:"warning"`
	} `json:"panels"`
}

func main() {
	filename := "sample.csv"
	content := []byte(sampleCSV)
	if len(os.Args) > 1 {
		b, err := os.ReadFile(os.Args[1])
		if err != nil {
			log.Fatalf("Failed to read %s: %v", os.Args[1], err)
		}
		filename = filepath.Base(os.Args[1])
		content = b
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		log.Fatalf("Failed to build form: %v", err)
	}
	fw.Write(content)
	mw.Close()

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Post(API_URL+"/uploads", mw.FormDataContentType(), &body)
	if err != nil {
		log.Fatalf("Failed to send upload: %v", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	fmt.Printf("Upload status: %s\n", resp.Status)
	if resp.StatusCode != http.StatusCreated {
		fmt.Printf("Response: %s\n", string(raw))
		fmt.Println("❌ Upload Failed!")
		os.Exit(1)
	}

	var up uploadResponse
	if err := json.Unmarshal(raw, &up); err != nil {
		log.Fatalf("Failed to decode upload response: %v", err)
	}
	fmt.Printf("Upload id: %s (%d rows)\n", up.UploadID, up.Rows)
	for _, m := range up.Messages {
		fmt.Printf("  [%s] %s\n", m.Level, m.Text)
	}

	q := url.Values{}
	q.Set("region", REGION)
	q.Set("platform", PLATFORM)
	q.Set("upload", up.UploadID)
	dresp, err := client.Get(API_URL + "/dashboard?" + q.Encode())
	if err != nil {
		log.Fatalf("Failed to fetch dashboard: %v", err)
	}
	defer dresp.Body.Close()

	var view dashboardView
	if err := json.NewDecoder(dresp.Body).Decode(&view); err != nil {
		log.Fatalf("Failed to decode dashboard: %v", err)
	}

	fmt.Printf("\n%s (top %d)\n", view.Title, view.TopN)
	for _, m := range view.Messages {
		fmt.Printf("  [%s] %s\n", m.Level, m.Text)
	}
	for _, p := range view.Panels {
		if p.Warning != "" {
			fmt.Printf("  %-9s ⚠ %s\n", p.Key, p.Warning)
			continue
		}
		fmt.Printf("  %-9s %s\n", p.Key, p.ChartURL)
	}

	if view.Valid {
		fmt.Println("✅ Dashboard Ready!")
	} else {
		fmt.Println("❌ Dashboard Has No Data!")
	}
}
