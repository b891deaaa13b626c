package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/fatih/color"
)

const baseURL = "http://localhost:3000/api"

// Pretty print JSON helper
func prettyPrint(raw []byte) {
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		fmt.Println(string(raw))
		return
	}
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

// Request helper
func sendRequest(method, url, token string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+url, bodyReader)
	if err != nil {
		return nil, nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{} // No timeout, LLM replies can be slow
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func extractSessionID(raw []byte) string {
	var envelope struct {
		Data struct {
			Id string `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return ""
	}
	return envelope.Data.Id
}

func main() {
	token := os.Getenv("BOARD_TEST_TOKEN")
	if token == "" {
		color.Red("BOARD_TEST_TOKEN is not set. Login first and export the access token.")
		os.Exit(1)
	}

	color.Cyan("🚀 Starting Boardroom API Smoke Test\n")

	color.Yellow("\n[1] Create Board Session")
	resp, body, err := sendRequest("POST", "/boardroom/v1/sessions", token, nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(body)

	sessionID := extractSessionID(body)
	if sessionID == "" {
		color.Red("Could not extract session id, aborting")
		os.Exit(1)
	}

	color.Yellow("\n[2] Send Vague Answer (should be challenged)")
	resp, body, err = sendRequest("POST", "/boardroom/v1/message", token, map[string]interface{}{
		"board_session_id": sessionID,
		"content":          "I want to do better I guess",
	})
	if err != nil {
		color.Red("Failed: %v", err)
	} else {
		color.Green("Status: %s", resp.Status)
		prettyPrint(body)
	}

	color.Yellow("\n[3] Send Specific Answer")
	resp, body, err = sendRequest("POST", "/boardroom/v1/message", token, map[string]interface{}{
		"board_session_id": sessionID,
		"content": "Last quarter I committed to publishing two blog posts per month. " +
			"I published one in April and none in May because I spent evenings reworking the site design instead of writing. " +
			"The pattern is that I pick polish work over the scary creative work.",
	})
	if err != nil {
		color.Red("Failed: %v", err)
	} else {
		color.Green("Status: %s", resp.Status)
		prettyPrint(body)
	}

	color.Yellow("\n[4] Get Session History")
	resp, body, err = sendRequest("GET", "/boardroom/v1/sessions/"+sessionID+"/history", token, nil)
	if err != nil {
		color.Red("Failed: %v", err)
	} else {
		color.Green("Status: %s", resp.Status)
		prettyPrint(body)
	}

	color.Yellow("\n[5] Get All Sessions")
	resp, body, err = sendRequest("GET", "/boardroom/v1/sessions", token, nil)
	if err != nil {
		color.Red("Failed: %v", err)
	} else {
		color.Green("Status: %s", resp.Status)
		prettyPrint(body)
	}

	color.Cyan("\n✅ Smoke test finished")
}
