package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorPurple = "\033[35m"
	colorCyan   = "\033[36m"
)

type TestClient struct {
	baseURL string
	client  *http.Client
}

func NewTestClient(baseURL string) *TestClient {
	return &TestClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

func main() {
	baseURL := flag.String("url", "http://localhost:3000", "Base URL of the server")
	testType := flag.String("test", "all", "Test type: all, health, persona, post, interact, custom")
	postContext := flag.String("context", "", "Post context (for custom test)")
	message := flag.String("message", "", "User message (for custom test)")
	flag.Parse()

	client := NewTestClient(*baseURL)

	printHeader("AI Influencer Server - Test Suite")
	fmt.Printf("%s\n\n", colored(colorCyan, "Base URL: "+*baseURL))

	switch *testType {
	case "all":
		client.runAllTests()
	case "health":
		client.testHealthCheck()
	case "persona":
		client.testPersona()
	case "post":
		client.testGeneratePost()
	case "interact":
		client.testInteract()
	case "custom":
		if *postContext == "" && *message == "" {
			printError("Custom test needs -context and/or -message")
			os.Exit(1)
		}
		if *postContext != "" {
			client.testCustomPost(*postContext)
		}
		if *message != "" {
			client.testCustomInteract(*message, "")
		}
	default:
		printError(fmt.Sprintf("Unknown test type: %s", *testType))
		fmt.Println("\nAvailable tests: all, health, persona, post, interact, custom")
		os.Exit(1)
	}
}

func (tc *TestClient) runAllTests() {
	tests := []struct {
		name string
		fn   func() bool
	}{
		{"Health Check", tc.testHealthCheck},
		{"Persona", tc.testPersona},
		{"Generate Post", tc.testGeneratePost},
		{"Interact", tc.testInteract},
	}

	passed := 0
	failed := 0

	for _, test := range tests {
		if test.fn() {
			passed++
		} else {
			failed++
		}
		fmt.Println()
	}

	printHeader("Test Summary")
	fmt.Println(colored(colorGreen, fmt.Sprintf("Passed: %d", passed)))
	fmt.Println(colored(colorRed, fmt.Sprintf("Failed: %d", failed)))
	fmt.Printf("Total: %d\n", passed+failed)

	if failed > 0 {
		os.Exit(1)
	}
}

func (tc *TestClient) testHealthCheck() bool {
	printTestHeader("Testing Health Check Endpoint")

	url := fmt.Sprintf("%s/health", tc.baseURL)
	fmt.Printf("GET %s\n", url)

	resp, err := tc.client.Get(url)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", resp.StatusCode))
		return false
	}

	if string(body) != "OK" {
		printError(fmt.Sprintf("Expected body 'OK', got '%s'", string(body)))
		return false
	}

	printSuccess("Health check passed")
	return true
}

func (tc *TestClient) testPersona() bool {
	printTestHeader("Testing Persona Endpoint")

	url := fmt.Sprintf("%s/persona", tc.baseURL)
	fmt.Printf("GET %s\n", url)

	resp, err := tc.client.Get(url)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", resp.StatusCode))
		fmt.Printf("Response: %s\n", string(body))
		return false
	}

	var persona map[string]interface{}
	if err := json.Unmarshal(body, &persona); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}

	requiredFields := []string{"name", "age", "profession", "interests", "communicationStyle"}
	for _, field := range requiredFields {
		if _, ok := persona[field]; !ok {
			printError(fmt.Sprintf("Missing required field: %s", field))
			return false
		}
	}

	printSuccess("Persona is valid")
	printJSON(body)
	return true
}

func (tc *TestClient) testGeneratePost() bool {
	return tc.testCustomPost("how sustainable data centers are changing cloud computing")
}

func (tc *TestClient) testInteract() bool {
	return tc.testCustomInteract("I love this! How do you keep a healthy screen-time balance?", "Reply to a comment on a digital wellness post")
}

func (tc *TestClient) testCustomPost(postContext string) bool {
	printTestHeader("Testing Post Generation")

	body, ok := tc.postJSON("/generate-post", map[string]interface{}{"context": postContext})
	if !ok {
		return false
	}

	var result map[string]interface{}
	if err := json.Unmarshal(body, &result); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}

	content, _ := result["content"].(string)
	if content == "" {
		printError("No content generated")
		printJSON(body)
		return false
	}

	printSuccess("Post generation completed")
	fmt.Printf("\n%s\n", colored(colorGreen, "Generated Post:"))
	fmt.Println(strings.Repeat("=", 80))
	fmt.Println(content)
	fmt.Println(strings.Repeat("=", 80))
	fmt.Println(colored(colorPurple, "Image generated:"), result["imageGenerated"])
	fmt.Println(colored(colorPurple, "Tweet posted:"), result["tweetPosted"])
	return true
}

func (tc *TestClient) testCustomInteract(message, userContext string) bool {
	printTestHeader("Testing Interaction")

	body, ok := tc.postJSON("/interact", map[string]interface{}{
		"userMessage": message,
		"userContext": userContext,
	})
	if !ok {
		return false
	}

	var result map[string]interface{}
	if err := json.Unmarshal(body, &result); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}

	response, _ := result["response"].(string)
	if response == "" {
		printError("No response generated")
		printJSON(body)
		return false
	}

	printSuccess("Interaction completed")
	fmt.Printf("\n%s\n", colored(colorGreen, "Response:"))
	fmt.Println(strings.Repeat("=", 80))
	fmt.Println(response)
	fmt.Println(strings.Repeat("=", 80))

	if analysis, ok := result["contextAnalysis"]; ok && analysis != nil {
		fmt.Printf("\n%s\n", colored(colorPurple, "Context Analysis:"))
		analysisJSON, _ := json.MarshalIndent(analysis, "", "  ")
		fmt.Println(string(analysisJSON))
	}
	return true
}

func (tc *TestClient) postJSON(path string, payload map[string]interface{}) ([]byte, bool) {
	url := tc.baseURL + path
	fmt.Printf("POST %s\n", url)

	jsonData, _ := json.MarshalIndent(payload, "", "  ")
	fmt.Println(colored(colorYellow, "Request:"))
	fmt.Println(string(jsonData))
	fmt.Println()

	resp, err := tc.client.Post(url, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return nil, false
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", resp.StatusCode))
		fmt.Printf("Response: %s\n", string(body))
		return nil, false
	}
	return body, true
}

func colored(color, text string) string {
	return color + text + colorReset
}

func printHeader(text string) {
	rule := strings.Repeat("=", len(text)+4)
	fmt.Printf("\n%s\n%s\n%s\n\n", colored(colorBlue, rule), colored(colorBlue, "= "+text+" ="), colored(colorBlue, rule))
}

func printTestHeader(text string) {
	fmt.Println(colored(colorCyan, "[TEST] "+text))
	fmt.Println(strings.Repeat("-", 80))
}

func printSuccess(text string) { fmt.Println(colored(colorGreen, "✓ "+text)) }

func printError(text string) { fmt.Println(colored(colorRed, "✗ "+text)) }

// printJSON pretty-prints data; invalid JSON is skipped.
func printJSON(data []byte) {
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, data, "", "  "); err == nil {
		fmt.Printf("\n%s\n%s\n", colored(colorYellow, "Response:"), pretty.String())
	}
}
