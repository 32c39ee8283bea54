package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

const (
	baseURL         = "http://localhost:8080"
	wsURL           = "ws://localhost:8080"
	concurrentUsers = 1000
	testDuration    = 30 * time.Second
	apiRampUpTime   = 5 * time.Second
	wsRampUpTime    = 10 * time.Second
)

type Stats struct {
	apiRequests     int64
	apiSuccess      int64
	apiFailed       int64
	apiTotalLatency int64
	apiMaxLatency   int64
	wsConnections   int64
	wsSuccess       int64
	wsFailed        int64
	wsMessages      int64
	wsTotalLatency  int64
	wsMaxLatency    int64
}

var stats Stats

func main() {
	fmt.Printf("Starting load test with %d concurrent users for %v\n", concurrentUsers, testDuration)
	fmt.Println("===========================================")

	var wg sync.WaitGroup
	startTime := time.Now()
	stopChan := make(chan struct{})

	// Phase 1: solve/hand API load test (ramp up over 5 seconds)
	fmt.Println("\nPhase 1: Solve API Load Testing...")
	for i := 0; i < concurrentUsers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			time.Sleep(time.Duration(id) * apiRampUpTime / concurrentUsers)
			runAPILoadTest(id, stopChan)
		}(i)
	}

	// Phase 2: spectator WebSocket load test (ramp up over 10 seconds)
	time.Sleep(5 * time.Second)
	fmt.Println("\nPhase 2: Spectator WebSocket Load Testing...")
	for i := 0; i < concurrentUsers/10; i++ { // 100 WebSocket connections
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			time.Sleep(time.Duration(id) * wsRampUpTime / (concurrentUsers / 10))
			runWebSocketTest(id, stopChan)
		}(i)
	}

	time.Sleep(testDuration)
	close(stopChan)

	wg.Wait()
	elapsed := time.Since(startTime)

	fmt.Println("\n===========================================")
	fmt.Println("Load Test Results")
	fmt.Println("===========================================")
	fmt.Printf("Total Duration: %v\n\n", elapsed)

	apiReqs := atomic.LoadInt64(&stats.apiRequests)
	apiSucc := atomic.LoadInt64(&stats.apiSuccess)
	apiFail := atomic.LoadInt64(&stats.apiFailed)
	apiLatency := atomic.LoadInt64(&stats.apiTotalLatency)
	apiMaxLat := atomic.LoadInt64(&stats.apiMaxLatency)

	fmt.Println("Solve/Hand Endpoints:")
	fmt.Printf("  Total Requests: %d\n", apiReqs)
	fmt.Printf("  Successful: %d (%.2f%%)\n", apiSucc, float64(apiSucc)/float64(apiReqs)*100)
	fmt.Printf("  Failed: %d (%.2f%%)\n", apiFail, float64(apiFail)/float64(apiReqs)*100)
	if apiSucc > 0 {
		avgLatency := time.Duration(apiLatency/apiSucc) * time.Millisecond
		fmt.Printf("  Avg Latency: %v\n", avgLatency)
		fmt.Printf("  Max Latency: %v\n", time.Duration(apiMaxLat)*time.Millisecond)
		fmt.Printf("  Requests/sec: %.2f\n", float64(apiReqs)/elapsed.Seconds())

		if avgLatency > 200*time.Millisecond {
			fmt.Printf("  WARNING: Avg latency (%v) exceeds 200ms target\n", avgLatency)
		} else {
			fmt.Printf("  Avg latency (%v) meets <200ms target\n", avgLatency)
		}
	}

	wsConns := atomic.LoadInt64(&stats.wsConnections)
	wsSucc := atomic.LoadInt64(&stats.wsSuccess)
	wsFail := atomic.LoadInt64(&stats.wsFailed)
	wsMsgs := atomic.LoadInt64(&stats.wsMessages)
	wsLatency := atomic.LoadInt64(&stats.wsTotalLatency)
	wsMaxLat := atomic.LoadInt64(&stats.wsMaxLatency)

	fmt.Println("\nSpectator WebSocket Connections:")
	fmt.Printf("  Total Connections: %d\n", wsConns)
	fmt.Printf("  Successful: %d (%.2f%%)\n", wsSucc, float64(wsSucc)/float64(wsConns)*100)
	fmt.Printf("  Failed: %d (%.2f%%)\n", wsFail, float64(wsFail)/float64(wsConns)*100)
	fmt.Printf("  Total Messages: %d\n", wsMsgs)
	if wsMsgs > 0 {
		avgWSLatency := time.Duration(wsLatency/wsMsgs) * time.Millisecond
		fmt.Printf("  Avg Message Latency: %v\n", avgWSLatency)
		fmt.Printf("  Max Message Latency: %v\n", time.Duration(wsMaxLat)*time.Millisecond)
		fmt.Printf("  Messages/sec: %.2f\n", float64(wsMsgs)/elapsed.Seconds())

		if avgWSLatency > 100*time.Millisecond {
			fmt.Printf("  WARNING: Avg WS latency (%v) exceeds 100ms target\n", avgWSLatency)
		} else {
			fmt.Printf("  Avg WS latency (%v) meets <100ms target\n", avgWSLatency)
		}
	}

	fmt.Println("\n===========================================")
	fmt.Println("Load test completed!")
}

// runAPILoadTest repeatedly draws a practice hand and solves it from
// scratch, the two endpoints a real client hits most often.
func runAPILoadTest(userID int, stopChan <-chan struct{}) {
	client := &http.Client{Timeout: 5 * time.Second}

	token, err := createGuestUser(client, userID)
	if err != nil {
		log.Printf("User %d: Failed to create guest: %v", userID, err)
		return
	}

	for {
		select {
		case <-stopChan:
			return
		default:
			hand, err := drawHand(client, token)
			if err != nil {
				atomic.AddInt64(&stats.apiFailed, 1)
				time.Sleep(100 * time.Millisecond)
				continue
			}
			solveHand(client, token, hand)

			for _, endpoint := range []string{"/health", "/metrics"} {
				start := time.Now()
				req, _ := http.NewRequest("GET", baseURL+endpoint, nil)

				atomic.AddInt64(&stats.apiRequests, 1)
				resp, err := client.Do(req)
				latency := time.Since(start).Milliseconds()
				if err != nil {
					atomic.AddInt64(&stats.apiFailed, 1)
					continue
				}
				io.Copy(io.Discard, resp.Body)
				resp.Body.Close()
				recordAPIResult(resp.StatusCode, latency)
			}

			time.Sleep(100 * time.Millisecond)
		}
	}
}

func recordAPIResult(statusCode int, latency int64) {
	if statusCode != http.StatusOK {
		atomic.AddInt64(&stats.apiFailed, 1)
		return
	}
	atomic.AddInt64(&stats.apiSuccess, 1)
	atomic.AddInt64(&stats.apiTotalLatency, latency)
	for {
		oldMax := atomic.LoadInt64(&stats.apiMaxLatency)
		if latency <= oldMax || atomic.CompareAndSwapInt64(&stats.apiMaxLatency, oldMax, latency) {
			break
		}
	}
}

// runWebSocketTest creates a solve session, starts spectating it, and
// measures how long each spectate request takes to write to the socket.
func runWebSocketTest(userID int, stopChan <-chan struct{}) {
	httpClient := &http.Client{Timeout: 5 * time.Second}

	token, err := createGuestUser(httpClient, userID+10000)
	if err != nil {
		log.Printf("WS User %d: Failed to create guest: %v", userID, err)
		return
	}

	sessionID, err := createSolveSession(httpClient, token)
	if err != nil {
		log.Printf("WS User %d: Failed to create solve session: %v", userID, err)
		return
	}

	atomic.AddInt64(&stats.wsConnections, 1)

	wsConn, _, err := websocket.DefaultDialer.Dial(
		fmt.Sprintf("%s/api/ws?token=%s", wsURL, token),
		nil,
	)
	if err != nil {
		atomic.AddInt64(&stats.wsFailed, 1)
		log.Printf("WS User %d: Failed to connect: %v", userID, err)
		return
	}
	defer wsConn.Close()

	atomic.AddInt64(&stats.wsSuccess, 1)

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-stopChan:
			return
		case <-ticker.C:
			start := time.Now()

			msg := map[string]interface{}{
				"type":    "spectate",
				"payload": map[string]interface{}{"sessionId": sessionID},
			}

			if err := wsConn.WriteJSON(msg); err != nil {
				return
			}

			latency := time.Since(start).Milliseconds()
			atomic.AddInt64(&stats.wsMessages, 1)
			atomic.AddInt64(&stats.wsTotalLatency, latency)

			for {
				oldMax := atomic.LoadInt64(&stats.wsMaxLatency)
				if latency <= oldMax || atomic.CompareAndSwapInt64(&stats.wsMaxLatency, oldMax, latency) {
					break
				}
			}
		}
	}
}

func createGuestUser(client *http.Client, id int) (string, error) {
	payload := map[string]string{
		"displayName": fmt.Sprintf("LoadTestUser%d", id),
	}

	body, _ := json.Marshal(payload)
	resp, err := client.Post(baseURL+"/api/auth/guest", "application/json", bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var result struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	return result.Token, nil
}

// drawHand draws a small practice hand to feed into solveHand.
func drawHand(client *http.Client, token string) (map[string]int, error) {
	payload := map[string]interface{}{"tileCount": 12}
	body, _ := json.Marshal(payload)

	req, _ := http.NewRequest("POST", baseURL+"/api/hands/random", bytes.NewBuffer(body))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result struct {
		Hand map[string]int `json:"hand"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	return result.Hand, nil
}

func solveHand(client *http.Client, token string, hand map[string]int) {
	payload := map[string]interface{}{"hand": hand}
	body, _ := json.Marshal(payload)

	start := time.Now()
	req, _ := http.NewRequest("POST", baseURL+"/api/solve/scratch", bytes.NewBuffer(body))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	atomic.AddInt64(&stats.apiRequests, 1)
	resp, err := client.Do(req)
	latency := time.Since(start).Milliseconds()
	if err != nil {
		atomic.AddInt64(&stats.apiFailed, 1)
		return
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	recordAPIResult(resp.StatusCode, latency)
}

func createSolveSession(client *http.Client, token string) (string, error) {
	req, _ := http.NewRequest("POST", baseURL+"/api/solve/sessions", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var result struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	return result.ID, nil
}
