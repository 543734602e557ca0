package main

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

func buildForm(empID string) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if err := writer.WriteField("employeeId", empID); err != nil {
		return nil, "", err
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return body, writer.FormDataContentType(), nil
}

func main() {
	// Configuration
	checkInURL := "http://localhost:8080/api/v1/attendance/check-in"
	checkOutURL := "http://localhost:8080/api/v1/attendance/check-out"

	numEmployees := 5000
	totalRequests := numEmployees * 2
	concurrency := 50 // Number of concurrent requests to avoid local port exhaustion

	fmt.Printf("Starting load test: %d employees (check-in + check-out each) with concurrency %d\n", numEmployees, concurrency)

	var wg sync.WaitGroup
	sem := make(chan struct{}, concurrency) // Semaphore to limit concurrency

	var successCount int64
	var failCount int64

	startTime := time.Now()

	for i := 0; i < numEmployees; i++ {
		wg.Add(1)
		sem <- struct{}{} // Acquire token

		employeeID := fmt.Sprintf("load-test-emp-%d", i)

		go func(empID string) {
			defer wg.Done()
			defer func() { <-sem }() // Release token

			for _, url := range []string{checkInURL, checkOutURL} {
				body, contentType, err := buildForm(empID)
				if err != nil {
					atomic.AddInt64(&failCount, 1)
					continue
				}

				resp, err := http.Post(url, contentType, body)
				if err != nil {
					atomic.AddInt64(&failCount, 1)
					continue
				}

				if resp.StatusCode >= 200 && resp.StatusCode < 300 {
					atomic.AddInt64(&successCount, 1)
				} else {
					atomic.AddInt64(&failCount, 1)
				}
				resp.Body.Close()
			}
		}(employeeID)
	}

	wg.Wait()
	duration := time.Since(startTime)

	fmt.Println("\n--- Load Test Results ---")
	fmt.Printf("Total Duration: %v\n", duration)
	fmt.Printf("Total Requests: %d\n", totalRequests)
	fmt.Printf("Successful:     %d\n", successCount)
	fmt.Printf("Failed:         %d\n", failCount)
	fmt.Printf("Requests/Sec:   %.2f\n", float64(totalRequests)/duration.Seconds())
}
