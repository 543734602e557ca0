package main

import (
	"encoding/json"
	"log"
	"net/http"
	"time"
)

// A simple struct to capture the incoming event data
type SalarySyncEvent struct {
	SalaryRecordID int64     `json:"salaryRecordId"`
	EmployeeID     string    `json:"employeeId"`
	Month          string    `json:"month"`
	FinalSalary    float64   `json:"finalSalary"`
	SnapshotAt     time.Time `json:"snapshotAt"`
}

func salaryHandler(w http.ResponseWriter, r *http.Request) {
	var event SalarySyncEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	log.Printf("Received salary snapshot for EmployeeID: %s, Month: %s, Final: %.2f", event.EmployeeID, event.Month, event.FinalSalary)
	w.WriteHeader(http.StatusOK)
}

func main() {
	http.HandleFunc("/", salaryHandler)
	log.Println("Legacy HR mock server starting on port 8081...")
	log.Fatal(http.ListenAndServe(":8081", nil))
}
