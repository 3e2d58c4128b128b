// Command seed wipes the database and creates the demo patients.
package main

import (
	"context"
	"log"
	"time"

	"github.com/homescribe/homescribe-engine/pkg/config"
	"github.com/homescribe/homescribe-engine/pkg/database"
	"github.com/homescribe/homescribe-engine/pkg/models"
	"github.com/homescribe/homescribe-engine/pkg/repositories"
)

func main() {
	cfg, err := config.Load("seed")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()
	db, err := database.Connect(ctx, &cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	log.Println("Initializing seed...")

	if _, err := db.Exec(ctx, "DELETE FROM notes"); err != nil {
		log.Fatalf("Failed to delete notes: %v", err)
	}
	if _, err := db.Exec(ctx, "DELETE FROM patients"); err != nil {
		log.Fatalf("Failed to delete patients: %v", err)
	}

	patients := []*models.Patient{
		{MRN: "MRN001", FirstName: "María", LastName: "García López", DOB: date(1945, 3, 15)},
		{MRN: "MRN002", FirstName: "José", LastName: "García López", DOB: date(1938, 7, 22)},
		{MRN: "MRN003", FirstName: "Ana", LastName: "García López", DOB: date(1952, 11, 8)},
	}

	repo := repositories.NewPatientRepository(db)
	for _, p := range patients {
		if err := repo.Create(ctx, p); err != nil {
			log.Fatalf("Failed to create patient %s: %v", p.MRN, err)
		}
	}

	log.Printf("%d patients created", len(patients))
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
