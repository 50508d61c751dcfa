package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"rosa/config"
	"rosa/database"
	catalogRepo "rosa/database/repository/catalog"
	"rosa/models"
	"rosa/utils"
)

// Seeds the services and cabins of a fresh environment. Existing documents
// with the same ids are overwritten.
func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var repo catalogRepo.CatalogRepository
	switch config.AppConfig.StoreDriver {
	case database.DriverMongo:
		client, db, err := database.InitMongo(ctx)
		if err != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		defer client.Disconnect(context.Background())
		repo = catalogRepo.NewMongoCatalogRepo(db, logger)
	default:
		app, err := utils.FirebaseInit(ctx)
		if err != nil {
			log.Fatalf("Failed to initialize firebase: %v", err)
		}
		client, err := database.InitFirestore(ctx, app)
		if err != nil {
			log.Fatalf("Failed to open Firestore: %v", err)
		}
		defer client.Close()
		repo = catalogRepo.NewFirestoreCatalogRepo(client, logger)
	}

	for i := range seedServices {
		svc := seedServices[i]
		if err := svc.Validate(); err != nil {
			log.Fatalf("Invalid seed service %s: %v", svc.ID, err)
		}
		if err := repo.UpsertService(ctx, &svc); err != nil {
			log.Fatalf("Failed to seed service %s: %v", svc.ID, err)
		}
	}

	for i := 1; i <= 8; i++ {
		cabin := models.Cabin{
			ID:       fmt.Sprintf("cabana-%d", i),
			Name:     fmt.Sprintf("Cabana %d", i),
			Capacity: 2 + (i % 3),
			Posicao:  i,
		}
		if err := repo.UpsertCabin(ctx, &cabin); err != nil {
			log.Fatalf("Failed to seed cabin %s: %v", cabin.ID, err)
		}
	}

	log.Printf("Seeded %d services and 8 cabins into %s", len(seedServices), config.AppConfig.StoreDriver)
}

func hourly(from, to int) []models.TimeSlot {
	var slots []models.TimeSlot
	for h := from; h < to; h++ {
		slots = append(slots, models.TimeSlot{
			ID:        fmt.Sprintf("%d-%d", h, h+1),
			StartTime: fmt.Sprintf("%02d:00", h),
			EndTime:   fmt.Sprintf("%02d:00", h+1),
			Label:     fmt.Sprintf("%dh–%dh", h, h+1),
		})
	}
	return slots
}

var seedServices = []models.Service{
	{
		ID:            "sauna",
		Name:          "Sauna",
		Type:          models.ServiceTypeSlots,
		DefaultStatus: models.DefaultStatusOpen,
		Units:         []string{"Única"},
		TimeSlots:     hourly(10, 20),
	},
	{
		ID:            "jacuzzi",
		Name:          "Jacuzzi",
		Type:          models.ServiceTypeSlots,
		DefaultStatus: models.DefaultStatusOpen,
		Units:         []string{"Deck", "Jardim"},
		TimeSlots:     hourly(9, 22),
	},
	{
		ID:            "passeio-cavalo",
		Name:          "Passeio a cavalo",
		Type:          models.ServiceTypeSlots,
		DefaultStatus: models.DefaultStatusClosed,
		Units:         []string{"Trilha"},
		TimeSlots:     hourly(8, 12),
	},
	{
		ID:                "limpeza",
		Name:              "Limpeza",
		Type:              models.ServiceTypePreference,
		DefaultStatus:     models.DefaultStatusOpen,
		AdditionalOptions: []string{"Troca de toalhas", "Troca de roupa de cama", "Reposição de amenities"},
	},
}
