package main

import (
	"fmt"
	"log"
	"time"

	"roomly/internal/bookings"
	"roomly/internal/rooms"
	"roomly/internal/shared/config"
	"roomly/internal/shared/database"

	"github.com/google/uuid"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting Roomly Database Seeder...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in dependency order
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"bookings",
		"rooms",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit().Error
}

// SeedAll seeds the room catalog and a handful of confirmed bookings
func (s *Seeder) SeedAll() error {
	roomIDs, err := s.SeedRooms()
	if err != nil {
		return fmt.Errorf("failed to seed rooms: %w", err)
	}

	if err := s.SeedBookings(roomIDs); err != nil {
		return fmt.Errorf("failed to seed bookings: %w", err)
	}

	return nil
}

// SeedRooms inserts a small room catalog across two buildings
func (s *Seeder) SeedRooms() ([]uuid.UUID, error) {
	catalog := []rooms.Room{
		{ID: uuid.New(), Name: "Aurora", Building: "North", Floor: 1, Capacity: 4},
		{ID: uuid.New(), Name: "Borealis", Building: "North", Floor: 1, Capacity: 8},
		{ID: uuid.New(), Name: "Cascade", Building: "North", Floor: 2, Capacity: 12},
		{ID: uuid.New(), Name: "Dune", Building: "South", Floor: 1, Capacity: 6},
		{ID: uuid.New(), Name: "Estuary", Building: "South", Floor: 2, Capacity: 10},
		{ID: uuid.New(), Name: "Fjord", Building: "South", Floor: 3, Capacity: 20},
	}

	ids := make([]uuid.UUID, 0, len(catalog))
	for i := range catalog {
		if err := s.db.PostgreSQL.Create(&catalog[i]).Error; err != nil {
			return nil, fmt.Errorf("failed to create room %s: %w", catalog[i].Name, err)
		}
		fmt.Printf("  Created room: %s (%s, floor %d, seats %d)\n",
			catalog[i].Name, catalog[i].Building, catalog[i].Floor, catalog[i].Capacity)
		ids = append(ids, catalog[i].ID)
	}

	return ids, nil
}

// SeedBookings creates a few confirmed bookings in the coming days so
// availability queries have something to conflict with
func (s *Seeder) SeedBookings(roomIDs []uuid.UUID) error {
	if len(roomIDs) < 2 {
		return fmt.Errorf("need at least 2 rooms to seed bookings")
	}

	base := time.Now().UTC().Truncate(time.Hour).Add(24 * time.Hour)
	owner := uuid.New()

	seed := []bookings.Booking{
		{
			ID:        uuid.New(),
			RoomID:    roomIDs[0],
			OwnerID:   owner,
			StartTime: base.Add(9 * time.Hour),
			EndTime:   base.Add(10 * time.Hour),
			Status:    string(bookings.StatusConfirmed),
		},
		{
			ID:        uuid.New(),
			RoomID:    roomIDs[0],
			OwnerID:   owner,
			StartTime: base.Add(14 * time.Hour),
			EndTime:   base.Add(15*time.Hour + 30*time.Minute),
			Status:    string(bookings.StatusConfirmed),
		},
		{
			ID:        uuid.New(),
			RoomID:    roomIDs[1],
			OwnerID:   uuid.New(),
			StartTime: base.Add(11 * time.Hour),
			EndTime:   base.Add(12 * time.Hour),
			Status:    string(bookings.StatusConfirmed),
		},
	}

	for i := range seed {
		if err := s.db.PostgreSQL.Create(&seed[i]).Error; err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}
		fmt.Printf("  Created booking: room %s, %s - %s\n",
			seed[i].RoomID, seed[i].StartTime.Format(time.RFC3339), seed[i].EndTime.Format(time.RFC3339))
	}

	return nil
}
