package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"drivehub/internal/auth"
	"drivehub/internal/bookings"
	"drivehub/internal/cars"
	"drivehub/internal/shared/config"
	"drivehub/internal/shared/database"
	"drivehub/internal/users"

	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"
)

type Seeder struct {
	db     *database.DB
	cfg    *config.Config
	auth   auth.Service
	authDB auth.Repository
	cars   cars.Service
}

func main() {
	clean := flag.Bool("clean", false, "delete all bookings and cars before seeding")
	flag.Parse()

	fmt.Println("🌱 Starting DriveHub Database Seeder...")

	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	authRepo := auth.NewRepository(db.GetPostgreSQL())
	seeder := &Seeder{
		db:     db,
		cfg:    cfg,
		auth:   auth.NewService(authRepo, cfg),
		authDB: authRepo,
		cars:   cars.NewService(cars.NewRepository(db.GetPostgreSQL()), nil, nil, nil),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if *clean {
		fmt.Println("\n🧹 Cleaning database...")
		if err := seeder.CleanDatabase(ctx); err != nil {
			log.Fatalf("Failed to clean database: %v", err)
		}
		fmt.Println("✅ Database cleaned successfully")
	}

	fmt.Println("\n👤 Seeding admin account...")
	if err := seeder.SeedAdmin(ctx); err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}

	fmt.Println("\n🚗 Seeding fleet...")
	if err := seeder.SeedFleet(ctx); err != nil {
		log.Fatalf("Failed to seed fleet: %v", err)
	}

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase removes bookings before cars because bookings reference them
func (s *Seeder) CleanDatabase(ctx context.Context) error {
	pg := s.db.GetPostgreSQL().WithContext(ctx)
	if err := pg.Exec("DELETE FROM " + (bookings.Booking{}).TableName()).Error; err != nil {
		return fmt.Errorf("failed to delete bookings: %w", err)
	}
	if err := pg.Exec("DELETE FROM " + (cars.Car{}).TableName()).Error; err != nil {
		return fmt.Errorf("failed to delete cars: %w", err)
	}
	return nil
}

// SeedAdmin creates the first admin unless one already exists
func (s *Seeder) SeedAdmin(ctx context.Context) error {
	count, err := s.authDB.CountByRole(ctx, users.RoleAdmin)
	if err != nil {
		return err
	}
	if count > 0 {
		fmt.Printf("  ⏭️  %d admin account(s) already present\n", count)
		return nil
	}

	req := &auth.RegisterRequest{
		Username: getEnv("SEED_ADMIN_USERNAME", "admin"),
		Email:    getEnv("SEED_ADMIN_EMAIL", "admin@drivehub.com"),
		Password: getEnv("SEED_ADMIN_PASSWORD", "admin123"),
	}
	resp, err := s.auth.Register(ctx, req, users.RoleAdmin)
	if err != nil {
		return err
	}
	fmt.Printf("  ✅ Created admin %s (%s)\n", resp.User.Email, resp.User.ID)
	return nil
}

// SeedFleet adds the sample cars, skipping plates that already exist
func (s *Seeder) SeedFleet(ctx context.Context) error {
	created := 0
	for i := range sampleFleet {
		car, err := s.cars.Create(ctx, &sampleFleet[i])
		if errors.Is(err, cars.ErrLicensePlateTaken) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to create %s %s: %w", sampleFleet[i].Make, sampleFleet[i].Model, err)
		}
		created++
		fmt.Printf("  ✅ %s %s (%s) $%.2f/day\n", car.Make, car.Model, car.LicensePlate, car.PricePerDay)
	}
	fmt.Printf("  %d car(s) created, %d already present\n", created, len(sampleFleet)-created)
	return nil
}

var sampleFleet = []cars.CreateCarRequest{
	{Name: "Toyota Corolla", Make: "Toyota", Model: "Corolla", Year: 2023, CarType: "Sedan", Transmission: "Automatic", FuelType: "Petrol", SeatingCapacity: 5, PricePerDay: 45, Color: "White", LicensePlate: "DRV-1001", Mileage: 12000, Description: "Reliable compact sedan, great on fuel.", AirConditioning: true, BluetoothConnectivity: true},
	{Name: "Honda Civic", Make: "Honda", Model: "Civic", Year: 2022, CarType: "Sedan", Transmission: "Manual", FuelType: "Petrol", SeatingCapacity: 5, PricePerDay: 42, Color: "Blue", LicensePlate: "DRV-1002", Mileage: 23000, AirConditioning: true},
	{Name: "Toyota RAV4 Hybrid", Make: "Toyota", Model: "RAV4", Year: 2024, CarType: "SUV", Transmission: "Automatic", FuelType: "Hybrid", SeatingCapacity: 5, PricePerDay: 75, Color: "Grey", LicensePlate: "DRV-2001", Mileage: 5000, Description: "Roomy hybrid SUV with all-wheel drive.", AirConditioning: true, BluetoothConnectivity: true, GPSNavigation: true},
	{Name: "Ford Explorer", Make: "Ford", Model: "Explorer", Year: 2022, CarType: "SUV", Transmission: "Automatic", FuelType: "Petrol", SeatingCapacity: 7, PricePerDay: 89, Color: "Black", LicensePlate: "DRV-2002", Mileage: 31000, AirConditioning: true, BluetoothConnectivity: true, GPSNavigation: true},
	{Name: "Tesla Model 3", Make: "Tesla", Model: "Model 3", Year: 2023, CarType: "Electric", Transmission: "Automatic", FuelType: "Electric", SeatingCapacity: 5, PricePerDay: 110, Color: "Red", LicensePlate: "DRV-3001", Mileage: 9000, Description: "Long range, autopilot included.", AirConditioning: true, BluetoothConnectivity: true, GPSNavigation: true},
	{Name: "Volkswagen Golf", Make: "Volkswagen", Model: "Golf", Year: 2021, CarType: "Hatchback", Transmission: "Manual", FuelType: "Diesel", SeatingCapacity: 5, PricePerDay: 38, Color: "Silver", LicensePlate: "DRV-4001", Mileage: 45000, AirConditioning: true, BluetoothConnectivity: true},
	{Name: "Chrysler Pacifica", Make: "Chrysler", Model: "Pacifica", Year: 2023, CarType: "Van", Transmission: "Automatic", FuelType: "Hybrid", SeatingCapacity: 8, PricePerDay: 99, Color: "White", LicensePlate: "DRV-5001", Mileage: 15000, Description: "Family minivan with sliding doors.", AirConditioning: true, BluetoothConnectivity: true, GPSNavigation: true},
	{Name: "BMW 4 Series Convertible", Make: "BMW", Model: "430i", Year: 2024, CarType: "Convertible", Transmission: "Automatic", FuelType: "Petrol", SeatingCapacity: 4, PricePerDay: 150, Color: "Blue", LicensePlate: "DRV-6001", Mileage: 3000, AirConditioning: true, BluetoothConnectivity: true, GPSNavigation: true},
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
