package boot

import (
	"log"
	"time"

	"hbs/src/config"
	"hbs/src/db"
	"hbs/src/lib"
	"hbs/src/models"
	"hbs/src/types"
	"hbs/src/utils"

	"gorm.io/gorm"
)

func InitDb() *gorm.DB {
	db := db.GetDb()

	err := db.AutoMigrate(
		&models.User{},
		&models.Room{},
		&models.Booking{},
		&models.Feedback{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	if config.DemoMode() {
		SeedDemoRooms(db)
	}

	return db
}

// InitScheduler starts the stale-booking sweep: Pending bookings that held a
// room past the hold window are cancelled and their rooms released.
func InitScheduler() {
	hold := time.Duration(config.PendingHoldMinutes()) * time.Minute
	_, err := lib.CreateCronJob(func() {
		n, err := utils.ExpireStalePendingBookings(hold)
		if err != nil {
			log.Printf("Error while expiring stale bookings: %s\n", err.Error())
			return
		}
		if n > 0 {
			log.Printf("Expired %d stale pending bookings\n", n)
		}
	}, 5*time.Minute)
	if err != nil {
		log.Printf("Error scheduling stale booking sweep: %s\n", err.Error())
		return
	}
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("An error has occurred. Check logs for info")
		return
	}
	sched.Start()
}

func StopScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("Error retrieving Scheduler. Check logs for info")
		return
	}
	if err := sched.Shutdown(); err != nil {
		log.Println("An error has occurred while stopping Scheduler. Check logs for info")
	}
}

// SeedDemoRooms loads a small catalog for local demos. Only boot calls it,
// and only behind the DEMO_MODE flag.
func SeedDemoRooms(d *gorm.DB) {
	var count int64
	if err := d.Model(&models.Room{}).Count(&count).Error; err != nil || count > 0 {
		return
	}
	rooms := []models.Room{
		{Name: "Garden View 101", Slug: "garden-view-101", Type: types.ROOM_STANDARD, Price: 100, Capacity: 2, Status: types.ROOM_AVAILABLE, Amenities: types.StringArray{"WiFi", "TV"}},
		{Name: "Deluxe 201", Slug: "deluxe-201", Type: types.ROOM_DELUXE, Price: 180, Capacity: 3, Status: types.ROOM_AVAILABLE, Amenities: types.StringArray{"WiFi", "TV", "Mini Bar"}},
		{Name: "Executive 301", Slug: "executive-301", Type: types.ROOM_EXECUTIVE, Price: 260, Capacity: 3, Status: types.ROOM_AVAILABLE, Amenities: types.StringArray{"WiFi", "TV", "Mini Bar", "Work Desk"}},
		{Name: "Suite 401", Slug: "suite-401", Type: types.ROOM_SUITE, Price: 400, Capacity: 4, Status: types.ROOM_AVAILABLE, Amenities: types.StringArray{"WiFi", "TV", "Mini Bar", "Living Area"}},
		{Name: "Presidential 501", Slug: "presidential-501", Type: types.ROOM_PRESIDENTIAL, Price: 900, Capacity: 6, Status: types.ROOM_AVAILABLE, Amenities: types.StringArray{"WiFi", "TV", "Mini Bar", "Living Area", "Jacuzzi"}},
	}
	if err := d.Create(&rooms).Error; err != nil {
		log.Printf("Error seeding demo rooms: %s\n", err.Error())
		return
	}
	log.Printf("Seeded %d demo rooms\n", len(rooms))
}
