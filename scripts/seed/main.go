// Command seed loads a development dataset: an admin account, a pair of
// barbers and a few upcoming open days. Safe to re-run; existing rows
// are left untouched.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"github.com/gentlemens13/booking-api/internal/models"
	"github.com/gentlemens13/booking-api/pkg/config"
	"github.com/gentlemens13/booking-api/pkg/database"
)

func main() {
	var (
		adminEmail    string
		adminPassword string
		openDays      int
	)

	flag.StringVar(&adminEmail, "admin-email", "admin@example.com", "Admin account email")
	flag.StringVar(&adminPassword, "admin-password", "changeme", "Admin account password")
	flag.IntVar(&openDays, "open-days", 3, "Number of upcoming Saturdays to open")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer db.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash admin password: %v", err)
	}

	res, err := db.Exec(`
		INSERT INTO users (id, email, password_hash, full_name, role)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO NOTHING`,
		uuid.NewString(), adminEmail, string(hash), "Administrator", models.RoleAdmin)
	if err != nil {
		log.Fatalf("failed to seed admin user: %v", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		log.Printf("created admin user %s", adminEmail)
	} else {
		log.Printf("admin user %s already exists", adminEmail)
	}

	barbers := []struct {
		name           string
		title          string
		interval       int
		wednesdayStart *int
	}{
		{name: "Artur", title: "Senior barber", interval: 15, wednesdayStart: intPtr(10)},
		{name: "Denis", title: "Barber", interval: 30},
	}
	for _, b := range barbers {
		res, err := db.Exec(`
			INSERT INTO barbers (id, name, title, start_hour, end_hour, wednesday_start,
			                     lunch_break, slot_interval_minutes, accepts_online_booking)
			SELECT $1, $2, $3, $4, $5, $6, TRUE, $7, TRUE
			WHERE NOT EXISTS (SELECT 1 FROM barbers WHERE name = $2)`,
			uuid.NewString(), b.name, b.title,
			models.DefaultStartHour, models.DefaultEndHour, b.wednesdayStart, b.interval)
		if err != nil {
			log.Fatalf("failed to seed barber %s: %v", b.name, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			log.Printf("created barber %s", b.name)
		}
	}

	seeded := 0
	for day := nextSaturday(time.Now()); seeded < openDays; day = day.AddDate(0, 0, 7) {
		date := day.Format(models.DateFormat)
		res, err := db.Exec(`
			INSERT INTO open_days (id, date, times)
			VALUES ($1, $2, $3)
			ON CONFLICT (date) DO NOTHING`,
			uuid.NewString(), date, pq.Array(models.DefaultOpenDayTimes()))
		if err != nil {
			log.Fatalf("failed to seed open day %s: %v", date, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			log.Printf("opened %s for booking", date)
		}
		seeded++
	}

	fmt.Println("seed complete")
}

func nextSaturday(from time.Time) time.Time {
	days := (int(time.Saturday) - int(from.Weekday()) + 7) % 7
	if days == 0 {
		days = 7
	}
	return from.AddDate(0, 0, days)
}

func intPtr(v int) *int { return &v }
