// Command seed resets the users, counselors and appointments collections
// and fills them with demo counselors and students.
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"careerpath/config"
	"careerpath/database"
	counselorRepoPkg "careerpath/database/repository/counselor"
	userRepoPkg "careerpath/database/repository/user"
	"careerpath/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

const demoPassword = "$Password1234"

var specializations = []string{"Engineering", "Medicine", "Design", "Law", "Finance", "Civil Services"}

// candidateWindows are realistic working blocks as HH:MM ranges.
var candidateWindows = [][2]string{
	{"09:00", "12:00"},
	{"10:00", "13:00"},
	{"14:00", "17:00"},
	{"16:00", "19:00"},
}

func randomAvailability(r *rand.Rand) []models.AvailabilityWindow {
	var windows []models.AvailabilityWindow
	for _, day := range models.Weekdays[1:6] {
		if r.Intn(4) == 0 {
			continue
		}
		w := candidateWindows[r.Intn(len(candidateWindows))]
		windows = append(windows, models.AvailabilityWindow{Day: day, StartTime: w[0], EndTime: w[1], IsAvailable: true})
	}
	return windows
}

func main() {
	config.LoadConfig()
	database.InitDB()
	defer database.CloseDB(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	for _, name := range []string{"users", "counselors", "appointments"} {
		if _, err := database.DB().Collection(name).DeleteMany(ctx, bson.M{}); err != nil {
			log.Fatalf("Failed to clear %s collection: %v", name, err)
		}
	}

	users := userRepoPkg.NewMongoUserRepo()
	counselors := counselorRepoPkg.NewMongoCounselorRepo()
	for _, ensure := range []func(context.Context) error{users.EnsureIndexes, counselors.EnsureIndexes} {
		if err := ensure(ctx); err != nil {
			log.Fatalf("Failed to ensure indexes: %v", err)
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	const counselorCount, studentCount = 6, 10

	for i := 1; i <= counselorCount; i++ {
		u := &models.User{
			ID:           uuid.New().String(),
			Name:         fmt.Sprintf("Counselor %d", i),
			Email:        fmt.Sprintf("counselor_%d@example.com", i),
			Role:         models.RoleCounselor,
			PasswordHash: string(hashed),
		}
		if err := users.Create(ctx, u); err != nil {
			log.Fatalf("Failed to insert counselor user: %v", err)
		}
		now := time.Now()
		profile := &models.Counselor{
			ID:              uuid.New().String(),
			UserID:          u.ID,
			Specializations: []string{specializations[r.Intn(len(specializations))], specializations[r.Intn(len(specializations))]},
			Bio:             fmt.Sprintf("Career counselor #%d with a decade of mentoring experience.", i),
			Availability:    randomAvailability(r),
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := counselors.Create(ctx, profile); err != nil {
			log.Fatalf("Failed to insert counselor profile: %v", err)
		}
		fmt.Printf("counselor %s (%s): %d windows\n", profile.ID, u.Email, len(profile.Availability))
	}

	for i := 1; i <= studentCount; i++ {
		u := &models.User{
			ID:           uuid.New().String(),
			Name:         fmt.Sprintf("Student %d", i),
			Email:        fmt.Sprintf("student_%d@example.com", i),
			Role:         models.RoleStudent,
			PasswordHash: string(hashed),
		}
		if err := users.Create(ctx, u); err != nil {
			log.Fatalf("Failed to insert student: %v", err)
		}
	}
	fmt.Printf("Seeded %d counselors and %d students (password %q)\n", counselorCount, studentCount, demoPassword)
}
