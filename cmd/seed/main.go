// Command seed populates the database with realistic development data.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"devmesh/internal/config"
	"devmesh/internal/database"
	"devmesh/internal/models"
	"devmesh/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Every seeded account shares this password to make manual testing painless.
const seedPassword = "DevMesh!234"

var skillPool = []string{
	"go", "python", "javascript", "typescript", "rust", "java", "kotlin",
	"react", "vue", "nodejs", "postgres", "redis", "docker", "kubernetes",
	"terraform", "aws", "gcp", "graphql", "grpc", "machine learning",
}

func main() {
	userCount := flag.Int("users", 50, "number of users to create")
	requestCount := flag.Int("requests", 120, "number of connection requests to create")
	seed := flag.Int64("seed", 0, "random seed (0 = time-based)")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	if *seed != 0 {
		gofakeit.Seed(*seed)
		rand.Seed(*seed)
	} else {
		rand.Seed(time.Now().UnixNano())
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(db)
	connRepo := repository.NewConnectionRepository(db)

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash seed password: %v", err)
	}

	users := make([]*models.User, 0, *userCount)
	for i := 0; i < *userCount; i++ {
		first := letterName(gofakeit.FirstName())
		last := letterName(gofakeit.LastName())
		user := &models.User{
			FirstName: first,
			LastName:  last,
			Email:     fmt.Sprintf("%s.%s.%d@example.com", strings.ToLower(first), strings.ToLower(last), i),
			Password:  string(hash),
			Age:       gofakeit.Number(18, 65),
			Gender:    gofakeit.RandomString([]string{models.GenderMale, models.GenderFemale, models.GenderOthers}),
			About:     gofakeit.Sentence(12),
			PhotoURL:  fmt.Sprintf("https://example.com/avatars/%d.png", i),
			Skills:    randomSkills(),
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Printf("skipping user %s: %v", user.Email, err)
			continue
		}
		users = append(users, user)
	}
	log.Printf("Created %d users (password %q)", len(users), seedPassword)

	created := 0
	for attempts := 0; created < *requestCount && attempts < *requestCount*4; attempts++ {
		from := users[rand.Intn(len(users))]
		to := users[rand.Intn(len(users))]
		if from.ID == to.ID {
			continue
		}
		if existing, err := connRepo.GetBetweenUsers(ctx, from.ID, to.ID); err != nil || existing != nil {
			continue
		}

		status := models.ConnectionStatusInterested
		switch rand.Intn(5) {
		case 0:
			status = models.ConnectionStatusIgnored
		case 1:
			status = models.ConnectionStatusAccepted
		case 2:
			status = models.ConnectionStatusRejected
		}

		request := &models.ConnectionRequest{
			FromUserID: from.ID,
			ToUserID:   to.ID,
			Status:     status,
		}
		if status == models.ConnectionStatusAccepted {
			now := time.Now().UTC().Add(-time.Duration(rand.Intn(720)) * time.Hour)
			request.MatchedAt = &now
		}
		if err := connRepo.Create(ctx, request); err != nil {
			continue
		}
		created++
	}
	log.Printf("Created %d connection requests", created)
}

// letterName strips characters the name validator rejects.
func letterName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || r == ' ' {
			b.WriteRune(r)
		}
	}
	if b.Len() < 4 {
		return b.String() + "son"
	}
	return b.String()
}

func randomSkills() []string {
	n := rand.Intn(6) + 1
	picked := make([]string, 0, n)
	seen := make(map[string]struct{}, n)
	for len(picked) < n {
		s := skillPool[rand.Intn(len(skillPool))]
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		picked = append(picked, s)
	}
	return picked
}
