package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/d60-Lab/heart-badge/internal/counter"
	"github.com/d60-Lab/heart-badge/internal/model"
	"github.com/d60-Lab/heart-badge/internal/repository"
)

// counterbench compares cold reads (rehydration from the interaction
// store) against warmed cache reads for per-badge counters.
func main() {
	ctx := context.Background()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "host=localhost user=postgres password=postgres dbname=postgres port=5434 sslmode=disable"
	}
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	db := must(gorm.Open(postgres.Open(dsn), &gorm.Config{}))
	mustDo(db.Exec("DROP TABLE IF EXISTS interactions CASCADE").Error)
	mustDo(db.Exec("DROP TABLE IF EXISTS badges CASCADE").Error)
	mustDo(db.AutoMigrate(&model.Badge{}, &model.Interaction{}))
	catalog := model.Catalog()
	mustDo(db.Create(&catalog).Error)

	rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
	mustDo(rdb.FlushDB(ctx).Err())

	const (
		userCount       = 2000
		interactionRows = 100000
	)

	fmt.Println("Seeding interactions...")
	users := make([]string, userCount)
	for i := range users {
		users[i] = uuid.NewString()
	}
	rows := make([]model.Interaction, 0, interactionRows)
	for i := 0; i < interactionRows; i++ {
		sender := users[rand.Intn(userCount)]
		rows = append(rows, model.Interaction{
			ID:         uuid.NewString(),
			BadgeID:    catalog[rand.Intn(5)].ID, // default badges only
			SenderID:   &sender,
			ReceiverID: users[rand.Intn(userCount)],
		})
		if len(rows) == 2000 {
			mustDo(db.Create(&rows).Error)
			rows = rows[:0]
		}
	}
	if len(rows) > 0 {
		mustDo(db.Create(&rows).Error)
	}

	repo := repository.NewInteractionRepository(db)
	svc := counter.NewService(counter.NewCache(rdb), repo, 5*time.Second)

	fmt.Printf("Running %d cold reads (every read rehydrates a new user)...\n", userCount)
	cold := sampleLatencies(userCount, func(i int) {
		_, _ = svc.GetCount(ctx, counter.DirectionSent, users[i], model.BadgeBlue)
	})
	report("cold (rehydrate on miss)", cold)

	const reads = 5000
	fmt.Printf("Running %d warm reads (cache hit)...\n", reads)
	warm := sampleLatencies(reads, func(i int) {
		_, _ = svc.GetCount(ctx, counter.DirectionSent, users[i%userCount], model.BadgeBlue)
	})
	report("warm (cache hit)", warm)
}

func sampleLatencies(n int, fn func(i int)) []time.Duration {
	out := make([]time.Duration, n)
	for i := 0; i < n; i++ {
		start := time.Now()
		fn(i)
		out[i] = time.Since(start)
	}
	return out
}

func report(name string, lat []time.Duration) {
	sort.Slice(lat, func(i, j int) bool { return lat[i] < lat[j] })
	var total time.Duration
	for _, d := range lat {
		total += d
	}
	fmt.Printf("%-28s avg=%v p50=%v p99=%v max=%v\n",
		name,
		total/time.Duration(len(lat)),
		lat[len(lat)/2],
		lat[len(lat)*99/100],
		lat[len(lat)-1])
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func mustDo(err error) {
	if err != nil {
		panic(err)
	}
}
