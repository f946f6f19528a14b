package seeds

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	"sekolahku_backend/internals/configs"
	users "sekolahku_backend/internals/seeds/users/auth"
)

const defaultUsersFile = "internals/seeds/users/auth/data_users.json"

// RunAllSeeds dipanggil dari main saat RUN_SEEDS=true.
func RunAllSeeds(db *gorm.DB) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	//* User + profile + role
	if err := users.SeedUsersFromJSON(ctx, db, configs.GetEnv("SEED_USERS_FILE", defaultUsersFile)); err != nil {
		log.Printf("[SEED] users: %v", err)
	}
}
