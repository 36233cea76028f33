package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"quotation-backend/internal/cache"
	"quotation-backend/internal/config"
	"quotation-backend/internal/db"
	"quotation-backend/internal/repositories"
)

func main() {
	number := flag.String("q", "", "only reset this quotation number")
	yes := flag.Bool("yes", false, "skip the confirmation prompt")
	flag.Parse()

	fmt.Println("========================================")
	fmt.Println("   Reset Tier Pricing")
	fmt.Println("========================================")
	fmt.Println()
	if *number == "" {
		fmt.Println("⚠️  WARNING: This clears packing, profit margin and discount of EVERY item!")
	} else {
		fmt.Printf("⚠️  WARNING: This clears every tier of quotation %s!\n", *number)
	}
	fmt.Println()

	if !*yes {
		fmt.Print("Type 'yes' to confirm: ")
		var confirm string
		fmt.Scanln(&confirm)
		if confirm != "yes" {
			fmt.Println("Reset cancelled.")
			return
		}
	}

	cfg := config.Load()
	ctx := context.Background()

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v\n", err)
	}
	defer pool.Close()

	fmt.Println()
	fmt.Println("🔄 Resetting tiers...")

	n, err := repositories.NewItemRepository(pool).ResetTiers(ctx, *number)
	if err != nil {
		log.Fatalf("Failed to reset tiers: %v\n", err)
	}

	// Cached quotations would still show the old tiers
	if err := cache.Init(cfg); err == nil {
		cache.InvalidateAll(ctx)
		cache.Close()
	}

	fmt.Printf("✅ Cleared tiers of %d item(s)\n", n)
}
