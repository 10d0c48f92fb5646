package main

import (
	"fmt"
	"log"

	"github.com/Naveen-2726/Budgetwise-AI-Driven-Expense-Tracker/internal/achievement"
	"github.com/Naveen-2726/Budgetwise-AI-Driven-Expense-Tracker/internal/config"
	"github.com/Naveen-2726/Budgetwise-AI-Driven-Expense-Tracker/internal/database"
	"github.com/Naveen-2726/Budgetwise-AI-Driven-Expense-Tracker/internal/notification"
	"github.com/Naveen-2726/Budgetwise-AI-Driven-Expense-Tracker/internal/recurring"
	"github.com/Naveen-2726/Budgetwise-AI-Driven-Expense-Tracker/internal/router"
)

func main() {
	// load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db, err := database.Init(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}
	if err := database.Seed(db); err != nil {
		log.Fatalf("seed database: %v", err)
	}

	notifier := notification.NewService(db)
	recurringEngine := recurring.NewEngine(db)
	achievementEngine := achievement.NewEngine(db, notifier)

	// daily recurring-transaction tick, independent of request traffic
	recurring.NewRunner(recurringEngine, cfg.Scheduler.Hour).Start()

	r := router.SetupRouter(cfg, db, recurringEngine, achievementEngine, notifier)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	log.Printf("listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("run server: %v", err)
	}
}
