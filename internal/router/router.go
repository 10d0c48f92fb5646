package router

import (
	"github.com/Naveen-2726/Budgetwise-AI-Driven-Expense-Tracker/internal/achievement"
	"github.com/Naveen-2726/Budgetwise-AI-Driven-Expense-Tracker/internal/config"
	"github.com/Naveen-2726/Budgetwise-AI-Driven-Expense-Tracker/internal/handler"
	"github.com/Naveen-2726/Budgetwise-AI-Driven-Expense-Tracker/internal/middleware"
	"github.com/Naveen-2726/Budgetwise-AI-Driven-Expense-Tracker/internal/notification"
	"github.com/Naveen-2726/Budgetwise-AI-Driven-Expense-Tracker/internal/recurring"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine and wires all API routes.
func SetupRouter(cfg *config.Config, db *gorm.DB,
	recurringEngine *recurring.Engine,
	achievementEngine *achievement.Engine,
	notifier *notification.Service) *gin.Engine {

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	api := r.Group("/api")

	jwtSecret := cfg.JWT.Secret
	authHandler := handler.NewAuthHandler(db, jwtSecret, cfg.JWT.ExpireHours)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(jwtSecret, db))

	protected.GET("/me", handler.GetMe)
	protected.PUT("/profile", handler.UpdateProfile(db))

	transactionHandler := handler.NewTransactionHandler(db, achievementEngine)
	protected.POST("/transactions", transactionHandler.CreateTransaction)
	protected.GET("/transactions", transactionHandler.ListTransactions)
	protected.GET("/transactions/recent", transactionHandler.RecentTransactions)
	protected.GET("/transactions/stats", transactionHandler.TransactionStats)
	protected.PUT("/transactions/:id", transactionHandler.UpdateTransaction)
	protected.DELETE("/transactions/:id", transactionHandler.DeleteTransaction)

	categoryHandler := handler.NewCategoryHandler(db)
	protected.GET("/categories", categoryHandler.ListCategories)
	protected.POST("/categories", categoryHandler.CreateCategory)
	protected.DELETE("/categories/:id", categoryHandler.DeleteCategory)

	budgetHandler := handler.NewBudgetHandler(db)
	protected.POST("/budgets", budgetHandler.CreateBudget)
	protected.GET("/budgets", budgetHandler.ListBudgets)
	protected.PUT("/budgets/:id", budgetHandler.UpdateBudget)
	protected.DELETE("/budgets/:id", budgetHandler.DeleteBudget)

	goalHandler := handler.NewGoalHandler(db)
	protected.POST("/goals", goalHandler.CreateGoal)
	protected.GET("/goals", goalHandler.ListGoals)
	protected.PUT("/goals/:id", goalHandler.UpdateGoal)
	protected.POST("/goals/:id/contributions", goalHandler.AddContribution)
	protected.DELETE("/goals/:id", goalHandler.DeleteGoal)

	recurringHandler := handler.NewRecurringHandler(db, recurringEngine)
	protected.POST("/recurring", recurringHandler.CreateRule)
	protected.GET("/recurring", recurringHandler.ListRules)
	protected.PUT("/recurring/:id", recurringHandler.UpdateRule)
	protected.PUT("/recurring/:id/active", recurringHandler.SetActive)
	protected.POST("/recurring/tick", recurringHandler.RunTick)
	protected.DELETE("/recurring/:id", recurringHandler.DeleteRule)

	achievementHandler := handler.NewAchievementHandler(achievementEngine)
	protected.GET("/achievements", achievementHandler.ListAchievements)
	protected.GET("/achievements/my", achievementHandler.MyAchievements)
	protected.GET("/achievements/progress", achievementHandler.Progress)

	notificationHandler := handler.NewNotificationHandler(notifier)
	protected.GET("/notifications", notificationHandler.ListNotifications)
	protected.GET("/notifications/unread-count", notificationHandler.UnreadCount)
	protected.PUT("/notifications/:id/read", notificationHandler.MarkRead)
	protected.PUT("/notifications/read-all", notificationHandler.MarkAllRead)

	exportHandler := handler.NewExportHandler(db)
	protected.GET("/export/csv", exportHandler.ExportCSV)
	protected.GET("/export/xlsx", exportHandler.ExportXLSX)

	return r
}
