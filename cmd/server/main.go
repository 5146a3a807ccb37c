package main

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/002sathwik/vs-billings/config"
	"github.com/002sathwik/vs-billings/internal/handler"
	"github.com/002sathwik/vs-billings/internal/invoice"
	"github.com/002sathwik/vs-billings/internal/repository"
	"github.com/002sathwik/vs-billings/pkg/database"
)

func main() {
	// 1. Load Configuration
	config.LoadConfig()

	// 2. Connect to Database
	database.Connect()

	// 3. Migrate Schema
	database.Migrate()

	// 4. Initialize Router
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 5. Setup Routes
	merchant := invoice.Merchant{
		Name:     config.AppConfig.Merchant.Name,
		VPA:      config.AppConfig.Merchant.VPA,
		Currency: config.AppConfig.Merchant.Currency,
	}

	billHandler := &handler.BillHandler{
		Repo:     repository.NewBillRepository(database.DB),
		Merchant: merchant,
	}
	billRoutes := r.Group("/api/v1/bills")
	{
		billRoutes.POST("", billHandler.NewBill)
		billRoutes.GET("", billHandler.GetAllBills)
		billRoutes.GET("/:id", billHandler.GetBillByID)
		billRoutes.PUT("/:id", billHandler.UpdateBill)
		billRoutes.DELETE("/:id", billHandler.DeleteBill)
		billRoutes.POST("/:id/items", billHandler.AppendBillItems)
		billRoutes.GET("/:id/invoice", billHandler.GetInvoice)
		billRoutes.GET("/:id/invoice/qr", billHandler.GetInvoiceQR)
	}

	merchantHandler := &handler.MerchantHandler{Merchant: merchant}
	r.GET("/api/v1/merchant", merchantHandler.GetMerchant)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// 6. Start Server
	port := config.AppConfig.Server.Port
	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
