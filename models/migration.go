package models

import (
	"log"

	"github.com/dapurnusa/resto_backend/config"
)

// Migrate runs AutoMigrate for every table the accounting core owns.
func Migrate() {
	db := config.GetDB()
	err := db.AutoMigrate(
		&ReimbursementRequest{},
		&SalesDailySummary{},
		&PayrollEntry{},
		&CashTransaction{},
		&PosOrder{},
		&TransactionSequence{},
	)
	if err != nil {
		log.Printf("auto-migration failed: %v", err)
		return
	}
	log.Println("auto-migration complete")
}
